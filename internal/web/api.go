package web

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/abhisek/quizcrafter/internal/quiz"
	"github.com/abhisek/quizcrafter/internal/quizgen"
	"github.com/abhisek/quizcrafter/internal/service"
)

// quizView is the API representation of a session. The correct option
// of unanswered questions is never included.
type quizView struct {
	State        string        `json:"state"`
	SessionID    string        `json:"session_id,omitempty"`
	Subject      string        `json:"subject,omitempty"`
	Topic        string        `json:"topic,omitempty"`
	Difficulty   string        `json:"difficulty,omitempty"`
	CurrentIndex int           `json:"current_index"`
	Total        int           `json:"total"`
	Score        int           `json:"score"`
	Question     *questionView `json:"question,omitempty"`
}

type questionView struct {
	Index   int      `json:"index"`
	Text    string   `json:"question"`
	Options []string `json:"options"`
}

type answerRequest struct {
	SessionID     string `json:"session_id" validate:"required"`
	QuestionIndex *int   `json:"question_index" validate:"required,min=0"`
	Selected      string `json:"selected"`
}

type answerView struct {
	Correct       bool     `json:"correct"`
	CorrectOption string   `json:"correct_option"`
	Feedback      string   `json:"feedback"`
	Quiz          quizView `json:"quiz"`
}

type errorView struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func newQuizView(s quiz.Session) quizView {
	v := quizView{
		State:        s.State().String(),
		SessionID:    s.ID,
		Subject:      s.Subject,
		Topic:        s.Topic,
		Difficulty:   string(s.Difficulty),
		CurrentIndex: s.CurrentIndex,
		Total:        s.Total(),
		Score:        s.Score,
	}
	if q, ok := s.Current(); ok {
		v.Question = &questionView{Index: s.CurrentIndex, Text: q.Text, Options: q.Options}
	}
	return v
}

func (s *Server) apiGenerate(c *gin.Context) {
	var req generateForm
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorView{Error: "Request body must be a JSON object.", Code: "bad_request"})
		return
	}
	if err := s.validate.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, errorView{Error: validationMessage(err), Code: "invalid_input"})
		return
	}

	sess, err := s.svc.Generate(c.Request.Context(), token(c), req.request())
	if err != nil {
		s.apiError(c, err)
		return
	}
	c.JSON(http.StatusCreated, newQuizView(sess))
}

func (s *Server) apiCurrent(c *gin.Context) {
	sess, err := s.svc.Current(c.Request.Context(), token(c))
	if err != nil {
		s.apiError(c, err)
		return
	}
	c.JSON(http.StatusOK, newQuizView(sess))
}

func (s *Server) apiAnswer(c *gin.Context) {
	var req answerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorView{Error: "Request body must be a JSON object.", Code: "bad_request"})
		return
	}
	if err := s.validate.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, errorView{Error: validationMessage(err), Code: "invalid_input"})
		return
	}

	sess, out, err := s.svc.Submit(c.Request.Context(), token(c), req.SessionID, *req.QuestionIndex, req.Selected)
	if err != nil {
		s.apiError(c, err)
		return
	}
	c.JSON(http.StatusOK, answerView{
		Correct:       out.Correct,
		CorrectOption: out.CorrectOption,
		Feedback:      service.Feedback(out),
		Quiz:          newQuizView(sess),
	})
}

func (s *Server) apiReset(c *gin.Context) {
	sess, err := s.svc.Reset(c.Request.Context(), token(c))
	if err != nil {
		s.apiError(c, err)
		return
	}
	c.JSON(http.StatusOK, newQuizView(sess))
}

func (s *Server) apiError(c *gin.Context, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError && !service.IsUserError(err) {
		_ = c.Error(err)
	}
	c.JSON(status, errorView{Error: service.UserMessage(err), Code: errorCode(err)})
}

// statusFor maps the error taxonomy to HTTP status codes.
func statusFor(err error) int {
	var (
		ive *quizgen.InputValidationError
		ge  *quizgen.GenerationError
		pe  *quizgen.ParseError
	)
	switch {
	case errors.As(err, &ive):
		return http.StatusBadRequest
	case errors.As(err, &ge):
		if ge.Timeout() {
			return http.StatusGatewayTimeout
		}
		return http.StatusBadGateway
	case errors.As(err, &pe):
		return http.StatusBadGateway
	case errors.Is(err, quiz.ErrStaleSubmission), errors.Is(err, quiz.ErrNotInProgress):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

func errorCode(err error) string {
	var (
		ive *quizgen.InputValidationError
		ge  *quizgen.GenerationError
		pe  *quizgen.ParseError
	)
	switch {
	case errors.As(err, &ive):
		return "invalid_input"
	case errors.As(err, &ge):
		if ge.Timeout() {
			return "generation_timeout"
		}
		return "generation_failed"
	case errors.As(err, &pe):
		return "parse_failed"
	case errors.Is(err, quiz.ErrStaleSubmission):
		return "stale_submission"
	case errors.Is(err, quiz.ErrNotInProgress):
		return "no_quiz"
	}
	return "internal"
}
