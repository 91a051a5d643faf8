package web

import (
	"errors"
	"html/template"
	"math"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/abhisek/quizcrafter/internal/quiz"
	"github.com/abhisek/quizcrafter/internal/quizgen"
	"github.com/abhisek/quizcrafter/internal/service"
)

var templateFuncs = template.FuncMap{
	"inc": func(i int) int { return i + 1 },
}

// page is the view model of index.html.
type page struct {
	Title        string
	Error        string
	Subject      string
	Topic        string
	Difficulty   string
	Difficulties []quizgen.Difficulty

	State     string
	Progress  string
	SessionID string
	Index     int
	Question  quizgen.Question

	Feedback  string
	Correct   bool
	DelayMs   int64
	DelaySecs int

	ScoreLine string
}

type generateForm struct {
	Subject    string `form:"subject" json:"subject" validate:"required"`
	Topic      string `form:"topic" json:"topic" validate:"required"`
	Difficulty string `form:"difficulty" json:"difficulty" validate:"required,difficulty"`
}

func (f generateForm) request() quizgen.Request {
	return quizgen.Request{Subject: f.Subject, Topic: f.Topic, Difficulty: quizgen.Difficulty(f.Difficulty)}
}

type answerForm struct {
	SessionID     string `form:"session_id" json:"session_id" validate:"required"`
	QuestionIndex *int   `form:"question_index" json:"question_index" validate:"required,min=0"`
	Selected      string `form:"selected" json:"selected"`
}

const msgBadForm = "The form could not be read. Please try again."

func (s *Server) newPage(sess quiz.Session) page {
	p := page{
		Title:        service.AppTitle,
		Difficulties: quizgen.Difficulties,
		Difficulty:   string(quizgen.Easy),
		State:        sess.State().String(),
	}
	switch sess.State() {
	case quiz.InProgress:
		q, _ := sess.Current()
		p.Progress = service.Progress(sess)
		p.SessionID = sess.ID
		p.Index = sess.CurrentIndex
		p.Question = q
	case quiz.Finished:
		p.ScoreLine = service.ScoreLine(sess)
	}
	return p
}

func (s *Server) index(c *gin.Context) {
	sess, err := s.svc.Current(c.Request.Context(), token(c))
	if err != nil {
		s.renderError(c, err)
		return
	}
	c.HTML(http.StatusOK, "index.html", s.newPage(sess))
}

func (s *Server) generate(c *gin.Context) {
	var form generateForm
	bindErr := c.ShouldBind(&form)

	sess, err := s.svc.Current(c.Request.Context(), token(c))
	if err != nil {
		s.renderError(c, err)
		return
	}
	p := s.newPage(sess)
	p.Subject, p.Topic, p.Difficulty = form.Subject, form.Topic, form.Difficulty

	if bindErr != nil {
		p.Error = msgBadForm
		p.State = quiz.Idle.String()
		c.HTML(http.StatusBadRequest, "index.html", p)
		return
	}

	if err := s.validate.Struct(form); err != nil {
		p.Error = validationMessage(err)
		p.State = quiz.Idle.String()
		c.HTML(http.StatusUnprocessableEntity, "index.html", p)
		return
	}

	if _, err := s.svc.Generate(c.Request.Context(), token(c), form.request()); err != nil {
		if !service.IsUserError(err) {
			s.renderError(c, err)
			return
		}
		// Generation failures keep the user on the form with their input.
		p.Error = service.UserMessage(err)
		p.State = quiz.Idle.String()
		c.HTML(statusFor(err), "index.html", p)
		return
	}
	c.Redirect(http.StatusSeeOther, "/")
}

func (s *Server) answer(c *gin.Context) {
	var form answerForm
	if err := c.ShouldBind(&form); err != nil {
		s.renderBadRequest(c, msgBadForm)
		return
	}
	if err := s.validate.Struct(form); err != nil {
		s.renderBadRequest(c, validationMessage(err))
		return
	}

	sess, out, err := s.svc.Submit(c.Request.Context(), token(c), form.SessionID, *form.QuestionIndex, form.Selected)
	switch {
	case err == nil:
	case errors.Is(err, quiz.ErrStaleSubmission), errors.Is(err, quiz.ErrNotInProgress):
		c.Redirect(http.StatusSeeOther, "/")
		return
	case service.IsUserError(err):
		p := s.newPage(sess)
		p.Error = service.UserMessage(err)
		c.HTML(http.StatusUnprocessableEntity, "index.html", p)
		return
	default:
		s.renderError(c, err)
		return
	}

	delay := s.svc.FeedbackDelay()
	p := page{
		Title:     service.AppTitle,
		State:     "feedback",
		Progress:  service.Progress(quiz.Session{CurrentIndex: out.Index, Questions: sess.Questions}),
		Question:  sess.Questions[out.Index],
		Feedback:  service.Feedback(out),
		Correct:   out.Correct,
		DelayMs:   delay.Milliseconds(),
		DelaySecs: int(math.Ceil(delay.Seconds())),
	}
	c.HTML(http.StatusOK, "index.html", p)
}

func (s *Server) reset(c *gin.Context) {
	if _, err := s.svc.Reset(c.Request.Context(), token(c)); err != nil {
		s.renderError(c, err)
		return
	}
	c.Redirect(http.StatusSeeOther, "/")
}

// renderBadRequest shows the current page with msg and status 400.
func (s *Server) renderBadRequest(c *gin.Context, msg string) {
	sess, err := s.svc.Current(c.Request.Context(), token(c))
	if err != nil {
		s.renderError(c, err)
		return
	}
	p := s.newPage(sess)
	p.Error = msg
	c.HTML(http.StatusBadRequest, "index.html", p)
}

func (s *Server) renderError(c *gin.Context, err error) {
	_ = c.Error(err)
	c.HTML(http.StatusInternalServerError, "index.html", page{
		Title:        service.AppTitle,
		State:        quiz.Idle.String(),
		Difficulties: quizgen.Difficulties,
		Difficulty:   string(quizgen.Easy),
		Error:        service.UserMessage(err),
	})
}
