package telegram

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/abhisek/quizcrafter/internal/quizgen"
)

const (
	answerPrefix = "ans:"
	restartData  = "restart"
)

const usage = "Usage: /quiz <subject> | <topic> | <difficulty>\nExample: /quiz Physics | Optics | Medium"

// parseQuizArgs reads "subject | topic | difficulty". Difficulty is
// optional and defaults to Easy.
func parseQuizArgs(args string) (quizgen.Request, error) {
	parts := strings.Split(args, "|")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	if len(parts) < 2 || len(parts) > 3 || parts[0] == "" || parts[1] == "" {
		return quizgen.Request{}, &quizgen.InputValidationError{
			Field:   "subject",
			Message: quizgen.MsgMissingSubjectTopic + "\n" + usage,
		}
	}

	req := quizgen.Request{Subject: parts[0], Topic: parts[1], Difficulty: quizgen.Easy}
	if len(parts) == 3 && parts[2] != "" {
		d, err := quizgen.ParseDifficulty(parts[2])
		if err != nil {
			return quizgen.Request{}, &quizgen.InputValidationError{
				Field:   "difficulty",
				Message: "Difficulty must be Easy, Medium or Hard.",
			}
		}
		req.Difficulty = d
	}
	return req, nil
}

// answerData encodes a button press on option label of question index
// in quiz sessionID. A uuid session ID keeps it within Telegram's 64
// byte callback limit.
func answerData(sessionID string, index int, label string) string {
	return fmt.Sprintf("%s%s:%d:%s", answerPrefix, sessionID, index, label)
}

func parseAnswerData(data string) (sessionID string, index int, label string, ok bool) {
	rest, found := strings.CutPrefix(data, answerPrefix)
	if !found {
		return "", 0, "", false
	}
	parts := strings.SplitN(rest, ":", 3)
	if len(parts) != 3 || parts[0] == "" || parts[2] == "" {
		return "", 0, "", false
	}
	index, err := strconv.Atoi(parts[1])
	if err != nil || index < 0 {
		return "", 0, "", false
	}
	return parts[0], index, parts[2], true
}

func chatToken(chatID int64) string {
	return "tg:" + strconv.FormatInt(chatID, 10)
}
