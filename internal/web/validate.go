package web

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/abhisek/quizcrafter/internal/quizgen"
)

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("difficulty", validateDifficulty)
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

func validateDifficulty(fl validator.FieldLevel) bool {
	_, err := quizgen.ParseDifficulty(fl.Field().String())
	return err == nil
}

// validationMessage turns validator errors into one line for the user.
func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err.Error()
	}
	fe := verrs[0]
	switch fe.Field() {
	case "subject", "topic":
		return quizgen.MsgMissingSubjectTopic
	case "difficulty":
		return fmt.Sprintf("Difficulty must be one of %s.", difficultyList())
	case "selected":
		return quizgen.MsgNoSelection
	}
	return fmt.Sprintf("Invalid value for %s.", fe.Field())
}

func difficultyList() string {
	names := make([]string, len(quizgen.Difficulties))
	for i, d := range quizgen.Difficulties {
		names[i] = string(d)
	}
	return strings.Join(names, ", ")
}
