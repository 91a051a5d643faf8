// Package cli runs a quiz over plain line-based input and output.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/abhisek/quizcrafter/internal/quiz"
	"github.com/abhisek/quizcrafter/internal/quizgen"
	"github.com/abhisek/quizcrafter/internal/service"
)

// Quizzer is the part of the quiz service the prompt loop uses.
type Quizzer interface {
	Generate(ctx context.Context, token string, req quizgen.Request) (quiz.Session, error)
	Submit(ctx context.Context, token, sessionID string, index int, selected string) (quiz.Session, quiz.Outcome, error)
	Reset(ctx context.Context, token string) (quiz.Session, error)
}

// Options preset the first quiz. Empty fields are prompted for.
type Options struct {
	Token      string
	Subject    string
	Topic      string
	Difficulty string
}

// errInputClosed ends the loop when the reader runs dry.
var errInputClosed = errors.New("input closed")

type prompter struct {
	in  *bufio.Scanner
	out io.Writer
}

func (p *prompter) ask(label string) (string, error) {
	fmt.Fprint(p.out, label)
	if !p.in.Scan() {
		if err := p.in.Err(); err != nil {
			return "", err
		}
		return "", errInputClosed
	}
	return strings.TrimSpace(p.in.Text()), nil
}

// Run plays quizzes until the user declines a restart or input ends.
func Run(ctx context.Context, in io.Reader, out io.Writer, svc Quizzer, opts Options) error {
	if opts.Token == "" {
		opts.Token = "cli"
	}
	p := &prompter{in: bufio.NewScanner(in), out: out}

	err := run(ctx, p, svc, opts)
	if errors.Is(err, errInputClosed) {
		fmt.Fprintln(out)
		return nil
	}
	return err
}

func run(ctx context.Context, p *prompter, svc Quizzer, opts Options) error {
	fmt.Fprintln(p.out, service.AppTitle)
	for {
		sess, err := generate(ctx, p, svc, opts)
		if err != nil {
			return err
		}
		// Presets only apply to the first quiz.
		opts = Options{Token: opts.Token}

		if err := play(ctx, p, svc, opts.Token, sess); err != nil {
			return err
		}

		again, err := p.ask(fmt.Sprintf("\n%s? [y/N]: ", service.MsgRestart))
		if err != nil {
			return err
		}
		if !strings.EqualFold(again, "y") && !strings.EqualFold(again, "yes") {
			return nil
		}
		if _, err := svc.Reset(ctx, opts.Token); err != nil {
			return err
		}
		fmt.Fprintln(p.out)
	}
}

// generate prompts for the quiz parameters until a quiz is generated.
// Recoverable errors are printed and the prompts repeat.
func generate(ctx context.Context, p *prompter, svc Quizzer, opts Options) (quiz.Session, error) {
	for {
		req, err := readRequest(p, opts)
		if err != nil {
			return quiz.Session{}, err
		}

		if err := req.Validate(); err == nil {
			fmt.Fprintln(p.out, service.GeneratingLine(req))
		}
		sess, err := svc.Generate(ctx, opts.Token, req)
		if err == nil {
			return sess, nil
		}
		if !service.IsUserError(err) {
			return quiz.Session{}, err
		}
		fmt.Fprintln(p.out, service.UserMessage(err))
		opts = Options{Token: opts.Token}
	}
}

func readRequest(p *prompter, opts Options) (quizgen.Request, error) {
	var err error
	req := quizgen.Request{
		Subject:    opts.Subject,
		Topic:      opts.Topic,
		Difficulty: quizgen.Difficulty(opts.Difficulty),
	}
	if req.Subject == "" {
		if req.Subject, err = p.ask("Subject: "); err != nil {
			return req, err
		}
	}
	if req.Topic == "" {
		if req.Topic, err = p.ask("Topic: "); err != nil {
			return req, err
		}
	}
	if req.Difficulty == "" {
		d, err := p.ask("Difficulty (Easy/Medium/Hard) [Easy]: ")
		if err != nil {
			return req, err
		}
		if d == "" {
			d = string(quizgen.Easy)
		}
		req.Difficulty = quizgen.Difficulty(d)
	}
	if d, err := quizgen.ParseDifficulty(string(req.Difficulty)); err == nil {
		req.Difficulty = d
	}
	return req, nil
}

func play(ctx context.Context, p *prompter, svc Quizzer, token string, sess quiz.Session) error {
	for sess.State() == quiz.InProgress {
		q, _ := sess.Current()
		fmt.Fprintf(p.out, "\n%s\nQuestion %d:\n%s\n", service.Progress(sess), sess.CurrentIndex+1, q.Text)
		for _, o := range q.Options {
			fmt.Fprintf(p.out, "  %s\n", o)
		}

		answer, err := p.ask("Your answer: ")
		if err != nil {
			return err
		}

		next, out, err := svc.Submit(ctx, token, sess.ID, sess.CurrentIndex, resolve(q, answer))
		if err != nil {
			if !service.IsUserError(err) {
				return err
			}
			fmt.Fprintln(p.out, service.UserMessage(err))
			if errors.Is(err, quiz.ErrNoSelection) {
				continue
			}
			return nil
		}
		fmt.Fprintln(p.out, service.Feedback(out))
		sess = next
	}

	fmt.Fprintf(p.out, "\n%s\n%s\n", service.MsgFinished, service.ScoreLine(sess))
	return nil
}

// resolve expands a bare identifier such as "b" to its option text, so
// the stored answer reads like one picked from a list.
func resolve(q quizgen.Question, answer string) string {
	if answer == "" {
		return ""
	}
	if opt := q.OptionText(answer); opt != "" {
		return opt
	}
	return answer
}
