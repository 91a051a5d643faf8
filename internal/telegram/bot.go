// Package telegram runs the quiz as a Telegram bot.
package telegram

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/abhisek/quizcrafter/internal/quiz"
	"github.com/abhisek/quizcrafter/internal/quizgen"
	"github.com/abhisek/quizcrafter/internal/service"
)

// Sender is the part of *tgbotapi.BotAPI the bot uses.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

// Bot answers commands and button presses from Telegram chats. Each chat
// has its own quiz session.
type Bot struct {
	api    Sender
	svc    *service.QuizService
	logger *slog.Logger

	// wait pauses between feedback and the next question.
	wait func(ctx context.Context, d time.Duration)
}

// New creates a Bot.
func New(api Sender, svc *service.QuizService, logger *slog.Logger) *Bot {
	if logger == nil {
		logger = slog.Default()
	}
	return &Bot{api: api, svc: svc, logger: logger, wait: sleep}
}

// Serve long-polls api for updates until ctx is cancelled.
func Serve(ctx context.Context, api *tgbotapi.BotAPI, svc *service.QuizService, logger *slog.Logger) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := api.GetUpdatesChan(u)
	defer api.StopReceivingUpdates()

	b := New(api, svc, logger)
	b.logger.Info("telegram bot polling", "username", api.Self.UserName)
	return b.Run(ctx, updates)
}

// Run handles updates until the channel closes or ctx is cancelled.
// Updates are handled concurrently; the service serializes per chat.
func (b *Bot) Run(ctx context.Context, updates <-chan tgbotapi.Update) error {
	var wg sync.WaitGroup
	defer wg.Wait()
	for {
		select {
		case <-ctx.Done():
			return nil
		case u, ok := <-updates:
			if !ok {
				return nil
			}
			wg.Add(1)
			go func() {
				defer wg.Done()
				b.handleUpdate(ctx, u)
			}()
		}
	}
}

func (b *Bot) handleUpdate(ctx context.Context, u tgbotapi.Update) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("panic handling update", "update_id", u.UpdateID, "panic", r)
		}
	}()

	switch {
	case u.CallbackQuery != nil:
		b.handleCallback(ctx, u.CallbackQuery)
	case u.Message != nil:
		b.handleMessage(ctx, u.Message)
	}
}

func (b *Bot) handleMessage(ctx context.Context, m *tgbotapi.Message) {
	chatID := m.Chat.ID
	if !m.IsCommand() {
		b.send(chatID, "Send /quiz to start a quiz or /help for commands.")
		return
	}

	b.logger.Debug("telegram command", "chat_id", chatID, "command", m.Command())
	switch m.Command() {
	case "start", "help":
		b.send(chatID, helpText())
	case "quiz":
		b.startQuiz(ctx, chatID, m.CommandArguments())
	case "score":
		b.sendScore(ctx, chatID)
	case "reset":
		if _, err := b.svc.Reset(ctx, chatToken(chatID)); err != nil {
			b.sendError(chatID, err)
			return
		}
		b.send(chatID, "Quiz reset. "+usage)
	default:
		b.send(chatID, "Unknown command. "+usage)
	}
}

func (b *Bot) startQuiz(ctx context.Context, chatID int64, args string) {
	req, err := parseQuizArgs(args)
	if err != nil {
		b.sendError(chatID, err)
		return
	}

	b.send(chatID, service.GeneratingLine(req))
	sess, err := b.svc.Generate(ctx, chatToken(chatID), req)
	if err != nil {
		b.sendError(chatID, err)
		return
	}
	b.sendQuestion(chatID, sess)
}

func (b *Bot) sendScore(ctx context.Context, chatID int64) {
	sess, err := b.svc.Current(ctx, chatToken(chatID))
	if err != nil {
		b.sendError(chatID, err)
		return
	}
	switch sess.State() {
	case quiz.Idle:
		b.send(chatID, service.MsgNoQuiz)
	case quiz.InProgress:
		b.send(chatID, fmt.Sprintf("%s\nScore so far: %d / %d", service.Progress(sess), sess.Score, sess.CurrentIndex))
	case quiz.Finished:
		b.send(chatID, service.ScoreLine(sess))
	}
}

func (b *Bot) handleCallback(ctx context.Context, cq *tgbotapi.CallbackQuery) {
	if cq.Message == nil || cq.Message.Chat == nil {
		b.ack(cq.ID, "")
		return
	}
	chatID := cq.Message.Chat.ID
	token := chatToken(chatID)

	if cq.Data == restartData {
		b.ack(cq.ID, "")
		if _, err := b.svc.Reset(ctx, token); err != nil {
			b.sendError(chatID, err)
			return
		}
		b.send(chatID, usage)
		return
	}

	sessionID, index, label, ok := parseAnswerData(cq.Data)
	if !ok {
		b.logger.Warn("unknown callback data", "chat_id", chatID, "data", cq.Data)
		b.ack(cq.ID, "")
		return
	}

	cur, err := b.svc.Current(ctx, token)
	if err != nil {
		b.ack(cq.ID, "")
		b.sendError(chatID, err)
		return
	}

	sess, out, err := b.svc.Submit(ctx, token, sessionID, index, selectedOption(cur, index, label))
	switch {
	case err == nil:
	case errors.Is(err, quiz.ErrStaleSubmission), errors.Is(err, quiz.ErrNotInProgress):
		b.ack(cq.ID, service.UserMessage(err))
		return
	default:
		b.ack(cq.ID, "")
		b.sendError(chatID, err)
		return
	}

	b.ack(cq.ID, "")
	b.clearKeyboard(chatID, cq.Message.MessageID)
	b.send(chatID, service.Feedback(out))

	if out.Finished {
		msg := tgbotapi.NewMessage(chatID, service.MsgFinished+"\n"+service.ScoreLine(sess))
		msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(
			tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData(service.MsgRestart, restartData)),
		)
		b.sendConfig(msg)
		return
	}

	b.wait(ctx, b.svc.FeedbackDelay())
	if ctx.Err() != nil {
		return
	}
	b.sendQuestion(chatID, sess)
}

// selectedOption returns the option text for label on question index,
// falling back to the bare label.
func selectedOption(s quiz.Session, index int, label string) string {
	if index < 0 || index >= len(s.Questions) {
		return label
	}
	if opt := s.Questions[index].OptionText(label); opt != "" {
		return opt
	}
	return label
}

func (b *Bot) sendQuestion(chatID int64, s quiz.Session) {
	q, ok := s.Current()
	if !ok {
		return
	}

	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(q.Options))
	for _, opt := range q.Options {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(opt, answerData(s.ID, s.CurrentIndex, quizgen.Label(opt))),
		))
	}

	text := fmt.Sprintf("%s\n\nQuestion %d:\n%s", service.Progress(s), s.CurrentIndex+1, q.Text)
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(rows...)
	b.sendConfig(msg)
}

func (b *Bot) clearKeyboard(chatID int64, messageID int) {
	edit := tgbotapi.NewEditMessageReplyMarkup(chatID, messageID,
		tgbotapi.InlineKeyboardMarkup{InlineKeyboard: [][]tgbotapi.InlineKeyboardButton{}})
	if _, err := b.api.Request(edit); err != nil {
		b.logger.Warn("clear keyboard failed", "chat_id", chatID, "error", err)
	}
}

func (b *Bot) sendError(chatID int64, err error) {
	if !service.IsUserError(err) {
		b.logger.Error("telegram request failed", "chat_id", chatID, "error", err)
	}
	b.send(chatID, service.UserMessage(err))
}

func (b *Bot) send(chatID int64, text string) {
	b.sendConfig(tgbotapi.NewMessage(chatID, text))
}

func (b *Bot) sendConfig(msg tgbotapi.MessageConfig) {
	if _, err := b.api.Send(msg); err != nil {
		b.logger.Warn("telegram send failed", "chat_id", msg.ChatID, "error", err)
	}
}

func (b *Bot) ack(id, text string) {
	if _, err := b.api.Request(tgbotapi.NewCallback(id, text)); err != nil {
		b.logger.Warn("callback answer failed", "error", err)
	}
}

func helpText() string {
	return service.AppTitle + "\n\n" +
		"/quiz <subject> | <topic> | <difficulty> - generate a quiz (Easy, Medium or Hard)\n" +
		"/score - show your score\n" +
		"/reset - discard the current quiz\n" +
		"/help - show this message"
}

func sleep(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}
