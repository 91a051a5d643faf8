package telegram

import (
	"context"
	"sync"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/quizcrafter/internal/llm"
	"github.com/abhisek/quizcrafter/internal/logging"
	"github.com/abhisek/quizcrafter/internal/quiz"
	"github.com/abhisek/quizcrafter/internal/quizgen"
	"github.com/abhisek/quizcrafter/internal/service"
	"github.com/abhisek/quizcrafter/internal/sessionstore"
)

const twoQuestions = `[
	{"question":"2+2?","options":["a: 3","b: 4","c: 5","d: 6"],"correct_option":"b"},
	{"question":"Capital of France?","options":["a: Paris","b: Rome","c: Berlin","d: Madrid"],"correct_option":"a"}
]`

type fakeSender struct {
	mu       sync.Mutex
	messages []tgbotapi.MessageConfig
	acks     []tgbotapi.CallbackConfig
	edits    int
}

func (f *fakeSender) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if m, ok := c.(tgbotapi.MessageConfig); ok {
		f.messages = append(f.messages, m)
	}
	return tgbotapi.Message{MessageID: len(f.messages)}, nil
}

func (f *fakeSender) Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	switch v := c.(type) {
	case tgbotapi.CallbackConfig:
		f.acks = append(f.acks, v)
	case tgbotapi.EditMessageReplyMarkupConfig:
		f.edits++
	}
	return &tgbotapi.APIResponse{Ok: true}, nil
}

func (f *fakeSender) last() tgbotapi.MessageConfig {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.messages[len(f.messages)-1]
}

func (f *fakeSender) texts() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.messages))
	for i, m := range f.messages {
		out[i] = m.Text
	}
	return out
}

func newTestBot(t *testing.T, responses ...llm.MockResponse) (*Bot, *fakeSender, *service.QuizService) {
	t.Helper()
	svc := service.New(service.Options{
		Generator: quizgen.New(llm.NewMockProvider(responses...), quizgen.DefaultConfig()),
		Sessions:  sessionstore.NewMemory(time.Hour),
		Logger:    logging.Discard(),
	})
	fs := &fakeSender{}
	b := New(fs, svc, logging.Discard())
	b.wait = func(context.Context, time.Duration) {}
	return b, fs, svc
}

func command(chatID int64, text string) tgbotapi.Update {
	length := len(text)
	for i, r := range text {
		if r == ' ' {
			length = i
			break
		}
	}
	return tgbotapi.Update{Message: &tgbotapi.Message{
		Text:     text,
		Chat:     &tgbotapi.Chat{ID: chatID},
		Entities: []tgbotapi.MessageEntity{{Type: "bot_command", Offset: 0, Length: length}},
	}}
}

func press(chatID int64, messageID int, data string) tgbotapi.Update {
	return tgbotapi.Update{CallbackQuery: &tgbotapi.CallbackQuery{
		ID:      "cb",
		Data:    data,
		Message: &tgbotapi.Message{MessageID: messageID, Chat: &tgbotapi.Chat{ID: chatID}},
	}}
}

func keyboard(t *testing.T, m tgbotapi.MessageConfig) [][]tgbotapi.InlineKeyboardButton {
	t.Helper()
	kb, ok := m.ReplyMarkup.(tgbotapi.InlineKeyboardMarkup)
	require.True(t, ok, "message has no inline keyboard")
	return kb.InlineKeyboard
}

// buttonData returns the callback data of option row of the last message.
func buttonData(t *testing.T, fs *fakeSender, row int) string {
	t.Helper()
	rows := keyboard(t, fs.last())
	require.Greater(t, len(rows), row)
	require.NotNil(t, rows[row][0].CallbackData)
	return *rows[row][0].CallbackData
}

func TestBot_FullQuiz(t *testing.T) {
	b, fs, svc := newTestBot(t, llm.TextResponse(twoQuestions))
	ctx := context.Background()

	b.handleUpdate(ctx, command(42, "/quiz Math | Arithmetic | easy"))
	texts := fs.texts()
	require.Len(t, texts, 2)
	assert.Equal(t, "Generating quiz for Math on Arithmetic at Easy difficulty...", texts[0])
	assert.Contains(t, texts[1], "Question 1 of 2")
	assert.Contains(t, texts[1], "2+2?")

	sess, err := svc.Current(ctx, "tg:42")
	require.NoError(t, err)
	rows := keyboard(t, fs.last())
	require.Len(t, rows, 4)
	assert.Equal(t, "b: 4", rows[1][0].Text)
	first := buttonData(t, fs, 1)
	assert.Equal(t, "ans:"+sess.ID+":0:b", first)
	assert.LessOrEqual(t, len(first), 64)

	b.handleUpdate(ctx, press(42, 2, first))
	texts = fs.texts()
	assert.Equal(t, service.MsgCorrect, texts[len(texts)-2])
	assert.Contains(t, texts[len(texts)-1], "Question 2 of 2")
	assert.Equal(t, 1, fs.edits)

	// Pressing a button of the answered question again changes nothing.
	before := len(fs.texts())
	b.handleUpdate(ctx, press(42, 2, first))
	assert.Len(t, fs.texts(), before)
	assert.Equal(t, service.MsgStale, fs.acks[len(fs.acks)-1].Text)

	b.handleUpdate(ctx, press(42, 5, buttonData(t, fs, 2)))
	texts = fs.texts()
	assert.Equal(t, "❌ Incorrect. The correct answer is: A", texts[len(texts)-2])
	assert.Equal(t, "Quiz finished!\nYour score: 1 / 2", texts[len(texts)-1])
	restart := keyboard(t, fs.last())
	assert.Equal(t, "Restart Quiz", restart[0][0].Text)

	sess, err = svc.Current(ctx, "tg:42")
	require.NoError(t, err)
	assert.Equal(t, quiz.Finished, sess.State())
	assert.Equal(t, 1, sess.Score)

	b.handleUpdate(ctx, press(42, 9, restartData))
	sess, err = svc.Current(ctx, "tg:42")
	require.NoError(t, err)
	assert.Equal(t, quiz.Idle, sess.State())
}

func TestBot_ChatsAreIsolated(t *testing.T) {
	b, fs, svc := newTestBot(t, llm.TextResponse(twoQuestions))
	ctx := context.Background()

	b.handleUpdate(ctx, command(1, "/quiz Math | Arithmetic"))
	b.handleUpdate(ctx, press(2, 1, buttonData(t, fs, 1)))

	one, _ := svc.Current(ctx, "tg:1")
	two, _ := svc.Current(ctx, "tg:2")
	assert.Equal(t, 0, one.CurrentIndex)
	assert.Equal(t, quiz.Idle, two.State())
}

func TestBot_CommandErrors(t *testing.T) {
	b, fs, _ := newTestBot(t, llm.TextResponse("no questions today"))
	ctx := context.Background()

	b.handleUpdate(ctx, command(7, "/quiz Math"))
	assert.Contains(t, fs.last().Text, quizgen.MsgMissingSubjectTopic)

	b.handleUpdate(ctx, command(7, "/quiz Math | Algebra | Extreme"))
	assert.Contains(t, fs.last().Text, "Difficulty must be")

	b.handleUpdate(ctx, command(7, "/quiz Math | Algebra | Hard"))
	assert.Contains(t, fs.last().Text, "Failed to parse")

	b.handleUpdate(ctx, command(7, "/score"))
	assert.Equal(t, service.MsgNoQuiz, fs.last().Text)

	b.handleUpdate(ctx, command(7, "/help"))
	assert.Contains(t, fs.last().Text, "/quiz <subject>")
}

func TestBot_Score(t *testing.T) {
	b, fs, _ := newTestBot(t, llm.TextResponse(twoQuestions))
	ctx := context.Background()

	b.handleUpdate(ctx, command(3, "/quiz Math | Arithmetic | Medium"))
	b.handleUpdate(ctx, press(3, 2, buttonData(t, fs, 1)))
	b.handleUpdate(ctx, command(3, "/score"))
	assert.Equal(t, "Question 2 of 2\nScore so far: 1 / 1", fs.last().Text)
}

func TestBot_OldKeyboardDoesNotAnswerNewQuiz(t *testing.T) {
	b, fs, svc := newTestBot(t, llm.TextResponse(twoQuestions), llm.TextResponse(twoQuestions))
	ctx := context.Background()

	b.handleUpdate(ctx, command(8, "/quiz Math | Arithmetic"))
	old := buttonData(t, fs, 1)
	b.handleUpdate(ctx, command(8, "/reset"))
	b.handleUpdate(ctx, command(8, "/quiz Math | Arithmetic"))
	current, err := svc.Current(ctx, "tg:8")
	require.NoError(t, err)
	require.NotContains(t, old, current.ID)

	before := len(fs.texts())
	b.handleUpdate(ctx, press(8, 2, old))
	assert.Len(t, fs.texts(), before)
	assert.Equal(t, service.MsgStale, fs.acks[len(fs.acks)-1].Text)

	after, err := svc.Current(ctx, "tg:8")
	require.NoError(t, err)
	assert.Equal(t, current.ID, after.ID)
	assert.Equal(t, 0, after.CurrentIndex)
	assert.Equal(t, 0, after.Score)
}

func TestBot_RunStopsOnCancel(t *testing.T) {
	b, _, _ := newTestBot(t)
	ctx, cancel := context.WithCancel(context.Background())
	updates := make(chan tgbotapi.Update)

	done := make(chan error, 1)
	go func() { done <- b.Run(ctx, updates) }()
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestParseQuizArgs(t *testing.T) {
	tests := []struct {
		args string
		want quizgen.Request
		ok   bool
	}{
		{"Math | Algebra | Hard", quizgen.Request{Subject: "Math", Topic: "Algebra", Difficulty: quizgen.Hard}, true},
		{" Math|Algebra ", quizgen.Request{Subject: "Math", Topic: "Algebra", Difficulty: quizgen.Easy}, true},
		{"Math | Algebra | ", quizgen.Request{Subject: "Math", Topic: "Algebra", Difficulty: quizgen.Easy}, true},
		{"Math", quizgen.Request{}, false},
		{" | Algebra", quizgen.Request{}, false},
		{"a | b | c | d", quizgen.Request{}, false},
		{"Math | Algebra | Nightmare", quizgen.Request{}, false},
	}
	for _, tt := range tests {
		got, err := parseQuizArgs(tt.args)
		if !tt.ok {
			var ive *quizgen.InputValidationError
			assert.ErrorAs(t, err, &ive, tt.args)
			continue
		}
		require.NoError(t, err, tt.args)
		assert.Equal(t, tt.want, got, tt.args)
	}
}

func TestParseAnswerData(t *testing.T) {
	id, idx, label, ok := parseAnswerData(answerData("q-1", 12, "c"))
	require.True(t, ok)
	assert.Equal(t, "q-1", id)
	assert.Equal(t, 12, idx)
	assert.Equal(t, "c", label)

	for _, bad := range []string{"", "restart", "ans:", "ans:0:b", "ans:q:x:b", "ans:q:1:", "ans::1:a", "ans:q:-1:a", "answer:q:1:a"} {
		_, _, _, ok := parseAnswerData(bad)
		assert.False(t, ok, bad)
	}
}
