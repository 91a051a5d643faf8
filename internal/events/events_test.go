package events

import (
	"bytes"
	"context"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/quizcrafter/internal/store"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
}

func TestNewBus_Drivers(t *testing.T) {
	b, err := NewBus(Config{}, testLogger())
	require.NoError(t, err)
	assert.NotNil(t, b.Subscriber())
	require.NoError(t, b.Close())

	none, err := NewBus(Config{Driver: DriverNone}, testLogger())
	require.NoError(t, err)
	assert.Nil(t, none.Subscriber())
	assert.NoError(t, none.Publish(context.Background(), New(QuizStarted, "t", "s", StartedData{})))
	assert.NoError(t, none.Close())

	_, err = NewBus(Config{Driver: DriverKafka}, testLogger())
	assert.Error(t, err, "kafka without brokers")

	_, err = NewBus(Config{Driver: "carrier-pigeon"}, testLogger())
	assert.Error(t, err)
}

func TestBus_PublishDeliversEnvelope(t *testing.T) {
	b, err := NewBus(Config{Driver: DriverGoChannel}, testLogger())
	require.NoError(t, err)
	defer b.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	msgs, err := b.Subscriber().Subscribe(ctx, string(QuizStarted))
	require.NoError(t, err)

	ev := New(QuizStarted, "web:abc", "s-1", StartedData{Subject: "Math", Topic: "Sums", Difficulty: "Easy", Total: 20})
	require.NoError(t, b.Publish(ctx, ev))

	select {
	case msg := <-msgs:
		msg.Ack()
		assert.Equal(t, ev.ID, msg.UUID)
		assert.Equal(t, "quiz.started", msg.Metadata.Get("event_type"))
		assert.Equal(t, "s-1", msg.Metadata.Get("session_id"))

		env, err := decode(msg)
		require.NoError(t, err)
		assert.Equal(t, "web:abc", env.Token)
		assert.Equal(t, source, env.Source)
		assert.JSONEq(t, `{"subject":"Math","topic":"Sums","difficulty":"Easy","total":20}`, string(env.Data))
	case <-ctx.Done():
		t.Fatal("no message delivered")
	}
}

func TestRecorder_WritesHistory(t *testing.T) {
	s, err := store.Open(filepath.Join(t.TempDir(), "events.db"))
	require.NoError(t, err)
	defer s.Close()

	b, err := NewBus(Config{}, testLogger())
	require.NoError(t, err)
	defer b.Close()

	rec, err := NewRecorder(b, s.QuizRepo(), testLogger())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go rec.Run(ctx)
	<-rec.Running()

	started := time.Now().Add(-time.Minute).UTC().Truncate(time.Millisecond)
	require.NoError(t, b.Publish(ctx, New(QuizAnswered, "web:abc", "s-1", AnsweredData{
		Index: 0, Question: "2+2?", Selected: "b: 4", CorrectOption: "b", Correct: true, Score: 1,
	})))
	require.NoError(t, b.Publish(ctx, New(QuizFinished, "web:abc", "s-1", FinishedData{
		Subject: "Math", Topic: "Sums", Difficulty: "Easy", Score: 1, Total: 1,
		StartedAt: started, FinishedAt: time.Now().UTC(),
	})))

	repo := s.QuizRepo()
	require.Eventually(t, func() bool {
		results, err := repo.QueryQuizResults(ctx, store.QueryOpts{})
		if err != nil || len(results) != 1 {
			return false
		}
		answers, err := repo.QuizAnswers(ctx, "s-1")
		return err == nil && len(answers) == 1
	}, 5*time.Second, 20*time.Millisecond)

	results, err := repo.QueryQuizResults(ctx, store.QueryOpts{})
	require.NoError(t, err)
	assert.Equal(t, "web:abc", results[0].UserToken)
	assert.Equal(t, 1, results[0].Score)
	assert.True(t, results[0].StartedAt.Equal(started))

	answers, err := repo.QuizAnswers(ctx, "s-1")
	require.NoError(t, err)
	assert.True(t, answers[0].Correct)
	assert.Equal(t, "b: 4", answers[0].Selected)

	require.NoError(t, rec.Close())
}

func TestNewRecorder_NeedsSubscriber(t *testing.T) {
	b, err := NewBus(Config{Driver: DriverNone}, testLogger())
	require.NoError(t, err)
	_, err = NewRecorder(b, nil, testLogger())
	assert.Error(t, err)
}
