package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// quizRepo implements QuizRepo.
type quizRepo struct {
	db  *sql.DB
	seq *sequenceCounter
}

func (r *quizRepo) AppendQuizAnswer(ctx context.Context, data QuizAnswerData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	at := data.AnsweredAt
	if at.IsZero() {
		at = time.Now()
	}

	_, err = r.db.ExecContext(ctx, `INSERT OR IGNORE INTO quiz_answers (
		sequence, timestamp, session_id, question_index, question,
		selected, correct_option, correct
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		seqNum, at.UnixMilli(), data.SessionID, data.QuestionIndex, data.Question,
		data.Selected, data.CorrectOption, data.Correct,
	)
	if err != nil {
		return fmt.Errorf("save quiz answer: %w", err)
	}
	return nil
}

func (r *quizRepo) AppendQuizResult(ctx context.Context, data QuizResultData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	finished := data.FinishedAt
	if finished.IsZero() {
		finished = time.Now()
	}

	_, err = r.db.ExecContext(ctx, `INSERT OR IGNORE INTO quiz_results (
		sequence, session_id, user_token, subject, topic, difficulty,
		score, total, started_at, finished_at
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		seqNum, data.SessionID, data.UserToken, data.Subject, data.Topic, data.Difficulty,
		data.Score, data.Total, data.StartedAt.UnixMilli(), finished.UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("save quiz result: %w", err)
	}
	return nil
}

func (r *quizRepo) QueryQuizResults(ctx context.Context, opts QueryOpts) ([]QuizResult, error) {
	where, args := opts.clause("finished_at")
	rows, err := r.db.QueryContext(ctx, `SELECT id, sequence, session_id, user_token,
		subject, topic, difficulty, score, total, started_at, finished_at
		FROM quiz_results`+where+` ORDER BY sequence DESC`+opts.limit(), args...)
	if err != nil {
		return nil, fmt.Errorf("query quiz results: %w", err)
	}
	defer rows.Close()

	var out []QuizResult
	for rows.Next() {
		var (
			q                 QuizResult
			started, finished int64
		)
		if err := rows.Scan(&q.ID, &q.Sequence, &q.SessionID, &q.UserToken,
			&q.Subject, &q.Topic, &q.Difficulty, &q.Score, &q.Total, &started, &finished); err != nil {
			return nil, fmt.Errorf("scan quiz result: %w", err)
		}
		q.StartedAt = time.UnixMilli(started)
		q.FinishedAt = time.UnixMilli(finished)
		out = append(out, q)
	}
	return out, rows.Err()
}

func (r *quizRepo) QuizAnswers(ctx context.Context, sessionID string) ([]QuizAnswer, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, sequence, timestamp, session_id,
		question_index, question, selected, correct_option, correct
		FROM quiz_answers WHERE session_id = ? ORDER BY question_index`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("query quiz answers: %w", err)
	}
	defer rows.Close()

	var out []QuizAnswer
	for rows.Next() {
		var (
			a  QuizAnswer
			ts int64
		)
		if err := rows.Scan(&a.ID, &a.Sequence, &ts, &a.SessionID, &a.QuestionIndex,
			&a.Question, &a.Selected, &a.CorrectOption, &a.Correct); err != nil {
			return nil, fmt.Errorf("scan quiz answer: %w", err)
		}
		a.AnsweredAt = time.UnixMilli(ts)
		out = append(out, a)
	}
	return out, rows.Err()
}
