// Package export writes quiz history to Excel workbooks.
package export

import (
	"context"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/abhisek/quizcrafter/internal/store"
)

// Sheet names.
const (
	ResultsSheet = "Results"
	AnswersSheet = "Answers"
)

const timeLayout = "2006-01-02 15:04:05"

var (
	resultHeaders = []any{"Session", "User", "Subject", "Topic", "Difficulty", "Score", "Total", "Percent", "Started", "Finished"}
	answerHeaders = []any{"Session", "Question #", "Question", "Selected", "Correct Option", "Correct", "Answered"}
)

// Counts reports how many rows were written.
type Counts struct {
	Results int
	Answers int
}

// Write exports the results matching opts, with their answers, as an
// .xlsx workbook.
func Write(ctx context.Context, w io.Writer, repo store.QuizRepo, opts store.QueryOpts) (Counts, error) {
	results, err := repo.QueryQuizResults(ctx, opts)
	if err != nil {
		return Counts{}, err
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", ResultsSheet); err != nil {
		return Counts{}, fmt.Errorf("rename sheet: %w", err)
	}
	if _, err := f.NewSheet(AnswersSheet); err != nil {
		return Counts{}, fmt.Errorf("create sheet: %w", err)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return Counts{}, fmt.Errorf("create style: %w", err)
	}
	if err := writeHeader(f, ResultsSheet, resultHeaders, bold); err != nil {
		return Counts{}, err
	}
	if err := writeHeader(f, AnswersSheet, answerHeaders, bold); err != nil {
		return Counts{}, err
	}

	var counts Counts
	answerRow := 2
	for i, r := range results {
		percent := 0.0
		if r.Total > 0 {
			percent = float64(r.Score) / float64(r.Total) * 100
		}
		row := []any{
			r.SessionID, r.UserToken, r.Subject, r.Topic, r.Difficulty,
			r.Score, r.Total, percent,
			r.StartedAt.Format(timeLayout), r.FinishedAt.Format(timeLayout),
		}
		if err := setRow(f, ResultsSheet, i+2, row); err != nil {
			return Counts{}, err
		}
		counts.Results++

		answers, err := repo.QuizAnswers(ctx, r.SessionID)
		if err != nil {
			return Counts{}, err
		}
		for _, a := range answers {
			row := []any{
				a.SessionID, a.QuestionIndex + 1, a.Question, a.Selected,
				a.CorrectOption, a.Correct, a.AnsweredAt.Format(timeLayout),
			}
			if err := setRow(f, AnswersSheet, answerRow, row); err != nil {
				return Counts{}, err
			}
			answerRow++
			counts.Answers++
		}
	}

	f.SetActiveSheet(0)
	if err := f.Write(w); err != nil {
		return Counts{}, fmt.Errorf("write workbook: %w", err)
	}
	return counts, nil
}

func writeHeader(f *excelize.File, sheet string, headers []any, style int) error {
	if err := setRow(f, sheet, 1, headers); err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(len(headers), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", last, style); err != nil {
		return fmt.Errorf("style header: %w", err)
	}
	return nil
}

func setRow(f *excelize.File, sheet string, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("write %s row %d: %w", sheet, row, err)
	}
	return nil
}
