// Package report builds the downloadable dashboard workbook.
package report

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"spherical/internal/domain"
	"spherical/internal/workbench"
)

const (
	sheetSummary   = "Summary"
	sheetDocuments = "Documents"
	sheetFrequency = "Word Frequency"
	sheetAgents    = "Agent Runs"
)

// Input collects the workbench state going into the workbook.
type Input struct {
	Stats        workbench.Stats
	Documents    []domain.Document
	Frequencies  []domain.WordFrequency
	AgentResults []domain.AgentResult
}

// Write renders the dashboard workbook to w as an .xlsx file.
func Write(w io.Writer, in Input) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := writeSummary(f, in.Stats); err != nil {
		return err
	}
	if err := writeDocuments(f, in.Documents); err != nil {
		return err
	}
	if err := writeFrequencies(f, in.Frequencies); err != nil {
		return err
	}
	if err := writeAgents(f, in.AgentResults); err != nil {
		return err
	}

	// Drop the default sheet excelize creates.
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("deleting default sheet: %w", err)
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

func writeSummary(f *excelize.File, stats workbench.Stats) error {
	if _, err := f.NewSheet(sheetSummary); err != nil {
		return err
	}
	rows := [][]interface{}{
		{"Metric", "Value"},
		{"Documents", stats.DocumentCount},
		{"Pages Transcribed", stats.PagesTranscribed},
		{"Agent Runs", stats.AgentRunCount},
		{"Distinct Agents Run", stats.DistinctAgentsRun},
		{"Word Count", stats.WordCount},
	}
	return writeRows(f, sheetSummary, rows)
}

func writeDocuments(f *excelize.File, docs []domain.Document) error {
	if _, err := f.NewSheet(sheetDocuments); err != nil {
		return err
	}
	rows := [][]interface{}{{"ID", "Name", "Content Type", "OCR Pages", "Ingested At"}}
	for i := range docs {
		d := &docs[i]
		rows = append(rows, []interface{}{
			d.ID, d.Name, d.ContentType, len(d.OcrPages),
			d.IngestedAt.Format("2006-01-02 15:04:05"),
		})
	}
	return writeRows(f, sheetDocuments, rows)
}

func writeFrequencies(f *excelize.File, freq []domain.WordFrequency) error {
	if _, err := f.NewSheet(sheetFrequency); err != nil {
		return err
	}
	rows := [][]interface{}{{"Word", "Frequency"}}
	for _, wf := range freq {
		rows = append(rows, []interface{}{wf.Word, wf.Frequency})
	}
	return writeRows(f, sheetFrequency, rows)
}

func writeAgents(f *excelize.File, results []domain.AgentResult) error {
	if _, err := f.NewSheet(sheetAgents); err != nil {
		return err
	}
	rows := [][]interface{}{{"Agent", "Timestamp", "Analysis", "Follow-up Questions"}}
	for _, r := range results {
		rows = append(rows, []interface{}{
			r.AgentName,
			r.Timestamp.Format("2006-01-02 15:04:05"),
			r.Analysis,
			len(r.FollowUpQuestions),
		})
	}
	return writeRows(f, sheetAgents, rows)
}

func writeRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("writing %s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}
