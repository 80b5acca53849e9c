package report_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"spherical/internal/domain"
	"spherical/internal/report"
	"spherical/internal/workbench"
)

func TestWriteWorkbook(t *testing.T) {
	var buf bytes.Buffer
	err := report.Write(&buf, report.Input{
		Stats: workbench.Stats{
			DocumentCount:     2,
			PagesTranscribed:  3,
			AgentRunCount:     1,
			DistinctAgentsRun: 1,
			WordCount:         42,
		},
		Documents: []domain.Document{
			{
				ID:          "scan-pdf-1",
				Name:        "scan.pdf",
				ContentType: domain.ContentTypePDF,
				OcrPages:    []domain.OcrResult{{PageNumber: 1}, {PageNumber: 2}},
				IngestedAt:  time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC),
			},
		},
		Frequencies: []domain.WordFrequency{
			{Word: "aspirin", Frequency: 7},
		},
		AgentResults: []domain.AgentResult{
			{
				AgentID:           "adverse-events",
				AgentName:         "Adverse Event Detector",
				Timestamp:         time.Date(2026, 8, 30, 13, 0, 0, 0, time.UTC),
				Analysis:          "Two adverse events found.",
				FollowUpQuestions: []string{"Which cohort?"},
			},
		},
	})
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	defer f.Close()

	assert.ElementsMatch(t,
		[]string{"Summary", "Documents", "Word Frequency", "Agent Runs"},
		f.GetSheetList())

	val, err := f.GetCellValue("Summary", "B2")
	require.NoError(t, err)
	assert.Equal(t, "2", val)

	val, err = f.GetCellValue("Documents", "B2")
	require.NoError(t, err)
	assert.Equal(t, "scan.pdf", val)

	val, err = f.GetCellValue("Word Frequency", "A2")
	require.NoError(t, err)
	assert.Equal(t, "aspirin", val)

	val, err = f.GetCellValue("Agent Runs", "A2")
	require.NoError(t, err)
	assert.Equal(t, "Adverse Event Detector", val)
}

func TestWriteWorkbookEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, report.Write(&buf, report.Input{}))

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Documents")
	require.NoError(t, err)
	require.Len(t, rows, 1)
}
