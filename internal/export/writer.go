// Package export renders workbench data as CSV for download.
package export

import (
	"encoding/csv"
	"io"
	"strconv"

	"spherical/internal/domain"
)

// UTF-8 BOM bytes for Excel compatibility on Windows.
var BOM = []byte{0xEF, 0xBB, 0xBF}

var frequencyColumns = []string{"Word", "Frequency"}

var documentColumns = []string{
	"ID",
	"Name",
	"Content Type",
	"Characters",
	"OCR Pages",
	"Ingested At",
}

// Writer wraps csv.Writer for exporting workbench tables.
type Writer struct {
	csv *csv.Writer
}

// NewWriter creates a Writer that writes CSV to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{csv: csv.NewWriter(w)}
}

// WriteFrequencies writes the word-frequency table with its header row.
func (w *Writer) WriteFrequencies(freq []domain.WordFrequency) error {
	if err := w.csv.Write(frequencyColumns); err != nil {
		return err
	}
	for _, f := range freq {
		if err := w.csv.Write([]string{f.Word, strconv.Itoa(f.Frequency)}); err != nil {
			return err
		}
	}
	return nil
}

// WriteDocuments writes the document inventory with its header row.
func (w *Writer) WriteDocuments(docs []domain.Document) error {
	if err := w.csv.Write(documentColumns); err != nil {
		return err
	}
	for i := range docs {
		d := &docs[i]
		row := []string{
			d.ID,
			d.Name,
			d.ContentType,
			strconv.Itoa(len(d.TextContent)),
			strconv.Itoa(len(d.OcrPages)),
			d.IngestedAt.Format("2006-01-02 15:04:05"),
		}
		if err := w.csv.Write(row); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes the underlying csv.Writer buffer.
func (w *Writer) Flush() error {
	w.csv.Flush()
	return w.csv.Error()
}
