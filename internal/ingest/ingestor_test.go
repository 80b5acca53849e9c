package ingest_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"spherical/internal/domain"
	"spherical/internal/ingest"
)

func TestDocuments_MixedBatch(t *testing.T) {
	now := time.Now()
	files := []ingest.File{
		{Name: "report.pdf", ContentType: "application/pdf", Data: []byte("%PDF-1.4 fake")},
		{Name: "notes.txt", ContentType: "text/plain", Data: []byte("hello world")},
		{Name: "data.csv", ContentType: "text/csv", Data: []byte("a,b\n1,2")},
		{Name: "photo.bin", ContentType: "application/octet-stream", Data: []byte{0x00, 0x01}},
	}

	docs := ingest.Documents(files, now)
	require.Len(t, docs, 4)

	pdf := docs[0]
	assert.True(t, pdf.IsPDF())
	assert.NotNil(t, pdf.SourceFile)
	assert.NotNil(t, pdf.OcrPages)
	assert.Empty(t, pdf.OcrPages)
	assert.Equal(t, "", pdf.TextContent)

	txt := docs[1]
	assert.False(t, txt.IsPDF())
	assert.Nil(t, txt.SourceFile)
	assert.Nil(t, txt.OcrPages)
	assert.Equal(t, "hello world", txt.TextContent)

	csv := docs[2]
	assert.Equal(t, "a,b\n1,2", csv.TextContent)

	other := docs[3]
	assert.Nil(t, other.SourceFile)
	assert.Equal(t, domain.SentinelUnsupportedType, other.TextContent)
}

func TestDocuments_DistinctIDsForSameName(t *testing.T) {
	now := time.Now()
	files := []ingest.File{
		{Name: "dup.txt", ContentType: "text/plain", Data: []byte("one")},
		{Name: "dup.txt", ContentType: "text/plain", Data: []byte("two")},
	}

	docs := ingest.Documents(files, now)
	require.Len(t, docs, 2)
	assert.NotEqual(t, docs[0].ID, docs[1].ID)
}

func TestDocuments_ExtensionFallback(t *testing.T) {
	docs := ingest.Documents([]ingest.File{
		{Name: "readme.md", Data: []byte("# title")},
		{Name: "scan.pdf", Data: []byte("%PDF-1.4")},
	}, time.Now())

	require.Len(t, docs, 2)
	assert.Equal(t, domain.ContentTypeMarkdown, docs[0].ContentType)
	assert.Equal(t, "# title", docs[0].TextContent)
	assert.True(t, docs[1].IsPDF())
}

func TestDocuments_OctetStreamFallsBackToExtension(t *testing.T) {
	docs := ingest.Documents([]ingest.File{
		{Name: "notes.txt", ContentType: "application/octet-stream", Data: []byte("plain text")},
	}, time.Now())

	require.Len(t, docs, 1)
	assert.Equal(t, domain.ContentTypeText, docs[0].ContentType)
	assert.Equal(t, "plain text", docs[0].TextContent)
}

func TestDocuments_ContentTypeParameterStripped(t *testing.T) {
	docs := ingest.Documents([]ingest.File{
		{Name: "notes.txt", ContentType: "text/plain; charset=utf-8", Data: []byte("x")},
	}, time.Now())

	require.Len(t, docs, 1)
	assert.Equal(t, domain.ContentTypeText, docs[0].ContentType)
}
