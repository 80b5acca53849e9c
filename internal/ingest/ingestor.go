// Package ingest turns raw uploaded files into workbench documents.
package ingest

import (
	"io"
	"log"
	"mime"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"spherical/internal/domain"
)

// File is a raw input file, already read into memory.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

// Documents converts a batch of files into documents. A single bad file never
// fails the batch: each file yields exactly one document. PDFs keep their raw
// bytes for later rendering and get an empty OCR placeholder; text-like types
// are decoded directly; anything else gets the unsupported-type sentinel.
func Documents(files []File, now time.Time) []domain.Document {
	docs := make([]domain.Document, 0, len(files))
	for i, f := range files {
		// Offset keeps IDs distinct for same-named files in one batch.
		at := now.Add(time.Duration(i))
		docs = append(docs, document(f, at))
	}
	return docs
}

func document(f File, at time.Time) domain.Document {
	doc := domain.Document{
		ID:          domain.NewDocumentID(f.Name, at),
		Name:        f.Name,
		ContentType: normalizeContentType(f.Name, f.ContentType),
		IngestedAt:  at,
	}

	switch {
	case doc.ContentType == domain.ContentTypePDF:
		doc.SourceFile = f.Data
		doc.OcrPages = []domain.OcrResult{}
	case domain.TextContentTypes[doc.ContentType]:
		doc.TextContent = string(f.Data)
	default:
		doc.TextContent = domain.SentinelUnsupportedType
	}
	return doc
}

// normalizeContentType strips MIME parameters and falls back to the file
// extension when no usable type was declared. application/octet-stream is
// treated as undeclared; it is what generic upload clients send for anything.
func normalizeContentType(name, declared string) string {
	if declared != "" {
		if mt, _, err := mime.ParseMediaType(declared); err == nil {
			declared = mt
		}
		if declared != "application/octet-stream" {
			return declared
		}
	}
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
	if ct, ok := domain.ExtensionContentTypes[ext]; ok {
		return ct
	}
	return declared
}

// ReadMultipart reads one uploaded part into a File. Callers skip files that
// fail to read so the rest of the batch still ingests.
func ReadMultipart(header *multipart.FileHeader) (File, error) {
	part, err := header.Open()
	if err != nil {
		return File{}, err
	}
	defer func() { _ = part.Close() }()

	data, err := io.ReadAll(part)
	if err != nil {
		return File{}, err
	}

	return File{
		Name:        filepath.Base(header.Filename),
		ContentType: header.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}

// ReadMultipartBatch reads every part it can, logging and skipping the rest.
func ReadMultipartBatch(headers []*multipart.FileHeader) []File {
	files := make([]File, 0, len(headers))
	for _, h := range headers {
		f, err := ReadMultipart(h)
		if err != nil {
			log.Printf("ingest.ReadMultipartBatch: skipping %s: %v", h.Filename, err)
			continue
		}
		files = append(files, f)
	}
	return files
}
