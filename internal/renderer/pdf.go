// Package renderer converts PDF source files into ordered page blobs for
// transcription.
package renderer

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"strconv"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"spherical/internal/domain"
	"spherical/internal/port"
)

// PDFRenderer implements port.PageRenderer by splitting a PDF into
// single-page blobs with pdfcpu. Each blob is itself a one-page PDF the
// oracle can transcribe inline.
type PDFRenderer struct {
	maxPages int
	conf     *model.Configuration
}

// NewPDFRenderer creates a renderer. maxPages <= 0 means no page limit.
func NewPDFRenderer(maxPages int) *PDFRenderer {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	return &PDFRenderer{maxPages: maxPages, conf: conf}
}

// RenderPages splits source into ordered single-page blobs. Any failure is
// fatal to the run: no partial page list is returned with an error.
func (r *PDFRenderer) RenderPages(ctx context.Context, source []byte) ([]port.Page, error) {
	count, err := api.PageCount(bytes.NewReader(source), r.conf)
	if err != nil {
		return nil, fmt.Errorf("%w: counting pages: %v", domain.ErrRenderFailed, err)
	}
	if count == 0 {
		return nil, fmt.Errorf("%w: document has no pages", domain.ErrRenderFailed)
	}
	if r.maxPages > 0 && count > r.maxPages {
		return nil, fmt.Errorf("%w: %d pages exceeds limit of %d", domain.ErrRenderFailed, count, r.maxPages)
	}

	pages := make([]port.Page, 0, count)
	for n := 1; n <= count; n++ {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrRenderFailed, err)
		}

		var buf bytes.Buffer
		if err := api.Trim(bytes.NewReader(source), &buf, []string{strconv.Itoa(n)}, r.conf); err != nil {
			return nil, fmt.Errorf("%w: extracting page %d: %v", domain.ErrRenderFailed, n, err)
		}

		data := buf.Bytes()
		pages = append(pages, port.Page{
			Number:      n,
			Data:        data,
			ContentType: domain.ContentTypePDF,
			DataURL:     "data:application/pdf;base64," + base64.StdEncoding.EncodeToString(data),
		})
	}

	return pages, nil
}
