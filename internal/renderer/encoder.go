package renderer

import (
	"bytes"
	"fmt"
	"image"
	"image/png"

	"github.com/jung-kurt/gofpdf"

	ierr "github.com/billcraft/billcraft/internal/errors"
)

// Encoder turns rasterized page buffers into a single binary document
type Encoder interface {
	Encode(pages []*image.RGBA) ([]byte, error)
}

type pdfEncoder struct{}

// NewEncoder returns the default PDF encoder. Each raster page becomes one
// full-bleed page image in the output document.
func NewEncoder() Encoder {
	return &pdfEncoder{}
}

func (e *pdfEncoder) Encode(pages []*image.RGBA) ([]byte, error) {
	if len(pages) == 0 {
		return nil, ierr.NewError("no pages to encode").
			Mark(ierr.ErrEncodingFailed)
	}

	bounds := pages[0].Bounds()
	width := float64(bounds.Dx())
	height := float64(bounds.Dy())

	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           gofpdf.SizeType{Wd: width, Ht: height},
	})

	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	for i, page := range pages {
		var buf bytes.Buffer
		if err := png.Encode(&buf, page); err != nil {
			return nil, ierr.WithError(err).
				WithMessagef("failed to encode raster page %d", i+1).
				Mark(ierr.ErrEncodingFailed)
		}

		name := fmt.Sprintf("page-%d", i+1)
		pdf.RegisterImageOptionsReader(name, opts, &buf)
		pdf.AddPage()
		pdf.ImageOptions(name, 0, 0, width, height, false, opts, 0, "")
	}

	var out bytes.Buffer
	if err := pdf.Output(&out); err != nil {
		return nil, ierr.WithError(err).
			WithMessage("failed to write pdf document").
			Mark(ierr.ErrEncodingFailed)
	}

	return out.Bytes(), nil
}
