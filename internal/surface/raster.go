package surface

import (
	"image"
	"image/color"
	stddraw "image/draw"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	ierr "github.com/billcraft/billcraft/internal/errors"
)

const (
	lineHeightPx = 16
	charWidthPx  = 7
	fontAscentPx = 11
	ruleHeightPx = 8
	spacerPx     = 8
	placeholderW = 120
	placeholderH = 64
)

// Rasterizer converts a mounted surface into page-sized pixel buffers
type Rasterizer interface {
	Rasterize(s *Surface) ([]*image.RGBA, error)
}

type basicRasterizer struct{}

// NewRasterizer returns the default rasterizer, which lays text out with a
// fixed-width bitmap face and scales embedded images to the content width
func NewRasterizer() Rasterizer {
	return &basicRasterizer{}
}

type rasterState struct {
	marginPx int
	widthPx  int
	heightPx int
	pages    []*image.RGBA
	page     *image.RGBA
	y        int
}

func (r *basicRasterizer) Rasterize(s *Surface) ([]*image.RGBA, error) {
	if s.released {
		return nil, ierr.NewError("cannot rasterize a released surface").
			Mark(ierr.ErrRasterizationFailed)
	}
	if !s.mounted {
		return nil, ierr.NewError("cannot rasterize before markup is mounted").
			Mark(ierr.ErrRasterizationFailed)
	}

	geo := s.geometry
	st := &rasterState{
		marginPx: geo.MarginPx,
		widthPx:  geo.WidthPx,
		heightPx: geo.HeightPx,
	}
	st.newPage()

	maxCols := geo.ContentWidth() / charWidthPx
	if maxCols < 1 {
		return nil, ierr.NewError("page geometry leaves no content width").
			Mark(ierr.ErrRasterizationFailed)
	}
	bottom := geo.HeightPx - geo.MarginPx

	for _, el := range s.elements {
		switch el.kind {
		case spacerElement:
			st.y += spacerPx
		case pageBreakElement:
			st.newPage()
		case ruleElement:
			if st.y+ruleHeightPx > bottom {
				st.newPage()
			}
			st.drawRule()
			st.y += ruleHeightPx
		case textElement:
			for _, chunk := range wrapText(el.text, maxCols) {
				if st.y+lineHeightPx > bottom {
					st.newPage()
				}
				st.drawText(chunk)
				st.y += lineHeightPx
			}
		case imageElement:
			img, ok := s.imageFor(el.url)
			if !ok {
				// ref was never loaded; treat the same as a failed load
				img = nil
			}
			st.drawImage(img, geo.ContentWidth(), bottom)
		}
	}

	return st.pages, nil
}

func (st *rasterState) newPage() {
	page := image.NewRGBA(image.Rect(0, 0, st.widthPx, st.heightPx))
	stddraw.Draw(page, page.Bounds(), image.White, image.Point{}, stddraw.Src)
	st.pages = append(st.pages, page)
	st.page = page
	st.y = st.marginPx
}

func (st *rasterState) drawText(text string) {
	drawer := &font.Drawer{
		Dst:  st.page,
		Src:  image.Black,
		Face: basicfont.Face7x13,
		Dot:  fixed.P(st.marginPx, st.y+fontAscentPx),
	}
	drawer.DrawString(text)
}

func (st *rasterState) drawRule() {
	y := st.y + ruleHeightPx/2
	gray := image.NewUniform(color.RGBA{R: 0x99, G: 0x99, B: 0x99, A: 0xff})
	rect := image.Rect(st.marginPx, y, st.widthPx-st.marginPx, y+1)
	stddraw.Draw(st.page, rect, gray, image.Point{}, stddraw.Src)
}

func (st *rasterState) drawImage(img image.Image, contentWidth, bottom int) {
	w, h := placeholderW, placeholderH
	if img != nil {
		b := img.Bounds()
		w, h = b.Dx(), b.Dy()
		if w > contentWidth {
			h = h * contentWidth / w
			w = contentWidth
		}
	}

	if st.y+h > bottom {
		st.newPage()
	}
	rect := image.Rect(st.marginPx, st.y, st.marginPx+w, st.y+h)

	if img == nil {
		// placeholder box for an image that failed to load
		gray := image.NewUniform(color.RGBA{R: 0xdd, G: 0xdd, B: 0xdd, A: 0xff})
		stddraw.Draw(st.page, rect, gray, image.Point{}, stddraw.Src)
	} else {
		xdraw.ApproxBiLinear.Scale(st.page, rect, img, img.Bounds(), xdraw.Over, nil)
	}

	st.y += h + spacerPx
}

// wrapText splits a line into chunks that fit the content width
func wrapText(text string, maxCols int) []string {
	runes := []rune(text)
	if len(runes) <= maxCols {
		return []string{text}
	}

	chunks := make([]string, 0, len(runes)/maxCols+1)
	for len(runes) > maxCols {
		cut := maxCols
		// prefer breaking at the last space inside the limit
		for i := maxCols; i > 0; i-- {
			if runes[i-1] == ' ' {
				cut = i
				break
			}
		}
		chunks = append(chunks, string(runes[:cut]))
		runes = runes[cut:]
		for len(runes) > 0 && runes[0] == ' ' {
			runes = runes[1:]
		}
	}
	if len(runes) > 0 {
		chunks = append(chunks, string(runes))
	}
	return chunks
}
