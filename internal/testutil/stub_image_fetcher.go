package testutil

import (
	"context"
	"image"
	"image/color"
	"sync"

	ierr "github.com/billcraft/billcraft/internal/errors"
)

// StubImageFetcher implements surface.ImageFetcher for testing
type StubImageFetcher struct {
	mu      sync.Mutex
	images  map[string]image.Image
	failing map[string]error
}

func NewStubImageFetcher() *StubImageFetcher {
	return &StubImageFetcher{
		images:  make(map[string]image.Image),
		failing: make(map[string]error),
	}
}

// Add registers a solid test image under a URL
func (f *StubImageFetcher) Add(url string, width, height int) {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			img.Set(x, y, color.RGBA{R: 0x33, G: 0x66, B: 0x99, A: 0xff})
		}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.images[url] = img
}

// Fail makes fetches of a URL return an image load error
func (f *StubImageFetcher) Fail(url string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failing[url] = ierr.NewErrorf("image %s unavailable", url).
		Mark(ierr.ErrImageLoadFailed)
}

func (f *StubImageFetcher) Fetch(_ context.Context, url string) (image.Image, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err, ok := f.failing[url]; ok {
		return nil, err
	}
	if img, ok := f.images[url]; ok {
		return img, nil
	}
	return nil, ierr.NewErrorf("image %s not found", url).
		Mark(ierr.ErrImageLoadFailed)
}
