package surface

import (
	"bytes"
	"context"
	"image"
	"net/http"
	"time"

	// register decoders for the formats templates may embed
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	ierr "github.com/billcraft/billcraft/internal/errors"
	"github.com/billcraft/billcraft/internal/httpclient"
)

// ImageFetcher loads an embedded image referenced by mounted markup
type ImageFetcher interface {
	Fetch(ctx context.Context, url string) (image.Image, error)
}

type httpImageFetcher struct {
	client httpclient.Client
}

// NewImageFetcher creates an ImageFetcher backed by the shared HTTP client
func NewImageFetcher(client httpclient.Client) ImageFetcher {
	return &httpImageFetcher{client: client}
}

func (f *httpImageFetcher) Fetch(ctx context.Context, url string) (image.Image, error) {
	resp, err := f.client.Send(ctx, &httpclient.Request{
		Method: http.MethodGet,
		URL:    url,
	})
	if err != nil {
		return nil, ierr.WithError(err).
			WithMessagef("failed to fetch image %s", url).
			Mark(ierr.ErrImageLoadFailed)
	}

	img, _, err := image.Decode(bytes.NewReader(resp.Body))
	if err != nil {
		return nil, ierr.WithError(err).
			WithMessagef("failed to decode image %s", url).
			Mark(ierr.ErrImageLoadFailed)
	}

	return img, nil
}

// LoadImages waits for all embedded images referenced by the mounted markup,
// bounded by timeout. Under the strict policy any failed image fails the
// load; otherwise failed refs get a placeholder and rendering proceeds.
func (s *Surface) LoadImages(ctx context.Context, fetcher ImageFetcher, timeout time.Duration, strict bool) error {
	if s.released {
		return ierr.NewError("cannot load images on a released surface").
			Mark(ierr.ErrInvalidOperation)
	}

	refs := s.ImageRefs()
	if len(refs) == 0 {
		return nil
	}

	loadCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	for _, url := range refs {
		img, err := fetcher.Fetch(loadCtx, url)
		if err != nil {
			if strict {
				return ierr.WithError(err).
					WithMessagef("embedded image %s failed to load", url).
					Mark(ierr.ErrImageLoadFailed)
			}
			// lenient policy: placeholder box is drawn at rasterization
			s.SetImage(url, nil)
			continue
		}
		s.SetImage(url, img)
	}

	return nil
}
