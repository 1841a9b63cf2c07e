// Package surface provides the off-screen, page-sized layout area a render
// call mounts its markup onto before rasterization. Every render call owns
// its own surface instance; surfaces are never shared across calls.
package surface

import (
	"image"
	"strings"

	ierr "github.com/billcraft/billcraft/internal/errors"
	"github.com/billcraft/billcraft/internal/domain/document"
)

type elementKind int

const (
	textElement elementKind = iota
	imageElement
	ruleElement
	pageBreakElement
	spacerElement
)

type element struct {
	kind elementKind
	text string
	url  string
}

// Surface is an off-screen rendering surface with fixed page geometry.
// It is owned exclusively by the active render operation and must be
// released on every exit path.
type Surface struct {
	id       string
	geometry document.PageGeometry
	elements []element
	images   map[string]image.Image
	mounted  bool
	released bool
}

// ID returns the surface identifier
func (s *Surface) ID() string {
	return s.id
}

// Geometry returns the fixed page geometry of the surface
func (s *Surface) Geometry() document.PageGeometry {
	return s.geometry
}

// Released reports whether the surface has been released back to the registry
func (s *Surface) Released() bool {
	return s.released
}

// Mount parses markup into layout elements and attaches them to the
// surface. Markup is line oriented: "#image <url>" embeds an image,
// "#pagebreak" forces a new page, "---" draws a rule, a blank line adds
// vertical space and anything else is a text line.
func (s *Surface) Mount(markup string) error {
	if s.released {
		return ierr.NewError("cannot mount on a released surface").
			Mark(ierr.ErrInvalidOperation)
	}

	lines := strings.Split(markup, "\n")
	elements := make([]element, 0, len(lines))
	for _, line := range lines {
		trimmed := strings.TrimRight(line, " \t\r")
		switch {
		case trimmed == "":
			elements = append(elements, element{kind: spacerElement})
		case trimmed == "#pagebreak":
			elements = append(elements, element{kind: pageBreakElement})
		case trimmed == "---":
			elements = append(elements, element{kind: ruleElement})
		case strings.HasPrefix(trimmed, "#image "):
			url := strings.TrimSpace(strings.TrimPrefix(trimmed, "#image "))
			if url != "" {
				elements = append(elements, element{kind: imageElement, url: url})
			}
		default:
			elements = append(elements, element{kind: textElement, text: trimmed})
		}
	}

	s.elements = elements
	s.mounted = true
	return nil
}

// ImageRefs returns the distinct image URLs referenced by the mounted markup
func (s *Surface) ImageRefs() []string {
	seen := make(map[string]struct{})
	refs := make([]string, 0)
	for _, el := range s.elements {
		if el.kind != imageElement {
			continue
		}
		if _, ok := seen[el.url]; ok {
			continue
		}
		seen[el.url] = struct{}{}
		refs = append(refs, el.url)
	}
	return refs
}

// SetImage attaches a loaded image for a referenced URL. A nil image marks
// a placeholder for a ref that failed to load under the lenient policy.
func (s *Surface) SetImage(url string, img image.Image) {
	if s.images == nil {
		s.images = make(map[string]image.Image)
	}
	s.images[url] = img
}

func (s *Surface) imageFor(url string) (image.Image, bool) {
	img, ok := s.images[url]
	return img, ok
}
