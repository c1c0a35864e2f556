package limn

import (
	"bytes"
	"fmt"
	"os"

	"github.com/disintegration/imaging"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// Font wraps Ebitengine's text/v2 for TrueType font rendering.
type Font struct {
	face   *text.GoTextFace
	source *text.GoTextFaceSource
	size   float64
	lh     float64 // cached line height
}

// LoadFontData parses raw TTF/OTF data at the given size.
func LoadFontData(ttfData []byte, size float64) (*Font, error) {
	source, err := text.NewGoTextFaceSource(bytes.NewReader(ttfData))
	if err != nil {
		return nil, fmt.Errorf("limn: failed to parse TTF data: %w", err)
	}

	face := &text.GoTextFace{
		Source: source,
		Size:   size,
	}

	m := face.Metrics()
	lh := m.HAscent + m.HDescent + m.HLineGap

	return &Font{
		face:   face,
		source: source,
		size:   size,
		lh:     lh,
	}, nil
}

// MeasureString returns the width and height of the rendered text.
func (f *Font) MeasureString(s string) (width, height float64) {
	return text.Measure(s, f.face, f.lh)
}

// LineHeight returns the vertical distance between baselines.
func (f *Font) LineHeight() float64 {
	return f.lh
}

// Face returns the underlying GoTextFace for direct text/v2 rendering.
func (f *Font) Face() *text.GoTextFace {
	return f.face
}

// maxTextureDim caps loaded image dimensions; larger images are downscaled
// to fit on load.
const maxTextureDim = 4096

// defaultGlyphCap bounds the glyph cache entry count.
const defaultGlyphCap = 256

type glyphKey struct {
	font string
	text string
}

type fontEntry struct {
	font *Font
	path string // empty for fonts registered from memory
	size float64
}

type imageEntry struct {
	img  *ebiten.Image
	path string // empty for images registered from memory
}

// Resources is the font and image registry handed to every DrawFunc, plus a
// bounded cache of rasterized text. Widgets refer to assets by string key so
// drawables stay plain data.
type Resources struct {
	fonts  map[string]fontEntry
	images map[string]imageEntry
	glyphs map[glyphKey]*ebiten.Image

	// GlyphCap bounds the number of cached text rasterizations. When the
	// cap is reached the whole cache is purged — deliberately simple.
	GlyphCap int
}

// NewResources creates an empty registry.
func NewResources() *Resources {
	return &Resources{
		fonts:    make(map[string]fontEntry),
		images:   make(map[string]imageEntry),
		glyphs:   make(map[glyphKey]*ebiten.Image),
		GlyphCap: defaultGlyphCap,
	}
}

// LoadFont reads a TTF/OTF file and registers it under key. Reloadable by
// the asset watcher.
func (r *Resources) LoadFont(key, path string, size float64) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("limn: load font %q: %w", key, err)
	}
	f, err := LoadFontData(data, size)
	if err != nil {
		return fmt.Errorf("limn: load font %q: %w", key, err)
	}
	r.fonts[key] = fontEntry{font: f, path: path, size: size}
	r.purgeFontGlyphs(key)
	return nil
}

// AddFont registers an already-loaded font under key.
func (r *Resources) AddFont(key string, f *Font) {
	r.fonts[key] = fontEntry{font: f}
	r.purgeFontGlyphs(key)
}

// Font returns the font registered under key, or nil.
func (r *Resources) Font(key string) *Font {
	return r.fonts[key].font
}

// LoadImage decodes an image file (EXIF orientation respected) and registers
// it under key. Images larger than the texture cap are downscaled to fit.
func (r *Resources) LoadImage(key, path string) error {
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return fmt.Errorf("limn: load image %q: %w", key, err)
	}
	b := img.Bounds()
	if b.Dx() > maxTextureDim || b.Dy() > maxTextureDim {
		img = imaging.Fit(img, maxTextureDim, maxTextureDim, imaging.Lanczos)
	}
	if old := r.images[key].img; old != nil {
		old.Deallocate()
	}
	r.images[key] = imageEntry{img: ebiten.NewImageFromImage(img), path: path}
	return nil
}

// AddImage registers an already-created image under key.
func (r *Resources) AddImage(key string, img *ebiten.Image) {
	r.images[key] = imageEntry{img: img}
}

// Image returns the image registered under key, or nil.
func (r *Resources) Image(key string) *ebiten.Image {
	return r.images[key].img
}

// RenderText returns a white rasterization of s with the keyed font,
// rendering at most once per (font, text) pair. The image is meant to be
// tinted at draw time. Returns nil for missing fonts and empty strings.
func (r *Resources) RenderText(fontKey, s string) *ebiten.Image {
	if s == "" {
		return nil
	}
	f := r.fonts[fontKey].font
	if f == nil {
		return nil
	}

	key := glyphKey{font: fontKey, text: s}
	if img, ok := r.glyphs[key]; ok {
		return img
	}

	w, h := text.Measure(s, f.face, f.lh)
	if w <= 0 || h <= 0 {
		return nil
	}

	if len(r.glyphs) >= r.GlyphCap {
		r.PurgeGlyphs()
	}

	img := ebiten.NewImage(int(w)+1, int(h)+1)
	op := &text.DrawOptions{}
	op.LineSpacing = f.lh
	text.Draw(img, s, f.face, op)
	r.glyphs[key] = img
	return img
}

// NumGlyphs reports the number of cached text rasterizations.
func (r *Resources) NumGlyphs() int {
	return len(r.glyphs)
}

// PurgeGlyphs deallocates every cached text rasterization.
func (r *Resources) PurgeGlyphs() {
	for key, img := range r.glyphs {
		img.Deallocate()
		delete(r.glyphs, key)
	}
}

// purgeFontGlyphs drops cached rasterizations for one font key, used when
// the font is replaced.
func (r *Resources) purgeFontGlyphs(fontKey string) {
	for key, img := range r.glyphs {
		if key.font == fontKey {
			img.Deallocate()
			delete(r.glyphs, key)
		}
	}
}

// reloadPath re-reads whichever asset was loaded from path. Returns the
// asset's key and whether anything matched.
func (r *Resources) reloadPath(path string) (string, bool) {
	for key, e := range r.images {
		if e.path == path {
			if err := r.LoadImage(key, path); err != nil {
				debugf("reload image %q: %v", key, err)
			}
			return key, true
		}
	}
	for key, e := range r.fonts {
		if e.path == path {
			if err := r.LoadFont(key, path, e.size); err != nil {
				debugf("reload font %q: %v", key, err)
			}
			return key, true
		}
	}
	return "", false
}
