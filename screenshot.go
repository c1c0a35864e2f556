package limn

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
)

// Screenshot queues a labeled screenshot to be captured at the end of the
// current frame's Draw call. The PNG lands in ScreenshotDir, numbered in
// capture order so scripted runs produce stable filenames. Safe to call from
// Update or Draw.
func (u *UI) Screenshot(label string) {
	u.screenshotQueue = append(u.screenshotQueue, label)
}

// flushScreenshots captures the rendered frame for every queued label.
// Called at the end of UI.Draw.
func (u *UI) flushScreenshots(target *ebiten.Image) {
	if len(u.screenshotQueue) == 0 {
		return
	}

	if err := os.MkdirAll(u.ScreenshotDir, 0o755); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "[limn] screenshot: mkdir %s: %v\n", u.ScreenshotDir, err)
		u.screenshotQueue = u.screenshotQueue[:0]
		return
	}

	bounds := target.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	pixels := make([]byte, 4*w*h)
	target.ReadPixels(pixels)

	// Convert premultiplied RGBA to straight-alpha NRGBA.
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(pixels); i += 4 {
		r, g, b, a := pixels[i], pixels[i+1], pixels[i+2], pixels[i+3]
		if a > 0 && a < 255 {
			r = uint8(min(int(r)*255/int(a), 255))
			g = uint8(min(int(g)*255/int(a), 255))
			b = uint8(min(int(b)*255/int(a), 255))
		}
		img.Pix[i] = r
		img.Pix[i+1] = g
		img.Pix[i+2] = b
		img.Pix[i+3] = a
	}

	for _, label := range u.screenshotQueue {
		u.screenshotSeq++
		name := fmt.Sprintf("%03d_%s.png", u.screenshotSeq, sanitizeLabel(label))
		path := filepath.Join(u.ScreenshotDir, name)

		f, err := os.Create(path)
		if err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "[limn] screenshot: %v\n", err)
			continue
		}
		if err := png.Encode(f, img); err != nil {
			_ = f.Close()
			_, _ = fmt.Fprintf(os.Stderr, "[limn] screenshot: encode %s: %v\n", path, err)
			continue
		}
		if err := f.Close(); err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "[limn] screenshot: close %s: %v\n", path, err)
		}
	}

	u.screenshotQueue = u.screenshotQueue[:0]
}

// sanitizeLabel replaces characters that are unsafe in file names with
// underscores and falls back to "unlabeled" for empty strings.
func sanitizeLabel(label string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		return "unlabeled"
	}
	var b strings.Builder
	b.Grow(len(label))
	for _, r := range label {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z',
			r >= '0' && r <= '9', r == '-', r == '.':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}
