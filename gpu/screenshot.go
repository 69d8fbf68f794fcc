package gpu

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fogleman/gg"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/sirupsen/logrus"

	"github.com/phanxgames/bough"
)

// Screenshotter captures labeled PNGs of the rendered frame. Request queues
// a label; Capture, called after the frame is drawn, writes one file per
// queued label into Dir.
type Screenshotter struct {
	Dir   string
	queue []string
}

// NewScreenshotter returns a screenshotter writing into dir, or
// "screenshots" when dir is empty.
func NewScreenshotter(dir string) *Screenshotter {
	if dir == "" {
		dir = "screenshots"
	}
	return &Screenshotter{Dir: dir}
}

// Request queues a screenshot. Safe to call from Update or Draw.
func (s *Screenshotter) Request(label string) {
	s.queue = append(s.queue, label)
}

// Pending returns the number of queued screenshots.
func (s *Screenshotter) Pending() int {
	return len(s.queue)
}

// Capture writes screen once for every queued label and clears the queue.
// It returns the paths written.
func (s *Screenshotter) Capture(screen *ebiten.Image) ([]string, error) {
	if len(s.queue) == 0 {
		return nil, nil
	}
	defer func() { s.queue = s.queue[:0] }()

	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("screenshot: mkdir %s: %w", s.Dir, err)
	}

	b := screen.Bounds()
	img := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	screen.ReadPixels(img.Pix)

	stamp := time.Now().Format("20060102_150405")
	paths := make([]string, 0, len(s.queue))
	for _, label := range s.queue {
		path := filepath.Join(s.Dir, fmt.Sprintf("%s_%s.png", stamp, SanitizeLabel(label)))
		if err := gg.SavePNG(path, img); err != nil {
			return paths, fmt.Errorf("screenshot: %w", err)
		}
		bough.Logger().WithFields(logrus.Fields{"label": label, "path": path}).Info("gpu: screenshot saved")
		paths = append(paths, path)
	}
	return paths, nil
}

// SanitizeLabel replaces characters that are unsafe in file names with
// underscores and falls back to "unlabeled" for empty strings.
func SanitizeLabel(label string) string {
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
