package worldview

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// CaptureFormat is the image encoding used for screenshots.
type CaptureFormat string

const (
	CapturePNG  CaptureFormat = "png"
	CaptureTIFF CaptureFormat = "tiff"
	CaptureBMP  CaptureFormat = "bmp"
)

// ParseCaptureFormat accepts a format name or file extension, with or without
// the leading dot.
func ParseCaptureFormat(s string) (CaptureFormat, error) {
	switch strings.ToLower(strings.TrimPrefix(s, ".")) {
	case "png":
		return CapturePNG, nil
	case "tif", "tiff":
		return CaptureTIFF, nil
	case "bmp":
		return CaptureBMP, nil
	}
	return "", fmt.Errorf("capture format %q: want png, tiff or bmp", s)
}

func (f CaptureFormat) encode(w io.Writer, img image.Image) error {
	switch f {
	case CapturePNG, "":
		return png.Encode(w, img)
	case CaptureTIFF:
		return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	case CaptureBMP:
		return bmp.Encode(w, img)
	}
	return fmt.Errorf("capture format %q not supported", string(f))
}

func (f CaptureFormat) ext() string {
	if f == "" {
		return string(CapturePNG)
	}
	return string(f)
}

// Capture reports a saved (or failed) screenshot together with the camera
// state of the frame it shows.
type Capture struct {
	Path     string
	Seq      int
	Scale    float64
	X, Y     float64
	Rendered bool
	Err      error
}

// Screenshot asks for the next presented frame to be saved in ScreenshotDir.
// Requests made within one frame share a single file. Call it on the game
// goroutine.
func (g *Game) Screenshot() {
	g.shotPending = true
}

// flushScreenshots saves screen if a capture was requested. Called at the end
// of Draw.
func (g *Game) flushScreenshots(screen *ebiten.Image) {
	if !g.shotPending {
		return
	}
	g.shotPending = false
	b := screen.Bounds()
	pixels := make([]byte, 4*b.Dx()*b.Dy())
	screen.ReadPixels(pixels)
	g.saveFrame(frameImage(pixels, b.Dx(), b.Dy()), time.Now())
}

// frameImage wraps pixels read from Ebitengine. They are premultiplied, which
// is image.RGBA's own color model, so encoders un-premultiply as needed.
func frameImage(pixels []byte, w, h int) *image.RGBA {
	return &image.RGBA{Pix: pixels, Stride: 4 * w, Rect: image.Rect(0, 0, w, h)}
}

func (g *Game) saveFrame(img image.Image, at time.Time) Capture {
	g.shotSeq++
	c := Capture{Seq: g.shotSeq}
	if world := g.viewport.WorldTransform(); world != nil {
		c.Scale, c.X, c.Y, c.Rendered = world.Scale(), world.X(), world.Y(), true
	}
	c.Path = filepath.Join(g.ScreenshotDir, captureName(at, c)+"."+g.CaptureFormat.ext())
	c.Err = writeCapture(c.Path, img, g.CaptureFormat)

	switch {
	case g.OnCapture != nil:
		g.OnCapture(c)
	case c.Err != nil:
		g.viewport.Logger().Error("screenshot failed", "err", c.Err)
	default:
		g.viewport.Logger().Info("screenshot saved", "path", c.Path, "scale", c.Scale)
	}
	return c
}

// captureName names a frame after when it was taken and where the camera was.
func captureName(at time.Time, c Capture) string {
	name := fmt.Sprintf("%s_%03d", at.Format("20060102_150405"), c.Seq)
	if !c.Rendered {
		return name + "_unrendered"
	}
	return fmt.Sprintf("%s_s%.4g_x%.6g_y%.6g", name, c.Scale, c.X, c.Y)
}

func writeCapture(path string, img image.Image, format CaptureFormat) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("screenshot: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("screenshot: %w", err)
	}
	if err := format.encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("screenshot %s: %w", path, err)
	}
	return f.Close()
}
