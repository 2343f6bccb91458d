// Package screenshot turns an uploaded conversation-list screenshot into raw
// text units for the classifier. It validates the image locally before any
// recognizer call and splits the recognizer output into lines with geometry.
package screenshot

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"net/http"
	"regexp"
	"strings"
	"unicode/utf8"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"

	"leadscout/internal/identity/models"
	"leadscout/internal/identity/ports"
	dErrors "leadscout/pkg/domain-errors"
)

const (
	DefaultMaxImageBytes = 10 << 20
	DefaultMaxDimension  = 10000

	minLineRunes = 2
	maxLineRunes = 80
)

var (
	reCRLF = regexp.MustCompile(`\r\n?`)
	reTabs = regexp.MustCompile(`[\t\f\v]+`)
)

// ImageInfo describes a validated upload.
type ImageInfo struct {
	ContentType string `json:"content_type"`
	Format      string `json:"format"`
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	Bytes       int    `json:"bytes"`
}

// Adapter validates screenshots and converts recognition output to units.
type Adapter struct {
	maxImageBytes int64
	maxDimension  int
}

type Option func(*Adapter)

// WithMaxImageBytes caps the accepted payload size.
func WithMaxImageBytes(n int64) Option {
	return func(a *Adapter) {
		if n > 0 {
			a.maxImageBytes = n
		}
	}
}

// WithMaxDimension caps the accepted width and height in pixels.
func WithMaxDimension(px int) Option {
	return func(a *Adapter) {
		if px > 0 {
			a.maxDimension = px
		}
	}
}

func New(opts ...Option) *Adapter {
	a := &Adapter{
		maxImageBytes: DefaultMaxImageBytes,
		maxDimension:  DefaultMaxDimension,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// MaxImageBytes reports the configured upload limit.
func (a *Adapter) MaxImageBytes() int64 {
	return a.maxImageBytes
}

// ValidateImage rejects non-images, oversized payloads and absurd dimensions
// without decoding pixel data.
func (a *Adapter) ValidateImage(data []byte) (ImageInfo, error) {
	if len(data) == 0 {
		return ImageInfo{}, dErrors.New(dErrors.CodeValidation, "image is required")
	}
	if int64(len(data)) > a.maxImageBytes {
		return ImageInfo{}, dErrors.New(dErrors.CodeValidation,
			fmt.Sprintf("image exceeds %d bytes", a.maxImageBytes))
	}

	contentType := http.DetectContentType(data)
	if !strings.HasPrefix(contentType, "image/") {
		return ImageInfo{}, dErrors.New(dErrors.CodeValidation, "file is not an image")
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return ImageInfo{}, dErrors.Wrap(err, dErrors.CodeValidation, "unsupported or corrupt image")
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return ImageInfo{}, dErrors.New(dErrors.CodeValidation, "image has no pixels")
	}
	if cfg.Width > a.maxDimension || cfg.Height > a.maxDimension {
		return ImageInfo{}, dErrors.New(dErrors.CodeValidation,
			fmt.Sprintf("image dimensions %dx%d exceed %d px", cfg.Width, cfg.Height, a.maxDimension))
	}

	return ImageInfo{
		ContentType: contentType,
		Format:      format,
		Width:       cfg.Width,
		Height:      cfg.Height,
		Bytes:       len(data),
	}, nil
}

// Units splits recognized text into one unit per plausible line. Lines that
// are blank or outside [2, 80] runes are dropped here so the classifier only
// sees candidate-sized text. Geometry comes from the recognizer's line boxes
// when one matches the line text, otherwise from the union of its word boxes.
func (a *Adapter) Units(result ports.RecognitionResult) []models.RawTextUnit {
	lines := SplitLines(result.Text)
	geometry := newGeometryIndex(result)

	units := make([]models.RawTextUnit, 0, len(lines))
	for _, line := range lines {
		n := utf8.RuneCountInString(line)
		if n < minLineRunes || n > maxLineRunes {
			continue
		}
		units = append(units, models.RawTextUnit{
			Content:    line,
			Geometry:   geometry.lookup(line),
			SourceKind: models.SourceOCRLine,
		})
	}
	return units
}

// SplitLines normalizes line endings and tabs and returns the trimmed,
// non-empty lines of text in order.
func SplitLines(text string) []string {
	text = reCRLF.ReplaceAllString(text, "\n")
	text = reTabs.ReplaceAllString(text, " ")

	raw := strings.Split(text, "\n")
	lines := make([]string, 0, len(raw))
	for _, l := range raw {
		l = strings.TrimSpace(l)
		if l != "" {
			lines = append(lines, l)
		}
	}
	return lines
}
