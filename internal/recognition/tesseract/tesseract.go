// Package tesseract recognizes screenshot text with the Tesseract engine
// through gosseract.
package tesseract

import (
	"context"
	"fmt"
	"image"
	"strings"

	"github.com/otiai10/gosseract/v2"

	"leadscout/internal/identity/models"
	"leadscout/internal/identity/ports"
)

// Progress reported by RecognizeWithProgress as each engine stage finishes.
const (
	progressImageLoaded = 10
	progressTextRead    = 60
	progressLinesRead   = 80
	progressDone        = 100
)

// client is the subset of *gosseract.Client the recognizer drives.
type client interface {
	SetLanguage(langs ...string) error
	SetImageFromBytes(data []byte) error
	Text() (string, error)
	GetBoundingBoxes(level gosseract.PageIteratorLevel) ([]gosseract.BoundingBox, error)
	Close() error
}

// Recognizer implements ports.ProgressRecognizer. A fresh engine client is
// created per call since gosseract clients are not safe for concurrent use.
type Recognizer struct {
	languages     []string
	clientFactory func() client
}

// Option configures a Recognizer.
type Option func(*Recognizer)

// WithLanguages selects the trained data sets, e.g. "eng", "por".
func WithLanguages(langs ...string) Option {
	return func(r *Recognizer) {
		r.languages = append([]string(nil), langs...)
	}
}

func New(opts ...Option) *Recognizer {
	r := &Recognizer{
		clientFactory: func() client { return gosseract.NewClient() },
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

var _ ports.ProgressRecognizer = (*Recognizer)(nil)

// Recognize implements ports.Recognizer.
func (r *Recognizer) Recognize(ctx context.Context, img []byte) (ports.RecognitionResult, error) {
	return r.RecognizeWithProgress(ctx, img, nil)
}

// RecognizeWithProgress runs the engine off the caller's goroutine so a
// cancelled ctx returns immediately. The engine call itself cannot be
// interrupted and finishes in the background.
func (r *Recognizer) RecognizeWithProgress(ctx context.Context, img []byte, progress ports.ProgressFunc) (ports.RecognitionResult, error) {
	if err := ctx.Err(); err != nil {
		return ports.RecognitionResult{}, err
	}
	if progress == nil {
		progress = func(int) {}
	}

	type outcome struct {
		result ports.RecognitionResult
		err    error
	}
	done := make(chan outcome, 1)
	go func() {
		res, err := r.recognize(ctx, img, progress)
		done <- outcome{result: res, err: err}
	}()

	select {
	case <-ctx.Done():
		return ports.RecognitionResult{}, ctx.Err()
	case o := <-done:
		return o.result, o.err
	}
}

func (r *Recognizer) recognize(ctx context.Context, img []byte, progress ports.ProgressFunc) (ports.RecognitionResult, error) {
	c := r.clientFactory()
	defer c.Close()

	if len(r.languages) > 0 {
		if err := c.SetLanguage(r.languages...); err != nil {
			return ports.RecognitionResult{}, fmt.Errorf("set languages: %w", err)
		}
	}
	if err := c.SetImageFromBytes(img); err != nil {
		return ports.RecognitionResult{}, fmt.Errorf("set image: %w", err)
	}
	report(ctx, progress, progressImageLoaded)

	text, err := c.Text()
	if err != nil {
		return ports.RecognitionResult{}, fmt.Errorf("recognize text: %w", err)
	}
	report(ctx, progress, progressTextRead)

	result := ports.RecognitionResult{Text: text}

	// Geometry is optional; the screenshot adapter copes without it.
	if boxes, err := c.GetBoundingBoxes(gosseract.RIL_TEXTLINE); err == nil {
		result.Lines = toLines(boxes)
	}
	report(ctx, progress, progressLinesRead)

	if boxes, err := c.GetBoundingBoxes(gosseract.RIL_WORD); err == nil {
		result.Words = toWords(boxes, result.Lines)
	}
	report(ctx, progress, progressDone)

	return result, nil
}

func report(ctx context.Context, progress ports.ProgressFunc, percent int) {
	if ctx.Err() == nil {
		progress(percent)
	}
}

func toBox(r image.Rectangle) models.BoundingBox {
	return models.BoundingBox{
		X:      float64(r.Min.X),
		Y:      float64(r.Min.Y),
		Width:  float64(r.Dx()),
		Height: float64(r.Dy()),
	}
}

func toLines(boxes []gosseract.BoundingBox) []ports.RecognizedLine {
	lines := make([]ports.RecognizedLine, 0, len(boxes))
	for _, b := range boxes {
		text := strings.TrimSpace(b.Word)
		if text == "" {
			continue
		}
		lines = append(lines, ports.RecognizedLine{Text: text, Box: toBox(b.Box)})
	}
	return lines
}

// toWords attaches each word to the line whose box contains the word's
// centre, or -1 when none does.
func toWords(boxes []gosseract.BoundingBox, lines []ports.RecognizedLine) []ports.RecognizedWord {
	words := make([]ports.RecognizedWord, 0, len(boxes))
	for _, b := range boxes {
		text := strings.TrimSpace(b.Word)
		if text == "" {
			continue
		}
		words = append(words, ports.RecognizedWord{
			Text:       text,
			Box:        toBox(b.Box),
			Confidence: b.Confidence,
			Line:       lineOf(b.Box, lines),
		})
	}
	return words
}

func lineOf(word image.Rectangle, lines []ports.RecognizedLine) int {
	cx := float64(word.Min.X+word.Max.X) / 2
	cy := float64(word.Min.Y+word.Max.Y) / 2
	for i, l := range lines {
		if cx >= l.Box.X && cx <= l.Box.X+l.Box.Width && cy >= l.Box.Y && cy <= l.Box.Y+l.Box.Height {
			return i
		}
	}
	return -1
}
