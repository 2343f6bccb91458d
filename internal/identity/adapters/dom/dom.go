// Package dom extracts the display name of the currently open conversation
// from an HTML snapshot of a messaging web client.
package dom

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"

	"leadscout/internal/identity/classifier"
	"leadscout/internal/identity/models"
	dErrors "leadscout/pkg/domain-errors"
)

const DefaultMaxSnapshotBytes = 2 << 20

// Result is the best-guess display name. Token is nil when nothing in the
// snapshot classified as an identity.
type Result struct {
	Token   *models.CandidateToken `json:"token,omitempty"`
	Locator string                 `json:"locator,omitempty"`
}

// Found reports whether a candidate was extracted.
func (r Result) Found() bool {
	return r.Token != nil
}

type Adapter struct {
	classifier *classifier.Classifier
	locators   []Locator
	maxBytes   int64
}

type Option func(*Adapter)

// WithLocators replaces the default locator list.
func WithLocators(locators []Locator) Option {
	return func(a *Adapter) {
		a.locators = append([]Locator(nil), locators...)
	}
}

func WithMaxSnapshotBytes(n int64) Option {
	return func(a *Adapter) {
		if n > 0 {
			a.maxBytes = n
		}
	}
}

func New(c *classifier.Classifier, opts ...Option) *Adapter {
	a := &Adapter{
		classifier: c,
		locators:   DefaultLocators(),
		maxBytes:   DefaultMaxSnapshotBytes,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Extract parses snapshot and evaluates the locators in order. The first
// element whose text, title or aria-label classifies as a token wins.
func (a *Adapter) Extract(ctx context.Context, snapshot io.Reader) (Result, error) {
	data, err := io.ReadAll(io.LimitReader(snapshot, a.maxBytes+1))
	if err != nil {
		return Result{}, dErrors.Wrap(err, dErrors.CodeBadRequest, "failed to read snapshot")
	}
	if int64(len(data)) > a.maxBytes {
		return Result{}, dErrors.New(dErrors.CodeValidation,
			fmt.Sprintf("snapshot exceeds %d bytes", a.maxBytes))
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return Result{}, dErrors.New(dErrors.CodeValidation, "snapshot is required")
	}

	doc, err := html.Parse(bytes.NewReader(data))
	if err != nil {
		return Result{}, dErrors.Wrap(err, dErrors.CodeValidation, "invalid html snapshot")
	}
	elements := collectElements(doc)

	for _, loc := range a.locators {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}
		for _, el := range elements {
			if !loc.Match.matches(el) || !loc.Within.contains(el) || insideInteractive(el) {
				continue
			}
			if token := a.firstToken(el); token != nil {
				return Result{Token: token, Locator: loc.Name}, nil
			}
		}
	}
	return Result{}, nil
}

func (a *Adapter) firstToken(el *html.Node) *models.CandidateToken {
	raw := []string{textContent(el)}
	if v, ok := attr(el, "title"); ok {
		raw = append(raw, v)
	}
	if v, ok := attr(el, "aria-label"); ok {
		raw = append(raw, v)
	}
	for _, s := range raw {
		if strings.TrimSpace(s) == "" {
			continue
		}
		if c := a.classifier.Classify(s, classifier.ProfileDOM); c.Accepted() {
			return c.Token
		}
	}
	return nil
}

func collectElements(doc *html.Node) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			out = append(out, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return out
}

var (
	interactiveTags = map[string]bool{"button": true, "input": true, "textarea": true}
	skippedTags     = map[string]bool{"script": true, "style": true, "noscript": true, "template": true}
)

func insideInteractive(n *html.Node) bool {
	for p := n; p != nil; p = p.Parent {
		if p.Type == html.ElementNode && interactiveTags[p.Data] {
			return true
		}
	}
	return false
}

// textContent joins the element's text nodes, leaving out interactive
// controls and non-rendered elements.
func textContent(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			b.WriteString(n.Data)
			b.WriteByte(' ')
			return
		case html.ElementNode:
			if interactiveTags[n.Data] || skippedTags[n.Data] {
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.TrimSpace(b.String())
}
