// Package classifier separates plausible identity tokens (handles and display
// names) from UI chrome, timestamps and message fragments. It is shared by the
// Live-DOM and screenshot adapters; per-source differences are carried by a
// Profile.
//
// Classification is pure and synchronous. A Classifier is immutable after New
// and safe for concurrent use.
package classifier

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"leadscout/internal/identity/models"
)

// maxNameWords caps the words collected into a display name.
const maxNameWords = 4

var (
	timestampPatterns = []*regexp.Regexp{
		regexp.MustCompile(`^\d+[mhd]?$`),
		regexp.MustCompile(`^\d+:\d+`),
		regexp.MustCompile(`^\d+\+?$`),
	}
	phonePattern    = regexp.MustCompile(`^\+?\d[\d\s\-()]{4,}$`)
	nameWordPattern = regexp.MustCompile(`^[a-zA-Z\x{00C0}-\x{00FF}]+$`)
)

// Classifier applies the rule sequence to one line at a time.
type Classifier struct {
	keywords map[string]struct{}
	phrases  map[string]struct{}
	markers  []string
}

// New builds a classifier from configuration data. Keywords and markers are
// lowercased; blanks are ignored.
func New(cfg Config) *Classifier {
	c := &Classifier{
		keywords: make(map[string]struct{}, len(cfg.Keywords)),
		phrases:  make(map[string]struct{}),
	}
	for _, kw := range cfg.Keywords {
		kw = strings.ToLower(Normalize(kw))
		if kw == "" {
			continue
		}
		if strings.Contains(kw, " ") {
			c.phrases[kw] = struct{}{}
			continue
		}
		c.keywords[kw] = struct{}{}
	}
	for _, m := range cfg.ContaminationMarkers {
		m = strings.ToLower(strings.TrimSpace(m))
		if m != "" {
			c.markers = append(c.markers, m)
		}
	}
	return c
}

// NewDefault builds a classifier from DefaultConfig.
func NewDefault() *Classifier {
	return New(DefaultConfig())
}

// Normalize canonicalizes a raw line: NFC, whitespace runs collapsed to one
// space, leading "~" and spaces stripped, trimmed. Normalize is idempotent.
func Normalize(s string) string {
	s = norm.NFC.String(s)
	s = strings.Join(strings.Fields(s), " ")
	s = strings.TrimLeft(s, "~ ")
	return strings.TrimSpace(s)
}

// Classify returns exactly one of a token or a rejection reason for line.
func (c *Classifier) Classify(line string, p Profile) models.ClassifiedCandidate {
	line = Normalize(line)
	if line == "" {
		return models.Reject(models.RejectEmpty)
	}

	if reason, rejected := c.reject(line, p); rejected {
		return models.Reject(reason)
	}

	words := strings.Split(line, " ")

	if p.ExcludePhoneNumbers && phonePattern.MatchString(line) {
		return models.Reject(models.RejectPhoneNumber)
	}
	if len(words) == 1 || hasHandleMarker(words[0]) {
		if handle, ok := SanitizeHandle(words[0]); ok {
			return models.Accept(models.CandidateToken{RawValue: handle, Kind: models.TokenHandle})
		}
	}

	return c.displayName(words)
}

// ClassifyUnits classifies a batch of raw text units in order.
func (c *Classifier) ClassifyUnits(units []models.RawTextUnit, p Profile) []models.ClassifiedCandidate {
	out := make([]models.ClassifiedCandidate, len(units))
	for i, u := range units {
		out[i] = c.Classify(u.Content, p)
	}
	return out
}

// IsKeyword reports whether word is in the keyword set.
func (c *Classifier) IsKeyword(word string) bool {
	_, ok := c.keywords[strings.ToLower(trimPunct(word))]
	return ok
}

// reject runs step 2 in precedence order.
func (c *Classifier) reject(line string, p Profile) (models.RejectKind, bool) {
	lower := strings.ToLower(line)

	if kind, ok := c.blacklisted(lower); ok {
		return kind, true
	}
	for _, m := range c.markers {
		if strings.Contains(lower, m) {
			return models.RejectContaminationMarker, true
		}
	}
	if p.RejectTimestamps {
		for _, re := range timestampPatterns {
			if re.MatchString(line) {
				return models.RejectTimestampPattern, true
			}
		}
	}

	n := utf8.RuneCountInString(line)
	if n > p.MaxLength {
		return models.RejectTooLong, true
	}
	if n < p.MinLength {
		return models.RejectTooShort, true
	}
	if n == 1 {
		r, _ := utf8.DecodeRuneInString(line)
		if !unicode.IsDigit(r) {
			return models.RejectSingleCharacter, true
		}
	}
	return "", false
}

// blacklisted checks the whole line against keywords and phrases, then
// whether every word of the line is a keyword.
func (c *Classifier) blacklisted(lower string) (models.RejectKind, bool) {
	whole := trimPunct(lower)
	if _, ok := c.keywords[whole]; ok {
		return models.RejectBlacklistKeyword, true
	}
	if _, ok := c.phrases[whole]; ok {
		return models.RejectBlacklistKeyword, true
	}

	words := strings.FieldsFunc(lower, func(r rune) bool {
		return unicode.IsSpace(r) || unicode.IsPunct(r) || unicode.IsSymbol(r)
	})
	if len(words) == 0 {
		return "", false
	}
	for _, w := range words {
		if _, ok := c.keywords[w]; !ok {
			return "", false
		}
	}
	return models.RejectAllBlacklistWords, true
}

// displayName runs step 4 over the line's words.
func (c *Classifier) displayName(words []string) models.ClassifiedCandidate {
	collected := make([]string, 0, maxNameWords)
	for _, w := range words {
		if len(collected) == maxNameWords {
			break
		}
		w = trimWord(w)
		if !nameWordPattern.MatchString(w) || c.IsKeyword(w) {
			break
		}
		collected = append(collected, w)
	}

	switch {
	case len(collected) >= 2:
		return models.Accept(models.CandidateToken{
			RawValue: strings.Join(collected, " "),
			Kind:     models.TokenDisplayName,
		})
	case len(collected) == 1 && IsHandleShape(collected[0]):
		return models.Accept(models.CandidateToken{
			RawValue: "@" + collected[0],
			Kind:     models.TokenHandle,
		})
	default:
		return models.Reject(models.RejectNoCandidate)
	}
}

// trimWord strips sentence punctuation around a name word. Handle characters
// stay so "@.ana" is not read as a name; a trailing full stop is dropped.
func trimWord(s string) string {
	s = strings.TrimFunc(s, func(r rune) bool {
		if r == '@' || r == '_' || r == '.' {
			return false
		}
		return unicode.IsPunct(r) || unicode.IsSymbol(r)
	})
	return strings.TrimRight(s, ".")
}

// trimPunct strips punctuation and symbols surrounding a word.
func trimPunct(s string) string {
	return strings.TrimFunc(s, func(r rune) bool {
		return unicode.IsPunct(r) || unicode.IsSymbol(r)
	})
}
