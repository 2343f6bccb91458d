// Package models holds the value types that flow through the identity
// extraction pipeline: raw text units from an adapter, classified candidates,
// review items and the import result.
package models

import (
	"strings"

	id "leadscout/pkg/domain"
)

// Length limits shared by the classifier and the review batch.
const (
	MaxHandleLength      = 30
	MaxDisplayNameLength = 100
)

// SourceKind identifies which adapter produced a RawTextUnit.
type SourceKind string

const (
	SourceDOM      SourceKind = "dom"
	SourceOCRLine  SourceKind = "ocrLine"
	SourceOCRToken SourceKind = "ocrToken"
)

// BoundingBox is a rectangle in pixel space with the origin at the top-left.
type BoundingBox struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Union returns the smallest box containing both b and o.
func (b BoundingBox) Union(o BoundingBox) BoundingBox {
	minX := min(b.X, o.X)
	minY := min(b.Y, o.Y)
	maxX := max(b.X+b.Width, o.X+o.Width)
	maxY := max(b.Y+b.Height, o.Y+o.Height)
	return BoundingBox{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// RawTextUnit is one piece of text handed from an adapter to the classifier.
type RawTextUnit struct {
	Content    string       `json:"content"`
	Geometry   *BoundingBox `json:"geometry,omitempty"`
	SourceKind SourceKind   `json:"source_kind"`
}

// TokenKind distinguishes account handles from human display names.
type TokenKind string

const (
	TokenHandle      TokenKind = "handle"
	TokenDisplayName TokenKind = "displayName"
)

func (k TokenKind) String() string { return string(k) }

// CandidateToken is a value that survived classification.
//
// Invariants:
//   - RawValue is non-empty
//   - handles are "@" followed by at most MaxHandleLength characters
//   - display names are at most MaxDisplayNameLength characters
type CandidateToken struct {
	RawValue string    `json:"value"`
	Kind     TokenKind `json:"kind"`
}

// NormalizedValue is the case-insensitive key used for deduplication.
func (t CandidateToken) NormalizedValue() string {
	return strings.ToLower(t.RawValue)
}

// RejectKind names the classifier rule that discarded a line.
type RejectKind string

const (
	RejectEmpty               RejectKind = "empty"
	RejectBlacklistKeyword    RejectKind = "blacklist-keyword"
	RejectAllBlacklistWords   RejectKind = "all-blacklist-words"
	RejectContaminationMarker RejectKind = "contamination-marker"
	RejectTimestampPattern    RejectKind = "timestamp-pattern"
	RejectTooLong             RejectKind = "too-long"
	RejectTooShort            RejectKind = "too-short"
	RejectSingleCharacter     RejectKind = "single-character"
	RejectPhoneNumber         RejectKind = "phone-number"
	RejectNoCandidate         RejectKind = "no-candidate"
)

func (r RejectKind) String() string { return string(r) }

// ClassifiedCandidate is the classifier output for one line: exactly one of
// Token and RejectionReason is set.
type ClassifiedCandidate struct {
	Token           *CandidateToken `json:"token,omitempty"`
	RejectionReason RejectKind      `json:"rejection_reason,omitempty"`
}

// Accepted reports whether the line yielded a token.
func (c ClassifiedCandidate) Accepted() bool {
	return c.Token != nil
}

// Accept builds an accepted result.
func Accept(token CandidateToken) ClassifiedCandidate {
	return ClassifiedCandidate{Token: &token}
}

// Reject builds a rejected result.
func Reject(reason RejectKind) ClassifiedCandidate {
	return ClassifiedCandidate{RejectionReason: reason}
}

// Tokens returns the accepted tokens of a classified batch, in order.
func Tokens(classified []ClassifiedCandidate) []CandidateToken {
	tokens := make([]CandidateToken, 0, len(classified))
	for _, c := range classified {
		if c.Token != nil {
			tokens = append(tokens, *c.Token)
		}
	}
	return tokens
}

// ReviewItem is one row of the review batch shown to the operator.
//
// Invariants:
//   - Selected implies !IsDuplicate
//   - ExistingContactID is set iff IsDuplicate
type ReviewItem struct {
	Candidate         CandidateToken `json:"candidate"`
	IsDuplicate       bool           `json:"is_duplicate"`
	ExistingContactID *id.ContactID  `json:"existing_contact_id,omitempty"`
	Selected          bool           `json:"selected"`
}

// ImportError records why one selected candidate was not imported.
type ImportError struct {
	Candidate CandidateToken `json:"candidate"`
	Reason    string         `json:"reason"`
}

// ImportResult summarizes an import run.
//
// Invariants:
//   - Succeeded + Failed == Attempted
//   - len(Errors) == Failed, in the order items were submitted
type ImportResult struct {
	Attempted int           `json:"attempted"`
	Succeeded int           `json:"succeeded"`
	Failed    int           `json:"failed"`
	Errors    []ImportError `json:"errors"`
}

// Clone returns a deep copy so callers cannot mutate a finalized result.
func (r *ImportResult) Clone() *ImportResult {
	if r == nil {
		return nil
	}
	out := *r
	out.Errors = append([]ImportError(nil), r.Errors...)
	if out.Errors == nil {
		out.Errors = []ImportError{}
	}
	return &out
}
