// Package ports declares the collaborators the identity pipeline depends on.
// Concrete implementations live in internal/contact, internal/feature and
// internal/recognition; the pipeline only sees these interfaces.
package ports

//go:generate mockgen -source=ports.go -destination=mocks/mocks.go -package=mocks ContactIndex,ContactCreator,ContactStore,FeatureGate,Recognizer,ProgressRecognizer,AuditPublisher

import (
	"context"

	"leadscout/internal/identity/models"
	id "leadscout/pkg/domain"
	"leadscout/pkg/platform/audit"
)

// CapabilityScreenshotImport gates the screenshot extraction path per tenant.
const CapabilityScreenshotImport = "screenshot_import"

// ContactIndex answers which normalized values already exist for a tenant.
type ContactIndex interface {
	// LookupByNormalizedValues returns the subset of values that match an
	// existing contact, keyed by the lowercase value. One call per batch.
	LookupByNormalizedValues(ctx context.Context, tenantID id.TenantID, values []string) (map[string]id.ContactID, error)
}

// ContactCreator persists one imported candidate.
type ContactCreator interface {
	// CreateContact returns sentinel.ErrConflict when a contact with the same
	// normalized value already exists for the tenant.
	CreateContact(ctx context.Context, tenantID id.TenantID, token models.CandidateToken) (id.ContactID, error)
}

// ContactStore is the full contact collaborator.
type ContactStore interface {
	ContactIndex
	ContactCreator
}

// FeatureGate reports whether a tenant may use a capability.
type FeatureGate interface {
	IsEnabled(ctx context.Context, tenantID id.TenantID, capability string) (bool, error)
}

// RecognizedLine is one line of recognized text with its geometry.
type RecognizedLine struct {
	Text string
	Box  models.BoundingBox
}

// RecognizedWord is one recognized word with its geometry and 0-100 confidence.
type RecognizedWord struct {
	Text       string
	Box        models.BoundingBox
	Confidence float64
	// Line is the zero-based line index the word belongs to, or -1 if unknown.
	Line int
}

// RecognitionResult is the text recovered from an image. Text is the full
// newline-separated transcription; Lines and Words are optional geometry.
type RecognitionResult struct {
	Text  string
	Lines []RecognizedLine
	Words []RecognizedWord
}

// Recognizer turns an image into text.
type Recognizer interface {
	Recognize(ctx context.Context, image []byte) (RecognitionResult, error)
}

// ProgressFunc receives recognition progress in [0, 100].
type ProgressFunc func(percent int)

// ProgressRecognizer is implemented by recognizers that can report progress.
type ProgressRecognizer interface {
	Recognizer
	RecognizeWithProgress(ctx context.Context, image []byte, progress ProgressFunc) (RecognitionResult, error)
}

// AuditPublisher records pipeline actions.
type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}
