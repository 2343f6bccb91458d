package handler

import (
	"strings"

	dErrors "leadscout/pkg/domain-errors"
)

// DOMRequest is the HTTP request body for POST /dom/display-name.
type DOMRequest struct {
	HTML string `json:"html"`
}

// Validate implements httputil.Validatable. Size limits are enforced by the
// DOM adapter.
func (r *DOMRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	if strings.TrimSpace(r.HTML) == "" {
		return dErrors.New(dErrors.CodeValidation, "html is required")
	}
	return nil
}
