package handler

import (
	"time"

	"leadscout/internal/identity/adapters/dom"
	"leadscout/internal/identity/models"
	"leadscout/internal/identity/session"
)

// SessionResponse is the transport view of an extraction session.
type SessionResponse struct {
	ID            string               `json:"id"`
	State         string               `json:"state"`
	Generation    uint64               `json:"generation"`
	Progress      int                  `json:"progress"`
	Items         []models.ReviewItem  `json:"items"`
	SelectedCount int                  `json:"selected_count"`
	Result        *models.ImportResult `json:"result,omitempty"`
	Failure       string               `json:"failure,omitempty"`
	CreatedAt     time.Time            `json:"created_at"`
	UpdatedAt     time.Time            `json:"updated_at"`
}

// FromSnapshot converts a session snapshot for the wire.
func FromSnapshot(s *session.Snapshot) *SessionResponse {
	if s == nil {
		return nil
	}
	items := s.Items
	if items == nil {
		items = []models.ReviewItem{}
	}
	return &SessionResponse{
		ID:            s.ID.String(),
		State:         string(s.State),
		Generation:    s.Generation,
		Progress:      s.Progress,
		Items:         items,
		SelectedCount: s.SelectedCount,
		Result:        s.Result,
		Failure:       s.Failure,
		CreatedAt:     s.CreatedAt,
		UpdatedAt:     s.UpdatedAt,
	}
}

// DOMResponse reports the display name found in a DOM snapshot.
type DOMResponse struct {
	Found   bool   `json:"found"`
	Value   string `json:"value,omitempty"`
	Kind    string `json:"kind,omitempty"`
	Locator string `json:"locator,omitempty"`
}

// FromDOMResult converts a Live-DOM result for the wire.
func FromDOMResult(res *dom.Result) DOMResponse {
	if res == nil || !res.Found() {
		return DOMResponse{}
	}
	return DOMResponse{
		Found:   true,
		Value:   res.Token.RawValue,
		Kind:    res.Token.Kind.String(),
		Locator: res.Locator,
	}
}
