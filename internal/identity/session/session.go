// Package session models one screenshot extraction as an explicit state
// machine and keeps live sessions in memory.
//
// A session moves idle → extracting → reviewing → importing → done, with
// error reachable from extracting. Each extraction run carries a generation
// number; results from a superseded run are discarded.
package session

import (
	"fmt"
	"time"

	"leadscout/internal/identity/models"
	"leadscout/internal/identity/review"
	id "leadscout/pkg/domain"
	dErrors "leadscout/pkg/domain-errors"
	"leadscout/pkg/platform/sentinel"
)

type State string

const (
	StateIdle       State = "idle"
	StateExtracting State = "extracting"
	StateReviewing  State = "reviewing"
	StateImporting  State = "importing"
	StateDone       State = "done"
	StateError      State = "error"
)

var transitions = map[State][]State{
	StateIdle:       {StateExtracting},
	StateExtracting: {StateReviewing, StateError, StateExtracting},
	StateReviewing:  {StateExtracting, StateImporting},
	StateImporting:  {StateDone},
	StateError:      {StateExtracting},
}

func (s State) String() string { return string(s) }

// CanTransitionTo reports whether the state machine has an edge s → to.
func (s State) CanTransitionTo(to State) bool {
	for _, allowed := range transitions[s] {
		if allowed == to {
			return true
		}
	}
	return false
}

// InFlight reports whether an external operation is running for the state.
func (s State) InFlight() bool {
	return s == StateExtracting || s == StateImporting
}

// Session is the mutable aggregate. It is only touched through the store's
// Update callback, which serializes access.
type Session struct {
	ID         id.SessionID
	TenantID   id.TenantID
	State      State
	Generation uint64
	Progress   int
	Batch      *review.Batch
	Result     *models.ImportResult
	Failure    string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func New(tenantID id.TenantID, now time.Time) *Session {
	return &Session{
		ID:        id.NewSessionID(),
		TenantID:  tenantID,
		State:     StateIdle,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (s *Session) transition(to State, now time.Time) error {
	if !s.State.CanTransitionTo(to) {
		return dErrors.New(dErrors.CodeInvariantViolation,
			fmt.Sprintf("extraction session cannot move from %s to %s", s.State, to))
	}
	s.State = to
	s.UpdatedAt = now
	return nil
}

// BeginExtraction starts a new run and returns its generation. Any batch,
// result or failure from a previous run is cleared.
func (s *Session) BeginExtraction(now time.Time) (uint64, error) {
	if err := s.transition(StateExtracting, now); err != nil {
		return 0, err
	}
	s.Generation++
	s.Progress = 0
	s.Batch = nil
	s.Result = nil
	s.Failure = ""
	return s.Generation, nil
}

// IsCurrent reports whether generation is the run in flight.
func (s *Session) IsCurrent(generation uint64) bool {
	return s.State == StateExtracting && s.Generation == generation
}

// SetProgress raises progress for the current run. Lower values are ignored
// so progress never moves backwards within a run.
func (s *Session) SetProgress(generation uint64, percent int, now time.Time) error {
	if !s.IsCurrent(generation) {
		return sentinel.ErrStale
	}
	percent = min(max(percent, 0), 100)
	if percent > s.Progress {
		s.Progress = percent
		s.UpdatedAt = now
	}
	return nil
}

// CompleteExtraction commits the review items of the current run.
func (s *Session) CompleteExtraction(generation uint64, items []models.ReviewItem, now time.Time) error {
	if !s.IsCurrent(generation) {
		return sentinel.ErrStale
	}
	if err := s.transition(StateReviewing, now); err != nil {
		return err
	}
	s.Batch = review.NewBatch(items)
	s.Progress = 100
	return nil
}

// FailExtraction moves the current run to the error state without a batch.
func (s *Session) FailExtraction(generation uint64, reason string, now time.Time) error {
	if !s.IsCurrent(generation) {
		return sentinel.ErrStale
	}
	if err := s.transition(StateError, now); err != nil {
		return err
	}
	s.Batch = nil
	s.Failure = reason
	return nil
}

func (s *Session) requireReviewing() error {
	if s.State != StateReviewing || s.Batch == nil {
		return dErrors.New(dErrors.CodeInvariantViolation,
			fmt.Sprintf("extraction session is %s, not reviewing", s.State))
	}
	return nil
}

func (s *Session) Toggle(index int, now time.Time) error {
	if err := s.requireReviewing(); err != nil {
		return err
	}
	if err := s.Batch.Toggle(index); err != nil {
		return err
	}
	s.UpdatedAt = now
	return nil
}

func (s *Session) SelectAll(now time.Time) error {
	if err := s.requireReviewing(); err != nil {
		return err
	}
	s.Batch.SelectAll()
	s.UpdatedAt = now
	return nil
}

func (s *Session) ClearSelection(now time.Time) error {
	if err := s.requireReviewing(); err != nil {
		return err
	}
	s.Batch.ClearAll()
	s.UpdatedAt = now
	return nil
}

// BeginImport moves to importing and returns the selected candidates. With
// nothing selected the session stays in review.
func (s *Session) BeginImport(now time.Time) ([]models.CandidateToken, error) {
	if err := s.requireReviewing(); err != nil {
		return nil, err
	}
	selected := s.Batch.Selected()
	if len(selected) == 0 {
		return nil, dErrors.New(dErrors.CodeValidation, "no candidates selected for import")
	}
	if err := s.transition(StateImporting, now); err != nil {
		return nil, err
	}
	return selected, nil
}

// CompleteImport stores a private copy of result and finishes the session.
func (s *Session) CompleteImport(result *models.ImportResult, now time.Time) error {
	if err := s.transition(StateDone, now); err != nil {
		return err
	}
	s.Result = result.Clone()
	return nil
}

func (s *Session) clone() *Session {
	c := *s
	c.Batch = s.Batch.Clone()
	c.Result = s.Result.Clone()
	return &c
}

// Snapshot is an immutable view of a session for transport.
type Snapshot struct {
	ID            id.SessionID         `json:"id"`
	TenantID      id.TenantID          `json:"tenant_id"`
	State         State                `json:"state"`
	Generation    uint64               `json:"generation"`
	Progress      int                  `json:"progress"`
	Items         []models.ReviewItem  `json:"items"`
	SelectedCount int                  `json:"selected_count"`
	Result        *models.ImportResult `json:"result,omitempty"`
	Failure       string               `json:"failure,omitempty"`
	CreatedAt     time.Time            `json:"created_at"`
	UpdatedAt     time.Time            `json:"updated_at"`
}

func (s *Session) Snapshot() *Snapshot {
	snap := &Snapshot{
		ID:         s.ID,
		TenantID:   s.TenantID,
		State:      s.State,
		Generation: s.Generation,
		Progress:   s.Progress,
		Items:      []models.ReviewItem{},
		Result:     s.Result.Clone(),
		Failure:    s.Failure,
		CreatedAt:  s.CreatedAt,
		UpdatedAt:  s.UpdatedAt,
	}
	if s.Batch != nil {
		snap.Items = s.Batch.Items()
		snap.SelectedCount = s.Batch.SelectedCount()
	}
	return snap
}
