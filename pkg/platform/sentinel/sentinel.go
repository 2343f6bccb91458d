package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Stores, adapters and recognizers
// return these (optionally wrapped) and services translate them into coded
// domain errors:
//   - ErrNotFound: contact, session or flag does not exist for the tenant
//   - ErrConflict: contact with the same normalized value already stored
//   - ErrInvalidState: session is not in a state that allows the operation
//   - ErrUnavailable: backing store or recognition engine cannot be reached
//   - ErrStale: a result arrived for a superseded extraction run
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrInvalidState = errors.New("invalid state")
	ErrUnavailable  = errors.New("unavailable")
	ErrStale        = errors.New("stale result")
)
