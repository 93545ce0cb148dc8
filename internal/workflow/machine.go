// Package workflow owns the lifecycle of a single in-flight image:
// idle → processing → ready → uploading → completed, with error paths
// back to the nearest safe prior state.
package workflow

import (
	"errors"

	"github.com/blackwell-systems/optibridge/internal/backend"
	"github.com/blackwell-systems/optibridge/internal/ingest"
)

// State is the machine's current phase.
type State int

const (
	StateIdle State = iota
	StateProcessing
	StateReady
	StateUploading
	StateCompleted
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateProcessing:
		return "processing"
	case StateReady:
		return "ready"
	case StateUploading:
		return "uploading"
	case StateCompleted:
		return "completed"
	default:
		return "unknown"
	}
}

var (
	// ErrBusy is returned when a transition is requested while a
	// backend request is already outstanding.
	ErrBusy = errors.New("operation already in progress")

	// ErrInvalidState is returned when a transition is not defined
	// from the current state.
	ErrInvalidState = errors.New("not valid in current state")
)

// Machine is the single-slot upload workflow. It holds at most one
// processed image and at most one outstanding backend request. Begin
// calls hand out a token; the matching Finish call applies only when
// its token is the latest issued, so responses to superseded or reset
// requests are safely ignored.
//
// The machine performs no I/O itself. The caller issues the backend
// call after a successful Begin and reports the outcome via Finish.
type Machine struct {
	state     State
	candidate ingest.Candidate
	image     *backend.ProcessedImage
	provider  backend.Provider
	result    *backend.UploadResult
	seq       uint64
}

// New returns a Machine in the idle state.
func New() *Machine {
	return &Machine{provider: backend.Providers()[0]}
}

// State returns the current state.
func (m *Machine) State() State { return m.state }

// Candidate returns the candidate being processed. Meaningful only in
// the processing state.
func (m *Machine) Candidate() ingest.Candidate { return m.candidate }

// Image returns the live processed image, or nil outside ready and
// uploading.
func (m *Machine) Image() *backend.ProcessedImage { return m.image }

// Provider returns the currently chosen destination provider.
func (m *Machine) Provider() backend.Provider { return m.provider }

// Result returns the upload result, or nil outside completed.
func (m *Machine) Result() *backend.UploadResult { return m.result }

// Begin starts processing a candidate, moving idle → processing. The
// returned token must be passed to FinishProcess. Returns ErrBusy while
// a request is outstanding and ErrInvalidState from ready or completed,
// where Cancel or Reset must run first.
func (m *Machine) Begin(c ingest.Candidate) (uint64, error) {
	switch m.state {
	case StateIdle:
	case StateProcessing, StateUploading:
		return 0, ErrBusy
	default:
		return 0, ErrInvalidState
	}
	m.state = StateProcessing
	m.candidate = c
	m.seq++
	return m.seq, nil
}

// FinishProcess applies the outcome of a process request. Success moves
// to ready with the default provider selected; failure returns to idle
// with no residual state. Reports whether the completion was applied;
// stale tokens are ignored.
func (m *Machine) FinishProcess(token uint64, img *backend.ProcessedImage, err error) bool {
	if m.state != StateProcessing || token != m.seq {
		return false
	}
	if err != nil {
		m.state = StateIdle
		m.candidate = ingest.Candidate{}
		return true
	}
	m.state = StateReady
	m.image = img
	m.provider = backend.Providers()[0]
	return true
}

// SetProvider changes the destination provider. Valid only in ready,
// any number of times.
func (m *Machine) SetProvider(p backend.Provider) error {
	if m.state != StateReady {
		return ErrInvalidState
	}
	if !p.Valid() {
		return errors.New("unknown provider " + string(p))
	}
	m.provider = p
	return nil
}

// BeginUpload starts uploading the processed image, moving ready →
// uploading. Returns ErrBusy when already uploading and ErrInvalidState
// from any other non-ready state.
func (m *Machine) BeginUpload() (uint64, error) {
	switch m.state {
	case StateReady:
	case StateUploading:
		return 0, ErrBusy
	default:
		return 0, ErrInvalidState
	}
	m.state = StateUploading
	m.seq++
	return m.seq, nil
}

// FinishUpload applies the outcome of an upload request. Success moves
// to completed and discards the processed image; failure returns to
// ready with the same image, so the user can retry or switch provider
// without reprocessing. Stale tokens are ignored.
func (m *Machine) FinishUpload(token uint64, res *backend.UploadResult, err error) bool {
	if m.state != StateUploading || token != m.seq {
		return false
	}
	if err != nil {
		m.state = StateReady
		return true
	}
	m.state = StateCompleted
	m.result = res
	m.image = nil
	m.candidate = ingest.Candidate{}
	return true
}

// Cancel discards the processed image without contacting the backend,
// moving ready → idle.
func (m *Machine) Cancel() error {
	if m.state != StateReady {
		return ErrInvalidState
	}
	m.state = StateIdle
	m.image = nil
	m.candidate = ingest.Candidate{}
	return nil
}

// Reset clears the upload result, moving completed → idle.
func (m *Machine) Reset() error {
	if m.state != StateCompleted {
		return ErrInvalidState
	}
	m.state = StateIdle
	m.result = nil
	return nil
}
