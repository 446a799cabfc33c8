package jobs

import "errors"

// Business failures are reported as sentinel errors and leave all state
// untouched. Hard aborts (attached value below the required lock, arithmetic
// overflow, downstream transfer failures) are also errors but indicate the
// operation was rejected before any mutation landed.
var (
	ErrJobNotFound     = errors.New("jobs: job not found")
	ErrInvalidState    = errors.New("jobs: invalid state for operation")
	ErrUnauthorized    = errors.New("jobs: unauthorized caller")
	ErrUnknownWorkflow = errors.New("jobs: unrecognized workflow")
	// ErrWorkflowMismatch marks operations applied to the wrong workflow
	// kind, e.g. a fixed-price offer on a time-and-materials job.
	ErrWorkflowMismatch = errors.New("jobs: workflow mismatch")
	// ErrInvalidRequirements marks job postings with zero-valued area,
	// category or skills fields.
	ErrInvalidRequirements = errors.New("jobs: area, category and skills must be set")
	ErrInsufficientSkills  = errors.New("jobs: worker lacks required skills")
	// ErrWorkerRateNotSet is returned when accepting an offer from a worker
	// that has none posted.
	ErrWorkerRateNotSet = errors.New("jobs: worker has no active offer")
	// ErrInvalidEstimate marks offers or extensions whose lock amount would
	// overflow the numeric domain.
	ErrInvalidEstimate = errors.New("jobs: estimate overflows lock computation")
	ErrAlreadyPaused   = errors.New("jobs: work already paused")
	ErrNotPaused       = errors.New("jobs: work not paused")
	ErrInvalidDuration = errors.New("jobs: minutes must be non-zero")
	ErrInvalidAmount   = errors.New("jobs: amount must be positive")
	// ErrInsufficientPayment is the hard abort for attached value below the
	// computed lock amount.
	ErrInsufficientPayment = errors.New("jobs: attached payment below required lock")
	// ErrDisputeExceedsLock marks dispute resolutions allocating more than
	// the job's locked balance. Locked funds remain untouched.
	ErrDisputeExceedsLock = errors.New("jobs: dispute allocation exceeds locked balance")
	ErrNilState           = errors.New("jobs: state not configured")
	ErrNilGate            = errors.New("jobs: payment gate not configured")
	ErrNilLedger          = errors.New("jobs: ledger view not configured")
	ErrNilSkills          = errors.New("jobs: skills verifier not configured")
)
