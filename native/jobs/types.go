package jobs

import (
	"math/big"
)

// Workflow discriminates the two compensation models. Time-and-materials jobs
// accrue pay per active minute; the confirmed variant additionally requires
// the client to acknowledge the start and end of work. Fixed-price jobs pay a
// single agreed amount after explicit acceptance.
type Workflow uint8

const (
	WorkflowTimeAndMaterials Workflow = iota + 1
	WorkflowTimeAndMaterialsConfirmed
	WorkflowFixedPrice
)

// Valid reports whether the workflow value is recognized.
func (w Workflow) Valid() bool {
	switch w {
	case WorkflowTimeAndMaterials, WorkflowTimeAndMaterialsConfirmed, WorkflowFixedPrice:
		return true
	default:
		return false
	}
}

// TimeBased reports whether the workflow accrues pay per minute.
func (w Workflow) TimeBased() bool {
	return w == WorkflowTimeAndMaterials || w == WorkflowTimeAndMaterialsConfirmed
}

func (w Workflow) String() string {
	switch w {
	case WorkflowTimeAndMaterials:
		return "time_and_materials"
	case WorkflowTimeAndMaterialsConfirmed:
		return "time_and_materials_confirmed"
	case WorkflowFixedPrice:
		return "fixed_price"
	default:
		return "unknown"
	}
}

// State enumerates the job lifecycle states. Transitions only move along the
// edges enforced by the engine; anything else is rejected with
// ErrInvalidState.
type State uint8

const (
	StateCreated State = iota + 1
	StateOfferAccepted
	StatePendingStart
	StateStarted
	StatePendingFinish
	StateFinished
	StateWorkAccepted
	StateWorkRejected
	StateFinalized
)

// Valid reports whether the state value is within the supported range.
func (s State) Valid() bool {
	return s >= StateCreated && s <= StateFinalized
}

func (s State) String() string {
	switch s {
	case StateCreated:
		return "created"
	case StateOfferAccepted:
		return "offer_accepted"
	case StatePendingStart:
		return "pending_start"
	case StateStarted:
		return "started"
	case StatePendingFinish:
		return "pending_finish"
	case StateFinished:
		return "finished"
	case StateWorkAccepted:
		return "work_accepted"
	case StateWorkRejected:
		return "work_rejected"
	case StateFinalized:
		return "finalized"
	default:
		return "unknown"
	}
}

// TimeTerms carries the accepted compensation terms and running time
// accounting of a time-and-materials job. Timestamps are unix seconds.
type TimeTerms struct {
	Rate            *big.Int
	OnTop           *big.Int
	EstimateMinutes uint64
	StartedAt       uint64
	PausedAt        uint64
	PausedSeconds   uint64
	Paused          bool
	WorkedMinutes   uint64
	Ended           bool
}

// FixedTerms carries the accepted price of a fixed-price job.
type FixedTerms struct {
	Price *big.Int
}

// Job is the single record for both workflow kinds: a kind discriminant with
// two mutually exclusive payload variants, fixed at creation.
type Job struct {
	ID         uint64
	Client     [20]byte
	Worker     [20]byte
	Workflow   Workflow
	Area       uint64
	Category   uint64
	Skills     uint64
	DefaultPay *big.Int
	Details    [32]byte
	State      State
	Time       *TimeTerms  `rlp:"nil"`
	Fixed      *FixedTerms `rlp:"nil"`
}

// Clone returns a deep copy of the job so callers can mutate the copy without
// affecting the stored instance.
func (j *Job) Clone() *Job {
	if j == nil {
		return nil
	}
	clone := *j
	if j.DefaultPay != nil {
		clone.DefaultPay = new(big.Int).Set(j.DefaultPay)
	} else {
		clone.DefaultPay = big.NewInt(0)
	}
	if j.Time != nil {
		terms := *j.Time
		if j.Time.Rate != nil {
			terms.Rate = new(big.Int).Set(j.Time.Rate)
		} else {
			terms.Rate = big.NewInt(0)
		}
		if j.Time.OnTop != nil {
			terms.OnTop = new(big.Int).Set(j.Time.OnTop)
		} else {
			terms.OnTop = big.NewInt(0)
		}
		clone.Time = &terms
	}
	if j.Fixed != nil {
		fixed := *j.Fixed
		if j.Fixed.Price != nil {
			fixed.Price = new(big.Int).Set(j.Fixed.Price)
		} else {
			fixed.Price = big.NewInt(0)
		}
		clone.Fixed = &fixed
	}
	return &clone
}

// Offer is a worker's transient bid on a job, keyed by (job id, worker). A
// repost fully replaces the previous offer; offers are only meaningful while
// the job is in StateCreated.
type Offer struct {
	JobID           uint64
	Worker          [20]byte
	Rate            *big.Int
	OnTop           *big.Int
	EstimateMinutes uint64
	Price           *big.Int
}

// Clone returns a deep copy of the offer.
func (o *Offer) Clone() *Offer {
	if o == nil {
		return nil
	}
	clone := *o
	clone.Rate = big.NewInt(0)
	clone.OnTop = big.NewInt(0)
	clone.Price = big.NewInt(0)
	if o.Rate != nil {
		clone.Rate.Set(o.Rate)
	}
	if o.OnTop != nil {
		clone.OnTop.Set(o.OnTop)
	}
	if o.Price != nil {
		clone.Price.Set(o.Price)
	}
	return &clone
}
