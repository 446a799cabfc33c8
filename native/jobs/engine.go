package jobs

import (
	"fmt"
	"math/big"
	"time"

	"gigchain/core/events"
	"gigchain/core/types"
	"gigchain/native/escrow"
	"gigchain/native/paygate"
)

// SkillsVerifier is the identity/skills collaborator consulted before an
// offer is accepted onto a job's requirement bitmasks.
type SkillsVerifier interface {
	HasSkills(worker [20]byte, area, category, skills uint64) (bool, error)
}

// paymentGate abstracts the authorization gate the engine drives to move
// escrowed funds.
type paymentGate interface {
	Lock(caller [20]byte, opID [32]byte, from, to escrow.Key, token string, amount *big.Int) error
	Settle(caller [20]byte, opID [32]byte, from escrow.Key, token string, legs []paygate.Leg) error
}

// ledgerView is the read-only slice of the escrow ledger the engine needs for
// settlement computations.
type ledgerView interface {
	Balance(key escrow.Key, token string) (*big.Int, error)
	FeeCollector() ([20]byte, bool)
}

type jobEvent struct {
	evt *types.Event
}

func (e jobEvent) EventType() string {
	if e.evt == nil {
		return ""
	}
	return e.evt.Type
}

func (e jobEvent) Event() *types.Event { return e.evt }

// Engine owns the job and offer records, enforces the lifecycle state
// machine, computes lock and release amounts, and drives the payment gate to
// move funds. It performs no mutation until every check for an operation has
// passed, so a failure of any kind leaves jobs and balances untouched.
type Engine struct {
	state   engineState
	gate    paymentGate
	ledger  ledgerView
	skills  SkillsVerifier
	emitter events.Emitter
	self    [20]byte
	referee [20]byte
	token   string
	nowFn   func() int64
}

// NewEngine creates a lifecycle engine settling in the given token, with a
// no-op emitter. Collaborators are wired via the Set* methods.
func NewEngine(token string) *Engine {
	return &Engine{
		emitter: events.NoopEmitter{},
		token:   token,
		nowFn:   func() int64 { return time.Now().Unix() },
	}
}

// SetState configures the state backend used by the engine.
func (e *Engine) SetState(state engineState) { e.state = state }

// SetGate configures the payment authorization gate.
func (e *Engine) SetGate(gate paymentGate) { e.gate = gate }

// SetLedgerView configures the read-only escrow ledger view.
func (e *Engine) SetLedgerView(view ledgerView) { e.ledger = view }

// SetSkillsVerifier configures the identity/skills collaborator.
func (e *Engine) SetSkillsVerifier(verifier SkillsVerifier) { e.skills = verifier }

// SetSelfAddress records the engine's module address, which must match the
// gate's registered engine for lock and release calls to be admitted.
func (e *Engine) SetSelfAddress(addr [20]byte) { e.self = addr }

// SetReferee configures the trusted dispute referee.
func (e *Engine) SetReferee(addr [20]byte) { e.referee = addr }

// SetEmitter configures the event emitter used by the engine. Passing nil
// resets the emitter to a no-op implementation.
func (e *Engine) SetEmitter(emitter events.Emitter) {
	if emitter == nil {
		e.emitter = events.NoopEmitter{}
		return
	}
	e.emitter = emitter
}

// SetNowFunc overrides the time source used by the engine. Primarily intended
// for tests to provide deterministic timestamps.
func (e *Engine) SetNowFunc(now func() int64) {
	if now == nil {
		e.nowFn = func() int64 { return time.Now().Unix() }
		return
	}
	e.nowFn = now
}

func (e *Engine) emit(evt *types.Event) {
	if e == nil || e.emitter == nil || evt == nil {
		return
	}
	e.emitter.Emit(jobEvent{evt: evt})
}

func (e *Engine) now() uint64 {
	if e == nil || e.nowFn == nil {
		return uint64(time.Now().Unix())
	}
	n := e.nowFn()
	if n < 0 {
		return 0
	}
	return uint64(n)
}

func nonNegative(v *big.Int) (*big.Int, error) {
	if v == nil {
		return big.NewInt(0), nil
	}
	if v.Sign() < 0 {
		return nil, ErrInvalidAmount
	}
	return new(big.Int).Set(v), nil
}

// PostJob creates a new job in StateCreated and returns its sequential id.
// Anyone may post; area, category and skills must all be non-zero.
func (e *Engine) PostJob(caller [20]byte, workflow Workflow, area, category, skills uint64, defaultPay *big.Int, details [32]byte) (uint64, error) {
	if e == nil || e.state == nil {
		return 0, ErrNilState
	}
	if !workflow.Valid() {
		return 0, ErrUnknownWorkflow
	}
	if area == 0 || category == 0 || skills == 0 {
		return 0, ErrInvalidRequirements
	}
	pay, err := nonNegative(defaultPay)
	if err != nil {
		return 0, err
	}
	id, err := e.nextJobID()
	if err != nil {
		return 0, err
	}
	job := &Job{
		ID:         id,
		Client:     caller,
		Workflow:   workflow,
		Area:       area,
		Category:   category,
		Skills:     skills,
		DefaultPay: pay,
		Details:    details,
		State:      StateCreated,
	}
	if err := e.storeJob(job); err != nil {
		return 0, err
	}
	e.emit(newPostedEvent(job))
	return id, nil
}

func (e *Engine) checkOfferPreconditions(caller [20]byte, job *Job) error {
	if job.State != StateCreated {
		return ErrInvalidState
	}
	if caller == job.Client {
		return ErrUnauthorized
	}
	if e.skills == nil {
		return ErrNilSkills
	}
	ok, err := e.skills.HasSkills(caller, job.Area, job.Category, job.Skills)
	if err != nil {
		return err
	}
	if !ok {
		return ErrInsufficientSkills
	}
	return nil
}

// PostOffer records or replaces the caller's time-and-materials offer on the
// job. Only valid while the job is in StateCreated; the last write wins.
func (e *Engine) PostOffer(caller [20]byte, jobID uint64, rate, onTop *big.Int, estimateMinutes uint64) error {
	job, err := e.loadJob(jobID)
	if err != nil {
		return err
	}
	if !job.Workflow.TimeBased() {
		return ErrWorkflowMismatch
	}
	if err := e.checkOfferPreconditions(caller, job); err != nil {
		return err
	}
	if rate == nil || rate.Sign() <= 0 {
		return ErrInvalidAmount
	}
	bonus, err := nonNegative(onTop)
	if err != nil {
		return err
	}
	// Rejects offers whose lock would overflow before they can be accepted.
	if _, err := lockAmount(rate, bonus, estimateMinutes, slackMinutes); err != nil {
		return err
	}
	offer := &Offer{
		JobID:           jobID,
		Worker:          caller,
		Rate:            new(big.Int).Set(rate),
		OnTop:           bonus,
		EstimateMinutes: estimateMinutes,
	}
	if err := e.storeOffer(offer); err != nil {
		return err
	}
	e.emit(newOfferPostedEvent(offer))
	return nil
}

// PostOfferWithPrice records or replaces the caller's fixed-price offer on
// the job.
func (e *Engine) PostOfferWithPrice(caller [20]byte, jobID uint64, price *big.Int) error {
	job, err := e.loadJob(jobID)
	if err != nil {
		return err
	}
	if job.Workflow != WorkflowFixedPrice {
		return ErrWorkflowMismatch
	}
	if err := e.checkOfferPreconditions(caller, job); err != nil {
		return err
	}
	if price == nil || price.Sign() <= 0 {
		return ErrInvalidAmount
	}
	if _, ok := toUint256(price); !ok {
		return ErrInvalidEstimate
	}
	offer := &Offer{
		JobID:  jobID,
		Worker: caller,
		Price:  new(big.Int).Set(price),
	}
	if err := e.storeOffer(offer); err != nil {
		return err
	}
	e.emit(newOfferPostedEvent(offer))
	return nil
}

func (e *Engine) offerLock(job *Job, offer *Offer) (*big.Int, error) {
	if job.Workflow == WorkflowFixedPrice {
		if offer.Price == nil || offer.Price.Sign() <= 0 {
			return nil, ErrWorkerRateNotSet
		}
		return new(big.Int).Set(offer.Price), nil
	}
	return lockAmount(offer.Rate, offer.OnTop, offer.EstimateMinutes, slackMinutes)
}

// CalculateLockAmountFor returns the amount the client must attach to accept
// the named worker's current offer.
func (e *Engine) CalculateLockAmountFor(worker [20]byte, jobID uint64) (*big.Int, error) {
	job, err := e.loadJob(jobID)
	if err != nil {
		return nil, err
	}
	offer, err := e.loadOffer(jobID, worker)
	if err != nil {
		return nil, err
	}
	return e.offerLock(job, offer)
}

// CalculateLock returns the additional lock required to extend a
// time-and-materials engagement by the given minutes and bonus, priced at the
// accepted rate when the worker is assigned and at the worker's offered rate
// otherwise.
func (e *Engine) CalculateLock(worker [20]byte, jobID uint64, additionalMinutes uint64, additionalOnTop *big.Int) (*big.Int, error) {
	job, err := e.loadJob(jobID)
	if err != nil {
		return nil, err
	}
	if !job.Workflow.TimeBased() {
		return nil, ErrWorkflowMismatch
	}
	bonus, err := nonNegative(additionalOnTop)
	if err != nil {
		return nil, err
	}
	var rate *big.Int
	if job.Time != nil && job.Worker == worker {
		rate = job.Time.Rate
	} else {
		offer, err := e.loadOffer(jobID, worker)
		if err != nil {
			return nil, err
		}
		rate = offer.Rate
	}
	return lockAmount(rate, bonus, additionalMinutes, 0)
}

// AcceptOffer assigns the named worker and locks the offer's computed amount
// from the client's ledger balance into the job's escrow account. The
// attached value must cover the lock; anything below it is a hard abort with
// no state change.
func (e *Engine) AcceptOffer(caller [20]byte, jobID uint64, worker [20]byte, attached *big.Int) error {
	job, err := e.loadJob(jobID)
	if err != nil {
		return err
	}
	if job.State != StateCreated {
		return ErrInvalidState
	}
	if caller != job.Client {
		return ErrUnauthorized
	}
	offer, err := e.loadOffer(jobID, worker)
	if err != nil {
		return err
	}
	lock, err := e.offerLock(job, offer)
	if err != nil {
		return err
	}
	if attached == nil || attached.Cmp(lock) < 0 {
		return ErrInsufficientPayment
	}
	if e.gate == nil {
		return ErrNilGate
	}
	if err := e.gate.Lock(e.self, LockOperationID(jobID), escrow.AddressKey(job.Client), escrow.JobKey(jobID), e.token, lock); err != nil {
		return err
	}
	job.Worker = worker
	if job.Workflow == WorkflowFixedPrice {
		job.Fixed = &FixedTerms{Price: new(big.Int).Set(offer.Price)}
	} else {
		job.Time = &TimeTerms{
			Rate:            new(big.Int).Set(offer.Rate),
			OnTop:           new(big.Int).Set(offer.OnTop),
			EstimateMinutes: offer.EstimateMinutes,
		}
	}
	job.State = StateOfferAccepted
	if err := e.storeJob(job); err != nil {
		return err
	}
	e.emit(newOfferAcceptedEvent(job, lock))
	return nil
}

// StartWork moves the job to StatePendingStart and records the work-start
// timestamp for time-based workflows.
func (e *Engine) StartWork(caller [20]byte, jobID uint64) error {
	job, err := e.loadJob(jobID)
	if err != nil {
		return err
	}
	if job.State != StateOfferAccepted {
		return ErrInvalidState
	}
	if caller != job.Worker {
		return ErrUnauthorized
	}
	if job.Time != nil {
		job.Time.StartedAt = e.now()
	}
	job.State = StatePendingStart
	if err := e.storeJob(job); err != nil {
		return err
	}
	e.emit(newLifecycleEvent(EventTypeWorkStarted, job))
	return nil
}

// ConfirmStartWork acknowledges the start of work on a confirmed
// time-and-materials job. Workflows without confirmation steps reject the
// call; their transition out of StatePendingStart is implicit.
func (e *Engine) ConfirmStartWork(caller [20]byte, jobID uint64) error {
	job, err := e.loadJob(jobID)
	if err != nil {
		return err
	}
	if job.Workflow != WorkflowTimeAndMaterialsConfirmed {
		return ErrWorkflowMismatch
	}
	if caller != job.Client {
		return ErrUnauthorized
	}
	if job.State != StatePendingStart {
		return ErrInvalidState
	}
	job.State = StateStarted
	if err := e.storeJob(job); err != nil {
		return err
	}
	e.emit(newLifecycleEvent(EventTypeStartConfirmed, job))
	return nil
}

func (e *Engine) loadRunningTimeJob(caller [20]byte, jobID uint64) (*Job, error) {
	job, err := e.loadJob(jobID)
	if err != nil {
		return nil, err
	}
	if !job.Workflow.TimeBased() {
		return nil, ErrWorkflowMismatch
	}
	if caller != job.Worker {
		return nil, ErrUnauthorized
	}
	if job.State != StatePendingStart && job.State != StateStarted {
		return nil, ErrInvalidState
	}
	return job, nil
}

// PauseWork stops the active-time clock of a time-and-materials job.
func (e *Engine) PauseWork(caller [20]byte, jobID uint64) error {
	job, err := e.loadRunningTimeJob(caller, jobID)
	if err != nil {
		return err
	}
	if job.Time.Paused {
		return ErrAlreadyPaused
	}
	job.Time.Paused = true
	job.Time.PausedAt = e.now()
	if err := e.storeJob(job); err != nil {
		return err
	}
	e.emit(newLifecycleEvent(EventTypeWorkPaused, job))
	return nil
}

// ResumeWork restarts the active-time clock, accumulating the paused span.
func (e *Engine) ResumeWork(caller [20]byte, jobID uint64) error {
	job, err := e.loadRunningTimeJob(caller, jobID)
	if err != nil {
		return err
	}
	if !job.Time.Paused {
		return ErrNotPaused
	}
	if now := e.now(); now > job.Time.PausedAt {
		job.Time.PausedSeconds += now - job.Time.PausedAt
	}
	job.Time.Paused = false
	job.Time.PausedAt = 0
	if err := e.storeJob(job); err != nil {
		return err
	}
	e.emit(newLifecycleEvent(EventTypeWorkResumed, job))
	return nil
}

// AddMoreTime extends a time-and-materials estimate and locks the additional
// computed amount the same way AcceptOffer locks the initial one.
func (e *Engine) AddMoreTime(caller [20]byte, jobID uint64, minutes uint64, attached *big.Int) error {
	job, err := e.loadJob(jobID)
	if err != nil {
		return err
	}
	if !job.Workflow.TimeBased() {
		return ErrWorkflowMismatch
	}
	if caller != job.Client {
		return ErrUnauthorized
	}
	if minutes == 0 {
		return ErrInvalidDuration
	}
	if job.State != StateOfferAccepted && job.State != StatePendingStart && job.State != StateStarted {
		return ErrInvalidState
	}
	terms := job.Time
	newEstimate := terms.EstimateMinutes + minutes
	if newEstimate < terms.EstimateMinutes {
		return ErrInvalidEstimate
	}
	// The extended engagement must stay payable without overflow.
	if _, err := lockAmount(terms.Rate, terms.OnTop, newEstimate, slackMinutes); err != nil {
		return err
	}
	additional, err := lockAmount(terms.Rate, nil, minutes, 0)
	if err != nil {
		return err
	}
	if attached == nil || attached.Cmp(additional) < 0 {
		return ErrInsufficientPayment
	}
	if e.gate == nil {
		return ErrNilGate
	}
	if err := e.gate.Lock(e.self, ExtendOperationID(jobID, newEstimate), escrow.AddressKey(job.Client), escrow.JobKey(jobID), e.token, additional); err != nil {
		return err
	}
	terms.EstimateMinutes = newEstimate
	if err := e.storeJob(job); err != nil {
		return err
	}
	e.emit(newTimeAddedEvent(job, minutes, additional))
	return nil
}

// EndWork moves the job to StatePendingFinish. For time-based workflows the
// active minutes worked are snapshotted here, so settlement lag never
// inflates the payout.
func (e *Engine) EndWork(caller [20]byte, jobID uint64) error {
	job, err := e.loadJob(jobID)
	if err != nil {
		return err
	}
	if job.State != StatePendingStart && job.State != StateStarted {
		return ErrInvalidState
	}
	if caller != job.Worker {
		return ErrUnauthorized
	}
	if job.Time != nil {
		now := e.now()
		if job.Time.Paused {
			if now > job.Time.PausedAt {
				job.Time.PausedSeconds += now - job.Time.PausedAt
			}
			job.Time.Paused = false
			job.Time.PausedAt = 0
		}
		job.Time.WorkedMinutes = activeMinutes(job.Time, now)
		job.Time.Ended = true
	}
	job.State = StatePendingFinish
	if err := e.storeJob(job); err != nil {
		return err
	}
	e.emit(newLifecycleEvent(EventTypeWorkEnded, job))
	return nil
}

// ConfirmEndWork acknowledges the end of work on a confirmed
// time-and-materials job.
func (e *Engine) ConfirmEndWork(caller [20]byte, jobID uint64) error {
	job, err := e.loadJob(jobID)
	if err != nil {
		return err
	}
	if job.Workflow != WorkflowTimeAndMaterialsConfirmed {
		return ErrWorkflowMismatch
	}
	if caller != job.Client {
		return ErrUnauthorized
	}
	if job.State != StatePendingFinish {
		return ErrInvalidState
	}
	job.State = StateFinished
	if err := e.storeJob(job); err != nil {
		return err
	}
	e.emit(newLifecycleEvent(EventTypeEndConfirmed, job))
	return nil
}

func (e *Engine) reviewWorkResults(caller [20]byte, jobID uint64, accepted bool) error {
	job, err := e.loadJob(jobID)
	if err != nil {
		return err
	}
	if job.Workflow != WorkflowFixedPrice {
		return ErrWorkflowMismatch
	}
	if caller != job.Client {
		return ErrUnauthorized
	}
	if job.State != StatePendingFinish {
		return ErrInvalidState
	}
	eventType := EventTypeResultsAccepted
	job.State = StateWorkAccepted
	if !accepted {
		job.State = StateWorkRejected
		eventType = EventTypeResultsRejected
	}
	if err := e.storeJob(job); err != nil {
		return err
	}
	e.emit(newLifecycleEvent(eventType, job))
	return nil
}

// AcceptWorkResults approves delivered fixed-price work, clearing it for
// release.
func (e *Engine) AcceptWorkResults(caller [20]byte, jobID uint64) error {
	return e.reviewWorkResults(caller, jobID, true)
}

// RejectWorkResults contests delivered fixed-price work, opening the dispute
// path.
func (e *Engine) RejectWorkResults(caller [20]byte, jobID uint64) error {
	return e.reviewWorkResults(caller, jobID, false)
}

func (e *Engine) lockedBalance(jobID uint64) (*big.Int, error) {
	if e.ledger == nil {
		return nil, ErrNilLedger
	}
	return e.ledger.Balance(escrow.JobKey(jobID), e.token)
}

func (e *Engine) settle(job *Job, op [32]byte, legs []paygate.Leg, evt *types.Event) error {
	if e.gate == nil {
		return ErrNilGate
	}
	if err := e.gate.Settle(e.self, op, escrow.JobKey(job.ID), e.token, legs); err != nil {
		return err
	}
	job.State = StateFinalized
	if err := e.storeJob(job); err != nil {
		return err
	}
	e.emit(evt)
	return nil
}

// ReleasePayment settles a completed job: the computed payment goes to the
// worker and the remainder of the locked balance returns to the client.
// Anyone may trigger it once the job is releasable.
func (e *Engine) ReleasePayment(caller [20]byte, jobID uint64) error {
	job, err := e.loadJob(jobID)
	if err != nil {
		return err
	}
	var payment *big.Int
	switch job.Workflow {
	case WorkflowTimeAndMaterials:
		if job.State != StatePendingFinish {
			return ErrInvalidState
		}
		payment, err = timePayout(job.Time.Rate, job.Time.OnTop, job.Time.WorkedMinutes, job.Time.EstimateMinutes)
	case WorkflowTimeAndMaterialsConfirmed:
		if job.State != StateFinished {
			return ErrInvalidState
		}
		payment, err = timePayout(job.Time.Rate, job.Time.OnTop, job.Time.WorkedMinutes, job.Time.EstimateMinutes)
	case WorkflowFixedPrice:
		if job.State != StateWorkAccepted {
			return ErrInvalidState
		}
		payment = new(big.Int).Set(job.Fixed.Price)
	default:
		return ErrUnknownWorkflow
	}
	if err != nil {
		return err
	}
	locked, err := e.lockedBalance(jobID)
	if err != nil {
		return err
	}
	if locked.Cmp(payment) < 0 {
		return fmt.Errorf("jobs: locked balance %s below computed payment %s", locked, payment)
	}
	refund := new(big.Int).Sub(locked, payment)
	legs := []paygate.Leg{
		{To: escrow.AddressKey(job.Worker), Amount: payment},
		{To: escrow.AddressKey(job.Client), Amount: refund},
	}
	return e.settle(job, ReleaseOperationID(jobID), legs, newReleasedEvent(job, payment, refund))
}

// ResolveWorkDispute splits the locked balance of a rejected fixed-price job
// between worker, fee collector and client. Only the trusted referee may
// resolve; an allocation above the locked balance fails with funds untouched.
func (e *Engine) ResolveWorkDispute(caller [20]byte, jobID uint64, workerAmount, penaltyFee *big.Int) error {
	job, err := e.loadJob(jobID)
	if err != nil {
		return err
	}
	if e.referee == ([20]byte{}) || caller != e.referee {
		return ErrUnauthorized
	}
	if job.State != StateWorkRejected {
		return ErrInvalidState
	}
	worker, err := nonNegative(workerAmount)
	if err != nil {
		return err
	}
	penalty, err := nonNegative(penaltyFee)
	if err != nil {
		return err
	}
	locked, err := e.lockedBalance(jobID)
	if err != nil {
		return err
	}
	total := new(big.Int).Add(worker, penalty)
	if total.Cmp(locked) > 0 {
		return ErrDisputeExceedsLock
	}
	refund := new(big.Int).Sub(locked, total)
	legs := []paygate.Leg{{To: escrow.AddressKey(job.Worker), Amount: worker}}
	if collector, ok := e.ledger.FeeCollector(); ok {
		legs = append(legs, paygate.Leg{To: escrow.AddressKey(collector), Amount: penalty})
	} else {
		// No fee destination configured: the penalty folds into the refund.
		refund = refund.Add(refund, penalty)
		penalty = big.NewInt(0)
	}
	legs = append(legs, paygate.Leg{To: escrow.AddressKey(job.Client), Amount: refund})
	return e.settle(job, DisputeOperationID(jobID), legs, newDisputeResolvedEvent(job, worker, penalty, refund))
}

// CancelJob lets the client abort a time-and-materials engagement before work
// ends, paying the worker for active time so far plus the on-top bonus and
// refunding the remainder. Fixed-price jobs cannot be cancelled in any state.
func (e *Engine) CancelJob(caller [20]byte, jobID uint64) error {
	job, err := e.loadJob(jobID)
	if err != nil {
		return err
	}
	if caller != job.Client {
		return ErrUnauthorized
	}
	if !job.Workflow.TimeBased() {
		return ErrWorkflowMismatch
	}
	if job.State != StateOfferAccepted && job.State != StatePendingStart && job.State != StateStarted {
		return ErrInvalidState
	}
	earned, err := timePayout(job.Time.Rate, job.Time.OnTop, activeMinutes(job.Time, e.now()), job.Time.EstimateMinutes)
	if err != nil {
		return err
	}
	locked, err := e.lockedBalance(jobID)
	if err != nil {
		return err
	}
	if earned.Cmp(locked) > 0 {
		earned = new(big.Int).Set(locked)
	}
	refund := new(big.Int).Sub(locked, earned)
	legs := []paygate.Leg{
		{To: escrow.AddressKey(job.Worker), Amount: earned},
		{To: escrow.AddressKey(job.Client), Amount: refund},
	}
	return e.settle(job, CancelOperationID(jobID), legs, newCancelledEvent(job, earned, refund))
}

// activeMinutes returns the whole minutes the clock has run, excluding paused
// spans. Jobs that never started read as zero.
func activeMinutes(t *TimeTerms, now uint64) uint64 {
	if t == nil || t.StartedAt == 0 || now <= t.StartedAt {
		return 0
	}
	elapsed := now - t.StartedAt
	paused := t.PausedSeconds
	if t.Paused && now > t.PausedAt {
		paused += now - t.PausedAt
	}
	if paused >= elapsed {
		return 0
	}
	return (elapsed - paused) / 60
}

// GetJob returns a copy of the stored job record.
func (e *Engine) GetJob(jobID uint64) (*Job, error) {
	job, err := e.loadJob(jobID)
	if err != nil {
		return nil, err
	}
	return job.Clone(), nil
}

// GetJobState returns the job's current lifecycle state.
func (e *Engine) GetJobState(jobID uint64) (State, error) {
	job, err := e.loadJob(jobID)
	if err != nil {
		return 0, err
	}
	return job.State, nil
}

// GetJobWorker returns the assigned worker, which is the zero address until
// an offer is accepted.
func (e *Engine) GetJobWorker(jobID uint64) ([20]byte, error) {
	job, err := e.loadJob(jobID)
	if err != nil {
		return [20]byte{}, err
	}
	return job.Worker, nil
}

// GetOffer returns a copy of the worker's active offer on the job.
func (e *Engine) GetOffer(jobID uint64, worker [20]byte) (*Offer, error) {
	offer, err := e.loadOffer(jobID, worker)
	if err != nil {
		return nil, err
	}
	return offer.Clone(), nil
}

// Balance reports a party's ledger balance in the settlement token.
func (e *Engine) Balance(party [20]byte) (*big.Int, error) {
	if e.ledger == nil {
		return nil, ErrNilLedger
	}
	return e.ledger.Balance(escrow.AddressKey(party), e.token)
}
