package jobs

import (
	"encoding/binary"
	"encoding/hex"
	"math/big"
	"strconv"

	ethcrypto "github.com/ethereum/go-ethereum/crypto"

	"gigchain/core/types"
)

const (
	EventTypeJobPosted       = "jobs.posted"
	EventTypeOfferPosted     = "jobs.offer_posted"
	EventTypeOfferAccepted   = "jobs.offer_accepted"
	EventTypeWorkStarted     = "jobs.work_started"
	EventTypeStartConfirmed  = "jobs.start_confirmed"
	EventTypeWorkPaused      = "jobs.work_paused"
	EventTypeWorkResumed     = "jobs.work_resumed"
	EventTypeTimeAdded       = "jobs.time_added"
	EventTypeWorkEnded       = "jobs.work_ended"
	EventTypeEndConfirmed    = "jobs.end_confirmed"
	EventTypeResultsAccepted = "jobs.results_accepted"
	EventTypeResultsRejected = "jobs.results_rejected"
	EventTypeDisputeResolved = "jobs.dispute_resolved"
	EventTypePaymentReleased = "jobs.payment_released"
	EventTypeJobCancelled    = "jobs.cancelled"
)

func opID(tag string, jobID uint64, extra ...uint64) [32]byte {
	buf := make([]byte, 0, len(tag)+8*(1+len(extra)))
	buf = append(buf, tag...)
	buf = binary.BigEndian.AppendUint64(buf, jobID)
	for _, v := range extra {
		buf = binary.BigEndian.AppendUint64(buf, v)
	}
	return ethcrypto.Keccak256Hash(buf)
}

// LockOperationID identifies the escrow lock performed at offer acceptance.
// Administrators pre-approve it when the gate runs in service mode.
func LockOperationID(jobID uint64) [32]byte { return opID("jobs/lock", jobID) }

// ExtendOperationID identifies the additional lock performed by AddMoreTime,
// parameterised by the resulting total estimate so repeated extensions each
// carry a distinct id.
func ExtendOperationID(jobID, newEstimateMinutes uint64) [32]byte {
	return opID("jobs/extend", jobID, newEstimateMinutes)
}

// ReleaseOperationID identifies the settlement performed by ReleasePayment.
func ReleaseOperationID(jobID uint64) [32]byte { return opID("jobs/release", jobID) }

// DisputeOperationID identifies the settlement performed by
// ResolveWorkDispute.
func DisputeOperationID(jobID uint64) [32]byte { return opID("jobs/dispute", jobID) }

// CancelOperationID identifies the settlement performed by CancelJob.
func CancelOperationID(jobID uint64) [32]byte { return opID("jobs/cancel", jobID) }

func jobAttrs(jobID uint64) map[string]string {
	return map[string]string{"jobId": strconv.FormatUint(jobID, 10)}
}

func amountAttr(attrs map[string]string, name string, amount *big.Int) map[string]string {
	if amount == nil {
		attrs[name] = "0"
		return attrs
	}
	attrs[name] = amount.String()
	return attrs
}

func newPostedEvent(j *Job) *types.Event {
	attrs := jobAttrs(j.ID)
	attrs["client"] = hex.EncodeToString(j.Client[:])
	attrs["workflow"] = j.Workflow.String()
	attrs["area"] = strconv.FormatUint(j.Area, 10)
	attrs["category"] = strconv.FormatUint(j.Category, 10)
	attrs["skills"] = strconv.FormatUint(j.Skills, 10)
	attrs["details"] = hex.EncodeToString(j.Details[:])
	amountAttr(attrs, "defaultPay", j.DefaultPay)
	return &types.Event{Type: EventTypeJobPosted, Attributes: attrs}
}

func newOfferPostedEvent(o *Offer) *types.Event {
	attrs := jobAttrs(o.JobID)
	attrs["worker"] = hex.EncodeToString(o.Worker[:])
	amountAttr(attrs, "rate", o.Rate)
	amountAttr(attrs, "onTop", o.OnTop)
	attrs["estimateMinutes"] = strconv.FormatUint(o.EstimateMinutes, 10)
	amountAttr(attrs, "price", o.Price)
	return &types.Event{Type: EventTypeOfferPosted, Attributes: attrs}
}

func newOfferAcceptedEvent(j *Job, locked *big.Int) *types.Event {
	attrs := jobAttrs(j.ID)
	attrs["worker"] = hex.EncodeToString(j.Worker[:])
	amountAttr(attrs, "locked", locked)
	return &types.Event{Type: EventTypeOfferAccepted, Attributes: attrs}
}

func newLifecycleEvent(eventType string, j *Job) *types.Event {
	attrs := jobAttrs(j.ID)
	attrs["state"] = j.State.String()
	return &types.Event{Type: eventType, Attributes: attrs}
}

func newTimeAddedEvent(j *Job, minutes uint64, locked *big.Int) *types.Event {
	attrs := jobAttrs(j.ID)
	attrs["minutes"] = strconv.FormatUint(minutes, 10)
	attrs["estimateMinutes"] = strconv.FormatUint(j.Time.EstimateMinutes, 10)
	amountAttr(attrs, "locked", locked)
	return &types.Event{Type: EventTypeTimeAdded, Attributes: attrs}
}

func newReleasedEvent(j *Job, payment, refund *big.Int) *types.Event {
	attrs := jobAttrs(j.ID)
	attrs["worker"] = hex.EncodeToString(j.Worker[:])
	amountAttr(attrs, "payment", payment)
	amountAttr(attrs, "refund", refund)
	return &types.Event{Type: EventTypePaymentReleased, Attributes: attrs}
}

func newDisputeResolvedEvent(j *Job, workerAmount, penaltyFee, refund *big.Int) *types.Event {
	attrs := jobAttrs(j.ID)
	amountAttr(attrs, "workerAmount", workerAmount)
	amountAttr(attrs, "penaltyFee", penaltyFee)
	amountAttr(attrs, "refund", refund)
	return &types.Event{Type: EventTypeDisputeResolved, Attributes: attrs}
}

func newCancelledEvent(j *Job, earned, refund *big.Int) *types.Event {
	attrs := jobAttrs(j.ID)
	amountAttr(attrs, "earned", earned)
	amountAttr(attrs, "refund", refund)
	return &types.Event{Type: EventTypeJobCancelled, Attributes: attrs}
}
