package jobs

import (
	"fmt"
	"math/big"
)

// engineState abstracts the subset of state manager functionality required by
// the lifecycle engine.
type engineState interface {
	KVGet(key []byte, out interface{}) (bool, error)
	KVPut(key []byte, value interface{}) error
}

var jobSequenceKey = []byte("jobs/seq")

func jobStorageKey(id uint64) []byte {
	return []byte(fmt.Sprintf("jobs/job/%d", id))
}

func offerStorageKey(jobID uint64, worker [20]byte) []byte {
	return []byte(fmt.Sprintf("jobs/offer/%d/%x", jobID, worker))
}

func (e *Engine) nextJobID() (uint64, error) {
	var seq uint64
	if _, err := e.state.KVGet(jobSequenceKey, &seq); err != nil {
		return 0, err
	}
	seq++
	if err := e.state.KVPut(jobSequenceKey, seq); err != nil {
		return 0, err
	}
	return seq, nil
}

func (e *Engine) loadJob(id uint64) (*Job, error) {
	if e == nil || e.state == nil {
		return nil, ErrNilState
	}
	job := new(Job)
	ok, err := e.state.KVGet(jobStorageKey(id), job)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrJobNotFound
	}
	return job, nil
}

func (e *Engine) storeJob(job *Job) error {
	if e == nil || e.state == nil {
		return ErrNilState
	}
	if job.DefaultPay == nil {
		job.DefaultPay = big.NewInt(0)
	}
	return e.state.KVPut(jobStorageKey(job.ID), job)
}

func (e *Engine) loadOffer(jobID uint64, worker [20]byte) (*Offer, error) {
	if e == nil || e.state == nil {
		return nil, ErrNilState
	}
	offer := new(Offer)
	ok, err := e.state.KVGet(offerStorageKey(jobID, worker), offer)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrWorkerRateNotSet
	}
	return offer, nil
}

func (e *Engine) storeOffer(offer *Offer) error {
	if e == nil || e.state == nil {
		return ErrNilState
	}
	if offer.Rate == nil {
		offer.Rate = big.NewInt(0)
	}
	if offer.OnTop == nil {
		offer.OnTop = big.NewInt(0)
	}
	if offer.Price == nil {
		offer.Price = big.NewInt(0)
	}
	return e.state.KVPut(offerStorageKey(offer.JobID, offer.Worker), offer)
}
