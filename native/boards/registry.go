package boards

import (
	"errors"
	"fmt"
)

// storage abstracts the subset of state manager functionality required by the
// board registry.
type storage interface {
	KVGet(key []byte, out interface{}) (bool, error)
	KVPut(key []byte, value interface{}) error
}

// ErrNilState is returned when no storage backend is wired.
var ErrNilState = errors.New("boards: state not configured")

func boardKey(area, category uint64) []byte {
	return []byte(fmt.Sprintf("boards/%d/%d", area, category))
}

// Registry indexes job ids by (area, category) board so postings are
// discoverable. It is fed at posting time and never consulted by the
// lifecycle engine.
type Registry struct {
	store storage
}

// NewRegistry constructs a registry bound to the provided storage backend.
func NewRegistry(store storage) *Registry {
	return &Registry{store: store}
}

// Add appends a job id to its board. Duplicate adds are ignored.
func (r *Registry) Add(area, category, jobID uint64) error {
	if r == nil || r.store == nil {
		return ErrNilState
	}
	var ids []uint64
	if _, err := r.store.KVGet(boardKey(area, category), &ids); err != nil {
		return err
	}
	for _, id := range ids {
		if id == jobID {
			return nil
		}
	}
	ids = append(ids, jobID)
	return r.store.KVPut(boardKey(area, category), ids)
}

// Jobs lists the job ids posted to a board, in posting order.
func (r *Registry) Jobs(area, category uint64) ([]uint64, error) {
	if r == nil || r.store == nil {
		return nil, ErrNilState
	}
	var ids []uint64
	if _, err := r.store.KVGet(boardKey(area, category), &ids); err != nil {
		return nil, err
	}
	return ids, nil
}
