package reputation

import (
	"errors"
	"fmt"
	"time"
)

// storage abstracts the subset of state manager functionality required by the
// skills ledger.
type storage interface {
	KVGet(key []byte, out interface{}) (bool, error)
	KVPut(key []byte, value interface{}) error
}

var skillProfilePrefix = []byte("reputation/skills/")

func skillProfileKey(worker [20]byte) []byte {
	return []byte(fmt.Sprintf("%s%x", skillProfilePrefix, worker))
}

var (
	// ErrNilState is returned when no storage backend is wired.
	ErrNilState = errors.New("reputation: state not configured")
	// ErrEmptyGrant marks grants carrying no bits at all.
	ErrEmptyGrant = errors.New("reputation: grant must set at least one bit")
)

// SkillProfile is the attested capability bitmasks of a worker: which board
// areas, categories and skills it has been vouched for.
type SkillProfile struct {
	Worker     [20]byte
	Areas      uint64
	Categories uint64
	Skills     uint64
	UpdatedAt  uint64
}

// Ledger persists worker skill profiles and answers the lifecycle engine's
// skill checks.
type Ledger struct {
	store storage
	nowFn func() int64
}

// NewLedger constructs a ledger bound to the provided storage backend.
func NewLedger(store storage) *Ledger {
	return &Ledger{
		store: store,
		nowFn: func() int64 { return time.Now().Unix() },
	}
}

// SetNowFunc overrides the wall clock used for profile timestamps.
func (l *Ledger) SetNowFunc(now func() int64) {
	if l == nil {
		return
	}
	if now == nil {
		l.nowFn = func() int64 { return time.Now().Unix() }
		return
	}
	l.nowFn = now
}

func (l *Ledger) load(worker [20]byte) (*SkillProfile, error) {
	if l == nil || l.store == nil {
		return nil, ErrNilState
	}
	profile := &SkillProfile{Worker: worker}
	if _, err := l.store.KVGet(skillProfileKey(worker), profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// Grant merges the supplied bits into the worker's profile.
func (l *Ledger) Grant(worker [20]byte, areas, categories, skills uint64) (*SkillProfile, error) {
	if areas == 0 && categories == 0 && skills == 0 {
		return nil, ErrEmptyGrant
	}
	profile, err := l.load(worker)
	if err != nil {
		return nil, err
	}
	profile.Areas |= areas
	profile.Categories |= categories
	profile.Skills |= skills
	profile.UpdatedAt = uint64(l.nowFn())
	if err := l.store.KVPut(skillProfileKey(worker), profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// Revoke clears the supplied bits from the worker's profile.
func (l *Ledger) Revoke(worker [20]byte, areas, categories, skills uint64) (*SkillProfile, error) {
	profile, err := l.load(worker)
	if err != nil {
		return nil, err
	}
	profile.Areas &^= areas
	profile.Categories &^= categories
	profile.Skills &^= skills
	profile.UpdatedAt = uint64(l.nowFn())
	if err := l.store.KVPut(skillProfileKey(worker), profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// Profile returns the worker's current profile. Workers never granted
// anything read as all-zero.
func (l *Ledger) Profile(worker [20]byte) (*SkillProfile, error) {
	return l.load(worker)
}

// HasSkills reports whether the worker's attested bitmasks cover every
// requested bit. It satisfies the lifecycle engine's SkillsVerifier.
func (l *Ledger) HasSkills(worker [20]byte, area, category, skills uint64) (bool, error) {
	profile, err := l.load(worker)
	if err != nil {
		return false, err
	}
	return profile.Areas&area == area &&
		profile.Categories&category == category &&
		profile.Skills&skills == skills, nil
}
