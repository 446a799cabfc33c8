package paygate

import (
	"errors"
	"math/big"

	"gigchain/native/escrow"
)

var (
	// ErrUnauthorizedCaller marks lock/release attempts from any address
	// other than the registered engine, and privileged setter calls the
	// access policy rejects.
	ErrUnauthorizedCaller = errors.New("paygate: unauthorized caller")
	// ErrNotApproved is the soft skip signal returned in service mode when
	// no approval ticket exists for the operation. Callers observe it and
	// propagate; nothing is reverted.
	ErrNotApproved = errors.New("paygate: operation not approved")
	// ErrNilLedger is returned when the gate has no ledger wired.
	ErrNilLedger = errors.New("paygate: ledger not configured")
)

// AccessPolicy answers whether a caller may invoke a privileged selector on a
// target module. Policy evaluation itself is an external concern.
type AccessPolicy interface {
	CanCall(caller, target [20]byte, selector string) bool
}

// mover abstracts the fee-free balance movement the gate drives.
type mover interface {
	Move(from, to escrow.Key, token string, amount *big.Int) error
}

// Gate sits between the job lifecycle engine and the escrow ledger. In
// pass-through mode every movement from the registered engine goes straight
// down; in service mode each operation additionally requires a one-shot
// approval ticket keyed by operation id.
type Gate struct {
	ledger      mover
	policy      AccessPolicy
	self        [20]byte
	owner       [20]byte
	engine      [20]byte
	serviceMode bool
	approvals   map[[32]byte]bool
}

// NewGate constructs a gate owned by the supplied address, in pass-through
// mode with no engine registered.
func NewGate(owner [20]byte, ledger mover) *Gate {
	return &Gate{
		ledger:    ledger,
		owner:     owner,
		approvals: make(map[[32]byte]bool),
	}
}

// SetAccessPolicy wires the external access-policy checker consulted by the
// privileged setters. Without a policy only the owner may reconfigure.
func (g *Gate) SetAccessPolicy(policy AccessPolicy) { g.policy = policy }

// SetSelfAddress records the gate's own module address, used as the policy
// target when consulting the access checker.
func (g *Gate) SetSelfAddress(addr [20]byte) { g.self = addr }

func (g *Gate) authorizeAdmin(caller [20]byte, selector string) error {
	if caller == g.owner {
		return nil
	}
	if g.policy != nil && g.policy.CanCall(caller, g.self, selector) {
		return nil
	}
	return ErrUnauthorizedCaller
}

// SetOwner transfers gate ownership.
func (g *Gate) SetOwner(caller, owner [20]byte) error {
	if err := g.authorizeAdmin(caller, "setOwner"); err != nil {
		return err
	}
	g.owner = owner
	return nil
}

// SetEngine registers the single address allowed to drive lock and release.
func (g *Gate) SetEngine(caller, engine [20]byte) error {
	if err := g.authorizeAdmin(caller, "setEngine"); err != nil {
		return err
	}
	g.engine = engine
	return nil
}

// SetServiceMode toggles service mode.
func (g *Gate) SetServiceMode(caller [20]byte, on bool) error {
	if err := g.authorizeAdmin(caller, "setServiceMode"); err != nil {
		return err
	}
	g.serviceMode = on
	return nil
}

// ServiceMode reports whether service mode is active.
func (g *Gate) ServiceMode() bool { return g.serviceMode }

// Approve records a single-use ticket for the given operation id. Tickets are
// consumed by the next matching lock or release, whether or not the movement
// itself succeeds.
func (g *Gate) Approve(caller [20]byte, opID [32]byte) error {
	if err := g.authorizeAdmin(caller, "approve"); err != nil {
		return err
	}
	g.approvals[opID] = true
	return nil
}

// Approved reports whether a ticket currently exists for the operation id.
func (g *Gate) Approved(opID [32]byte) bool { return g.approvals[opID] }

func (g *Gate) admit(caller [20]byte, opID [32]byte) error {
	if g.engine == ([20]byte{}) || caller != g.engine {
		return ErrUnauthorizedCaller
	}
	if !g.serviceMode {
		return nil
	}
	if !g.approvals[opID] {
		return ErrNotApproved
	}
	// Consumed up front: a failing downstream movement does not restore it.
	delete(g.approvals, opID)
	return nil
}

// Lock escrows funds for an operation by moving them from the payer's ledger
// key to the operation's virtual account.
func (g *Gate) Lock(caller [20]byte, opID [32]byte, from, to escrow.Key, token string, amount *big.Int) error {
	if g == nil || g.ledger == nil {
		return ErrNilLedger
	}
	if err := g.admit(caller, opID); err != nil {
		return err
	}
	return g.ledger.Move(from, to, token, amount)
}

// Release pays escrowed funds out of an operation's virtual account.
func (g *Gate) Release(caller [20]byte, opID [32]byte, from, to escrow.Key, token string, amount *big.Int) error {
	return g.Settle(caller, opID, from, token, []Leg{{To: to, Amount: amount}})
}

// Leg is one recipient of a settlement.
type Leg struct {
	To     escrow.Key
	Amount *big.Int
}

// Settle distributes funds from a single source key to several recipients
// under one approval ticket. Zero-amount legs are skipped. The caller is
// responsible for ensuring the legs sum to at most the source balance; within
// that contract the distribution applies in full.
func (g *Gate) Settle(caller [20]byte, opID [32]byte, from escrow.Key, token string, legs []Leg) error {
	if g == nil || g.ledger == nil {
		return ErrNilLedger
	}
	if err := g.admit(caller, opID); err != nil {
		return err
	}
	for _, leg := range legs {
		if leg.Amount == nil || leg.Amount.Sign() == 0 {
			continue
		}
		if err := g.ledger.Move(from, leg.To, token, leg.Amount); err != nil {
			return err
		}
	}
	return nil
}
