package paygate

import (
	"errors"
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"gigchain/native/escrow"
)

var (
	gateOwner  = fillAddress(0x01)
	engineAddr = fillAddress(0x02)
	strangerA  = fillAddress(0x03)
	adminAddr  = fillAddress(0x04)
)

func fillAddress(fill byte) [20]byte {
	var addr [20]byte
	for i := range addr {
		addr[i] = fill
	}
	return addr
}

type move struct {
	from, to escrow.Key
	amount   *big.Int
}

// recordingLedger captures moves, or rejects every call when failAll is set.
type recordingLedger struct {
	moves   []move
	failAll bool
}

func (l *recordingLedger) Move(from, to escrow.Key, token string, amount *big.Int) error {
	if l.failAll {
		return errors.New("ledger rejected")
	}
	l.moves = append(l.moves, move{from: from, to: to, amount: new(big.Int).Set(amount)})
	return nil
}

type selectorPolicy struct {
	allowed map[string][20]byte
}

func (p selectorPolicy) CanCall(caller, target [20]byte, selector string) bool {
	addr, ok := p.allowed[selector]
	return ok && addr == caller
}

func newTestGate(t *testing.T) (*Gate, *recordingLedger) {
	t.Helper()
	ledger := &recordingLedger{}
	gate := NewGate(gateOwner, ledger)
	require.NoError(t, gate.SetEngine(gateOwner, engineAddr))
	return gate, ledger
}

func opTicket(b byte) [32]byte {
	var id [32]byte
	id[0] = b
	return id
}

func TestGatePassThrough(t *testing.T) {
	gate, ledger := newTestGate(t)
	from := escrow.AddressKey(strangerA)
	to := escrow.JobKey(1)

	require.NoError(t, gate.Lock(engineAddr, opTicket(1), from, to, "GIG", big.NewInt(100)))
	require.Len(t, ledger.moves, 1)
	require.Equal(t, from, ledger.moves[0].from)
	require.Equal(t, to, ledger.moves[0].to)

	err := gate.Lock(strangerA, opTicket(2), from, to, "GIG", big.NewInt(100))
	require.ErrorIs(t, err, ErrUnauthorizedCaller)
	require.Len(t, ledger.moves, 1)
}

func TestGateServiceModeTickets(t *testing.T) {
	gate, ledger := newTestGate(t)
	require.NoError(t, gate.SetServiceMode(gateOwner, true))

	from := escrow.AddressKey(strangerA)
	to := escrow.JobKey(1)
	op := opTicket(7)

	err := gate.Lock(engineAddr, op, from, to, "GIG", big.NewInt(100))
	require.ErrorIs(t, err, ErrNotApproved)
	require.Empty(t, ledger.moves)

	require.NoError(t, gate.Approve(gateOwner, op))
	require.True(t, gate.Approved(op))
	require.NoError(t, gate.Lock(engineAddr, op, from, to, "GIG", big.NewInt(100)))
	require.Len(t, ledger.moves, 1)

	// The ticket is single use.
	require.False(t, gate.Approved(op))
	err = gate.Lock(engineAddr, op, from, to, "GIG", big.NewInt(100))
	require.ErrorIs(t, err, ErrNotApproved)
}

func TestGateTicketConsumedOnFailure(t *testing.T) {
	gate, ledger := newTestGate(t)
	require.NoError(t, gate.SetServiceMode(gateOwner, true))
	ledger.failAll = true

	op := opTicket(9)
	require.NoError(t, gate.Approve(gateOwner, op))
	err := gate.Lock(engineAddr, op, escrow.JobKey(1), escrow.JobKey(2), "GIG", big.NewInt(1))
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrNotApproved)
	// Consumed even though the movement failed.
	require.False(t, gate.Approved(op))
}

func TestGateSettleLegs(t *testing.T) {
	gate, ledger := newTestGate(t)
	from := escrow.JobKey(3)
	worker := escrow.AddressKey(strangerA)
	client := escrow.AddressKey(adminAddr)

	legs := []Leg{
		{To: worker, Amount: big.NewInt(700)},
		{To: client, Amount: big.NewInt(0)},
		{To: client, Amount: big.NewInt(300)},
	}
	require.NoError(t, gate.Settle(engineAddr, opTicket(3), from, "GIG", legs))
	// The zero leg is skipped.
	require.Len(t, ledger.moves, 2)
	require.Equal(t, worker, ledger.moves[0].to)
	require.Equal(t, big.NewInt(700), ledger.moves[0].amount)
	require.Equal(t, client, ledger.moves[1].to)
	require.Equal(t, big.NewInt(300), ledger.moves[1].amount)

	require.ErrorIs(t, gate.Settle(strangerA, opTicket(4), from, "GIG", legs), ErrUnauthorizedCaller)
}

func TestGateReleaseDelegatesToSettle(t *testing.T) {
	gate, ledger := newTestGate(t)
	to := escrow.AddressKey(strangerA)
	require.NoError(t, gate.Release(engineAddr, opTicket(5), escrow.JobKey(4), to, "GIG", big.NewInt(42)))
	require.Len(t, ledger.moves, 1)
	require.Equal(t, to, ledger.moves[0].to)
}

func TestGateAdminAuthorization(t *testing.T) {
	gate, _ := newTestGate(t)

	require.ErrorIs(t, gate.SetServiceMode(strangerA, true), ErrUnauthorizedCaller)
	require.ErrorIs(t, gate.SetEngine(strangerA, strangerA), ErrUnauthorizedCaller)
	require.ErrorIs(t, gate.Approve(strangerA, opTicket(1)), ErrUnauthorizedCaller)

	gate.SetAccessPolicy(selectorPolicy{allowed: map[string][20]byte{
		"approve":        adminAddr,
		"setServiceMode": adminAddr,
	}})
	require.NoError(t, gate.SetServiceMode(adminAddr, true))
	require.NoError(t, gate.Approve(adminAddr, opTicket(1)))
	// The policy grants per selector, not blanket admin.
	require.ErrorIs(t, gate.SetEngine(adminAddr, strangerA), ErrUnauthorizedCaller)

	// Ownership transfer hands over the admin rights.
	require.NoError(t, gate.SetOwner(gateOwner, adminAddr))
	require.ErrorIs(t, gate.SetOwner(gateOwner, gateOwner), ErrUnauthorizedCaller)
	require.NoError(t, gate.SetEngine(adminAddr, engineAddr))
}
