package bank

import (
	"errors"
	"math/big"
	"testing"

	"gigchain/state"
	"gigchain/storage"
)

func addr(fill byte) [20]byte {
	var a [20]byte
	for i := range a {
		a[i] = fill
	}
	return a
}

func newTestBackend() *Backend {
	return NewBackend(state.NewManager(storage.NewMemDB()))
}

func mustBalance(t *testing.T, b *Backend, a [20]byte, token string) *big.Int {
	t.Helper()
	balance, err := b.BalanceOf(a, token)
	if err != nil {
		t.Fatalf("balance of %x: %v", a, err)
	}
	return balance
}

func TestMintAndTransfer(t *testing.T) {
	backend := newTestBackend()
	alice, bob := addr(0x01), addr(0x02)

	if err := backend.Mint(alice, "GIG", big.NewInt(1000)); err != nil {
		t.Fatalf("mint: %v", err)
	}
	if err := backend.Mint(alice, "GIG", big.NewInt(500)); err != nil {
		t.Fatalf("second mint: %v", err)
	}
	if got := mustBalance(t, backend, alice, "GIG"); got.Cmp(big.NewInt(1500)) != 0 {
		t.Fatalf("minted = %s, want 1500", got)
	}

	if err := backend.Transfer(alice, bob, "GIG", big.NewInt(600)); err != nil {
		t.Fatalf("transfer: %v", err)
	}
	if got := mustBalance(t, backend, alice, "GIG"); got.Cmp(big.NewInt(900)) != 0 {
		t.Fatalf("sender = %s, want 900", got)
	}
	if got := mustBalance(t, backend, bob, "GIG"); got.Cmp(big.NewInt(600)) != 0 {
		t.Fatalf("recipient = %s, want 600", got)
	}
}

func TestTransferInsufficient(t *testing.T) {
	backend := newTestBackend()
	alice, bob := addr(0x01), addr(0x02)
	if err := backend.Mint(alice, "GIG", big.NewInt(100)); err != nil {
		t.Fatalf("mint: %v", err)
	}
	if err := backend.Transfer(alice, bob, "GIG", big.NewInt(101)); !errors.Is(err, ErrInsufficientFunds) {
		t.Fatalf("transfer err = %v", err)
	}
	if got := mustBalance(t, backend, alice, "GIG"); got.Cmp(big.NewInt(100)) != 0 {
		t.Fatalf("sender changed on failed transfer: %s", got)
	}
	if got := mustBalance(t, backend, bob, "GIG"); got.Sign() != 0 {
		t.Fatalf("recipient changed on failed transfer: %s", got)
	}
}

func TestSelfTransferIsNoop(t *testing.T) {
	backend := newTestBackend()
	alice := addr(0x01)
	if err := backend.Mint(alice, "GIG", big.NewInt(100)); err != nil {
		t.Fatalf("mint: %v", err)
	}
	if err := backend.Transfer(alice, alice, "GIG", big.NewInt(40)); err != nil {
		t.Fatalf("self transfer: %v", err)
	}
	if got := mustBalance(t, backend, alice, "GIG"); got.Cmp(big.NewInt(100)) != 0 {
		t.Fatalf("self transfer changed balance: %s", got)
	}
}

func TestInvalidAmounts(t *testing.T) {
	backend := newTestBackend()
	alice, bob := addr(0x01), addr(0x02)
	if err := backend.Mint(alice, "GIG", big.NewInt(0)); !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("zero mint err = %v", err)
	}
	if err := backend.Transfer(alice, bob, "GIG", nil); !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("nil transfer err = %v", err)
	}
	if err := backend.Transfer(alice, bob, "GIG", big.NewInt(-1)); !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("negative transfer err = %v", err)
	}
}

func TestTokensAreIndependent(t *testing.T) {
	backend := newTestBackend()
	alice := addr(0x01)
	if err := backend.Mint(alice, "GIG", big.NewInt(10)); err != nil {
		t.Fatalf("mint: %v", err)
	}
	if err := backend.Mint(alice, "AUX", big.NewInt(20)); err != nil {
		t.Fatalf("mint aux: %v", err)
	}
	if got := mustBalance(t, backend, alice, "GIG"); got.Cmp(big.NewInt(10)) != 0 {
		t.Fatalf("gig = %s, want 10", got)
	}
	if got := mustBalance(t, backend, alice, "AUX"); got.Cmp(big.NewInt(20)) != 0 {
		t.Fatalf("aux = %s, want 20", got)
	}
}
