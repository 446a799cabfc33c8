package bank

import (
	"errors"
	"math/big"

	"gigchain/core/types"
)

var (
	// ErrInsufficientFunds marks transfers exceeding the sender's balance.
	ErrInsufficientFunds = errors.New("bank: insufficient funds")
	// ErrInvalidAmount marks zero or negative transfer amounts.
	ErrInvalidAmount = errors.New("bank: amount must be positive")
	// ErrNilState is returned when no account store is wired.
	ErrNilState = errors.New("bank: state not configured")
)

// accountState abstracts the account storage consumed by the backend.
type accountState interface {
	GetAccount(addr []byte) (*types.Account, error)
	PutAccount(addr []byte, account *types.Account) error
}

// Backend is the account-backed external asset registry. It satisfies
// escrow.AssetBackend and is what the CLI and tests wire as the "real" token
// side of deposits and withdrawals.
type Backend struct {
	state accountState
}

// NewBackend constructs a backend over the supplied account store.
func NewBackend(state accountState) *Backend {
	return &Backend{state: state}
}

// Transfer moves amount of token from one account to another. The sender's
// balance is checked before either account is written.
func (b *Backend) Transfer(from, to [20]byte, token string, amount *big.Int) error {
	if b == nil || b.state == nil {
		return ErrNilState
	}
	if amount == nil || amount.Sign() <= 0 {
		return ErrInvalidAmount
	}
	if from == to {
		return nil
	}
	fromAcc, err := b.state.GetAccount(from[:])
	if err != nil {
		return err
	}
	toAcc, err := b.state.GetAccount(to[:])
	if err != nil {
		return err
	}
	fromBal := fromAcc.Balance(token)
	if fromBal.Cmp(amount) < 0 {
		return ErrInsufficientFunds
	}
	fromAcc.SetBalance(token, new(big.Int).Sub(fromBal, amount))
	toAcc.SetBalance(token, new(big.Int).Add(toAcc.Balance(token), amount))
	if err := b.state.PutAccount(from[:], fromAcc); err != nil {
		return err
	}
	return b.state.PutAccount(to[:], toAcc)
}

// Mint credits freshly issued token to an account. Used by genesis wiring and
// tests to seed balances.
func (b *Backend) Mint(addr [20]byte, token string, amount *big.Int) error {
	if b == nil || b.state == nil {
		return ErrNilState
	}
	if amount == nil || amount.Sign() <= 0 {
		return ErrInvalidAmount
	}
	acc, err := b.state.GetAccount(addr[:])
	if err != nil {
		return err
	}
	acc.SetBalance(token, new(big.Int).Add(acc.Balance(token), amount))
	return b.state.PutAccount(addr[:], acc)
}

// BalanceOf reports the external balance held by addr.
func (b *Backend) BalanceOf(addr [20]byte, token string) (*big.Int, error) {
	if b == nil || b.state == nil {
		return nil, ErrNilState
	}
	acc, err := b.state.GetAccount(addr[:])
	if err != nil {
		return nil, err
	}
	return acc.Balance(token), nil
}
