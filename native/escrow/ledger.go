package escrow

import (
	"fmt"
	"math/big"

	ethcrypto "github.com/ethereum/go-ethereum/crypto"

	"gigchain/core/events"
	"gigchain/core/types"
)

// ledgerState abstracts the subset of state manager functionality required by
// the balance ledger.
type ledgerState interface {
	KVGet(key []byte, out interface{}) (bool, error)
	KVPut(key []byte, value interface{}) error
}

// AssetBackend is the external fungible-asset registry. Deposits and
// withdrawals cross between it and the ledger's internal balances; a failing
// backend call aborts the whole operation.
type AssetBackend interface {
	Transfer(from, to [20]byte, token string, amount *big.Int) error
}

type ledgerEvent struct {
	evt *types.Event
}

func (e ledgerEvent) EventType() string {
	if e.evt == nil {
		return ""
	}
	return e.evt.Type
}

func (e ledgerEvent) Event() *types.Event { return e.evt }

// VaultAddress is the module account the asset backend sees as the
// counterparty of every deposit and withdrawal.
func VaultAddress() [20]byte {
	var addr [20]byte
	copy(addr[:], ethcrypto.Keccak256([]byte("gigchain/escrow/vault"))[:20])
	return addr
}

// Ledger holds per-key, per-token balances and owns fee configuration. It has
// no opinion on when transfers are allowed; that policy lives above it.
type Ledger struct {
	state        ledgerState
	backend      AssetBackend
	emitter      events.Emitter
	tokens       map[string]bool
	fees         map[string]FeeConfig
	feeCollector [20]byte
	vault        [20]byte
}

// NewLedger creates a ledger carrying the supplied token symbols. Additional
// tokens can be registered later.
func NewLedger(symbols ...string) *Ledger {
	l := &Ledger{
		emitter: events.NoopEmitter{},
		tokens:  make(map[string]bool),
		fees:    make(map[string]FeeConfig),
		vault:   VaultAddress(),
	}
	for _, s := range symbols {
		_ = l.RegisterToken(s)
	}
	return l
}

// SetState configures the state backend used for balance persistence.
func (l *Ledger) SetState(state ledgerState) { l.state = state }

// SetAssetBackend configures the external asset registry used by deposits and
// withdrawals.
func (l *Ledger) SetAssetBackend(backend AssetBackend) { l.backend = backend }

// SetEmitter configures the event emitter. Passing nil resets the emitter to
// a no-op implementation.
func (l *Ledger) SetEmitter(emitter events.Emitter) {
	if emitter == nil {
		l.emitter = events.NoopEmitter{}
		return
	}
	l.emitter = emitter
}

func (l *Ledger) emit(evt *types.Event) {
	if l == nil || l.emitter == nil || evt == nil {
		return
	}
	l.emitter.Emit(ledgerEvent{evt: evt})
}

// RegisterToken adds a token symbol to the set the ledger will carry.
func (l *Ledger) RegisterToken(symbol string) error {
	normalized, err := NormalizeToken(symbol)
	if err != nil {
		return err
	}
	l.tokens[normalized] = true
	return nil
}

// SetFee configures the fee percentage, in basis points, charged on transfers
// of the given token. Values at or above 100% are rejected.
func (l *Ledger) SetFee(symbol string, bps uint32) error {
	normalized, err := l.requireToken(symbol)
	if err != nil {
		return err
	}
	if bps >= 10_000 {
		return ErrFeeOutOfRange
	}
	l.fees[normalized] = FeeConfig{Bps: bps}
	return nil
}

// SetFeeCollector configures the single global fee destination. The zero
// address disables fee extraction for every token.
func (l *Ledger) SetFeeCollector(addr [20]byte) { l.feeCollector = addr }

// FeeCollector returns the configured fee destination and whether one is set.
func (l *Ledger) FeeCollector() ([20]byte, bool) {
	return l.feeCollector, l.feeCollector != [20]byte{}
}

func (l *Ledger) requireToken(symbol string) (string, error) {
	normalized, err := NormalizeToken(symbol)
	if err != nil {
		return "", err
	}
	if !l.tokens[normalized] {
		return "", fmt.Errorf("%w: %s", ErrUnknownToken, symbol)
	}
	return normalized, nil
}

func balanceKey(key Key, token string) []byte {
	return []byte(fmt.Sprintf("escrow/balance/%x/%s", key[:], token))
}

// Balance returns the ledger balance for the given key and token. Unknown
// keys read as zero.
func (l *Ledger) Balance(key Key, symbol string) (*big.Int, error) {
	if l == nil || l.state == nil {
		return nil, ErrNilState
	}
	normalized, err := l.requireToken(symbol)
	if err != nil {
		return nil, err
	}
	balance := new(big.Int)
	if _, err := l.state.KVGet(balanceKey(key, normalized), balance); err != nil {
		return nil, err
	}
	return balance, nil
}

func (l *Ledger) putBalance(key Key, token string, balance *big.Int) error {
	return l.state.KVPut(balanceKey(key, token), balance)
}

// Credit adds amount to the balance of key, creating it implicitly.
func (l *Ledger) Credit(key Key, symbol string, amount *big.Int) error {
	if l == nil || l.state == nil {
		return ErrNilState
	}
	normalized, err := l.requireToken(symbol)
	if err != nil {
		return err
	}
	if amount == nil || amount.Sign() <= 0 {
		return ErrInvalidAmount
	}
	balance, err := l.Balance(key, normalized)
	if err != nil {
		return err
	}
	return l.putBalance(key, normalized, new(big.Int).Add(balance, amount))
}

// Debit subtracts amount from the balance of key. Debiting more than the
// available balance is a hard failure, never clamped to zero.
func (l *Ledger) Debit(key Key, symbol string, amount *big.Int) error {
	if l == nil || l.state == nil {
		return ErrNilState
	}
	normalized, err := l.requireToken(symbol)
	if err != nil {
		return err
	}
	if amount == nil || amount.Sign() <= 0 {
		return ErrInvalidAmount
	}
	balance, err := l.Balance(key, normalized)
	if err != nil {
		return err
	}
	if balance.Cmp(amount) < 0 {
		return ErrInsufficientBalance
	}
	return l.putBalance(key, normalized, new(big.Int).Sub(balance, amount))
}

// FeeFor returns the fee charged on a transfer of amount in the given token:
// ceil(amount * bps / 10000), or zero when fees are disabled for the token or
// no collector is configured.
func (l *Ledger) FeeFor(symbol string, amount *big.Int) (*big.Int, error) {
	normalized, err := l.requireToken(symbol)
	if err != nil {
		return nil, err
	}
	cfg, ok := l.fees[normalized]
	if !ok || cfg.Bps == 0 || l.feeCollector == ([20]byte{}) || amount == nil || amount.Sign() <= 0 {
		return big.NewInt(0), nil
	}
	fee := new(big.Int).Mul(amount, new(big.Int).SetUint64(uint64(cfg.Bps)))
	return ceilDiv(fee, big.NewInt(10_000)), nil
}

// Transfer moves amount between two ledger keys. When a fee is configured for
// the token and a collector is set, an additional ceil(amount*bps/10000) moves
// from the source to the collector. Both legs are checked against the source
// balance before anything is applied, so the pair lands atomically or not at
// all.
func (l *Ledger) Transfer(from, to Key, symbol string, amount *big.Int) error {
	if l == nil || l.state == nil {
		return ErrNilState
	}
	normalized, err := l.requireToken(symbol)
	if err != nil {
		return err
	}
	if amount == nil || amount.Sign() <= 0 {
		return ErrInvalidAmount
	}
	fee, err := l.FeeFor(normalized, amount)
	if err != nil {
		return err
	}
	total := new(big.Int).Add(amount, fee)
	balance, err := l.Balance(from, normalized)
	if err != nil {
		return err
	}
	if balance.Cmp(total) < 0 {
		return ErrInsufficientBalance
	}
	if err := l.Debit(from, normalized, total); err != nil {
		return err
	}
	if err := l.Credit(to, normalized, amount); err != nil {
		return err
	}
	if fee.Sign() > 0 {
		if err := l.Credit(AddressKey(l.feeCollector), normalized, fee); err != nil {
			return err
		}
	}
	l.emit(newTransferredEvent(from, to, normalized, amount, fee))
	return nil
}

// Move transfers amount between two ledger keys without fee extraction. Job
// settlements go through Move so locked funds distribute to exact computed
// amounts; the fee-bearing path is Transfer.
func (l *Ledger) Move(from, to Key, symbol string, amount *big.Int) error {
	if l == nil || l.state == nil {
		return ErrNilState
	}
	normalized, err := l.requireToken(symbol)
	if err != nil {
		return err
	}
	if amount == nil || amount.Sign() <= 0 {
		return ErrInvalidAmount
	}
	if err := l.Debit(from, normalized, amount); err != nil {
		return err
	}
	return l.Credit(to, normalized, amount)
}

// Deposit pulls amount of the external asset from the party into its internal
// ledger balance. A failing backend call leaves the ledger untouched.
func (l *Ledger) Deposit(party [20]byte, symbol string, amount *big.Int) error {
	if l == nil || l.state == nil {
		return ErrNilState
	}
	if l.backend == nil {
		return ErrNoAssetBackend
	}
	normalized, err := l.requireToken(symbol)
	if err != nil {
		return err
	}
	if amount == nil || amount.Sign() <= 0 {
		return ErrInvalidAmount
	}
	if err := l.backend.Transfer(party, l.vault, normalized, amount); err != nil {
		return fmt.Errorf("escrow: deposit failed: %w", err)
	}
	if err := l.Credit(AddressKey(party), normalized, amount); err != nil {
		return err
	}
	l.emit(newDepositedEvent(party, normalized, amount))
	return nil
}

// Withdraw pushes amount from the party's internal balance back to the
// external asset. The internal balance is checked before the backend call so
// a backend failure cannot strand a partial debit.
func (l *Ledger) Withdraw(party [20]byte, symbol string, amount *big.Int) error {
	if l == nil || l.state == nil {
		return ErrNilState
	}
	if l.backend == nil {
		return ErrNoAssetBackend
	}
	normalized, err := l.requireToken(symbol)
	if err != nil {
		return err
	}
	if amount == nil || amount.Sign() <= 0 {
		return ErrInvalidAmount
	}
	balance, err := l.Balance(AddressKey(party), normalized)
	if err != nil {
		return err
	}
	if balance.Cmp(amount) < 0 {
		return ErrInsufficientBalance
	}
	if err := l.backend.Transfer(l.vault, party, normalized, amount); err != nil {
		return fmt.Errorf("escrow: withdraw failed: %w", err)
	}
	if err := l.Debit(AddressKey(party), normalized, amount); err != nil {
		return err
	}
	l.emit(newWithdrawnEvent(party, normalized, amount))
	return nil
}

func ceilDiv(n, d *big.Int) *big.Int {
	quo, rem := new(big.Int).QuoRem(n, d, new(big.Int))
	if rem.Sign() > 0 {
		quo.Add(quo, big.NewInt(1))
	}
	return quo
}
