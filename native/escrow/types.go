package escrow

import (
	"encoding/binary"
	"errors"
	"fmt"
	"strings"

	ethcrypto "github.com/ethereum/go-ethereum/crypto"
)

var (
	// ErrUnknownToken marks operations denominated in a token the ledger has
	// not been configured to carry.
	ErrUnknownToken = errors.New("escrow: unknown token")
	// ErrInvalidAmount marks zero or negative amounts where a positive value
	// is required.
	ErrInvalidAmount = errors.New("escrow: amount must be positive")
	// ErrInsufficientBalance marks debits exceeding the available balance.
	ErrInsufficientBalance = errors.New("escrow: insufficient balance")
	// ErrNilState is returned when the ledger has no storage backend wired.
	ErrNilState = errors.New("escrow: state not configured")
	// ErrNoAssetBackend is returned by deposit/withdraw when no external
	// asset backend is configured.
	ErrNoAssetBackend = errors.New("escrow: asset backend not configured")
	// ErrFeeOutOfRange marks fee configuration at or above 100%.
	ErrFeeOutOfRange = errors.New("escrow: fee bps out of range")
)

// Key identifies a ledger account. Real parties and per-job virtual accounts
// share the balance namespace but derive their keys under distinct tags, so
// an address can never collide with a job id.
type Key [32]byte

// AddressKey derives the ledger key for a real party address.
func AddressKey(addr [20]byte) Key {
	return Key(ethcrypto.Keccak256Hash([]byte("escrow/addr"), addr[:]))
}

// JobKey derives the ledger key for a job's virtual escrow account.
func JobKey(jobID uint64) Key {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], jobID)
	return Key(ethcrypto.Keccak256Hash([]byte("escrow/job"), buf[:]))
}

// FeeConfig captures the per-token fee policy. Zero Bps disables fee
// extraction for the token regardless of the collector address.
type FeeConfig struct {
	Bps uint32
}

// NormalizeToken canonicalises a token symbol to its upper-case trimmed form.
// Registration, configuration and balance lookups all go through this.
func NormalizeToken(symbol string) (string, error) {
	trimmed := strings.ToUpper(strings.TrimSpace(symbol))
	if trimmed == "" {
		return "", fmt.Errorf("%w: empty symbol", ErrUnknownToken)
	}
	return trimmed, nil
}
