package escrow

import (
	"encoding/hex"
	"math/big"

	"gigchain/core/types"
)

const (
	EventTypeDeposited   = "escrow.deposited"
	EventTypeWithdrawn   = "escrow.withdrawn"
	EventTypeTransferred = "escrow.transferred"
)

func newDepositedEvent(party [20]byte, token string, amount *big.Int) *types.Event {
	return &types.Event{Type: EventTypeDeposited, Attributes: map[string]string{
		"party":  hex.EncodeToString(party[:]),
		"token":  token,
		"amount": amount.String(),
	}}
}

func newWithdrawnEvent(party [20]byte, token string, amount *big.Int) *types.Event {
	return &types.Event{Type: EventTypeWithdrawn, Attributes: map[string]string{
		"party":  hex.EncodeToString(party[:]),
		"token":  token,
		"amount": amount.String(),
	}}
}

func newTransferredEvent(from, to Key, token string, amount, fee *big.Int) *types.Event {
	return &types.Event{Type: EventTypeTransferred, Attributes: map[string]string{
		"from":   hex.EncodeToString(from[:]),
		"to":     hex.EncodeToString(to[:]),
		"token":  token,
		"amount": amount.String(),
		"fee":    fee.String(),
	}}
}
