package types

import (
	"math/big"
	"strings"
)

// TokenBalance holds the balance of a single fungible token. Balances are kept
// as a sorted-insertion slice rather than a map so account records stay
// RLP-encodable.
type TokenBalance struct {
	Symbol string
	Amount *big.Int
}

// Account is the external asset-registry view of a party: the funds it holds
// outside of any escrow. The ledger core only touches accounts through
// deposit and withdraw.
type Account struct {
	Nonce    uint64
	Balances []TokenBalance
}

// Balance returns the account's balance for the given token symbol. Unknown
// symbols read as zero.
func (a *Account) Balance(symbol string) *big.Int {
	if a == nil {
		return big.NewInt(0)
	}
	normalized := strings.ToUpper(strings.TrimSpace(symbol))
	for _, tb := range a.Balances {
		if tb.Symbol == normalized {
			if tb.Amount == nil {
				return big.NewInt(0)
			}
			return new(big.Int).Set(tb.Amount)
		}
	}
	return big.NewInt(0)
}

// SetBalance overwrites the account's balance for the given token symbol.
func (a *Account) SetBalance(symbol string, amount *big.Int) {
	if a == nil {
		return
	}
	normalized := strings.ToUpper(strings.TrimSpace(symbol))
	amt := big.NewInt(0)
	if amount != nil {
		amt = new(big.Int).Set(amount)
	}
	for i := range a.Balances {
		if a.Balances[i].Symbol == normalized {
			a.Balances[i].Amount = amt
			return
		}
	}
	a.Balances = append(a.Balances, TokenBalance{Symbol: normalized, Amount: amt})
}

// Clone returns a deep copy of the account.
func (a *Account) Clone() *Account {
	if a == nil {
		return &Account{}
	}
	clone := &Account{Nonce: a.Nonce}
	for _, tb := range a.Balances {
		amt := big.NewInt(0)
		if tb.Amount != nil {
			amt = new(big.Int).Set(tb.Amount)
		}
		clone.Balances = append(clone.Balances, TokenBalance{Symbol: tb.Symbol, Amount: amt})
	}
	return clone
}
