package jobs

import (
	"math"
	"math/big"

	"github.com/holiman/uint256"
)

// slackMinutes is the one hour of payable time granted beyond the estimate,
// and also the minimum billed duration.
const slackMinutes = 60

func toUint256(v *big.Int) (*uint256.Int, bool) {
	if v == nil {
		return uint256.NewInt(0), true
	}
	if v.Sign() < 0 {
		return nil, false
	}
	u, overflow := uint256.FromBig(v)
	if overflow {
		return nil, false
	}
	return u, true
}

// lockAmount computes the escrow lock for rate-per-minute terms:
//
//	ceil(((rate*(minutes+slack) + onTop) * 11) / 10)
//
// a 10% margin over the worst-case payable amount. Any overflow of the
// 256-bit domain fails with ErrInvalidEstimate instead of wrapping.
func lockAmount(rate, onTop *big.Int, minutes, slack uint64) (*big.Int, error) {
	if minutes > math.MaxUint64-slack {
		return nil, ErrInvalidEstimate
	}
	total := minutes + slack
	r, ok := toUint256(rate)
	if !ok {
		return nil, ErrInvalidEstimate
	}
	bonus, ok := toUint256(onTop)
	if !ok {
		return nil, ErrInvalidEstimate
	}
	payable, overflow := new(uint256.Int).MulOverflow(r, uint256.NewInt(total))
	if overflow {
		return nil, ErrInvalidEstimate
	}
	payable, overflow = payable.AddOverflow(payable, bonus)
	if overflow {
		return nil, ErrInvalidEstimate
	}
	scaled, overflow := new(uint256.Int).MulOverflow(payable, uint256.NewInt(11))
	if overflow {
		return nil, ErrInvalidEstimate
	}
	ten := uint256.NewInt(10)
	lock := new(uint256.Int).Div(scaled, ten)
	if !new(uint256.Int).Mod(scaled, ten).IsZero() {
		var carry bool
		lock, carry = lock.AddOverflow(lock, uint256.NewInt(1))
		if carry {
			return nil, ErrInvalidEstimate
		}
	}
	return lock.ToBig(), nil
}

// timePayout computes the released payment for a time-and-materials job:
// rate times the active minutes clamped to [60, estimate+60], plus the on-top
// bonus.
func timePayout(rate, onTop *big.Int, activeMinutes, estimate uint64) (*big.Int, error) {
	effective := activeMinutes
	if effective < slackMinutes {
		effective = slackMinutes
	}
	if estimate <= math.MaxUint64-slackMinutes {
		if limit := estimate + slackMinutes; effective > limit {
			effective = limit
		}
	}
	r, ok := toUint256(rate)
	if !ok {
		return nil, ErrInvalidEstimate
	}
	bonus, ok := toUint256(onTop)
	if !ok {
		return nil, ErrInvalidEstimate
	}
	pay, overflow := new(uint256.Int).MulOverflow(r, uint256.NewInt(effective))
	if overflow {
		return nil, ErrInvalidEstimate
	}
	pay, overflow = pay.AddOverflow(pay, bonus)
	if overflow {
		return nil, ErrInvalidEstimate
	}
	return pay.ToBig(), nil
}
