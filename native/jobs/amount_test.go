package jobs

import (
	"errors"
	"math"
	"math/big"
	"testing"
)

func TestLockAmount(t *testing.T) {
	cases := []struct {
		name    string
		rate    int64
		onTop   int64
		minutes uint64
		want    int64
	}{
		{"canonical terms", 1000, 500, 180, 264550},
		{"no bonus", 1000, 0, 180, 264000},
		{"zero estimate still covers the slack hour", 1000, 0, 0, 66000},
		{"rounds the ten-percent margin up", 3, 1, 0, 200}, // 181*11 = 1991 -> ceil 200
		{"indivisible margin", 1, 0, 31, 101}, // 91*11 = 1001 -> ceil 101
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := lockAmount(big.NewInt(tc.rate), big.NewInt(tc.onTop), tc.minutes, slackMinutes)
			if err != nil {
				t.Fatalf("lockAmount: %v", err)
			}
			if got.Cmp(big.NewInt(tc.want)) != 0 {
				t.Fatalf("lock = %s, want %d", got, tc.want)
			}
		})
	}
}

func TestLockAmountMonotonic(t *testing.T) {
	rate := big.NewInt(1000)
	onTop := big.NewInt(500)
	prev := big.NewInt(-1)
	for _, minutes := range []uint64{0, 1, 59, 60, 61, 180, 1440, 10080} {
		lock, err := lockAmount(rate, onTop, minutes, slackMinutes)
		if err != nil {
			t.Fatalf("lockAmount(%d): %v", minutes, err)
		}
		if lock.Cmp(prev) <= 0 {
			t.Fatalf("lock not increasing at %d minutes: %s <= %s", minutes, lock, prev)
		}
		prev = lock
	}
}

func TestLockAmountOverflow(t *testing.T) {
	if _, err := lockAmount(big.NewInt(1), nil, math.MaxUint64, slackMinutes); !errors.Is(err, ErrInvalidEstimate) {
		t.Fatalf("minutes+slack overflow err = %v", err)
	}
	huge := new(big.Int).Lsh(big.NewInt(1), 250)
	if _, err := lockAmount(huge, nil, math.MaxUint32, slackMinutes); !errors.Is(err, ErrInvalidEstimate) {
		t.Fatalf("product overflow err = %v", err)
	}
	beyond := new(big.Int).Lsh(big.NewInt(1), 256)
	if _, err := lockAmount(beyond, nil, 1, 0); !errors.Is(err, ErrInvalidEstimate) {
		t.Fatalf("oversized rate err = %v", err)
	}
	if _, err := lockAmount(big.NewInt(-1), nil, 1, 0); !errors.Is(err, ErrInvalidEstimate) {
		t.Fatalf("negative rate err = %v", err)
	}
}

func TestTimePayout(t *testing.T) {
	cases := []struct {
		name     string
		active   uint64
		estimate uint64
		want     int64
	}{
		{"below the billing floor", 10, 180, 1000*60 + 500},
		{"exactly one hour", 60, 180, 1000*60 + 500},
		{"within estimate", 183, 180, 1000*183 + 500},
		{"at the payable cap", 240, 180, 1000*240 + 500},
		{"beyond the payable cap", 1000, 180, 1000*240 + 500},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := timePayout(big.NewInt(1000), big.NewInt(500), tc.active, tc.estimate)
			if err != nil {
				t.Fatalf("timePayout: %v", err)
			}
			if got.Cmp(big.NewInt(tc.want)) != 0 {
				t.Fatalf("payout = %s, want %d", got, tc.want)
			}
		})
	}
}

func TestTimePayoutNeverExceedsLock(t *testing.T) {
	rate := big.NewInt(777)
	onTop := big.NewInt(123)
	for _, estimate := range []uint64{0, 1, 60, 180, 5000} {
		lock, err := lockAmount(rate, onTop, estimate, slackMinutes)
		if err != nil {
			t.Fatalf("lockAmount(%d): %v", estimate, err)
		}
		// The cap is the worst case, so even absurd active time stays payable.
		pay, err := timePayout(rate, onTop, math.MaxUint32, estimate)
		if err != nil {
			t.Fatalf("timePayout(%d): %v", estimate, err)
		}
		if pay.Cmp(lock) > 0 {
			t.Fatalf("estimate %d: payout %s exceeds lock %s", estimate, pay, lock)
		}
	}
}

func TestActiveMinutes(t *testing.T) {
	base := uint64(1_700_000_000)
	t.Run("never started", func(t *testing.T) {
		if got := activeMinutes(&TimeTerms{}, base); got != 0 {
			t.Fatalf("active = %d, want 0", got)
		}
	})
	t.Run("floors partial minutes", func(t *testing.T) {
		terms := &TimeTerms{StartedAt: base}
		if got := activeMinutes(terms, base+119); got != 1 {
			t.Fatalf("active = %d, want 1", got)
		}
	})
	t.Run("excludes accumulated pauses", func(t *testing.T) {
		terms := &TimeTerms{StartedAt: base, PausedSeconds: 600}
		if got := activeMinutes(terms, base+1800); got != 20 {
			t.Fatalf("active = %d, want 20", got)
		}
	})
	t.Run("counts an open pause up to now", func(t *testing.T) {
		terms := &TimeTerms{StartedAt: base, Paused: true, PausedAt: base + 600}
		if got := activeMinutes(terms, base+1800); got != 10 {
			t.Fatalf("active = %d, want 10", got)
		}
	})
	t.Run("pause covering the whole span reads zero", func(t *testing.T) {
		terms := &TimeTerms{StartedAt: base, Paused: true, PausedAt: base}
		if got := activeMinutes(terms, base+1800); got != 0 {
			t.Fatalf("active = %d, want 0", got)
		}
	})
}
