package reputation

import (
	"errors"
	"testing"

	"gigchain/state"
	gigstorage "gigchain/storage"
)

func testWorker(fill byte) [20]byte {
	var a [20]byte
	for i := range a {
		a[i] = fill
	}
	return a
}

func newTestLedger() *Ledger {
	ledger := NewLedger(state.NewManager(gigstorage.NewMemDB()))
	ledger.SetNowFunc(func() int64 { return 1_700_000_000 })
	return ledger
}

func TestGrantRevoke(t *testing.T) {
	ledger := newTestLedger()
	worker := testWorker(0x01)

	profile, err := ledger.Grant(worker, 0b0011, 0b0100, 0b1000)
	if err != nil {
		t.Fatalf("grant: %v", err)
	}
	if profile.Areas != 0b0011 || profile.Categories != 0b0100 || profile.Skills != 0b1000 {
		t.Fatalf("granted profile = %+v", profile)
	}
	if profile.UpdatedAt != 1_700_000_000 {
		t.Fatalf("updated at = %d", profile.UpdatedAt)
	}

	// Grants accumulate.
	profile, err = ledger.Grant(worker, 0b0100, 0, 0b0001)
	if err != nil {
		t.Fatalf("second grant: %v", err)
	}
	if profile.Areas != 0b0111 || profile.Skills != 0b1001 {
		t.Fatalf("accumulated profile = %+v", profile)
	}

	profile, err = ledger.Revoke(worker, 0b0001, 0, 0)
	if err != nil {
		t.Fatalf("revoke: %v", err)
	}
	if profile.Areas != 0b0110 {
		t.Fatalf("revoked areas = %b", profile.Areas)
	}

	if _, err := ledger.Grant(worker, 0, 0, 0); !errors.Is(err, ErrEmptyGrant) {
		t.Fatalf("empty grant err = %v", err)
	}
}

func TestProfilePersists(t *testing.T) {
	manager := state.NewManager(gigstorage.NewMemDB())
	worker := testWorker(0x02)

	first := NewLedger(manager)
	if _, err := first.Grant(worker, 1, 2, 4); err != nil {
		t.Fatalf("grant: %v", err)
	}

	second := NewLedger(manager)
	profile, err := second.Profile(worker)
	if err != nil {
		t.Fatalf("profile: %v", err)
	}
	if profile.Areas != 1 || profile.Categories != 2 || profile.Skills != 4 {
		t.Fatalf("reloaded profile = %+v", profile)
	}
}

func TestHasSkills(t *testing.T) {
	ledger := newTestLedger()
	worker := testWorker(0x03)
	if _, err := ledger.Grant(worker, 0b0011, 0b0011, 0b0111); err != nil {
		t.Fatalf("grant: %v", err)
	}

	cases := []struct {
		name                   string
		area, category, skills uint64
		want                   bool
	}{
		{"exact match", 0b0011, 0b0011, 0b0111, true},
		{"subset", 0b0001, 0b0010, 0b0101, true},
		{"missing area bit", 0b0100, 0b0001, 0b0001, false},
		{"missing skill bit", 0b0001, 0b0001, 0b1000, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ok, err := ledger.HasSkills(worker, tc.area, tc.category, tc.skills)
			if err != nil {
				t.Fatalf("has skills: %v", err)
			}
			if ok != tc.want {
				t.Fatalf("has skills = %t, want %t", ok, tc.want)
			}
		})
	}

	// Workers never granted anything fail every non-zero requirement.
	ok, err := ledger.HasSkills(testWorker(0x04), 1, 1, 1)
	if err != nil {
		t.Fatalf("has skills: %v", err)
	}
	if ok {
		t.Fatalf("unknown worker passed the skill check")
	}
}
