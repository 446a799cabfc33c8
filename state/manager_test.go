package state

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"gigchain/storage"
)

func TestAccountRoundTrip(t *testing.T) {
	manager := NewManager(storage.NewMemDB())
	addr := []byte("party-one-0123456789")

	account, err := manager.GetAccount(addr)
	require.NoError(t, err)
	require.Equal(t, uint64(0), account.Nonce)
	require.Empty(t, account.Balances)

	account.Nonce = 3
	account.SetBalance("GIG", big.NewInt(1234))
	account.SetBalance("aux", big.NewInt(5))
	require.NoError(t, manager.PutAccount(addr, account))

	loaded, err := manager.GetAccount(addr)
	require.NoError(t, err)
	require.Equal(t, uint64(3), loaded.Nonce)
	require.Equal(t, big.NewInt(1234), loaded.Balance("GIG"))
	require.Equal(t, big.NewInt(5), loaded.Balance("AUX"))
	require.Equal(t, big.NewInt(0), loaded.Balance("OTHER"))
}

func TestPutNilAccount(t *testing.T) {
	manager := NewManager(storage.NewMemDB())
	addr := []byte("party-two-0123456789")
	require.NoError(t, manager.PutAccount(addr, nil))
	loaded, err := manager.GetAccount(addr)
	require.NoError(t, err)
	require.Equal(t, uint64(0), loaded.Nonce)
}

func TestKVRoundTrip(t *testing.T) {
	manager := NewManager(storage.NewMemDB())

	type record struct {
		ID     uint64
		Name   string
		Amount *big.Int
	}

	ok, err := manager.KVGet([]byte("missing"), nil)
	require.NoError(t, err)
	require.False(t, ok)

	stored := record{ID: 9, Name: "nine", Amount: big.NewInt(99)}
	require.NoError(t, manager.KVPut([]byte("records/9"), &stored))

	var loaded record
	ok, err = manager.KVGet([]byte("records/9"), &loaded)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, stored, loaded)

	// Existence check without decoding.
	ok, err = manager.KVGet([]byte("records/9"), nil)
	require.NoError(t, err)
	require.True(t, ok)

	require.NoError(t, manager.KVDelete([]byte("records/9")))
	ok, err = manager.KVGet([]byte("records/9"), &loaded)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestKVScalars(t *testing.T) {
	manager := NewManager(storage.NewMemDB())

	require.NoError(t, manager.KVPut([]byte("seq"), uint64(42)))
	var seq uint64
	ok, err := manager.KVGet([]byte("seq"), &seq)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, uint64(42), seq)

	require.NoError(t, manager.KVPut([]byte("ids"), []uint64{1, 2, 3}))
	var ids []uint64
	ok, err = manager.KVGet([]byte("ids"), &ids)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, []uint64{1, 2, 3}, ids)
}

func TestKVRejectsEmptyKey(t *testing.T) {
	manager := NewManager(storage.NewMemDB())
	require.Error(t, manager.KVPut(nil, uint64(1)))
	_, err := manager.KVGet(nil, nil)
	require.Error(t, err)
	require.Error(t, manager.KVDelete(nil))
}

func TestNamespacesAreDisjoint(t *testing.T) {
	manager := NewManager(storage.NewMemDB())
	key := []byte("shared")

	require.NoError(t, manager.KVPut(key, uint64(7)))
	account, err := manager.GetAccount(key)
	require.NoError(t, err)
	// The kv write must not leak into the account namespace.
	require.Equal(t, uint64(0), account.Nonce)
	require.Empty(t, account.Balances)
}
