package registry_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ferreirogomes/quinhao/models"
	"github.com/ferreirogomes/quinhao/registry"
)

func TestRegisterAndTitleOf(t *testing.T) {
	r := registry.New()
	require.NoError(t, r.Register("asset-1", "alice"))

	holder, err := r.TitleOf("asset-1")
	require.NoError(t, err)
	assert.Equal(t, "alice", holder)

	assert.ErrorIs(t, r.Register("asset-1", "bob"), models.ErrDuplicateAsset)

	_, err = r.TitleOf("asset-2")
	assert.ErrorIs(t, err, models.ErrUnknownAsset)
}

func TestOwnerTransfersNonFractionalizedAsset(t *testing.T) {
	r := registry.New()
	require.NoError(t, r.Register("asset-1", "alice"))

	_, err := r.TransferTitle("asset-1", "carol", "bob")
	assert.ErrorIs(t, err, models.ErrUnauthorized)

	prev, err := r.TransferTitle("asset-1", "bob", "alice")
	require.NoError(t, err)
	assert.Equal(t, "alice", prev)

	holder, err := r.TitleOf("asset-1")
	require.NoError(t, err)
	assert.Equal(t, "bob", holder)
}

func TestCustodyLockHandsAuthorityToLedger(t *testing.T) {
	r := registry.New()
	require.NoError(t, r.Register("asset-1", "alice"))
	require.NoError(t, r.LockCustody("asset-1", "led-1"))

	// Locking twice is the already-fractionalized conflict.
	assert.ErrorIs(t, r.LockCustody("asset-1", "led-2"), models.ErrAlreadyFractionalized)

	fractionalized, err := r.IsFractionalized("asset-1")
	require.NoError(t, err)
	assert.True(t, fractionalized)

	// The former owner lost transfer authority; only the ledger has it.
	_, err = r.TransferTitle("asset-1", "bob", "alice")
	assert.ErrorIs(t, err, models.ErrUnauthorized)

	prev, err := r.TransferTitle("asset-1", "bob", "led-1")
	require.NoError(t, err)
	assert.Equal(t, "alice", prev)

	holder, err := r.TitleOf("asset-1")
	require.NoError(t, err)
	assert.Equal(t, "bob", holder)
}

func TestLockCustodyUnknownAsset(t *testing.T) {
	r := registry.New()
	assert.ErrorIs(t, r.LockCustody("asset-1", "led-1"), models.ErrUnknownAsset)
}

func TestUnlockCustodyRestoresRetry(t *testing.T) {
	r := registry.New()
	require.NoError(t, r.Register("asset-1", "alice"))
	require.NoError(t, r.LockCustody("asset-1", "led-1"))

	r.UnlockCustody("asset-1")

	fractionalized, err := r.IsFractionalized("asset-1")
	require.NoError(t, err)
	assert.False(t, fractionalized)
	require.NoError(t, r.LockCustody("asset-1", "led-2"))
}

func TestRestoreSeedsPersistedState(t *testing.T) {
	r := registry.New()
	r.Restore("asset-1", "bob", true, "led-1")

	holder, err := r.TitleOf("asset-1")
	require.NoError(t, err)
	assert.Equal(t, "bob", holder)

	_, err = r.TransferTitle("asset-1", "carol", "bob")
	assert.ErrorIs(t, err, models.ErrUnauthorized)
	_, err = r.TransferTitle("asset-1", "carol", "led-1")
	require.NoError(t, err)
}

func TestDropRemovesAsset(t *testing.T) {
	r := registry.New()
	require.NoError(t, r.Register("asset-1", "alice"))
	r.Drop("asset-1")

	_, err := r.TitleOf("asset-1")
	assert.ErrorIs(t, err, models.ErrUnknownAsset)
}
