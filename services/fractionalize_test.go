package services_test

import (
	"errors"
	"testing"

	"github.com/asaskevich/EventBus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ferreirogomes/quinhao/ledger"
	"github.com/ferreirogomes/quinhao/models"
	"github.com/ferreirogomes/quinhao/registry"
	"github.com/ferreirogomes/quinhao/services"
)

type fracFixture struct {
	store   *MockStore
	reg     *registry.Registry
	ledgers *ledger.Table
	bus     EventBus.Bus
	svc     *services.FractionalizationService
}

func newFracFixture(t *testing.T) *fracFixture {
	t.Helper()
	f := &fracFixture{
		store:   new(MockStore),
		reg:     registry.New(),
		ledgers: ledger.NewTable(),
		bus:     EventBus.New(),
	}
	f.svc = services.NewFractionalizationService(f.store, f.reg, f.ledgers, f.bus, zap.NewNop())
	return f
}

func (f *fracFixture) expectPersistence() {
	f.store.On("SaveLedger", mock.AnythingOfType("models.LedgerRecord")).Return(nil).Once()
	f.store.On("MarkAssetFractionalized", mock.AnythingOfType("string"), mock.AnythingOfType("string")).Return(nil).Once()
	f.store.On("ReplaceHoldings", mock.AnythingOfType("string"), mock.AnythingOfType("[]models.Holding")).Return(nil).Once()
}

func TestFractionalizeHappyPath(t *testing.T) {
	f := newFracFixture(t)
	require.NoError(t, f.reg.Register("asset-1", "alice"))
	f.expectPersistence()

	var event models.AssetFractionalized
	require.NoError(t, f.bus.Subscribe(models.TopicAssetFractionalized, func(ev models.AssetFractionalized) {
		event = ev
	}))

	rec, err := f.svc.Fractionalize("asset-1", 100, 250, "alice")
	require.NoError(t, err)

	assert.NotEmpty(t, rec.ID)
	assert.Equal(t, "asset-1", rec.AssetID)
	assert.Equal(t, "alice", rec.Creator)
	assert.Equal(t, "alice", rec.Seller)
	assert.Equal(t, int64(100), rec.TotalShares)
	assert.Equal(t, int64(250), rec.PricePerShareCents)

	// Creator starts holding every share; title stays with them.
	l, err := f.ledgers.Get(rec.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(100), l.AvailableShares())
	assert.Equal(t, models.StateConsolidated, l.State())

	holder, err := f.reg.TitleOf("asset-1")
	require.NoError(t, err)
	assert.Equal(t, "alice", holder)

	fractionalized, err := f.reg.IsFractionalized("asset-1")
	require.NoError(t, err)
	assert.True(t, fractionalized)

	assert.Equal(t, rec.ID, event.LedgerID)
	assert.Equal(t, int64(100), event.TotalShares)

	f.store.AssertExpectations(t)
}

func TestFractionalizeValidatesParameters(t *testing.T) {
	f := newFracFixture(t)
	require.NoError(t, f.reg.Register("asset-1", "alice"))

	_, err := f.svc.Fractionalize("asset-1", 0, 100, "alice")
	assert.ErrorIs(t, err, models.ErrInvalidShareCount)
	_, err = f.svc.Fractionalize("asset-1", -5, 100, "alice")
	assert.ErrorIs(t, err, models.ErrInvalidShareCount)
	_, err = f.svc.Fractionalize("asset-1", 100, 0, "alice")
	assert.ErrorIs(t, err, models.ErrInvalidPrice)

	// Rejected before any state was touched; still eligible for retry.
	fractionalized, err := f.reg.IsFractionalized("asset-1")
	require.NoError(t, err)
	assert.False(t, fractionalized)
	f.store.AssertNotCalled(t, "SaveLedger", mock.Anything)
}

func TestFractionalizeUnknownAsset(t *testing.T) {
	f := newFracFixture(t)
	_, err := f.svc.Fractionalize("asset-1", 100, 100, "alice")
	assert.ErrorIs(t, err, models.ErrUnknownAsset)
}

func TestFractionalizeByNonOwner(t *testing.T) {
	f := newFracFixture(t)
	require.NoError(t, f.reg.Register("asset-1", "alice"))

	_, err := f.svc.Fractionalize("asset-1", 100, 100, "mallory")
	assert.ErrorIs(t, err, models.ErrNotOwner)

	// No ledger was created.
	_, err = f.ledgers.GetByAsset("asset-1")
	assert.ErrorIs(t, err, models.ErrUnknownLedger)
	f.store.AssertNotCalled(t, "SaveLedger", mock.Anything)
}

func TestFractionalizeTwiceConflicts(t *testing.T) {
	f := newFracFixture(t)
	require.NoError(t, f.reg.Register("asset-1", "alice"))
	f.expectPersistence()

	rec, err := f.svc.Fractionalize("asset-1", 100, 100, "alice")
	require.NoError(t, err)

	_, err = f.svc.Fractionalize("asset-1", 50, 200, "alice")
	assert.ErrorIs(t, err, models.ErrAlreadyFractionalized)

	// First ledger untouched.
	l, err := f.ledgers.Get(rec.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(100), l.TotalShares())
	f.store.AssertExpectations(t)
}

func TestFractionalizePersistFailureRollsBack(t *testing.T) {
	f := newFracFixture(t)
	require.NoError(t, f.reg.Register("asset-1", "alice"))
	f.store.On("SaveLedger", mock.AnythingOfType("models.LedgerRecord")).
		Return(errors.New("db down")).Once()

	_, err := f.svc.Fractionalize("asset-1", 100, 100, "alice")
	require.Error(t, err)
	assert.NotErrorIs(t, err, models.ErrAlreadyFractionalized)

	// Custody released and no ledger left behind; retry succeeds.
	fractionalized, regErr := f.reg.IsFractionalized("asset-1")
	require.NoError(t, regErr)
	assert.False(t, fractionalized)
	_, err = f.ledgers.GetByAsset("asset-1")
	assert.ErrorIs(t, err, models.ErrUnknownLedger)

	f.expectPersistence()
	_, err = f.svc.Fractionalize("asset-1", 100, 100, "alice")
	require.NoError(t, err)
	f.store.AssertExpectations(t)
}
