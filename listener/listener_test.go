package listener_test

import (
	"testing"
	"time"

	"github.com/asaskevich/EventBus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ferreirogomes/quinhao/ledger"
	"github.com/ferreirogomes/quinhao/listener"
	"github.com/ferreirogomes/quinhao/models"
)

type MockStore struct {
	mock.Mock
}

func (m *MockStore) SavePurchase(p models.Purchase) error {
	args := m.Called(p)
	return args.Error(0)
}

func (m *MockStore) ReplaceHoldings(ledgerID string, holdings []models.Holding) error {
	args := m.Called(ledgerID, holdings)
	return args.Error(0)
}

func (m *MockStore) UpdateLedgerSeller(ledgerID, seller string) error {
	args := m.Called(ledgerID, seller)
	return args.Error(0)
}

func (m *MockStore) UpdateAssetTitle(assetID, holder string) error {
	args := m.Called(assetID, holder)
	return args.Error(0)
}

func TestPurchaseProjection(t *testing.T) {
	bus := EventBus.New()
	table := ledger.NewTable()
	store := new(MockStore)

	l := ledger.New("led-1", "asset-1", "alice", 100, 1)
	table.Put(l)
	_, err := l.BuyShares("bob", 30, 30, func(string, string) error { return nil })
	require.NoError(t, err)

	proj := listener.New(bus, table, store, zap.NewNop())
	require.NoError(t, proj.Start())

	store.On("SavePurchase", mock.MatchedBy(func(p models.Purchase) bool {
		return p.ID == "pur-1" && p.Buyer == "bob" && p.Count == 30
	})).Return(nil).Once()
	store.On("ReplaceHoldings", "led-1", mock.MatchedBy(func(hs []models.Holding) bool {
		return len(hs) == 2 && hs[0].Holder == "alice" && hs[0].Balance == 70 &&
			hs[1].Holder == "bob" && hs[1].Balance == 30
	})).Return(nil).Once()
	store.On("UpdateLedgerSeller", "led-1", "alice").Return(nil).Once()

	bus.Publish(models.TopicSharesPurchased, models.SharesPurchased{
		PurchaseID: "pur-1",
		LedgerID:   "led-1",
		Buyer:      "bob",
		Seller:     "alice",
		Count:      30,
		PaidCents:  30,
		OccurredAt: time.Now().UTC(),
	})
	proj.Stop()

	store.AssertExpectations(t)
}

func TestTitleTransferProjection(t *testing.T) {
	bus := EventBus.New()
	store := new(MockStore)
	proj := listener.New(bus, ledger.NewTable(), store, zap.NewNop())
	require.NoError(t, proj.Start())

	store.On("UpdateAssetTitle", "asset-1", "xavier").Return(nil).Once()

	bus.Publish(models.TopicTitleTransferred, models.TitleTransferred{
		AssetID:    "asset-1",
		From:       "alice",
		To:         "xavier",
		LedgerID:   "led-1",
		OccurredAt: time.Now().UTC(),
	})
	proj.Stop()

	store.AssertExpectations(t)
}

func TestProjectionSurvivesStoreFailure(t *testing.T) {
	bus := EventBus.New()
	table := ledger.NewTable()
	table.Put(ledger.New("led-1", "asset-1", "alice", 10, 1))
	store := new(MockStore)
	proj := listener.New(bus, table, store, zap.NewNop())
	require.NoError(t, proj.Start())

	store.On("SavePurchase", mock.AnythingOfType("models.Purchase")).
		Return(assert.AnError).Once()

	// A failed write is logged for reconciliation, never panics.
	bus.Publish(models.TopicSharesPurchased, models.SharesPurchased{
		PurchaseID: "pur-1",
		LedgerID:   "led-1",
	})
	proj.Stop()

	store.AssertExpectations(t)
	store.AssertNotCalled(t, "ReplaceHoldings", mock.Anything, mock.Anything)
}
