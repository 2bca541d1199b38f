package services_test

import (
	"github.com/stretchr/testify/mock"

	"github.com/ferreirogomes/quinhao/models"
)

// MockStore is a mock implementation of services.Store and
// services.SnapshotStore for unit tests.
type MockStore struct {
	mock.Mock
}

func (m *MockStore) SaveCollection(c models.Collection) error {
	args := m.Called(c)
	return args.Error(0)
}

func (m *MockStore) GetCollection(id string) (models.Collection, bool, error) {
	args := m.Called(id)
	return args.Get(0).(models.Collection), args.Bool(1), args.Error(2)
}

func (m *MockStore) SaveAsset(a models.Asset) error {
	args := m.Called(a)
	return args.Error(0)
}

func (m *MockStore) GetAsset(id string) (models.Asset, bool, error) {
	args := m.Called(id)
	return args.Get(0).(models.Asset), args.Bool(1), args.Error(2)
}

func (m *MockStore) MarkAssetFractionalized(assetID, ledgerID string) error {
	args := m.Called(assetID, ledgerID)
	return args.Error(0)
}

func (m *MockStore) UpdateAssetTitle(assetID, holder string) error {
	args := m.Called(assetID, holder)
	return args.Error(0)
}

func (m *MockStore) SaveLedger(rec models.LedgerRecord) error {
	args := m.Called(rec)
	return args.Error(0)
}

func (m *MockStore) ReplaceHoldings(ledgerID string, holdings []models.Holding) error {
	args := m.Called(ledgerID, holdings)
	return args.Error(0)
}

func (m *MockStore) SavePurchase(p models.Purchase) error {
	args := m.Called(p)
	return args.Error(0)
}

func (m *MockStore) GetHoldingsByHolder(holder string) ([]models.Holding, error) {
	args := m.Called(holder)
	return args.Get(0).([]models.Holding), args.Error(1)
}

func (m *MockStore) GetPurchasesByLedger(ledgerID string) ([]models.Purchase, error) {
	args := m.Called(ledgerID)
	return args.Get(0).([]models.Purchase), args.Error(1)
}

func (m *MockStore) LoadAssets() ([]models.Asset, error) {
	args := m.Called()
	return args.Get(0).([]models.Asset), args.Error(1)
}

func (m *MockStore) LoadLedgers() ([]models.LedgerRecord, error) {
	args := m.Called()
	return args.Get(0).([]models.LedgerRecord), args.Error(1)
}

func (m *MockStore) GetHoldingsByLedger(ledgerID string) ([]models.Holding, error) {
	args := m.Called(ledgerID)
	return args.Get(0).([]models.Holding), args.Error(1)
}
