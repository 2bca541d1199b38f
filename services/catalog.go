package services

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ferreirogomes/quinhao/models"
	"github.com/ferreirogomes/quinhao/registry"
)

// CatalogService manages collections and mints the asset records the
// registry and ledgers operate on. Metadata references are opaque here.
type CatalogService struct {
	store    Store
	registry *registry.Registry
	log      *zap.Logger
}

func NewCatalogService(store Store, reg *registry.Registry, log *zap.Logger) *CatalogService {
	return &CatalogService{store: store, registry: reg, log: log}
}

// CreateCollection registers a new asset group.
func (s *CatalogService) CreateCollection(name, symbol, metadataRef string) (models.Collection, error) {
	c := models.Collection{
		ID:          uuid.New().String(),
		Name:        name,
		Symbol:      symbol,
		MetadataRef: metadataRef,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.store.SaveCollection(c); err != nil {
		return models.Collection{}, fmt.Errorf("saving collection: %w", err)
	}
	s.log.Info("collection created",
		zap.String("collection_id", c.ID),
		zap.String("symbol", c.Symbol))
	return c, nil
}

// GetCollection returns a collection by ID.
func (s *CatalogService) GetCollection(id string) (models.Collection, error) {
	c, found, err := s.store.GetCollection(id)
	if err != nil {
		return models.Collection{}, fmt.Errorf("loading collection: %w", err)
	}
	if !found {
		return models.Collection{}, models.ErrUnknownCollection
	}
	return c, nil
}

// MintAsset creates a new non-fractionalized asset titled to owner.
func (s *CatalogService) MintAsset(collectionID, metadataRef, owner string) (models.Asset, error) {
	if _, err := s.GetCollection(collectionID); err != nil {
		return models.Asset{}, err
	}

	a := models.Asset{
		ID:           uuid.New().String(),
		CollectionID: collectionID,
		MetadataRef:  metadataRef,
		TitleHolder:  owner,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.registry.Register(a.ID, owner); err != nil {
		return models.Asset{}, err
	}
	if err := s.store.SaveAsset(a); err != nil {
		s.registry.Drop(a.ID)
		return models.Asset{}, fmt.Errorf("saving asset: %w", err)
	}

	s.log.Info("asset minted",
		zap.String("asset_id", a.ID),
		zap.String("collection_id", collectionID),
		zap.String("owner", owner))
	return a, nil
}

// GetAsset returns the persisted asset record with its live title holder.
func (s *CatalogService) GetAsset(id string) (models.Asset, error) {
	a, found, err := s.store.GetAsset(id)
	if err != nil {
		return models.Asset{}, fmt.Errorf("loading asset: %w", err)
	}
	if !found {
		return models.Asset{}, models.ErrUnknownAsset
	}
	if holder, err := s.registry.TitleOf(id); err == nil {
		a.TitleHolder = holder
	}
	return a, nil
}

// TitleOf answers who currently holds title to the asset.
func (s *CatalogService) TitleOf(assetID string) (string, error) {
	return s.registry.TitleOf(assetID)
}
