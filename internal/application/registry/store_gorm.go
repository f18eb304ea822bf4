package registry

import (
	"context"
	"errors"
	"fmt"

	"rental-registry/internal/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrNotInitialized is returned when the registry state row has not been bootstrapped.
var ErrNotInitialized = errors.New("registry is not initialized")

// GormStore implements Store over a GORM handle. Pass the call's transaction
// so every write is discarded together when the call fails.
type GormStore struct {
	DB *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{DB: db}
}

// Init creates the singleton state row with owner. When the row already exists
// the stored owner is kept and returned.
func (s *GormStore) Init(ctx context.Context, owner domain.AccountID) (domain.AccountID, error) {
	state := domain.RegistryState{ID: domain.RegistryStateID, Owner: owner}
	if err := s.DB.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&state).Error; err != nil {
		return "", fmt.Errorf("init registry state: %w", err)
	}
	return s.Owner(ctx)
}

func (s *GormStore) state(ctx context.Context) (domain.RegistryState, error) {
	var state domain.RegistryState
	if err := s.DB.WithContext(ctx).Where("id = ?", domain.RegistryStateID).First(&state).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return state, ErrNotInitialized
		}
		return state, fmt.Errorf("load registry state: %w", err)
	}
	return state, nil
}

func (s *GormStore) Owner(ctx context.Context) (domain.AccountID, error) {
	state, err := s.state(ctx)
	if err != nil {
		return "", err
	}
	return state.Owner, nil
}

func (s *GormStore) NextPropertyID(ctx context.Context) (domain.PropertyID, error) {
	res := s.DB.WithContext(ctx).Model(&domain.RegistryState{}).
		Where("id = ?", domain.RegistryStateID).
		Update("last_property_id", gorm.Expr("last_property_id + ?", 1))
	if res.Error != nil {
		return 0, fmt.Errorf("increment property counter: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return 0, ErrNotInitialized
	}
	state, err := s.state(ctx)
	if err != nil {
		return 0, err
	}
	return state.LastPropertyID, nil
}

func (s *GormStore) Landlord(ctx context.Context, property domain.PropertyID) (domain.AccountID, bool, error) {
	var rec domain.PropertyLandlord
	found, err := s.first(ctx, &rec, "property_id = ?", property)
	return rec.Landlord, found, err
}

func (s *GormStore) SetLandlord(ctx context.Context, property domain.PropertyID, landlord domain.AccountID) error {
	return s.upsert(ctx, &domain.PropertyLandlord{PropertyID: property, Landlord: landlord})
}

func (s *GormStore) DeleteLandlord(ctx context.Context, property domain.PropertyID) error {
	return s.delete(ctx, &domain.PropertyLandlord{}, "property_id = ?", property)
}

func (s *GormStore) Tenant(ctx context.Context, property domain.PropertyID) (domain.AccountID, bool, error) {
	var rec domain.PropertyTenant
	found, err := s.first(ctx, &rec, "property_id = ?", property)
	return rec.Tenant, found, err
}

func (s *GormStore) SetTenant(ctx context.Context, property domain.PropertyID, tenant domain.AccountID) error {
	return s.upsert(ctx, &domain.PropertyTenant{PropertyID: property, Tenant: tenant})
}

func (s *GormStore) DeleteTenant(ctx context.Context, property domain.PropertyID) error {
	return s.delete(ctx, &domain.PropertyTenant{}, "property_id = ?", property)
}

func (s *GormStore) Price(ctx context.Context, property domain.PropertyID) (domain.Balance, bool, error) {
	var rec domain.PropertyPrice
	found, err := s.first(ctx, &rec, "property_id = ?", property)
	return rec.Price, found, err
}

func (s *GormStore) SetPrice(ctx context.Context, property domain.PropertyID, price domain.Balance) error {
	return s.upsert(ctx, &domain.PropertyPrice{PropertyID: property, Price: price})
}

func (s *GormStore) DeletePrice(ctx context.Context, property domain.PropertyID) error {
	return s.delete(ctx, &domain.PropertyPrice{}, "property_id = ?", property)
}

func (s *GormStore) Timespan(ctx context.Context, property domain.PropertyID, tenant domain.AccountID) (domain.Timespan, bool, error) {
	var rec domain.Timespan
	found, err := s.first(ctx, &rec, "property_id = ? AND tenant = ?", property, tenant)
	return rec, found, err
}

func (s *GormStore) SetTimespan(ctx context.Context, ts domain.Timespan) error {
	return s.upsert(ctx, &ts)
}

func (s *GormStore) DeleteTimespan(ctx context.Context, property domain.PropertyID, tenant domain.AccountID) error {
	return s.delete(ctx, &domain.Timespan{}, "property_id = ? AND tenant = ?", property, tenant)
}

func (s *GormStore) first(ctx context.Context, dest interface{}, query string, args ...interface{}) (bool, error) {
	if err := s.DB.WithContext(ctx).Where(query, args...).First(dest).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("registry store lookup: %w", err)
	}
	return true, nil
}

func (s *GormStore) upsert(ctx context.Context, rec interface{}) error {
	if err := s.DB.WithContext(ctx).Clauses(clause.OnConflict{UpdateAll: true}).Create(rec).Error; err != nil {
		return fmt.Errorf("registry store write: %w", err)
	}
	return nil
}

func (s *GormStore) delete(ctx context.Context, model interface{}, query string, args ...interface{}) error {
	if err := s.DB.WithContext(ctx).Where(query, args...).Delete(model).Error; err != nil {
		return fmt.Errorf("registry store delete: %w", err)
	}
	return nil
}
