package registry

import (
	"context"

	"rental-registry/internal/domain"
)

// Store is the registry's persisted key-value tables. Lookups report presence
// with a bool; a non-nil error is always an infrastructure failure.
type Store interface {
	Owner(ctx context.Context) (domain.AccountID, error)
	// NextPropertyID increments and returns the last issued property id.
	NextPropertyID(ctx context.Context) (domain.PropertyID, error)

	Landlord(ctx context.Context, property domain.PropertyID) (domain.AccountID, bool, error)
	SetLandlord(ctx context.Context, property domain.PropertyID, landlord domain.AccountID) error
	DeleteLandlord(ctx context.Context, property domain.PropertyID) error

	Tenant(ctx context.Context, property domain.PropertyID) (domain.AccountID, bool, error)
	SetTenant(ctx context.Context, property domain.PropertyID, tenant domain.AccountID) error
	DeleteTenant(ctx context.Context, property domain.PropertyID) error

	Price(ctx context.Context, property domain.PropertyID) (domain.Balance, bool, error)
	SetPrice(ctx context.Context, property domain.PropertyID, price domain.Balance) error
	DeletePrice(ctx context.Context, property domain.PropertyID) error

	Timespan(ctx context.Context, property domain.PropertyID, tenant domain.AccountID) (domain.Timespan, bool, error)
	SetTimespan(ctx context.Context, ts domain.Timespan) error
	DeleteTimespan(ctx context.Context, property domain.PropertyID, tenant domain.AccountID) error
}
