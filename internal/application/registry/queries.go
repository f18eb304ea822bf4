package registry

import (
	"context"

	"rental-registry/internal/domain"
)

func (r *Registry) Landlord(ctx context.Context, property domain.PropertyID) (domain.AccountID, error) {
	return r.landlordOf(ctx, property)
}

func (r *Registry) Price(ctx context.Context, property domain.PropertyID) (domain.Balance, error) {
	price, ok, err := r.Store.Price(ctx, property)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, ErrPriceIsntSet
	}
	return price, nil
}

func (r *Registry) Tenant(ctx context.Context, property domain.PropertyID) (domain.AccountID, error) {
	tenant, ok, err := r.Store.Tenant(ctx, property)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", ErrNoApprovedTenant
	}
	return tenant, nil
}

// Timespan returns the paid period of tenant on property.
func (r *Registry) Timespan(ctx context.Context, property domain.PropertyID, tenant domain.AccountID) (domain.Timespan, error) {
	ts, ok, err := r.Store.Timespan(ctx, property, tenant)
	if err != nil {
		return domain.Timespan{}, err
	}
	if !ok {
		return domain.Timespan{}, ErrTimespanDoesntExist
	}
	return ts, nil
}

// Balance reports the funds held by the registry account. Diagnostic only.
func (r *Registry) Balance(ctx context.Context, env Ledger) (domain.Balance, error) {
	return env.Balance(ctx)
}
