package registry

import (
	"context"
	"fmt"

	"rental-registry/internal/domain"
)

// SetPrice sets the monthly price of property. Landlord only; overwrites.
func (r *Registry) SetPrice(ctx context.Context, env Ledger, property domain.PropertyID, price domain.Balance) error {
	if err := r.requireLandlord(ctx, env, property); err != nil {
		return err
	}
	if price > MaxPrice {
		return fmt.Errorf("%w: price %d out of range", ErrNumericOverflow, uint64(price))
	}
	if err := r.Store.SetPrice(ctx, property, price); err != nil {
		return err
	}
	env.Emit(PriceSet{PropertyID: property, Price: price})
	return nil
}

// ApproveTenant makes tenant the approved tenant of property. Landlord only.
// The previous tenant's timespan record is left in place.
func (r *Registry) ApproveTenant(ctx context.Context, env Ledger, property domain.PropertyID, tenant domain.AccountID) error {
	if err := r.requireLandlord(ctx, env, property); err != nil {
		return err
	}
	if err := r.Store.SetTenant(ctx, property, tenant); err != nil {
		return err
	}
	env.Emit(TenantApproved{PropertyID: property, Tenant: tenant})
	return nil
}
