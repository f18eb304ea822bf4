package registry

import (
	"context"

	"rental-registry/internal/domain"
)

// ApproveProperty registers a new property controlled by landlord. Owner only.
func (r *Registry) ApproveProperty(ctx context.Context, env Ledger, landlord domain.AccountID) (domain.PropertyID, error) {
	owner, err := r.isOwner(ctx, env.Caller())
	if err != nil {
		return 0, err
	}
	if !owner {
		return 0, ErrNotEnoughRights
	}
	property, err := r.Store.NextPropertyID(ctx)
	if err != nil {
		return 0, err
	}
	if err := r.Store.SetLandlord(ctx, property, landlord); err != nil {
		return 0, err
	}
	env.Emit(PropertyApproved{PropertyID: property, Landlord: landlord})
	return property, nil
}

// RemoveProperty clears the landlord, tenant (with that tenant's timespan) and
// price records of property. Allowed for the landlord and the Owner.
// Timespans of tenants replaced earlier are retained.
func (r *Registry) RemoveProperty(ctx context.Context, env Ledger, property domain.PropertyID) error {
	landlord, err := r.landlordOf(ctx, property)
	if err != nil {
		return err
	}
	caller := env.Caller()
	if !isLandlord(caller, landlord) {
		owner, err := r.isOwner(ctx, caller)
		if err != nil {
			return err
		}
		if !owner {
			return ErrNotEnoughRights
		}
	}

	if err := r.Store.DeleteLandlord(ctx, property); err != nil {
		return err
	}
	tenant, ok, err := r.Store.Tenant(ctx, property)
	if err != nil {
		return err
	}
	if ok {
		if err := r.Store.DeleteTenant(ctx, property); err != nil {
			return err
		}
		if err := r.Store.DeleteTimespan(ctx, property, tenant); err != nil {
			return err
		}
	}
	return r.Store.DeletePrice(ctx, property)
}
