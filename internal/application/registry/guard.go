package registry

import (
	"context"

	"rental-registry/internal/domain"
)

func (r *Registry) isOwner(ctx context.Context, caller domain.AccountID) (bool, error) {
	owner, err := r.Store.Owner(ctx)
	if err != nil {
		return false, err
	}
	return caller == owner, nil
}

func isLandlord(caller, landlord domain.AccountID) bool {
	return caller == landlord
}

// landlordOf resolves the landlord of property or fails with ErrPropertyDoesntExist.
func (r *Registry) landlordOf(ctx context.Context, property domain.PropertyID) (domain.AccountID, error) {
	landlord, ok, err := r.Store.Landlord(ctx, property)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", ErrPropertyDoesntExist
	}
	return landlord, nil
}

// requireLandlord checks property existence, then that the caller is its landlord.
func (r *Registry) requireLandlord(ctx context.Context, env Ledger, property domain.PropertyID) error {
	landlord, err := r.landlordOf(ctx, property)
	if err != nil {
		return err
	}
	if !isLandlord(env.Caller(), landlord) {
		return ErrNotEnoughRights
	}
	return nil
}
