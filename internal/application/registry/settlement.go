package registry

import (
	"context"
	"errors"
	"fmt"
	"math"

	"rental-registry/internal/domain"
)

// Largest values the price and timespan tables can hold.
const (
	MaxPrice    = math.MaxInt64
	MaxDuration = math.MaxInt64
)

// Payout returns the landlord share of an attached rent value: floor(value/100)*90.
func Payout(value domain.Balance) domain.Balance {
	return value / percentBase * payoutPercent
}

// RentDuration returns floor(value/price) months, failing with ErrNumericOverflow
// for a zero price or a quotient the timespan table cannot hold.
func RentDuration(value, price domain.Balance) (domain.Duration, error) {
	if price == 0 {
		return 0, fmt.Errorf("%w: division by zero price", ErrNumericOverflow)
	}
	q := uint64(value / price)
	if q > MaxDuration {
		return 0, fmt.Errorf("%w: duration %d out of range", ErrNumericOverflow, q)
	}
	return domain.Duration(q), nil
}

// PayRent settles a rent payment carried as the call's transferred value.
// Validation precedes the landlord transfer and the timespan write follows it.
func (r *Registry) PayRent(ctx context.Context, env Ledger, property domain.PropertyID) error {
	// Price first: an unknown property reports ErrPriceIsntSet.
	price, ok, err := r.Store.Price(ctx, property)
	if err != nil {
		return err
	}
	if !ok {
		return ErrPriceIsntSet
	}
	value := env.TransferredValue()
	if value < price {
		return ErrUnsufficientRent
	}
	tenant, ok, err := r.Store.Tenant(ctx, property)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNoApprovedTenant
	}
	if env.Caller() != tenant {
		return ErrNotApprovedTenant
	}
	landlord, err := r.landlordOf(ctx, property)
	if err != nil {
		return err
	}

	duration, err := RentDuration(value, price)
	if err != nil {
		return err
	}
	if err := env.Transfer(ctx, landlord, Payout(value)); err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return err
		}
		return fmt.Errorf("%w: %v", ErrFailedTransferFunds, err)
	}

	return r.Store.SetTimespan(ctx, domain.Timespan{
		PropertyID: property,
		Tenant:     tenant,
		Start:      env.BlockTimestamp(),
		Duration:   duration,
	})
}
