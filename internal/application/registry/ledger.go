package registry

import (
	"context"

	"rental-registry/internal/domain"
)

// Ledger is the host execution context of a single call.
type Ledger interface {
	Caller() domain.AccountID
	TransferredValue() domain.Balance
	Transfer(ctx context.Context, to domain.AccountID, amount domain.Balance) error
	BlockTimestamp() domain.Timestamp
	Balance(ctx context.Context) (domain.Balance, error)
	Emit(Event)
}

// Event is a notification emitted by a successful mutation.
type Event interface {
	EventType() string
	Property() domain.PropertyID
}

type PropertyApproved struct {
	PropertyID domain.PropertyID `json:"property"`
	Landlord   domain.AccountID  `json:"landlord"`
}

func (PropertyApproved) EventType() string { return domain.EventPropertyApproved }
func (e PropertyApproved) Property() domain.PropertyID { return e.PropertyID }

type TenantApproved struct {
	PropertyID domain.PropertyID `json:"property"`
	Tenant     domain.AccountID  `json:"tenant"`
}

func (TenantApproved) EventType() string { return domain.EventTenantApproved }
func (e TenantApproved) Property() domain.PropertyID { return e.PropertyID }

type PriceSet struct {
	PropertyID domain.PropertyID `json:"property"`
	Price      domain.Balance    `json:"price"`
}

func (PriceSet) EventType() string { return domain.EventPriceSet }
func (e PriceSet) Property() domain.PropertyID { return e.PropertyID }
