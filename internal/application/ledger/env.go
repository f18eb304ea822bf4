package ledger

import (
	"context"

	"rental-registry/internal/application/registry"
	"rental-registry/internal/domain"
)

// Env is the Ledger of one call, bound to the call's transaction.
type Env struct {
	accounts *Accounts
	contract domain.AccountID
	caller   domain.AccountID
	value    domain.Balance
	now      domain.Timestamp

	events  []registry.Event
	paidOut domain.Balance
}

func (e *Env) Caller() domain.AccountID { return e.caller }
func (e *Env) TransferredValue() domain.Balance { return e.value }
func (e *Env) BlockTimestamp() domain.Timestamp { return e.now }
func (e *Env) Events() []registry.Event { return e.events }

// Transfer pays amount out of the registry account.
func (e *Env) Transfer(ctx context.Context, to domain.AccountID, amount domain.Balance) error {
	if err := e.accounts.Move(ctx, e.contract, to, amount); err != nil {
		return err
	}
	e.paidOut += amount
	return nil
}

// Balance returns the registry account's balance, including this call's attached value.
func (e *Env) Balance(ctx context.Context) (domain.Balance, error) {
	return e.accounts.Balance(ctx, e.contract)
}

func (e *Env) Emit(ev registry.Event) {
	e.events = append(e.events, ev)
}
