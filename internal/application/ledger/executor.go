package ledger

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"rental-registry/internal/application/registry"
	"rental-registry/internal/domain"

	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Call describes one invocation of a registry operation.
type Call struct {
	Operation string
	Caller    domain.AccountID
	// Value is the attached value, moved from the caller to the registry account
	// before the operation runs.
	Value domain.Balance
}

// Receipt is the outcome of a committed call.
type Receipt struct {
	Operation string           `json:"operation"`
	Caller    domain.AccountID `json:"caller"`
	Value     domain.Balance   `json:"value"`
	PaidOut   domain.Balance   `json:"paid_out"`
	BlockTime domain.Timestamp `json:"block_time"`
	Events    []domain.Event   `json:"events"`
}

// Observer receives call outcomes. Implemented by metrics.Metrics.
type Observer interface {
	ObserveCall(operation, outcome string)
	ObserveSettlement(received, paidOut domain.Balance)
}

// Executor runs registry calls as database transactions. A call that returns an
// error leaves no trace: attached value, transfers, registry writes and events roll back.
type Executor struct {
	DB       *gorm.DB
	Contract domain.AccountID
	Clock    func() time.Time
	Observer Observer
}

func (x *Executor) now() domain.Timestamp {
	clock := x.Clock
	if clock == nil {
		clock = time.Now
	}
	return domain.Timestamp(clock().UnixMilli())
}

// Bootstrap constructs the registry with owner. Repeated boots keep the stored owner.
func (x *Executor) Bootstrap(ctx context.Context, owner domain.AccountID) (domain.AccountID, error) {
	stored, err := registry.NewGormStore(x.DB).Init(ctx, owner)
	if err != nil {
		return "", err
	}
	if stored != owner {
		log.Warn().Str("configured_owner", owner.String()).Str("owner", stored.String()).
			Msg("registry already constructed with a different owner; keeping stored owner")
	}
	return stored, nil
}

// Execute runs fn inside a transaction with a fresh Registry and Env.
func (x *Executor) Execute(ctx context.Context, call Call, fn func(ctx context.Context, reg *registry.Registry, env *Env) error) (*Receipt, error) {
	receipt := &Receipt{Operation: call.Operation, Caller: call.Caller, Value: call.Value, BlockTime: x.now()}

	err := x.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		accounts := &Accounts{DB: tx}
		if err := accounts.Move(ctx, call.Caller, x.Contract, call.Value); err != nil {
			return err
		}
		env := &Env{
			accounts: accounts,
			contract: x.Contract,
			caller:   call.Caller,
			value:    call.Value,
			now:      receipt.BlockTime,
		}
		if err := fn(ctx, registry.New(registry.NewGormStore(tx)), env); err != nil {
			return err
		}
		events, err := persistEvents(tx, call, receipt.BlockTime, env.Events())
		if err != nil {
			return err
		}
		receipt.Events = events
		receipt.PaidOut = env.paidOut
		return nil
	})

	x.observe(call, receipt, err)
	if err != nil {
		return nil, err
	}
	return receipt, nil
}

// View runs a read-only fn outside of any transaction. Nothing is debited or persisted.
func (x *Executor) View(ctx context.Context, caller domain.AccountID, fn func(ctx context.Context, reg *registry.Registry, env *Env) error) error {
	env := &Env{
		accounts: &Accounts{DB: x.DB},
		contract: x.Contract,
		caller:   caller,
		now:      x.now(),
	}
	return fn(ctx, registry.New(registry.NewGormStore(x.DB)), env)
}

func persistEvents(tx *gorm.DB, call Call, blockTime domain.Timestamp, events []registry.Event) ([]domain.Event, error) {
	rows := make([]domain.Event, 0, len(events))
	for i, ev := range events {
		data, err := json.Marshal(ev)
		if err != nil {
			return nil, fmt.Errorf("encode %s event: %w", ev.EventType(), err)
		}
		rows = append(rows, domain.Event{
			Seq:        i,
			EventType:  ev.EventType(),
			PropertyID: ev.Property(),
			Caller:     call.Caller,
			BlockTime:  blockTime,
			EventData:  datatypes.JSON(data),
		})
	}
	if len(rows) == 0 {
		return rows, nil
	}
	if err := tx.Create(&rows).Error; err != nil {
		return nil, fmt.Errorf("persist events: %w", err)
	}
	return rows, nil
}

func (x *Executor) observe(call Call, receipt *Receipt, err error) {
	outcome := "ok"
	switch {
	case err == nil:
		log.Debug().Str("operation", call.Operation).Str("caller", call.Caller.String()).
			Uint64("value", uint64(call.Value)).Int("events", len(receipt.Events)).Msg("call committed")
	case registry.Kind(err) != "":
		outcome = registry.Kind(err)
		log.Info().Str("operation", call.Operation).Str("caller", call.Caller.String()).
			Str("kind", outcome).Msg("call rejected")
	case errors.Is(err, ErrInsufficientFunds):
		outcome = "InsufficientFunds"
		log.Info().Str("operation", call.Operation).Str("caller", call.Caller.String()).
			Uint64("value", uint64(call.Value)).Msg("call rejected: caller cannot cover attached value")
	default:
		outcome = "error"
		log.Error().Err(err).Str("operation", call.Operation).Str("caller", call.Caller.String()).Msg("call failed")
	}
	if x.Observer == nil {
		return
	}
	x.Observer.ObserveCall(call.Operation, outcome)
	if err == nil && call.Value > 0 {
		x.Observer.ObserveSettlement(call.Value, receipt.PaidOut)
	}
}

// Deposit credits amount to account outside of any registry call (operator faucet)
// and returns the new balance.
func (x *Executor) Deposit(ctx context.Context, account domain.AccountID, amount domain.Balance) (domain.Balance, error) {
	var balance domain.Balance
	err := x.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		accounts := &Accounts{DB: tx}
		if err := accounts.Credit(ctx, account, amount); err != nil {
			return err
		}
		var err error
		balance, err = accounts.Balance(ctx, account)
		return err
	})
	if err != nil {
		return 0, err
	}
	log.Info().Str("account", account.String()).Uint64("amount", uint64(amount)).Msg("deposit credited")
	return balance, nil
}

// AccountBalance returns the host balance of account.
func (x *Executor) AccountBalance(ctx context.Context, account domain.AccountID) (domain.Balance, error) {
	return (&Accounts{DB: x.DB}).Balance(ctx, account)
}
