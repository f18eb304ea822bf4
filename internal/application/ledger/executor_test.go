package ledger

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"rental-registry/internal/application/registry"
	"rental-registry/internal/domain"
	"rental-registry/internal/infrastructure/database"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const (
	owner    = domain.AccountID("owner")
	landlord = domain.AccountID("landlord")
	tenant   = domain.AccountID("tenant")
	contract = domain.AccountID("registry")
)

type recordingObserver struct {
	calls    []string
	received domain.Balance
	paidOut  domain.Balance
}

func (o *recordingObserver) ObserveCall(operation, outcome string) {
	o.calls = append(o.calls, operation+":"+outcome)
}

func (o *recordingObserver) ObserveSettlement(received, paidOut domain.Balance) {
	o.received += received
	o.paidOut += paidOut
}

func setupExecutor(t *testing.T) (*Executor, *gorm.DB, *recordingObserver) {
	db, err := database.OpenSQLite(":memory:")
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))
	obs := &recordingObserver{}
	x := &Executor{
		DB:       db,
		Contract: contract,
		Clock:    func() time.Time { return time.UnixMilli(42_000) },
		Observer: obs,
	}
	_, err = x.Bootstrap(context.Background(), owner)
	require.NoError(t, err)
	return x, db, obs
}

func approve(ctx context.Context, reg *registry.Registry, env *Env) error {
	_, err := reg.ApproveProperty(ctx, env, landlord)
	return err
}

func balanceOf(t *testing.T, x *Executor, id domain.AccountID) domain.Balance {
	b, err := x.AccountBalance(context.Background(), id)
	require.NoError(t, err)
	return b
}

func TestBootstrap_KeepsStoredOwner(t *testing.T) {
	x, _, _ := setupExecutor(t)
	got, err := x.Bootstrap(context.Background(), "someone-else")
	require.NoError(t, err)
	assert.Equal(t, owner, got)
}

func TestExecute_PersistsEvents(t *testing.T) {
	x, db, obs := setupExecutor(t)
	ctx := context.Background()

	receipt, err := x.Execute(ctx, Call{Operation: "approve_property", Caller: owner}, approve)
	require.NoError(t, err)
	require.Len(t, receipt.Events, 1)
	assert.Equal(t, domain.EventPropertyApproved, receipt.Events[0].EventType)
	assert.Equal(t, domain.Timestamp(42_000), receipt.BlockTime)

	var stored []domain.Event
	require.NoError(t, db.Find(&stored).Error)
	require.Len(t, stored, 1)
	assert.Equal(t, domain.PropertyID(1), stored[0].PropertyID)
	var payload map[string]interface{}
	require.NoError(t, json.Unmarshal(stored[0].EventData, &payload))
	assert.Equal(t, "landlord", payload["landlord"])

	assert.Equal(t, []string{"approve_property:ok"}, obs.calls)
}

func TestExecute_RollsBackFailedCall(t *testing.T) {
	x, db, obs := setupExecutor(t)
	ctx := context.Background()
	_, err := x.Deposit(ctx, tenant, 1000)
	require.NoError(t, err)

	// Writes and events made before the failure are discarded with the attached value.
	_, err = x.Execute(ctx, Call{Operation: "approve_property", Caller: owner, Value: 0},
		func(ctx context.Context, reg *registry.Registry, env *Env) error {
			if err := approve(ctx, reg, env); err != nil {
				return err
			}
			return registry.ErrNotEnoughRights
		})
	require.ErrorIs(t, err, registry.ErrNotEnoughRights)

	var count int64
	require.NoError(t, db.Model(&domain.Event{}).Count(&count).Error)
	assert.Zero(t, count)
	var landlords int64
	require.NoError(t, db.Model(&domain.PropertyLandlord{}).Count(&landlords).Error)
	assert.Zero(t, landlords)

	_, err = x.Execute(ctx, Call{Operation: "pay_rent", Caller: tenant, Value: 600},
		func(ctx context.Context, reg *registry.Registry, env *Env) error {
			return reg.PayRent(ctx, env, 1)
		})
	require.ErrorIs(t, err, registry.ErrPriceIsntSet)
	assert.Equal(t, domain.Balance(1000), balanceOf(t, x, tenant))
	assert.Zero(t, balanceOf(t, x, contract))

	assert.Equal(t, []string{"approve_property:NotEnoughRights", "pay_rent:PriceIsntSet"}, obs.calls)
	assert.Zero(t, obs.received)
}

func TestExecute_InsufficientFunds(t *testing.T) {
	x, _, obs := setupExecutor(t)
	ran := false
	_, err := x.Execute(context.Background(), Call{Operation: "pay_rent", Caller: tenant, Value: 1},
		func(context.Context, *registry.Registry, *Env) error {
			ran = true
			return nil
		})
	assert.ErrorIs(t, err, ErrInsufficientFunds)
	assert.False(t, ran)
	assert.Equal(t, []string{"pay_rent:InsufficientFunds"}, obs.calls)
}

func TestExecute_RentSettlement(t *testing.T) {
	x, _, obs := setupExecutor(t)
	ctx := context.Background()
	_, err := x.Deposit(ctx, tenant, 30000)
	require.NoError(t, err)

	var property domain.PropertyID
	_, err = x.Execute(ctx, Call{Operation: "approve_property", Caller: owner},
		func(ctx context.Context, reg *registry.Registry, env *Env) error {
			var err error
			property, err = reg.ApproveProperty(ctx, env, landlord)
			return err
		})
	require.NoError(t, err)
	_, err = x.Execute(ctx, Call{Operation: "set_price", Caller: landlord},
		func(ctx context.Context, reg *registry.Registry, env *Env) error {
			if err := reg.SetPrice(ctx, env, property, 12000); err != nil {
				return err
			}
			return reg.ApproveTenant(ctx, env, property, tenant)
		})
	require.NoError(t, err)

	receipt, err := x.Execute(ctx, Call{Operation: "pay_rent", Caller: tenant, Value: 24000},
		func(ctx context.Context, reg *registry.Registry, env *Env) error {
			return reg.PayRent(ctx, env, property)
		})
	require.NoError(t, err)
	assert.Equal(t, domain.Balance(21600), receipt.PaidOut)
	assert.Empty(t, receipt.Events)

	assert.Equal(t, domain.Balance(6000), balanceOf(t, x, tenant))
	assert.Equal(t, domain.Balance(21600), balanceOf(t, x, landlord))
	assert.Equal(t, domain.Balance(2400), balanceOf(t, x, contract))
	assert.Equal(t, domain.Balance(24000), obs.received)
	assert.Equal(t, domain.Balance(21600), obs.paidOut)

	var ts domain.Timespan
	require.NoError(t, x.View(ctx, "", func(ctx context.Context, reg *registry.Registry, _ *Env) error {
		var err error
		ts, err = reg.Timespan(ctx, property, tenant)
		return err
	}))
	assert.Equal(t, domain.Duration(2), ts.Duration)
	assert.Equal(t, domain.Timestamp(42_000), ts.Start)
}

func TestEnv_TransferBeyondContractBalance(t *testing.T) {
	x, _, _ := setupExecutor(t)
	_, err := x.Execute(context.Background(), Call{Operation: "transfer", Caller: owner},
		func(ctx context.Context, _ *registry.Registry, env *Env) error {
			return env.Transfer(ctx, landlord, 1)
		})
	assert.ErrorIs(t, err, ErrInsufficientFunds)
}

func TestView_Balance(t *testing.T) {
	x, _, _ := setupExecutor(t)
	ctx := context.Background()
	_, err := x.Deposit(ctx, contract, 77)
	require.NoError(t, err)

	var b domain.Balance
	require.NoError(t, x.View(ctx, "", func(ctx context.Context, reg *registry.Registry, env *Env) error {
		var err error
		b, err = reg.Balance(ctx, env)
		return err
	}))
	assert.Equal(t, domain.Balance(77), b)
}

func TestObserve_InfrastructureError(t *testing.T) {
	x, _, obs := setupExecutor(t)
	_, err := x.Execute(context.Background(), Call{Operation: "noop", Caller: owner},
		func(context.Context, *registry.Registry, *Env) error {
			return errors.New("disk full")
		})
	require.Error(t, err)
	assert.Equal(t, []string{"noop:error"}, obs.calls)
}
