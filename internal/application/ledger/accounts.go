package ledger

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"rental-registry/internal/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrInsufficientFunds = errors.New("Insufficient funds")
	ErrBalanceOverflow   = errors.New("Balance overflow")
)

// maxBalance is the largest balance the accounts table can hold.
const maxBalance = math.MaxInt64

// Accounts reads and moves host ledger balances.
type Accounts struct {
	DB *gorm.DB
}

// Balance returns the balance of id; unknown accounts hold zero.
func (a *Accounts) Balance(ctx context.Context, id domain.AccountID) (domain.Balance, error) {
	var acct domain.Account
	if err := a.DB.WithContext(ctx).Where("account_id = ?", id).First(&acct).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil
		}
		return 0, fmt.Errorf("load account %s: %w", id, err)
	}
	return acct.Balance, nil
}

// Credit adds amount to id, creating the account on first credit. Insert and
// increment are one upsert, so concurrent first credits to the same account
// both land. A credit past maxBalance affects no row and fails with ErrBalanceOverflow.
func (a *Accounts) Credit(ctx context.Context, id domain.AccountID, amount domain.Balance) error {
	if amount == 0 {
		return nil
	}
	if amount > maxBalance {
		return ErrBalanceOverflow
	}
	res := a.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "account_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"balance":   gorm.Expr(`"Accounts".balance + excluded.balance`),
			"updatedAt": time.Now(),
		}),
		Where: clause.Where{Exprs: []clause.Expression{
			clause.Expr{SQL: `"Accounts".balance <= ?`, Vars: []interface{}{domain.Balance(maxBalance) - amount}},
		}},
	}).Create(&domain.Account{AccountID: id, Balance: amount})
	if res.Error != nil {
		return fmt.Errorf("credit account %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrBalanceOverflow
	}
	return nil
}

// Debit removes amount from id, failing with ErrInsufficientFunds when it can't cover it.
func (a *Accounts) Debit(ctx context.Context, id domain.AccountID, amount domain.Balance) error {
	if amount == 0 {
		return nil
	}
	if amount > maxBalance {
		return ErrInsufficientFunds
	}
	res := a.DB.WithContext(ctx).Model(&domain.Account{}).
		Where("account_id = ? AND balance >= ?", id, amount).
		Update("balance", gorm.Expr("balance - ?", amount))
	if res.Error != nil {
		return fmt.Errorf("debit account %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrInsufficientFunds
	}
	return nil
}

// Move debits from and credits to. Run it inside a transaction.
func (a *Accounts) Move(ctx context.Context, from, to domain.AccountID, amount domain.Balance) error {
	if err := a.Debit(ctx, from, amount); err != nil {
		return err
	}
	return a.Credit(ctx, to, amount)
}
