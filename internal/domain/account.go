package domain

import "time"

// Account is a host ledger balance.
type Account struct {
	AccountID AccountID `gorm:"column:account_id;type:varchar(128);primaryKey" json:"account_id"`
	Balance   Balance   `gorm:"column:balance;not null;default:0" json:"balance"`
	CreatedAt time.Time `gorm:"column:createdAt" json:"createdAt"`
	UpdatedAt time.Time `gorm:"column:updatedAt" json:"updatedAt"`
}

func (Account) TableName() string {
	return "Accounts"
}
