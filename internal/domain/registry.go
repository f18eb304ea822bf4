package domain

import "time"

// RegistryStateID is the primary key of the singleton state row.
const RegistryStateID = 1

// RegistryState holds the registry Owner and the last issued property id.
// Owner is written once at construction.
type RegistryState struct {
	ID             uint       `gorm:"column:id;primaryKey" json:"id"`
	Owner          AccountID  `gorm:"column:owner;type:varchar(128);not null" json:"owner"`
	LastPropertyID PropertyID `gorm:"column:last_property_id;not null;default:0" json:"last_property_id"`
	CreatedAt      time.Time  `gorm:"column:createdAt" json:"createdAt"`
	UpdatedAt      time.Time  `gorm:"column:updatedAt" json:"updatedAt"`
}

func (RegistryState) TableName() string {
	return "RegistryState"
}
