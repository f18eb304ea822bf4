package domain

import "time"

// Timespan is the Timespan-of table: one paid period per (property, tenant) pair,
// overwritten by each successful payment of that tenant.
type Timespan struct {
	PropertyID PropertyID `gorm:"column:property_id;primaryKey;autoIncrement:false" json:"property_id"`
	Tenant     AccountID  `gorm:"column:tenant;type:varchar(128);primaryKey" json:"tenant"`
	Start      Timestamp  `gorm:"column:start;not null" json:"start"`
	Duration   Duration   `gorm:"column:duration;not null" json:"duration"`
	UpdatedAt  time.Time  `gorm:"column:updatedAt" json:"updatedAt"`
}

func (Timespan) TableName() string {
	return "Timespans"
}
