package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	EventPropertyApproved = "PropertyApproved"
	EventTenantApproved   = "TenantApproved"
	EventPriceSet         = "PriceSet"
)

// Event is a persisted registry notification. Only events of committed calls are stored.
type Event struct {
	EventID    uuid.UUID      `gorm:"column:event_id;type:uuid;primaryKey" json:"event_id"`
	Seq        int            `gorm:"column:seq;not null" json:"seq"`
	EventType  string         `gorm:"column:event_type;type:varchar(32);not null" json:"event_type"`
	PropertyID PropertyID     `gorm:"column:property_id;not null;index" json:"property_id"`
	Caller     AccountID      `gorm:"column:caller;type:varchar(128);not null" json:"caller"`
	BlockTime  Timestamp      `gorm:"column:block_time;not null" json:"block_time"`
	EventData  datatypes.JSON `gorm:"column:event_data;type:json" json:"event_data"`
	CreatedAt  time.Time      `gorm:"column:createdAt" json:"createdAt"`
}

func (Event) TableName() string {
	return "Events"
}

func (e *Event) BeforeCreate(tx *gorm.DB) error {
	if e.EventID == uuid.Nil {
		e.EventID = uuid.New()
	}
	return nil
}
