package domain

import "time"

// PropertyLandlord is the Landlord-of table. A row existing means the property exists.
type PropertyLandlord struct {
	PropertyID PropertyID `gorm:"column:property_id;primaryKey;autoIncrement:false" json:"property_id"`
	Landlord   AccountID  `gorm:"column:landlord;type:varchar(128);not null;index" json:"landlord"`
	CreatedAt  time.Time  `gorm:"column:createdAt" json:"createdAt"`
}

func (PropertyLandlord) TableName() string {
	return "Landlords"
}

// PropertyTenant is the Tenant-of table: at most one approved tenant per property.
type PropertyTenant struct {
	PropertyID PropertyID `gorm:"column:property_id;primaryKey;autoIncrement:false" json:"property_id"`
	Tenant     AccountID  `gorm:"column:tenant;type:varchar(128);not null;index" json:"tenant"`
	UpdatedAt  time.Time  `gorm:"column:updatedAt" json:"updatedAt"`
}

func (PropertyTenant) TableName() string {
	return "Tenants"
}

// PropertyPrice is the Price-of table (price per month).
type PropertyPrice struct {
	PropertyID PropertyID `gorm:"column:property_id;primaryKey;autoIncrement:false" json:"property_id"`
	Price      Balance    `gorm:"column:price;not null" json:"price"`
	UpdatedAt  time.Time  `gorm:"column:updatedAt" json:"updatedAt"`
}

func (PropertyPrice) TableName() string {
	return "Prices"
}

// PropertyShare is the Shares-of table. Reserved for fractional ownership;
// migrated but not read or written by any registry operation.
type PropertyShare struct {
	PropertyID PropertyID `gorm:"column:property_id;primaryKey;autoIncrement:false" json:"property_id"`
	Account    AccountID  `gorm:"column:account;type:varchar(128);primaryKey" json:"account"`
	Share      uint64     `gorm:"column:share;not null;default:0" json:"share"`
}

func (PropertyShare) TableName() string {
	return "Shares"
}
