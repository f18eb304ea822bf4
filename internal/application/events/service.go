package events

import (
	"context"
	"fmt"

	"rental-registry/internal/domain"

	"gorm.io/gorm"
)

// DefaultLimit caps event listings when no limit is given.
const DefaultLimit = 100

type Service struct {
	DB *gorm.DB
}

// Filter selects persisted events. Nil and zero values match everything.
type Filter struct {
	PropertyID *domain.PropertyID
	EventType  string
	Limit      int
}

// List returns committed events in emission order.
func (s *Service) List(ctx context.Context, f Filter) ([]domain.Event, error) {
	q := s.DB.WithContext(ctx).Model(&domain.Event{})
	if f.PropertyID != nil {
		q = q.Where("property_id = ?", *f.PropertyID)
	}
	if f.EventType != "" {
		q = q.Where("event_type = ?", f.EventType)
	}
	limit := f.Limit
	if limit <= 0 || limit > DefaultLimit {
		limit = DefaultLimit
	}
	var out []domain.Event
	if err := q.Order("block_time ASC").Order(`"createdAt" ASC`).Order("seq ASC").Limit(limit).Find(&out).Error; err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return out, nil
}
