package events

import (
	"context"
	"testing"
	"time"

	"rental-registry/internal/domain"
	"rental-registry/internal/infrastructure/database"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seed(t *testing.T) *Service {
	db, err := database.OpenSQLite(":memory:")
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	rows := []domain.Event{
		{Seq: 0, EventType: domain.EventPropertyApproved, PropertyID: 1, Caller: "owner", BlockTime: 100, CreatedAt: base},
		{Seq: 0, EventType: domain.EventPriceSet, PropertyID: 1, Caller: "landlord", BlockTime: 200, CreatedAt: base.Add(time.Second)},
		{Seq: 1, EventType: domain.EventTenantApproved, PropertyID: 1, Caller: "landlord", BlockTime: 200, CreatedAt: base.Add(time.Second)},
		{Seq: 0, EventType: domain.EventPropertyApproved, PropertyID: 2, Caller: "owner", BlockTime: 300, CreatedAt: base.Add(2 * time.Second)},
	}
	require.NoError(t, db.Create(&rows).Error)
	return &Service{DB: db}
}

func propertyID(id domain.PropertyID) *domain.PropertyID {
	return &id
}

func types(events []domain.Event) []string {
	out := make([]string, len(events))
	for i, e := range events {
		out[i] = e.EventType
	}
	return out
}

func TestList_EmissionOrder(t *testing.T) {
	s := seed(t)
	got, err := s.List(context.Background(), Filter{PropertyID: propertyID(1)})
	require.NoError(t, err)
	assert.Equal(t, []string{domain.EventPropertyApproved, domain.EventPriceSet, domain.EventTenantApproved}, types(got))
}

func TestList_Filters(t *testing.T) {
	s := seed(t)
	ctx := context.Background()

	got, err := s.List(ctx, Filter{EventType: domain.EventPropertyApproved})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, domain.PropertyID(2), got[1].PropertyID)

	got, err = s.List(ctx, Filter{Limit: 1})
	require.NoError(t, err)
	assert.Len(t, got, 1)

	got, err = s.List(ctx, Filter{PropertyID: propertyID(9)})
	require.NoError(t, err)
	assert.Empty(t, got)
}
