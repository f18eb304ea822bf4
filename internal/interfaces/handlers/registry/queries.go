package registry

import (
	"context"
	"strconv"

	evsvc "rental-registry/internal/application/events"
	"rental-registry/internal/application/ledger"
	regsvc "rental-registry/internal/application/registry"
	"rental-registry/internal/domain"
	"rental-registry/internal/middleware"
	"rental-registry/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

func (h *Handlers) view(c *fiber.Ctx, fn func(ctx context.Context, reg *regsvc.Registry, env *ledger.Env) error) error {
	caller, _ := middleware.GetCaller(c)
	return h.Executor.View(c.UserContext(), caller, fn)
}

// GetLandlord GET /api/v1/registry/properties/:id/landlord
func (h *Handlers) GetLandlord(c *fiber.Ctx) error {
	property, err := domain.ParsePropertyID(c.Params("id"))
	if err != nil {
		return Fail(c, err)
	}
	var landlord domain.AccountID
	if err := h.view(c, func(ctx context.Context, reg *regsvc.Registry, _ *ledger.Env) error {
		landlord, err = reg.Landlord(ctx, property)
		return err
	}); err != nil {
		return Fail(c, err)
	}
	return response.Success(c, "Landlord found", fiber.Map{"property_id": property, "landlord": landlord}, nil)
}

// GetPrice GET /api/v1/registry/properties/:id/price
func (h *Handlers) GetPrice(c *fiber.Ctx) error {
	property, err := domain.ParsePropertyID(c.Params("id"))
	if err != nil {
		return Fail(c, err)
	}
	var price domain.Balance
	if err := h.view(c, func(ctx context.Context, reg *regsvc.Registry, _ *ledger.Env) error {
		price, err = reg.Price(ctx, property)
		return err
	}); err != nil {
		return Fail(c, err)
	}
	return response.Success(c, "Price found", fiber.Map{"property_id": property, "price": price}, nil)
}

// GetTenant GET /api/v1/registry/properties/:id/tenant
func (h *Handlers) GetTenant(c *fiber.Ctx) error {
	property, err := domain.ParsePropertyID(c.Params("id"))
	if err != nil {
		return Fail(c, err)
	}
	var tenant domain.AccountID
	if err := h.view(c, func(ctx context.Context, reg *regsvc.Registry, _ *ledger.Env) error {
		tenant, err = reg.Tenant(ctx, property)
		return err
	}); err != nil {
		return Fail(c, err)
	}
	return response.Success(c, "Tenant found", fiber.Map{"property_id": property, "tenant": tenant}, nil)
}

// GetTimespan GET /api/v1/registry/properties/:id/timespans/:tenant
func (h *Handlers) GetTimespan(c *fiber.Ctx) error {
	property, err := domain.ParsePropertyID(c.Params("id"))
	if err != nil {
		return Fail(c, err)
	}
	tenant, err := domain.ParseAccountID(c.Params("tenant"))
	if err != nil {
		return Fail(c, err)
	}
	var ts domain.Timespan
	if err := h.view(c, func(ctx context.Context, reg *regsvc.Registry, _ *ledger.Env) error {
		ts, err = reg.Timespan(ctx, property, tenant)
		return err
	}); err != nil {
		return Fail(c, err)
	}
	return response.Success(c, "Timespan found", fiber.Map{
		"property_id": ts.PropertyID,
		"tenant":      ts.Tenant,
		"start":       ts.Start,
		"duration":    ts.Duration,
	}, nil)
}

// GetBalance GET /api/v1/registry/balance: funds held by the registry account.
func (h *Handlers) GetBalance(c *fiber.Ctx) error {
	var balance domain.Balance
	if err := h.view(c, func(ctx context.Context, reg *regsvc.Registry, env *ledger.Env) error {
		var err error
		balance, err = reg.Balance(ctx, env)
		return err
	}); err != nil {
		return Fail(c, err)
	}
	return response.Success(c, "Registry balance", fiber.Map{"account": h.Executor.Contract, "balance": balance}, nil)
}

// GetEvents GET /api/v1/registry/events?property=&type=&limit=
func (h *Handlers) GetEvents(c *fiber.Ctx) error {
	var f evsvc.Filter
	if p := c.Query("property"); p != "" {
		property, err := domain.ParsePropertyID(p)
		if err != nil {
			return Fail(c, err)
		}
		f.PropertyID = &property
	}
	switch t := c.Query("type"); t {
	case "", domain.EventPropertyApproved, domain.EventTenantApproved, domain.EventPriceSet:
		f.EventType = t
	default:
		return response.Error(c, "Unknown event type", fiber.StatusBadRequest, nil)
	}
	if l := c.Query("limit"); l != "" {
		n, err := strconv.Atoi(l)
		if err != nil || n <= 0 {
			return response.Error(c, "limit must be a positive integer", fiber.StatusBadRequest, nil)
		}
		f.Limit = n
	}

	events, err := h.Events.List(c.UserContext(), f)
	if err != nil {
		return Fail(c, err)
	}
	return response.Success(c, "Events found", events, fiber.Map{"count": len(events)})
}
