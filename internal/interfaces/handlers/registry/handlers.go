package registry

import (
	"context"

	evsvc "rental-registry/internal/application/events"
	"rental-registry/internal/application/ledger"
	regsvc "rental-registry/internal/application/registry"
	"rental-registry/internal/domain"
	"rental-registry/internal/middleware"
	"rental-registry/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// Operation names recorded on receipts and metrics.
const (
	OpApproveProperty = "approve_property"
	OpRemoveProperty  = "remove_property"
	OpSetPrice        = "set_price"
	OpApproveTenant   = "approve_tenant"
	OpPayRent         = "pay_rent"
)

type Handlers struct {
	Executor *ledger.Executor
	Events   *evsvc.Service
}

func receiptMeta(r *ledger.Receipt) fiber.Map {
	return fiber.Map{"receipt": r}
}

// ApproveProperty POST /api/v1/registry/properties {landlord}
func (h *Handlers) ApproveProperty(c *fiber.Ctx) error {
	caller, _ := middleware.GetCaller(c)
	var body struct {
		Landlord string `json:"landlord"`
	}
	if err := c.BodyParser(&body); err != nil {
		return response.Error(c, "landlord is required", fiber.StatusBadRequest, nil)
	}
	landlord, err := domain.ParseAccountID(body.Landlord)
	if err != nil {
		return response.Error(c, "landlord is required", fiber.StatusBadRequest, nil)
	}

	var property domain.PropertyID
	receipt, err := h.Executor.Execute(c.UserContext(), ledger.Call{Operation: OpApproveProperty, Caller: caller},
		func(ctx context.Context, reg *regsvc.Registry, env *ledger.Env) error {
			var err error
			property, err = reg.ApproveProperty(ctx, env, landlord)
			return err
		})
	if err != nil {
		return Fail(c, err)
	}
	return response.SuccessCreated(c, "Property approved", fiber.Map{
		"property_id": property,
		"landlord":    landlord,
	}, receiptMeta(receipt))
}

// RemoveProperty DELETE /api/v1/registry/properties/:id
func (h *Handlers) RemoveProperty(c *fiber.Ctx) error {
	caller, _ := middleware.GetCaller(c)
	property, err := domain.ParsePropertyID(c.Params("id"))
	if err != nil {
		return Fail(c, err)
	}
	receipt, err := h.Executor.Execute(c.UserContext(), ledger.Call{Operation: OpRemoveProperty, Caller: caller},
		func(ctx context.Context, reg *regsvc.Registry, env *ledger.Env) error {
			return reg.RemoveProperty(ctx, env, property)
		})
	if err != nil {
		return Fail(c, err)
	}
	return response.Success(c, "Property removed", fiber.Map{"property_id": property}, receiptMeta(receipt))
}

// SetPrice PUT /api/v1/registry/properties/:id/price {price}
func (h *Handlers) SetPrice(c *fiber.Ctx) error {
	caller, _ := middleware.GetCaller(c)
	property, err := domain.ParsePropertyID(c.Params("id"))
	if err != nil {
		return Fail(c, err)
	}
	var body struct {
		Price *domain.Balance `json:"price"`
	}
	if err := c.BodyParser(&body); err != nil || body.Price == nil {
		return response.Error(c, "price must be a non-negative integer", fiber.StatusBadRequest, nil)
	}
	price := *body.Price

	receipt, err := h.Executor.Execute(c.UserContext(), ledger.Call{Operation: OpSetPrice, Caller: caller},
		func(ctx context.Context, reg *regsvc.Registry, env *ledger.Env) error {
			return reg.SetPrice(ctx, env, property, price)
		})
	if err != nil {
		return Fail(c, err)
	}
	return response.Success(c, "Price set", fiber.Map{"property_id": property, "price": price}, receiptMeta(receipt))
}

// ApproveTenant PUT /api/v1/registry/properties/:id/tenant {tenant}
func (h *Handlers) ApproveTenant(c *fiber.Ctx) error {
	caller, _ := middleware.GetCaller(c)
	property, err := domain.ParsePropertyID(c.Params("id"))
	if err != nil {
		return Fail(c, err)
	}
	var body struct {
		Tenant string `json:"tenant"`
	}
	if err := c.BodyParser(&body); err != nil {
		return response.Error(c, "tenant is required", fiber.StatusBadRequest, nil)
	}
	tenant, err := domain.ParseAccountID(body.Tenant)
	if err != nil {
		return response.Error(c, "tenant is required", fiber.StatusBadRequest, nil)
	}

	receipt, err := h.Executor.Execute(c.UserContext(), ledger.Call{Operation: OpApproveTenant, Caller: caller},
		func(ctx context.Context, reg *regsvc.Registry, env *ledger.Env) error {
			return reg.ApproveTenant(ctx, env, property, tenant)
		})
	if err != nil {
		return Fail(c, err)
	}
	return response.Success(c, "Tenant approved", fiber.Map{"property_id": property, "tenant": tenant}, receiptMeta(receipt))
}

// PayRent POST /api/v1/registry/properties/:id/rent {value}
// value is moved from the caller to the registry account for the duration of the call.
func (h *Handlers) PayRent(c *fiber.Ctx) error {
	caller, _ := middleware.GetCaller(c)
	property, err := domain.ParsePropertyID(c.Params("id"))
	if err != nil {
		return Fail(c, err)
	}
	var body struct {
		Value domain.Balance `json:"value"`
	}
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&body); err != nil {
			return response.Error(c, "value must be a non-negative integer", fiber.StatusBadRequest, nil)
		}
	}

	var ts domain.Timespan
	receipt, err := h.Executor.Execute(c.UserContext(), ledger.Call{Operation: OpPayRent, Caller: caller, Value: body.Value},
		func(ctx context.Context, reg *regsvc.Registry, env *ledger.Env) error {
			if err := reg.PayRent(ctx, env, property); err != nil {
				return err
			}
			var err error
			ts, err = reg.Timespan(ctx, property, caller)
			return err
		})
	if err != nil {
		return Fail(c, err)
	}
	return response.Success(c, "Rent paid", fiber.Map{
		"property_id": property,
		"tenant":      caller,
		"start":       ts.Start,
		"duration":    ts.Duration,
		"payout":      receipt.PaidOut,
	}, receiptMeta(receipt))
}
