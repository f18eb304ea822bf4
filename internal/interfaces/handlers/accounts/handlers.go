package accounts

import (
	"rental-registry/internal/application/ledger"
	"rental-registry/internal/domain"
	"rental-registry/internal/interfaces/handlers/registry"
	"rental-registry/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

type Handlers struct {
	Executor *ledger.Executor
}

type DepositRequest struct {
	AccountID string          `json:"account_id"`
	Amount    *domain.Balance `json:"amount"`
}

// Balance GET /api/v1/accounts/:id/balance
func (h *Handlers) Balance(c *fiber.Ctx) error {
	account, err := domain.ParseAccountID(c.Params("id"))
	if err != nil {
		return registry.Fail(c, err)
	}
	balance, err := h.Executor.AccountBalance(c.UserContext(), account)
	if err != nil {
		return registry.Fail(c, err)
	}
	return response.Success(c, "Account balance", fiber.Map{"account_id": account, "balance": balance}, nil)
}

// Deposit POST /api/v1/accounts/deposit?key=: operator faucet.
func (h *Handlers) Deposit(c *fiber.Ctx) error {
	var req DepositRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, "account_id and amount are required", fiber.StatusBadRequest, nil)
	}
	account, err := domain.ParseAccountID(req.AccountID)
	if err != nil || req.Amount == nil || *req.Amount == 0 {
		return response.Error(c, "account_id and amount are required", fiber.StatusBadRequest, nil)
	}
	balance, err := h.Executor.Deposit(c.UserContext(), account, *req.Amount)
	if err != nil {
		return registry.Fail(c, err)
	}
	return response.SuccessCreated(c, "Deposit credited", fiber.Map{"account_id": account, "balance": balance}, nil)
}
