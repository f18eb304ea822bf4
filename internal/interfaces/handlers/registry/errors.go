package registry

import (
	"errors"

	"rental-registry/internal/application/ledger"
	regsvc "rental-registry/internal/application/registry"
	"rental-registry/internal/domain"
	"rental-registry/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

var statusMap = []struct {
	err  error
	code int
	kind string
}{
	{regsvc.ErrNotEnoughRights, fiber.StatusForbidden, ""},
	{regsvc.ErrNotApprovedTenant, fiber.StatusForbidden, ""},
	{regsvc.ErrPropertyDoesntExist, fiber.StatusNotFound, ""},
	{regsvc.ErrPriceIsntSet, fiber.StatusNotFound, ""},
	{regsvc.ErrNoApprovedTenant, fiber.StatusNotFound, ""},
	{regsvc.ErrTimespanDoesntExist, fiber.StatusNotFound, ""},
	{regsvc.ErrUnsufficientRent, fiber.StatusPaymentRequired, ""},
	{regsvc.ErrFailedTransferFunds, fiber.StatusBadGateway, ""},
	{regsvc.ErrNumericOverflow, fiber.StatusUnprocessableEntity, ""},
	{ledger.ErrInsufficientFunds, fiber.StatusPaymentRequired, "InsufficientFunds"},
	{ledger.ErrBalanceOverflow, fiber.StatusUnprocessableEntity, "BalanceOverflow"},
	{domain.ErrInvalidPropertyID, fiber.StatusBadRequest, "InvalidInput"},
	{domain.ErrInvalidAccountID, fiber.StatusBadRequest, "InvalidInput"},
}

// Fail writes err in the standard error format with its taxonomy kind in details.
// Errors outside the taxonomy become 500 without leaking their message.
func Fail(c *fiber.Ctx, err error) error {
	for _, s := range statusMap {
		if errors.Is(err, s.err) {
			kind := s.kind
			if kind == "" {
				kind = regsvc.Kind(err)
			}
			return response.Error(c, s.err.Error(), s.code, fiber.Map{"kind": kind})
		}
	}
	log.Error().Err(err).Str("path", c.Path()).Msg("registry: unexpected failure")
	return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
}
