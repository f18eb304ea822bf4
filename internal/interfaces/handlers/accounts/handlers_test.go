package accounts

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"rental-registry/internal/application/ledger"
	"rental-registry/internal/infrastructure/database"
	"rental-registry/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupAccountsApp(t *testing.T) *fiber.App {
	db, err := database.OpenSQLite(":memory:")
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))
	h := &Handlers{Executor: &ledger.Executor{DB: db, Contract: "registry"}}

	app := fiber.New()
	app.Get("/accounts/:id/balance", h.Balance)
	app.Post("/accounts/deposit", middleware.RequireAdminKey("secret"), h.Deposit)
	return app
}

func deposit(t *testing.T, app *fiber.App, key, body string) int {
	req := httptest.NewRequest("POST", "/accounts/deposit?key="+key, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp.StatusCode
}

func TestDeposit_RequiresKey(t *testing.T) {
	app := setupAccountsApp(t)
	assert.Equal(t, fiber.StatusForbidden, deposit(t, app, "wrong", `{"account_id":"alice","amount":10}`))
}

func TestDeposit_Validation(t *testing.T) {
	app := setupAccountsApp(t)
	assert.Equal(t, fiber.StatusBadRequest, deposit(t, app, "secret", `{"account_id":"alice"}`))
	assert.Equal(t, fiber.StatusBadRequest, deposit(t, app, "secret", `{"account_id":"alice","amount":0}`))
	assert.Equal(t, fiber.StatusBadRequest, deposit(t, app, "secret", `{"amount":5}`))
}

func TestDeposit_ThenBalance(t *testing.T) {
	app := setupAccountsApp(t)
	require.Equal(t, fiber.StatusCreated, deposit(t, app, "secret", `{"account_id":"alice","amount":700}`))
	require.Equal(t, fiber.StatusCreated, deposit(t, app, "secret", `{"account_id":"alice","amount":300}`))

	resp, err := app.Test(httptest.NewRequest("GET", "/accounts/alice/balance", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var body struct {
		Data struct {
			Balance uint64 `json:"balance"`
		} `json:"data"`
	}
	require.NoError(t, decode(resp, &body))
	assert.Equal(t, uint64(1000), body.Data.Balance)
}

func TestBalance_UnknownAccountIsZero(t *testing.T) {
	app := setupAccountsApp(t)
	resp, err := app.Test(httptest.NewRequest("GET", "/accounts/nobody/balance", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func decode(resp *http.Response, v interface{}) error {
	return json.NewDecoder(resp.Body).Decode(v)
}
