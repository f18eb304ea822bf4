package router

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"rental-registry/internal/config"
	"rental-registry/internal/infrastructure/database"
	"rental-registry/internal/middleware"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupApp(t *testing.T) *fiber.App {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		rdb.Close()
		mr.Close()
	})
	db, err := database.OpenSQLite(":memory:")
	require.NoError(t, err)

	app, err := New(&config.Config{
		Env:             "development",
		RegistryOwner:   "owner",
		ContractAccount: "registry",
		LedgerAdminKey:  "ledger-key",
		HealthAdminKey:  "health-key",
	}, db, rdb)
	require.NoError(t, err)
	return app
}

type client struct {
	t      *testing.T
	app    *fiber.App
	cookie *http.Cookie
}

func (c *client) do(method, path, body string) (int, string) {
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.cookie != nil {
		req.AddCookie(c.cookie)
	}
	resp, err := c.app.Test(req)
	require.NoError(c.t, err)
	b, err := io.ReadAll(resp.Body)
	require.NoError(c.t, err)
	for _, ck := range resp.Cookies() {
		if ck.Name == middleware.SessionCookieName {
			c.cookie = ck
		}
	}
	return resp.StatusCode, string(b)
}

func login(t *testing.T, app *fiber.App, account string) *client {
	c := &client{t: t, app: app}
	code, _ := c.do("POST", "/api/v1/session/open", `{"account_id":"`+account+`"}`)
	require.Equal(t, fiber.StatusOK, code)
	return c
}

func TestMutationsRequireSession(t *testing.T) {
	app := setupApp(t)
	anon := &client{t: t, app: app}
	code, _ := anon.do("POST", "/api/v1/registry/properties", `{"landlord":"lord"}`)
	assert.Equal(t, fiber.StatusUnauthorized, code)

	code, _ = anon.do("GET", "/api/v1/registry/properties/1/landlord", "")
	assert.Equal(t, fiber.StatusNotFound, code)
}

func TestRentFlow(t *testing.T) {
	app := setupApp(t)
	anon := &client{t: t, app: app}
	owner := login(t, app, "owner")
	lord := login(t, app, "lord")
	tenant := login(t, app, "tenant")

	code, _ := anon.do("POST", "/api/v1/accounts/deposit?key=ledger-key", `{"account_id":"tenant","amount":30000}`)
	require.Equal(t, fiber.StatusCreated, code)

	code, body := owner.do("POST", "/api/v1/registry/properties", `{"landlord":"lord"}`)
	require.Equal(t, fiber.StatusCreated, code, body)
	assert.Contains(t, body, `"property_id":1`)

	code, _ = lord.do("PUT", "/api/v1/registry/properties/1/price", `{"price":12000}`)
	require.Equal(t, fiber.StatusOK, code)
	code, _ = lord.do("PUT", "/api/v1/registry/properties/1/tenant", `{"tenant":"tenant"}`)
	require.Equal(t, fiber.StatusOK, code)

	code, body = tenant.do("POST", "/api/v1/registry/properties/1/rent", `{"value":24000}`)
	require.Equal(t, fiber.StatusOK, code, body)
	assert.Contains(t, body, `"duration":2`)

	code, body = anon.do("GET", "/api/v1/accounts/lord/balance", "")
	require.Equal(t, fiber.StatusOK, code)
	assert.Contains(t, body, `"balance":21600`)
	code, body = anon.do("GET", "/api/v1/registry/balance", "")
	require.Equal(t, fiber.StatusOK, code)
	assert.Contains(t, body, `"balance":2400`)

	code, body = anon.do("GET", "/metrics", "")
	require.Equal(t, fiber.StatusOK, code)
	assert.Contains(t, body, `rental_registry_calls_total{operation="pay_rent",outcome="ok"} 1`)
	assert.Contains(t, body, `rental_registry_landlord_payout_total 21600`)
}

func TestAdminKeys(t *testing.T) {
	app := setupApp(t)
	anon := &client{t: t, app: app}
	code, _ := anon.do("POST", "/api/v1/accounts/deposit?key=wrong", `{"account_id":"a","amount":1}`)
	assert.Equal(t, fiber.StatusForbidden, code)
	code, _ = anon.do("GET", "/reset?key=ledger-key", "")
	assert.Equal(t, fiber.StatusForbidden, code)
	code, _ = anon.do("GET", "/reset?key=health-key", "")
	assert.Equal(t, fiber.StatusOK, code)
}

func TestHealthJSON(t *testing.T) {
	app := setupApp(t)
	anon := &client{t: t, app: app}
	code, body := anon.do("GET", "/health/json", "")
	require.Equal(t, fiber.StatusOK, code)
	assert.Contains(t, body, `"service":"rental-registry"`)
	assert.Contains(t, body, `"status":"ok"`)
}
