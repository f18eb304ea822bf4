package session

import (
	"context"

	"rental-registry/internal/domain"
	"rental-registry/internal/middleware"
	"rental-registry/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const accountSessionsPrefix = "account_sessions:"

// Handlers binds caller accounts to Redis sessions. Proving ownership of the
// account is left to the host in front of this service.
type Handlers struct {
	Rdb    *redis.Client
	Config middleware.SessionConfig
}

type OpenRequest struct {
	AccountID string `json:"account_id"`
}

// Open POST /api/v1/session/open: new session id, SAdd account_sessions:<id>, set cookie.
func (h *Handlers) Open(c *fiber.Ctx) error {
	var req OpenRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, "account_id is required", fiber.StatusBadRequest, nil)
	}
	account, err := domain.ParseAccountID(req.AccountID)
	if err != nil {
		return response.Error(c, "account_id is required", fiber.StatusBadRequest, nil)
	}

	ctx := context.Background()
	if old := middleware.GetSessionID(c); old != "" {
		if prev, ok := middleware.GetCaller(c); ok {
			_ = h.Rdb.SRem(ctx, accountSessionsPrefix+prev.String(), old).Err()
		}
		_ = h.Rdb.Del(ctx, middleware.SessionRedisPrefix+old).Err()
	}

	sessionID := middleware.RegenerateSessionID(c)
	middleware.SetCaller(c, account)
	if err := h.Rdb.SAdd(ctx, accountSessionsPrefix+account.String(), sessionID).Err(); err != nil {
		log.Error().Err(err).Msg("session/open: track session failed")
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}

	cookie := middleware.SessionCookieConfig(h.Config)
	cookie.Value = "s:" + sessionID
	c.Cookie(&cookie)

	return response.Success(c, "Session opened", fiber.Map{"account_id": account}, nil)
}

// Me GET /api/v1/session/me
func (h *Handlers) Me(c *fiber.Ctx) error {
	account, ok := middleware.GetCaller(c)
	if !ok {
		log.Debug().Bool("cookie_present", c.Cookies(middleware.SessionCookieName) != "").
			Msg("session/me: no caller bound")
		return response.Unauthorized(c, "Not authenticated")
	}
	return response.Success(c, "Authenticated", fiber.Map{"account_id": account}, nil)
}

// Close DELETE /api/v1/session/close: SRem, Del session key, clear cookie.
func (h *Handlers) Close(c *fiber.Ctx) error {
	sessionID := middleware.GetSessionID(c)
	ctx := context.Background()

	if account, ok := middleware.GetCaller(c); ok && sessionID != "" {
		_ = h.Rdb.SRem(ctx, accountSessionsPrefix+account.String(), sessionID).Err()
	}
	if sessionID != "" {
		_ = h.Rdb.Del(ctx, middleware.SessionRedisPrefix+sessionID).Err()
	}
	middleware.DestroySession(c)

	cookie := middleware.SessionCookieConfig(h.Config)
	cookie.Value = ""
	cookie.MaxAge = -1
	c.Cookie(&cookie)

	return response.Success(c, "Session closed", nil, nil)
}

// CloseAll DELETE /api/v1/session/all: ends every session of the caller.
func (h *Handlers) CloseAll(c *fiber.Ctx) error {
	account, ok := middleware.GetCaller(c)
	if !ok {
		return response.Unauthorized(c, "Not authenticated")
	}
	n := destroyAccountSessions(context.Background(), h.Rdb, account)
	middleware.DestroySession(c)

	cookie := middleware.SessionCookieConfig(h.Config)
	cookie.Value = ""
	cookie.MaxAge = -1
	c.Cookie(&cookie)

	return response.Success(c, "All sessions closed", fiber.Map{"closed": n}, nil)
}

// destroyAccountSessions deletes each session:<sid> of account and its
// account_sessions set. Returns the number of sessions removed.
func destroyAccountSessions(ctx context.Context, rdb *redis.Client, account domain.AccountID) int {
	key := accountSessionsPrefix + account.String()
	sessionIDs, err := rdb.SMembers(ctx, key).Result()
	if err != nil {
		log.Warn().Err(err).Str("account", account.String()).Msg("session: list sessions failed")
	}
	keys := make([]string, 0, len(sessionIDs)+1)
	for _, sid := range sessionIDs {
		keys = append(keys, middleware.SessionRedisPrefix+sid)
	}
	keys = append(keys, key)
	_ = rdb.Del(ctx, keys...).Err()
	return len(sessionIDs)
}
