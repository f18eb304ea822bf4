package middleware

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"rental-registry/internal/domain"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// SessionConfig holds the session cookie options.
type SessionConfig struct {
	AllowCrossSiteDev bool
	IsProduction      bool
}

const (
	SessionCookieName  = "registry.sid"
	SessionRedisPrefix = "session:"
	sessionMaxAge      = 24 * time.Hour

	callerLocal      = "caller"
	sessionIDLocal   = "session_id"
	sessionDataLocal = "session_data"
)

// sessionData is the JSON stored under session:<id>.
type sessionData struct {
	AccountID domain.AccountID `json:"account_id,omitempty"`
	OpenedAt  time.Time        `json:"opened_at,omitempty"`
}

// Session loads the caller account of the session cookie into Locals
// and saves the session after the handler when one is bound.
func Session(rdb *redis.Client) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sessionID := c.Cookies(SessionCookieName)
		if strings.HasPrefix(sessionID, "s:") {
			sessionID = sessionID[2:]
		}

		var data sessionData
		if sessionID != "" {
			b, err := rdb.Get(c.UserContext(), SessionRedisPrefix+sessionID).Bytes()
			if err == nil {
				_ = json.Unmarshal(b, &data)
			} else if err != redis.Nil {
				log.Warn().Err(err).Msg("session: redis lookup failed")
			}
		}
		c.Locals(sessionIDLocal, sessionID)
		c.Locals(sessionDataLocal, &data)
		if data.AccountID != "" {
			c.Locals(callerLocal, data.AccountID)
		}

		if err := c.Next(); err != nil {
			return err
		}

		sid, _ := c.Locals(sessionIDLocal).(string)
		updated, _ := c.Locals(sessionDataLocal).(*sessionData)
		if sid != "" && updated != nil && updated.AccountID != "" {
			b, _ := json.Marshal(updated)
			if err := rdb.Set(context.Background(), SessionRedisPrefix+sid, b, sessionMaxAge).Err(); err != nil {
				log.Error().Err(err).Msg("session: save failed")
			}
		}
		return nil
	}
}

// GetSessionID returns the current session ID from context.
func GetSessionID(c *fiber.Ctx) string {
	sid, _ := c.Locals(sessionIDLocal).(string)
	return sid
}

// GetCaller returns the account bound to the session.
func GetCaller(c *fiber.Ctx) (domain.AccountID, bool) {
	id, ok := c.Locals(callerLocal).(domain.AccountID)
	return id, ok && id != ""
}

// SetCaller binds account to the session; it is saved after the handler returns.
func SetCaller(c *fiber.Ctx, account domain.AccountID) {
	c.Locals(sessionDataLocal, &sessionData{AccountID: account, OpenedAt: time.Now().UTC()})
	c.Locals(callerLocal, account)
}

// RegenerateSessionID creates a new session ID and sets it in Locals (cookie set by handler).
func RegenerateSessionID(c *fiber.Ctx) string {
	newID := uuid.New().String()
	c.Locals(sessionIDLocal, newID)
	return newID
}

// DestroySession clears the caller from Locals; caller must clear cookie and Redis.
func DestroySession(c *fiber.Ctx) {
	c.Locals(sessionDataLocal, &sessionData{})
	c.Locals(callerLocal, nil)
}

// SessionCookieConfig returns the session cookie options.
func SessionCookieConfig(cfg SessionConfig) fiber.Cookie {
	sameSite := "Lax"
	if cfg.AllowCrossSiteDev {
		sameSite = "None"
	}
	return fiber.Cookie{
		Name:     SessionCookieName,
		Path:     "/",
		MaxAge:   int(sessionMaxAge.Seconds()),
		HTTPOnly: true,
		Secure:   cfg.IsProduction || cfg.AllowCrossSiteDev,
		SameSite: sameSite,
	}
}
