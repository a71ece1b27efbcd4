package middleware

import (
    "net/http"
    "time"

    "github.com/labstack/echo/v4"
    "go.uber.org/zap"

    "github.com/iliyamo/car-rental-reservation/internal/utils"
)

// SessionCookie is the name of the cookie carrying the signed session token.
const SessionCookie = "carrental_session"

// ContextSessionKey is where Session stores the session id in echo.Context.
const ContextSessionKey = "session_id"

// SessionOptions configures the Session middleware.
type SessionOptions struct {
    TTL    time.Duration
    Secure bool // mark the cookie Secure (HTTPS only)
    Logger *zap.Logger
}

// Session makes every request belong to a renter session.  A valid cookie
// is reused; a missing or invalid one is replaced by a new session, which
// starts with empty storage.
func Session(secret string, opts SessionOptions) echo.MiddlewareFunc {
    logger := opts.Logger
    if logger == nil {
        logger = zap.NewNop()
    }
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            if ck, err := c.Cookie(SessionCookie); err == nil && ck.Value != "" {
                if id, err := utils.ParseSessionToken(secret, ck.Value); err == nil {
                    c.Set(ContextSessionKey, id)
                    return next(c)
                }
                logger.Debug("discarding invalid session cookie")
            }
            id := utils.NewSessionID()
            tok, err := utils.NewSessionToken(secret, id, opts.TTL)
            if err != nil {
                logger.Error("sign session token", zap.Error(err))
                return c.JSON(http.StatusInternalServerError, echo.Map{"error": "session unavailable"})
            }
            c.SetCookie(&http.Cookie{
                Name:     SessionCookie,
                Value:    tok.Token,
                Path:     "/",
                Expires:  tok.Exp,
                HttpOnly: true,
                Secure:   opts.Secure,
                SameSite: http.SameSiteLaxMode,
            })
            c.Set(ContextSessionKey, id)
            return next(c)
        }
    }
}

// SessionID returns the session id set by Session, or "" outside it.
func SessionID(c echo.Context) string {
    if s, ok := c.Get(ContextSessionKey).(string); ok {
        return s
    }
    return ""
}
