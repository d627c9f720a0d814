package session

import (
	"errors"
	"net/http"
	"strings"

	"recipebox/internal/config"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// NewStore builds the session backend selected by cfg.SessionBackend.
func NewStore(cfg config.Config, rdb *redis.Client) (sessions.Store, error) {
	switch cfg.SessionBackend {
	case config.SessionBackendRedis:
		if rdb == nil {
			return nil, errors.New("redis session backend requires a redis client")
		}
		store := NewRedisStore(rdb, []byte(cfg.SessionSecret))
		store.Options(CookieOptions(cfg))
		return store, nil
	case config.SessionBackendCookie, "":
		store := cookie.NewStore([]byte(cfg.SessionSecret))
		store.Options(CookieOptions(cfg))
		return store, nil
	default:
		return nil, errors.New("unknown session backend: " + cfg.SessionBackend)
	}
}

// Middleware attaches the named session to every request.
func Middleware(cfg config.Config, store sessions.Store) gin.HandlerFunc {
	return sessions.Sessions(cfg.SessionName, store)
}

func CookieOptions(cfg config.Config) sessions.Options {
	return sessions.Options{
		Path:     "/",
		MaxAge:   cfg.SessionMaxAge,
		HttpOnly: true,
		Secure:   cfg.CookieSecure,
		SameSite: sameSiteFromString(cfg.CookieSameSite),
	}
}

func sameSiteFromString(v string) http.SameSite {
	switch strings.ToLower(v) {
	case "strict":
		return http.SameSiteStrictMode
	case "none":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteLaxMode
	}
}
