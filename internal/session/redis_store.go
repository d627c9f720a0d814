package session

import (
	"context"
	"errors"
	"net/http"
	"time"

	"recipebox/pkg/utils"

	"github.com/gin-contrib/sessions"
	gsessions "github.com/gorilla/sessions"
	"github.com/gorilla/securecookie"
	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "session:"

// regenerateKey asks Save to drop the current record and issue a new session id.
type regenerateKey struct{}

// loadErrorKey carries a failed record lookup to the session's reader.
type loadErrorKey struct{}

// RedisStore keeps session values in Redis. The cookie only carries the signed session id.
type RedisStore struct {
	rdb     *redis.Client
	codecs  []securecookie.Codec
	options *gsessions.Options
	encoder securecookie.GobEncoder
}

var _ sessions.Store = (*RedisStore)(nil)

func NewRedisStore(rdb *redis.Client, keyPairs ...[]byte) *RedisStore {
	s := &RedisStore{
		rdb:    rdb,
		codecs: securecookie.CodecsFromPairs(keyPairs...),
		options: &gsessions.Options{
			Path:   "/",
			MaxAge: 86400,
		},
	}
	s.setCodecMaxAge(s.options.MaxAge)
	return s
}

// Options implements sessions.Store.
func (s *RedisStore) Options(opts sessions.Options) {
	s.options = &gsessions.Options{
		Path:     opts.Path,
		Domain:   opts.Domain,
		MaxAge:   opts.MaxAge,
		Secure:   opts.Secure,
		HttpOnly: opts.HttpOnly,
		SameSite: opts.SameSite,
	}
	s.setCodecMaxAge(opts.MaxAge)
}

func (s *RedisStore) setCodecMaxAge(age int) {
	for _, c := range s.codecs {
		if codec, ok := c.(*securecookie.SecureCookie); ok {
			codec.MaxAge(age)
		}
	}
}

func (s *RedisStore) Get(r *http.Request, name string) (*gsessions.Session, error) {
	return gsessions.GetRegistry(r).Get(s, name)
}

// New returns the session named by the request cookie, or a fresh one. A cookie that
// fails verification or points at an expired record yields a new, empty session. A Redis
// failure is stored in the session values under loadErrorKey.
func (s *RedisStore) New(r *http.Request, name string) (*gsessions.Session, error) {
	session := gsessions.NewSession(s, name)
	opts := *s.options
	session.Options = &opts
	session.IsNew = true

	c, err := r.Cookie(name)
	if err != nil {
		return session, nil
	}
	if err := securecookie.DecodeMulti(name, c.Value, &session.ID, s.codecs...); err != nil {
		return session, err
	}

	found, err := s.load(r.Context(), session)
	if err != nil {
		session.Values[loadErrorKey{}] = err
		return session, nil
	}
	if !found {
		session.ID = ""
		return session, nil
	}
	session.IsNew = false
	return session, nil
}

// Save writes the values to Redis and refreshes the cookie. A negative MaxAge deletes
// the record and expires the cookie.
func (s *RedisStore) Save(r *http.Request, w http.ResponseWriter, session *gsessions.Session) error {
	delete(session.Values, loadErrorKey{})

	if _, ok := session.Values[regenerateKey{}]; ok {
		delete(session.Values, regenerateKey{})
		if session.ID != "" {
			if err := s.rdb.Del(r.Context(), redisKeyPrefix+session.ID).Err(); err != nil {
				return err
			}
			session.ID = ""
		}
	}

	if session.Options.MaxAge < 0 {
		if session.ID != "" {
			if err := s.rdb.Del(r.Context(), redisKeyPrefix+session.ID).Err(); err != nil {
				return err
			}
		}
		http.SetCookie(w, gsessions.NewCookie(session.Name(), "", session.Options))
		return nil
	}

	if session.ID == "" {
		session.ID = utils.GenerateSessionID()
	}
	if err := s.save(r.Context(), session); err != nil {
		return err
	}

	encoded, err := securecookie.EncodeMulti(session.Name(), session.ID, s.codecs...)
	if err != nil {
		return err
	}
	http.SetCookie(w, gsessions.NewCookie(session.Name(), encoded, session.Options))
	return nil
}

func (s *RedisStore) save(ctx context.Context, session *gsessions.Session) error {
	data, err := s.encoder.Serialize(session.Values)
	if err != nil {
		return err
	}
	ttl := time.Duration(session.Options.MaxAge) * time.Second
	return s.rdb.Set(ctx, redisKeyPrefix+session.ID, data, ttl).Err()
}

func (s *RedisStore) load(ctx context.Context, session *gsessions.Session) (bool, error) {
	data, err := s.rdb.Get(ctx, redisKeyPrefix+session.ID).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, s.encoder.Deserialize(data, &session.Values)
}
