package flash

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
	redigo "github.com/gomodule/redigo/redis"
)

// SessionName is the cookie that identifies the browser session.
const SessionName = "fyyur_session"

var errNoSession = errors.New("flash: session middleware not installed")

// SessionStore queues messages in the browser's session. The backend decides
// where session values live: in the signed cookie itself or in redis.
type SessionStore struct {
	backend sessions.Store
}

// NewCookieStore keeps messages inside a cookie signed with secret.
func NewCookieStore(secret string, secure bool) *SessionStore {
	backend := cookie.NewStore([]byte(secret))
	backend.Options(cookieOptions(0, secure))
	return &SessionStore{backend: backend}
}

// NewRedisStore keeps messages in redis under prefix; the cookie only carries
// the signed session id. Unread sessions expire after ttl.
func NewRedisStore(pool *redigo.Pool, secret, prefix string, ttl time.Duration, secure bool) (*SessionStore, error) {
	backend, err := redis.NewStoreWithPool(pool, []byte(secret))
	if err != nil {
		return nil, fmt.Errorf("redis session store: %w", err)
	}
	if prefix == "" {
		prefix = "flash"
	}
	if err := redis.SetKeyPrefix(backend, prefix+":"); err != nil {
		return nil, err
	}
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	// redis deletes the session on save when MaxAge is not positive
	backend.Options(cookieOptions(max(1, int(ttl/time.Second)), secure))
	return &SessionStore{backend: backend}, nil
}

func cookieOptions(maxAge int, secure bool) sessions.Options {
	return sessions.Options{
		Path:     "/",
		MaxAge:   maxAge,
		Secure:   secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}

// Sessions loads the browser session for every request. It must run before
// any handler calls Add or Pop.
func (s *SessionStore) Sessions() gin.HandlerFunc {
	return sessions.Sessions(SessionName, s.backend)
}

func session(c *gin.Context) (sessions.Session, bool) {
	v, ok := c.Get(sessions.DefaultKey)
	if !ok {
		return nil, false
	}
	sess, ok := v.(sessions.Session)
	return sess, ok
}

// Add queues msg. The message stays in the in-memory session even when
// saving fails, so a page rendered by the same request still shows it.
func (s *SessionStore) Add(c *gin.Context, msg Message) error {
	sess, ok := session(c)
	if !ok {
		return errNoSession
	}
	sess.AddFlash(msg)
	return sess.Save()
}

// Pop returns every queued message, including ones added earlier in this
// request. Messages are returned even if clearing the session fails.
func (s *SessionStore) Pop(c *gin.Context) ([]Message, error) {
	sess, ok := session(c)
	if !ok {
		return nil, nil
	}
	raw := sess.Flashes()
	if len(raw) == 0 {
		return nil, nil
	}
	msgs := make([]Message, 0, len(raw))
	for _, v := range raw {
		if m, ok := v.(Message); ok {
			msgs = append(msgs, m)
		}
	}
	return msgs, sess.Save()
}
