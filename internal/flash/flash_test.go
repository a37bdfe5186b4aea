package flash

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	redigo "github.com/gomodule/redigo/redis"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// request runs fn inside a router carrying the session middleware and
// returns the recorded response.
func request(t *testing.T, s *SessionStore, cookies []*http.Cookie, fn func(c *gin.Context)) *httptest.ResponseRecorder {
	t.Helper()
	r := gin.New()
	r.Use(s.Sessions())
	r.GET("/", func(c *gin.Context) {
		fn(c)
		c.Status(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func sessionCookies(w *httptest.ResponseRecorder) []*http.Cookie {
	var out []*http.Cookie
	for _, ck := range w.Result().Cookies() {
		if ck.Name == SessionName && ck.Value != "" {
			out = append(out, ck)
		}
	}
	return out
}

func TestCookieStore_ReadOnce(t *testing.T) {
	s := NewCookieStore("secret", false)

	w := request(t, s, nil, func(c *gin.Context) {
		require.NoError(t, s.Add(c, Success("Venue The Hop was successfully listed!")))
	})
	cookies := sessionCookies(w)
	require.Len(t, cookies, 1)
	assert.True(t, cookies[0].HttpOnly)

	var got []Message
	w = request(t, s, cookies, func(c *gin.Context) {
		var err error
		got, err = s.Pop(c)
		require.NoError(t, err)
	})
	assert.Equal(t, []Message{Success("Venue The Hop was successfully listed!")}, got)
	cleared := sessionCookies(w)
	require.Len(t, cleared, 1, "reading rewrites the session without the message")

	request(t, s, cleared, func(c *gin.Context) {
		msgs, err := s.Pop(c)
		require.NoError(t, err)
		assert.Empty(t, msgs)
	})
}

func TestCookieStore_SameRequest(t *testing.T) {
	s := NewCookieStore("secret", false)
	request(t, s, nil, func(c *gin.Context) {
		require.NoError(t, s.Add(c, Error("first")))
		require.NoError(t, s.Add(c, Error("second")))
		msgs, err := s.Pop(c)
		require.NoError(t, err)
		assert.Equal(t, []Message{Error("first"), Error("second")}, msgs)
	})
}

func TestCookieStore_RejectsTampered(t *testing.T) {
	s := NewCookieStore("secret", false)
	other := NewCookieStore("other", false)

	w := request(t, other, nil, func(c *gin.Context) {
		require.NoError(t, other.Add(c, Success("forged")))
	})

	request(t, s, sessionCookies(w), func(c *gin.Context) {
		msgs, err := s.Pop(c)
		require.NoError(t, err)
		assert.Empty(t, msgs)
	})
}

func TestSessionStore_WithoutMiddleware(t *testing.T) {
	s := NewCookieStore("secret", false)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	assert.ErrorIs(t, s.Add(c, Success("lost")), errNoSession)
	msgs, err := s.Pop(c)
	require.NoError(t, err)
	assert.Empty(t, msgs)
}

func newRedisStore(t *testing.T) (*SessionStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	pool := &redigo.Pool{
		MaxIdle: 2,
		Dial:    func() (redigo.Conn, error) { return redigo.Dial("tcp", mr.Addr()) },
	}
	t.Cleanup(func() { _ = pool.Close() })
	s, err := NewRedisStore(pool, "secret", "test", time.Minute, false)
	require.NoError(t, err)
	return s, mr
}

func TestRedisStore_ReadOnce(t *testing.T) {
	s, mr := newRedisStore(t)

	w := request(t, s, nil, func(c *gin.Context) {
		require.NoError(t, s.Add(c, Success("one")))
		require.NoError(t, s.Add(c, Error("two")))
	})
	cookies := sessionCookies(w)
	require.Len(t, cookies, 1)

	keys := mr.Keys()
	require.Len(t, keys, 1)
	assert.True(t, strings.HasPrefix(keys[0], "test:"))
	assert.Equal(t, time.Minute, mr.TTL(keys[0]))

	request(t, s, cookies, func(c *gin.Context) {
		msgs, err := s.Pop(c)
		require.NoError(t, err)
		assert.Equal(t, []Message{Success("one"), Error("two")}, msgs)
	})

	request(t, s, cookies, func(c *gin.Context) {
		msgs, err := s.Pop(c)
		require.NoError(t, err)
		assert.Empty(t, msgs)
	})
}

func TestRedisStore_ReusesSession(t *testing.T) {
	s, mr := newRedisStore(t)

	w := request(t, s, nil, func(c *gin.Context) {
		require.NoError(t, s.Add(c, Success("a")))
	})
	cookies := sessionCookies(w)
	require.Len(t, cookies, 1)

	request(t, s, cookies, func(c *gin.Context) {
		require.NoError(t, s.Add(c, Success("b")))
	})
	assert.Len(t, mr.Keys(), 1, "existing session should be kept")

	request(t, s, cookies, func(c *gin.Context) {
		msgs, err := s.Pop(c)
		require.NoError(t, err)
		assert.Equal(t, []Message{Success("a"), Success("b")}, msgs)
	})
}

func TestRedisStore_SaveFailureKeepsMessage(t *testing.T) {
	s, mr := newRedisStore(t)
	mr.Close()

	request(t, s, nil, func(c *gin.Context) {
		assert.Error(t, s.Add(c, Error("Venue could not be listed.")))

		msgs, err := s.Pop(c)
		assert.Error(t, err)
		assert.Equal(t, []Message{Error("Venue could not be listed.")}, msgs)
	})
}
