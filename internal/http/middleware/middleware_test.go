package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"hotelbook/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestRequestIDGeneratedAndForwarded(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	var fromCtx, fromGin string
	r.GET("/x", func(c *gin.Context) {
		fromCtx = utils.RequestIDFrom(c.Request.Context())
		fromGin = GetRequestID(c)
		c.Status(http.StatusNoContent)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
	require.NotEmpty(t, fromGin)
	assert.Equal(t, fromGin, fromCtx)
	assert.Equal(t, fromGin, w.Header().Get("X-Request-ID"))

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", fromCtx)
}

func sessionEngine(opts SessionOptions, seen *string) *gin.Engine {
	r := gin.New()
	r.Use(Session(opts))
	r.GET("/s", func(c *gin.Context) {
		*seen = GetSessionID(c)
		c.Status(http.StatusNoContent)
	})
	return r
}

func sessionCookie(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, ck := range w.Result().Cookies() {
		if ck.Name == SessionCookie {
			return ck
		}
	}
	t.Fatalf("no %s cookie set", SessionCookie)
	return nil
}

func TestSessionIsStableAcrossRequests(t *testing.T) {
	var seen string
	r := sessionEngine(SessionOptions{Secret: []byte("k1"), TTL: time.Hour}, &seen)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/s", nil))
	first := seen
	require.NotEmpty(t, first)
	ck := sessionCookie(t, w)
	assert.True(t, ck.HttpOnly)

	req := httptest.NewRequest(http.MethodGet, "/s", nil)
	req.AddCookie(ck)
	r.ServeHTTP(httptest.NewRecorder(), req)
	assert.Equal(t, first, seen)
}

func TestSessionRejectsForeignSignature(t *testing.T) {
	var seen string
	token, err := signSession("stolen", []byte("other"), time.Hour, time.Now())
	require.NoError(t, err)
	r := sessionEngine(SessionOptions{Secret: []byte("k1")}, &seen)

	req := httptest.NewRequest(http.MethodGet, "/s", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: token})
	r.ServeHTTP(httptest.NewRecorder(), req)
	assert.NotEqual(t, "stolen", seen)
	assert.NotEmpty(t, seen)
}

func TestSessionRejectsExpiredCookie(t *testing.T) {
	secret := []byte("k1")
	token, err := signSession("old", secret, time.Minute, time.Now().Add(-time.Hour))
	require.NoError(t, err)
	_, err = parseSession(token, secret)
	assert.Error(t, err)

	token, err = signSession("fresh", secret, time.Minute, time.Now())
	require.NoError(t, err)
	sid, err := parseSession(token, secret)
	require.NoError(t, err)
	assert.Equal(t, "fresh", sid)
}

func TestCORSAllowsConfiguredOrigin(t *testing.T) {
	r := gin.New()
	r.Use(CORS([]string{"http://localhost:5173"}))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/x", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", "GET")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "http://localhost:5173", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))

	req = httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Origin", "http://evil.example")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORSWithoutOriginsRefusesCrossOrigin(t *testing.T) {
	var mw gin.HandlerFunc
	require.NotPanics(t, func() { mw = CORS(nil) })

	r := gin.New()
	r.Use(mw)
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/x", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAdminOnly(t *testing.T) {
	secret := []byte("admin-secret")
	now := time.Now()
	r := gin.New()
	r.Use(RequestID(), AdminOnly(secret))
	var subject string
	r.PUT("/x", func(c *gin.Context) {
		subject = GetAdminSubject(c)
		c.Status(http.StatusOK)
	})

	good, err := SignAdminToken(secret, "ops", time.Hour, now)
	require.NoError(t, err)
	expired, err := SignAdminToken(secret, "ops", time.Hour, now.Add(-2*time.Hour))
	require.NoError(t, err)
	forged, err := SignAdminToken([]byte("nope"), "ops", time.Hour, now)
	require.NoError(t, err)
	session, err := signSession("sid-1", secret, time.Hour, now)
	require.NoError(t, err)

	cases := []struct {
		name   string
		header string
		want   int
	}{
		{"valid", "Bearer " + good, http.StatusOK},
		{"lowercase scheme", "bearer " + good, http.StatusOK},
		{"missing", "", http.StatusUnauthorized},
		{"basic scheme", "Basic " + good, http.StatusUnauthorized},
		{"expired", "Bearer " + expired, http.StatusUnauthorized},
		{"foreign signature", "Bearer " + forged, http.StatusUnauthorized},
		{"session token has no role", "Bearer " + session, http.StatusUnauthorized},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			subject = ""
			req := httptest.NewRequest(http.MethodPut, "/x", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, tc.want, w.Code)
			if tc.want == http.StatusOK {
				assert.Equal(t, "ops", subject)
			} else {
				assert.Contains(t, w.Body.String(), "request_id")
				assert.NotEmpty(t, w.Header().Get("WWW-Authenticate"))
			}
		})
	}
}

func TestAdminOnlyWithoutSecretRefusesAll(t *testing.T) {
	r := gin.New()
	r.Use(AdminOnly(nil))
	r.PUT("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	tok, err := SignAdminToken([]byte("x"), "ops", time.Hour, time.Now())
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPut, "/x", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	_, err = SignAdminToken(nil, "ops", time.Hour, time.Now())
	assert.Error(t, err)
}

func TestTimeoutSetsDeadline(t *testing.T) {
	r := gin.New()
	r.Use(Timeout(time.Second))
	hasDeadline := false
	r.GET("/x", func(c *gin.Context) {
		_, hasDeadline = c.Request.Context().Deadline()
		c.Status(http.StatusOK)
	})
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/x", nil))
	assert.True(t, hasDeadline)
}
