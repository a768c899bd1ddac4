package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"image/png"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Zachkp/portfolio/internal/config"
	"github.com/Zachkp/portfolio/internal/contact"
	"github.com/Zachkp/portfolio/internal/particle"
	"github.com/Zachkp/portfolio/internal/store"
)

type fakeSender struct {
	mu   sync.Mutex
	err  error
	sent []contact.Message
}

func (f *fakeSender) Send(_ context.Context, m contact.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, m)
	return nil
}

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			Port:            "0",
			Mode:            gin.TestMode,
			StaticDir:       "./static",
			ImagesDir:       "./images",
			ShutdownTimeout: time.Second,
		},
		Database: config.DatabaseConfig{Retention: 365 * 24 * time.Hour},
		Admin:    config.AdminConfig{Username: "owner", Password: "s3cret"},
		Contact: config.ContactConfig{
			RatePerMinute: 60,
			Burst:         10,
			SendTimeout:   time.Second,
		},
		Animation: config.AnimationConfig{FPS: 60, MaxWidth: 640, MaxHeight: 480, MaxFrames: 30},
	}
}

type harness struct {
	srv    *Server
	store  *store.Store
	sender *fakeSender
}

func newHarness(t *testing.T, mutate func(*config.Config)) *harness {
	t.Helper()
	cfg := testConfig()
	if mutate != nil {
		mutate(cfg)
	}
	st, err := store.Open(context.Background(), filepath.Join(t.TempDir(), "server.db"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	sender := &fakeSender{}
	srv, err := New(cfg, st, sender, nil)
	require.NoError(t, err)
	return &harness{srv: srv, store: st, sender: sender}
}

// do sends DNT: 1 so page views are not recorded unless a test asks for it.
func (h *harness) do(req *http.Request) *httptest.ResponseRecorder {
	if req.Header.Get("DNT") == "" {
		req.Header.Set("DNT", "1")
	}
	w := httptest.NewRecorder()
	h.srv.Handler().ServeHTTP(w, req)
	return w
}

func (h *harness) get(path string) *httptest.ResponseRecorder {
	return h.do(httptest.NewRequest(http.MethodGet, path, nil))
}

func postForm(path string, form url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func validForm() url.Values {
	return url.Values{
		"name":    {"Ada"},
		"email":   {"ada@example.com"},
		"subject": {"Hello"},
		"message": {"I liked the particles."},
	}
}

func TestPages(t *testing.T) {
	h := newHarness(t, nil)

	w := h.get("/")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `data-particles="hero"`)
	assert.Contains(t, w.Body.String(), "E-Commerce Website")

	for _, path := range []string{"/docs", "/examples", "/privacy", "/contact-form"} {
		assert.Equal(t, http.StatusOK, h.get(path).Code, path)
	}

	w = h.get("/nope")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Page not found")

	assert.Equal(t, http.StatusNotFound, h.get("/examples/missing").Code)
	assert.Equal(t, http.StatusOK, h.get("/healthz").Code)
}

func TestProjectsFilter(t *testing.T) {
	h := newHarness(t, nil)

	w := h.get("/projects?filter=app")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Stock Management System")
	assert.NotContains(t, w.Body.String(), "Social Media Dashboard")

	w = h.get("/projects?filter=bogus")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "No projects in this category.")
}

func TestContactSuccessStoresMessage(t *testing.T) {
	h := newHarness(t, nil)

	w := h.do(postForm("/contact", validForm()))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Thank you for your message")
	require.Len(t, h.sender.sent, 1)
	assert.Equal(t, "Hello", h.sender.sent[0].Subject)

	ms, err := h.store.Messages(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, ms, 1)
	assert.Equal(t, store.StatusSent, ms[0].Status)
}

func TestContactFailureShowsGenericNotice(t *testing.T) {
	h := newHarness(t, nil)
	h.sender.err = errors.New("535 authentication failed")

	w := h.do(postForm("/contact", validForm()))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Failed to send message")
	assert.NotContains(t, w.Body.String(), "535")

	ms, err := h.store.Messages(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, ms, 1)
	assert.Equal(t, store.StatusFailed, ms[0].Status)
}

func TestContactValidation(t *testing.T) {
	h := newHarness(t, nil)
	form := validForm()
	form.Set("email", "not-an-email")
	form.Del("subject")

	w := h.do(postForm("/contact", form))
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "Email is invalid")
	assert.Contains(t, w.Body.String(), "Subject is required")
	assert.Contains(t, w.Body.String(), `value="Ada"`)
	assert.Empty(t, h.sender.sent)
}

func TestContactAcceptsNamedAddress(t *testing.T) {
	h := newHarness(t, nil)
	form := validForm()
	form.Set("email", "Ada <ada@example.com>")

	w := h.do(postForm("/contact", form))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Thank you for your message")
	require.Len(t, h.sender.sent, 1)
	assert.Equal(t, "Ada <ada@example.com>", h.sender.sent[0].Email)
}

func TestContactRateLimited(t *testing.T) {
	h := newHarness(t, func(c *config.Config) {
		c.Contact.RatePerMinute = 1
		c.Contact.Burst = 1
	})

	require.Equal(t, http.StatusOK, h.do(postForm("/contact", validForm())).Code)
	w := h.do(postForm("/contact", validForm()))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Len(t, h.sender.sent, 1)
	assert.Equal(t, 0, h.srv.PruneLimiter(), "recently seen clients are kept")
}

func TestBackgroundJSON(t *testing.T) {
	h := newHarness(t, nil)

	fetch := func() backgroundJSON {
		w := h.get("/api/backgrounds/hero?w=400&h=300&frames=5&seed=7")
		require.Equal(t, http.StatusOK, w.Code)
		var out backgroundJSON
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
		return out
	}

	a := fetch()
	assert.Equal(t, "hero", a.Section)
	assert.Equal(t, particle.Hero.Count(400, 300), a.Count)
	assert.Len(t, a.Particles, a.Count)
	for _, p := range a.Particles {
		assert.True(t, p.X >= 0 && p.X <= 400, "x=%v", p.X)
		assert.True(t, p.Y >= 0 && p.Y <= 300, "y=%v", p.Y)
	}
	assert.Equal(t, a, fetch(), "same seed gives the same field")

	assert.Equal(t, http.StatusBadRequest, h.get("/api/backgrounds/footer").Code)
	assert.Equal(t, http.StatusBadRequest, h.get("/api/backgrounds/hero?w=99999").Code)
	assert.Equal(t, http.StatusBadRequest, h.get("/api/backgrounds/hero?frames=-1").Code)
}

func TestBackgroundPNG(t *testing.T) {
	h := newHarness(t, nil)

	w := h.get("/backgrounds/about.png?w=64&h=48")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
	img, err := png.Decode(bytes.NewReader(w.Body.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, 64, img.Bounds().Dx())
	assert.Equal(t, 48, img.Bounds().Dy())

	assert.Equal(t, http.StatusNotFound, h.get("/backgrounds/about.jpg").Code)
}

func TestParallax(t *testing.T) {
	h := newHarness(t, nil)

	w := h.get("/api/parallax/hero?progress=2")
	require.Equal(t, http.StatusOK, w.Code)
	var out parallaxJSON
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	assert.Equal(t, 1.0, out.Progress)
	assert.NotEmpty(t, out.Values)

	w = h.get("/api/parallax/about?scroll=0&top=800&height=600&viewport=800")
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	assert.Equal(t, "about", out.Section)
	assert.InDelta(t, 0.0, out.Progress, 1e-9)

	assert.Equal(t, http.StatusNotFound, h.get("/api/parallax/footer").Code)
	assert.Equal(t, http.StatusBadRequest, h.get("/api/parallax/hero?progress=abc").Code)
}

func TestParallaxSpringFrames(t *testing.T) {
	h := newHarness(t, nil)

	fetch := func(path string) parallaxJSON {
		w := h.get(path)
		require.Equal(t, http.StatusOK, w.Code, path)
		var out parallaxJSON
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
		return out
	}

	first := fetch("/api/parallax/about?progress=1&from=0&frames=1")
	assert.Equal(t, 1, first.Frames)
	assert.Equal(t, "window-controls", first.Values[0].Layer)
	assert.Less(t, first.Values[0].Value, 0.0)
	assert.Greater(t, first.Values[0].Value, -50.0, "spring lags the target")

	settled := fetch("/api/parallax/about?progress=1&from=0&frames=30")
	assert.Less(t, settled.Values[0].Value, first.Values[0].Value)

	start := fetch("/api/parallax/about?progress=1&from=0&frames=0")
	assert.Equal(t, 0.0, start.Values[0].Value)

	hero := fetch("/api/parallax/hero?progress=1&from=0&frames=1")
	assert.Equal(t, 200.0, hero.Values[0].Value, "layers without a spring jump to the target")

	assert.Equal(t, http.StatusBadRequest, h.get("/api/parallax/about?progress=1&frames=31").Code)
	assert.Equal(t, http.StatusBadRequest, h.get("/api/parallax/about?progress=1&frames=2&from=NaN").Code)
}

func TestNonFiniteQueryRejected(t *testing.T) {
	h := newHarness(t, nil)

	for _, path := range []string{
		"/api/backgrounds/hero?w=100&h=100&frames=3&scroll=NaN",
		"/api/backgrounds/hero?w=100&h=100&frames=3&scroll=Inf",
		"/backgrounds/hero.png?w=32&h=32&scroll=-Inf",
		"/api/parallax/hero?progress=NaN",
		"/api/parallax/hero?scroll=NaN&top=0&height=100",
		"/api/parallax/hero?scroll=0&top=0&height=Inf",
	} {
		w := h.get(path)
		assert.Equal(t, http.StatusBadRequest, w.Code, path)
		assert.Contains(t, w.Body.String(), "finite", path)
	}
}

func TestBackgroundPNGAtMaximumSize(t *testing.T) {
	if testing.Short() {
		t.Skip("renders a full-size frame")
	}
	h := newHarness(t, func(c *config.Config) {
		c.Animation.MaxWidth = 1920
		c.Animation.MaxHeight = 1080
		c.Animation.MaxFrames = 600
	})

	start := time.Now()
	w := h.get("/backgrounds/hero.png?w=1920&h=1080&frames=600")
	elapsed := time.Since(start)

	require.Equal(t, http.StatusOK, w.Code)
	img, err := png.Decode(bytes.NewReader(w.Body.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, 1920, img.Bounds().Dx())
	assert.Less(t, elapsed, 10*time.Second)
}

func TestAdminLoginFlow(t *testing.T) {
	h := newHarness(t, nil)

	w := h.get("/admin/dashboard")
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/admin/login", w.Header().Get("Location"))

	w = h.do(postForm("/admin/login", url.Values{"username": {"owner"}, "password": {"wrong"}}))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid credentials")

	w = h.do(postForm("/admin/login", url.Values{"username": {"owner"}, "password": {"s3cret"}}))
	require.Equal(t, http.StatusFound, w.Code)
	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)

	authed := func(method, path string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(method, path, nil)
		for _, c := range cookies {
			req.AddCookie(c)
		}
		return h.do(req)
	}

	assert.Equal(t, http.StatusOK, authed(http.MethodGet, "/admin/dashboard").Code)
	assert.Equal(t, http.StatusOK, authed(http.MethodGet, "/admin/visitors").Code)
	assert.Equal(t, http.StatusOK, authed(http.MethodGet, "/admin/messages").Code)
	assert.Equal(t, http.StatusNotFound, authed(http.MethodDelete, "/admin/messages/missing").Code)

	w = authed(http.MethodGet, "/admin/export/stats")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "admin-stats.json")

	m, err := h.store.SaveMessage(context.Background(), "Ada", "ada@example.com", "Hi", "Body")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, authed(http.MethodDelete, "/admin/messages/"+m.ID).Code)

	assert.Equal(t, http.StatusOK, authed(http.MethodPost, "/admin/privacy/delete-visitor-data").Code)
}

func TestVisitorTracking(t *testing.T) {
	h := newHarness(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/docs", nil)
	req.Header.Set("DNT", "0")
	req.Header.Set("User-Agent", "test-agent")
	req.RemoteAddr = "203.0.113.9:5555"
	require.Equal(t, http.StatusOK, h.do(req).Code)

	// Static, API and DNT requests are never recorded.
	h.get("/docs")
	h.get("/api/parallax/hero?progress=0")

	var visits []store.Visitor
	require.Eventually(t, func() bool {
		var err error
		visits, err = h.store.Visitors(context.Background(), 10)
		return err == nil && len(visits) == 1
	}, 2*time.Second, 10*time.Millisecond)

	v := visits[0]
	assert.Equal(t, "/docs", v.Path)
	assert.Equal(t, "test-agent", v.UserAgent)
	assert.Len(t, v.HashedIP, 16)
	assert.NotContains(t, v.HashedIP, "203.0.113.9")
	assert.Equal(t, h.srv.admin.hashIP("203.0.113.9"), v.HashedIP)
}

func TestHashIPIsSalted(t *testing.T) {
	a, err := newAdminAuth(config.AdminConfig{}, zap.NewNop())
	require.NoError(t, err)
	b, err := newAdminAuth(config.AdminConfig{}, zap.NewNop())
	require.NoError(t, err)

	assert.Equal(t, a.hashIP("10.0.0.1"), a.hashIP("10.0.0.1"))
	assert.NotEqual(t, a.hashIP("10.0.0.1"), b.hashIP("10.0.0.1"))
	assert.NotEqual(t, a.token, b.token)
}
