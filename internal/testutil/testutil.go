package testutil

import (
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/third774/dyte-remix/internal/api"
	"github.com/third774/dyte-remix/internal/config"
	"github.com/third774/dyte-remix/internal/dyte"
	"github.com/third774/dyte-remix/internal/repository"
	"github.com/third774/dyte-remix/internal/repository/memory"
	"github.com/third774/dyte-remix/internal/service"
	"github.com/third774/dyte-remix/internal/session"
)

// TestConfig returns a configuration suitable for testing
func TestConfig() *config.Config {
	return &config.Config{
		Port:               "0", // Random port
		Environment:        "test",
		DyteBaseURL:        dyte.DefaultBaseURL,
		DyteAuthHeader:     FakeDyteAuthHeader,
		DyteTimeoutSeconds: 5,
		DyteSearchRetries:  0,
		SessionSecret:      "test-session-secret-for-testing-only",
		SessionCookieName:  session.DefaultCookieName,
		SessionMaxAgeHours: 1,
		MetadataBackend:    config.MetadataBackendMemory,
		MetricsEnabled:     true,
	}
}

// NewDyteClient returns a client pointed at the fake with retries disabled
func NewDyteClient(fake *FakeDyte) *dyte.Client {
	return dyte.NewClient(fake.URL(), FakeDyteAuthHeader,
		dyte.WithTimeout(5*time.Second),
		dyte.WithSearchRetries(0),
	)
}

// NewSessionStore returns a store signed with the test secret
func NewSessionStore(t *testing.T, cfg *config.Config) *session.Store {
	t.Helper()

	store, err := session.NewStore(session.Options{
		CookieName: cfg.SessionCookieName,
		Secret:     cfg.SessionSecret,
		MaxAge:     cfg.SessionMaxAge(),
		Secure:     cfg.IsProduction(),
	})
	if err != nil {
		t.Fatalf("failed to create session store: %v", err)
	}
	return store
}

// TestServer holds all components for integration testing
type TestServer struct {
	Server   *httptest.Server
	Dyte     *FakeDyte
	Repos    *repository.Repositories
	Services *service.Services
	Sessions *session.Store
	Config   *config.Config
}

// NewTestServer creates a complete test server backed by a fake Dyte API and in-memory metadata
func NewTestServer(t *testing.T) *TestServer {
	t.Helper()

	fake := NewFakeDyte(t)
	cfg := TestConfig()
	cfg.DyteBaseURL = fake.URL()

	repos := memory.NewRepositories()
	services := service.NewServices(repos, NewDyteClient(fake))
	sessions := NewSessionStore(t, cfg)
	router := api.NewRouter(services, sessions, cfg)

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	return &TestServer{
		Server:   server,
		Dyte:     fake,
		Repos:    repos,
		Services: services,
		Sessions: sessions,
		Config:   cfg,
	}
}

// URL returns the full URL for a given path
func (ts *TestServer) URL(path string) string {
	return ts.Server.URL + path
}

// NewBrowser returns a client with its own cookie jar that does not follow redirects
func (ts *TestServer) NewBrowser(t *testing.T) *http.Client {
	t.Helper()

	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("failed to create cookie jar: %v", err)
	}
	return &http.Client{
		Jar: jar,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

// PostForm submits a home page form action
func (ts *TestServer) PostForm(t *testing.T, browser *http.Client, form url.Values) *http.Response {
	t.Helper()

	req, err := http.NewRequest(http.MethodPost, ts.URL("/"), strings.NewReader(form.Encode()))
	if err != nil {
		t.Fatalf("failed to build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := browser.Do(req)
	if err != nil {
		t.Fatalf("failed to post form: %v", err)
	}
	return resp
}

// SetName stores a display name in the browser's session
func (ts *TestServer) SetName(t *testing.T, browser *http.Client, name string) {
	t.Helper()

	resp := ts.PostForm(t, browser, url.Values{"action": {"set-name"}, "name": {name}})
	resp.Body.Close()
	if resp.StatusCode != http.StatusFound {
		t.Fatalf("set-name: unexpected status code: %d", resp.StatusCode)
	}
}

// Get performs a GET with the browser
func (ts *TestServer) Get(t *testing.T, browser *http.Client, path string) *http.Response {
	t.Helper()

	resp, err := browser.Get(ts.URL(path))
	if err != nil {
		t.Fatalf("GET %s: %v", path, err)
	}
	return resp
}
