package testutil

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"git.sr.ht/~relay/giftwise-backend/auth"
	"git.sr.ht/~relay/giftwise-backend/config"
	"git.sr.ht/~relay/giftwise-backend/identity"
	"git.sr.ht/~relay/giftwise-backend/server"
	"git.sr.ht/~relay/giftwise-backend/store"
	"github.com/google/uuid"
)

// TestTokenSecret signs the tokens handed out by test environments.
const TestTokenSecret = "giftwise-test-secret"

// TestEnv holds the components needed for running tests.
type TestEnv struct {
	DB         *sql.DB
	Handler    http.Handler
	Config     config.Config
	Tokens     *auth.Tokens
	AuthToken  string // valid token for the demo user
	UserID     string
	TearDownDB func()
}

// TestConfig is the configuration every test environment starts from.
func TestConfig() config.Config {
	return config.Config{
		Port:           "0",
		Env:            "test",
		LogLevel:       slog.LevelInfo,
		TokenSecret:    TestTokenSecret,
		TokenTTL:       time.Hour,
		EnvelopeMode:   config.EnvelopeLegacy,
		RateLimitBurst: 20,
	}
}

// SetupTestEnvironment initializes a fresh in-memory DB with the seed data
// and the full API handler on top of it.
func SetupTestEnvironment(t *testing.T) *TestEnv {
	t.Helper()
	return SetupTestEnvironmentWith(t, TestConfig())
}

// SetupTestEnvironmentWith is SetupTestEnvironment with a custom config.
func SetupTestEnvironmentWith(t *testing.T, cfg config.Config) *TestEnv {
	t.Helper()

	logLevel := slog.LevelWarn
	if os.Getenv("GIFTWISE_LOG_LEVEL") == "DEBUG" {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel})))

	// Each test gets its own named in-memory database.
	ctx := context.Background()
	cfg.DatabasePath = "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := store.Open(ctx, cfg.DatabasePath)
	if err != nil {
		t.Fatalf("failed to open in-memory database: %v", err)
	}
	// Keep the connection alive for the duration of the test.
	db.SetMaxIdleConns(1)
	db.SetMaxOpenConns(1)

	if err := store.Migrate(ctx, db); err != nil {
		db.Close()
		t.Fatalf("failed to run database migrations: %v", err)
	}

	handler, err := server.New(db, cfg)
	if err != nil {
		db.Close()
		t.Fatalf("failed to build handler: %v", err)
	}

	tokens := auth.NewTokens(cfg.TokenSecret, cfg.TokenTTL)
	token, err := tokens.Issue(identity.DemoUser())
	if err != nil {
		db.Close()
		t.Fatalf("failed to issue test token: %v", err)
	}

	env := &TestEnv{
		DB:         db,
		Handler:    handler,
		Config:     cfg,
		Tokens:     tokens,
		AuthToken:  token,
		UserID:     identity.DemoUserID,
		TearDownDB: func() { db.Close() },
	}
	t.Cleanup(env.TearDownDB)
	return env
}

// NewAuthenticatedRequest creates a request with a JSON body and, when
// token is set, a bearer Authorization header.
func NewAuthenticatedRequest(t *testing.T, method, path, token string, body interface{}) *http.Request {
	t.Helper()
	var bodyReader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("Failed to marshal request body: %v", err)
		}
		bodyReader = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequest(method, path, bodyReader)
	if err != nil {
		t.Fatalf("Failed to create request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req
}

// NewRawRequest creates a request with body sent verbatim.
func NewRawRequest(t *testing.T, method, path, body string) *http.Request {
	t.Helper()
	req, err := http.NewRequest(method, path, bytes.NewBufferString(body))
	if err != nil {
		t.Fatalf("Failed to create request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return req
}

// ExecuteRequest runs req through handler and returns the recorder.
func ExecuteRequest(t *testing.T, handler http.Handler, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	return rr
}

// AssertStatusCode fails the test when the response status differs.
func AssertStatusCode(t *testing.T, rr *httptest.ResponseRecorder, expectedStatus int) {
	t.Helper()
	if status := rr.Code; status != expectedStatus {
		t.Errorf("handler returned wrong status code: got %v want %v", status, expectedStatus)
		t.Logf("Response body: %s", rr.Body.String())
	}
}

// AssertBodyContains fails the test for each substring missing from the body.
func AssertBodyContains(t *testing.T, rr *httptest.ResponseRecorder, expectedSubstrings ...string) {
	t.Helper()
	body := rr.Body.String()
	for _, sub := range expectedSubstrings {
		if !bytes.Contains(rr.Body.Bytes(), []byte(sub)) {
			t.Errorf("handler response body does not contain expected string '%s'", sub)
			t.Logf("Response body: %s", body)
		}
	}
}

// DecodeJSONResponse decodes the response body into target.
func DecodeJSONResponse(t *testing.T, rr *httptest.ResponseRecorder, target interface{}) {
	t.Helper()
	err := json.NewDecoder(rr.Body).Decode(target)
	if err != nil {
		t.Fatalf("Failed to decode JSON response body: %v\nBody: %s", err, rr.Body.String())
	}
}

// Ptr returns a pointer to v.
func Ptr[T any](v T) *T {
	return &v
}

// Envelope is the {"data": ...} wrapper most resources respond with.
type Envelope[T any] struct {
	Data T `json:"data"`
}

// MessageBody is the body every error response carries.
type MessageBody struct {
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}
