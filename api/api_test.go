package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	goCred "github.com/MrEthical07/goCred"
	"github.com/MrEthical07/goCred/store"
	"github.com/MrEthical07/goCred/turnstile"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestRouter(t *testing.T, verifier turnstile.Verifier) (*gin.Engine, *goCred.Engine) {
	t.Helper()

	cfg := goCred.DefaultConfig()
	cfg.Password = goCred.PasswordConfig{
		Memory:      8 * 1024,
		Time:        1,
		Parallelism: 1,
		SaltLength:  16,
		KeyLength:   16,
	}

	engine, err := goCred.New().WithConfig(cfg).WithStore(store.NewMemoryStore()).Build()
	require.NoError(t, err)

	router, err := NewRouter(Config{
		Engine:   engine,
		Verifier: verifier,
		Logger:   zerolog.Nop(),
	})
	require.NoError(t, err)

	return router, engine
}

func doJSON(router *gin.Engine, method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		encoded, _ := json.Marshal(body)
		reader = bytes.NewReader(encoded)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) response {
	t.Helper()
	var resp response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func challengeHeaders() map[string]string {
	return map[string]string{turnstileHeader: "client-challenge-token"}
}

func registerAndLogin(t *testing.T, router *gin.Engine, username, password string) string {
	t.Helper()

	rec := doJSON(router, "POST", "/register", credentialsRequest{username, password}, challengeHeaders())
	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, decode(t, rec).Success)

	rec = doJSON(router, "POST", "/login", credentialsRequest{username, password}, challengeHeaders())
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decode(t, rec)
	require.True(t, resp.Success)
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func TestHealth(t *testing.T) {
	router, _ := newTestRouter(t, turnstile.Static(true))

	rec := doJSON(router, "GET", "/health", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
	assert.NotZero(t, body["timestamp"])
}

func TestRegisterLoginFlow(t *testing.T) {
	router, _ := newTestRouter(t, turnstile.Static(true))

	token := registerAndLogin(t, router, "alice", "sup3rsecret")
	assert.NotEmpty(t, token)
}

func TestRegisterDuplicateIsSoftFailure(t *testing.T) {
	router, _ := newTestRouter(t, turnstile.Static(true))

	rec := doJSON(router, "POST", "/register", credentialsRequest{"alice", "sup3rsecret"}, challengeHeaders())
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(router, "POST", "/register", credentialsRequest{"alice", "sup3rsecret"}, challengeHeaders())
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decode(t, rec)
	assert.False(t, resp.Success)
	assert.Equal(t, "User already exists", resp.Message)
}

func TestRegisterValidation(t *testing.T) {
	router, _ := newTestRouter(t, turnstile.Static(true))

	rec := doJSON(router, "POST", "/register", credentialsRequest{"ab", "sup3rsecret"}, challengeHeaders())
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(router, "POST", "/register", credentialsRequest{"alice", "12345"}, challengeHeaders())
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMalformedBody(t *testing.T) {
	router, _ := newTestRouter(t, turnstile.Static(true))

	req := httptest.NewRequest("POST", "/register", strings.NewReader("{not json"))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(turnstileHeader, "tok")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLoginInvalidCredentials(t *testing.T) {
	router, _ := newTestRouter(t, turnstile.Static(true))
	registerAndLogin(t, router, "alice", "sup3rsecret")

	for _, creds := range []credentialsRequest{
		{"alice", "wrongwrong"},
		{"nobody-here", "sup3rsecret"},
	} {
		rec := doJSON(router, "POST", "/login", creds, challengeHeaders())
		require.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "Invalid username or password", decode(t, rec).Message)
	}
}

func TestChallengeRequired(t *testing.T) {
	router, _ := newTestRouter(t, turnstile.Static(true))

	rec := doJSON(router, "POST", "/register", credentialsRequest{"alice", "sup3rsecret"}, nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Turnstile token required", decode(t, rec).Message)
}

func TestChallengeRejected(t *testing.T) {
	router, _ := newTestRouter(t, turnstile.Static(false))

	rec := doJSON(router, "POST", "/login", credentialsRequest{"alice", "sup3rsecret"}, challengeHeaders())
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Turnstile verification failed", decode(t, rec).Message)
}

type failingVerifier struct{}

func (failingVerifier) Verify(context.Context, string) (bool, error) {
	return false, turnstile.ErrVerifyUnavailable
}

func TestChallengeUnavailable(t *testing.T) {
	router, _ := newTestRouter(t, failingVerifier{})

	rec := doJSON(router, "POST", "/login", credentialsRequest{"alice", "sup3rsecret"}, challengeHeaders())
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestUpdatePassword(t *testing.T) {
	router, _ := newTestRouter(t, turnstile.Static(true))
	token := registerAndLogin(t, router, "alice", "sup3rsecret")

	rec := doJSON(router, "PATCH", "/user", updateRequest{NewPassword: "ev3nbetter"}, map[string]string{
		"Authorization": "Bearer " + token,
	})
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decode(t, rec)
	require.True(t, resp.Success)
	require.NotEmpty(t, resp.NewToken)
	assert.NotEqual(t, token, resp.NewToken)

	// The presented token died with the rotation.
	rec = doJSON(router, "DELETE", "/user", nil, map[string]string{
		"Authorization": "Bearer " + token,
	})
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	// The fresh one works.
	rec = doJSON(router, "DELETE", "/user", nil, map[string]string{
		"Authorization": "Bearer " + resp.NewToken,
	})
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestUpdateRenameConflict(t *testing.T) {
	router, _ := newTestRouter(t, turnstile.Static(true))
	token := registerAndLogin(t, router, "alice", "sup3rsecret")
	registerAndLogin(t, router, "bob", "b0bsecret")

	rec := doJSON(router, "PATCH", "/user", updateRequest{NewUsername: "bob"}, map[string]string{
		"Authorization": "Bearer " + token,
	})
	require.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "Username already taken", decode(t, rec).Message)
}

func TestUpdateNothingToUpdate(t *testing.T) {
	router, _ := newTestRouter(t, turnstile.Static(true))
	token := registerAndLogin(t, router, "alice", "sup3rsecret")

	rec := doJSON(router, "PATCH", "/user", updateRequest{}, map[string]string{
		"Authorization": "Bearer " + token,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateRequiresBearer(t *testing.T) {
	router, _ := newTestRouter(t, turnstile.Static(true))

	rec := doJSON(router, "PATCH", "/user", updateRequest{NewPassword: "ev3nbetter"}, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doJSON(router, "DELETE", "/user", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestDeleteThenLoginFails(t *testing.T) {
	router, _ := newTestRouter(t, turnstile.Static(true))
	token := registerAndLogin(t, router, "alice", "sup3rsecret")

	rec := doJSON(router, "DELETE", "/user", nil, map[string]string{
		"Authorization": "Bearer " + token,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(router, "POST", "/login", credentialsRequest{"alice", "sup3rsecret"}, challengeHeaders())
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCorruptRecordIsServerError(t *testing.T) {
	users := store.NewMemoryStore()

	cfg := goCred.DefaultConfig()
	cfg.Password = goCred.PasswordConfig{
		Memory:      8 * 1024,
		Time:        1,
		Parallelism: 1,
		SaltLength:  16,
		KeyLength:   16,
	}
	engine, err := goCred.New().WithConfig(cfg).WithStore(users).Build()
	require.NoError(t, err)

	router, err := NewRouter(Config{Engine: engine, Verifier: turnstile.Static(true), Logger: zerolog.Nop()})
	require.NoError(t, err)

	require.NoError(t, engine.Register(context.Background(), "alice", "sup3rsecret"))

	record, err := users.Get(context.Background(), "alice")
	require.NoError(t, err)
	record.PasswordHash = "garbage"
	require.NoError(t, users.Put(context.Background(), record))

	rec := doJSON(router, "POST", "/login", credentialsRequest{"alice", "sup3rsecret"}, challengeHeaders())
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestCORSPreflight(t *testing.T) {
	router, _ := newTestRouter(t, turnstile.Static(true))

	req := httptest.NewRequest(http.MethodOptions, "/login", nil)
	req.Header.Set("Origin", "https://app.example.com")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "https://app.example.com", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Headers"), turnstileHeader)
}

func TestRequestIDPropagates(t *testing.T) {
	router, _ := newTestRouter(t, turnstile.Static(true))

	rec := doJSON(router, "GET", "/health", nil, nil)
	assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))

	rec = doJSON(router, "GET", "/health", nil, map[string]string{"X-Request-Id": "abc-123"})
	assert.Equal(t, "abc-123", rec.Header().Get("X-Request-Id"))
}

func TestMetricsEndpoint(t *testing.T) {
	router, _ := newTestRouter(t, turnstile.Static(true))
	registerAndLogin(t, router, "alice", "sup3rsecret")

	rec := doJSON(router, "GET", "/metrics", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "gocred_register_success_total 1")
	assert.Contains(t, rec.Body.String(), "gocred_login_success_total 1")
}
