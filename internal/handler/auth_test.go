package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"ticketr/internal/config"
	"ticketr/internal/handler"
	"ticketr/internal/middleware"
	"ticketr/internal/repository"
	"ticketr/internal/router"
)

func newAuthTestServer(t *testing.T) (*echo.Echo, *repository.MemoryUserStore) {
	t.Helper()
	users := repository.NewMemoryUserStore()
	cfg := config.Config{JWTSecret: "test-secret", AccessTTLMin: 5, BcryptCost: bcrypt.MinCost}
	e := echo.New()
	router.RegisterAuth(e, handler.NewAuthHandler(cfg, users), middleware.JWTAuth(cfg.JWTSecret, users))
	return e, users
}

func doJSON(e *echo.Echo, method, path, body, bearer string) *httptest.ResponseRecorder {
	var rdr *strings.Reader
	if body == "" {
		rdr = strings.NewReader("")
	} else {
		rdr = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rdr)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var m map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &m))
	return m
}

const signupBody = `{"email":"ada@example.com","name":"Ada","surname":"Lovelace","password":"longenough"}`

func TestSignupCreatesUnverifiedAccount(t *testing.T) {
	e, users := newAuthTestServer(t)

	rec := doJSON(e, http.MethodPost, "/v1/auth/signup", signupBody, "")
	require.Equal(t, http.StatusCreated, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "ada@example.com", body["email"])
	assert.Equal(t, "Ada", body["name"])
	assert.NotContains(t, body, "password")

	u, err := users.GetByEmail(context.Background(), "ada@example.com")
	require.NoError(t, err)
	assert.False(t, u.Verified())
	require.NotNil(t, u.VerifyToken)
}

func TestSignupDuplicateEmail(t *testing.T) {
	e, _ := newAuthTestServer(t)
	require.Equal(t, http.StatusCreated, doJSON(e, http.MethodPost, "/v1/auth/signup", signupBody, "").Code)
	assert.Equal(t, http.StatusConflict, doJSON(e, http.MethodPost, "/v1/auth/signup", signupBody, "").Code)
}

func TestSignupValidation(t *testing.T) {
	e, _ := newAuthTestServer(t)
	cases := []string{
		`{"email":"ada@example.com","name":"Ada","surname":"Lovelace","password":"short"}`,
		`{"email":"not-an-email","name":"Ada","surname":"Lovelace","password":"longenough"}`,
		`{"email":"ada@example.com","surname":"Lovelace","password":"longenough"}`,
	}
	for _, body := range cases {
		rec := doJSON(e, http.MethodPost, "/v1/auth/signup", body, "")
		assert.Equal(t, http.StatusBadRequest, rec.Code, "body %s", body)
	}
}

func TestLoginRequiresVerification(t *testing.T) {
	e, users := newAuthTestServer(t)
	require.Equal(t, http.StatusCreated, doJSON(e, http.MethodPost, "/v1/auth/signup", signupBody, "").Code)

	login := `{"email":"ada@example.com","password":"longenough"}`

	// unverified account may not log in
	rec := doJSON(e, http.MethodPost, "/v1/auth/login", login, "")
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// redeem the verification token
	u, err := users.GetByEmail(context.Background(), "ada@example.com")
	require.NoError(t, err)
	rec = doJSON(e, http.MethodGet, "/v1/auth/validate/"+*u.VerifyToken, "", "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(e, http.MethodPost, "/v1/auth/login", login, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, decodeBody(t, rec)["token"])
}

func TestValidateUnknownToken(t *testing.T) {
	e, _ := newAuthTestServer(t)
	rec := doJSON(e, http.MethodGet, "/v1/auth/validate/definitely-not-a-token", "", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	e, users := newAuthTestServer(t)
	require.Equal(t, http.StatusCreated, doJSON(e, http.MethodPost, "/v1/auth/signup", signupBody, "").Code)
	u, err := users.GetByEmail(context.Background(), "ada@example.com")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, doJSON(e, http.MethodGet, "/v1/auth/validate/"+*u.VerifyToken, "", "").Code)

	rec := doJSON(e, http.MethodPost, "/v1/auth/login", `{"email":"ada@example.com","password":"wrongwrong"}`, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doJSON(e, http.MethodPost, "/v1/auth/login", `{"email":"nobody@example.com","password":"longenough"}`, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestMe(t *testing.T) {
	e, users := newAuthTestServer(t)
	require.Equal(t, http.StatusCreated, doJSON(e, http.MethodPost, "/v1/auth/signup", signupBody, "").Code)
	u, err := users.GetByEmail(context.Background(), "ada@example.com")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, doJSON(e, http.MethodGet, "/v1/auth/validate/"+*u.VerifyToken, "", "").Code)

	rec := doJSON(e, http.MethodPost, "/v1/auth/login", `{"email":"ada@example.com","password":"longenough"}`, "")
	require.Equal(t, http.StatusOK, rec.Code)
	token, _ := decodeBody(t, rec)["token"].(string)
	require.NotEmpty(t, token)

	rec = doJSON(e, http.MethodGet, "/v1/auth/me", "", token)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "ada@example.com", body["email"])
	assert.Equal(t, "Lovelace", body["surname"])

	assert.Equal(t, http.StatusUnauthorized, doJSON(e, http.MethodGet, "/v1/auth/me", "", "").Code)
	assert.Equal(t, http.StatusUnauthorized, doJSON(e, http.MethodGet, "/v1/auth/me", "", "bogus-token").Code)
}
