package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"ticketr/internal/config"
	"ticketr/internal/middleware"
	"ticketr/internal/model"
	"ticketr/internal/monitoring"
	"ticketr/internal/queue"
	"ticketr/internal/repository"
	queue_publisher "ticketr/internal/service"
	"ticketr/internal/utils"
)

// AuthHandler bundles dependencies for the auth endpoints: signup with
// email verification, token validation, login and the /me probe.
type AuthHandler struct {
	Cfg   config.Config
	Users repository.UserStore
}

func NewAuthHandler(cfg config.Config, users repository.UserStore) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Users: users}
}

// ----- DTOs -----

type signupReq struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Surname  string `json:"surname"`
	Password string `json:"password"`
}

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userResp struct {
	ID      uint64 `json:"id"`
	Name    string `json:"name"`
	Surname string `json:"surname"`
	Email   string `json:"email"`
}

// Signup creates an unverified account and hands the verification token
// to the mailer queue. The account cannot log in until the token is
// redeemed via Validate.
func (h *AuthHandler) Signup(c echo.Context) error {
	var req signupReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid request body"})
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.Name = strings.TrimSpace(req.Name)
	req.Surname = strings.TrimSpace(req.Surname)

	errs := make([]string, 0)
	if !strings.Contains(req.Email, "@") {
		errs = append(errs, "email must be a valid address")
	}
	if req.Name == "" {
		errs = append(errs, "name is required")
	}
	if req.Surname == "" {
		errs = append(errs, "surname is required")
	}
	if len(req.Password) < 8 {
		errs = append(errs, "password must be at least 8 characters")
	}
	if len(errs) > 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation failed", "errors": errs})
	}

	hash, err := utils.HashPassword(req.Password, h.Cfg.BcryptCost)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "create user failed"})
	}
	token := uuid.NewString()
	u := model.User{
		Email:        req.Email,
		Name:         req.Name,
		Surname:      req.Surname,
		PasswordHash: hash,
		VerifyToken:  &token,
	}

	ctx := c.Request().Context()
	if err := h.Users.Create(ctx, &u); err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			return c.JSON(http.StatusConflict, echo.Map{"message": "email already registered"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "create user failed"})
	}
	monitoring.RecordSignup()

	// best-effort: a down broker only delays the verification mail
	_ = queue_publisher.PublishUserSignedUp(ctx, queue.UserSignedUpEvent{
		UserID:      u.ID,
		Email:       u.Email,
		Name:        u.Name,
		Surname:     u.Surname,
		VerifyToken: token,
		SignedUpAt:  time.Now().UTC().Format(time.RFC3339),
	})

	return c.JSON(http.StatusCreated, userResp{ID: u.ID, Name: u.Name, Surname: u.Surname, Email: u.Email})
}

// Validate redeems an email verification token, enabling the account.
func (h *AuthHandler) Validate(c echo.Context) error {
	token := c.Param("token")
	ctx := c.Request().Context()

	u, err := h.Users.GetByVerifyToken(ctx, token)
	if err != nil {
		if errors.Is(err, repository.ErrTokenNotFound) {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "token not valid"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "validate failed"})
	}
	if err := h.Users.ClearVerifyToken(ctx, u.ID); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "validate failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "user enabled"})
}

// Login verifies credentials and returns a signed access token.
// Unknown email and wrong password are indistinguishable on the wire;
// an existing but unverified account gets 403 instead.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid request body"})
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "email and password are required"})
	}

	u, err := h.Users.GetByEmail(c.Request().Context(), req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return c.JSON(http.StatusUnauthorized, echo.Map{"message": "invalid credentials"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "login failed"})
	}
	if !utils.VerifyPassword(u.PasswordHash, req.Password) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "invalid credentials"})
	}
	if !u.Verified() {
		return c.JSON(http.StatusForbidden, echo.Map{"message": "account not enabled"})
	}

	access, err := utils.NewAccessToken(h.Cfg.JWTSecret, u.ID, u.Email, u.Name, u.Surname, h.Cfg.AccessTTLMin)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "issue token failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"token": access.Token})
}

// Me returns the authenticated user's profile. JWTAuth has already
// loaded the account into the context.
func (h *AuthHandler) Me(c echo.Context) error {
	u, ok := c.Get(middleware.CtxUser).(model.User)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
	}
	return c.JSON(http.StatusOK, userResp{ID: u.ID, Name: u.Name, Surname: u.Surname, Email: u.Email})
}
