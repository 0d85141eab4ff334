package handler

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/hardikmakkar07/CineBooker/internal/config"
	"github.com/hardikmakkar07/CineBooker/internal/middleware"
	"github.com/hardikmakkar07/CineBooker/internal/model"
	"github.com/hardikmakkar07/CineBooker/internal/repository"
	"github.com/hardikmakkar07/CineBooker/internal/utils"
)

// UserStore is the credential store consumed by the auth endpoints.
type UserStore interface {
	FindByUsernameOrEmail(ctx context.Context, username, email string) (*model.User, error)
	Create(ctx context.Context, username, email, password, role string, cost int) (uint64, error)
	FindByUsername(ctx context.Context, username string) (model.User, error)
	FindByID(ctx context.Context, id uint64) (model.User, error)
	All(ctx context.Context) ([]model.User, error)
	UpdateByID(ctx context.Context, id uint64, upd repository.UserUpdate, cost int) (model.User, error)
	DeleteByID(ctx context.Context, id uint64) error
}

// TicketExpander resolves ticket references into denormalized views.
type TicketExpander interface {
	ExpandForUser(ctx context.Context, userID uint64) ([]model.TicketView, error)
	ExpandForUsers(ctx context.Context, userIDs []uint64) (map[uint64][]model.TicketView, error)
}

// AuthHandler bundles dependencies for the /auth endpoints.
type AuthHandler struct {
	Cfg     config.Config
	Users   UserStore
	Tickets TicketExpander
}

func NewAuthHandler(cfg config.Config, users UserStore, tickets TicketExpander) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Users: users, Tickets: tickets}
}

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type registerReq struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type loginReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Register handles POST /auth/register: create the account and start a
// session in one step.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerReq
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "Invalid request body")
	}
	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	role := strings.ToLower(strings.TrimSpace(req.Role))
	if role == "" {
		role = model.RoleUser
	}

	// Field problems are collected and reported together, comma-joined.
	var problems []string
	if req.Username == "" {
		problems = append(problems, "Please add a username")
	}
	switch {
	case req.Email == "":
		problems = append(problems, "Please add an email")
	case !emailRe.MatchString(req.Email):
		problems = append(problems, "Please add a valid email")
	}
	switch {
	case req.Password == "":
		problems = append(problems, "Please add a password")
	case len(req.Password) < 6:
		problems = append(problems, "Password must be at least 6 characters")
	}
	if role != model.RoleUser && role != model.RoleAdmin {
		problems = append(problems, "Please provide a valid role")
	}
	if len(problems) > 0 {
		return fail(c, http.StatusBadRequest, strings.Join(problems, ", "))
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	// Pre-check with a single combined lookup so the response can name the
	// colliding field; email wins the tie-break when both collide.
	existing, err := h.Users.FindByUsernameOrEmail(ctx, req.Username, req.Email)
	if err != nil {
		log.Printf("register: user lookup failed: %v", err)
		return fail(c, http.StatusInternalServerError, "Server error during registration")
	}
	if existing != nil {
		if existing.Email == req.Email {
			return fail(c, http.StatusBadRequest, "User with this email already exists")
		}
		return fail(c, http.StatusBadRequest, "Username already taken")
	}

	uid, err := h.Users.Create(ctx, req.Username, req.Email, req.Password, role, h.Cfg.BcryptCost)
	if err != nil {
		// A concurrent registration can lose the unique-index race after
		// passing the pre-check; that loser still gets the conflict
		// message, not a 500.
		var dup *repository.DuplicateError
		if errors.As(err, &dup) {
			return fail(c, http.StatusBadRequest, dup.Error())
		}
		log.Printf("register: create failed: %v", err)
		return fail(c, http.StatusInternalServerError, "Server error during registration")
	}

	u := model.User{ID: uid, Username: req.Username, Email: req.Email, Role: role}
	return h.sendTokenResponse(c, u, http.StatusCreated)
}

// Login handles POST /auth/login. An unknown username and a wrong password
// produce byte-identical responses so accounts cannot be enumerated.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "Invalid request body")
	}
	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" || req.Password == "" {
		return fail(c, http.StatusBadRequest, "Please provide a username and password")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.FindByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fail(c, http.StatusUnauthorized, "Invalid credentials")
		}
		log.Printf("login: user lookup failed: %v", err)
		return fail(c, http.StatusInternalServerError, "Server error during login")
	}
	if !utils.VerifyPassword(u.PasswordHash, req.Password) {
		return fail(c, http.StatusUnauthorized, "Invalid credentials")
	}

	return h.sendTokenResponse(c, u, http.StatusOK)
}

// sendTokenResponse is the session binder: issue the token, set the session
// cookie and write the auth response body. A signing failure is a server
// fault and must never masquerade as bad credentials.
func (h *AuthHandler) sendTokenResponse(c echo.Context, u model.User, status int) error {
	token, err := utils.NewSessionToken(h.Cfg.JWTSecret, u.ID, h.Cfg.JWTExpireDays)
	if err != nil {
		log.Printf("token generation failed: %v", err)
		return fail(c, http.StatusInternalServerError, "Error generating authentication token")
	}

	cookie := &http.Cookie{
		Name:     "token",
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(time.Duration(h.Cfg.CookieExpireDays) * 24 * time.Hour),
		HttpOnly: true,
		Secure:   h.Cfg.Production(),
	}
	c.SetCookie(cookie)

	return ok(c, status, echo.Map{
		"token": token,
		"user": echo.Map{
			"id":       u.ID,
			"username": u.Username,
			"email":    u.Email,
			"role":     u.Role,
		},
	})
}

// Me handles GET /auth/me. The identity middleware has already re-fetched
// the record, so this is a read of the request-scoped user.
func (h *AuthHandler) Me(c echo.Context) error {
	u, ok2 := middleware.CurrentUser(c)
	if !ok2 {
		return fail(c, http.StatusUnauthorized, "Not authorized to access this route")
	}
	return ok(c, http.StatusOK, echo.Map{"data": u})
}

// MyTickets handles GET /auth/tickets: the caller's ticket history with
// every reference expanded.
func (h *AuthHandler) MyTickets(c echo.Context) error {
	u, ok2 := middleware.CurrentUser(c)
	if !ok2 {
		return fail(c, http.StatusUnauthorized, "Not authorized to access this route")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	views, err := h.Tickets.ExpandForUser(ctx, u.ID)
	if err != nil {
		log.Printf("tickets: expansion failed for user %d: %v", u.ID, err)
		return fail(c, http.StatusInternalServerError, "Server error retrieving tickets")
	}
	return ok(c, http.StatusOK, echo.Map{
		"data": model.TicketOwner{ID: u.ID, Tickets: views},
	})
}

// Logout handles GET /auth/logout: overwrite the session cookie with an
// immediately-expiring placeholder. Nothing is invalidated server-side;
// tokens are never stored.
func (h *AuthHandler) Logout(c echo.Context) error {
	c.SetCookie(&http.Cookie{
		Name:     "token",
		Value:    "none",
		Path:     "/",
		Expires:  time.Now().Add(10 * time.Second),
		HttpOnly: true,
		Secure:   h.Cfg.Production(),
	})
	return ok(c, http.StatusOK, echo.Map{"message": "User logged out successfully"})
}

// AllUsers handles GET /auth/users (admin): every user with expanded
// tickets. The expansion runs once over all users, not per user.
func (h *AuthHandler) AllUsers(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	users, err := h.Users.All(ctx)
	if err != nil {
		log.Printf("users: list failed: %v", err)
		return fail(c, http.StatusInternalServerError, "Server error retrieving users")
	}

	ids := make([]uint64, len(users))
	for i, u := range users {
		ids[i] = u.ID
	}
	byUser, err := h.Tickets.ExpandForUsers(ctx, ids)
	if err != nil {
		log.Printf("users: ticket expansion failed: %v", err)
		return fail(c, http.StatusInternalServerError, "Server error retrieving users")
	}

	data := make([]model.UserWithTickets, len(users))
	for i, u := range users {
		tickets := byUser[u.ID]
		if tickets == nil {
			tickets = []model.TicketView{}
		}
		data[i] = model.UserWithTickets{User: u, Tickets: tickets}
	}
	return ok(c, http.StatusOK, echo.Map{"count": len(data), "data": data})
}

// DeleteUser handles DELETE /auth/user/:id (admin). Tickets referencing
// the deleted user are left dangling on purpose; see the schema notes.
func (h *AuthHandler) DeleteUser(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return fail(c, http.StatusBadRequest, "Invalid user id")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Users.DeleteByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fail(c, http.StatusNotFound, fmt.Sprintf("User not found with id of %d", id))
		}
		log.Printf("users: delete %d failed: %v", id, err)
		return fail(c, http.StatusInternalServerError, "Server error deleting user")
	}
	return ok(c, http.StatusOK, echo.Map{"message": "User deleted successfully"})
}

type updateUserReq struct {
	Username *string `json:"username"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
	Role     *string `json:"role"`
}

// UpdateUser handles PUT /auth/user/:id. Admins may update anyone; a user
// may update their own record but not their role.
func (h *AuthHandler) UpdateUser(c echo.Context) error {
	caller, ok2 := middleware.CurrentUser(c)
	if !ok2 {
		return fail(c, http.StatusUnauthorized, "Not authorized to access this route")
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return fail(c, http.StatusBadRequest, "Invalid user id")
	}
	if caller.Role != model.RoleAdmin && caller.ID != id {
		return fail(c, http.StatusForbidden, "Not authorized to update this user")
	}

	var req updateUserReq
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "Invalid request body")
	}

	var problems []string
	if req.Username != nil {
		*req.Username = strings.TrimSpace(*req.Username)
		if *req.Username == "" {
			problems = append(problems, "Please add a username")
		}
	}
	if req.Email != nil {
		*req.Email = strings.ToLower(strings.TrimSpace(*req.Email))
		if !emailRe.MatchString(*req.Email) {
			problems = append(problems, "Please add a valid email")
		}
	}
	if req.Password != nil && len(*req.Password) < 6 {
		problems = append(problems, "Password must be at least 6 characters")
	}
	if req.Role != nil {
		if caller.Role != model.RoleAdmin {
			return fail(c, http.StatusForbidden, "Not authorized to change roles")
		}
		*req.Role = strings.ToLower(strings.TrimSpace(*req.Role))
		if *req.Role != model.RoleUser && *req.Role != model.RoleAdmin {
			problems = append(problems, "Please provide a valid role")
		}
	}
	if len(problems) > 0 {
		return fail(c, http.StatusBadRequest, strings.Join(problems, ", "))
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	updated, err := h.Users.UpdateByID(ctx, id, repository.UserUpdate{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	}, h.Cfg.BcryptCost)
	if err != nil {
		var dup *repository.DuplicateError
		switch {
		case errors.As(err, &dup):
			return fail(c, http.StatusBadRequest, dup.Error())
		case errors.Is(err, repository.ErrNotFound):
			return fail(c, http.StatusNotFound, fmt.Sprintf("User not found with id of %d", id))
		}
		log.Printf("users: update %d failed: %v", id, err)
		return fail(c, http.StatusInternalServerError, "Server error updating user")
	}
	return ok(c, http.StatusOK, echo.Map{"data": updated})
}
