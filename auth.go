package main

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"lg/wellness-go-api/internal/identity"
	"lg/wellness-go-api/internal/wellness"
)

// register creates an account and returns its auth token.
// POST /api/register (public). Public sign-ups always get the user role.
func (h *Handler) register(c *gin.Context) {
	var body identity.NewUser
	if err := c.ShouldBindJSON(&body); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	body.Role = identity.RoleUser

	u, token, err := h.users.Create(c, body)
	if errors.Is(err, identity.ErrEmailTaken) {
		apiError(c, http.StatusConflict, "email already registered")
		return
	}
	if err != nil {
		failWith(c, err, "failed to register")
		return
	}

	c.JSON(http.StatusCreated, authResponse{Token: token, User: u})
}

// login verifies email/password and returns the user's auth token.
// POST /api/login (public).
func (h *Handler) login(c *gin.Context) {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	u, token, err := h.users.Authenticate(c, body.Email, body.Password)
	if errors.Is(err, identity.ErrInvalidCredentials) {
		apiError(c, http.StatusUnauthorized, "invalid credentials")
		return
	}
	if err != nil {
		failWith(c, err, "failed to log in")
		return
	}

	c.JSON(http.StatusOK, authResponse{Token: token, User: u})
}

// logout invalidates the current token and clears the user's partition.
// POST /api/logout.
func (h *Handler) logout(c *gin.Context) {
	u, _ := currentUser(c)
	if _, err := h.users.RotateToken(c, u.ID); err != nil {
		failWith(c, err, "failed to log out")
		return
	}
	if err := h.clearPartition(c, u.ID); err != nil {
		failWith(c, err, "failed to clear user data")
		return
	}
	c.Status(http.StatusNoContent)
}

/* ─── Middleware ──────────────────────────────────────────────────────── */

// socketPath is the only route that accepts ?token=, since browsers can't set
// headers on websocket upgrades. It is also left out of the access log.
const socketPath = "/api/reminders/ws"

// authMiddleware resolves the caller. Without credentials the request runs in
// the guest partition; a token that doesn't match any user is rejected.
func (h *Handler) authMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		var token string
		if c.FullPath() == socketPath {
			token = c.Query("token")
		}
		if header := c.GetHeader("Authorization"); header != "" {
			if !strings.HasPrefix(header, "Bearer ") {
				apiError(c, http.StatusUnauthorized, "invalid authorization header")
				c.Abort()
				return
			}
			token = strings.TrimPrefix(header, "Bearer ")
		}

		if token == "" {
			c.Set("partition", wellness.GuestPartition)
			c.Next()
			return
		}

		u, err := h.users.ByToken(c, token)
		if err != nil {
			apiError(c, http.StatusUnauthorized, "invalid token")
			c.Abort()
			return
		}

		c.Set("user", u)
		c.Set("partition", u.ID)
		c.Next()
	}
}

// requireUser rejects guest requests.
func requireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := currentUser(c); !ok {
			apiError(c, http.StatusUnauthorized, "login required")
			c.Abort()
			return
		}
		c.Next()
	}
}

// requireAdmin rejects guests with 401 and non-admins with 403.
func requireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		u, ok := currentUser(c)
		if !ok {
			apiError(c, http.StatusUnauthorized, "login required")
			c.Abort()
			return
		}
		if !u.IsAdmin() {
			apiError(c, http.StatusForbidden, "admin only")
			c.Abort()
			return
		}
		c.Next()
	}
}

func currentUser(c *gin.Context) (identity.User, bool) {
	v, ok := c.Get("user")
	if !ok {
		return identity.User{}, false
	}
	u, ok := v.(identity.User)
	return u, ok
}

func partition(c *gin.Context) string {
	if p := c.GetString("partition"); p != "" {
		return p
	}
	return wellness.GuestPartition
}
