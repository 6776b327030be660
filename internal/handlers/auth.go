package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/listkeeper-dev/listkeeper/internal/apperrors"
	"github.com/listkeeper-dev/listkeeper/internal/logging"
	"github.com/listkeeper-dev/listkeeper/internal/models"
	"github.com/listkeeper-dev/listkeeper/internal/session"
	"github.com/listkeeper-dev/listkeeper/internal/store"
	"github.com/listkeeper-dev/listkeeper/internal/types"
	"github.com/listkeeper-dev/listkeeper/internal/utils"
	"golang.org/x/crypto/bcrypt"
)

type RegisterRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
	Confirm  string `json:"confirm" binding:"required"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type AuthHandler struct {
	users    store.UserStore
	sessions *session.Manager
	cookies  session.Cookies
	log      logging.Logger
}

func NewAuthHandler(users store.UserStore, sessions *session.Manager, cookies session.Cookies, log logging.Logger) *AuthHandler {
	return &AuthHandler{users: users, sessions: sessions, cookies: cookies, log: log}
}

// Register creates an account. It does not log the new account in.
func (h *AuthHandler) Register(ctx *gin.Context) {
	var body RegisterRequest

	if err := ctx.BindJSON(&body); err != nil {
		fail(ctx, apperrors.ErrValidation, "All fields are required")
		return
	}

	body.Username = strings.TrimSpace(body.Username)

	if body.Username == "" {
		fail(ctx, apperrors.ErrValidation, "All fields are required")
		return
	}

	if body.Password != body.Confirm {
		fail(ctx, apperrors.ErrValidation, "Passwords do not match")
		return
	}

	_, err := h.users.FindByUsername(ctx.Request.Context(), body.Username)

	if err == nil {
		fail(ctx, apperrors.ErrConflict, "Username already exists")
		return
	}

	if !errors.Is(err, apperrors.ErrNotFound) {
		h.log.Error(ctx.Request.Context(), "checking existing user", "error", err)
		fail(ctx, apperrors.ErrStore, "Internal server error")
		return
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(body.Password), bcrypt.DefaultCost)

	if err != nil {
		h.log.Error(ctx.Request.Context(), "hashing password", "error", err)
		fail(ctx, apperrors.ErrStore, "Internal server error")
		return
	}

	newUser := models.User{
		Username:     body.Username,
		Name:         body.Username,
		PasswordHash: string(passwordHash),
	}

	if err := h.users.Create(ctx.Request.Context(), &newUser); err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			fail(ctx, apperrors.ErrConflict, "Username already exists")
			return
		}
		h.log.Error(ctx.Request.Context(), "creating user", "error", err)
		fail(ctx, apperrors.ErrStore, "Internal server error")
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{"success": true, "message": "Registered successfully!"})
}

// Login verifies credentials and establishes a session. The body carries no
// sensitive data; the token travels only in the cookie.
func (h *AuthHandler) Login(ctx *gin.Context) {
	var body LoginRequest

	if err := ctx.BindJSON(&body); err != nil {
		fail(ctx, apperrors.ErrValidation, "All fields are required")
		return
	}

	user, err := h.users.FindByUsername(ctx.Request.Context(), strings.TrimSpace(body.Username))

	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			fail(ctx, apperrors.ErrNotFound, "User not found")
			return
		}
		h.log.Error(ctx.Request.Context(), "fetching user", "error", err)
		fail(ctx, apperrors.ErrStore, "Internal server error")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(body.Password)); err != nil {
		fail(ctx, apperrors.ErrAuth, "Wrong password")
		return
	}

	sess, err := h.sessions.Create(ctx.Request.Context(), user.ID)

	if err != nil {
		h.log.Error(ctx.Request.Context(), "creating session", "error", err)
		fail(ctx, apperrors.ErrStore, "Internal server error")
		return
	}

	h.cookies.Write(ctx, sess.Token, h.sessions.TTL())

	ctx.JSON(http.StatusOK, gin.H{"success": true, "message": "Login success"})
}

// Logout destroys the current session, if any, and clears the cookie.
func (h *AuthHandler) Logout(ctx *gin.Context) {
	token := session.Token(ctx)

	if err := h.sessions.Destroy(ctx.Request.Context(), token); err != nil {
		h.log.Error(ctx.Request.Context(), "destroying session", "error", err)
	}

	h.cookies.Clear(ctx)

	ctx.JSON(http.StatusOK, gin.H{"success": true})
}

// Me echoes the authenticated account.
func (h *AuthHandler) Me(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		fail(ctx, apperrors.ErrAuth, "Not logged in")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"user": types.UserResponse{
			ID:       currentUser.ID,
			Username: currentUser.Username,
			Name:     currentUser.Name,
		},
	})
}
