package handler

import (
	"io"
	"net/http"
	"time"

	"github.com/DiegoMeloCoder/FidelizDiego/internal/dto"
	"github.com/DiegoMeloCoder/FidelizDiego/internal/middleware"
	"github.com/DiegoMeloCoder/FidelizDiego/internal/service"
	"github.com/DiegoMeloCoder/FidelizDiego/internal/session"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	svc      service.AuthService
	notifier *session.Notifier
}

func NewAuthHandler(svc service.AuthService, notifier *session.Notifier) *AuthHandler {
	return &AuthHandler{svc: svc, notifier: notifier}
}

// Login godoc
// @Summary Sign in with e-mail and password
// @Tags auth
// @Accept json
// @Produce json
// @Param body body dto.LoginRequest true "Credentials"
// @Success 200 {object} dto.LoginResponse
// @Failure 401 {object} apierror.APIError
// @Router /v1/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !bindAndValidate(c, &req) {
		return
	}

	resp, err := h.svc.SignIn(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *AuthHandler) Refresh(c *gin.Context) {
	var req dto.RefreshRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Logout godoc
// @Summary Sign out and revoke the current session
// @Tags auth
// @Security BearerAuth
// @Success 204
// @Router /v1/auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.svc.SignOut(c.Request.Context(), middleware.GetSession(c)); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *AuthHandler) Me(c *gin.Context) {
	resp, err := h.svc.Me(c.Request.Context(), middleware.GetSession(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

const sseKeepAlive = 25 * time.Second

// Events streams the caller's sign-in/sign-out changes as Server-Sent Events
// until the client disconnects.
func (h *AuthHandler) Events(c *gin.Context) {
	sess := middleware.GetSession(c)
	events, unsubscribe := h.notifier.Subscribe(sess.UserID)
	defer unsubscribe()

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")

	ping := time.NewTicker(sseKeepAlive)
	defer ping.Stop()

	ctx := c.Request.Context()
	c.Stream(func(_ io.Writer) bool {
		select {
		case <-ctx.Done():
			return false
		case ev, ok := <-events:
			if !ok {
				return false
			}
			c.SSEvent("session", dto.SessionEvent{
				UserID: ev.UserID.String(),
				Type:   ev.Type,
				At:     ev.At.UTC().Format(time.RFC3339),
			})
			return true
		case <-ping.C:
			c.SSEvent("ping", "")
			return true
		}
	})
}
