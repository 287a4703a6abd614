package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/wedding-vendors/internal/httperr"
	"github.com/BruksfildServices01/wedding-vendors/internal/httpresp"
	"github.com/BruksfildServices01/wedding-vendors/internal/middleware"
	"github.com/BruksfildServices01/wedding-vendors/internal/usecase/account"
)

// ======================================================
// HANDLER
// ======================================================

type AuthHandler struct {
	register     *account.Register
	login        *account.Login
	tokenTTL     time.Duration
	secureCookie bool
}

func NewAuthHandler(
	register *account.Register,
	login *account.Login,
	tokenTTL time.Duration,
	secureCookie bool,
) *AuthHandler {
	return &AuthHandler{
		register:     register,
		login:        login,
		tokenTTL:     tokenTTL,
		secureCookie: secureCookie,
	}
}

// ======================================================
// REGISTER
// ======================================================

func (h *AuthHandler) Register(c *gin.Context) {
	var req account.RegisterInput
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Respond(c, httperr.ErrMalformed("Invalid request body", err))
		return
	}

	session, err := h.register.Execute(c.Request.Context(), req)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	h.setTokenCookie(c, session.Token)
	httpresp.Created(c, session)
}

// ======================================================
// LOGIN
// ======================================================

func (h *AuthHandler) Login(c *gin.Context) {
	var req account.LoginInput
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Respond(c, httperr.ErrMalformed("Invalid request body", err))
		return
	}

	session, err := h.login.Execute(c.Request.Context(), req)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	h.setTokenCookie(c, session.Token)
	httpresp.OK(c, session)
}

func (h *AuthHandler) setTokenCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(
		middleware.TokenCookie,
		token,
		int(h.tokenTTL.Seconds()),
		"/",
		"",
		h.secureCookie,
		true,
	)
}
