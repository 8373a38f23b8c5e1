package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"

	"github.com/TejasKeerthi/yatra-smart-guide/internal/app/models"
	"github.com/TejasKeerthi/yatra-smart-guide/internal/app/observability/metrics"
	"github.com/TejasKeerthi/yatra-smart-guide/internal/pkg/config"
)

// CookieName is the cookie carrying the signed session token.
const CookieName = "auth_token"

type Handler struct {
	manager *SessionManager
	jwtCfg  config.JWTConfig
	logger  *zap.Logger

	// onLogout releases per-session resources held elsewhere. May be nil.
	onLogout func(uid string)
}

func NewHandler(manager *SessionManager, jwtCfg config.JWTConfig, logger *zap.Logger, onLogout func(uid string)) *Handler {
	return &Handler{manager: manager, jwtCfg: jwtCfg, logger: logger, onLogout: onLogout}
}

type credentialsRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login handles POST /api/auth/login.
func (h *Handler) Login(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email and password are required"})
		return
	}

	session, err := h.manager.LoginWithEmail(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.respondLoginError(c, err)
		return
	}
	h.issueSession(c, session)
}

// Register handles POST /api/auth/register.
func (h *Handler) Register(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email and password are required"})
		return
	}

	session, err := h.manager.RegisterWithEmail(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.respondLoginError(c, err)
		return
	}
	h.issueSession(c, session)
}

// LoginWithGoogle handles POST /api/auth/google.
func (h *Handler) LoginWithGoogle(c *gin.Context) {
	session, err := h.manager.LoginWithGoogle(c.Request.Context())
	if err != nil {
		h.respondLoginError(c, err)
		return
	}
	h.issueSession(c, session)
}

// LoginWithMicrosoft handles POST /api/auth/microsoft.
func (h *Handler) LoginWithMicrosoft(c *gin.Context) {
	session, err := h.manager.LoginWithMicrosoft(c.Request.Context())
	if err != nil {
		h.respondLoginError(c, err)
		return
	}
	h.issueSession(c, session)
}

// LoginAsGuest handles POST /api/auth/guest.
func (h *Handler) LoginAsGuest(c *gin.Context) {
	session, err := h.manager.LoginAsGuest(c.Request.Context())
	if err != nil {
		h.respondLoginError(c, err)
		return
	}
	h.issueSession(c, session)
}

// Logout handles POST /api/auth/logout. It clears the cookie and notifies
// session observers.
func (h *Handler) Logout(c *gin.Context) {
	if token, err := c.Cookie(CookieName); err == nil && token != "" {
		if session, err := ValidateToken(token, h.jwtCfg); err == nil {
			h.manager.Logout(session.UID)
			if h.onLogout != nil {
				h.onLogout(session.UID)
			}
		}
	}
	c.SetCookie(CookieName, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, models.Anonymous())
}

// Session handles GET /api/auth/session: it reports who the cookie says
// you are, or the anonymous session.
func (h *Handler) Session(c *gin.Context) {
	token, err := c.Cookie(CookieName)
	if err != nil || token == "" {
		c.JSON(http.StatusOK, models.Anonymous())
		return
	}
	session, err := ValidateToken(token, h.jwtCfg)
	if err != nil {
		c.JSON(http.StatusOK, models.Anonymous())
		return
	}
	c.JSON(http.StatusOK, session)
}

func (h *Handler) issueSession(c *gin.Context, session models.Session) {
	token, err := IssueToken(session, h.jwtCfg)
	if err != nil {
		h.logger.Error("Failed to issue session token", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create session"})
		return
	}
	metrics.Get().AuthRequestsTotal.Add(c.Request.Context(), 1,
		metric.WithAttributes(attribute.String("kind", string(session.Kind))))
	c.SetCookie(CookieName, token, int(h.jwtCfg.TokenTTL.Seconds()), "/", "", false, true)
	c.JSON(http.StatusOK, session)
}

func (h *Handler) respondLoginError(c *gin.Context, err error) {
	switch {
	case models.IsValidation(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case models.IsUnauthenticated(err):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
	default:
		h.logger.Error("Login failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "login failed"})
	}
}
