package api

import (
	"net/http"

	"github.com/Domenick1991/seatbooking/internal/service/accounts"
	"github.com/gin-gonic/gin"
)

type AccountHandler struct {
	service    accounts.AccountUseCase
	sessions   *SessionStore
	cookieName string
}

type credentialsRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type sessionResponse struct {
	Username string `json:"username"`
	Token    string `json:"token"`
}

func NewAccountHandler(service accounts.AccountUseCase, sessions *SessionStore, cookieName string) *AccountHandler {
	return &AccountHandler{service: service, sessions: sessions, cookieName: cookieName}
}

func (h *AccountHandler) Register(router *gin.RouterGroup) {
	router.POST("/register", h.register)
	router.POST("/login", h.login)
	router.POST("/logout", h.logout)
	router.GET("/me", h.me)
}

// register creates the account and logs the new user in.
func (h *AccountHandler) register(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.service.Register(c.Request.Context(), req.Username, req.Password); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, h.startSession(c, req.Username))
}

func (h *AccountHandler) login(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.service.Authenticate(c.Request.Context(), req.Username, req.Password); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.startSession(c, req.Username))
}

func (h *AccountHandler) logout(c *gin.Context) {
	if token := c.GetString(contextTokenKey); token != "" {
		h.sessions.Delete(token)
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookieName, "", -1, "/", "", false, true)
	c.Status(http.StatusNoContent)
}

func (h *AccountHandler) me(c *gin.Context) {
	username, ok := CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "login required"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"username": username})
}

func (h *AccountHandler) startSession(c *gin.Context, username string) sessionResponse {
	token := h.sessions.Create(username)
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookieName, token, int(h.sessions.TTL().Seconds()), "/", "", false, true)
	return sessionResponse{Username: username, Token: token}
}
