package auth

import (
	"github.com/gin-gonic/gin"

	"github.com/RogansDev/romedicals-api/internal/handler"
	"github.com/RogansDev/romedicals-api/internal/middleware"
	"github.com/RogansDev/romedicals-api/internal/model"
	"github.com/RogansDev/romedicals-api/internal/service/auth"
	"github.com/RogansDev/romedicals-api/pkg/apperror"
)

type Handler struct {
	service *auth.Service
}

func NewHandler(service *auth.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup, authMw *middleware.AuthMiddleware) {
	group := r.Group("/auth")
	{
		group.POST("/login", h.Login)
		group.POST("/register", h.Register)
		group.POST("/logout", h.Logout)
		group.GET("/me", authMw.Authenticate(), h.Me)
	}
}

func (h *Handler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.BindError(c, err)
		return
	}

	resp, err := h.service.Login(c.Request.Context(), &req)
	if err != nil {
		handler.Error(c, err)
		return
	}
	handler.OK(c, resp)
}

func (h *Handler) Register(c *gin.Context) {
	var req model.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.BindError(c, err)
		return
	}

	resp, err := h.service.Register(c.Request.Context(), &req)
	if err != nil {
		handler.Error(c, err)
		return
	}
	handler.Created(c, resp)
}

// Logout exists for API symmetry. Tokens are stateless, so there is nothing
// to revoke server-side; clients discard the token.
func (h *Handler) Logout(c *gin.Context) {
	handler.OK(c, gin.H{"message": "logged out"})
}

func (h *Handler) Me(c *gin.Context) {
	identity, ok := middleware.Identity(c)
	if !ok {
		handler.Error(c, apperror.New(apperror.KindUnauthenticated, "no authenticated identity"))
		return
	}
	handler.OK(c, identity)
}
