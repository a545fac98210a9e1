package user

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/RogansDev/romedicals-api/internal/authz"
	"github.com/RogansDev/romedicals-api/internal/handler"
	"github.com/RogansDev/romedicals-api/internal/middleware"
	"github.com/RogansDev/romedicals-api/internal/model"
	"github.com/RogansDev/romedicals-api/internal/service/user"
	"github.com/RogansDev/romedicals-api/pkg/apperror"
)

type Handler struct {
	service *user.Service
}

func NewHandler(service *user.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup, authMw *middleware.AuthMiddleware) {
	users := r.Group("/users")
	{
		users.POST("", authMw.RequirePermission(authz.ModuleUsers, authz.ActionCreate), h.Create)
		users.GET("", authMw.RequirePermission(authz.ModuleUsers, authz.ActionRead), h.List)
		users.GET("/doctors", authMw.RequirePermission(authz.ModuleUsers, authz.ActionRead), h.Doctors)
		users.GET("/:id", authMw.RequirePermission(authz.ModuleUsers, authz.ActionRead), h.Get)
		users.PUT("/:id", authMw.RequirePermission(authz.ModuleUsers, authz.ActionUpdate), h.Update)
		users.DELETE("/:id", authMw.RequirePermission(authz.ModuleUsers, authz.ActionDelete), h.Deactivate)
	}
}

func (h *Handler) Create(c *gin.Context) {
	var req model.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.BindError(c, err)
		return
	}

	identity, _ := middleware.Identity(c)
	u, err := h.service.Create(c.Request.Context(), identity, &req)
	if err != nil {
		handler.Error(c, err)
		return
	}
	handler.Created(c, u)
}

func (h *Handler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		handler.Error(c, apperror.New(apperror.KindValidation, "invalid user ID"))
		return
	}

	u, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		handler.Error(c, err)
		return
	}
	handler.OK(c, u)
}

func (h *Handler) List(c *gin.Context) {
	filters := &model.UserFilters{
		Role:   authz.Role(c.Query("role")),
		Search: c.Query("search"),
	}
	if active := c.Query("active"); active != "" {
		v := active == "true"
		filters.Active = &v
	}

	users, err := h.service.List(c.Request.Context(), filters)
	if err != nil {
		handler.Error(c, err)
		return
	}
	handler.OK(c, users)
}

func (h *Handler) Doctors(c *gin.Context) {
	doctors, err := h.service.Doctors(c.Request.Context())
	if err != nil {
		handler.Error(c, err)
		return
	}
	handler.OK(c, doctors)
}

func (h *Handler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		handler.Error(c, apperror.New(apperror.KindValidation, "invalid user ID"))
		return
	}

	var req model.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.BindError(c, err)
		return
	}

	identity, _ := middleware.Identity(c)
	u, err := h.service.Update(c.Request.Context(), identity, id, &req)
	if err != nil {
		handler.Error(c, err)
		return
	}
	handler.OK(c, u)
}

func (h *Handler) Deactivate(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		handler.Error(c, apperror.New(apperror.KindValidation, "invalid user ID"))
		return
	}

	identity, _ := middleware.Identity(c)
	if err := h.service.Deactivate(c.Request.Context(), identity, id); err != nil {
		handler.Error(c, err)
		return
	}
	handler.OK(c, gin.H{"message": "user deactivated"})
}
