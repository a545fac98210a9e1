package specialty

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/RogansDev/romedicals-api/internal/authz"
	"github.com/RogansDev/romedicals-api/internal/handler"
	"github.com/RogansDev/romedicals-api/internal/middleware"
	"github.com/RogansDev/romedicals-api/internal/model"
	"github.com/RogansDev/romedicals-api/internal/service/specialty"
	"github.com/RogansDev/romedicals-api/pkg/apperror"
)

type Handler struct {
	service *specialty.Service
}

func NewHandler(service *specialty.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup, authMw *middleware.AuthMiddleware) {
	specialties := r.Group("/specialties")
	{
		specialties.POST("", authMw.RequirePermission(authz.ModuleSpecialties, authz.ActionCreate), h.Create)
		specialties.GET("", authMw.RequirePermission(authz.ModuleSpecialties, authz.ActionRead), h.List)
		specialties.GET("/:id", authMw.RequirePermission(authz.ModuleSpecialties, authz.ActionRead), h.Get)
		specialties.PUT("/:id", authMw.RequirePermission(authz.ModuleSpecialties, authz.ActionUpdate), h.Update)
		specialties.DELETE("/:id", authMw.RequirePermission(authz.ModuleSpecialties, authz.ActionDelete), h.Delete)
	}
}

func (h *Handler) Create(c *gin.Context) {
	var req model.CreateSpecialtyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.BindError(c, err)
		return
	}

	identity, _ := middleware.Identity(c)
	sp, err := h.service.Create(c.Request.Context(), identity, &req)
	if err != nil {
		handler.Error(c, err)
		return
	}
	handler.Created(c, sp)
}

func (h *Handler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		handler.Error(c, apperror.New(apperror.KindValidation, "invalid specialty ID"))
		return
	}

	sp, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		handler.Error(c, err)
		return
	}
	handler.OK(c, sp)
}

func (h *Handler) List(c *gin.Context) {
	specialties, err := h.service.List(c.Request.Context())
	if err != nil {
		handler.Error(c, err)
		return
	}
	handler.OK(c, specialties)
}

func (h *Handler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		handler.Error(c, apperror.New(apperror.KindValidation, "invalid specialty ID"))
		return
	}

	var req model.UpdateSpecialtyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.BindError(c, err)
		return
	}

	identity, _ := middleware.Identity(c)
	sp, err := h.service.Update(c.Request.Context(), identity, id, &req)
	if err != nil {
		handler.Error(c, err)
		return
	}
	handler.OK(c, sp)
}

func (h *Handler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		handler.Error(c, apperror.New(apperror.KindValidation, "invalid specialty ID"))
		return
	}

	identity, _ := middleware.Identity(c)
	if err := h.service.Delete(c.Request.Context(), identity, id); err != nil {
		handler.Error(c, err)
		return
	}
	handler.OK(c, gin.H{"message": "specialty deleted"})
}
