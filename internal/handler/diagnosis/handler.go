package diagnosis

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/RogansDev/romedicals-api/internal/authz"
	"github.com/RogansDev/romedicals-api/internal/handler"
	"github.com/RogansDev/romedicals-api/internal/middleware"
	"github.com/RogansDev/romedicals-api/internal/model"
	"github.com/RogansDev/romedicals-api/internal/service/diagnosis"
	"github.com/RogansDev/romedicals-api/pkg/apperror"
)

type Handler struct {
	service *diagnosis.Service
}

func NewHandler(service *diagnosis.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup, authMw *middleware.AuthMiddleware) {
	diagnoses := r.Group("/diagnoses")
	{
		diagnoses.POST("", authMw.RequirePermission(authz.ModuleDiagnoses, authz.ActionCreate), h.Create)
		diagnoses.GET("", authMw.RequirePermission(authz.ModuleDiagnoses, authz.ActionRead), h.List)
		diagnoses.GET("/:id", authMw.RequirePermission(authz.ModuleDiagnoses, authz.ActionRead), h.Get)
		diagnoses.PUT("/:id", authMw.RequirePermission(authz.ModuleDiagnoses, authz.ActionUpdate), h.Update)
		diagnoses.DELETE("/:id", authMw.RequirePermission(authz.ModuleDiagnoses, authz.ActionDelete), h.Delete)
	}
}

func (h *Handler) Create(c *gin.Context) {
	var req model.CreateDiagnosisRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.BindError(c, err)
		return
	}

	identity, _ := middleware.Identity(c)
	d, err := h.service.Create(c.Request.Context(), identity, &req)
	if err != nil {
		handler.Error(c, err)
		return
	}
	handler.Created(c, d)
}

func (h *Handler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		handler.Error(c, apperror.New(apperror.KindValidation, "invalid diagnosis ID"))
		return
	}

	d, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		handler.Error(c, err)
		return
	}
	handler.OK(c, d)
}

func (h *Handler) List(c *gin.Context) {
	diagnoses, err := h.service.List(c.Request.Context(), c.Query("search"))
	if err != nil {
		handler.Error(c, err)
		return
	}
	handler.OK(c, diagnoses)
}

func (h *Handler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		handler.Error(c, apperror.New(apperror.KindValidation, "invalid diagnosis ID"))
		return
	}

	var req model.UpdateDiagnosisRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.BindError(c, err)
		return
	}

	identity, _ := middleware.Identity(c)
	d, err := h.service.Update(c.Request.Context(), identity, id, &req)
	if err != nil {
		handler.Error(c, err)
		return
	}
	handler.OK(c, d)
}

func (h *Handler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		handler.Error(c, apperror.New(apperror.KindValidation, "invalid diagnosis ID"))
		return
	}

	identity, _ := middleware.Identity(c)
	if err := h.service.Delete(c.Request.Context(), identity, id); err != nil {
		handler.Error(c, err)
		return
	}
	handler.OK(c, gin.H{"message": "diagnosis deleted"})
}
