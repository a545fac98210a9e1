package rips

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/RogansDev/romedicals-api/internal/authz"
	"github.com/RogansDev/romedicals-api/internal/handler"
	"github.com/RogansDev/romedicals-api/internal/middleware"
	"github.com/RogansDev/romedicals-api/internal/model"
	"github.com/RogansDev/romedicals-api/internal/service/rips"
	"github.com/RogansDev/romedicals-api/pkg/apperror"
)

type Handler struct {
	service *rips.Service
}

func NewHandler(service *rips.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup, authMw *middleware.AuthMiddleware) {
	records := r.Group("/rips")
	{
		records.POST("", authMw.RequirePermission(authz.ModuleRIPS, authz.ActionCreate), h.Create)
		records.GET("", authMw.RequirePermission(authz.ModuleRIPS, authz.ActionRead), h.List)
		records.GET("/:id", authMw.RequirePermission(authz.ModuleRIPS, authz.ActionRead), h.Get)
		records.PUT("/:id", authMw.RequirePermission(authz.ModuleRIPS, authz.ActionUpdate), h.Update)
		records.PATCH("/:id/status", authMw.RequirePermission(authz.ModuleRIPS, authz.ActionUpdate), h.UpdateStatus)
		records.DELETE("/:id", authMw.RequirePermission(authz.ModuleRIPS, authz.ActionDelete), h.Delete)
	}
}

func (h *Handler) Create(c *gin.Context) {
	var req model.CreateRIPSRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.BindError(c, err)
		return
	}

	identity, _ := middleware.Identity(c)
	record, err := h.service.Create(c.Request.Context(), identity, &req)
	if err != nil {
		handler.Error(c, err)
		return
	}
	handler.Created(c, record)
}

func (h *Handler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		handler.Error(c, apperror.New(apperror.KindValidation, "invalid billing record ID"))
		return
	}

	record, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		handler.Error(c, err)
		return
	}
	handler.OK(c, record)
}

func (h *Handler) List(c *gin.Context) {
	filters := &model.RIPSFilters{Status: model.RIPSStatus(c.Query("status"))}
	if patientID := c.Query("patient_id"); patientID != "" {
		id, err := uuid.Parse(patientID)
		if err != nil {
			handler.Error(c, apperror.New(apperror.KindValidation, "invalid patient ID"))
			return
		}
		filters.PatientID = id
	}

	records, err := h.service.List(c.Request.Context(), filters)
	if err != nil {
		handler.Error(c, err)
		return
	}
	handler.OK(c, records)
}

func (h *Handler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		handler.Error(c, apperror.New(apperror.KindValidation, "invalid billing record ID"))
		return
	}

	var req model.UpdateRIPSRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.BindError(c, err)
		return
	}

	identity, _ := middleware.Identity(c)
	record, err := h.service.Update(c.Request.Context(), identity, id, &req)
	if err != nil {
		handler.Error(c, err)
		return
	}
	handler.OK(c, record)
}

func (h *Handler) UpdateStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		handler.Error(c, apperror.New(apperror.KindValidation, "invalid billing record ID"))
		return
	}

	var req model.UpdateRIPSStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.BindError(c, err)
		return
	}

	identity, _ := middleware.Identity(c)
	record, err := h.service.UpdateStatus(c.Request.Context(), identity, id, req.Status)
	if err != nil {
		handler.Error(c, err)
		return
	}
	handler.OK(c, record)
}

func (h *Handler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		handler.Error(c, apperror.New(apperror.KindValidation, "invalid billing record ID"))
		return
	}

	identity, _ := middleware.Identity(c)
	if err := h.service.Delete(c.Request.Context(), identity, id); err != nil {
		handler.Error(c, err)
		return
	}
	handler.OK(c, gin.H{"message": "billing record deleted"})
}
