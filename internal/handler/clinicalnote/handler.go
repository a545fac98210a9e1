package clinicalnote

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/RogansDev/romedicals-api/internal/authz"
	"github.com/RogansDev/romedicals-api/internal/handler"
	"github.com/RogansDev/romedicals-api/internal/middleware"
	"github.com/RogansDev/romedicals-api/internal/model"
	"github.com/RogansDev/romedicals-api/internal/service/clinicalnote"
	"github.com/RogansDev/romedicals-api/pkg/apperror"
)

type Handler struct {
	service *clinicalnote.Service
}

func NewHandler(service *clinicalnote.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup, authMw *middleware.AuthMiddleware) {
	notes := r.Group("/clinical-notes")
	{
		notes.POST("", authMw.RequirePermission(authz.ModuleClinicalNotes, authz.ActionCreate), h.Create)
		notes.GET("", authMw.RequirePermission(authz.ModuleClinicalNotes, authz.ActionRead), h.List)
		notes.GET("/:id", authMw.RequirePermission(authz.ModuleClinicalNotes, authz.ActionRead), h.Get)
		notes.PUT("/:id", authMw.RequirePermission(authz.ModuleClinicalNotes, authz.ActionUpdate), h.Update)
		notes.DELETE("/:id", authMw.RequirePermission(authz.ModuleClinicalNotes, authz.ActionDelete), h.Delete)
	}
}

func (h *Handler) Create(c *gin.Context) {
	var req model.CreateClinicalNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.BindError(c, err)
		return
	}

	identity, _ := middleware.Identity(c)
	note, err := h.service.Create(c.Request.Context(), identity, &req)
	if err != nil {
		handler.Error(c, err)
		return
	}
	handler.Created(c, note)
}

func (h *Handler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		handler.Error(c, apperror.New(apperror.KindValidation, "invalid clinical note ID"))
		return
	}

	note, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		handler.Error(c, err)
		return
	}
	handler.OK(c, note)
}

func (h *Handler) List(c *gin.Context) {
	filters := &model.ClinicalNoteFilters{}
	if patientID := c.Query("patient_id"); patientID != "" {
		id, err := uuid.Parse(patientID)
		if err != nil {
			handler.Error(c, apperror.New(apperror.KindValidation, "invalid patient ID"))
			return
		}
		filters.PatientID = id
	}
	if doctorID := c.Query("doctor_id"); doctorID != "" {
		id, err := uuid.Parse(doctorID)
		if err != nil {
			handler.Error(c, apperror.New(apperror.KindValidation, "invalid doctor ID"))
			return
		}
		filters.DoctorID = id
	}

	notes, err := h.service.List(c.Request.Context(), filters)
	if err != nil {
		handler.Error(c, err)
		return
	}
	handler.OK(c, notes)
}

func (h *Handler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		handler.Error(c, apperror.New(apperror.KindValidation, "invalid clinical note ID"))
		return
	}

	var req model.UpdateClinicalNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.BindError(c, err)
		return
	}

	identity, _ := middleware.Identity(c)
	note, err := h.service.Update(c.Request.Context(), identity, id, &req)
	if err != nil {
		handler.Error(c, err)
		return
	}
	handler.OK(c, note)
}

func (h *Handler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		handler.Error(c, apperror.New(apperror.KindValidation, "invalid clinical note ID"))
		return
	}

	identity, _ := middleware.Identity(c)
	if err := h.service.Delete(c.Request.Context(), identity, id); err != nil {
		handler.Error(c, err)
		return
	}
	handler.OK(c, gin.H{"message": "clinical note deleted"})
}
