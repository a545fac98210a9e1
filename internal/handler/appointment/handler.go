package appointment

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/RogansDev/romedicals-api/internal/authz"
	"github.com/RogansDev/romedicals-api/internal/handler"
	"github.com/RogansDev/romedicals-api/internal/middleware"
	"github.com/RogansDev/romedicals-api/internal/model"
	"github.com/RogansDev/romedicals-api/internal/service/appointment"
	"github.com/RogansDev/romedicals-api/pkg/apperror"
)

type Handler struct {
	service *appointment.Service
}

func NewHandler(service *appointment.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup, authMw *middleware.AuthMiddleware) {
	appointments := r.Group("/appointments")
	{
		appointments.POST("", authMw.RequirePermission(authz.ModuleAppointments, authz.ActionCreate), h.Create)
		appointments.GET("", authMw.RequirePermission(authz.ModuleAppointments, authz.ActionRead), h.List)
		appointments.GET("/availability", authMw.RequirePermission(authz.ModuleAppointments, authz.ActionRead), h.Availability)
		appointments.GET("/:id", authMw.RequirePermission(authz.ModuleAppointments, authz.ActionRead), h.Get)
		appointments.PUT("/:id", authMw.RequirePermission(authz.ModuleAppointments, authz.ActionUpdate), h.Update)
		appointments.PATCH("/:id/status", authMw.RequirePermission(authz.ModuleAppointments, authz.ActionUpdate), h.UpdateStatus)
		appointments.DELETE("/:id", authMw.RequirePermission(authz.ModuleAppointments, authz.ActionDelete), h.Delete)
	}
}

func (h *Handler) Create(c *gin.Context) {
	var req model.CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.BindError(c, err)
		return
	}

	identity, _ := middleware.Identity(c)
	apt, err := h.service.Create(c.Request.Context(), identity, &req)
	if err != nil {
		handler.Error(c, err)
		return
	}
	handler.Created(c, apt)
}

func (h *Handler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		handler.Error(c, apperror.New(apperror.KindValidation, "invalid appointment ID"))
		return
	}

	apt, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		handler.Error(c, err)
		return
	}
	handler.OK(c, apt)
}

func (h *Handler) List(c *gin.Context) {
	filters := &model.AppointmentFilters{
		Date:   c.Query("date"),
		Status: model.AppointmentStatus(c.Query("status")),
	}
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

	appointments, err := h.service.List(c.Request.Context(), filters)
	if err != nil {
		handler.Error(c, err)
		return
	}
	handler.OK(c, appointments)
}

func (h *Handler) Availability(c *gin.Context) {
	doctorID, err := uuid.Parse(c.Query("doctor_id"))
	if err != nil {
		handler.Error(c, apperror.New(apperror.KindValidation, "invalid doctor ID"))
		return
	}
	date := c.Query("date")
	if date == "" {
		handler.Error(c, apperror.New(apperror.KindValidation, "date is required"))
		return
	}

	slots, err := h.service.Availability(c.Request.Context(), doctorID, date)
	if err != nil {
		handler.Error(c, err)
		return
	}
	handler.OK(c, slots)
}

func (h *Handler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		handler.Error(c, apperror.New(apperror.KindValidation, "invalid appointment ID"))
		return
	}

	var req model.UpdateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.BindError(c, err)
		return
	}

	identity, _ := middleware.Identity(c)
	apt, err := h.service.Update(c.Request.Context(), identity, id, &req)
	if err != nil {
		handler.Error(c, err)
		return
	}
	handler.OK(c, apt)
}

func (h *Handler) UpdateStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		handler.Error(c, apperror.New(apperror.KindValidation, "invalid appointment ID"))
		return
	}

	var req model.UpdateAppointmentStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.BindError(c, err)
		return
	}

	identity, _ := middleware.Identity(c)
	apt, err := h.service.UpdateStatus(c.Request.Context(), identity, id, req.Status)
	if err != nil {
		handler.Error(c, err)
		return
	}
	handler.OK(c, apt)
}

func (h *Handler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		handler.Error(c, apperror.New(apperror.KindValidation, "invalid appointment ID"))
		return
	}

	identity, _ := middleware.Identity(c)
	if err := h.service.Delete(c.Request.Context(), identity, id); err != nil {
		handler.Error(c, err)
		return
	}
	handler.OK(c, gin.H{"message": "appointment deleted"})
}
