package evolution

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/RogansDev/romedicals-api/internal/authz"
	"github.com/RogansDev/romedicals-api/internal/handler"
	"github.com/RogansDev/romedicals-api/internal/middleware"
	"github.com/RogansDev/romedicals-api/internal/model"
	"github.com/RogansDev/romedicals-api/internal/service/evolution"
	"github.com/RogansDev/romedicals-api/pkg/apperror"
)

type Handler struct {
	service *evolution.Service
}

func NewHandler(service *evolution.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup, authMw *middleware.AuthMiddleware) {
	evolutions := r.Group("/evolutions")
	{
		evolutions.POST("", authMw.RequirePermission(authz.ModuleEvolutions, authz.ActionCreate), h.Create)
		evolutions.GET("/:id", authMw.RequirePermission(authz.ModuleEvolutions, authz.ActionRead), h.Get)
		evolutions.PUT("/:id", authMw.RequirePermission(authz.ModuleEvolutions, authz.ActionUpdate), h.Update)
		evolutions.DELETE("/:id", authMw.RequirePermission(authz.ModuleEvolutions, authz.ActionDelete), h.Delete)
	}

	notes := r.Group("/clinical-notes")
	{
		notes.GET("/:id/evolutions", authMw.RequirePermission(authz.ModuleEvolutions, authz.ActionRead), h.ListByClinicalNote)
	}
}

func (h *Handler) Create(c *gin.Context) {
	var req model.CreateEvolutionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.BindError(c, err)
		return
	}

	identity, _ := middleware.Identity(c)
	ev, err := h.service.Create(c.Request.Context(), identity, &req)
	if err != nil {
		handler.Error(c, err)
		return
	}
	handler.Created(c, ev)
}

func (h *Handler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		handler.Error(c, apperror.New(apperror.KindValidation, "invalid evolution ID"))
		return
	}

	ev, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		handler.Error(c, err)
		return
	}
	handler.OK(c, ev)
}

func (h *Handler) ListByClinicalNote(c *gin.Context) {
	noteID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		handler.Error(c, apperror.New(apperror.KindValidation, "invalid clinical note ID"))
		return
	}

	evolutions, err := h.service.ListByClinicalNote(c.Request.Context(), noteID)
	if err != nil {
		handler.Error(c, err)
		return
	}
	handler.OK(c, evolutions)
}

func (h *Handler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		handler.Error(c, apperror.New(apperror.KindValidation, "invalid evolution ID"))
		return
	}

	var req model.UpdateEvolutionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.BindError(c, err)
		return
	}

	identity, _ := middleware.Identity(c)
	ev, err := h.service.Update(c.Request.Context(), identity, id, &req)
	if err != nil {
		handler.Error(c, err)
		return
	}
	handler.OK(c, ev)
}

func (h *Handler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		handler.Error(c, apperror.New(apperror.KindValidation, "invalid evolution ID"))
		return
	}

	identity, _ := middleware.Identity(c)
	if err := h.service.Delete(c.Request.Context(), identity, id); err != nil {
		handler.Error(c, err)
		return
	}
	handler.OK(c, gin.H{"message": "evolution deleted"})
}
