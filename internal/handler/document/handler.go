package document

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/RogansDev/romedicals-api/internal/authz"
	"github.com/RogansDev/romedicals-api/internal/handler"
	"github.com/RogansDev/romedicals-api/internal/middleware"
	"github.com/RogansDev/romedicals-api/internal/model"
	"github.com/RogansDev/romedicals-api/internal/service/document"
	"github.com/RogansDev/romedicals-api/pkg/apperror"
)

type Handler struct {
	service *document.Service
}

func NewHandler(service *document.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup, authMw *middleware.AuthMiddleware) {
	documents := r.Group("/documents")
	{
		documents.POST("", authMw.RequirePermission(authz.ModuleDocuments, authz.ActionCreate), h.Upload)
		documents.GET("", authMw.RequirePermission(authz.ModuleDocuments, authz.ActionRead), h.List)
		documents.GET("/:id", authMw.RequirePermission(authz.ModuleDocuments, authz.ActionRead), h.Get)
		documents.GET("/:id/download", authMw.RequirePermission(authz.ModuleDocuments, authz.ActionRead), h.Download)
		documents.DELETE("/:id", authMw.RequirePermission(authz.ModuleDocuments, authz.ActionDelete), h.Delete)
	}
}

// Upload accepts a multipart form with a "file" part, a "patient_id" field
// and an optional "description".
func (h *Handler) Upload(c *gin.Context) {
	patientID, err := uuid.Parse(c.PostForm("patient_id"))
	if err != nil {
		handler.Error(c, apperror.New(apperror.KindValidation, "invalid patient ID"))
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		handler.Error(c, apperror.New(apperror.KindValidation, "missing file"))
		return
	}

	identity, _ := middleware.Identity(c)
	d, err := h.service.Store(c.Request.Context(), identity, patientID, file, c.PostForm("description"))
	if err != nil {
		handler.Error(c, err)
		return
	}
	handler.Created(c, d)
}

func (h *Handler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		handler.Error(c, apperror.New(apperror.KindValidation, "invalid document ID"))
		return
	}

	d, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		handler.Error(c, err)
		return
	}
	handler.OK(c, d)
}

func (h *Handler) Download(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		handler.Error(c, apperror.New(apperror.KindValidation, "invalid document ID"))
		return
	}

	d, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.FileAttachment(d.StoredPath, d.FileName)
}

func (h *Handler) List(c *gin.Context) {
	filters := &model.DocumentFilters{}
	if patientID := c.Query("patient_id"); patientID != "" {
		id, err := uuid.Parse(patientID)
		if err != nil {
			handler.Error(c, apperror.New(apperror.KindValidation, "invalid patient ID"))
			return
		}
		filters.PatientID = id
	}

	documents, err := h.service.List(c.Request.Context(), filters)
	if err != nil {
		handler.Error(c, err)
		return
	}
	handler.OK(c, documents)
}

func (h *Handler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		handler.Error(c, apperror.New(apperror.KindValidation, "invalid document ID"))
		return
	}

	identity, _ := middleware.Identity(c)
	if err := h.service.Delete(c.Request.Context(), identity, id); err != nil {
		handler.Error(c, err)
		return
	}
	handler.OK(c, gin.H{"message": "document deleted"})
}
