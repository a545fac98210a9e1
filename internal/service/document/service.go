package document

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/RogansDev/romedicals-api/internal/model"
	"github.com/RogansDev/romedicals-api/internal/repository"
	"github.com/RogansDev/romedicals-api/internal/service/audit"
	"github.com/RogansDev/romedicals-api/pkg/apperror"
)

type Service struct {
	documents repository.DocumentRepository
	patients  repository.PatientRepository
	auditor   *audit.Service
	uploadDir string
	maxBytes  int64
}

func NewService(documents repository.DocumentRepository, patients repository.PatientRepository, auditor *audit.Service, uploadDir string, maxSizeMB int64) *Service {
	return &Service{
		documents: documents,
		patients:  patients,
		auditor:   auditor,
		uploadDir: uploadDir,
		maxBytes:  maxSizeMB << 20,
	}
}

// Store writes the uploaded file under the configured directory and records
// its metadata. Files are stored under a generated name so uploads with the
// same original filename never collide.
func (s *Service) Store(ctx context.Context, actor *model.Identity, patientID uuid.UUID, file *multipart.FileHeader, description string) (*model.Document, error) {
	if _, err := s.patients.Get(ctx, patientID); err != nil {
		if apperror.Is(err, apperror.KindNotFound) {
			return nil, apperror.New(apperror.KindReferenceNotFound, "referenced patient does not exist")
		}
		return nil, apperror.Internal(err)
	}

	if s.maxBytes > 0 && file.Size > s.maxBytes {
		return nil, apperror.Newf(apperror.KindValidation,
			"file exceeds the maximum upload size of %d bytes", s.maxBytes)
	}

	storedName := uuid.New().String() + filepath.Ext(file.Filename)
	storedPath := filepath.Join(s.uploadDir, storedName)

	if err := saveFile(file, storedPath); err != nil {
		return nil, apperror.Internal(err)
	}

	d := &model.Document{
		PatientID:   patientID,
		UploadedBy:  actor.ID,
		FileName:    filepath.Base(file.Filename),
		StoredPath:  storedPath,
		ContentType: file.Header.Get("Content-Type"),
		SizeBytes:   file.Size,
		Description: description,
	}
	if err := s.documents.Create(ctx, d); err != nil {
		// metadata write failed, don't leave the file orphaned
		if rmErr := os.Remove(storedPath); rmErr != nil {
			log.Warn().Err(rmErr).Str("path", storedPath).Msg("failed to remove orphaned upload")
		}
		return nil, apperror.Internal(err)
	}

	s.auditor.Record(ctx, actor, "uploaded", "document", d.ID, map[string]interface{}{
		"patient_id": d.PatientID,
		"file_name":  d.FileName,
	})
	return d, nil
}

func saveFile(file *multipart.FileHeader, dst string) error {
	src, err := file.Open()
	if err != nil {
		return fmt.Errorf("failed to open upload: %w", err)
	}
	defer src.Close()

	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return fmt.Errorf("failed to create upload directory: %w", err)
	}

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer out.Close()

	if _, err := io.Copy(out, src); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*model.Document, error) {
	d, err := s.documents.Get(ctx, id)
	if err != nil {
		if apperror.Is(err, apperror.KindNotFound) {
			return nil, err
		}
		return nil, apperror.Internal(err)
	}
	return d, nil
}

func (s *Service) List(ctx context.Context, filters *model.DocumentFilters) ([]*model.Document, error) {
	documents, err := s.documents.List(ctx, filters)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return documents, nil
}

// Delete removes the metadata row, then the file. A file that cannot be
// removed is logged and left behind; the record is already gone.
func (s *Service) Delete(ctx context.Context, actor *model.Identity, id uuid.UUID) error {
	d, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	if err := s.documents.Delete(ctx, id); err != nil {
		if apperror.Is(err, apperror.KindNotFound) {
			return err
		}
		return apperror.Internal(err)
	}

	if err := os.Remove(d.StoredPath); err != nil && !os.IsNotExist(err) {
		log.Warn().Err(err).Str("path", d.StoredPath).Msg("failed to remove stored file")
	}

	s.auditor.Record(ctx, actor, "deleted", "document", id, nil)
	return nil
}
