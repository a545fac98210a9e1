package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/RogansDev/romedicals-api/internal/config"
	"github.com/RogansDev/romedicals-api/internal/handler"
	appointmenthandler "github.com/RogansDev/romedicals-api/internal/handler/appointment"
	authhandler "github.com/RogansDev/romedicals-api/internal/handler/auth"
	clinicalnotehandler "github.com/RogansDev/romedicals-api/internal/handler/clinicalnote"
	diagnosishandler "github.com/RogansDev/romedicals-api/internal/handler/diagnosis"
	documenthandler "github.com/RogansDev/romedicals-api/internal/handler/document"
	evolutionhandler "github.com/RogansDev/romedicals-api/internal/handler/evolution"
	patienthandler "github.com/RogansDev/romedicals-api/internal/handler/patient"
	prescriptionhandler "github.com/RogansDev/romedicals-api/internal/handler/prescription"
	ripshandler "github.com/RogansDev/romedicals-api/internal/handler/rips"
	specialtyhandler "github.com/RogansDev/romedicals-api/internal/handler/specialty"
	userhandler "github.com/RogansDev/romedicals-api/internal/handler/user"
	"github.com/RogansDev/romedicals-api/internal/middleware"
	"github.com/RogansDev/romedicals-api/internal/repository/postgres"
	"github.com/RogansDev/romedicals-api/internal/router"
	appointmentsvc "github.com/RogansDev/romedicals-api/internal/service/appointment"
	"github.com/RogansDev/romedicals-api/internal/service/audit"
	authsvc "github.com/RogansDev/romedicals-api/internal/service/auth"
	clinicalnotesvc "github.com/RogansDev/romedicals-api/internal/service/clinicalnote"
	diagnosissvc "github.com/RogansDev/romedicals-api/internal/service/diagnosis"
	documentsvc "github.com/RogansDev/romedicals-api/internal/service/document"
	evolutionsvc "github.com/RogansDev/romedicals-api/internal/service/evolution"
	patientsvc "github.com/RogansDev/romedicals-api/internal/service/patient"
	prescriptionsvc "github.com/RogansDev/romedicals-api/internal/service/prescription"
	ripssvc "github.com/RogansDev/romedicals-api/internal/service/rips"
	specialtysvc "github.com/RogansDev/romedicals-api/internal/service/specialty"
	usersvc "github.com/RogansDev/romedicals-api/internal/service/user"
	"github.com/RogansDev/romedicals-api/pkg/logger"
	"github.com/RogansDev/romedicals-api/pkg/metrics"
	"github.com/RogansDev/romedicals-api/pkg/security"
	"github.com/RogansDev/romedicals-api/pkg/token"
)

func main() {
	log := logger.NewLogger(nil)

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err, "failed to load configuration")
	}

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal(err, "failed to connect to database")
	}
	defer db.Close()

	m := metrics.New("romedicals")

	userRepo := postgres.NewUserRepository(db)
	patientRepo := postgres.NewPatientRepository(db)
	appointmentRepo := postgres.NewAppointmentRepository(db)
	clinicalNoteRepo := postgres.NewClinicalNoteRepository(db)
	evolutionRepo := postgres.NewEvolutionRepository(db)
	prescriptionRepo := postgres.NewPrescriptionRepository(db)
	ripsRepo := postgres.NewRIPSRepository(db)
	specialtyRepo := postgres.NewSpecialtyRepository(db)
	diagnosisRepo := postgres.NewDiagnosisRepository(db)
	documentRepo := postgres.NewDocumentRepository(db)
	outboxRepo := postgres.NewOutboxRepository(db)

	hasher := security.NewBcryptHasher(0)
	tokenExpiry := time.Duration(cfg.JWT.ExpiryHours) * time.Hour
	tokens := token.NewService(cfg.JWT.Secret, tokenExpiry)

	auditor := audit.NewService(outboxRepo)
	userService := usersvc.NewService(userRepo, specialtyRepo, hasher, auditor)
	authService := authsvc.NewService(userRepo, userService, hasher, tokens, tokenExpiry, auditor)
	patientService := patientsvc.NewService(patientRepo, auditor)
	appointmentService := appointmentsvc.NewService(appointmentRepo, patientRepo, userRepo, auditor)
	clinicalNoteService := clinicalnotesvc.NewService(clinicalNoteRepo, patientRepo, appointmentRepo, diagnosisRepo, auditor)
	evolutionService := evolutionsvc.NewService(evolutionRepo, clinicalNoteRepo, auditor)
	prescriptionService := prescriptionsvc.NewService(prescriptionRepo, patientRepo, auditor)
	ripsService := ripssvc.NewService(ripsRepo, patientRepo, appointmentRepo, auditor)
	specialtyService := specialtysvc.NewService(specialtyRepo, auditor)
	diagnosisService := diagnosissvc.NewService(diagnosisRepo, auditor)
	documentService := documentsvc.NewService(documentRepo, patientRepo, auditor, cfg.Uploads.Dir, cfg.Uploads.MaxSizeMB)

	authMw := middleware.NewAuthMiddleware(tokens, userRepo)

	engine := router.New(cfg, m, authMw, &router.Handlers{
		Auth:         authhandler.NewHandler(authService),
		User:         userhandler.NewHandler(userService),
		Patient:      patienthandler.NewHandler(patientService),
		Appointment:  appointmenthandler.NewHandler(appointmentService),
		ClinicalNote: clinicalnotehandler.NewHandler(clinicalNoteService),
		Evolution:    evolutionhandler.NewHandler(evolutionService),
		Prescription: prescriptionhandler.NewHandler(prescriptionService),
		RIPS:         ripshandler.NewHandler(ripsService),
		Specialty:    specialtyhandler.NewHandler(specialtyService),
		Diagnosis:    diagnosishandler.NewHandler(diagnosisService),
		Document:     documenthandler.NewHandler(documentService),
		Health:       handler.NewHealthHandler(db),
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.Info("starting server", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err, "server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error(err, "forced shutdown")
	}
}
