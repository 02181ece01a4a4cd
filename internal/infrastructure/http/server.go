package http

import (
	"context"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	handlers "github.com/hillcrest-auto/dealer-backend/internal/adapter/handler/http"
	"github.com/hillcrest-auto/dealer-backend/internal/config"
	"github.com/hillcrest-auto/dealer-backend/internal/infrastructure/database"
	"github.com/hillcrest-auto/dealer-backend/internal/infrastructure/drive"
	"github.com/hillcrest-auto/dealer-backend/internal/infrastructure/email"
	"github.com/hillcrest-auto/dealer-backend/internal/infrastructure/provider"
	"github.com/hillcrest-auto/dealer-backend/internal/middleware/auth"
	"github.com/hillcrest-auto/dealer-backend/internal/usecase"
)

type Server struct {
	config *config.Config
	logger *zap.Logger
	echo   *echo.Echo
	repos  *database.Repositories
}

func NewServer(cfg *config.Config, logger *zap.Logger, repos *database.Repositories) *Server {
	e := echo.New()
	e.HideBanner = true

	// Middleware
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{cfg.Service.ClientURL},
		AllowMethods: []string{echo.GET, echo.POST, echo.PATCH, echo.DELETE},
	}))

	return &Server{
		config: cfg,
		logger: logger,
		echo:   e,
		repos:  repos,
	}
}

func (s *Server) Start() error {
	s.setupRoutes()

	addr := fmt.Sprintf("%s:%d", s.config.Server.HTTP.Host, s.config.Server.HTTP.Port)
	s.logger.Info("Starting HTTP server", zap.String("address", addr))

	return s.echo.Start(addr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

func (s *Server) setupRoutes() {
	// Health check
	s.echo.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"status":  "healthy",
			"service": s.config.Service.Name,
		})
	})

	// Infrastructure shared across handlers
	notifier := email.NewNotifier(s.config.SMTP, s.logger)
	driveClient := drive.NewClient(s.config.Google, s.logger)
	providers := provider.NewFactory(&s.config.History, s.logger).All()

	// Usecases
	vehicleService := usecase.NewVehicleService(s.repos.Vehicle, s.logger)
	inquiryService := usecase.NewInquiryService(s.repos.Inquiry, notifier, s.logger)
	applicationService := usecase.NewApplicationService(s.repos.Application, notifier, s.logger)
	driveMatchService := usecase.NewDriveMatchService(s.repos.Vehicle, driveClient, s.logger)
	importService := usecase.NewInventoryImportService(s.repos.Vehicle, s.logger)
	bannerService := usecase.NewBannerService(s.repos.Vehicle, s.logger)
	historyService := usecase.NewHistoryService(providers, s.repos.Vehicle, s.logger)
	webhookService := usecase.NewWebhookService(s.repos.Vehicle, s.logger)

	// Handlers
	vehicleHandler := handlers.NewVehicleHandler(vehicleService, s.logger)
	inquiryHandler := handlers.NewInquiryHandler(inquiryService, s.logger)
	applicationHandler := handlers.NewApplicationHandler(applicationService, s.logger)
	adminHandler := handlers.NewAdminHandler(&s.config.Admin, driveMatchService, importService, bannerService, s.logger)
	historyHandler := handlers.NewHistoryHandler(historyService, s.logger)
	webhookHandler := handlers.NewWebhookHandler(webhookService, s.logger)

	adminJWT := auth.AdminJWTMiddleware(auth.JWTConfig{
		Secret: s.config.Admin.JWTSecret,
		Logger: s.logger,
	})

	api := s.echo.Group("/api")

	// Public storefront routes.
	// The static /search route must be registered alongside /:slug; echo
	// prefers the exact match so a vehicle slugged "search" can never
	// shadow it.
	api.GET("/vehicles", vehicleHandler.GetVehicles)
	api.GET("/vehicles/search", vehicleHandler.SearchVehicles)
	api.GET("/vehicles/:slug", vehicleHandler.GetVehicleBySlug)
	api.POST("/inquiries", inquiryHandler.CreateInquiry)
	api.POST("/applications", applicationHandler.CreateApplication)
	api.GET("/vehicle-history/:vin", historyHandler.GetReport)

	// Spreadsheet webhook routes. Authenticated by obscurity of the
	// deployment URL, matching the Apps Script push model.
	api.POST("/webhook/vehicle-update", webhookHandler.VehicleUpdate)
	api.GET("/webhook/add-vehicle", webhookHandler.AddVehicle)

	// Admin login is the only unauthenticated admin route.
	api.POST("/admin/login", adminHandler.Login)

	// Listing mutations require an admin session.
	api.POST("/vehicles", vehicleHandler.CreateVehicle, adminJWT)
	api.PATCH("/vehicles/:id", vehicleHandler.UpdateVehicle, adminJWT)
	api.DELETE("/vehicles/:id", vehicleHandler.DeleteVehicle, adminJWT)
	api.POST("/vehicles/:id/auto-populate-history", historyHandler.AutoPopulateHistory, adminJWT)
	api.POST("/vehicle-history/:vin/request", historyHandler.RequestReport, adminJWT)

	admin := api.Group("/admin", adminJWT)
	admin.POST("/scan-drive-folder", adminHandler.ScanDriveFolder)
	admin.POST("/apply-drive-matches", adminHandler.ApplyDriveMatches)
	admin.POST("/update-inventory-bulk", adminHandler.UpdateInventoryBulk)
	admin.POST("/banners/cleanup", adminHandler.CleanupBanners)
	admin.GET("/banners/stats", adminHandler.BannerStats)
	admin.GET("/inquiries", inquiryHandler.GetInquiries)
	admin.GET("/applications", applicationHandler.GetApplications)
	admin.GET("/applications/:id", applicationHandler.GetApplication)
	admin.PATCH("/applications/:id", applicationHandler.UpdateApplication)
	admin.DELETE("/applications/:id", applicationHandler.DeleteApplication)
}
