package http

import (
	"crypto/subtle"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/hillcrest-auto/dealer-backend/internal/config"
	"github.com/hillcrest-auto/dealer-backend/internal/middleware/auth"
	"github.com/hillcrest-auto/dealer-backend/internal/usecase"
)

const defaultTokenTTL = 12 * time.Hour

// AdminHandler serves login and the admin dashboard operations: Drive
// photo matching, bulk inventory sync and banner maintenance.
type AdminHandler struct {
	adminConfig *config.AdminConfig
	driveMatch  *usecase.DriveMatchService
	importer    *usecase.InventoryImportService
	banners     *usecase.BannerService
	logger      *zap.Logger
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(
	adminConfig *config.AdminConfig,
	driveMatch *usecase.DriveMatchService,
	importer *usecase.InventoryImportService,
	banners *usecase.BannerService,
	logger *zap.Logger,
) *AdminHandler {
	return &AdminHandler{
		adminConfig: adminConfig,
		driveMatch:  driveMatch,
		importer:    importer,
		banners:     banners,
		logger:      logger,
	}
}

type loginRequest struct {
	Password string `json:"password"`
}

// Login exchanges the dashboard password for a session token.
// POST /api/admin/login
func (h *AdminHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request body"})
	}

	if subtle.ConstantTimeCompare([]byte(req.Password), []byte(h.adminConfig.Password)) != 1 {
		h.logger.Warn("admin login rejected", zap.String("remote_ip", c.RealIP()))
		return c.JSON(http.StatusUnauthorized, echo.Map{
			"error": "Invalid password",
			"code":  "INVALID_CREDENTIALS",
		})
	}

	ttl := defaultTokenTTL
	if h.adminConfig.TokenTTL != "" {
		parsed, err := time.ParseDuration(h.adminConfig.TokenTTL)
		if err == nil {
			ttl = parsed
		}
	}

	token, err := auth.IssueAdminToken(h.adminConfig.JWTSecret, ttl)
	if err != nil {
		h.logger.Error("failed to issue admin token", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Internal server error"})
	}

	h.logger.Info("admin login", zap.String("remote_ip", c.RealIP()))

	return c.JSON(http.StatusOK, echo.Map{
		"token":      token,
		"expires_in": int64(ttl.Seconds()),
	})
}

type scanFolderRequest struct {
	FolderURL string `json:"folderUrl"`
}

// ScanDriveFolder lists a shared Drive folder and matches photo subfolders
// to inventory.
// POST /api/admin/scan-drive-folder
func (h *AdminHandler) ScanDriveFolder(c echo.Context) error {
	var req scanFolderRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request body"})
	}

	result, err := h.driveMatch.ScanFolder(c.Request().Context(), req.FolderURL)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, result)
}

type applyMatchesRequest struct {
	Matches []usecase.FolderMatch `json:"matches"`
}

// ApplyDriveMatches writes the confirmed folder matches to the vehicles.
// POST /api/admin/apply-drive-matches
func (h *AdminHandler) ApplyDriveMatches(c echo.Context) error {
	var req applyMatchesRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request body"})
	}
	if len(req.Matches) == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "No matches to apply"})
	}

	result := h.driveMatch.ApplyMatches(c.Request().Context(), req.Matches)

	return c.JSON(http.StatusOK, result)
}

type bulkImportRequest struct {
	SheetData string `json:"sheetData"`
}

// UpdateInventoryBulk replaces the whole inventory from pasted
// tab-separated spreadsheet rows.
// POST /api/admin/update-inventory-bulk
func (h *AdminHandler) UpdateInventoryBulk(c echo.Context) error {
	var req bulkImportRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request body"})
	}

	result, err := h.importer.Import(c.Request().Context(), req.SheetData)
	if err != nil {
		h.logger.Error("bulk inventory import failed", zap.Error(err))
		return writeError(c, err)
	}

	h.logger.Info("bulk inventory import",
		zap.Int("total_rows", result.TotalRows),
		zap.Int("imported", result.Imported),
		zap.Int("skipped", len(result.Skipped)))

	return c.JSON(http.StatusOK, result)
}

// CleanupBanners clears expired NEW banners on demand. The scheduler runs
// the same job nightly; this endpoint exists for the dashboard button.
// POST /api/admin/banners/cleanup
func (h *AdminHandler) CleanupBanners(c echo.Context) error {
	cleared, err := h.banners.CleanupExpired(c.Request().Context())
	if err != nil {
		h.logger.Error("banner cleanup failed", zap.Error(err))
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"cleared": cleared,
	})
}

// BannerStats returns banner counts for the admin dashboard.
// GET /api/admin/banners/stats
func (h *AdminHandler) BannerStats(c echo.Context) error {
	stats, err := h.banners.Stats(c.Request().Context())
	if err != nil {
		h.logger.Error("banner stats failed", zap.Error(err))
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, stats)
}
