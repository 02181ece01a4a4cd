package usecase

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/hillcrest-auto/dealer-backend/internal/adapter/repository"
	"github.com/hillcrest-auto/dealer-backend/internal/domain/model"
	"github.com/hillcrest-auto/dealer-backend/internal/infrastructure/drive"
	"github.com/hillcrest-auto/dealer-backend/pkg/apperrors"
)

// Fixed column layout of the dealer spreadsheet export.
const (
	colStatus = iota
	colStockNumber
	colVIN
	colYear
	colMake
	colModel
	colMiles
	colPrice
	colExteriorColor
	colInteriorColor
	colDescription
	colNotes
	colFirstImage
)

// maxImageColumns is how many image-URL columns follow the notes column.
const maxImageColumns = 7

// minColumns is the shortest row still considered well-formed.
const minColumns = 11

// SkippedRow explains why one spreadsheet row was not imported.
type SkippedRow struct {
	Row    int    `json:"row"`
	Reason string `json:"reason"`
}

// ImportResult summarizes a bulk inventory sync.
type ImportResult struct {
	TotalRows int          `json:"total_rows"`
	Imported  int          `json:"imported"`
	Skipped   []SkippedRow `json:"skipped"`
}

// InventoryImportService replaces the whole vehicle table from pasted
// tab-separated spreadsheet rows.
type InventoryImportService struct {
	repo   repository.VehicleRepository
	logger *zap.Logger
}

// NewInventoryImportService creates a new inventory import service
func NewInventoryImportService(repo repository.VehicleRepository, logger *zap.Logger) *InventoryImportService {
	return &InventoryImportService{
		repo:   repo,
		logger: logger,
	}
}

// Import parses the sheet data (header row + one row per vehicle) and
// replaces the entire inventory with the surviving rows. The replace runs
// in one transaction: a failure rolls the old inventory back instead of
// leaving the table empty.
func (s *InventoryImportService) Import(ctx context.Context, sheetData string) (*ImportResult, error) {
	lines := strings.Split(strings.ReplaceAll(sheetData, "\r\n", "\n"), "\n")
	if len(lines) < 2 {
		return nil, apperrors.InvalidArgument("sheet data must contain a header row and at least one vehicle row")
	}

	result := &ImportResult{Skipped: []SkippedRow{}}
	vehicles := []*model.Vehicle{}

	// Row numbers are 1-based including the header, matching what the
	// admin sees in the spreadsheet.
	for i, line := range lines[1:] {
		rowNum := i + 2
		if strings.TrimSpace(line) == "" {
			continue
		}
		result.TotalRows++

		vehicle, reason := ParseInventoryRow(strings.Split(line, "\t"))
		if vehicle == nil {
			result.Skipped = append(result.Skipped, SkippedRow{Row: rowNum, Reason: reason})
			continue
		}
		vehicles = append(vehicles, vehicle)
	}

	if err := s.repo.ReplaceAll(ctx, vehicles); err != nil {
		return nil, err
	}
	result.Imported = len(vehicles)

	s.logger.Info("Inventory replaced from sheet",
		zap.Int("total_rows", result.TotalRows),
		zap.Int("imported", result.Imported),
		zap.Int("skipped", len(result.Skipped)))

	return result, nil
}

// ParseInventoryRow turns one spreadsheet row into a vehicle, or returns a
// nil vehicle with the skip reason.
func ParseInventoryRow(columns []string) (*model.Vehicle, string) {
	for i := range columns {
		columns[i] = strings.TrimSpace(columns[i])
	}

	if len(columns) < minColumns {
		return nil, fmt.Sprintf("row has %d columns, need at least %d", len(columns), minColumns)
	}

	status := strings.ToLower(columns[colStatus])
	if status == "sold" || status == "needs removed" {
		return nil, fmt.Sprintf("status %q excludes row from import", columns[colStatus])
	}

	year, _ := strconv.Atoi(columns[colYear])
	make := columns[colMake]
	vmodel := columns[colModel]
	if year == 0 || make == "" || vmodel == "" {
		return nil, "missing year, make or model"
	}

	price := parsePrice(columns[colPrice])
	if price == 0 {
		return nil, "missing or zero price"
	}

	images := model.StringList{}
	for i := colFirstImage; i < len(columns) && i < colFirstImage+maxImageColumns; i++ {
		if columns[i] == "" {
			continue
		}
		images = append(images, drive.ConvertShareURL(columns[i]))
	}

	stockNumber := columns[colStockNumber]
	title := fmt.Sprintf("%d %s %s", year, make, vmodel)

	vehicle := &model.Vehicle{
		Slug:          TitleSlug(title, stockNumber),
		StockNumber:   stockNumber,
		Title:         title,
		Description:   columns[colDescription],
		Year:          year,
		Make:          make,
		Model:         vmodel,
		Mileage:       columns[colMiles],
		ExteriorColor: columns[colExteriorColor],
		InteriorColor: columns[colInteriorColor],
		Price:         price,
		Status:        model.VehicleStatusForSale,
		Images:        images,
		TitleStatus:   model.TitleStatusUnknown,
	}

	if status == "pending" {
		vehicle.Status = model.VehicleStatusPending
	}

	if vin := strings.ToUpper(columns[colVIN]); vin != "" {
		vehicle.VIN = &vin
	}

	return vehicle, ""
}

// parsePrice strips everything but digits. "$12,500" becomes 12500.
func parsePrice(raw string) int64 {
	digits := strings.Builder{}
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	if digits.Len() == 0 {
		return 0
	}
	price, err := strconv.ParseInt(digits.String(), 10, 64)
	if err != nil {
		return 0
	}
	return price
}
