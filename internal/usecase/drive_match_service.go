package usecase

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/hillcrest-auto/dealer-backend/internal/adapter/repository"
	"github.com/hillcrest-auto/dealer-backend/internal/domain/model"
	"github.com/hillcrest-auto/dealer-backend/internal/infrastructure/drive"
	"github.com/hillcrest-auto/dealer-backend/pkg/apperrors"
)

// DriveLister is the slice of the Drive client the matcher needs.
type DriveLister interface {
	ListSubfolders(ctx context.Context, folderID string) ([]drive.Folder, error)
	ListImages(ctx context.Context, folderID string) ([]drive.File, error)
}

// MatchCandidate is a vehicle eligible for image matching.
type MatchCandidate struct {
	StockNumber string
	Year        int
	Make        string
	Model       string
	Color       string
}

// FolderMatch links one Drive subfolder to a vehicle with its image URLs.
type FolderMatch struct {
	Folder      string   `json:"folder"`
	FolderID    string   `json:"folder_id"`
	StockNumber string   `json:"stock_number"`
	Vehicle     string   `json:"vehicle"`
	Images      []string `json:"images"`
	ImageCount  int      `json:"image_count"`
}

// ScanResult is the outcome of scanning a Drive folder.
type ScanResult struct {
	FolderID  string        `json:"folder_id"`
	Matches   []FolderMatch `json:"matches"`
	Unmatched []string      `json:"unmatched"`
}

// ApplySuccess reports one vehicle whose images were updated.
type ApplySuccess struct {
	StockNumber string   `json:"stock_number"`
	ImageCount  int      `json:"image_count"`
	Folders     []string `json:"folders"`
}

// ApplyError reports one vehicle that could not be updated.
type ApplyError struct {
	StockNumber string `json:"stock_number"`
	Error       string `json:"error"`
}

// ApplyResult aggregates per-vehicle outcomes of applying matches.
type ApplyResult struct {
	Success      []ApplySuccess `json:"success"`
	Errors       []ApplyError   `json:"errors"`
	TotalUpdated int            `json:"totalUpdated"`
}

// DriveMatchService matches Drive subfolders of vehicle photos to inventory
// records and applies the matched images.
type DriveMatchService struct {
	repo   repository.VehicleRepository
	lister DriveLister
	logger *zap.Logger
}

// NewDriveMatchService creates a new drive match service
func NewDriveMatchService(repo repository.VehicleRepository, lister DriveLister, logger *zap.Logger) *DriveMatchService {
	return &DriveMatchService{
		repo:   repo,
		lister: lister,
		logger: logger,
	}
}

// ScanFolder lists the subfolders of a shared Drive folder and matches each
// one to a vehicle currently missing images. Drive failures are logged and
// produce an empty result, never an error, so the admin page degrades
// instead of breaking.
func (s *DriveMatchService) ScanFolder(ctx context.Context, folderURL string) (*ScanResult, error) {
	folderID, err := drive.ExtractFolderID(folderURL)
	if err != nil {
		return nil, apperrors.InvalidArgument("folderUrl does not contain a /folders/{id} segment")
	}

	result := &ScanResult{FolderID: folderID, Matches: []FolderMatch{}, Unmatched: []string{}}

	candidates, err := s.loadCandidates(ctx)
	if err != nil {
		return nil, err
	}

	folders, err := s.lister.ListSubfolders(ctx, folderID)
	if err != nil {
		s.logger.Warn("Drive folder listing failed, returning empty scan",
			zap.String("folder_id", folderID), zap.Error(err))
		return result, nil
	}

	for _, folder := range folders {
		candidate := matchFolderName(folder.Name, candidates)
		if candidate == nil {
			result.Unmatched = append(result.Unmatched, folder.Name)
			continue
		}

		files, err := s.lister.ListImages(ctx, folder.ID)
		if err != nil {
			s.logger.Warn("Drive image listing failed, skipping folder",
				zap.String("folder", folder.Name), zap.Error(err))
			result.Unmatched = append(result.Unmatched, folder.Name)
			continue
		}

		images := make([]string, 0, len(files))
		for _, f := range files {
			images = append(images, drive.HotlinkURL(f.ID))
		}

		result.Matches = append(result.Matches, FolderMatch{
			Folder:      folder.Name,
			FolderID:    folder.ID,
			StockNumber: candidate.StockNumber,
			Vehicle:     fmt.Sprintf("%d %s %s", candidate.Year, candidate.Make, candidate.Model),
			Images:      images,
			ImageCount:  len(images),
		})
	}

	s.logger.Info("Drive folder scan complete",
		zap.String("folder_id", folderID),
		zap.Int("matched", len(result.Matches)),
		zap.Int("unmatched", len(result.Unmatched)))

	return result, nil
}

// ApplyMatches groups matches by stock number, unions their images and
// overwrites each vehicle's image list. One vehicle failing never aborts
// the rest.
func (s *DriveMatchService) ApplyMatches(ctx context.Context, matches []FolderMatch) *ApplyResult {
	result := &ApplyResult{Success: []ApplySuccess{}, Errors: []ApplyError{}}

	type group struct {
		images  []string
		seen    map[string]bool
		folders []string
	}
	groups := map[string]*group{}
	order := []string{}

	for _, m := range matches {
		g, ok := groups[m.StockNumber]
		if !ok {
			g = &group{seen: map[string]bool{}}
			groups[m.StockNumber] = g
			order = append(order, m.StockNumber)
		}
		g.folders = append(g.folders, m.Folder)
		for _, img := range m.Images {
			if !g.seen[img] {
				g.seen[img] = true
				g.images = append(g.images, img)
			}
		}
	}

	for _, stockNumber := range order {
		g := groups[stockNumber]

		vehicle, err := s.repo.GetByStockNumber(ctx, stockNumber)
		if err != nil {
			result.Errors = append(result.Errors, ApplyError{
				StockNumber: stockNumber,
				Error:       fmt.Sprintf("stock number %s not found in inventory", stockNumber),
			})
			continue
		}

		if _, err := s.repo.Update(ctx, vehicle.ID, map[string]interface{}{
			"images": model.StringList(g.images),
		}); err != nil {
			s.logger.Error("Failed to apply drive images",
				zap.String("stock_number", stockNumber), zap.Error(err))
			result.Errors = append(result.Errors, ApplyError{
				StockNumber: stockNumber,
				Error:       err.Error(),
			})
			continue
		}

		result.Success = append(result.Success, ApplySuccess{
			StockNumber: stockNumber,
			ImageCount:  len(g.images),
			Folders:     g.folders,
		})
		result.TotalUpdated++
	}

	return result
}

// loadCandidates builds the match candidates: inventory vehicles that have
// no images yet, in store order so the first listed vehicle wins ties.
func (s *DriveMatchService) loadCandidates(ctx context.Context) ([]MatchCandidate, error) {
	vehicles, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	candidates := make([]MatchCandidate, 0, len(vehicles))
	for _, v := range vehicles {
		if len(v.Images) > 0 {
			continue
		}
		candidates = append(candidates, MatchCandidate{
			StockNumber: v.StockNumber,
			Year:        v.Year,
			Make:        v.Make,
			Model:       v.Model,
			Color:       v.ExteriorColor,
		})
	}

	return candidates, nil
}

var folderNormalizePattern = regexp.MustCompile(`[^a-z0-9]+`)

// normalizeFolderName lowercases, strips non-alphanumerics and collapses
// whitespace.
func normalizeFolderName(name string) string {
	name = strings.ToLower(name)
	name = folderNormalizePattern.ReplaceAllString(name, " ")
	return strings.Join(strings.Fields(name), " ")
}

// searchTerms generates the normalized phrases a folder name is tested
// against for one candidate.
func searchTerms(c MatchCandidate) []string {
	terms := []string{}
	add := func(t string) {
		t = normalizeFolderName(t)
		if t != "" {
			terms = append(terms, t)
		}
	}

	if c.StockNumber != "" {
		add(c.StockNumber)
		add("stock " + c.StockNumber)
	}
	add(fmt.Sprintf("%d %s %s %s", c.Year, c.Make, c.Model, c.Color))
	add(fmt.Sprintf("%d %s %s %s", c.Year, c.Color, c.Make, c.Model))
	add(fmt.Sprintf("%s %d %s %s", c.Color, c.Year, c.Make, c.Model))
	add(fmt.Sprintf("%d %s %s", c.Year, c.Make, c.Model))
	add(fmt.Sprintf("%s %s %s", c.Make, c.Model, c.Color))
	add(fmt.Sprintf("%s %s", c.Make, c.Model))
	add(c.Color)

	return terms
}

// matchFolderName returns the first candidate whose any search term
// contains, or is contained by, the normalized folder name. Ties resolve
// to candidate list order.
func matchFolderName(folderName string, candidates []MatchCandidate) *MatchCandidate {
	normalized := normalizeFolderName(folderName)
	if normalized == "" {
		return nil
	}

	for i := range candidates {
		for _, term := range searchTerms(candidates[i]) {
			if strings.Contains(normalized, term) || strings.Contains(term, normalized) {
				return &candidates[i]
			}
		}
	}

	return nil
}
