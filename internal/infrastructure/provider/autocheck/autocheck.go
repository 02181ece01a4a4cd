package autocheck

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/hillcrest-auto/dealer-backend/internal/config"
	"github.com/hillcrest-auto/dealer-backend/internal/domain/model"
	"github.com/hillcrest-auto/dealer-backend/internal/domain/provider"
)

const (
	ProviderName   = "autocheck"
	defaultBaseURL = "https://api.autocheck.com/v2"
)

// Provider implements provider.HistoryProvider against the AutoCheck API.
type Provider struct {
	apiKey  string
	baseURL string
	client  *http.Client
	logger  *zap.Logger
}

// New creates an AutoCheck provider from config.
func New(cfg config.AutoCheckConfig, logger *zap.Logger) *Provider {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	return &Provider{
		apiKey:  cfg.APIKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 20 * time.Second},
		logger:  logger,
	}
}

func (p *Provider) Name() string {
	return ProviderName
}

// Authenticate checks that the API key is configured and accepted.
func (p *Provider) Authenticate(ctx context.Context) bool {
	if p.apiKey == "" {
		return false
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"/ping", nil)
	if err != nil {
		return false
	}
	req.Header.Set("X-Api-Key", p.apiKey)

	resp, err := p.client.Do(req)
	if err != nil {
		p.logger.Warn("AutoCheck auth check failed", zap.Error(err))
		return false
	}
	defer resp.Body.Close()

	return resp.StatusCode == http.StatusOK
}

// autoCheckReport is the wire shape of an AutoCheck vehicle summary.
type autoCheckReport struct {
	VIN           string `json:"vin"`
	Score         int    `json:"score"`
	ScoreCeiling  int    `json:"scoreCeiling"`
	Confidence    int    `json:"confidenceLevel"`
	TitleCode     string `json:"titleCode"`
	AccidentCount int    `json:"accidentCount"`
	Owners        int    `json:"owners"`
	ServiceEvents int    `json:"serviceEvents"`
	ReportURL     string `json:"reportUrl"`
}

// GetReport fetches a report for a VIN. A 404 yields a nil report without
// an error.
func (p *Provider) GetReport(ctx context.Context, vin string) (*provider.Report, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"/vehicles/"+vin+"/summary", nil)
	if err != nil {
		return nil, &provider.ProviderError{
			Code:    "REQUEST_ERROR",
			Message: "Failed to create request",
			Details: err.Error(),
		}
	}
	req.Header.Set("X-Api-Key", p.apiKey)

	resp, err := p.client.Do(req)
	if err != nil {
		p.logger.Warn("AutoCheck report request failed",
			zap.String("vin", vin), zap.Error(err))
		return nil, &provider.ProviderError{
			Code:    "API_ERROR",
			Message: "AutoCheck API request failed",
			Details: err.Error(),
		}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &provider.ProviderError{
			Code:    "RESPONSE_ERROR",
			Message: "Failed to read response",
			Details: err.Error(),
		}
	}

	if resp.StatusCode != http.StatusOK {
		p.logger.Warn("AutoCheck returned non-200",
			zap.String("vin", vin),
			zap.Int("status", resp.StatusCode),
			zap.String("body", string(body)))
		return nil, &provider.ProviderError{
			Code:    "API_ERROR",
			Message: fmt.Sprintf("AutoCheck returned status %d", resp.StatusCode),
		}
	}

	var raw autoCheckReport
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, &provider.ProviderError{
			Code:    "RESPONSE_ERROR",
			Message: "Failed to decode AutoCheck report",
			Details: err.Error(),
		}
	}

	return &provider.Report{
		Provider:        ProviderName,
		VIN:             raw.VIN,
		HistoryScore:    normalizeScore(raw.Score, raw.ScoreCeiling),
		ConfidenceScore: raw.Confidence,
		TitleStatus:     NormalizeTitleCode(raw.TitleCode),
		AccidentHistory: accidentSummary(raw.AccidentCount),
		PreviousOwners:  raw.Owners,
		ServiceRecords:  fmt.Sprintf("%d service events on record", raw.ServiceEvents),
		ReportURL:       raw.ReportURL,
		FetchedAt:       time.Now(),
	}, nil
}

// RequestReport asks AutoCheck to generate a fresh report for a VIN.
func (p *Provider) RequestReport(ctx context.Context, vin string) (string, error) {
	payload, _ := json.Marshal(map[string]string{"vin": vin})

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/reports", bytes.NewBuffer(payload))
	if err != nil {
		return "", &provider.ProviderError{
			Code:    "REQUEST_ERROR",
			Message: "Failed to create request",
			Details: err.Error(),
		}
	}
	req.Header.Set("X-Api-Key", p.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return "", &provider.ProviderError{
			Code:    "API_ERROR",
			Message: "AutoCheck API request failed",
			Details: err.Error(),
		}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &provider.ProviderError{
			Code:    "RESPONSE_ERROR",
			Message: "Failed to read response",
			Details: err.Error(),
		}
	}

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusAccepted {
		return "", &provider.ProviderError{
			Code:    "API_ERROR",
			Message: fmt.Sprintf("AutoCheck returned status %d", resp.StatusCode),
		}
	}

	var parsed struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", &provider.ProviderError{
			Code:    "RESPONSE_ERROR",
			Message: "Failed to decode AutoCheck response",
			Details: err.Error(),
		}
	}

	return parsed.ID, nil
}

// GetReportStatus returns the generation status of a requested report.
func (p *Provider) GetReportStatus(ctx context.Context, reportID string) (provider.ReportStatus, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"/reports/"+reportID, nil)
	if err != nil {
		return provider.ReportStatusFailed, err
	}
	req.Header.Set("X-Api-Key", p.apiKey)

	resp, err := p.client.Do(req)
	if err != nil {
		return provider.ReportStatusFailed, &provider.ProviderError{
			Code:    "API_ERROR",
			Message: "AutoCheck API request failed",
			Details: err.Error(),
		}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return provider.ReportStatusNotFound, nil
	}

	var parsed struct {
		State string `json:"state"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return provider.ReportStatusFailed, err
	}

	switch strings.ToLower(parsed.State) {
	case "pending", "in_progress":
		return provider.ReportStatusPending, nil
	case "done", "complete":
		return provider.ReportStatusReady, nil
	default:
		return provider.ReportStatusFailed, nil
	}
}

// NormalizeTitleCode maps AutoCheck title codes onto the shared enum.
func NormalizeTitleCode(code string) model.TitleStatus {
	switch strings.ToLower(strings.TrimSpace(code)) {
	case "clear", "clean":
		return model.TitleStatusClean
	case "salvage", "junk", "dismantled":
		return model.TitleStatusSalvage
	case "flood", "water":
		return model.TitleStatusFlood
	case "lemon", "buyback":
		return model.TitleStatusLemon
	case "rebuilt", "branded", "fire", "hail":
		return model.TitleStatusBranded
	default:
		return model.TitleStatusUnknown
	}
}

// normalizeScore rescales AutoCheck's score (usually out of 90) to 0-100.
func normalizeScore(score, ceiling int) int {
	if ceiling <= 0 {
		ceiling = 90
	}
	normalized := score * 100 / ceiling
	if normalized > 100 {
		normalized = 100
	}
	if normalized < 0 {
		normalized = 0
	}
	return normalized
}

func accidentSummary(count int) string {
	if count == 0 {
		return "No accidents reported"
	}
	if count == 1 {
		return "1 accident reported"
	}
	return fmt.Sprintf("%d accidents reported", count)
}
