package carfax

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
	ProviderName   = "carfax"
	defaultBaseURL = "https://connect.carfax.com/v1"
)

// Provider implements provider.HistoryProvider against the CARFAX Connect API.
type Provider struct {
	apiKey  string
	baseURL string
	client  *http.Client
	logger  *zap.Logger
}

// New creates a CARFAX provider from config.
func New(cfg config.CarfaxConfig, logger *zap.Logger) *Provider {
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

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"/account", nil)
	if err != nil {
		return false
	}
	req.Header.Set("Authorization", "Bearer "+p.apiKey)

	resp, err := p.client.Do(req)
	if err != nil {
		p.logger.Warn("CARFAX auth check failed", zap.Error(err))
		return false
	}
	defer resp.Body.Close()

	return resp.StatusCode == http.StatusOK
}

// carfaxReport is the wire shape of a CARFAX report response.
type carfaxReport struct {
	VIN             string `json:"vin"`
	HistoryScore    int    `json:"historyScore"`
	Confidence      int    `json:"confidence"`
	TitleBrand      string `json:"titleBrand"`
	AccidentSummary string `json:"accidentSummary"`
	OwnerCount      int    `json:"ownerCount"`
	ServiceSummary  string `json:"serviceSummary"`
	EmbedCode       string `json:"embedCode"`
}

// GetReport fetches a report for a VIN. A 404 means CARFAX has no data for
// that VIN and yields a nil report without an error.
func (p *Provider) GetReport(ctx context.Context, vin string) (*provider.Report, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"/reports/"+vin, nil)
	if err != nil {
		return nil, &provider.ProviderError{
			Code:    "REQUEST_ERROR",
			Message: "Failed to create request",
			Details: err.Error(),
		}
	}
	req.Header.Set("Authorization", "Bearer "+p.apiKey)

	resp, err := p.client.Do(req)
	if err != nil {
		p.logger.Warn("CARFAX report request failed",
			zap.String("vin", vin), zap.Error(err))
		return nil, &provider.ProviderError{
			Code:    "API_ERROR",
			Message: "CARFAX API request failed",
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
		p.logger.Warn("CARFAX returned non-200",
			zap.String("vin", vin),
			zap.Int("status", resp.StatusCode),
			zap.String("body", string(body)))
		return nil, &provider.ProviderError{
			Code:    "API_ERROR",
			Message: fmt.Sprintf("CARFAX returned status %d", resp.StatusCode),
		}
	}

	var raw carfaxReport
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, &provider.ProviderError{
			Code:    "RESPONSE_ERROR",
			Message: "Failed to decode CARFAX report",
			Details: err.Error(),
		}
	}

	return &provider.Report{
		Provider:        ProviderName,
		VIN:             raw.VIN,
		HistoryScore:    raw.HistoryScore,
		ConfidenceScore: raw.Confidence,
		TitleStatus:     NormalizeTitleBrand(raw.TitleBrand),
		AccidentHistory: raw.AccidentSummary,
		PreviousOwners:  raw.OwnerCount,
		ServiceRecords:  raw.ServiceSummary,
		EmbedCode:       raw.EmbedCode,
		FetchedAt:       time.Now(),
	}, nil
}

// RequestReport asks CARFAX to generate a fresh report for a VIN.
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
	req.Header.Set("Authorization", "Bearer "+p.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return "", &provider.ProviderError{
			Code:    "API_ERROR",
			Message: "CARFAX API request failed",
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
			Message: fmt.Sprintf("CARFAX returned status %d", resp.StatusCode),
		}
	}

	var parsed struct {
		ReportID string `json:"reportId"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", &provider.ProviderError{
			Code:    "RESPONSE_ERROR",
			Message: "Failed to decode CARFAX response",
			Details: err.Error(),
		}
	}

	return parsed.ReportID, nil
}

// GetReportStatus returns the generation status of a requested report.
func (p *Provider) GetReportStatus(ctx context.Context, reportID string) (provider.ReportStatus, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"/reports/status/"+reportID, nil)
	if err != nil {
		return provider.ReportStatusFailed, err
	}
	req.Header.Set("Authorization", "Bearer "+p.apiKey)

	resp, err := p.client.Do(req)
	if err != nil {
		return provider.ReportStatusFailed, &provider.ProviderError{
			Code:    "API_ERROR",
			Message: "CARFAX API request failed",
			Details: err.Error(),
		}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return provider.ReportStatusNotFound, nil
	}

	var parsed struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return provider.ReportStatusFailed, err
	}

	switch strings.ToUpper(parsed.Status) {
	case "PROCESSING", "QUEUED":
		return provider.ReportStatusPending, nil
	case "COMPLETED":
		return provider.ReportStatusReady, nil
	default:
		return provider.ReportStatusFailed, nil
	}
}

// NormalizeTitleBrand maps CARFAX title brand values onto the shared enum.
func NormalizeTitleBrand(brand string) model.TitleStatus {
	switch strings.ToUpper(strings.TrimSpace(brand)) {
	case "CLEAN", "CLEAN_TITLE", "NO_BRAND":
		return model.TitleStatusClean
	case "SALVAGE", "SALVAGE_TITLE", "JUNK":
		return model.TitleStatusSalvage
	case "FLOOD", "FLOOD_DAMAGE", "WATER_DAMAGE":
		return model.TitleStatusFlood
	case "LEMON", "LEMON_LAW", "MANUFACTURER_BUYBACK":
		return model.TitleStatusLemon
	case "BRANDED", "REBUILT", "RECONSTRUCTED", "FIRE_DAMAGE", "HAIL_DAMAGE":
		return model.TitleStatusBranded
	default:
		return model.TitleStatusUnknown
	}
}
