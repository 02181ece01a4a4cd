package provider

import (
	"context"
	"time"

	"github.com/hillcrest-auto/dealer-backend/internal/domain/model"
)

// HistoryProvider defines the interface for vehicle history report providers
// (CARFAX, AutoCheck, etc.)
type HistoryProvider interface {
	// Name returns the provider name.
	Name() string

	// Authenticate reports whether the provider is configured and reachable.
	// It never returns an error; an unreachable provider is simply skipped.
	Authenticate(ctx context.Context) bool

	// GetReport fetches a normalized history report for a VIN. A nil report
	// with a nil error means the provider has no report for that VIN.
	GetReport(ctx context.Context, vin string) (*Report, error)

	// RequestReport asks the provider to generate a fresh report and
	// returns the provider-side report ID.
	RequestReport(ctx context.Context, vin string) (string, error)

	// GetReportStatus returns the generation status for a requested report.
	GetReportStatus(ctx context.Context, reportID string) (ReportStatus, error)
}

// Report is a provider-agnostic vehicle history report.
type Report struct {
	Provider        string            `json:"provider"`
	VIN             string            `json:"vin"`
	HistoryScore    int               `json:"history_score"`    // 0-100
	ConfidenceScore int               `json:"confidence_score"` // provider self-reported, 0-100
	TitleStatus     model.TitleStatus `json:"title_status"`
	AccidentHistory string            `json:"accident_history"`
	PreviousOwners  int               `json:"previous_owners"`
	ServiceRecords  string            `json:"service_records"`
	// EmbedCode is CARFAX's embeddable report snippet; ReportURL is
	// AutoCheck's hosted report link. Each provider fills its own.
	EmbedCode string    `json:"embed_code,omitempty"`
	ReportURL string    `json:"report_url,omitempty"`
	FetchedAt time.Time `json:"fetched_at"`
}

// ReportStatus represents the generation status of a requested report.
type ReportStatus string

const (
	ReportStatusPending  ReportStatus = "pending"
	ReportStatusReady    ReportStatus = "ready"
	ReportStatusFailed   ReportStatus = "failed"
	ReportStatusNotFound ReportStatus = "not_found"
)

// ProviderError carries a provider-specific failure.
type ProviderError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

func (e *ProviderError) Error() string {
	if e.Details != "" {
		return e.Message + ": " + e.Details
	}
	return e.Message
}
