package autocheck

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/hillcrest-auto/dealer-backend/internal/config"
	"github.com/hillcrest-auto/dealer-backend/internal/domain/model"
)

func newTestProvider(t *testing.T, handler http.HandlerFunc) *Provider {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return New(config.AutoCheckConfig{APIKey: "test-key", BaseURL: server.URL}, zap.NewNop())
}

func TestProvider_GetReport(t *testing.T) {
	t.Run("rescales the score and maps the title code", func(t *testing.T) {
		p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/vehicles/2HGFC2F59JH123456/summary", r.URL.Path)
			assert.Equal(t, "test-key", r.Header.Get("X-Api-Key"))
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{
				"score": 81,
				"scoreCeiling": 90,
				"confidenceLevel": 75,
				"titleCode": "rebuilt",
				"accidentCount": 1,
				"owners": 3,
				"serviceEvents": 6,
				"reportUrl": "https://www.autocheck.com/report/abc"
			}`))
		})

		report, err := p.GetReport(context.Background(), "2HGFC2F59JH123456")

		assert.NoError(t, err)
		assert.Equal(t, ProviderName, report.Provider)
		assert.Equal(t, 90, report.HistoryScore) // 81/90 rescaled to 0-100
		assert.Equal(t, model.TitleStatusBranded, report.TitleStatus)
		assert.Equal(t, "1 accident reported", report.AccidentHistory)
		assert.Equal(t, 3, report.PreviousOwners)
		assert.Equal(t, "https://www.autocheck.com/report/abc", report.ReportURL)
	})

	t.Run("404 means no report, not an error", func(t *testing.T) {
		p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		})

		report, err := p.GetReport(context.Background(), "2HGFC2F59JH123456")

		assert.NoError(t, err)
		assert.Nil(t, report)
	})
}

func TestNormalizeScore(t *testing.T) {
	assert.Equal(t, 100, normalizeScore(90, 90))
	assert.Equal(t, 90, normalizeScore(81, 90))
	assert.Equal(t, 50, normalizeScore(45, 0)) // missing ceiling defaults to 90
	assert.Equal(t, 0, normalizeScore(-3, 90))
	assert.Equal(t, 100, normalizeScore(200, 90))
}

func TestNormalizeTitleCode(t *testing.T) {
	tests := []struct {
		code string
		want model.TitleStatus
	}{
		{code: "clear", want: model.TitleStatusClean},
		{code: "Salvage", want: model.TitleStatusSalvage},
		{code: "water", want: model.TitleStatusFlood},
		{code: "buyback", want: model.TitleStatusLemon},
		{code: "hail", want: model.TitleStatusBranded},
		{code: "", want: model.TitleStatusUnknown},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeTitleCode(tt.code), tt.code)
	}
}

func TestAccidentSummary(t *testing.T) {
	assert.Equal(t, "No accidents reported", accidentSummary(0))
	assert.Equal(t, "1 accident reported", accidentSummary(1))
	assert.Equal(t, "4 accidents reported", accidentSummary(4))
}
