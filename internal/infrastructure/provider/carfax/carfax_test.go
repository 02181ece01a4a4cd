package carfax

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

	return New(config.CarfaxConfig{APIKey: "test-key", BaseURL: server.URL}, zap.NewNop())
}

func TestProvider_Authenticate(t *testing.T) {
	t.Run("accepted key", func(t *testing.T) {
		p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/account", r.URL.Path)
			assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
			w.WriteHeader(http.StatusOK)
		})

		assert.True(t, p.Authenticate(context.Background()))
	})

	t.Run("rejected key", func(t *testing.T) {
		p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		})

		assert.False(t, p.Authenticate(context.Background()))
	})

	t.Run("missing key", func(t *testing.T) {
		p := New(config.CarfaxConfig{}, zap.NewNop())

		assert.False(t, p.Authenticate(context.Background()))
	})
}

func TestProvider_GetReport(t *testing.T) {
	t.Run("normalizes the wire report", func(t *testing.T) {
		p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/reports/2HGFC2F59JH123456", r.URL.Path)
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{
				"vin": "2HGFC2F59JH123456",
				"historyScore": 87,
				"confidence": 92,
				"titleBrand": "CLEAN",
				"accidentSummary": "No accidents reported",
				"ownerCount": 2,
				"serviceSummary": "14 service records",
				"embedCode": "<iframe src=\"x\"></iframe>"
			}`))
		})

		report, err := p.GetReport(context.Background(), "2HGFC2F59JH123456")

		assert.NoError(t, err)
		assert.Equal(t, ProviderName, report.Provider)
		assert.Equal(t, 87, report.HistoryScore)
		assert.Equal(t, 92, report.ConfidenceScore)
		assert.Equal(t, model.TitleStatusClean, report.TitleStatus)
		assert.Equal(t, 2, report.PreviousOwners)
		assert.NotEmpty(t, report.EmbedCode)
		assert.False(t, report.FetchedAt.IsZero())
	})

	t.Run("404 means no report, not an error", func(t *testing.T) {
		p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		})

		report, err := p.GetReport(context.Background(), "2HGFC2F59JH123456")

		assert.NoError(t, err)
		assert.Nil(t, report)
	})

	t.Run("5xx is an error", func(t *testing.T) {
		p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		})

		_, err := p.GetReport(context.Background(), "2HGFC2F59JH123456")

		assert.Error(t, err)
	})
}

func TestNormalizeTitleBrand(t *testing.T) {
	tests := []struct {
		brand string
		want  model.TitleStatus
	}{
		{brand: "CLEAN", want: model.TitleStatusClean},
		{brand: "clean", want: model.TitleStatusClean},
		{brand: "SALVAGE_TITLE", want: model.TitleStatusSalvage},
		{brand: "FLOOD_DAMAGE", want: model.TitleStatusFlood},
		{brand: "MANUFACTURER_BUYBACK", want: model.TitleStatusLemon},
		{brand: "REBUILT", want: model.TitleStatusBranded},
		{brand: "", want: model.TitleStatusUnknown},
		{brand: "SOMETHING_ELSE", want: model.TitleStatusUnknown},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeTitleBrand(tt.brand), tt.brand)
	}
}
