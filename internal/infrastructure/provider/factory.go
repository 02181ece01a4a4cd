package provider

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/hillcrest-auto/dealer-backend/internal/config"
	domainprovider "github.com/hillcrest-auto/dealer-backend/internal/domain/provider"
	autocheckProvider "github.com/hillcrest-auto/dealer-backend/internal/infrastructure/provider/autocheck"
	carfaxProvider "github.com/hillcrest-auto/dealer-backend/internal/infrastructure/provider/carfax"
)

// Factory creates history providers based on the provider name
type Factory struct {
	config *config.HistoryConfig
	logger *zap.Logger
}

// NewFactory creates a new provider factory
func NewFactory(config *config.HistoryConfig, logger *zap.Logger) *Factory {
	return &Factory{
		config: config,
		logger: logger,
	}
}

// GetProvider returns a history provider by name
func (f *Factory) GetProvider(name string) (domainprovider.HistoryProvider, error) {
	switch name {
	case carfaxProvider.ProviderName:
		return carfaxProvider.New(f.config.Carfax, f.logger), nil
	case autocheckProvider.ProviderName:
		return autocheckProvider.New(f.config.AutoCheck, f.logger), nil
	default:
		return nil, fmt.Errorf("unsupported history provider: %s", name)
	}
}

// All returns every provider in fallback order. CARFAX is tried first.
func (f *Factory) All() []domainprovider.HistoryProvider {
	return []domainprovider.HistoryProvider{
		carfaxProvider.New(f.config.Carfax, f.logger),
		autocheckProvider.New(f.config.AutoCheck, f.logger),
	}
}
