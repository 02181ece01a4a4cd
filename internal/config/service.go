package config

type ServiceConfig struct {
	Name        string `yaml:"name"`
	Environment string `yaml:"environment"`
	Version     string `yaml:"version"`
	ClientURL   string `yaml:"client_url"`
}

// AdminConfig configures the admin dashboard session.
type AdminConfig struct {
	// Password is the shared dashboard credential. It lives in the config
	// file, never in source.
	Password string `yaml:"password"`
	// JWTSecret signs admin session tokens.
	JWTSecret string `yaml:"jwt_secret"`
	// TokenTTL is the admin session lifetime, e.g. "12h".
	TokenTTL string `yaml:"token_ttl"`
}

// SMTPConfig configures outbound notification mail. Leaving Host empty
// disables email notifications.
type SMTPConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	From     string `yaml:"from"`
	// NotifyTo receives new inquiry and credit application notifications.
	NotifyTo string `yaml:"notify_to"`
}

// GoogleConfig configures Google Drive access.
type GoogleConfig struct {
	// APIKey authorizes Drive REST calls against public folders.
	APIKey string `yaml:"api_key"`
	// DriveBaseURL overrides the Drive API endpoint, used in tests.
	DriveBaseURL string `yaml:"drive_base_url"`
}

// HistoryConfig configures the vehicle history report providers.
type HistoryConfig struct {
	Carfax    CarfaxConfig    `yaml:"carfax"`
	AutoCheck AutoCheckConfig `yaml:"autocheck"`
}

type CarfaxConfig struct {
	APIKey  string `yaml:"api_key"`
	BaseURL string `yaml:"base_url"`
}

type AutoCheckConfig struct {
	APIKey  string `yaml:"api_key"`
	BaseURL string `yaml:"base_url"`
}

// BannerConfig configures the scheduled NEW-banner cleanup.
type BannerConfig struct {
	// CronSpec is the cleanup schedule in cron syntax. Defaults to daily
	// at 03:00 when empty.
	CronSpec string `yaml:"cron_spec"`
}
