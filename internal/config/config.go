package config

import (
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	ClientID     string `env:"STRAVA_CLIENT_ID,required"`
	ClientSecret string `env:"STRAVA_CLIENT_SECRET,required"`
	RedirectBase string `env:"STRAVA_REDIRECT_BASE_URL,required"`
	Scopes       string `env:"STRAVA_SCOPES" envDefault:"read,activity:read_all"`
	StateSecret  string `env:"STRAVA_STATE_SECRET,required"`

	// FrontendURL is where the OAuth callback hands the token fields back
	// as query parameters for client-side storage.
	FrontendURL string `env:"FRONTEND_REDIRECT_URL,required"`

	// DefaultUserID keys stored credentials when a request carries no user
	// identity.
	DefaultUserID string `env:"DEFAULT_USER_ID" envDefault:"default"`

	TokenStore  string `env:"TOKEN_STORE" envDefault:"file"` // memory, file or postgres
	TokenDir    string `env:"TOKEN_DIR" envDefault:"./tokens"`
	DatabaseURL string `env:"DATABASE_URL"`

	SendgridKey    string        `env:"SENDGRID_API_KEY"`
	SenderEmail    string        `env:"SENDER_EMAIL"`
	RecipientEmail string        `env:"RECIPIENT_EMAIL"`
	ReportInterval time.Duration `env:"REPORT_INTERVAL" envDefault:"168h"`

	UpstreamTimeout time.Duration `env:"UPSTREAM_TIMEOUT" envDefault:"15s"`
	FetchDeadline   time.Duration `env:"FETCH_DEADLINE" envDefault:"2m"`

	Debug bool   `env:"DEBUG" envDefault:"false"`
	Addr  string `env:"ADDR" envDefault:":8080"`
}

func LoadConfig() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
