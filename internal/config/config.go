package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env"
)

// Config holds every recognized environment option. It is parsed once at
// startup and treated as immutable for the process lifetime.
type Config struct {
	Address  string `env:"STOREFRONT_ADDRESS" envDefault:":8080"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	GoogleServiceAccountEmail string `env:"GOOGLE_SERVICE_ACCOUNT_EMAIL"`
	GooglePrivateKey          string `env:"GOOGLE_PRIVATE_KEY"`
	SpreadsheetID             string `env:"GOOGLE_SPREADSHEET_ID"`
	OrdersSheetID             int64  `env:"ORDERS_SHEET_ID" envDefault:"0"`

	TwilioAccountSID    string `env:"TWILIO_ACCOUNT_SID"`
	TwilioAuthToken     string `env:"TWILIO_AUTH_TOKEN"`
	TwilioPhoneNumber   string `env:"TWILIO_PHONE_NUMBER"`
	BusinessPhoneNumber string `env:"BUSINESS_PHONE_NUMBER"`

	SquareAccessToken string `env:"SQUARE_ACCESS_TOKEN"`
	SquareEnvironment string `env:"SQUARE_ENVIRONMENT" envDefault:"sandbox"`
	SquareLocationID  string `env:"SQUARE_LOCATION_ID"`

	CronSecret    string `env:"CRON_SECRET"`
	ReferralCodes string `env:"REFERRAL_CODES"`
	PublicBaseURL string `env:"PUBLIC_BASE_URL" envDefault:"http://localhost:8080"`
}

func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}
	return cfg, nil
}

// SheetsConfigured reports whether the row store credentials are present.
// The returned error names the missing variable, never its value.
func (c *Config) SheetsConfigured() error {
	return firstMissing(map[string]string{
		"GOOGLE_SERVICE_ACCOUNT_EMAIL": c.GoogleServiceAccountEmail,
		"GOOGLE_PRIVATE_KEY":           c.GooglePrivateKey,
		"GOOGLE_SPREADSHEET_ID":        c.SpreadsheetID,
	})
}

func (c *Config) TwilioConfigured() error {
	return firstMissing(map[string]string{
		"TWILIO_ACCOUNT_SID":    c.TwilioAccountSID,
		"TWILIO_AUTH_TOKEN":     c.TwilioAuthToken,
		"TWILIO_PHONE_NUMBER":   c.TwilioPhoneNumber,
		"BUSINESS_PHONE_NUMBER": c.BusinessPhoneNumber,
	})
}

func (c *Config) SquareConfigured() error {
	return firstMissing(map[string]string{
		"SQUARE_ACCESS_TOKEN": c.SquareAccessToken,
	})
}

// ReferralAllowList returns the configured referral codes, lowercased.
// An empty result means no allow-list is configured and any code passes.
func (c *Config) ReferralAllowList() []string {
	if strings.TrimSpace(c.ReferralCodes) == "" {
		return nil
	}
	var codes []string
	for _, code := range strings.Split(c.ReferralCodes, ",") {
		code = strings.ToLower(strings.TrimSpace(code))
		if code != "" {
			codes = append(codes, code)
		}
	}
	return codes
}

func firstMissing(vars map[string]string) error {
	// Deterministic order so the logged variable is stable.
	names := []string{
		"GOOGLE_SERVICE_ACCOUNT_EMAIL", "GOOGLE_PRIVATE_KEY", "GOOGLE_SPREADSHEET_ID",
		"TWILIO_ACCOUNT_SID", "TWILIO_AUTH_TOKEN", "TWILIO_PHONE_NUMBER", "BUSINESS_PHONE_NUMBER",
		"SQUARE_ACCESS_TOKEN",
	}
	for _, name := range names {
		if value, ok := vars[name]; ok && strings.TrimSpace(value) == "" {
			return fmt.Errorf("%s is not set", name)
		}
	}
	return nil
}
