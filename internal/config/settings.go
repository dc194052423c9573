package config

import "os"

// SettingSource represents where a setting's value comes from.
type SettingSource string

const (
	SourceEnv    SettingSource = "env"
	SourceConfig SettingSource = "config"
	SourceNone   SettingSource = "none"
)

// SettingStatus represents the status of one runtime setting.
type SettingStatus struct {
	Name   string        `json:"name"`
	Source SettingSource `json:"source"`
	IsSet  bool          `json:"is_set"`
	Value  string        `json:"value,omitempty"` // masked when sensitive
}

// CheckSettings reports where the key runtime settings come from, for the
// status command and the config API endpoint.
func CheckSettings(cfg *Config) []SettingStatus {
	return []SettingStatus{
		checkSetting("Company CIK", cfg.Company.CIK, "FILINGSCOPE_COMPANY_CIK", false),
		checkSetting("Company Ticker", cfg.Company.Ticker, "FILINGSCOPE_COMPANY_TICKER", false),
		checkSetting("EDGAR User Agent", cfg.EDGAR.UserAgent, "FILINGSCOPE_EDGAR_USER_AGENT", false),
		checkSetting("Store Backend", cfg.Store.Backend, "FILINGSCOPE_STORE_BACKEND", false),
		checkSetting("Postgres DSN", cfg.Store.PostgresDSN, "FILINGSCOPE_STORE_POSTGRES_DSN", true),
	}
}

// checkSetting checks if a setting is set and where it came from.
func checkSetting(name, value, envVar string, sensitive bool) SettingStatus {
	status := SettingStatus{
		Name:  name,
		IsSet: value != "",
	}

	if value != "" {
		// Check if it came from env
		if os.Getenv(envVar) != "" {
			status.Source = SourceEnv
		} else {
			status.Source = SourceConfig
		}
		if sensitive {
			status.Value = maskValue(value)
		} else {
			status.Value = value
		}
	} else {
		status.Source = SourceNone
	}

	return status
}

// maskValue masks a sensitive value for display, showing only first 3 and
// last 3 chars.
func maskValue(value string) string {
	if len(value) <= 8 {
		return "***"
	}
	return value[:3] + "..." + value[len(value)-3:]
}
