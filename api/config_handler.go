// Package api — configuration inspection endpoint.
package api

import (
	"net/http"

	"github.com/avikram/filingscope/internal/config"
)

// ConfigResponse is the JSON envelope returned by GET /api/v1/config.
type ConfigResponse struct {
	Company  config.CompanyConfig   `json:"company"`
	Settings []config.SettingStatus `json:"settings"`
}

// handleGetConfig reports the analyzed company and where the key runtime
// settings come from. Sensitive values are masked.
func (s *Server) handleGetConfig(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data: ConfigResponse{
			Company:  s.cfg.Company,
			Settings: config.CheckSettings(s.cfg),
		},
	})
}
