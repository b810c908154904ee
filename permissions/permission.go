// Package permissions holds the role table enforced by the RBAC middleware.
// Paths are chi route patterns such as /v1/bookings/{id}.
package permissions

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"github.com/rs/zerolog/log"
)

//go:embed permissions.json
var permissionsData []byte

// Permission is one endpoint rule. Skip marks a public endpoint.
type Permission struct {
	Permissions []string `json:"permissions"`
	Path        string   `json:"path"`
	Method      string   `json:"method"`
	Skip        bool     `json:"skip"`
}

// PermissionData is the whole table. A top level Skip disables RBAC.
type PermissionData struct {
	Endpoints []Permission `json:"endpoints"`
	Skip      bool         `json:"skip"`
}

// FindPermissions returns the rule for pattern and method, or the zero rule.
func (r *PermissionData) FindPermissions(pattern, method string) Permission {
	pattern = normalize(pattern)

	for _, endpoint := range r.Endpoints {
		if endpoint.Method == method && normalize(endpoint.Path) == pattern {
			return endpoint
		}
	}

	return Permission{}
}

// Allows reports whether role may call the endpoint. Unlisted endpoints and rules without roles are open.
func (r *PermissionData) Allows(pattern, method, role string) bool {
	if r.Skip {
		return true
	}

	rule := r.FindPermissions(pattern, method)

	return rule.Skip || len(rule.Permissions) == 0 || slices.Contains(rule.Permissions, role)
}

// Load decodes a permissions table.
func Load(raw []byte) (*PermissionData, error) {
	var data PermissionData
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("decode permissions: %w", err)
	}

	for _, endpoint := range data.Endpoints {
		if endpoint.Path == "" || endpoint.Method == "" {
			return nil, fmt.Errorf("permission entry without path or method: %+v", endpoint)
		}
	}

	return &data, nil
}

// Get loads the embedded permissions.json. It returns nil when the file is invalid,
// which makes RBAC deny every protected route.
func Get() *PermissionData {
	data, err := Load(permissionsData)
	if err != nil {
		log.Error().Err(err).Msg("Failed to load embedded permissions")

		return nil
	}

	log.Info().Int("endpoints", len(data.Endpoints)).Msg("Loaded embedded permissions")

	return data
}

func normalize(pattern string) string {
	if pattern == "/" {
		return pattern
	}

	return strings.TrimSuffix(pattern, "/")
}
