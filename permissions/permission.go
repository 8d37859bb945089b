// Package permissions holds the embedded route to role table enforced by the RBAC middleware.
package permissions

import (
	_ "embed"
	"encoding/json"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"
)

//go:embed permissions.json
var permissionsData []byte

// Permission lists the roles allowed on one route pattern. Skip makes the route public.
type Permission struct {
	Permissions []string `json:"permissions"`
	Path        string   `json:"path"`
	Method      string   `json:"method"`
	Skip        bool     `json:"skip"`
}

// PermissionData is the whole table. The top level Skip turns RBAC off everywhere.
type PermissionData struct {
	Endpoints []Permission `json:"endpoints"`
	Skip      bool         `json:"skip"`

	index map[string]Permission
}

func routeKey(method, path string) string {
	if len(path) > 1 {
		path = strings.TrimSuffix(path, "/")
	}

	return method + " " + path
}

// FindPermissions looks up a chi route pattern. A trailing slash is ignored. Unknown routes get
// the zero Permission, which RBAC treats as unrestricted.
func (r *PermissionData) FindPermissions(path, method string) Permission {
	return r.index[routeKey(method, path)]
}

var (
	loadOnce sync.Once
	loaded   *PermissionData
)

// Get decodes the embedded table once. It returns nil if the table is malformed, which makes RBAC
// deny every restricted route.
func Get() *PermissionData {
	loadOnce.Do(func() {
		var data PermissionData
		if err := json.Unmarshal(permissionsData, &data); err != nil {
			log.Error().Err(err).Msg("failed to decode embedded permissions")

			return
		}

		data.index = make(map[string]Permission, len(data.Endpoints))
		for _, endpoint := range data.Endpoints {
			data.index[routeKey(endpoint.Method, endpoint.Path)] = endpoint
		}

		log.Info().Int("endpoints", len(data.Endpoints)).Msg("permissions loaded")

		loaded = &data
	})

	return loaded
}
