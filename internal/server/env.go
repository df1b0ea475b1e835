package server

import (
	"strings"

	pkgutil "github.com/projectflow-dev/projectflow/pkg/util"
)

// allowedOrigins returns the list of origins allowed for CORS.
func allowedOrigins() []string {
	allowed := pkgutil.GetEnv("ALLOWED_ORIGINS", "http://localhost:5173")
	origins := strings.Split(allowed, ",")
	for i := range origins {
		origins[i] = strings.TrimSpace(origins[i])
	}
	return origins
}
