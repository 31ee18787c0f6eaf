package handlers

import (
	"net/http"

	"github.com/rs/cors"

	"gitlab.com/tachyons/servedir/internal/config"
)

var (
	corsHandler = cors.New(cors.Options{AllowedMethods: []string{http.MethodGet, http.MethodHead}})
)

// CorsHandler allows cross-origin GET and HEAD requests unless they are disabled
func CorsHandler(config *config.General, handler http.Handler) http.Handler {
	if !config.DisableCrossOriginRequests {
		handler = corsHandler.Handler(handler)
	}
	return handler
}
