package rest

import (
	"net/http"

	"github.com/gorilla/handlers"
)

type CORSOptions struct {
	AllowedOrigins []string
	AllowedMethods []string
}

// CORS tags responses for allowed origins and answers their preflight requests.
// Requests from other origins pass through untagged, the browser blocks them.
func CORS(options CORSOptions) func(http.Handler) http.Handler {
	return handlers.CORS(
		handlers.AllowedOrigins(options.AllowedOrigins),
		handlers.AllowedMethods(options.AllowedMethods),
		handlers.OptionStatusCode(http.StatusNoContent),
	)
}
