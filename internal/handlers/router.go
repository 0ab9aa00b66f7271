package handlers

import "github.com/uptrace/bunrouter"

// Router wires the service routes with logging and rate-limit
// middleware under the given base path
func (h *Handler) Router(base string) *bunrouter.CompatRouter {
	router := bunrouter.New(
		bunrouter.Use(loggingMiddleware),
		bunrouter.Use(limitMiddleware),
	).Compat()

	router.GET(base+"/", enableCORS(h.Info))
	router.GET(base+"/health", enableCORS(h.Health))
	router.POST(base+"/upload", enableCORS(h.Upload))
	router.POST(base+"/webcam", enableCORS(h.Webcam))

	// CORS preflight
	router.OPTIONS(base+"/upload", enableCORS(h.Upload))
	router.OPTIONS(base+"/webcam", enableCORS(h.Webcam))

	return router
}
