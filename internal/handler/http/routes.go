package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Init builds the router. Paths are registered in full under groups rather
// than nested sub-routers, so a known path with an unsupported method falls
// through to CheckHTTPMethod.
func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer, h.withTraceID, h.withLogging, withGZip)
	if h.requestTimeout > 0 {
		router.Use(middleware.Timeout(h.requestTimeout))
	}

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Post("/api/auth/register", h.register)
		r.Post("/api/auth/login", h.login)
		r.Post("/api/auth/logout", h.logout)
		r.Get("/api/version/", h.getServerVersion)
	})

	// routes with authorization
	router.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Get("/api/auth/profile", h.profile)

		r.With(h.uploadIntegrity).Post("/api/files/upload", h.uploadFile)
		r.Get("/api/files", h.listFiles)
		r.Get("/api/files/filedata/{id}", h.fileData)
		r.Get("/api/files/download/{id}", h.downloadFile)
		r.Get("/api/files/ai-insights/{fileId}", h.fileInsights)
		r.Delete("/api/files/{id}", h.deleteFile)

		r.Post("/api/chart-history", h.recordChart)
		r.Get("/api/chart-history", h.listCharts)
		r.Get("/api/chart-history/count", h.countCharts)

		r.Get("/api/dashboard/history", h.uploadHistory)
	})

	// admin routes
	router.Group(func(r chi.Router) {
		r.Use(h.auth, h.adminOnly)

		r.Get("/api/admin/overview", h.adminOverview)
		r.Get("/api/admin/user-files/{userId}", h.adminUserFiles)
	})

	router.NotFound(notFound)
	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
