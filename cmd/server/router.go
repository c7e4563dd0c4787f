package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/star-print/internal/api"
	apiMiddleware "github.com/phrazzld/star-print/internal/api/middleware"
)

// setupRouter creates the router with all routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(apiMiddleware.Trace(app.logger))
	if app.config.Server.Debug() {
		r.Use(middleware.Logger)
	}
	r.Use(middleware.Recoverer)

	printHandler := api.NewPrintHandler(app.printService,
		api.WithMaxImagePixels(app.config.Printer.MaxImagePixels))

	r.Route("/print", func(r chi.Router) {
		r.Use(middleware.RequestSize(app.config.Server.MaxRequestBytes))
		r.Post("/text", printHandler.PrintText)
		r.Post("/image", printHandler.PrintImage)
		r.Post("/barcode", printHandler.PrintBarcode)
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})
	r.Get("/health/printer", printHandler.PrinterHealth)
	r.Method(http.MethodGet, "/metrics", app.metrics.Handler())

	return r
}
