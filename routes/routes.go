package routes

import (
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/c88lopez/vial-form-app-api/app"
)

func Wire(app app.App) http.Handler {
	root := chi.NewRouter()
	root.Use(middleware.Logger, middleware.Recoverer)
	root.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{app.CORSOrigin},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE"},
	}))

	root.Mount("/form", formRouter(app))

	return root
}

func formRouter(app app.App) http.Handler {
	r := chi.NewRouter()

	r.Get("/", ListForms(app))
	r.Post("/", CreateForm(app))
	r.Get("/{id}", GetFormById(app))

	r.Post("/{id}/record", SubmitRecord(app))
	r.Get("/{id}/record", ListRecords(app))

	return r
}
