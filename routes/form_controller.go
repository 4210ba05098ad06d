package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/c88lopez/vial-form-app-api/app"
	"github.com/c88lopez/vial-form-app-api/httpx"
	"github.com/c88lopez/vial-form-app-api/log"
	"github.com/c88lopez/vial-form-app-api/model"
)

func ListForms(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Debug("get forms")

		forms, err := app.Store.ListForms(r.Context())
		if err != nil {
			httpx.LogFault(w, "db.get_forms", err)
			return
		}

		render.JSON(w, r, map[string]any{
			"forms": forms,
		})
	}
}

func GetFormById(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		formId := chi.URLParam(r, "id")
		log.Debug("get form by id")

		form, err := app.Store.GetForm(r.Context(), formId)
		if err != nil {
			httpx.LogFault(w, "db.get_form", err)
			return
		}

		render.JSON(w, r, map[string]any{
			"name":   form.Name,
			"fields": form.Fields,
		})
	}
}

func CreateForm(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body := model.Form{}
		err := render.DecodeJSON(r.Body, &body)
		if err != nil {
			httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "request.parse_body")
			return
		}
		log.Debugf("create form %q", body.Name)

		form, err := app.Store.CreateForm(r.Context(), body.Name, body.Fields)
		if err != nil {
			httpx.LogFault(w, "db.insert_form", err)
			return
		}

		w.WriteHeader(http.StatusCreated)
		render.JSON(w, r, form)
	}
}
