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

type submitRecordBody struct {
	Answers model.SubmittedAnswers `json:"answers"`
}

func SubmitRecord(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		formId := chi.URLParam(r, "id")

		body := submitRecordBody{}
		err := render.DecodeJSON(r.Body, &body)
		if err != nil {
			httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "request.parse_body")
			return
		}
		log.Debugf("submit record for form %s", formId)

		recordId, err := app.Store.SubmitRecord(r.Context(), formId, body.Answers)
		if err != nil {
			httpx.LogFault(w, "db.insert_record", err)
			return
		}

		w.WriteHeader(http.StatusCreated)
		render.JSON(w, r, map[string]any{
			"id": recordId,
		})
	}
}

func ListRecords(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		formId := chi.URLParam(r, "id")
		log.Debug("get records by form id")

		records, err := app.Store.ListRecords(r.Context(), formId)
		if err != nil {
			httpx.LogFault(w, "db.get_records", err)
			return
		}

		render.JSON(w, r, map[string]any{
			"records": records,
		})
	}
}
