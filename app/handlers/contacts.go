package main

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/contactkeeper/contacts-api/app/dto"
	"github.com/contactkeeper/contacts-api/app/errors"
)

const (
	defaultListLimit = 100
	maxListLimit     = 1000
)

// createContactHandler handles POST /contacts
func (app *application) createContactHandler(w http.ResponseWriter, r *http.Request) {
	var req dto.ContactCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorResponse(w, errors.NewInvalidInput("invalid request body"))
		return
	}

	if err := validateRequest(&req); err != nil {
		writeErrorResponse(w, err)
		return
	}

	resp, appErr := app.contacts.Create(r.Context(), req)
	if appErr != nil {
		writeErrorResponse(w, appErr)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

// listContactsHandler handles GET /contacts with skip/limit pagination
func (app *application) listContactsHandler(w http.ResponseWriter, r *http.Request) {
	skip, appErr := queryInt(r, "skip", 0)
	if appErr != nil {
		writeErrorResponse(w, appErr)
		return
	}
	limit, appErr := queryInt(r, "limit", defaultListLimit)
	if appErr != nil {
		writeErrorResponse(w, appErr)
		return
	}
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 || limit > maxListLimit {
		limit = defaultListLimit
	}

	resp, appErr := app.contacts.List(r.Context(), skip, limit)
	if appErr != nil {
		writeErrorResponse(w, appErr)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// getContactHandler handles GET /contacts/{id}
func (app *application) getContactHandler(w http.ResponseWriter, r *http.Request) {
	id, appErr := urlParamID(r)
	if appErr != nil {
		writeErrorResponse(w, appErr)
		return
	}

	resp, appErr := app.contacts.Get(r.Context(), id)
	if appErr != nil {
		writeErrorResponse(w, appErr)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// updateContactHandler handles PUT /contacts/{id} with partial semantics:
// absent fields keep their stored values.
func (app *application) updateContactHandler(w http.ResponseWriter, r *http.Request) {
	id, appErr := urlParamID(r)
	if appErr != nil {
		writeErrorResponse(w, appErr)
		return
	}

	var req dto.ContactUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorResponse(w, errors.NewInvalidInput("invalid request body"))
		return
	}

	if err := validateRequest(&req); err != nil {
		writeErrorResponse(w, err)
		return
	}

	resp, appErr := app.contacts.Update(r.Context(), id, req)
	if appErr != nil {
		writeErrorResponse(w, appErr)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// deleteContactHandler handles DELETE /contacts/{id}
func (app *application) deleteContactHandler(w http.ResponseWriter, r *http.Request) {
	id, appErr := urlParamID(r)
	if appErr != nil {
		writeErrorResponse(w, appErr)
		return
	}

	if appErr := app.contacts.Delete(r.Context(), id); appErr != nil {
		writeErrorResponse(w, appErr)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// searchContactsHandler handles GET /contacts/search?query=
func (app *application) searchContactsHandler(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("query")
	if query == "" {
		writeErrorResponse(w, errors.NewValidation("query is required"))
		return
	}

	resp, appErr := app.contacts.Search(r.Context(), query)
	if appErr != nil {
		writeErrorResponse(w, appErr)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// upcomingBirthdaysHandler handles GET /contacts/upcoming_birthdays
func (app *application) upcomingBirthdaysHandler(w http.ResponseWriter, r *http.Request) {
	resp, appErr := app.contacts.UpcomingBirthdays(r.Context())
	if appErr != nil {
		writeErrorResponse(w, appErr)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func urlParamID(r *http.Request) (int64, *errors.AppError) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		return 0, errors.NewValidation("id must be an integer")
	}
	return id, nil
}

func queryInt(r *http.Request, name string, fallback int) (int, *errors.AppError) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback, nil
	}
	val, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.NewValidation(name + " must be an integer")
	}
	return val, nil
}
