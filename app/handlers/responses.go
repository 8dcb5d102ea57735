package main

import (
	"encoding/json"
	"net/http"

	"github.com/contactkeeper/contacts-api/app/dto"
	"github.com/contactkeeper/contacts-api/app/errors"
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeErrorResponse(w http.ResponseWriter, appErr *errors.AppError) {
	if appErr.Status == http.StatusUnauthorized {
		w.Header().Set("WWW-Authenticate", "Bearer")
	}

	writeJSON(w, appErr.Status, dto.ErrorResponse{
		Error: appErr.Message,
		Code:  string(appErr.Code),
	})
}
