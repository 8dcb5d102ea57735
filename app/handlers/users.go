package main

import (
	"encoding/json"
	"net/http"

	"github.com/contactkeeper/contacts-api/app/dto"
	"github.com/contactkeeper/contacts-api/app/errors"
	authmw "github.com/contactkeeper/contacts-api/app/middleware"
)

const maxAvatarBytes = 5 << 20 // 5 MiB

// createUserHandler handles POST /users. The verification mail goes out as a
// side effect; its delivery never changes the response.
func (app *application) createUserHandler(w http.ResponseWriter, r *http.Request) {
	var req dto.UserCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorResponse(w, errors.NewInvalidInput("invalid request body"))
		return
	}

	if err := validateRequest(&req); err != nil {
		writeErrorResponse(w, err)
		return
	}

	resp, appErr := app.users.Register(r.Context(), req)
	if appErr != nil {
		writeErrorResponse(w, appErr)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

// tokenHandler handles POST /token. The body is form-encoded with username
// and password fields, OAuth2 password-flow style; username carries the email.
func (app *application) tokenHandler(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeErrorResponse(w, errors.NewInvalidInput("invalid form body"))
		return
	}

	username := r.PostForm.Get("username")
	password := r.PostForm.Get("password")
	if username == "" || password == "" {
		writeErrorResponse(w, errors.NewValidation("username and password are required"))
		return
	}

	resp, appErr := app.users.Login(r.Context(), username, password)
	if appErr != nil {
		writeErrorResponse(w, appErr)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// verifyEmailHandler handles POST /users/verify-email. The token comes in the
// JSON body, or as a query parameter when the mail link is followed directly.
func (app *application) verifyEmailHandler(w http.ResponseWriter, r *http.Request) {
	var req dto.VerifyEmailRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Token == "" {
		req.Token = r.URL.Query().Get("token")
	}
	if req.Token == "" {
		writeErrorResponse(w, errors.NewValidation("token is required"))
		return
	}

	if appErr := app.users.VerifyEmail(r.Context(), req.Token); appErr != nil {
		writeErrorResponse(w, appErr)
		return
	}
	writeJSON(w, http.StatusOK, dto.MessageResponse{Message: "Email verification successful"})
}

// updateAvatarHandler handles PUT /users/{id}/avatar with a multipart body
// carrying the image in the "avatar" field.
func (app *application) updateAvatarHandler(w http.ResponseWriter, r *http.Request) {
	id, appErr := urlParamID(r)
	if appErr != nil {
		writeErrorResponse(w, appErr)
		return
	}

	if user, ok := authmw.CurrentUserFromContext(r.Context()); !ok || user.ID != id {
		writeErrorResponse(w, errors.NewUnauthorized("cannot update another user's avatar"))
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxAvatarBytes)
	file, _, err := r.FormFile("avatar")
	if err != nil {
		writeErrorResponse(w, errors.NewInvalidInput("avatar file is required"))
		return
	}
	defer file.Close()

	resp, appErr := app.users.UpdateAvatar(r.Context(), id, file)
	if appErr != nil {
		writeErrorResponse(w, appErr)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
