package main

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"

	"github.com/go-chi/chi/v5"

	"github.com/contactkeeper/contacts-api/app/dto"
	"github.com/contactkeeper/contacts-api/app/errors"
)

// mockContactService lets each test program just the calls it expects.
type mockContactService struct {
	createFunc   func(ctx context.Context, req dto.ContactCreateRequest) (*dto.ContactResponse, *errors.AppError)
	listFunc     func(ctx context.Context, skip, limit int) ([]dto.ContactResponse, *errors.AppError)
	getFunc      func(ctx context.Context, id int64) (*dto.ContactResponse, *errors.AppError)
	updateFunc   func(ctx context.Context, id int64, req dto.ContactUpdateRequest) (*dto.ContactResponse, *errors.AppError)
	deleteFunc   func(ctx context.Context, id int64) *errors.AppError
	searchFunc   func(ctx context.Context, query string) ([]dto.ContactResponse, *errors.AppError)
	upcomingFunc func(ctx context.Context) ([]dto.ContactResponse, *errors.AppError)
}

func (m *mockContactService) Create(ctx context.Context, req dto.ContactCreateRequest) (*dto.ContactResponse, *errors.AppError) {
	return m.createFunc(ctx, req)
}

func (m *mockContactService) List(ctx context.Context, skip, limit int) ([]dto.ContactResponse, *errors.AppError) {
	return m.listFunc(ctx, skip, limit)
}

func (m *mockContactService) Get(ctx context.Context, id int64) (*dto.ContactResponse, *errors.AppError) {
	return m.getFunc(ctx, id)
}

func (m *mockContactService) Update(ctx context.Context, id int64, req dto.ContactUpdateRequest) (*dto.ContactResponse, *errors.AppError) {
	return m.updateFunc(ctx, id, req)
}

func (m *mockContactService) Delete(ctx context.Context, id int64) *errors.AppError {
	return m.deleteFunc(ctx, id)
}

func (m *mockContactService) Search(ctx context.Context, query string) ([]dto.ContactResponse, *errors.AppError) {
	return m.searchFunc(ctx, query)
}

func (m *mockContactService) UpcomingBirthdays(ctx context.Context) ([]dto.ContactResponse, *errors.AppError) {
	return m.upcomingFunc(ctx)
}

type mockUserService struct {
	registerFunc     func(ctx context.Context, req dto.UserCreateRequest) (*dto.UserResponse, *errors.AppError)
	loginFunc        func(ctx context.Context, email, password string) (*dto.TokenResponse, *errors.AppError)
	verifyEmailFunc  func(ctx context.Context, token string) *errors.AppError
	updateAvatarFunc func(ctx context.Context, userID int64, avatar io.Reader) (*dto.AvatarResponse, *errors.AppError)
}

func (m *mockUserService) Register(ctx context.Context, req dto.UserCreateRequest) (*dto.UserResponse, *errors.AppError) {
	return m.registerFunc(ctx, req)
}

func (m *mockUserService) Login(ctx context.Context, email, password string) (*dto.TokenResponse, *errors.AppError) {
	return m.loginFunc(ctx, email, password)
}

func (m *mockUserService) VerifyEmail(ctx context.Context, token string) *errors.AppError {
	return m.verifyEmailFunc(ctx, token)
}

func (m *mockUserService) UpdateAvatar(ctx context.Context, userID int64, avatar io.Reader) (*dto.AvatarResponse, *errors.AppError) {
	return m.updateAvatarFunc(ctx, userID, avatar)
}

func newTestApp(contacts contactService, users userService) *application {
	return &application{
		config:   config{addr: ":0"},
		contacts: contacts,
		users:    users,
	}
}

// withURLParam injects a chi route parameter so handlers can be called without
// mounting the full router.
func withURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func executeRequest(handler http.HandlerFunc, r *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	handler(rr, r)
	return rr
}
