package main

import (
	"context"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/redis/go-redis/v9"

	"github.com/contactkeeper/contacts-api/app/dto"
	"github.com/contactkeeper/contacts-api/app/errors"
	"github.com/contactkeeper/contacts-api/app/logger"
	authmw "github.com/contactkeeper/contacts-api/app/middleware"
	"github.com/contactkeeper/contacts-api/app/services"
	"github.com/contactkeeper/contacts-api/app/store"
)

// contactService and userService are the slices of the service layer the
// handlers need; tests swap in mocks.
type contactService interface {
	Create(ctx context.Context, req dto.ContactCreateRequest) (*dto.ContactResponse, *errors.AppError)
	List(ctx context.Context, skip, limit int) ([]dto.ContactResponse, *errors.AppError)
	Get(ctx context.Context, id int64) (*dto.ContactResponse, *errors.AppError)
	Update(ctx context.Context, id int64, req dto.ContactUpdateRequest) (*dto.ContactResponse, *errors.AppError)
	Delete(ctx context.Context, id int64) *errors.AppError
	Search(ctx context.Context, query string) ([]dto.ContactResponse, *errors.AppError)
	UpcomingBirthdays(ctx context.Context) ([]dto.ContactResponse, *errors.AppError)
}

type userService interface {
	Register(ctx context.Context, req dto.UserCreateRequest) (*dto.UserResponse, *errors.AppError)
	Login(ctx context.Context, email, password string) (*dto.TokenResponse, *errors.AppError)
	VerifyEmail(ctx context.Context, token string) *errors.AppError
	UpdateAvatar(ctx context.Context, userID int64, avatar io.Reader) (*dto.AvatarResponse, *errors.AppError)
}

type dbConfig struct {
	addr         string
	maxOpenConns int
	maxIdleConns int
	maxIdleTime  string
}

type config struct {
	addr        string
	db          dbConfig
	corsOrigins []string
}

type application struct {
	config      config
	store       store.Storage
	contacts    contactService
	users       userService
	creds       *services.CredentialService
	redisClient *redis.Client
}

func (app *application) mount() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(authmw.RequestIDTracing())
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(authmw.CORS(app.config.corsOrigins))
	r.Use(middleware.Timeout(60 * time.Second))

	registerLimit := authmw.RouteLimit{Name: "register", Capacity: 10, Window: 5 * time.Minute}
	tokenLimit := authmw.RouteLimit{Name: "token", Capacity: 5, Window: time.Minute}

	r.Get("/health", app.healthCheckHandler)

	r.Route("/contacts", func(r chi.Router) {
		r.Use(authmw.BearerAuth(app.creds, app.store))
		r.Post("/", app.createContactHandler)
		r.Get("/", app.listContactsHandler)
		r.Get("/search", app.searchContactsHandler)
		r.Get("/upcoming_birthdays", app.upcomingBirthdaysHandler)
		r.Get("/{id}", app.getContactHandler)
		r.Put("/{id}", app.updateContactHandler)
		r.Delete("/{id}", app.deleteContactHandler)
	})

	r.With(app.rateLimited(registerLimit)).Post("/users", app.createUserHandler)
	r.Post("/users/verify-email", app.verifyEmailHandler)
	r.With(authmw.BearerAuth(app.creds, app.store)).Put("/users/{id}/avatar", app.updateAvatarHandler)
	r.With(app.rateLimited(tokenLimit)).Post("/token", app.tokenHandler)

	return r
}

// rateLimited wraps a route with the Redis limiter, or passes through when no
// Redis client is configured.
func (app *application) rateLimited(limit authmw.RouteLimit) func(http.Handler) http.Handler {
	if app.redisClient == nil {
		return func(next http.Handler) http.Handler {
			return next
		}
	}
	return authmw.RateLimit(app.redisClient, limit, authmw.PrincipalIP())
}

func (app *application) healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, dto.MessageResponse{Message: "ok"})
}

// runWithGracefulShutdown starts the server and waits for SIGINT/SIGTERM,
// letting in-flight requests finish before returning.
func (app *application) runWithGracefulShutdown(mux http.Handler) error {
	srv := &http.Server{
		Addr:         app.config.addr,
		Handler:      mux,
		WriteTimeout: 30 * time.Second,
		ReadTimeout:  10 * time.Second,
		IdleTimeout:  time.Minute,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)

	serverErrors := make(chan error, 1)
	go func() {
		logger.Logger.Info().Str("addr", app.config.addr).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrors <- err
		}
	}()

	select {
	case err := <-serverErrors:
		return err
	case sig := <-quit:
		logger.Logger.Info().Str("signal", sig.String()).Msg("Received signal, starting graceful shutdown")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Logger.Error().Err(err).Msg("Server forced to shutdown")
		return err
	}

	logger.Logger.Info().Msg("Server gracefully stopped")
	return nil
}
