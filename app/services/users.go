package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"net/url"
	"time"

	"github.com/rs/zerolog"

	"github.com/contactkeeper/contacts-api/app/dto"
	appErrors "github.com/contactkeeper/contacts-api/app/errors"
	"github.com/contactkeeper/contacts-api/app/logger"
	"github.com/contactkeeper/contacts-api/app/mailer"
	"github.com/contactkeeper/contacts-api/app/models"
	"github.com/contactkeeper/contacts-api/app/store"
	"github.com/contactkeeper/contacts-api/app/uploads"
)

const (
	verificationTokenTTL = 24 * time.Hour
	mailSendTimeout      = 10 * time.Second
)

// UserService handles registration, authentication and the email verification
// lifecycle.
type UserService struct {
	store    store.Storage
	creds    *CredentialService
	sender   mailer.Sender
	uploader uploads.Uploader
	baseURL  string
}

func NewUserService(store store.Storage, creds *CredentialService, sender mailer.Sender, uploader uploads.Uploader, baseURL string) *UserService {
	return &UserService{
		store:    store,
		creds:    creds,
		sender:   sender,
		uploader: uploader,
		baseURL:  baseURL,
	}
}

// Register creates the account and dispatches a verification mail off the
// request path. Mail failures are logged, never surfaced: the account exists
// whether or not the mail went out.
func (s *UserService) Register(ctx context.Context, req dto.UserCreateRequest) (*dto.UserResponse, *appErrors.AppError) {
	existing, err := s.store.Users.GetByEmail(ctx, req.Email)
	if err == nil && existing != nil {
		return nil, appErrors.NewConflict("email already registered")
	}
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, appErrors.NewInternal("database error while checking email")
	}

	passwordHash, err := s.creds.HashPassword(req.Password)
	if err != nil {
		return nil, appErrors.NewInternal("error hashing password")
	}

	user := &models.User{
		Email:        req.Email,
		PasswordHash: passwordHash,
		IsActive:     true,
		IsVerified:   false,
	}
	if err := s.store.Users.Create(ctx, user); err != nil {
		if errors.Is(err, store.ErrDuplicateEmail) {
			// Lost the race against a concurrent registration.
			return nil, appErrors.NewConflict("email already registered")
		}
		return nil, appErrors.NewInternal("error creating user")
	}

	go s.sendVerificationMail(getLoggerFromContext(ctx), user.Email)

	resp := dto.NewUserResponse(user)
	return &resp, nil
}

// sendVerificationMail issues a verification token and mails the link. Runs
// detached from the request with its own timeout.
func (s *UserService) sendVerificationMail(log zerolog.Logger, email string) {
	ctx, cancel := context.WithTimeout(context.Background(), mailSendTimeout)
	defer cancel()

	token, err := s.creds.IssueTokenWithTTL(email, verificationTokenTTL)
	if err != nil {
		log.Error().Err(err).Str("email", email).Msg("failed to issue verification token")
		return
	}

	link := fmt.Sprintf("%s/users/verify-email?token=%s", s.baseURL, url.QueryEscape(token))
	if err := s.sender.SendVerification(ctx, email, link); err != nil {
		log.Error().Err(err).Str("email", email).Msg("failed to send verification mail")
	}
}

// Authenticate returns the user when the email exists and the password
// matches. Both "no such user" and "wrong password" come back as the same
// unauthorized error so the response does not reveal which accounts exist.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*models.User, *appErrors.AppError) {
	unauthorized := appErrors.NewUnauthorized("incorrect email or password")

	user, err := s.store.Users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, unauthorized
		}
		return nil, appErrors.NewInternal("error getting user by email")
	}

	if !s.creds.VerifyPassword(password, user.PasswordHash) {
		return nil, unauthorized
	}
	return user, nil
}

// Login authenticates and issues an access token whose subject is the email.
func (s *UserService) Login(ctx context.Context, email, password string) (*dto.TokenResponse, *appErrors.AppError) {
	user, appErr := s.Authenticate(ctx, email, password)
	if appErr != nil {
		return nil, appErr
	}

	token, err := s.creds.IssueToken(user.Email)
	if err != nil {
		return nil, appErrors.NewInternal("error generating access token")
	}

	return &dto.TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
	}, nil
}

// VerifyEmail validates a verification token and marks the user as verified.
// Re-verifying an already verified account succeeds without a write.
func (s *UserService) VerifyEmail(ctx context.Context, token string) *appErrors.AppError {
	email, err := s.creds.DecodeToken(token)
	if err != nil {
		return appErrors.NewInvalidInput("invalid or expired verification token")
	}

	user, err := s.store.Users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.NewNotFound("user")
		}
		return appErrors.NewInternal("error getting user by email")
	}

	if user.IsVerified {
		return nil
	}

	if err := s.store.Users.SetVerified(ctx, user.ID); err != nil {
		return appErrors.NewInternal("error updating verification status")
	}
	return nil
}

// UpdateAvatar uploads the image and stores its public URL on the user.
func (s *UserService) UpdateAvatar(ctx context.Context, userID int64, avatar io.Reader) (*dto.AvatarResponse, *appErrors.AppError) {
	if _, err := s.store.Users.GetByID(ctx, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.NewNotFound("user")
		}
		return nil, appErrors.NewInternal("error getting user")
	}

	publicURL, err := s.uploader.Upload(ctx, avatar)
	if err != nil {
		return nil, appErrors.NewInternal("error uploading avatar")
	}

	if err := s.store.Users.SetAvatarURL(ctx, userID, publicURL); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.NewNotFound("user")
		}
		return nil, appErrors.NewInternal("error storing avatar url")
	}

	return &dto.AvatarResponse{AvatarURL: publicURL}, nil
}

// getLoggerFromContext retrieves logger from context or returns global logger
func getLoggerFromContext(ctx context.Context) zerolog.Logger {
	if log := zerolog.Ctx(ctx); log.GetLevel() != zerolog.Disabled {
		return *log
	}
	return logger.Logger
}
