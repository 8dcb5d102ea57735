package services

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/contactkeeper/contacts-api/app/dto"
	appErrors "github.com/contactkeeper/contacts-api/app/errors"
	"github.com/contactkeeper/contacts-api/app/models"
	"github.com/contactkeeper/contacts-api/app/store"
)

// ContactService handles contact business logic. Input shape validation is
// done in the handler layer; this layer maps storage results to API errors.
type ContactService struct {
	store store.Storage
}

func NewContactService(store store.Storage) *ContactService {
	return &ContactService{store: store}
}

func (s *ContactService) Create(ctx context.Context, req dto.ContactCreateRequest) (*dto.ContactResponse, *appErrors.AppError) {
	contact := &models.Contact{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
		Birthday:  req.Birthday,
	}
	if req.AdditionalInfo != nil {
		contact.AdditionalInfo = sql.NullString{String: *req.AdditionalInfo, Valid: true}
	}

	if err := s.store.Contacts.Create(ctx, contact); err != nil {
		if errors.Is(err, store.ErrDuplicateEmail) {
			return nil, appErrors.NewInvalidInput("email already registered")
		}
		return nil, appErrors.NewInternal("error creating contact")
	}

	resp := dto.NewContactResponse(contact)
	return &resp, nil
}

func (s *ContactService) List(ctx context.Context, skip, limit int) ([]dto.ContactResponse, *appErrors.AppError) {
	contacts, err := s.store.Contacts.GetAll(ctx, skip, limit)
	if err != nil {
		return nil, appErrors.NewInternal("error listing contacts")
	}
	return dto.NewContactListResponse(contacts), nil
}

func (s *ContactService) Get(ctx context.Context, id int64) (*dto.ContactResponse, *appErrors.AppError) {
	contact, err := s.store.Contacts.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.NewNotFound("contact")
		}
		return nil, appErrors.NewInternal("error getting contact")
	}

	resp := dto.NewContactResponse(contact)
	return &resp, nil
}

func (s *ContactService) Update(ctx context.Context, id int64, req dto.ContactUpdateRequest) (*dto.ContactResponse, *appErrors.AppError) {
	upd := store.ContactUpdate{
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Email:          req.Email,
		Phone:          req.Phone,
		Birthday:       req.Birthday,
		AdditionalInfo: req.AdditionalInfo,
	}

	contact, err := s.store.Contacts.Update(ctx, id, upd)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.NewNotFound("contact")
		}
		if errors.Is(err, store.ErrDuplicateEmail) {
			return nil, appErrors.NewInvalidInput("email already registered")
		}
		return nil, appErrors.NewInternal("error updating contact")
	}

	resp := dto.NewContactResponse(contact)
	return &resp, nil
}

func (s *ContactService) Delete(ctx context.Context, id int64) *appErrors.AppError {
	if err := s.store.Contacts.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.NewNotFound("contact")
		}
		return appErrors.NewInternal("error deleting contact")
	}
	return nil
}

func (s *ContactService) Search(ctx context.Context, query string) ([]dto.ContactResponse, *appErrors.AppError) {
	contacts, err := s.store.Contacts.Search(ctx, query)
	if err != nil {
		return nil, appErrors.NewInternal("error searching contacts")
	}
	return dto.NewContactListResponse(contacts), nil
}

// UpcomingBirthdays returns contacts whose birthday falls within the next
// seven days, today inclusive.
func (s *ContactService) UpcomingBirthdays(ctx context.Context) ([]dto.ContactResponse, *appErrors.AppError) {
	contacts, err := s.store.Contacts.UpcomingBirthdays(ctx, time.Now())
	if err != nil {
		return nil, appErrors.NewInternal("error listing upcoming birthdays")
	}
	return dto.NewContactListResponse(contacts), nil
}
