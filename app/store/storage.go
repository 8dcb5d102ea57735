package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/contactkeeper/contacts-api/app/models"
)

// ErrDuplicateEmail is returned when an insert or update would violate the
// unique email constraint on users or contacts.
var ErrDuplicateEmail = errors.New("email already registered")

type Storage struct {
	Contacts interface {
		Create(ctx context.Context, contact *models.Contact) error
		GetAll(ctx context.Context, offset, limit int) ([]models.Contact, error)
		GetByID(ctx context.Context, id int64) (*models.Contact, error)
		Update(ctx context.Context, id int64, upd ContactUpdate) (*models.Contact, error)
		Delete(ctx context.Context, id int64) error
		Search(ctx context.Context, query string) ([]models.Contact, error)
		UpcomingBirthdays(ctx context.Context, today time.Time) ([]models.Contact, error)
	}
	Users interface {
		Create(ctx context.Context, user *models.User) error
		GetByID(ctx context.Context, id int64) (*models.User, error)
		GetByEmail(ctx context.Context, email string) (*models.User, error)
		SetVerified(ctx context.Context, id int64) error
		SetAvatarURL(ctx context.Context, id int64, url string) error
	}
	Notes interface {
		Create(ctx context.Context, note *models.Note) error
		GetByID(ctx context.Context, id int64) (*models.Note, error)
		Update(ctx context.Context, note *models.Note) error
		Delete(ctx context.Context, id int64) error
	}
}

func NewStorage(db *sql.DB) Storage {
	return Storage{
		Contacts: &ContactsStore{db: db},
		Users:    &UsersStore{db: db},
		Notes:    &NotesStore{db: db},
	}
}
