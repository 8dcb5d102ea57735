package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/contactkeeper/contacts-api/app/models"
)

// ContactUpdate carries a partial update: nil fields are left untouched,
// non-nil fields overwrite the stored value.
type ContactUpdate struct {
	FirstName      *string
	LastName       *string
	Email          *string
	Phone          *string
	Birthday       *models.Date
	AdditionalInfo *string
}

type ContactsStore struct {
	db *sql.DB
}

func (s *ContactsStore) Create(ctx context.Context, contact *models.Contact) error {
	query := `
	INSERT INTO contacts (first_name, last_name, email, phone, birthday, additional_info)
	VALUES ($1, $2, $3, $4, $5, $6)
	RETURNING id
	`

	err := s.db.QueryRowContext(ctx, query,
		contact.FirstName,
		contact.LastName,
		contact.Email,
		contact.Phone,
		contact.Birthday,
		contact.AdditionalInfo,
	).Scan(&contact.ID)

	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateEmail
		}
		return err
	}
	return nil
}

func (s *ContactsStore) GetAll(ctx context.Context, offset, limit int) ([]models.Contact, error) {
	query := `SELECT id, first_name, last_name, email, phone, birthday, additional_info
	FROM contacts OFFSET $1 LIMIT $2`

	rows, err := s.db.QueryContext(ctx, query, offset, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanContacts(rows)
}

func (s *ContactsStore) GetByID(ctx context.Context, id int64) (*models.Contact, error) {
	query := `SELECT id, first_name, last_name, email, phone, birthday, additional_info
	FROM contacts WHERE id = $1`

	var contact models.Contact
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&contact.ID,
		&contact.FirstName,
		&contact.LastName,
		&contact.Email,
		&contact.Phone,
		&contact.Birthday,
		&contact.AdditionalInfo,
	)
	if err != nil {
		return nil, err
	}
	return &contact, nil
}

// Update loads the contact, applies the non-nil fields of upd and writes the
// row back. Returns sql.ErrNoRows if the id does not exist.
func (s *ContactsStore) Update(ctx context.Context, id int64, upd ContactUpdate) (*models.Contact, error) {
	contact, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if upd.FirstName != nil {
		contact.FirstName = *upd.FirstName
	}
	if upd.LastName != nil {
		contact.LastName = *upd.LastName
	}
	if upd.Email != nil {
		contact.Email = *upd.Email
	}
	if upd.Phone != nil {
		contact.Phone = *upd.Phone
	}
	if upd.Birthday != nil {
		contact.Birthday = *upd.Birthday
	}
	if upd.AdditionalInfo != nil {
		contact.AdditionalInfo = sql.NullString{String: *upd.AdditionalInfo, Valid: true}
	}

	query := `UPDATE contacts
	SET first_name = $1, last_name = $2, email = $3, phone = $4, birthday = $5, additional_info = $6
	WHERE id = $7`

	_, err = s.db.ExecContext(ctx, query,
		contact.FirstName,
		contact.LastName,
		contact.Email,
		contact.Phone,
		contact.Birthday,
		contact.AdditionalInfo,
		contact.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateEmail
		}
		return nil, err
	}
	return contact, nil
}

func (s *ContactsStore) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM contacts WHERE id = $1`

	res, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Search matches the query case-insensitively as a substring of first name,
// last name or email.
func (s *ContactsStore) Search(ctx context.Context, query string) ([]models.Contact, error) {
	stmt := `SELECT id, first_name, last_name, email, phone, birthday, additional_info
	FROM contacts
	WHERE first_name ILIKE $1 OR last_name ILIKE $1 OR email ILIKE $1`

	rows, err := s.db.QueryContext(ctx, stmt, "%"+query+"%")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanContacts(rows)
}

// UpcomingBirthdays returns contacts whose stored birthday falls inside
// [today, today+7 days], compared as full dates. A birth date in another year
// never matches and the window does not wrap a year boundary.
func (s *ContactsStore) UpcomingBirthdays(ctx context.Context, today time.Time) ([]models.Contact, error) {
	stmt := `SELECT id, first_name, last_name, email, phone, birthday, additional_info
	FROM contacts
	WHERE birthday >= $1 AND birthday <= $2`

	from := today.UTC().Truncate(24 * time.Hour)
	to := from.AddDate(0, 0, 7)

	rows, err := s.db.QueryContext(ctx, stmt, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanContacts(rows)
}

func scanContacts(rows *sql.Rows) ([]models.Contact, error) {
	var contacts []models.Contact
	for rows.Next() {
		var contact models.Contact
		err := rows.Scan(
			&contact.ID,
			&contact.FirstName,
			&contact.LastName,
			&contact.Email,
			&contact.Phone,
			&contact.Birthday,
			&contact.AdditionalInfo,
		)
		if err != nil {
			return nil, err
		}
		contacts = append(contacts, contact)
	}
	return contacts, rows.Err()
}
