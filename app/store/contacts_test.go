package store

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/contactkeeper/contacts-api/app/models"
)

/*
ContactsStore Test Cases:

1. Create success assigns the returned id
2. Create on a duplicate email (unique violation) -> ErrDuplicateEmail
3. GetByID not found -> sql.ErrNoRows
4. Update merges only the provided fields and keeps the rest
5. Update on a missing id -> sql.ErrNoRows
6. Delete with zero affected rows -> sql.ErrNoRows
7. Search builds a case-insensitive substring pattern
8. UpcomingBirthdays queries the [today, today+7] window
*/

var contactColumns = []string{"id", "first_name", "last_name", "email", "phone", "birthday", "additional_info"}

func setupMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock, *ContactsStore) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err, "Failed to create mock database")

	store := &ContactsStore{db: db}
	return db, mock, store
}

func TestContactsStore_Create_Success(t *testing.T) {
	db, mock, store := setupMockDB(t)
	defer db.Close()

	contact := &models.Contact{
		FirstName: "John",
		LastName:  "Doe",
		Email:     "johndoe@example.com",
		Phone:     "1234567890",
		Birthday:  models.NewDate(1990, time.January, 1),
	}

	mock.ExpectQuery(`INSERT INTO contacts`).
		WithArgs(contact.FirstName, contact.LastName, contact.Email, contact.Phone, contact.Birthday, contact.AdditionalInfo).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(7)))

	err := store.Create(context.Background(), contact)

	require.NoError(t, err)
	assert.Equal(t, int64(7), contact.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestContactsStore_Create_DuplicateEmail(t *testing.T) {
	db, mock, store := setupMockDB(t)
	defer db.Close()

	mock.ExpectQuery(`INSERT INTO contacts`).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "contacts_email_key"})

	err := store.Create(context.Background(), &models.Contact{
		FirstName: "John",
		LastName:  "Doe",
		Email:     "johndoe@example.com",
		Phone:     "1234567890",
		Birthday:  models.NewDate(1990, time.January, 1),
	})

	assert.ErrorIs(t, err, ErrDuplicateEmail)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestContactsStore_GetByID_NotFound(t *testing.T) {
	db, mock, store := setupMockDB(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT (.+) FROM contacts WHERE id =`).
		WithArgs(int64(99)).
		WillReturnError(sql.ErrNoRows)

	contact, err := store.GetByID(context.Background(), 99)

	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.Nil(t, contact)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestContactsStore_Update_PartialKeepsUnsetFields(t *testing.T) {
	db, mock, store := setupMockDB(t)
	defer db.Close()

	birthday := time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`SELECT (.+) FROM contacts WHERE id =`).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows(contactColumns).
			AddRow(int64(1), "John", "Doe", "johndoe@example.com", "1234567890", birthday, "old info"))

	// Only the phone changes; every other column keeps its stored value.
	newPhone := "0987654321"
	mock.ExpectExec(`UPDATE contacts`).
		WithArgs("John", "Doe", "johndoe@example.com", newPhone,
			models.NewDate(1990, time.January, 1),
			sql.NullString{String: "old info", Valid: true},
			int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	contact, err := store.Update(context.Background(), 1, ContactUpdate{Phone: &newPhone})

	require.NoError(t, err)
	assert.Equal(t, "John", contact.FirstName)
	assert.Equal(t, "Doe", contact.LastName)
	assert.Equal(t, newPhone, contact.Phone)
	assert.Equal(t, "old info", contact.AdditionalInfo.String)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestContactsStore_Update_NotFound(t *testing.T) {
	db, mock, store := setupMockDB(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT (.+) FROM contacts WHERE id =`).
		WithArgs(int64(42)).
		WillReturnError(sql.ErrNoRows)

	first := "Jane"
	contact, err := store.Update(context.Background(), 42, ContactUpdate{FirstName: &first})

	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.Nil(t, contact)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestContactsStore_Delete_NotFound(t *testing.T) {
	db, mock, store := setupMockDB(t)
	defer db.Close()

	mock.ExpectExec(`DELETE FROM contacts WHERE id =`).
		WithArgs(int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := store.Delete(context.Background(), 5)

	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestContactsStore_Delete_Success(t *testing.T) {
	db, mock, store := setupMockDB(t)
	defer db.Close()

	mock.ExpectExec(`DELETE FROM contacts WHERE id =`).
		WithArgs(int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := store.Delete(context.Background(), 5)

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestContactsStore_Search_Pattern(t *testing.T) {
	db, mock, store := setupMockDB(t)
	defer db.Close()

	birthday := time.Date(1985, 6, 15, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`ILIKE`).
		WithArgs("%doe%").
		WillReturnRows(sqlmock.NewRows(contactColumns).
			AddRow(int64(1), "John", "Doe", "johndoe@example.com", "1234567890", birthday, nil))

	contacts, err := store.Search(context.Background(), "doe")

	require.NoError(t, err)
	require.Len(t, contacts, 1)
	assert.Equal(t, "Doe", contacts[0].LastName)
	assert.False(t, contacts[0].AdditionalInfo.Valid)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestContactsStore_UpcomingBirthdays_Window(t *testing.T) {
	db, mock, store := setupMockDB(t)
	defer db.Close()

	today := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	windowEnd := time.Date(2024, 6, 8, 0, 0, 0, 0, time.UTC)

	inWindow := time.Date(2024, 6, 5, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`birthday >= \$1 AND birthday <= \$2`).
		WithArgs(today, windowEnd).
		WillReturnRows(sqlmock.NewRows(contactColumns).
			AddRow(int64(3), "June", "Baby", "june@example.com", "555", inWindow, nil))

	contacts, err := store.UpcomingBirthdays(context.Background(), today)

	require.NoError(t, err)
	require.Len(t, contacts, 1)
	assert.Equal(t, "2024-06-05", contacts[0].Birthday.String())
	assert.NoError(t, mock.ExpectationsWereMet())
}
