package services

import (
	"context"
	"database/sql"
	"io"
	"sync"
	"time"

	"github.com/contactkeeper/contacts-api/app/models"
	"github.com/contactkeeper/contacts-api/app/store"
)

// fakeUsersStore is an in-memory stand-in for the users table.
type fakeUsersStore struct {
	mu      sync.Mutex
	byEmail map[string]*models.User
	nextID  int64
}

func newFakeUsersStore() *fakeUsersStore {
	return &fakeUsersStore{byEmail: make(map[string]*models.User), nextID: 1}
}

func (f *fakeUsersStore) Create(_ context.Context, user *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byEmail[user.Email]; ok {
		return store.ErrDuplicateEmail
	}
	user.ID = f.nextID
	f.nextID++
	user.CreatedAt = time.Now()
	cp := *user
	f.byEmail[user.Email] = &cp
	return nil
}

func (f *fakeUsersStore) GetByID(_ context.Context, id int64) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.byEmail {
		if u.ID == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (f *fakeUsersStore) GetByEmail(_ context.Context, email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.byEmail[email]
	if !ok {
		return nil, sql.ErrNoRows
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUsersStore) SetVerified(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.byEmail {
		if u.ID == id {
			u.IsVerified = true
			return nil
		}
	}
	return sql.ErrNoRows
}

func (f *fakeUsersStore) SetAvatarURL(_ context.Context, id int64, url string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.byEmail {
		if u.ID == id {
			u.AvatarURL = sql.NullString{String: url, Valid: true}
			return nil
		}
	}
	return sql.ErrNoRows
}

// fakeContactsStore delegates to programmable functions, like the handler
// mocks do for services.
type fakeContactsStore struct {
	createFunc   func(ctx context.Context, contact *models.Contact) error
	getAllFunc   func(ctx context.Context, offset, limit int) ([]models.Contact, error)
	getByIDFunc  func(ctx context.Context, id int64) (*models.Contact, error)
	updateFunc   func(ctx context.Context, id int64, upd store.ContactUpdate) (*models.Contact, error)
	deleteFunc   func(ctx context.Context, id int64) error
	searchFunc   func(ctx context.Context, query string) ([]models.Contact, error)
	upcomingFunc func(ctx context.Context, today time.Time) ([]models.Contact, error)
}

func (f *fakeContactsStore) Create(ctx context.Context, contact *models.Contact) error {
	return f.createFunc(ctx, contact)
}

func (f *fakeContactsStore) GetAll(ctx context.Context, offset, limit int) ([]models.Contact, error) {
	return f.getAllFunc(ctx, offset, limit)
}

func (f *fakeContactsStore) GetByID(ctx context.Context, id int64) (*models.Contact, error) {
	return f.getByIDFunc(ctx, id)
}

func (f *fakeContactsStore) Update(ctx context.Context, id int64, upd store.ContactUpdate) (*models.Contact, error) {
	return f.updateFunc(ctx, id, upd)
}

func (f *fakeContactsStore) Delete(ctx context.Context, id int64) error {
	return f.deleteFunc(ctx, id)
}

func (f *fakeContactsStore) Search(ctx context.Context, query string) ([]models.Contact, error) {
	return f.searchFunc(ctx, query)
}

func (f *fakeContactsStore) UpcomingBirthdays(ctx context.Context, today time.Time) ([]models.Contact, error) {
	return f.upcomingFunc(ctx, today)
}

// fakeSender records sent verification mails on a channel.
type fakeSender struct {
	sent chan sentMail
	err  error
}

type sentMail struct {
	to   string
	link string
}

func newFakeSender() *fakeSender {
	return &fakeSender{sent: make(chan sentMail, 1)}
}

func (f *fakeSender) SendVerification(_ context.Context, to, link string) error {
	if f.err != nil {
		return f.err
	}
	f.sent <- sentMail{to: to, link: link}
	return nil
}

type fakeUploader struct {
	url string
	err error
}

func (f *fakeUploader) Upload(_ context.Context, r io.Reader) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	_, _ = io.ReadAll(r)
	return f.url, nil
}
