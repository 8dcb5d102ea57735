package models

import (
	"database/sql"
	"time"
)

type User struct {
	ID           int64
	Email        string
	PasswordHash string
	IsActive     bool
	IsVerified   bool
	AvatarURL    sql.NullString
	CreatedAt    time.Time
}

type Contact struct {
	ID             int64
	FirstName      string
	LastName       string
	Email          string
	Phone          string
	Birthday       Date
	AdditionalInfo sql.NullString
}

type Note struct {
	ID      int64
	Title   string
	Content string
}
