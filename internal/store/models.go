package store

import "time"

// User is a row of the users table. PasswordHash stays inside the server;
// the model package defines the client-facing projections.
type User struct {
	ID           int64
	Username     string
	Email        string
	PasswordHash string
	IsAdmin      bool
	CreatedAt    time.Time
}

// Post is a row of the posts table.
type Post struct {
	ID        int64
	UserID    int64
	Content   string
	CreatedAt time.Time
}

// Event is a row of the events audit table.
type Event struct {
	ID        int64
	Level     string
	Message   string
	Metadata  string
	CreatedAt time.Time
}
