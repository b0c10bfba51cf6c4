package store

import (
	"context"
	"database/sql"
	"time"
)

// DBTX is the subset of database/sql used by Queries, satisfied by both
// *sql.DB and *sql.Tx.
type DBTX interface {
	ExecContext(context.Context, string, ...any) (sql.Result, error)
	QueryContext(context.Context, string, ...any) (*sql.Rows, error)
	QueryRowContext(context.Context, string, ...any) *sql.Row
}

// Queries provides typed access to the database.
type Queries struct {
	db DBTX
}

// New creates a Queries instance backed by the given database or transaction.
func New(db DBTX) *Queries {
	return &Queries{db: db}
}

// CreateUserParams holds the fields required to insert a user.
type CreateUserParams struct {
	Username     string
	Email        string
	PasswordHash string
	IsAdmin      bool
	CreatedAt    time.Time
}

const createUser = `
INSERT INTO users (username, email, password_hash, is_admin, created_at)
VALUES (?, ?, ?, ?, ?)
RETURNING id, username, email, password_hash, is_admin, created_at
`

// CreateUser inserts a new user. A username or email collision surfaces as a
// UNIQUE constraint error; use IsUniqueViolation to detect it.
func (q *Queries) CreateUser(ctx context.Context, arg CreateUserParams) (User, error) {
	row := q.db.QueryRowContext(ctx, createUser,
		arg.Username, arg.Email, arg.PasswordHash, arg.IsAdmin, arg.CreatedAt)
	var u User
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.IsAdmin, &u.CreatedAt)
	return u, err
}

const getUserByUsername = `
SELECT id, username, email, password_hash, is_admin, created_at
FROM users
WHERE username = ?
`

// GetUserByUsername looks a user up by exact username. Returns sql.ErrNoRows
// when absent.
func (q *Queries) GetUserByUsername(ctx context.Context, username string) (User, error) {
	row := q.db.QueryRowContext(ctx, getUserByUsername, username)
	var u User
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.IsAdmin, &u.CreatedAt)
	return u, err
}

const listUsers = `
SELECT id, username, email, password_hash, is_admin, created_at
FROM users
ORDER BY created_at DESC
`

// ListUsers returns all users, newest first.
func (q *Queries) ListUsers(ctx context.Context) ([]User, error) {
	rows, err := q.db.QueryContext(ctx, listUsers)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []User
	for rows.Next() {
		var u User
		if err := rows.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.IsAdmin, &u.CreatedAt); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

const updateUserPasswordHash = `UPDATE users SET password_hash = ? WHERE id = ?`

// UpdateUserPasswordHash replaces a user's stored password hash.
func (q *Queries) UpdateUserPasswordHash(ctx context.Context, id int64, passwordHash string) error {
	_, err := q.db.ExecContext(ctx, updateUserPasswordHash, passwordHash, id)
	return err
}

const countUsers = `SELECT COUNT(*) FROM users`

// CountUsers returns the total number of users.
func (q *Queries) CountUsers(ctx context.Context) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx, countUsers).Scan(&count)
	return count, err
}

const deleteUser = `DELETE FROM users WHERE id = ?`

// DeleteUser removes a user. The posts foreign key cascades, removing all of
// the user's posts in the same statement.
func (q *Queries) DeleteUser(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, deleteUser, id)
	return err
}

// CreatePostParams holds the fields required to insert a post.
type CreatePostParams struct {
	UserID    int64
	Content   string
	CreatedAt time.Time
}

const createPost = `
INSERT INTO posts (user_id, content, created_at)
VALUES (?, ?, ?)
RETURNING id, user_id, content, created_at
`

// CreatePost inserts a new post owned by the given user.
func (q *Queries) CreatePost(ctx context.Context, arg CreatePostParams) (Post, error) {
	row := q.db.QueryRowContext(ctx, createPost, arg.UserID, arg.Content, arg.CreatedAt)
	var p Post
	err := row.Scan(&p.ID, &p.UserID, &p.Content, &p.CreatedAt)
	return p, err
}

// PostWithAuthor is a post joined with its author's username.
type PostWithAuthor struct {
	Post
	Username string
}

const listPostsWithAuthors = `
SELECT posts.id, posts.user_id, posts.content, posts.created_at, users.username
FROM posts
JOIN users ON posts.user_id = users.id
ORDER BY posts.created_at DESC, posts.id DESC
LIMIT ?
`

// ListPostsWithAuthors returns the newest posts with their authors' usernames,
// capped at limit.
func (q *Queries) ListPostsWithAuthors(ctx context.Context, limit int64) ([]PostWithAuthor, error) {
	rows, err := q.db.QueryContext(ctx, listPostsWithAuthors, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []PostWithAuthor
	for rows.Next() {
		var p PostWithAuthor
		if err := rows.Scan(&p.ID, &p.UserID, &p.Content, &p.CreatedAt, &p.Username); err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

const deletePost = `DELETE FROM posts WHERE id = ?`

// DeletePost removes a post. Deleting an id that does not exist is not an
// error; the delete contract is idempotent.
func (q *Queries) DeletePost(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, deletePost, id)
	return err
}

// CreateEventParams holds the fields required to insert an audit event.
type CreateEventParams struct {
	Level     string
	Message   string
	Metadata  string
	CreatedAt time.Time
}

const createEvent = `
INSERT INTO events (level, message, metadata, created_at)
VALUES (?, ?, ?, ?)
RETURNING id, level, message, metadata, created_at
`

// CreateEvent inserts an audit event.
func (q *Queries) CreateEvent(ctx context.Context, arg CreateEventParams) (Event, error) {
	row := q.db.QueryRowContext(ctx, createEvent, arg.Level, arg.Message, arg.Metadata, arg.CreatedAt)
	var e Event
	err := row.Scan(&e.ID, &e.Level, &e.Message, &e.Metadata, &e.CreatedAt)
	return e, err
}

const listEvents = `
SELECT id, level, message, metadata, created_at
FROM events
ORDER BY created_at DESC, id DESC
LIMIT ?
`

// ListEvents returns the newest audit events, capped at limit.
func (q *Queries) ListEvents(ctx context.Context, limit int64) ([]Event, error) {
	rows, err := q.db.QueryContext(ctx, listEvents, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []Event
	for rows.Next() {
		var e Event
		if err := rows.Scan(&e.ID, &e.Level, &e.Message, &e.Metadata, &e.CreatedAt); err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}
