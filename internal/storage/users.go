package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
)

type User struct {
	ID           string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	LastSignIn   sql.NullTime
}

// Session is the signed-in identity remembered between runs.
type Session struct {
	UserID   string    `json:"userId"`
	Email    string    `json:"email"`
	SignedIn time.Time `json:"signedIn"`
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *Store) CreateUser(u User) error {
	email := normalizeEmail(u.Email)
	if _, err := s.UserByEmail(email); err == nil {
		return ErrUserExists
	} else if !errors.Is(err, ErrNotFound) {
		return err
	}
	_, err := s.db.Exec(`INSERT INTO users (id, email, password_hash, created_at) VALUES (?, ?, ?, ?);`,
		u.ID, email, u.PasswordHash, u.CreatedAt.UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

func (s *Store) UserByEmail(email string) (User, error) {
	var u User
	var createdStr string
	var lastStr sql.NullString
	err := s.db.QueryRow(`SELECT id, email, password_hash, created_at, last_sign_in_at FROM users WHERE email = ?;`,
		normalizeEmail(email)).Scan(&u.ID, &u.Email, &u.PasswordHash, &createdStr, &lastStr)
	if errors.Is(err, sql.ErrNoRows) {
		return User{}, ErrNotFound
	}
	if err != nil {
		return User{}, fmt.Errorf("find user: %w", err)
	}
	if created, err := time.Parse(time.RFC3339, createdStr); err == nil {
		u.CreatedAt = created
	}
	if lastStr.Valid {
		if parsed, err := time.Parse(time.RFC3339, lastStr.String); err == nil {
			u.LastSignIn = sql.NullTime{Time: parsed, Valid: true}
		}
	}
	return u, nil
}

func (s *Store) TouchSignIn(id string, at time.Time) error {
	_, err := s.db.Exec(`UPDATE users SET last_sign_in_at = ? WHERE id = ?;`, at.UTC().Format(time.RFC3339), id)
	return err
}

// LoadSession returns the remembered session; ok is false when nobody is
// signed in or the record is unreadable.
func (s *Store) LoadSession() (Session, bool, error) {
	raw, ok, err := s.Get(KeySession)
	if err != nil || !ok {
		return Session{}, false, err
	}
	var sess Session
	if err := json.Unmarshal([]byte(raw), &sess); err != nil || sess.UserID == "" {
		s.logger.Warn("ignoring malformed session", slog.String("value", raw))
		return Session{}, false, nil
	}
	return sess, true, nil
}

func (s *Store) SaveSession(sess Session) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	return s.Set(KeySession, string(data))
}

func (s *Store) ClearSession() error {
	return s.Delete(KeySession)
}
