// Package auth is the local account service: sign-up, sign-in and
// sign-out against the users table, with the current session remembered
// in the key-value store. Task operations never depend on it.
package auth

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"daybook/internal/clock"
	"daybook/internal/storage"
)

const MinPasswordLength = 6

var (
	ErrInvalidEmail       = errors.New("email address is invalid")
	ErrWeakPassword       = fmt.Errorf("password must be at least %d characters", MinPasswordLength)
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("an account with this email already exists")
)

// Repo is the slice of storage the service needs; *storage.Store
// implements it.
type Repo interface {
	CreateUser(storage.User) error
	UserByEmail(email string) (storage.User, error)
	TouchSignIn(id string, at time.Time) error
	LoadSession() (storage.Session, bool, error)
	SaveSession(storage.Session) error
	ClearSession() error
}

// Identity is who is signed in. The zero value means nobody.
type Identity struct {
	UserID string
	Email  string
}

func (i Identity) SignedIn() bool { return i.UserID != "" }

type Service struct {
	repo      Repo
	clock     clock.Clock
	logger    *slog.Logger
	current   Identity
	listeners []func(Identity)
}

// New restores any remembered session.
func New(repo Repo, clk clock.Clock, logger *slog.Logger) (*Service, error) {
	if clk == nil {
		clk = clock.Real()
	}
	if logger == nil {
		logger = slog.Default()
	}
	s := &Service{repo: repo, clock: clk, logger: logger}
	sess, ok, err := repo.LoadSession()
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	if ok {
		s.current = Identity{UserID: sess.UserID, Email: sess.Email}
	}
	return s, nil
}

func (s *Service) Current() Identity {
	return s.current
}

// OnChange registers fn to run after every sign-in and sign-out.
func (s *Service) OnChange(fn func(Identity)) {
	s.listeners = append(s.listeners, fn)
}

// SignUp creates an account and signs it in.
func (s *Service) SignUp(email, password string) (Identity, error) {
	email = strings.TrimSpace(email)
	if !strings.Contains(email, "@") {
		return Identity{}, ErrInvalidEmail
	}
	if utf8.RuneCountInString(password) < MinPasswordLength {
		return Identity{}, ErrWeakPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return Identity{}, fmt.Errorf("hash password: %w", err)
	}
	u := storage.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    s.clock.Now(),
	}
	if err := s.repo.CreateUser(u); err != nil {
		if errors.Is(err, storage.ErrUserExists) {
			return Identity{}, ErrEmailTaken
		}
		return Identity{}, err
	}
	s.logger.Info("account created", slog.String("email", strings.ToLower(email)))
	return s.signIn(u)
}

func (s *Service) SignIn(email, password string) (Identity, error) {
	u, err := s.repo.UserByEmail(email)
	if errors.Is(err, storage.ErrNotFound) {
		return Identity{}, ErrInvalidCredentials
	}
	if err != nil {
		return Identity{}, err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return Identity{}, ErrInvalidCredentials
	}
	return s.signIn(u)
}

// SignOut forgets the session. Signing out while signed out is a no-op.
func (s *Service) SignOut() error {
	if !s.current.SignedIn() {
		return nil
	}
	if err := s.repo.ClearSession(); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	s.logger.Info("signed out", slog.String("email", s.current.Email))
	s.set(Identity{})
	return nil
}

func (s *Service) signIn(u storage.User) (Identity, error) {
	now := s.clock.Now()
	if err := s.repo.TouchSignIn(u.ID, now); err != nil {
		s.logger.Warn("record sign-in", slog.String("error", err.Error()))
	}
	id := Identity{UserID: u.ID, Email: strings.ToLower(strings.TrimSpace(u.Email))}
	if err := s.repo.SaveSession(storage.Session{UserID: id.UserID, Email: id.Email, SignedIn: now}); err != nil {
		return Identity{}, fmt.Errorf("save session: %w", err)
	}
	s.logger.Info("signed in", slog.String("email", id.Email))
	s.set(id)
	return id, nil
}

func (s *Service) set(id Identity) {
	s.current = id
	for _, fn := range s.listeners {
		fn(id)
	}
}
