package services

import (
	"context"
	"errors"
	"net/mail"
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"mumu_delivery/internal/apperr"
	"mumu_delivery/internal/models"
	"mumu_delivery/internal/repository"
	"mumu_delivery/internal/session"
)

type AuthService struct {
	Store    *repository.Store
	Sessions *session.Manager
}

func NewAuthService(store *repository.Store, sessions *session.Manager) *AuthService {
	return &AuthService{Store: store, Sessions: sessions}
}

type SignupInput struct {
	Name     string
	Email    string
	Password string
	Role     string
}

// Grant is what a successful sign-in or refresh hands back.
type Grant struct {
	Token   string           `json:"token"`
	Session *session.Session `json:"session"`
	User    *models.User     `json:"user"`
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Signup creates a profile. The role is fixed from here on.
func (s *AuthService) Signup(ctx context.Context, in SignupInput) (*models.User, error) {
	const op = "auth.Signup"
	name := strings.TrimSpace(in.Name)
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if name == "" || email == "" || in.Password == "" {
		return nil, apperr.Validation(op, "name, email and password are required")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, apperr.Validation(op, "email is not valid")
	}
	role, ok := models.ParseRole(in.Role)
	if !ok {
		return nil, apperr.Validation(op, "role must be admin or driver")
	}

	existing, err := s.Store.Users.FindByEmail(ctx, email)
	if err != nil {
		return nil, apperr.Store(op, err)
	}
	if existing != nil {
		return nil, &apperr.Error{Kind: apperr.KindConflict, Op: op, Message: "email already in use"}
	}

	hashed, err := hashPassword(in.Password)
	if err != nil {
		return nil, &apperr.Error{Kind: apperr.KindStore, Op: op, Message: "could not hash password", Err: err}
	}
	u := models.User{Name: name, Email: email, Password: hashed, Role: role}
	if err := s.Store.Users.Create(ctx, &u); err != nil {
		return nil, apperr.Store(op, err)
	}
	logrus.WithFields(logrus.Fields{"user_id": u.ID, "role": u.Role}).Info("profile created")
	return &u, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*Grant, error) {
	const op = "auth.Login"
	u, err := s.Store.Users.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return nil, apperr.Store(op, err)
	}
	if u == nil {
		return nil, apperr.Unauthorized(op, "user not found or invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)); err != nil {
		return nil, apperr.Unauthorized(op, "user not found or invalid credentials")
	}
	token, sess, err := s.Sessions.Issue(*u)
	if err != nil {
		return nil, &apperr.Error{Kind: apperr.KindStore, Op: op, Message: "could not generate token", Err: err}
	}
	return &Grant{Token: token, Session: sess, User: u}, nil
}

// Refresh re-reads the profile behind sess and swaps in a new token.
func (s *AuthService) Refresh(ctx context.Context, sess *session.Session) (*Grant, error) {
	const op = "auth.Refresh"
	u, err := s.Me(ctx, sess)
	if err != nil {
		return nil, err
	}
	token, next, err := s.Sessions.Refresh(sess, *u)
	if err != nil {
		return nil, &apperr.Error{Kind: apperr.KindStore, Op: op, Message: "could not generate token", Err: err}
	}
	return &Grant{Token: token, Session: next, User: u}, nil
}

func (s *AuthService) Logout(sess *session.Session) {
	s.Sessions.Revoke(sess)
}

func (s *AuthService) Me(ctx context.Context, sess *session.Session) (*models.User, error) {
	const op = "auth.Me"
	if sess == nil {
		return nil, apperr.Unauthorized(op, "not signed in")
	}
	u, err := s.Store.Users.FindByID(ctx, sess.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Unauthorized(op, "profile no longer exists")
		}
		return nil, apperr.Store(op, err)
	}
	return u, nil
}
