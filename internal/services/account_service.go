package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"scoop_storefront/internal/models"
	"scoop_storefront/internal/store"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrMissingFields      = errors.New("champs obligatoires manquants")
	ErrInvalidCredentials = errors.New("email ou mot de passe invalide")
)

type AccountService struct {
	users store.Users
	cost  int
}

// NewAccountService : cost est le coût bcrypt (bcrypt.DefaultCost en prod)
func NewAccountService(users store.Users, cost int) *AccountService {
	return &AccountService{users: users, cost: cost}
}

func (s *AccountService) Register(ctx context.Context, name, email, password string) (*models.User, error) {
	name = strings.TrimSpace(name)
	email = store.NormalizeEmail(email)
	if name == "" || email == "" || password == "" {
		return nil, ErrMissingFields
	}

	// ⚡ Vérifier si l'email existe déjà
	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return nil, store.ErrDuplicateEmail
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user := &models.User{
		Name:      name,
		Email:     email,
		Password:  string(hashed),
		CreatedAt: now,
		UpdatedAt: now,
	}
	// l'index unique couvre la course entre deux inscriptions simultanées
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Authenticate ne distingue pas email inconnu et mauvais mot de passe
func (s *AccountService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}
