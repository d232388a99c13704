package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"food-delivery/auth"
	"food-delivery/market-svc/internal/domain"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidAccount     = errors.New("invalid registration")
)

// RegisterRequest carries no restaurant binding. A restaurant account is
// bound to the restaurant it owns once it creates one in menu-svc.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type Session struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
}

type AccountService struct {
	users  UserRepository
	tokens TokenIssuer
}

func NewAccountService(users UserRepository, tokens TokenIssuer) *AccountService {
	return &AccountService{users: users, tokens: tokens}
}

func (s *AccountService) Register(ctx context.Context, req RegisterRequest) (*Session, error) {
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidAccount)
	}
	if _, err := mail.ParseAddress(req.Email); err != nil {
		return nil, fmt.Errorf("%w: email is invalid", ErrInvalidAccount)
	}
	if req.Role == "" {
		req.Role = auth.RoleCustomer
	}
	switch req.Role {
	case auth.RoleCustomer, auth.RoleDriver, auth.RoleRestaurant:
	default:
		return nil, fmt.Errorf("%w: unknown role %q", ErrInvalidAccount, req.Role)
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidAccount, err)
	}

	user := &domain.User{
		Name:         req.Name,
		Email:        req.Email,
		Phone:        req.Phone,
		PasswordHash: hash,
		Role:         req.Role,
	}
	if err := s.users.CreateUser(ctx, user); err != nil {
		return nil, err
	}
	return s.session(user)
}

func (s *AccountService) Login(ctx context.Context, email, password string) (*Session, error) {
	user, err := s.users.GetUserByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if errors.Is(err, domain.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if !auth.CheckPassword(user.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}
	return s.session(user)
}

// Refresh issues a new token from the stored account, picking up a
// restaurant the user has created since the last login.
func (s *AccountService) Refresh(ctx context.Context, userID int) (*Session, error) {
	user, err := s.users.GetUserByID(ctx, userID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	return s.session(user)
}

func (s *AccountService) session(user *domain.User) (*Session, error) {
	restaurantID := 0
	if user.RestaurantID != nil {
		restaurantID = *user.RestaurantID
	}
	token, err := s.tokens.Issue(user.ID, user.Role, restaurantID)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}
	return &Session{Token: token, User: user}, nil
}
