package services

import (
	"errors"
	"fmt"

	"github.com/andrewa30/portfolio-backend/internal/dto"
	"github.com/andrewa30/portfolio-backend/internal/models"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserNotFound       = errors.New("user not found")
)

type AuthService struct {
	db     *gorm.DB
	tokens *TokenService
}

func NewAuthService(db *gorm.DB, tokens *TokenService) *AuthService {
	return &AuthService{db: db, tokens: tokens}
}

func (s *AuthService) Register(req *dto.RegisterRequest) (*models.User, error) {
	if req.Email == "" || req.Password == "" {
		return nil, dto.ErrValidation
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.User{
		ID:       uuid.New(),
		Email:    req.Email,
		Password: string(hash),
	}
	// The unique index on email is the source of truth; a pre-check would
	// race a concurrent registration of the same address.
	if err := s.db.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return &user, nil
}

// Authenticate checks credentials and returns the user. Unknown email and
// wrong password fail identically so accounts cannot be probed.
func (s *AuthService) Authenticate(email, password string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return &user, nil
}

// Login authenticates and issues an access token with the default TTL.
func (s *AuthService) Login(req *dto.LoginRequest) (string, error) {
	user, err := s.Authenticate(req.Email, req.Password)
	if err != nil {
		return "", err
	}
	return s.tokens.Issue(user.ID, 0)
}

func (s *AuthService) UserByID(id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, "id = ?", id).Error; err != nil {
		return nil, ErrUserNotFound
	}
	return &user, nil
}
