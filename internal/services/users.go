package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"recipebox/internal/models"
	"recipebox/internal/repository"

	"gorm.io/gorm"
)

var (
	ErrCredentialsRequired = errors.New("username and password are required")
	ErrUsernameTaken       = errors.New("username already exists")
	ErrInvalidCredentials  = errors.New("invalid credentials")
)

type SignupDTO struct {
	Username string
	Password string
	ImageURL *string
	Bio      *string
}

// UserService owns user records and their credentials.
type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

// Create stores a new user with a hashed password. The lookup before the insert only
// short-circuits the common case; the unique index decides races.
func (s *UserService) Create(ctx context.Context, dto SignupDTO) (*models.User, error) {
	username := strings.TrimSpace(dto.Username)
	if username == "" || dto.Password == "" {
		return nil, ErrCredentialsRequired
	}

	existing, err := s.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrUsernameTaken
	}

	user := models.User{
		Username: username,
		ImageURL: dto.ImageURL,
		Bio:      dto.Bio,
	}
	if err := user.SetPassword(dto.Password); err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		return nil, translateCreateError(err)
	}
	return &user, nil
}

// Authenticate returns the user whose credentials match.
func (s *UserService) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, ErrCredentialsRequired
	}

	user, err := s.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil || !user.CheckPassword(password) {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// FindByUsername returns nil, nil when no user has that name. Surrounding whitespace is ignored.
func (s *UserService) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).Where("username = ?", strings.TrimSpace(username)).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByID returns nil, nil when the user does not exist.
func (s *UserService) FindByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func translateCreateError(err error) error {
	if repository.IsUniqueViolation(err) {
		return ErrUsernameTaken
	}
	return err
}
