package authservice

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/GlebRadaev/payledger/internal/domain"
	"github.com/GlebRadaev/payledger/pkg/auth"
	"go.uber.org/zap"
)

type Repo interface {
	FindByHandle(ctx context.Context, handle string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
}
type Service struct {
	userRepo    Repo
	hashService auth.HashServiceInterface
	jwtService  auth.JWTServiceInterface
	tokenTTL    time.Duration
}

func New(repo Repo, hashService auth.HashServiceInterface, jwtService auth.JWTServiceInterface, tokenTTL time.Duration) *Service {
	return &Service{
		userRepo:    repo,
		hashService: hashService,
		jwtService:  jwtService,
		tokenTTL:    tokenTTL,
	}
}

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrHandleTaken        = fmt.Errorf("%w: handle already taken", domain.ErrConflict)
)

func normalizeHandle(handle string) string {
	return strings.TrimPrefix(strings.TrimSpace(handle), "@")
}

func validateProfile(handle, name, phone, password string) error {
	if err := domain.ValidateLength("handle", handle, domain.MaxHandleLen); err != nil {
		return err
	}
	if err := domain.ValidateLength("name", name, domain.MaxNameLen); err != nil {
		return err
	}
	if err := domain.ValidateLength("phone", phone, domain.MaxPhoneLen); err != nil {
		return err
	}
	if len(password) > auth.MaxPasswordBytes {
		return fmt.Errorf("%w: %w", domain.ErrValidation, auth.ErrPasswordTooLong)
	}
	return nil
}

func (s *Service) Register(ctx context.Context, handle, name, phone, password string) (*domain.User, error) {
	handle = normalizeHandle(handle)
	if handle == "" || password == "" {
		return nil, fmt.Errorf("%w: handle and password are required", domain.ErrValidation)
	}
	name, phone = strings.TrimSpace(name), strings.TrimSpace(phone)
	if err := validateProfile(handle, name, phone, password); err != nil {
		return nil, err
	}

	existingUser, err := s.userRepo.FindByHandle(ctx, handle)
	if err != nil {
		zap.L().Error("can't find user: ", zap.Error(err))
		return nil, domain.StorageError(err)
	}
	if existingUser != nil {
		zap.L().Info("user already exists", zap.String("handle", handle))
		return nil, ErrHandleTaken
	}
	hashedPassword, err := s.hashService.HashPassword(password)
	if err != nil {
		zap.L().Error("can't hash password: ", zap.Error(err))
		return nil, err
	}
	user := &domain.User{
		Handle:       handle,
		Name:         name,
		Phone:        phone,
		Role:         domain.RoleUser,
		PasswordHash: hashedPassword,
	}
	newUser, err := s.userRepo.Create(ctx, user)
	if err != nil {
		zap.L().Error("can't create user: ", zap.Error(err))
		return nil, domain.StorageError(err)
	}

	zap.L().Info("user successfully registered", zap.String("handle", handle))
	return newUser, nil
}

func (s *Service) Authenticate(ctx context.Context, handle, password string) (*domain.User, error) {
	handle = normalizeHandle(handle)
	user, err := s.userRepo.FindByHandle(ctx, handle)
	if err != nil || user == nil {
		zap.L().Error("invalid credentials", zap.Error(err))
		return nil, ErrInvalidCredentials
	}
	if ok := s.hashService.ComparePassword(user.PasswordHash, password); !ok {
		zap.L().Error("invalid credentials", zap.String("handle", handle))
		return nil, ErrInvalidCredentials
	}
	zap.L().Info("user successfully authenticated", zap.String("handle", handle))
	return user, nil
}

func (s *Service) GenerateToken(user *domain.User) (string, error) {
	expirationTime := time.Now().Add(s.tokenTTL)

	token, err := s.jwtService.GenerateJWT(user.ID, user.Role, expirationTime)
	if err != nil {
		zap.L().Error("can't generate token: ", zap.Error(err))
		return "", err
	}
	return token, nil
}
