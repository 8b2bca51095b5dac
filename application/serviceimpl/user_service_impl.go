package serviceimpl

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"taskdeck/domain/apperr"
	"taskdeck/domain/dto"
	"taskdeck/domain/models"
	"taskdeck/domain/repositories"
	"taskdeck/domain/services"
	"taskdeck/pkg/config"
	"taskdeck/pkg/logger"
	"taskdeck/pkg/utils"
)

type UserServiceImpl struct {
	userRepo repositories.UserRepository
	jwtCfg   config.JWTConfig
}

func NewUserService(userRepo repositories.UserRepository, jwtCfg config.JWTConfig) services.UserService {
	return &UserServiceImpl{
		userRepo: userRepo,
		jwtCfg:   jwtCfg,
	}
}

func (s *UserServiceImpl) Register(ctx context.Context, req *dto.RegisterRequest) (*models.User, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	username := strings.TrimSpace(req.Username)

	existing, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, apperr.Storage(err)
	}
	if existing != nil {
		return nil, apperr.Conflict("email already registered")
	}

	existing, err = s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, apperr.Storage(err)
	}
	if existing != nil {
		return nil, apperr.Conflict("username already taken")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperr.Storage(err)
	}

	user := &models.User{
		ID:       uuid.New(),
		Email:    email,
		Username: username,
		Password: string(hash),
		Role:     "user",
		IsActive: true,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, apperr.Storage(err)
	}

	logger.InfoContext(ctx, "User registered", "user_id", user.ID, "username", user.Username)
	return user, nil
}

func (s *UserServiceImpl) Login(ctx context.Context, req *dto.LoginRequest) (string, *models.User, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return "", nil, apperr.Storage(err)
	}
	// ตอบเหมือนกันทั้ง email ผิดและ password ผิด
	if user == nil {
		return "", nil, apperr.Validation("invalid email or password")
	}
	if !user.IsActive {
		return "", nil, apperr.Validation("account is disabled")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return "", nil, apperr.Validation("invalid email or password")
	}

	token, err := utils.GenerateToken(user, s.jwtCfg.Secret, s.jwtCfg.ExpiresIn)
	if err != nil {
		return "", nil, apperr.Storage(err)
	}

	logger.InfoContext(ctx, "User logged in", "user_id", user.ID)
	return token, user, nil
}

func (s *UserServiceImpl) GetProfile(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, apperr.Storage(err)
	}
	if user == nil {
		return nil, apperr.NotFound("user %s not found", userID)
	}
	return user, nil
}
