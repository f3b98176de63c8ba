package service

import (
	"context"
	"errors"
	"linuxplus_backend/internal/config"
	"linuxplus_backend/internal/model"
	"linuxplus_backend/internal/repository"
	"linuxplus_backend/internal/util"
	"linuxplus_backend/pkg/logger"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type AuthService struct {
	Users UserStore
	Cfg   *config.Config
}

func NewAuthService(users UserStore, cfg *config.Config) *AuthService {
	return &AuthService{
		Users: users,
		Cfg:   cfg,
	}
}

// AuthResult is returned by Register and Login.
type AuthResult struct {
	Token string      `json:"token"`
	User  *model.User `json:"user"`
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *AuthService) Register(ctx context.Context, name, email, password string) (*AuthResult, error) {
	email = normalizeEmail(email)

	_, err := s.Users.FindByEmail(ctx, email)
	if err == nil {
		return nil, util.ErrEmailRegistered
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &model.User{
		UUIDBase: model.UUIDBase{ID: model.GenerateUUID(), CreatedAt: now},
		Name:     strings.TrimSpace(name),
		Email:    email,
		Password: string(hashedPassword),
		Language: model.LanguageEnglish,
	}

	if err := s.Users.CreateWithProgress(ctx, user, model.NewUserProgress(user.ID, now)); err != nil {
		return nil, err
	}
	logger.Log.Info("user registered", zap.String("user_id", user.ID))

	return s.issue(user)
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	user, err := s.Users.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, util.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, util.ErrInvalidCredentials
	}

	return s.issue(user)
}

func (s *AuthService) issue(user *model.User) (*AuthResult, error) {
	token, err := util.GenerateJWT(user.ID, s.Cfg.JWT.Secret, s.Cfg.JWT.ExpireTime)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, User: user}, nil
}

// CurrentUser resolves the authenticated caller. Tokens whose user no longer exists are rejected.
func (s *AuthService) CurrentUser(ctx context.Context, userID string) (*model.User, error) {
	if userID == "" {
		return nil, util.ErrUnauthenticated
	}
	user, err := s.Users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, util.ErrUnauthenticated
		}
		return nil, err
	}
	return user, nil
}

func (s *AuthService) UpdateLanguage(ctx context.Context, userID, language string) error {
	if userID == "" {
		return util.ErrUnauthenticated
	}
	if !model.IsSupportedLanguage(language) {
		return util.ErrInvalidLanguage
	}
	err := s.Users.UpdateLanguage(ctx, userID, language)
	if errors.Is(err, repository.ErrNotFound) {
		return util.ErrUnauthenticated
	}
	return err
}
