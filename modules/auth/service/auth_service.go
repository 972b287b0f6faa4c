package service

import (
	"context"
	"encoding/json"
	"io"
	"time"

	"go-destinations-api/core/cache"
	"go-destinations-api/core/config"
	"go-destinations-api/core/constants"
	"go-destinations-api/core/errors"
	"go-destinations-api/core/logger"
	"go-destinations-api/core/utils"
	"go-destinations-api/modules/auth/dto"
	"go-destinations-api/modules/auth/entity"
	"go-destinations-api/modules/auth/repository"

	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const googleUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

// AuthService handles Google sign-in and session tokens.
type AuthService struct {
	repo  repository.AuthRepositoryInterface
	cache cache.Cache
}

// AuthServiceInterface defines the service contract
type AuthServiceInterface interface {
	GetGoogleAuthURL(ctx context.Context) (*dto.AuthURLResponse, *errors.AppError)
	HandleGoogleCallback(ctx context.Context, state string, code string) (*dto.LoginResponse, *errors.AppError)
	Logout(ctx context.Context, token string, claims *utils.TokenClaims) *errors.AppError
	Status(ctx context.Context, claims *utils.TokenClaims) (*dto.AuthStatusResponse, *errors.AppError)
	GetUserProfile(ctx context.Context, id uuid.UUID) (*dto.UserResponse, *errors.AppError)
}

func NewAuthService(repo repository.AuthRepositoryInterface, c cache.Cache) AuthServiceInterface {
	return &AuthService{
		repo:  repo,
		cache: c,
	}
}

func oauthConfig() *oauth2.Config {
	cfg := config.Get()
	return &oauth2.Config{
		ClientID:     cfg.GoogleAPI.ClientID,
		ClientSecret: cfg.GoogleAPI.ClientSecret,
		RedirectURL:  cfg.GoogleAPI.RedirectURI,
		Scopes:       []string{"openid", "email", "profile"},
		Endpoint:     google.Endpoint,
	}
}

// GetGoogleAuthURL generates a one-time state token and returns the Google
// consent screen URL carrying it.
func (s *AuthService) GetGoogleAuthURL(ctx context.Context) (*dto.AuthURLResponse, *errors.AppError) {
	state := utils.GenerateRandomString(32)
	if err := s.repo.SaveOAuthState(ctx, state, time.Now().Add(constants.OAuthStateTTL)); err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to store OAuth state", err)
	}

	return &dto.AuthURLResponse{
		AuthURL: oauthConfig().AuthCodeURL(state, oauth2.AccessTypeOnline),
	}, nil
}

// HandleGoogleCallback validates the state, exchanges the code, fetches the
// Google profile and signs the user in, creating the account on first
// login.
func (s *AuthService) HandleGoogleCallback(ctx context.Context, state string, code string) (*dto.LoginResponse, *errors.AppError) {
	if state == "" || code == "" {
		return nil, errors.New(errors.ErrInvalidInput, "state and code are required")
	}

	stored, err := s.repo.GetOAuthState(ctx, state)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to validate OAuth state", err)
	}
	if stored == nil {
		return nil, errors.New(errors.ErrUnauthorized, "Invalid or expired OAuth state")
	}
	// One-time use regardless of what happens next.
	if err := s.repo.DeleteOAuthState(ctx, state); err != nil {
		logger.Warn("AuthService:HandleGoogleCallback:DeleteOAuthState:Error", "error", err)
	}

	token, err := oauthConfig().Exchange(ctx, code)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrUnauthorized, "Failed to exchange authorization code", err)
	}

	info, err := s.fetchGoogleUserInfo(ctx, token)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to fetch Google profile", err)
	}

	user, appErr := s.findOrCreateUser(ctx, info)
	if appErr != nil {
		return nil, appErr
	}

	cfg := config.Get()
	accessToken, err := utils.GenerateToken(user.ID, constants.ScopeTokenAccess,
		time.Duration(cfg.JWT.AccessTTLHours)*time.Hour)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to issue access token", err)
	}

	return &dto.LoginResponse{
		AccessToken: accessToken,
		User:        dto.ToUserResponse(user),
	}, nil
}

func (s *AuthService) fetchGoogleUserInfo(ctx context.Context, token *oauth2.Token) (*dto.GoogleUserInfo, error) {
	client := oauthConfig().Client(ctx, token)
	resp, err := client.Get(googleUserInfoURL)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var info dto.GoogleUserInfo
	if err := json.Unmarshal(body, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// findOrCreateUser looks the user up by Google ID, creating the account on
// first login and refreshing the Google-sourced profile fields otherwise.
func (s *AuthService) findOrCreateUser(ctx context.Context, info *dto.GoogleUserInfo) (*entity.User, *errors.AppError) {
	user, err := s.repo.GetUserByGoogleID(ctx, info.ID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "Failed to look up user", err)
	}

	var name *string
	if info.Name != "" {
		name = &info.Name
	}
	var picture *string
	if info.Picture != "" {
		picture = &info.Picture
	}

	if user == nil {
		created, err := s.repo.CreateUser(ctx, &entity.User{
			GoogleID:   info.ID,
			Email:      info.Email,
			Name:       name,
			PictureURL: picture,
		})
		if err != nil {
			return nil, errors.NewAppError(errors.ErrCreateFailed, "Failed to create user", err)
		}
		logger.Info("AuthService:findOrCreateUser:Created", "user_id", created.ID.String())
		return created, nil
	}

	user.Email = info.Email
	user.Name = name
	user.PictureURL = picture
	if err := s.repo.UpdateUserProfile(ctx, user); err != nil {
		// Stale profile fields are not worth failing the login over.
		logger.Warn("AuthService:findOrCreateUser:UpdateUserProfile:Error", "error", err)
	}

	return user, nil
}

// Logout blacklists the presented token until its natural expiry.
func (s *AuthService) Logout(ctx context.Context, token string, claims *utils.TokenClaims) *errors.AppError {
	ttl := constants.DefaultTimeout
	if claims != nil && claims.ExpiresAt != nil {
		if remaining := time.Until(claims.ExpiresAt.Time); remaining > 0 {
			ttl = remaining
		}
	}

	if err := s.cache.AddToTokenBlacklist(ctx, token, ttl); err != nil {
		return errors.NewAppError(errors.ErrInternalServer, "Failed to revoke token", err)
	}
	return nil
}

// Status resolves the authenticated user behind a set of token claims.
func (s *AuthService) Status(ctx context.Context, claims *utils.TokenClaims) (*dto.AuthStatusResponse, *errors.AppError) {
	user, err := s.repo.GetUserByID(ctx, claims.UserID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "Failed to get user", err)
	}
	if user == nil {
		return &dto.AuthStatusResponse{Authenticated: false}, nil
	}

	resp := dto.ToUserResponse(user)
	return &dto.AuthStatusResponse{
		Authenticated: true,
		User:          &resp,
	}, nil
}

// GetUserProfile returns the public profile for any user.
func (s *AuthService) GetUserProfile(ctx context.Context, id uuid.UUID) (*dto.UserResponse, *errors.AppError) {
	user, err := s.repo.GetUserByID(ctx, id)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "Failed to get user", err)
	}
	if user == nil {
		return nil, errors.New(errors.ErrNotFound, "User not found")
	}

	resp := dto.ToUserResponse(user)
	return &resp, nil
}
