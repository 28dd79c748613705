package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"vidstream/internal/model"
	"vidstream/internal/storage"
	"vidstream/pkg/apierror"
)

const (
	avatarFolder = "avatars"
	coverFolder  = "covers"
)

// UserStore is the credential store the session manager runs against.
type UserStore interface {
	FindByID(ctx context.Context, id string) (model.User, error)
	FindByIdentifier(ctx context.Context, identifier string) (model.User, error)
	ExistsByUsernameOrEmail(ctx context.Context, username string, email string) (bool, error)
	Create(ctx context.Context, u model.User) error
	SetRefreshToken(ctx context.Context, userID string, token string) error
	RotateRefreshToken(ctx context.Context, userID string, expected string, next string) (bool, error)
	ClearRefreshToken(ctx context.Context, userID string) error
	UpdatePassword(ctx context.Context, userID string, passwordHash string) error
	UpdateAvatarURL(ctx context.Context, userID string, url string) error
	UpdateCoverImageURL(ctx context.Context, userID string, url string) error
	UpdateAccount(ctx context.Context, userID string, fullName string, email string) error
}

// FileUpload is a pending upload handed in by the transport layer.
// The service streams it to the media host without looking inside.
type FileUpload struct {
	Filename string
	Size     int64
	Reader   io.Reader
}

type RegisterInput struct {
	Username string
	Email    string
	FullName string
	Password string
	Avatar   *FileUpload
	Cover    *FileUpload
}

// AuthService orchestrates registration, login, token refresh, logout
// and password changes against the user store, the token service and
// the media host.
type AuthService struct {
	users  UserStore
	media  storage.MediaStore
	tokens *TokenService
}

func NewAuthService(users UserStore, media storage.MediaStore, tokens *TokenService) *AuthService {
	return &AuthService{users: users, media: media, tokens: tokens}
}

func (s *AuthService) Tokens() *TokenService { return s.tokens }

// Register creates a new account. Identity uniqueness is checked
// before any media-host call, so a predictable conflict never costs an
// upload. The created record is read back before returning; a miss
// there means the store lost the write and is reported as internal.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (model.AuthUser, error) {
	username := strings.ToLower(strings.TrimSpace(in.Username))
	email := strings.ToLower(strings.TrimSpace(in.Email))
	fullName := strings.TrimSpace(in.FullName)
	password := strings.TrimSpace(in.Password)

	if username == "" || email == "" || fullName == "" || password == "" {
		return model.AuthUser{}, apierror.Validation("all fields are required", "")
	}

	if in.Avatar == nil {
		return model.AuthUser{}, apierror.Validation("avatar image is required", "avatar")
	}

	exists, err := s.users.ExistsByUsernameOrEmail(ctx, username, email)
	if err != nil {
		return model.AuthUser{}, err
	}
	if exists {
		return model.AuthUser{}, apierror.Conflict("user with this username or email already exists", "")
	}

	avatarURL, err := s.media.Upload(ctx, avatarFolder, in.Avatar.Filename, in.Avatar.Reader, in.Avatar.Size)
	if err != nil {
		return model.AuthUser{}, apierror.Internal("failed to upload avatar")
	}

	coverURL := ""
	if in.Cover != nil {
		coverURL, err = s.media.Upload(ctx, coverFolder, in.Cover.Filename, in.Cover.Reader, in.Cover.Size)
		if err != nil {
			s.removeUploaded(ctx, avatarURL)
			return model.AuthUser{}, apierror.Internal("failed to upload cover image")
		}
	}

	hash, err := HashPassword(password)
	if err != nil {
		s.removeUploaded(ctx, avatarURL, coverURL)
		return model.AuthUser{}, err
	}

	now := time.Now().UTC()
	user := model.User{
		ID:            uuid.NewString(),
		Username:      username,
		Email:         email,
		FullName:      fullName,
		PasswordHash:  hash,
		AvatarURL:     avatarURL,
		CoverImageURL: coverURL,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.users.Create(ctx, user); err != nil {
		s.removeUploaded(ctx, avatarURL, coverURL)
		if errors.Is(err, model.ErrUserAlreadyExists) {
			return model.AuthUser{}, apierror.Conflict("user with this username or email already exists", "")
		}
		return model.AuthUser{}, err
	}

	created, err := s.users.FindByID(ctx, user.ID)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return model.AuthUser{}, apierror.Internal("user record missing after registration")
		}
		return model.AuthUser{}, err
	}

	return created.Sanitized(), nil
}

// Login verifies credentials and opens the single session for the
// user: the freshly issued refresh token replaces whatever was stored,
// ending any previous session.
func (s *AuthService) Login(ctx context.Context, identifier string, password string) (model.TokenPair, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" || password == "" {
		return model.TokenPair{}, apierror.Validation("username or email and password are required", "")
	}

	user, err := s.users.FindByIdentifier(ctx, identifier)
	if errors.Is(err, model.ErrUserNotFound) {
		return model.TokenPair{}, apierror.NotFound("user not found", "")
	}
	if err != nil {
		return model.TokenPair{}, err
	}

	if !VerifyPassword(password, user.PasswordHash) {
		return model.TokenPair{}, apierror.Unauthorized("invalid credentials")
	}

	return s.openSession(ctx, user)
}

// Refresh exchanges a live refresh token for a new token pair. The
// rotation is a compare-and-set against the stored value: a token that
// was already rotated away, or cleared by logout or a password change,
// is rejected even while its signature and expiry still verify.
func (s *AuthService) Refresh(ctx context.Context, presented string) (model.TokenPair, error) {
	presented = strings.TrimSpace(presented)
	if presented == "" {
		return model.TokenPair{}, apierror.Unauthorized("refresh token is required")
	}

	userID, err := s.tokens.VerifyRefreshToken(presented)
	if err != nil {
		return model.TokenPair{}, err
	}

	user, err := s.users.FindByID(ctx, userID)
	if errors.Is(err, model.ErrUserNotFound) {
		return model.TokenPair{}, apierror.NotFound("user not found", "")
	}
	if err != nil {
		return model.TokenPair{}, err
	}

	accessToken, err := s.tokens.IssueAccessToken(user)
	if err != nil {
		return model.TokenPair{}, err
	}

	refreshToken, err := s.tokens.IssueRefreshToken(user)
	if err != nil {
		return model.TokenPair{}, err
	}

	rotated, err := s.users.RotateRefreshToken(ctx, user.ID, presented, refreshToken)
	if err != nil {
		return model.TokenPair{}, err
	}
	if !rotated {
		return model.TokenPair{}, apierror.Unauthorized("refresh token is no longer valid")
	}

	return s.tokenPair(user, accessToken, refreshToken), nil
}

// Logout clears the stored refresh token. Logging out twice is fine.
func (s *AuthService) Logout(ctx context.Context, userID string) error {
	return s.users.ClearRefreshToken(ctx, userID)
}

// ChangePassword re-hashes the password and revokes the current
// session in the same store write, forcing re-authentication.
func (s *AuthService) ChangePassword(ctx context.Context, userID string, oldPassword string, newPassword string, confirmNewPassword string) error {
	if oldPassword == "" || newPassword == "" || confirmNewPassword == "" {
		return apierror.Validation("all password fields are required", "")
	}
	if newPassword != confirmNewPassword {
		return apierror.Validation("new password and confirmation do not match", "")
	}

	user, err := s.users.FindByID(ctx, userID)
	if errors.Is(err, model.ErrUserNotFound) {
		return apierror.NotFound("user not found", "")
	}
	if err != nil {
		return err
	}

	if !VerifyPassword(oldPassword, user.PasswordHash) {
		return apierror.Unauthorized("old password is incorrect")
	}

	hash, err := HashPassword(newPassword)
	if err != nil {
		return err
	}

	if err := s.users.UpdatePassword(ctx, user.ID, hash); err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return apierror.NotFound("user not found", "")
		}
		return err
	}

	return nil
}

// Authenticate resolves a presented access token to the caller's
// identity. An id that no longer resolves is an auth failure, not a
// lookup miss: the token holder is not a current user.
func (s *AuthService) Authenticate(ctx context.Context, accessToken string) (model.AuthUser, error) {
	accessToken = strings.TrimSpace(accessToken)
	if accessToken == "" {
		return model.AuthUser{}, apierror.Unauthorized("access token is required")
	}

	claims, err := s.tokens.VerifyAccessToken(accessToken)
	if err != nil {
		return model.AuthUser{}, err
	}

	user, err := s.users.FindByID(ctx, claims.UserID)
	if errors.Is(err, model.ErrUserNotFound) {
		return model.AuthUser{}, apierror.Unauthorized("user no longer exists")
	}
	if err != nil {
		return model.AuthUser{}, err
	}

	return user.Sanitized(), nil
}

func (s *AuthService) GetUserByID(ctx context.Context, userID string) (model.AuthUser, error) {
	user, err := s.users.FindByID(ctx, userID)
	if errors.Is(err, model.ErrUserNotFound) {
		return model.AuthUser{}, apierror.NotFound("user not found", userID)
	}
	if err != nil {
		return model.AuthUser{}, err
	}

	return user.Sanitized(), nil
}

func (s *AuthService) UpdateAccount(ctx context.Context, userID string, fullName string, email string) (model.AuthUser, error) {
	fullName = strings.TrimSpace(fullName)
	email = strings.ToLower(strings.TrimSpace(email))
	if fullName == "" || email == "" {
		return model.AuthUser{}, apierror.Validation("full name and email are required", "")
	}

	err := s.users.UpdateAccount(ctx, userID, fullName, email)
	if errors.Is(err, model.ErrUserAlreadyExists) {
		return model.AuthUser{}, apierror.Conflict("email already in use", "email")
	}
	if errors.Is(err, model.ErrUserNotFound) {
		return model.AuthUser{}, apierror.NotFound("user not found", "")
	}
	if err != nil {
		return model.AuthUser{}, err
	}

	return s.GetUserByID(ctx, userID)
}

// UpdateAvatar uploads the replacement first and repoints the record
// after, so the stored URL always resolves. The superseded object is
// removed best-effort.
func (s *AuthService) UpdateAvatar(ctx context.Context, userID string, upload *FileUpload) (model.AuthUser, error) {
	return s.updateImage(ctx, userID, upload, avatarFolder)
}

func (s *AuthService) UpdateCoverImage(ctx context.Context, userID string, upload *FileUpload) (model.AuthUser, error) {
	return s.updateImage(ctx, userID, upload, coverFolder)
}

func (s *AuthService) updateImage(ctx context.Context, userID string, upload *FileUpload, folder string) (model.AuthUser, error) {
	if upload == nil {
		return model.AuthUser{}, apierror.Validation("image file is required", "")
	}

	user, err := s.users.FindByID(ctx, userID)
	if errors.Is(err, model.ErrUserNotFound) {
		return model.AuthUser{}, apierror.NotFound("user not found", "")
	}
	if err != nil {
		return model.AuthUser{}, err
	}

	url, err := s.media.Upload(ctx, folder, upload.Filename, upload.Reader, upload.Size)
	if err != nil {
		return model.AuthUser{}, apierror.Internal("failed to upload image")
	}

	previous := user.CoverImageURL
	if folder == avatarFolder {
		previous = user.AvatarURL
		err = s.users.UpdateAvatarURL(ctx, userID, url)
	} else {
		err = s.users.UpdateCoverImageURL(ctx, userID, url)
	}
	if err != nil {
		s.removeUploaded(ctx, url)
		if errors.Is(err, model.ErrUserNotFound) {
			return model.AuthUser{}, apierror.NotFound("user not found", "")
		}
		return model.AuthUser{}, err
	}

	s.removeUploaded(ctx, previous)
	return s.GetUserByID(ctx, userID)
}

func (s *AuthService) openSession(ctx context.Context, user model.User) (model.TokenPair, error) {
	accessToken, err := s.tokens.IssueAccessToken(user)
	if err != nil {
		return model.TokenPair{}, err
	}

	refreshToken, err := s.tokens.IssueRefreshToken(user)
	if err != nil {
		return model.TokenPair{}, err
	}

	if err := s.users.SetRefreshToken(ctx, user.ID, refreshToken); err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return model.TokenPair{}, apierror.NotFound("user not found", "")
		}
		return model.TokenPair{}, err
	}

	return s.tokenPair(user, accessToken, refreshToken), nil
}

func (s *AuthService) tokenPair(user model.User, accessToken string, refreshToken string) model.TokenPair {
	return model.TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "Bearer",
		ExpiresIn:    int64(s.tokens.AccessTTL().Seconds()),
		User:         user.Sanitized(),
	}
}

func (s *AuthService) removeUploaded(ctx context.Context, urls ...string) {
	for _, url := range urls {
		if url == "" {
			continue
		}
		if err := s.media.Remove(ctx, url); err != nil {
			slog.Warn("failed to remove media object", "url", url, "error", err)
		}
	}
}
