// Package services contains server-side business logic. This file implements
// UserService, which handles registration, login, session-token management,
// profile updates, avatars, and account deletion.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/taskkeeper/internal/common"
	"github.com/dmitrijs2005/taskkeeper/internal/dbx"
	"github.com/dmitrijs2005/taskkeeper/internal/imagex"
	"github.com/dmitrijs2005/taskkeeper/internal/logging"
	"github.com/dmitrijs2005/taskkeeper/internal/server/auth"
	"github.com/dmitrijs2005/taskkeeper/internal/server/config"
	"github.com/dmitrijs2005/taskkeeper/internal/server/mail"
	"github.com/dmitrijs2005/taskkeeper/internal/server/models"
	"github.com/dmitrijs2005/taskkeeper/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/taskkeeper/internal/server/storage"
)

// RegisterParams is the validated signup payload.
type RegisterParams struct {
	Name     string
	Email    string
	Password string
	Age      *int
}

// UpdateParams carries the allowed profile updates. Nil fields are left
// untouched.
type UpdateParams struct {
	Name     *string
	Email    *string
	Password *string
	Age      *int
}

// UserService provides account-related operations: signup, login, logout,
// profile management, avatars, and deletion.
type UserService struct {
	db                    *sql.DB
	repomanager           repomanager.RepositoryManager
	avatars               storage.AvatarStore
	mailer                mail.Mailer
	logger                logging.Logger
	jwtSecret             []byte
	tokenValidityDuration time.Duration
}

// NewUserService constructs a UserService using repositories and server config.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, avatars storage.AvatarStore, mailer mail.Mailer, logger logging.Logger, cfg *config.Config) *UserService {
	return &UserService{
		db:                    db,
		repomanager:           m,
		avatars:               avatars,
		mailer:                mailer,
		logger:                logger.With("module", "user_service"),
		jwtSecret:             []byte(cfg.SecretKey),
		tokenValidityDuration: cfg.TokenValidityDuration,
	}
}

// Register creates a new user and issues its first session token.
// The welcome email is dispatched fire-and-forget.
func (s *UserService) Register(ctx context.Context, params RegisterParams) (*models.User, string, error) {
	user := &models.User{
		ID:    uuid.NewString(),
		Name:  strings.TrimSpace(params.Name),
		Email: normalizeEmail(params.Email),
		Age:   params.Age,
	}

	hash, err := auth.HashPassword(params.Password)
	if err != nil {
		return nil, "", common.ErrorInternal
	}
	user.PasswordHash = hash

	var token string
	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		created, err := s.repomanager.Users(tx).Create(ctx, user)
		if err != nil {
			return err
		}
		user = created
		token, err = s.issueSessionToken(ctx, tx, user.ID)
		return err
	})
	if err != nil {
		if errors.Is(err, common.ErrorEmailTaken) {
			return nil, "", common.ErrorEmailTaken
		}
		return nil, "", fmt.Errorf("error creating user: %w", err)
	}

	s.notify(user.Email, user.Name, s.mailer.SendWelcome)

	return user, token, nil
}

// Login verifies the credentials and, on success, appends a new session
// token to the user's active list. Bad credentials and unknown emails are
// indistinguishable.
func (s *UserService) Login(ctx context.Context, email string, password string) (*models.User, string, error) {
	user, err := s.repomanager.Users(s.db).GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, "", common.ErrorUnauthorized
		}
		return nil, "", common.ErrorInternal
	}

	if !auth.CheckPassword(user.PasswordHash, password) {
		return nil, "", common.ErrorUnauthorized
	}

	token, err := s.issueSessionToken(ctx, s.db, user.ID)
	if err != nil {
		return nil, "", common.ErrorInternal
	}
	return user, token, nil
}

// GetByToken resolves a bearer token to its user. The token must both
// verify as a JWT and still be present in the user's active session list.
func (s *UserService) GetByToken(ctx context.Context, token string) (*models.User, error) {
	userID, err := auth.GetUserIDFromToken(token, s.jwtSecret)
	if err != nil {
		return nil, common.ErrorUnauthorized
	}

	active, err := s.repomanager.Sessions(s.db).Exists(ctx, userID, token)
	if err != nil {
		return nil, common.ErrorInternal
	}
	if !active {
		return nil, common.ErrorUnauthorized
	}

	user, err := s.repomanager.Users(s.db).GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, common.ErrorInternal
	}
	return user, nil
}

// Logout removes exactly the presented token from the active list.
func (s *UserService) Logout(ctx context.Context, userID string, token string) error {
	err := s.repomanager.Sessions(s.db).Delete(ctx, userID, token)
	if err != nil && !errors.Is(err, common.ErrorNotFound) {
		return common.ErrorInternal
	}
	return nil
}

// LogoutAll clears the user's entire token list. Calling it with an already
// empty list succeeds; the caller cannot actually observe that, since the
// token just used was removed by the first call.
func (s *UserService) LogoutAll(ctx context.Context, userID string) error {
	if err := s.repomanager.Sessions(s.db).DeleteAll(ctx, userID); err != nil {
		return common.ErrorInternal
	}
	return nil
}

// Update applies the allowed profile changes and persists the whole document.
func (s *UserService) Update(ctx context.Context, userID string, params UpdateParams) (*models.User, error) {
	repo := s.repomanager.Users(s.db)

	user, err := repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if params.Name != nil {
		user.Name = strings.TrimSpace(*params.Name)
	}
	if params.Email != nil {
		user.Email = normalizeEmail(*params.Email)
	}
	if params.Password != nil {
		hash, err := auth.HashPassword(*params.Password)
		if err != nil {
			return nil, common.ErrorInternal
		}
		user.PasswordHash = hash
	}
	if params.Age != nil {
		user.Age = params.Age
	}

	updated, err := repo.Update(ctx, user)
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete removes the account. Tasks and session tokens cascade in the
// database; the stored avatar is cleaned up best-effort. The farewell email
// is dispatched fire-and-forget.
func (s *UserService) Delete(ctx context.Context, userID string) (*models.User, error) {
	repo := s.repomanager.Users(s.db)

	user, err := repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := repo.Delete(ctx, userID); err != nil {
		return nil, err
	}

	if err := s.avatars.Delete(ctx, userID); err != nil && !errors.Is(err, common.ErrorNotFound) {
		s.logger.Warn(ctx, "avatar cleanup failed", "user_id", userID, "err", err.Error())
	}

	s.notify(user.Email, user.Name, s.mailer.SendGoodbye)

	return user, nil
}

// SetAvatar transcodes the uploaded image to the fixed square PNG thumbnail
// and stores it. An undecodable payload is returned as is so callers can
// treat it as a client error; a store failure is common.ErrorInternal.
func (s *UserService) SetAvatar(ctx context.Context, userID string, data []byte) error {
	thumb, err := imagex.Thumbnail(data)
	if err != nil {
		return err
	}
	if err := s.avatars.Put(ctx, userID, thumb); err != nil {
		s.logger.Error(ctx, "avatar store write failed", "user_id", userID, "err", err.Error())
		return common.ErrorInternal
	}
	return nil
}

// GetAvatar returns the stored PNG thumbnail for any user id. A malformed
// id behaves like a missing user.
func (s *UserService) GetAvatar(ctx context.Context, userID string) ([]byte, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return nil, common.ErrorNotFound
	}
	return s.avatars.Get(ctx, userID)
}

// DeleteAvatar clears the stored avatar.
func (s *UserService) DeleteAvatar(ctx context.Context, userID string) error {
	return s.avatars.Delete(ctx, userID)
}

// --- helpers below ---

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// issueSessionToken mints a JWT and appends it to the user's active list.
func (s *UserService) issueSessionToken(ctx context.Context, db dbx.DBTX, userID string) (string, error) {
	token, err := auth.GenerateToken(userID, s.jwtSecret, s.tokenValidityDuration)
	if err != nil {
		return "", err
	}
	if err := s.repomanager.Sessions(db).Create(ctx, userID, token); err != nil {
		return "", err
	}
	return token, nil
}

// notify dispatches a lifecycle email without blocking the caller. Failures
// are logged and never retried.
func (s *UserService) notify(email string, name string, send func(context.Context, string, string) error) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := send(ctx, email, name); err != nil {
			s.logger.Warn(ctx, "email delivery failed", "email", email, "err", err.Error())
		}
	}()
}
