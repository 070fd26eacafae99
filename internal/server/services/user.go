// Package services contains server-side business logic. This file
// implements UserService: registration, credential login, token-subject
// resolution, and the ownership policy applied to cross-user views.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/authgate/internal/common"
	"github.com/dmitrijs2005/authgate/internal/dbx"
	"github.com/dmitrijs2005/authgate/internal/logging"
	"github.com/dmitrijs2005/authgate/internal/server/config"
	"github.com/dmitrijs2005/authgate/internal/server/models"
	"github.com/dmitrijs2005/authgate/internal/server/repositories/repomanager"
)

// Registration limits observed by the transport contract: an email must be
// longer than 3 characters and a password longer than 8.
const (
	minEmailLen    = 4
	minPasswordLen = 9
)

// UserService provides identity operations:
//   - Register: validate input and create users
//   - Login: verify credentials
//   - ResolveSubject: re-resolve a verified token subject to a live record
//   - ResolveView: ownership policy for viewing user records
type UserService struct {
	db           *sql.DB
	repomanager  repomanager.RepositoryManager
	logger       logging.Logger
	storeTimeout time.Duration
}

// NewUserService constructs a UserService using repositories and server config.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, l logging.Logger, cfg *config.Config) *UserService {
	return &UserService{
		db:           db,
		repomanager:  m,
		logger:       l.With("module", "user_service"),
		storeTimeout: cfg.StoreTimeout,
	}
}

// storeCtx bounds a single identity-store call.
func (s *UserService) storeCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.storeTimeout)
}

// storeErr reports a deadline hit as ErrStoreUnavailable so transports can
// signal a retryable condition instead of a generic failure.
func storeErr(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return common.ErrStoreUnavailable
	}
	return err
}

// Register validates the input and creates a new identity. The email
// uniqueness check and the insert run in one transaction so a duplicate
// registration gets a clean validation error instead of a driver error.
func (s *UserService) Register(ctx context.Context, email, password string) (*models.User, error) {
	if len(email) < minEmailLen {
		return nil, fmt.Errorf("%w: email is too short", common.ErrValidation)
	}
	if len(password) < minPasswordLen {
		return nil, fmt.Errorf("%w: password is too short", common.ErrValidation)
	}

	hash, err := models.HashSecret(password)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrValidation, err)
	}

	user := &models.User{ID: uuid.NewString(), Email: email, PasswordHash: hash}

	cctx, cancel := s.storeCtx(ctx)
	defer cancel()

	if err := dbx.WithTx(cctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repoTx := s.repomanager.Users(tx)

		_, err := repoTx.GetByEmail(ctx, email)
		if err == nil {
			return fmt.Errorf("%w: email is already in use", common.ErrValidation)
		}
		if !errors.Is(err, common.ErrNotFound) {
			return err
		}

		user, err = repoTx.Create(ctx, user)
		return err
	}); err != nil {
		if errors.Is(err, common.ErrValidation) {
			return nil, err
		}
		return nil, fmt.Errorf("error creating user: %w", storeErr(err))
	}

	return user, nil
}

// Login verifies the credential against the stored record. Both an unknown
// email and a wrong secret collapse into ErrAuthenticationFailed; the
// distinction is logged here and never surfaced to the caller.
func (s *UserService) Login(ctx context.Context, email, secret string) (*models.User, error) {
	repo := s.repomanager.Users(s.db)

	cctx, cancel := s.storeCtx(ctx)
	defer cancel()

	user, err := repo.GetByEmail(cctx, email)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			s.logger.Info(ctx, "login rejected", "reason", "unknown email", "email", email)
			return nil, common.ErrAuthenticationFailed
		}
		return nil, storeErr(err)
	}

	if !user.SecretMatches(secret) {
		s.logger.Info(ctx, "login rejected", "reason", "secret mismatch", "user_id", user.ID)
		return nil, common.ErrAuthenticationFailed
	}

	return user, nil
}

// ResolveSubject re-resolves a verified token subject to a live identity.
// A subject that no longer exists yields ErrTokenInvalid: the session is
// dead, and the caller must not learn whether the account ever existed.
// Note that sliding expiry has no upper bound: a subject that keeps
// presenting fresh tokens stays signed in indefinitely.
func (s *UserService) ResolveSubject(ctx context.Context, subjectID string) (*models.User, error) {
	repo := s.repomanager.Users(s.db)

	cctx, cancel := s.storeCtx(ctx)
	defer cancel()

	user, err := repo.GetByID(cctx, subjectID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			s.logger.Warn(ctx, "token subject no longer exists", "subject_id", subjectID)
			return nil, common.ErrTokenInvalid
		}
		return nil, storeErr(err)
	}

	return user, nil
}

// ResolveView applies the ownership policy: a requester viewing itself
// gets the already-loaded record projected with no extra store access; any
// other target is fetched through the projected lookup, which excludes the
// secret columns at the query level.
func (s *UserService) ResolveView(ctx context.Context, requesterID, targetID string, cached *models.User) (*models.PublicUser, error) {
	if requesterID == targetID && cached != nil {
		return cached.Public(), nil
	}

	repo := s.repomanager.Users(s.db)

	cctx, cancel := s.storeCtx(ctx)
	defer cancel()

	view, err := repo.GetPublicByID(cctx, targetID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrUserNotFound
		}
		return nil, storeErr(err)
	}

	return view, nil
}
