package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/business_tracker/internal/apperrors"
	"github.com/SscSPs/business_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/business_tracker/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/business_tracker/internal/core/ports/services"
	"github.com/SscSPs/business_tracker/internal/dto"
	"github.com/SscSPs/business_tracker/internal/utils"
	"github.com/google/uuid"
)

// DefaultAdminUsername is the account created on first start.
const DefaultAdminUsername = "admin"

// DefaultEditWindow is how long a non-admin may change their own transaction.
const DefaultEditWindow = 10 * time.Minute

// AccessConfig holds the token and edit window settings.
type AccessConfig struct {
	JWTSecret  string
	JWTExpiry  time.Duration
	JWTIssuer  string
	EditWindow time.Duration
}

type accessService struct {
	BaseService
	store portsrepo.Store
	cfg   AccessConfig
}

// NewAccessService creates the user and permission service.
func NewAccessService(store portsrepo.Store, cfg AccessConfig) portssvc.AccessSvcFacade {
	if cfg.EditWindow <= 0 {
		cfg.EditWindow = DefaultEditWindow
	}
	return &accessService{store: store, cfg: cfg}
}

var errBadCredentials = fmt.Errorf("%w: invalid username or password", apperrors.ErrUnauthorized)

func (s *accessService) Authorize(sess domain.Session, perm domain.Permission) error {
	if !sess.Role.Allows(perm) {
		return fmt.Errorf("%w: role %q lacks permission %q", apperrors.ErrForbidden, sess.Role, perm)
	}
	return nil
}

// CanEditTransaction allows admins always, and the creator while the edit window is open.
func (s *accessService) CanEditTransaction(sess domain.Session, txn domain.Transaction, now time.Time) bool {
	if sess.IsAdmin() {
		return true
	}
	if sess.Username == "" || txn.CreatedBy != sess.Username {
		return false
	}
	return now.Sub(txn.CreatedAt) < s.cfg.EditWindow
}

func (s *accessService) CanDeleteTransaction(sess domain.Session, txn domain.Transaction, now time.Time) bool {
	return s.CanEditTransaction(sess, txn, now)
}

func (s *accessService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	uow, err := s.store.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer uow.Rollback(ctx)

	user, err := uow.Users().FindUserByUsername(ctx, strings.TrimSpace(req.Username))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.LogDebug(ctx, "Login attempt for unknown user", slog.String("username", req.Username))
			return nil, errBadCredentials
		}
		return nil, err
	}
	if !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		s.LogDebug(ctx, "Login attempt with wrong password", slog.String("username", req.Username))
		return nil, errBadCredentials
	}

	token, err := utils.GenerateJWT(user.UserID, user.Username, string(user.Role), s.cfg.JWTSecret, s.cfg.JWTExpiry, s.cfg.JWTIssuer)
	if err != nil {
		s.LogError(ctx, err, "Failed to sign token", slog.String("user_id", user.UserID))
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	s.LogInfo(ctx, "User logged in", slog.String("user_id", user.UserID))
	return &dto.LoginResponse{Token: token, User: dto.ToUserResponse(user)}, nil
}

func (s *accessService) CreateUser(ctx context.Context, sess domain.Session, req dto.CreateUserRequest) (*domain.User, error) {
	if err := s.Authorize(sess, domain.PermManageUsers); err != nil {
		return nil, err
	}
	username := strings.TrimSpace(req.Username)
	if username == "" {
		return nil, validationError("username is required")
	}
	if !req.Role.IsValid() {
		return nil, validationError("invalid role %q", req.Role)
	}
	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, validationError("%v", err)
	}

	uow, err := s.store.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer uow.Rollback(ctx)

	user := domain.User{
		UserID:       uuid.NewString(),
		Username:     username,
		PasswordHash: hash,
		Role:         req.Role,
		AuditFields:  newAudit(sess.Username, s.Now()),
	}
	if err := uow.Users().SaveUser(ctx, user); err != nil {
		return nil, err
	}
	if err := commit(ctx, uow); err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "User created", slog.String("user_id", user.UserID), slog.String("role", string(user.Role)))
	return &user, nil
}

func (s *accessService) ListUsers(ctx context.Context, sess domain.Session) ([]domain.User, error) {
	if err := s.Authorize(sess, domain.PermManageUsers); err != nil {
		return nil, err
	}
	uow, err := s.store.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer uow.Rollback(ctx)
	return uow.Users().ListUsers(ctx)
}

// DeleteUser refuses to delete the caller's own account.
func (s *accessService) DeleteUser(ctx context.Context, sess domain.Session, userID string) error {
	if err := s.Authorize(sess, domain.PermManageUsers); err != nil {
		return err
	}
	if userID == sess.UserID {
		return fmt.Errorf("%w: cannot delete your own account", apperrors.ErrForbidden)
	}

	uow, err := s.store.Begin(ctx)
	if err != nil {
		return err
	}
	defer uow.Rollback(ctx)

	target, err := uow.Users().FindUserByID(ctx, userID)
	if err != nil {
		return err
	}
	if target.Role == domain.RoleAdmin && !sess.IsAdmin() {
		return fmt.Errorf("%w: only admins can delete admins", apperrors.ErrForbidden)
	}
	if err := uow.Users().DeleteUser(ctx, userID); err != nil {
		return err
	}
	if err := commit(ctx, uow); err != nil {
		return err
	}

	s.LogInfo(ctx, "User deleted", slog.String("user_id", userID))
	return nil
}

func (s *accessService) ChangePassword(ctx context.Context, sess domain.Session, req dto.ChangePasswordRequest) error {
	uow, err := s.store.Begin(ctx)
	if err != nil {
		return err
	}
	defer uow.Rollback(ctx)

	user, err := uow.Users().FindUserByID(ctx, sess.UserID)
	if err != nil {
		return err
	}
	if !utils.CheckPasswordHash(req.CurrentPassword, user.PasswordHash) {
		return errBadCredentials
	}
	hash, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		return validationError("%v", err)
	}
	user.PasswordHash = hash
	user.LastUpdatedAt = s.Now()
	user.LastUpdatedBy = sess.Username

	if err := uow.Users().UpdateUser(ctx, *user); err != nil {
		return err
	}
	return commit(ctx, uow)
}

func (s *accessService) EnsureDefaultAdmin(ctx context.Context, password string) error {
	uow, err := s.store.Begin(ctx)
	if err != nil {
		return err
	}
	defer uow.Rollback(ctx)

	count, err := uow.Users().CountUsers(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return fmt.Errorf("default admin password: %w", err)
	}
	admin := domain.User{
		UserID:       uuid.NewString(),
		Username:     DefaultAdminUsername,
		PasswordHash: hash,
		Role:         domain.RoleAdmin,
		AuditFields:  newAudit("system", s.Now()),
	}
	if err := uow.Users().SaveUser(ctx, admin); err != nil {
		return err
	}
	if err := commit(ctx, uow); err != nil {
		return err
	}

	s.LogInfo(ctx, "Default admin created", slog.String("username", DefaultAdminUsername))
	return nil
}
