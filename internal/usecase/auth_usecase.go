package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"clinic-admin-api/internal/converter"
	"clinic-admin-api/internal/delivery/dto"
	"clinic-admin-api/internal/delivery/http/middleware"
	"clinic-admin-api/internal/domain/entity"
	"clinic-admin-api/internal/domain/repository"
	"clinic-admin-api/internal/service"
	"clinic-admin-api/pkg/jwt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrAdminNotFound      = errors.New("admin not found")
)

type AuthUsecase interface {
	EnsureDefaultAdmin(ctx context.Context, username, password string) (bool, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)
	Logout(ctx context.Context, adminID uuid.UUID, tokenID string, expiresAt time.Time) error
	GetCurrentAdmin(ctx context.Context, adminID uuid.UUID) (*dto.AdminResponse, error)
}

type authUsecase struct {
	log          *logrus.Logger
	adminRepo    repository.AdminRepository
	tokenRepo    repository.TokenRepository
	jwtService   *jwt.JWTService
	auditService service.AuditService
}

func NewAuthUsecase(
	log *logrus.Logger,
	adminRepo repository.AdminRepository,
	tokenRepo repository.TokenRepository,
	jwtService *jwt.JWTService,
	auditService service.AuditService,
) AuthUsecase {
	return &authUsecase{
		log:          log,
		adminRepo:    adminRepo,
		tokenRepo:    tokenRepo,
		jwtService:   jwtService,
		auditService: auditService,
	}
}

// EnsureDefaultAdmin creates the admin account when it does not exist yet and
// reports whether it did. Losing a race against another instance that inserted
// the same username counts as already existing.
func (u *authUsecase) EnsureDefaultAdmin(ctx context.Context, username, password string) (bool, error) {
	existing, err := u.adminRepo.FindByUsername(ctx, username)
	if err != nil {
		u.log.Warnf("Failed to find admin by username: %+v", err)
		return false, err
	}
	if existing != nil {
		return false, nil
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		u.log.Warnf("Failed to hash password: %+v", err)
		return false, err
	}

	admin := &entity.Admin{
		Username: username,
		Password: string(hashedPassword),
	}
	if err := u.adminRepo.Create(ctx, admin); err != nil {
		if isDuplicateKeyError(err, "username") {
			return false, nil
		}
		u.log.Warnf("Failed to create admin: %+v", err)
		return false, err
	}

	return true, nil
}

func (u *authUsecase) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	admin, err := u.adminRepo.FindByUsername(ctx, req.Username)
	if err != nil {
		u.log.Warnf("Failed to find admin by username: %+v", err)
		return nil, err
	}
	if admin == nil {
		return nil, ErrInvalidCredentials
	}

	// Verify password
	if err := bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, _, _, err := u.jwtService.GenerateAccessToken(admin.ID, admin.Username)
	if err != nil {
		u.log.Warnf("Failed to generate access token: %+v", err)
		return nil, err
	}

	if err := u.auditService.LogAction(ctx, &admin.ID, entity.AuditActionAdminLogin, entity.JSON{
		"entity":    "admin",
		"entity_id": admin.ID.String(),
	}); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	return &dto.LoginResponse{
		Token:     token,
		ExpiresIn: int64(u.jwtService.GetAccessExpiry().Seconds()),
	}, nil
}

// Logout revokes the token until it would have expired anyway.
func (u *authUsecase) Logout(ctx context.Context, adminID uuid.UUID, tokenID string, expiresAt time.Time) error {
	if err := u.tokenRepo.Revoke(ctx, tokenID, time.Until(expiresAt)); err != nil {
		u.log.Warnf("Failed to revoke token: %+v", err)
		return err
	}

	if err := u.auditService.LogAction(ctx, &adminID, entity.AuditActionAdminLogout, entity.JSON{
		"entity":    "admin",
		"entity_id": adminID.String(),
	}); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	return nil
}

func (u *authUsecase) GetCurrentAdmin(ctx context.Context, adminID uuid.UUID) (*dto.AdminResponse, error) {
	admin, err := u.adminRepo.FindByID(ctx, adminID)
	if err != nil {
		u.log.Warnf("Failed to find admin by ID: %+v", err)
		return nil, err
	}
	if admin == nil {
		return nil, ErrAdminNotFound
	}

	return converter.AdminToResponse(admin), nil
}

// isDuplicateKeyError checks if the error is a PostgreSQL unique constraint violation
// containing the specified constraint name
func isDuplicateKeyError(err error, constraintName string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// PostgreSQL error code 23505 = unique_violation
		if pgErr.Code == "23505" && strings.Contains(strings.ToLower(pgErr.ConstraintName), strings.ToLower(constraintName)) {
			return true
		}
	}
	return false
}

// adminIDFromContext returns the acting admin for audit entries, or nil when
// the call did not come through the auth middleware.
func adminIDFromContext(ctx context.Context) *uuid.UUID {
	adminID, ok := middleware.GetAdminIDFromContext(ctx)
	if !ok {
		return nil
	}
	return &adminID
}
