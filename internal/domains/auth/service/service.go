package service

import (
	"context"
	"fmt"
	"time"

	"bookly/config"
	"bookly/infras/jwt"
	"bookly/infras/otel"
	"bookly/internal/domains/auth/model/dto"
	businessModel "bookly/internal/domains/business/model"
	businessRepo "bookly/internal/domains/business/repository"
	userModel "bookly/internal/domains/user/model"
	userRepo "bookly/internal/domains/user/repository"
	"bookly/shared"
	"bookly/shared/constant"
	"bookly/shared/failure"
	"bookly/shared/password"
	"bookly/shared/slug"
	"bookly/shared/timezone"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

const (
	fallbackSlug   = "business"
	slugSuffixSize = 6
	hoursPerDay    = 24
)

type Auth interface {
	Register(ctx context.Context, req dto.RegisterRequest) (dto.RegisterResponse, error)
	Login(ctx context.Context, req dto.LoginRequest) (dto.LoginResponse, error)
	RefreshToken(ctx context.Context, req dto.RefreshTokenRequest) (dto.RefreshTokenResponse, error)
	ChangePassword(ctx context.Context, req dto.ChangePasswordRequest) error
}

type serviceImpl struct {
	userRepo     userRepo.User
	businessRepo businessRepo.Business
	cfg          *config.Config
	otel         otel.Otel
	jwtService   jwt.JWT
}

func New(userRepo userRepo.User, businessRepo businessRepo.Business, cfg *config.Config, otel otel.Otel, jwt jwt.JWT) Auth {
	return &serviceImpl{
		userRepo:     userRepo,
		businessRepo: businessRepo,
		cfg:          cfg,
		otel:         otel,
		jwtService:   jwt,
	}
}

// Register creates the business and its owner in one transaction and signs the owner in.
func (s *serviceImpl) Register(ctx context.Context, req dto.RegisterRequest) (res dto.RegisterResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Register")
	defer scope.End()
	defer scope.TraceIfError(err)

	exists, err := s.userRepo.Exist(ctx, userRepo.EmailFilter(req.Email))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if user exists")

		return res, fmt.Errorf("failed to check if user exists: %w", err)
	}

	if exists {
		return res, failure.BadRequestFromString("email already registered")
	}

	businessSlug, err := s.uniqueSlug(ctx, req.BusinessName)
	if err != nil {
		return res, err
	}

	hashedPassword, err := password.Hash(req.Password)
	if err != nil {
		log.Error().Err(err).Msg("failed to hash password")

		return res, fmt.Errorf("failed to hash password: %w", err)
	}

	trialEndsAt := timezone.Now().Add(time.Duration(s.cfg.Plan.TrialDays*hoursPerDay) * time.Hour)
	business := req.ToBusinessModel(businessSlug, s.cfg.App.Timezone, trialEndsAt)
	user := req.ToUserModel(business.ID, hashedPassword)

	err = s.userRepo.Transaction(ctx, func(tx *sqlx.Tx) error {
		if err := s.businessRepo.InsertTx(ctx, tx, business); err != nil {
			return fmt.Errorf("failed to create business: %w", err)
		}

		if err := s.userRepo.InsertTx(ctx, tx, user); err != nil {
			return fmt.Errorf("failed to create user: %w", err)
		}

		return nil
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to register")

		return res, fmt.Errorf("failed to register: %w", err)
	}

	tokenPair, err := s.jwtService.GenerateTokenPair(identity(user))
	if err != nil {
		log.Error().Err(err).Msg("failed to generate tokens")

		return res, fmt.Errorf("failed to generate tokens: %w", err)
	}

	res.UserID = user.ID
	res.BusinessID = business.ID
	res.BusinessSlug = business.Slug
	res.FromTokenPair(tokenPair)

	return res, nil
}

// uniqueSlug derives a slug from name and appends a random suffix when it is taken.
func (s *serviceImpl) uniqueSlug(ctx context.Context, name string) (string, error) {
	candidate := slug.Make(name)
	if candidate == constant.Empty {
		candidate = fallbackSlug
	}

	taken, err := s.businessRepo.Exist(ctx, shared.FilterByID(candidate, businessModel.FieldSlug, businessModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check business slug")

		return constant.Empty, fmt.Errorf("failed to check business slug: %w", err)
	}

	if taken {
		candidate += "-" + uuid.NewString()[:slugSuffixSize]
	}

	return candidate, nil
}

func identity(user userModel.User) jwt.Identity {
	return jwt.Identity{
		UserID:     user.ID,
		BusinessID: user.BusinessID,
		Email:      user.Email,
		Role:       user.Role,
	}
}

func (s *serviceImpl) Login(ctx context.Context, req dto.LoginRequest) (res dto.LoginResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Login")
	defer scope.End()
	defer scope.TraceIfError(err)

	emailFilter := userRepo.EmailFilter(req.Email)

	user, err := s.userRepo.Get(ctx, emailFilter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get user")

		return res, fmt.Errorf("failed to get user: %w", err)
	}

	if user.ID == constant.Empty {
		log.Warn().Str("email", req.Email).Msg("login attempt with non-existent email")

		return res, failure.BadRequestFromString("invalid email or password")
	}

	if err := password.Verify(req.Password, user.Password); err != nil {
		log.Warn().Str("email", req.Email).Msg("login attempt with wrong password")

		return res, failure.BadRequestFromString("invalid email or password")
	}

	if !user.Active {
		return res, failure.BadRequestFromString("user account is deactivated")
	}

	tokenPair, err := s.jwtService.GenerateTokenPair(identity(user))
	if err != nil {
		log.Error().Err(err).Msg("failed to generate tokens")

		return res, fmt.Errorf("failed to generate tokens: %w", err)
	}

	lastLogin := dto.UpdateLastLoginRequest{LastLoginAt: timezone.Now()}
	fields := shared.TransformFields(lastLogin, user.ID)

	if password.NeedsRehash(user.Password) {
		if rehashed, hashErr := password.Hash(req.Password); hashErr == nil {
			fields[userModel.FieldPassword] = rehashed
		}
	}

	if err := s.userRepo.Update(ctx, fields, emailFilter); err != nil {
		log.Warn().Err(err).Str("user_id", user.ID).Msg("failed to update last login")
	}

	res.FromTokenPair(tokenPair)

	return res, nil
}

func (s *serviceImpl) RefreshToken(ctx context.Context, req dto.RefreshTokenRequest) (res dto.RefreshTokenResponse, err error) {
	_, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".RefreshToken")
	defer scope.End()
	defer scope.TraceIfError(err)

	tokenPair, err := s.jwtService.RefreshTokens(req.RefreshToken)
	if err != nil {
		log.Warn().Err(err).Msg("failed to refresh tokens")

		return res, failure.Unauthorized("invalid refresh token")
	}

	res.FromTokenPair(tokenPair)

	return res, nil
}

func (s *serviceImpl) ChangePassword(ctx context.Context, req dto.ChangePasswordRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ChangePassword")
	defer scope.End()
	defer scope.TraceIfError(err)

	userID := shared.UserIDFromContext(ctx)
	filter := shared.FilterByIDInBusiness(userID, shared.BusinessIDFromContext(ctx), userModel.FieldID, userModel.TableName)

	user, err := s.userRepo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get user")

		return fmt.Errorf("failed to get user: %w", err)
	}

	if user.ID == constant.Empty {
		return failure.NotFound("user not found") // nolint:wrapcheck
	}

	if err := password.Verify(req.CurrentPassword, user.Password); err != nil {
		return failure.BadRequestFromString("current password is incorrect")
	}

	hashedPassword, err := password.Hash(req.NewPassword)
	if err != nil {
		log.Error().Err(err).Msg("failed to hash new password")

		return fmt.Errorf("failed to hash new password: %w", err)
	}

	updatePassword := dto.UpdatePasswordRequest{Password: hashedPassword}

	if err = s.userRepo.Update(ctx, shared.TransformFields(updatePassword, userID), filter); err != nil {
		log.Error().Err(err).Msg("failed to update password")

		return fmt.Errorf("failed to update password: %w", err)
	}

	return nil
}
