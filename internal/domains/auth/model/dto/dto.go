package dto

import (
	"strings"
	"time"

	"bookly/infras/jwt"
	businessModel "bookly/internal/domains/business/model"
	"bookly/internal/domains/plan"
	userModel "bookly/internal/domains/user/model"
	"bookly/shared/constant"
	gModel "bookly/shared/model"

	"github.com/google/uuid"
)

// RegisterRequest signs up an owner together with their business.
type RegisterRequest struct {
	BusinessName string `json:"business_name" validate:"required,min=2,max=100"`
	Timezone     string `json:"timezone"      validate:"omitempty,timezone"`
	Email        string `json:"email"         validate:"required,email"`
	Password     string `json:"password"      validate:"required,min=8"`
	FullName     string `json:"full_name"     validate:"required,min=2,max=100"`
}

func (r *RegisterRequest) ToBusinessModel(slug, fallbackTimezone string, trialEndsAt time.Time) businessModel.Business {
	tz := r.Timezone
	if tz == constant.Empty {
		tz = fallbackTimezone
	}

	return businessModel.Business{
		ID:          uuid.NewString(),
		Name:        r.BusinessName,
		Slug:        slug,
		Email:       strings.ToLower(r.Email),
		Timezone:    tz,
		Plan:        plan.TierFreemium,
		PlanStatus:  plan.StatusTrial,
		TrialEndsAt: &trialEndsAt,
		Metadata:    gModel.NewMetadata(constant.ContextGuest),
	}
}

func (r *RegisterRequest) ToUserModel(businessID, hashedPassword string) userModel.User {
	return userModel.User{
		ID:         uuid.NewString(),
		BusinessID: businessID,
		Email:      strings.ToLower(r.Email),
		Password:   hashedPassword,
		Role:       constant.RoleOwner,
		FullName:   r.FullName,
		Active:     true,
		Metadata:   gModel.NewMetadata(constant.ContextGuest),
	}
}

type RegisterResponse struct {
	UserID       string `json:"user_id"`
	BusinessID   string `json:"business_id"`
	BusinessSlug string `json:"business_slug"`
	LoginResponse
}

type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type UpdateLastLoginRequest struct {
	LastLoginAt time.Time `db:"last_login_at" json:"last_login_at" validate:"required"`
}

type LoginResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
}

func (l *LoginResponse) FromTokenPair(tokenPair *jwt.TokenPair) {
	l.AccessToken = tokenPair.AccessToken
	l.RefreshToken = tokenPair.RefreshToken
	l.TokenType = tokenPair.TokenType
	l.ExpiresIn = tokenPair.ExpiresIn
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type RefreshTokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

func (r *RefreshTokenResponse) FromTokenPair(tokenPair *jwt.TokenPair) {
	r.AccessToken = tokenPair.AccessToken
	r.RefreshToken = tokenPair.RefreshToken
	r.ExpiresIn = tokenPair.ExpiresIn
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password"     validate:"required,min=8,nefield=CurrentPassword"`
}

type UpdatePasswordRequest struct {
	Password string `db:"password" json:"password" validate:"required,min=8"`
}
