package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/mothernatural/wellness-backend/internal/model"
	"github.com/mothernatural/wellness-backend/internal/repository"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const tokenTTL = 24 * time.Hour

type AuthService interface {
	Register(ctx context.Context, email, password, name string, referralCode *string) (*model.User, string, error)
	Login(ctx context.Context, email, password string) (*model.User, string, error)
}

type authService struct {
	users     repository.UserRepository
	referrals ReferralService
	loyalty   LoyaltyService
	secret    []byte
	now       func() time.Time
}

func NewAuthService(users repository.UserRepository, referrals ReferralService, loyalty LoyaltyService, jwtSecret string) AuthService {
	return &authService{
		users:     users,
		referrals: referrals,
		loyalty:   loyalty,
		secret:    []byte(jwtSecret),
		now:       time.Now,
	}
}

func (s *authService) sign(u *model.User) (string, error) {
	now := s.now()
	claims := jwt.MapClaims{
		"sub": u.ID,
		"adm": u.Admin,
		"iat": now.Unix(),
		"exp": now.Add(tokenTTL).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// Register creates the account and, when a referral code is supplied, runs the
// redemption as part of signup. An unknown code fails the request rather than
// silently dropping the referrer's credit.
func (s *authService) Register(ctx context.Context, email, password, name string, referralCode *string) (*model.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, "", errors.New("valid email is required")
	}
	if len(password) < 8 {
		return nil, "", errors.New("password must be at least 8 characters")
	}
	if strings.TrimSpace(name) == "" {
		return nil, "", errors.New("name is required")
	}

	var code *string
	if referralCode != nil {
		c := strings.ToUpper(strings.TrimSpace(*referralCode))
		if c != "" {
			if _, err := s.users.FindByReferralCode(ctx, c); err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return nil, "", ErrInvalidCode
				}
				return nil, "", err
			}
			code = &c
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}

	u := &model.User{
		ID:             uuid.NewString(),
		Email:          email,
		PasswordHash:   string(hash),
		Name:           strings.TrimSpace(name),
		ReferredByCode: code,
		Active:         true,
	}
	if err := s.users.Create(ctx, u); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, "", ErrEmailTaken
		}
		return nil, "", err
	}

	if code != nil {
		if err := s.referrals.Redeem(ctx, *code, u.ID); err != nil {
			// The account exists either way; a referral lost to a race
			// is not worth failing the signup over.
			if !errors.Is(err, ErrDuplicateReferral) && !errors.Is(err, ErrInvalidCode) {
				return nil, "", err
			}
		}
	}

	token, err := s.sign(u)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (*model.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	u, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}
	if !u.Active {
		return nil, "", ErrAccountDisabled
	}

	now := s.now()
	_ = s.users.SetLastSignInAt(ctx, u.ID, now)
	// Daily sign-in bonus rides along with login; idempotent per UTC day.
	if _, err := s.loyalty.DailySignIn(ctx, u.ID); err != nil {
		return nil, "", err
	}

	token, err := s.sign(u)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}
