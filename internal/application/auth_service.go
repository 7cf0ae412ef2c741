package application

import (
	"context"
	"errors"
	"regexp"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/freeads/marketplace-api/internal/domain/entity"
	repo "github.com/freeads/marketplace-api/internal/domain/repository"
	"github.com/freeads/marketplace-api/pkg/helpers"
	"github.com/freeads/marketplace-api/pkg/mailer"
)

var (
	phonePattern = regexp.MustCompile(`^[0-9]{10}$`)
	otpPattern   = regexp.MustCompile(`^[0-9]{6}$`)
)

// AuthService orchestrates OTP issuance/verification and federated login,
// and mints bearer tokens. The OTP ledger is injected so production can back
// it with Redis while tests use the in-memory form.
type AuthService struct {
	Users  repo.UserRepository
	Ledger repo.OTPLedger
	JWT    *helpers.JWTManager
	Logger *logrus.Logger
	Pub    *helpers.RabbitPublisher // optional; welcome mail on first federated login
	OTPTTL time.Duration
}

func NewAuthService(users repo.UserRepository, ledger repo.OTPLedger, jwt *helpers.JWTManager, logger *logrus.Logger, pub *helpers.RabbitPublisher, otpTTL time.Duration) *AuthService {
	return &AuthService{
		Users:  users,
		Ledger: ledger,
		JWT:    jwt,
		Logger: logger,
		Pub:    pub,
		OTPTTL: otpTTL,
	}
}

// RequestOTP looks up or creates the user for the phone, stores a fresh
// 6-digit code in the ledger (overwriting any prior entry) and emits the code
// to the operational log, which stands in for an SMS gateway. The code is
// never returned to the caller.
func (s *AuthService) RequestOTP(ctx context.Context, name, phone string) error {
	if name == "" || phone == "" {
		return NewValidationError("Name and phone are required")
	}
	if !phonePattern.MatchString(phone) {
		return NewValidationError("Phone must be a 10-digit number")
	}

	_, err := s.Users.GetByPhone(ctx, phone)
	if errors.Is(err, repo.ErrNotFound) {
		u := &entity.User{Name: name, Phone: phone}
		if err := s.Users.Create(ctx, u); err != nil {
			return err
		}
	} else if err != nil {
		return err
	}

	code, err := helpers.GenOTPCode()
	if err != nil {
		return err
	}
	hash, err := helpers.HashOTPCode(code)
	if err != nil {
		return err
	}
	entry := repo.OTPEntry{CodeHash: hash, ExpiresAt: time.Now().Add(s.OTPTTL)}
	if err := s.Ledger.Put(ctx, phone, entry, s.OTPTTL); err != nil {
		return err
	}

	// SMS gateway stand-in.
	s.Logger.WithFields(logrus.Fields{"phone": phone, "otp": code}).Info("OTP issued")
	return nil
}

// VerifyOTP checks the submitted code against the ledger. The entry must
// exist, the code must match, and the expiry must not have passed (strictly:
// expiry < now invalidates). A successful verification consumes the entry.
func (s *AuthService) VerifyOTP(ctx context.Context, phone, otp string) (*entity.User, string, error) {
	if phone == "" || otp == "" {
		return nil, "", NewValidationError("Phone and OTP are required")
	}
	if !otpPattern.MatchString(otp) {
		return nil, "", NewValidationError("OTP must be a 6-digit number")
	}

	u, err := s.Users.GetByPhone(ctx, phone)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, "", ErrUserNotFound
	}
	if err != nil {
		return nil, "", err
	}

	entry, err := s.Ledger.Get(ctx, phone)
	if err != nil {
		return nil, "", err
	}
	if entry == nil || !helpers.CompareOTPCode(entry.CodeHash, otp) || entry.ExpiresAt.Before(time.Now()) {
		return nil, "", ErrInvalidOTP
	}

	// One-time use.
	if err := s.Ledger.Delete(ctx, phone); err != nil {
		return nil, "", err
	}

	token, _, err := s.JWT.Generate(u.ID)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

// GoogleLogin logs a user in via their Google identity, creating the account
// on first sight and keeping the stored display name in sync. A fresh token
// is minted on every call.
func (s *AuthService) GoogleLogin(ctx context.Context, name, googleID, email string) (*entity.User, string, error) {
	if name == "" || googleID == "" || email == "" {
		return nil, "", NewValidationError("Name, Google ID and email are required")
	}

	created := false
	u, err := s.Users.GetByGoogle(ctx, googleID, email)
	if errors.Is(err, repo.ErrNotFound) {
		u = &entity.User{Name: name, GoogleID: googleID, Email: email}
		if err := s.Users.Create(ctx, u); err != nil {
			return nil, "", err
		}
		created = true
	} else if err != nil {
		return nil, "", err
	} else if u.Name != name {
		if err := s.Users.UpdateName(ctx, u.ID, name); err != nil {
			return nil, "", err
		}
		u.Name = name
	}

	token, _, err := s.JWT.Generate(u.ID)
	if err != nil {
		return nil, "", err
	}

	if created && s.Pub != nil && u.Email != "" {
		job := mailer.EmailJob{
			To:       u.Email,
			Template: mailer.TemplateWelcome,
			Data:     map[string]any{"Name": u.Name},
		}
		if err := s.Pub.PublishJSON(ctx, job); err != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Warn("failed to enqueue welcome email")
		}
	}

	return u, token, nil
}
