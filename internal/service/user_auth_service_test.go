package service

import (
	"errors"
	"testing"

	"github.com/fixmart-next/internal/config"
	"github.com/fixmart-next/internal/constants"
	"github.com/fixmart-next/internal/repository"
)

func (f *catalogFixture) newUserAuthService() *UserAuthService {
	cfg := &config.Config{}
	cfg.UserJWT.SecretKey = "test-secret"
	cfg.UserJWT.ExpireHours = 24
	return NewUserAuthService(cfg, repository.NewUserRepository(f.db))
}

func TestUserRegisterAndLogin(t *testing.T) {
	f := setupCatalogFixture(t, "user_register")
	svc := f.newUserAuthService()

	user, token, _, err := svc.Register(RegisterInput{
		Email:    "New.Customer@Example.COM",
		Password: "password123",
	})
	if err != nil {
		t.Fatalf("Register error: %v", err)
	}
	if user.Email != "new.customer@example.com" {
		t.Fatalf("expected lowercased email, got %s", user.Email)
	}
	if user.DisplayName == "" {
		t.Fatalf("expected nickname derived from email")
	}
	if token == "" {
		t.Fatalf("expected token issued on register")
	}

	claims, err := svc.ParseUserJWT(token)
	if err != nil {
		t.Fatalf("ParseUserJWT error: %v", err)
	}
	if claims.UserID != user.ID {
		t.Fatalf("expected claims for user %d, got %d", user.ID, claims.UserID)
	}

	// 邮箱重复注册拒绝（大小写不敏感）
	if _, _, _, err := svc.Register(RegisterInput{Email: "new.customer@example.com", Password: "password123"}); !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}

	if _, _, _, err := svc.Register(RegisterInput{Email: "short@example.com", Password: "1234567"}); !errors.Is(err, ErrInvalidPassword) {
		t.Fatalf("expected ErrInvalidPassword for short password, got %v", err)
	}
	if _, _, _, err := svc.Register(RegisterInput{Email: "not-an-email", Password: "password123"}); !errors.Is(err, ErrInvalidEmail) {
		t.Fatalf("expected ErrInvalidEmail, got %v", err)
	}

	logged, loginToken, _, err := svc.Login("new.customer@example.com", "password123")
	if err != nil {
		t.Fatalf("Login error: %v", err)
	}
	if logged.ID != user.ID || loginToken == "" {
		t.Fatalf("unexpected login result: %+v", logged)
	}
	if _, _, _, err := svc.Login("new.customer@example.com", "wrongpass"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, _, _, err := svc.Login("nobody@example.com", "password123"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown email, got %v", err)
	}
}

func TestUserLoginDisabled(t *testing.T) {
	f := setupCatalogFixture(t, "user_disabled")
	svc := f.newUserAuthService()

	user, _, _, err := svc.Register(RegisterInput{Email: "blocked@example.com", Password: "password123"})
	if err != nil {
		t.Fatalf("Register error: %v", err)
	}
	if err := f.db.Model(user).Update("status", constants.UserStatusDisabled).Error; err != nil {
		t.Fatalf("disable user failed: %v", err)
	}
	if _, _, _, err := svc.Login("blocked@example.com", "password123"); !errors.Is(err, ErrUserDisabled) {
		t.Fatalf("expected ErrUserDisabled, got %v", err)
	}
}

func TestUserChangePasswordInvalidatesToken(t *testing.T) {
	f := setupCatalogFixture(t, "user_passwd")
	svc := f.newUserAuthService()

	user, token, _, err := svc.Register(RegisterInput{Email: "rotate@example.com", Password: "password123"})
	if err != nil {
		t.Fatalf("Register error: %v", err)
	}
	if err := svc.ChangePassword(user.ID, "wrongold", "newpassword1"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for wrong old password, got %v", err)
	}
	if err := svc.ChangePassword(user.ID, "password123", "newpassword1"); err != nil {
		t.Fatalf("ChangePassword error: %v", err)
	}

	// 旧令牌版本号失效
	claims, err := svc.ParseUserJWT(token)
	if err != nil {
		t.Fatalf("ParseUserJWT error: %v", err)
	}
	fresh, err := svc.GetProfile(user.ID)
	if err != nil {
		t.Fatalf("GetProfile error: %v", err)
	}
	if claims.TokenVersion == fresh.TokenVersion {
		t.Fatalf("expected token version bumped after password change")
	}

	if _, _, _, err := svc.Login("rotate@example.com", "newpassword1"); err != nil {
		t.Fatalf("Login with new password error: %v", err)
	}
}

func TestUserUpdateProfile(t *testing.T) {
	f := setupCatalogFixture(t, "user_profile")
	svc := f.newUserAuthService()

	user, _, _, err := svc.Register(RegisterInput{Email: "profile@example.com", Password: "password123"})
	if err != nil {
		t.Fatalf("Register error: %v", err)
	}

	if _, err := svc.UpdateProfile(user.ID, UpdateProfileInput{MonthlyPayment: moneyPtr(-10)}); !errors.Is(err, ErrInvalidPrice) {
		t.Fatalf("expected ErrInvalidPrice, got %v", err)
	}

	name := "老王"
	phone := "13800138000"
	carrier := "联通"
	updated, err := svc.UpdateProfile(user.ID, UpdateProfileInput{
		DisplayName:    &name,
		PhoneNumber:    &phone,
		Carrier:        &carrier,
		MonthlyPayment: moneyPtr(39.99),
	})
	if err != nil {
		t.Fatalf("UpdateProfile error: %v", err)
	}
	if updated.DisplayName != "老王" || updated.PhoneNumber != "13800138000" {
		t.Fatalf("unexpected profile: %+v", updated)
	}
	if updated.MonthlyPayment == nil || updated.MonthlyPayment.String() != "39.99" {
		t.Fatalf("unexpected monthly payment: %+v", updated.MonthlyPayment)
	}
}
