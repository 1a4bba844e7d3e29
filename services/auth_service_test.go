package services

import (
	"net/http"
	"strings"
	"testing"

	"github.com/teamuphq/teamup/db"
	"github.com/teamuphq/teamup/models"
)

func newAuthFixture(t *testing.T) (AuthService, db.AuthRepository, *db.GormDB) {
	t.Helper()
	gormDB := setupTestDB(t)
	authRepo := db.NewAuthRepo(gormDB)
	service := NewAuthService(authRepo, nil, testConfig())
	return service, authRepo, gormDB
}

func TestSignupAndLogin(t *testing.T) {
	service, _, _ := newAuthFixture(t)

	user, apiErr := service.SignupUser(&models.SignupRequest{
		Name:     "Alice",
		Email:    "alice@test.dev",
		Password: "secret123",
	})
	if apiErr != nil {
		t.Fatalf("unexpected error: %v", apiErr)
	}
	if user.HashedPassword == "secret123" || user.HashedPassword == "" {
		t.Error("password must be stored hashed")
	}

	login, apiErr := service.LoginUser(&models.LoginRequest{Email: "alice@test.dev", Password: "secret123"})
	if apiErr != nil {
		t.Fatalf("unexpected error: %v", apiErr)
	}
	if login.AccessToken == "" {
		t.Error("expected an access token")
	}
	if login.ID != user.ID {
		t.Errorf("expected user %d in login response, got %d", user.ID, login.ID)
	}
}

func TestSignupDuplicateEmail(t *testing.T) {
	service, _, _ := newAuthFixture(t)

	request := &models.SignupRequest{Name: "Alice", Email: "alice@test.dev", Password: "secret123"}
	if _, apiErr := service.SignupUser(request); apiErr != nil {
		t.Fatalf("unexpected error: %v", apiErr)
	}
	_, apiErr := service.SignupUser(&models.SignupRequest{Name: "Other Alice", Email: "alice@test.dev", Password: "secret456"})
	if apiErr == nil || apiErr.Status != http.StatusBadRequest {
		t.Fatalf("expected 400 for duplicate email, got %v", apiErr)
	}
}

func TestSignupShortPassword(t *testing.T) {
	service, _, _ := newAuthFixture(t)

	_, apiErr := service.SignupUser(&models.SignupRequest{Name: "Alice", Email: "alice@test.dev", Password: "short"})
	if apiErr == nil || apiErr.Status != http.StatusBadRequest {
		t.Fatalf("expected 400 for a short password, got %v", apiErr)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	service, _, _ := newAuthFixture(t)

	if _, apiErr := service.SignupUser(&models.SignupRequest{Name: "Alice", Email: "alice@test.dev", Password: "secret123"}); apiErr != nil {
		t.Fatalf("unexpected error: %v", apiErr)
	}

	_, apiErr := service.LoginUser(&models.LoginRequest{Email: "alice@test.dev", Password: "wrong"})
	if apiErr == nil || apiErr.Status != http.StatusBadRequest {
		t.Fatalf("expected 400 for a wrong password, got %v", apiErr)
	}
	// unknown email gets the same answer so the endpoint does not leak accounts
	_, apiErr = service.LoginUser(&models.LoginRequest{Email: "nobody@test.dev", Password: "whatever"})
	if apiErr == nil || apiErr.Status != http.StatusBadRequest {
		t.Fatalf("expected 400 for an unknown email, got %v", apiErr)
	}
}

func TestLoginBlockedUser(t *testing.T) {
	service, _, gormDB := newAuthFixture(t)

	user, apiErr := service.SignupUser(&models.SignupRequest{Name: "Alice", Email: "alice@test.dev", Password: "secret123"})
	if apiErr != nil {
		t.Fatalf("unexpected error: %v", apiErr)
	}
	if err := gormDB.DB.Model(&models.User{}).Where("id = ?", user.ID).Update("is_blocked", true).Error; err != nil {
		t.Fatalf("could not block user: %v", err)
	}

	_, apiErr = service.LoginUser(&models.LoginRequest{Email: "alice@test.dev", Password: "secret123"})
	if apiErr == nil || apiErr.Status != http.StatusForbidden {
		t.Fatalf("expected 403 for a blocked account, got %v", apiErr)
	}
}

func TestLogoutBlacklistsToken(t *testing.T) {
	service, authRepo, _ := newAuthFixture(t)

	if apiErr := service.LogoutUser("some-access-token"); apiErr != nil {
		t.Fatalf("unexpected error: %v", apiErr)
	}
	if !authRepo.IsTokenInBlacklist("some-access-token") {
		t.Error("expected the token in the blacklist")
	}
	if authRepo.IsTokenInBlacklist("another-token") {
		t.Error("unrelated token must not be blacklisted")
	}
}

func TestEditUserProfile(t *testing.T) {
	service, _, _ := newAuthFixture(t)

	user, apiErr := service.SignupUser(&models.SignupRequest{Name: "Alice", Email: "alice@test.dev", Password: "secret123"})
	if apiErr != nil {
		t.Fatalf("unexpected error: %v", apiErr)
	}

	updated, apiErr := service.EditUserProfile(user.ID, &models.EditProfileRequest{
		Bio:         "building things",
		Branch:      "CSE",
		YearOfStudy: 3,
		Skills:      []string{" Go ", "POSTGRES", ""},
		Interests:   []string{"distributed systems"},
	})
	if apiErr != nil {
		t.Fatalf("unexpected error: %v", apiErr)
	}
	if updated.Bio != "building things" || updated.Branch != "CSE" || updated.YearOfStudy != 3 {
		t.Errorf("profile fields not applied: %+v", updated)
	}
	if len(updated.Skills) != 2 || updated.Skills[0] != "go" || updated.Skills[1] != "postgres" {
		t.Errorf("expected normalized skills, got %v", updated.Skills)
	}
	if updated.Name != "Alice" {
		t.Errorf("empty name must not overwrite the existing one, got %q", updated.Name)
	}
}

func TestEditUserProfileValidation(t *testing.T) {
	service, _, _ := newAuthFixture(t)

	user, apiErr := service.SignupUser(&models.SignupRequest{Name: "Alice", Email: "alice@test.dev", Password: "secret123"})
	if apiErr != nil {
		t.Fatalf("unexpected error: %v", apiErr)
	}

	_, apiErr = service.EditUserProfile(user.ID, &models.EditProfileRequest{
		Bio: strings.Repeat("x", 201),
	})
	if apiErr == nil || apiErr.Status != http.StatusBadRequest {
		t.Errorf("expected 400 for an oversized bio, got %v", apiErr)
	}

	_, apiErr = service.EditUserProfile(user.ID, &models.EditProfileRequest{
		YearOfStudy: 9,
	})
	if apiErr == nil || apiErr.Status != http.StatusBadRequest {
		t.Errorf("expected 400 for an out-of-range year, got %v", apiErr)
	}

	// the zero year means "leave unset", not a violation
	if _, apiErr := service.EditUserProfile(user.ID, &models.EditProfileRequest{Bio: "ok"}); apiErr != nil {
		t.Errorf("unexpected error: %v", apiErr)
	}
}

func TestGetAllUsersFilter(t *testing.T) {
	service, authRepo, _ := newAuthFixture(t)

	seed := []models.User{
		{Name: "Alice", Email: "alice@test.dev", Branch: "CSE", YearOfStudy: 3, Skills: []string{"go", "postgres"}},
		{Name: "Bob", Email: "bob@test.dev", Branch: "ECE", YearOfStudy: 2, Skills: []string{"verilog"}},
		{Name: "Carol", Email: "carol@test.dev", Branch: "CSE", YearOfStudy: 2, Skills: []string{"go"}},
	}
	for i := range seed {
		seed[i].HashedPassword = "x"
		if _, err := authRepo.CreateUser(&seed[i]); err != nil {
			t.Fatalf("could not seed user: %v", err)
		}
	}

	byBranch, apiErr := service.GetAllUsers(&models.UserFilter{Branch: "CSE"})
	if apiErr != nil {
		t.Fatalf("unexpected error: %v", apiErr)
	}
	if len(byBranch) != 2 {
		t.Errorf("expected 2 CSE users, got %d", len(byBranch))
	}

	bySkill, apiErr := service.GetAllUsers(&models.UserFilter{Skill: "go", YearOfStudy: 2})
	if apiErr != nil {
		t.Fatalf("unexpected error: %v", apiErr)
	}
	if len(bySkill) != 1 || bySkill[0].Name != "Carol" {
		t.Errorf("expected only Carol, got %+v", bySkill)
	}

	bySearch, apiErr := service.GetAllUsers(&models.UserFilter{Search: "Bo"})
	if apiErr != nil {
		t.Fatalf("unexpected error: %v", apiErr)
	}
	if len(bySearch) != 1 || bySearch[0].Name != "Bob" {
		t.Errorf("expected only Bob, got %+v", bySearch)
	}
}
