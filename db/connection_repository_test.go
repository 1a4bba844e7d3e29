package db

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"

	apiError "github.com/teamuphq/teamup/errors"
	"github.com/teamuphq/teamup/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupConnectionDB(t *testing.T) (*GormDB, ConnectionRepository) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	gormDB, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("could not open test database: %v", err)
	}
	if err := gormDB.AutoMigrate(&models.User{}, &models.ConnectionRequest{}, &models.Connection{}); err != nil {
		t.Fatalf("could not migrate test database: %v", err)
	}

	g := &GormDB{DB: gormDB}
	return g, NewConnectionRepo(g)
}

func seedUser(t *testing.T, g *GormDB, email string) *models.User {
	t.Helper()
	user := &models.User{Name: "User", Email: email, HashedPassword: "x"}
	if err := g.DB.Create(user).Error; err != nil {
		t.Fatalf("could not seed user %s: %v", email, err)
	}
	return user
}

// The pending-pair invariant is enforced by the database itself, not just
// the service's pre-check: a second pending insert for the same ordered pair
// must fail even when it skips the check.
func TestCreateRequestPendingPairUnique(t *testing.T) {
	g, repo := setupConnectionDB(t)
	alice := seedUser(t, g, "alice@test.dev")
	bob := seedUser(t, g, "bob@test.dev")

	if _, err := repo.CreateRequest(&models.ConnectionRequest{
		SenderID: alice.ID, ReceiverID: bob.ID, Status: models.ConnectionRequestStatusPending,
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err := repo.CreateRequest(&models.ConnectionRequest{
		SenderID: alice.ID, ReceiverID: bob.ID, Status: models.ConnectionRequestStatusPending,
	})
	if err == nil {
		t.Fatal("expected the duplicate pending insert to violate the index")
	}
	if apiErr := apiError.GetUniqueContraintError(err); apiErr.Status != http.StatusBadRequest {
		t.Errorf("expected the violation to translate to 400, got %v", apiErr)
	}

	// the opposite direction is a different ordered pair
	if _, err := repo.CreateRequest(&models.ConnectionRequest{
		SenderID: bob.ID, ReceiverID: alice.ID, Status: models.ConnectionRequestStatusPending,
	}); err != nil {
		t.Errorf("reverse-direction pending request must be allowed: %v", err)
	}
}

// The index is partial: resolved requests do not block a fresh pending one.
func TestCreateRequestAllowedAfterResolution(t *testing.T) {
	g, repo := setupConnectionDB(t)
	alice := seedUser(t, g, "alice@test.dev")
	bob := seedUser(t, g, "bob@test.dev")

	first, err := repo.CreateRequest(&models.ConnectionRequest{
		SenderID: alice.ID, ReceiverID: bob.ID, Status: models.ConnectionRequestStatusPending,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := repo.UpdateRequestStatus(first.ID, models.ConnectionRequestStatusRejected); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := repo.CreateRequest(&models.ConnectionRequest{
		SenderID: alice.ID, ReceiverID: bob.ID, Status: models.ConnectionRequestStatusPending,
	}); err != nil {
		t.Errorf("fresh request after rejection must be allowed: %v", err)
	}
}

// Resolving a request is a compare-and-swap: of two racing resolutions only
// the first may succeed, and the loser must not overwrite the terminal state.
func TestUpdateRequestStatusResolvesOnce(t *testing.T) {
	g, repo := setupConnectionDB(t)
	alice := seedUser(t, g, "alice@test.dev")
	bob := seedUser(t, g, "bob@test.dev")

	request, err := repo.CreateRequest(&models.ConnectionRequest{
		SenderID: alice.ID, ReceiverID: bob.ID, Status: models.ConnectionRequestStatusPending,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := repo.UpdateRequestStatus(request.ID, models.ConnectionRequestStatusAccepted); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	err = repo.UpdateRequestStatus(request.ID, models.ConnectionRequestStatusRejected)
	if !errors.Is(err, ErrRequestResolved) {
		t.Fatalf("expected ErrRequestResolved for the losing resolution, got %v", err)
	}

	got, err := repo.FindRequestByID(request.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Status != models.ConnectionRequestStatusAccepted {
		t.Errorf("terminal status must be immutable, got %s", got.Status)
	}
}
