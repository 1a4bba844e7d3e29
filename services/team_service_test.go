package services

import (
	"net/http"
	"testing"

	"github.com/teamuphq/teamup/db"
	"github.com/teamuphq/teamup/models"
)

func newTeamFixture(t *testing.T) (TeamService, *db.GormDB) {
	t.Helper()
	gormDB := setupTestDB(t)
	service := NewTeamService(db.NewTeamRepo(gormDB), db.NewAuthRepo(gormDB), testConfig())
	return service, gormDB
}

func hasMember(team *models.Team, userID uint) bool {
	for _, m := range team.Members {
		if m.ID == userID {
			return true
		}
	}
	return false
}

func TestCreateTeamAddsCreatorAsMember(t *testing.T) {
	service, gormDB := newTeamFixture(t)
	alice := createTestUser(t, gormDB, "Alice", "alice@test.dev")

	team, apiErr := service.CreateTeam(alice.ID, &models.Team{Name: "Robotics Club", Description: "we build robots"})
	if apiErr != nil {
		t.Fatalf("unexpected error: %v", apiErr)
	}
	if team.CreatedBy != alice.ID {
		t.Errorf("expected creator %d, got %d", alice.ID, team.CreatedBy)
	}
	if !hasMember(team, alice.ID) {
		t.Error("creator must be a member of the new team")
	}

	teams, apiErr := service.GetUserTeams(alice.ID)
	if apiErr != nil {
		t.Fatalf("unexpected error: %v", apiErr)
	}
	if len(teams) != 1 || teams[0].ID != team.ID {
		t.Errorf("expected the new team in alice's list, got %+v", teams)
	}
}

func TestAddMemberRequiresMembership(t *testing.T) {
	service, gormDB := newTeamFixture(t)
	alice := createTestUser(t, gormDB, "Alice", "alice@test.dev")
	bob := createTestUser(t, gormDB, "Bob", "bob@test.dev")
	carol := createTestUser(t, gormDB, "Carol", "carol@test.dev")

	team, apiErr := service.CreateTeam(alice.ID, &models.Team{Name: "Robotics Club"})
	if apiErr != nil {
		t.Fatalf("unexpected error: %v", apiErr)
	}

	// an outsider cannot invite anyone
	if _, apiErr := service.AddMember(bob.ID, team.ID, carol.ID); apiErr == nil || apiErr.Status != http.StatusForbidden {
		t.Fatalf("expected 403 for a non-member, got %v", apiErr)
	}

	updated, apiErr := service.AddMember(alice.ID, team.ID, bob.ID)
	if apiErr != nil {
		t.Fatalf("unexpected error: %v", apiErr)
	}
	if !hasMember(updated, bob.ID) {
		t.Error("expected bob added to the team")
	}

	// once a member, bob can invite too
	updated, apiErr = service.AddMember(bob.ID, team.ID, carol.ID)
	if apiErr != nil {
		t.Fatalf("unexpected error: %v", apiErr)
	}
	if !hasMember(updated, carol.ID) {
		t.Error("expected carol added to the team")
	}

	if _, apiErr := service.AddMember(alice.ID, team.ID, 9999); apiErr == nil || apiErr.Status != http.StatusNotFound {
		t.Errorf("expected 404 adding an unknown user, got %v", apiErr)
	}
}

func TestRemoveMember(t *testing.T) {
	service, gormDB := newTeamFixture(t)
	alice := createTestUser(t, gormDB, "Alice", "alice@test.dev")
	bob := createTestUser(t, gormDB, "Bob", "bob@test.dev")

	team, apiErr := service.CreateTeam(alice.ID, &models.Team{Name: "Robotics Club"})
	if apiErr != nil {
		t.Fatalf("unexpected error: %v", apiErr)
	}
	if _, apiErr := service.AddMember(alice.ID, team.ID, bob.ID); apiErr != nil {
		t.Fatalf("unexpected error: %v", apiErr)
	}

	updated, apiErr := service.RemoveMember(alice.ID, team.ID, bob.ID)
	if apiErr != nil {
		t.Fatalf("unexpected error: %v", apiErr)
	}
	if hasMember(updated, bob.ID) {
		t.Error("expected bob removed from the team")
	}

	teams, apiErr := service.GetUserTeams(bob.ID)
	if apiErr != nil {
		t.Fatalf("unexpected error: %v", apiErr)
	}
	if len(teams) != 0 {
		t.Errorf("expected no teams for bob, got %d", len(teams))
	}
}

func TestDeleteTeamCreatorOnly(t *testing.T) {
	service, gormDB := newTeamFixture(t)
	alice := createTestUser(t, gormDB, "Alice", "alice@test.dev")
	bob := createTestUser(t, gormDB, "Bob", "bob@test.dev")

	team, apiErr := service.CreateTeam(alice.ID, &models.Team{Name: "Robotics Club"})
	if apiErr != nil {
		t.Fatalf("unexpected error: %v", apiErr)
	}
	if _, apiErr := service.AddMember(alice.ID, team.ID, bob.ID); apiErr != nil {
		t.Fatalf("unexpected error: %v", apiErr)
	}

	if apiErr := service.DeleteTeam(bob.ID, team.ID); apiErr == nil || apiErr.Status != http.StatusForbidden {
		t.Fatalf("expected 403 for a non-creator, got %v", apiErr)
	}
	if apiErr := service.DeleteTeam(alice.ID, team.ID); apiErr != nil {
		t.Fatalf("unexpected error: %v", apiErr)
	}
	if apiErr := service.DeleteTeam(alice.ID, team.ID); apiErr == nil || apiErr.Status != http.StatusNotFound {
		t.Errorf("expected 404 for a deleted team, got %v", apiErr)
	}
}
