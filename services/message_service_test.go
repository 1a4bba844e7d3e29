package services

import (
	"net/http"
	"testing"

	"github.com/teamuphq/teamup/db"
	"github.com/teamuphq/teamup/models"
)

func newMessageFixture(t *testing.T) (MessageService, *db.GormDB, db.MessageRepository) {
	t.Helper()
	gormDB := setupTestDB(t)
	authRepo := db.NewAuthRepo(gormDB)
	messageRepo := db.NewMessageRepo(gormDB)
	service := NewMessageService(authRepo, messageRepo, testConfig())
	return service, gormDB, messageRepo
}

func TestSendMessagePersists(t *testing.T) {
	service, gormDB, _ := newMessageFixture(t)
	alice := createTestUser(t, gormDB, "Alice", "alice@test.dev")
	bob := createTestUser(t, gormDB, "Bob", "bob@test.dev")

	message, apiErr := service.SendMessage(alice.ID, bob.ID, "hey, saw your post about the hackathon", "")
	if apiErr != nil {
		t.Fatalf("unexpected error: %v", apiErr)
	}
	if message.ID == 0 {
		t.Error("expected a persisted message id")
	}
	if message.MessageType != models.MessageTypeText {
		t.Errorf("expected default type text, got %s", message.MessageType)
	}
	if message.Seen {
		t.Error("new messages must start unseen")
	}
	if message.Sender.ID != alice.ID || message.Receiver.ID != bob.ID {
		t.Errorf("expected preloaded endpoints, got sender=%d receiver=%d", message.Sender.ID, message.Receiver.ID)
	}
}

func TestSendMessageEmptyContent(t *testing.T) {
	service, gormDB, _ := newMessageFixture(t)
	alice := createTestUser(t, gormDB, "Alice", "alice@test.dev")
	bob := createTestUser(t, gormDB, "Bob", "bob@test.dev")

	for _, content := range []string{"", "   ", "\n\t"} {
		_, apiErr := service.SendMessage(alice.ID, bob.ID, content, "")
		if apiErr == nil || apiErr.Status != http.StatusBadRequest {
			t.Errorf("content %q: expected 400, got %v", content, apiErr)
		}
	}
}

func TestSendMessageUnknownReceiver(t *testing.T) {
	service, gormDB, _ := newMessageFixture(t)
	alice := createTestUser(t, gormDB, "Alice", "alice@test.dev")

	_, apiErr := service.SendMessage(alice.ID, 9999, "hello", "")
	if apiErr == nil || apiErr.Status != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown receiver, got %v", apiErr)
	}
}

func TestGetMessagesSymmetricAndOrdered(t *testing.T) {
	service, gormDB, _ := newMessageFixture(t)
	alice := createTestUser(t, gormDB, "Alice", "alice@test.dev")
	bob := createTestUser(t, gormDB, "Bob", "bob@test.dev")
	carol := createTestUser(t, gormDB, "Carol", "carol@test.dev")

	contents := []string{"first", "second", "third"}
	senders := []uint{alice.ID, bob.ID, alice.ID}
	receivers := []uint{bob.ID, alice.ID, bob.ID}
	for i := range contents {
		if _, apiErr := service.SendMessage(senders[i], receivers[i], contents[i], ""); apiErr != nil {
			t.Fatalf("unexpected error: %v", apiErr)
		}
	}
	// noise from another pair must not leak into the thread
	if _, apiErr := service.SendMessage(alice.ID, carol.ID, "unrelated", ""); apiErr != nil {
		t.Fatalf("unexpected error: %v", apiErr)
	}

	forward, apiErr := service.GetMessages(alice.ID, bob.ID)
	if apiErr != nil {
		t.Fatalf("unexpected error: %v", apiErr)
	}
	backward, apiErr := service.GetMessages(bob.ID, alice.ID)
	if apiErr != nil {
		t.Fatalf("unexpected error: %v", apiErr)
	}

	if len(forward) != len(contents) || len(backward) != len(contents) {
		t.Fatalf("expected %d messages both ways, got %d and %d", len(contents), len(forward), len(backward))
	}
	for i := range contents {
		if forward[i].Content != contents[i] {
			t.Errorf("position %d: expected %q, got %q", i, contents[i], forward[i].Content)
		}
		if forward[i].ID != backward[i].ID {
			t.Errorf("position %d: history differs between the two participants", i)
		}
	}
}

func TestGetMessagesMarksInboundSeen(t *testing.T) {
	service, gormDB, messageRepo := newMessageFixture(t)
	alice := createTestUser(t, gormDB, "Alice", "alice@test.dev")
	bob := createTestUser(t, gormDB, "Bob", "bob@test.dev")

	for i := 0; i < 3; i++ {
		if _, apiErr := service.SendMessage(alice.ID, bob.ID, "ping", ""); apiErr != nil {
			t.Fatalf("unexpected error: %v", apiErr)
		}
	}
	if _, apiErr := service.SendMessage(bob.ID, alice.ID, "pong", ""); apiErr != nil {
		t.Fatalf("unexpected error: %v", apiErr)
	}

	unread, err := messageRepo.CountUnread(bob.ID, alice.ID)
	if err != nil {
		t.Fatalf("CountUnread error: %v", err)
	}
	if unread != 3 {
		t.Fatalf("expected 3 unread before fetch, got %d", unread)
	}

	if _, apiErr := service.GetMessages(bob.ID, alice.ID); apiErr != nil {
		t.Fatalf("unexpected error: %v", apiErr)
	}

	unread, err = messageRepo.CountUnread(bob.ID, alice.ID)
	if err != nil {
		t.Fatalf("CountUnread error: %v", err)
	}
	if unread != 0 {
		t.Errorf("expected 0 unread after fetch, got %d", unread)
	}

	// bob reading his thread does not touch what alice has not yet read
	unread, err = messageRepo.CountUnread(alice.ID, bob.ID)
	if err != nil {
		t.Fatalf("CountUnread error: %v", err)
	}
	if unread != 1 {
		t.Errorf("expected alice's unread untouched at 1, got %d", unread)
	}
}

func TestGetConversations(t *testing.T) {
	service, gormDB, _ := newMessageFixture(t)
	alice := createTestUser(t, gormDB, "Alice", "alice@test.dev")
	bob := createTestUser(t, gormDB, "Bob", "bob@test.dev")
	carol := createTestUser(t, gormDB, "Carol", "carol@test.dev")

	if _, apiErr := service.SendMessage(alice.ID, bob.ID, "hi bob", ""); apiErr != nil {
		t.Fatalf("unexpected error: %v", apiErr)
	}
	if _, apiErr := service.SendMessage(bob.ID, alice.ID, "hi alice", ""); apiErr != nil {
		t.Fatalf("unexpected error: %v", apiErr)
	}
	if _, apiErr := service.SendMessage(carol.ID, alice.ID, "question about your project", ""); apiErr != nil {
		t.Fatalf("unexpected error: %v", apiErr)
	}

	conversations, apiErr := service.GetConversations(alice.ID)
	if apiErr != nil {
		t.Fatalf("unexpected error: %v", apiErr)
	}
	if len(conversations) != 2 {
		t.Fatalf("expected one conversation per counterparty, got %d", len(conversations))
	}

	// newest conversation first; messages landed in insertion order so carol's
	// thread is the most recent
	if conversations[0].Counterparty.ID != carol.ID {
		t.Errorf("expected carol's conversation first, got user %d", conversations[0].Counterparty.ID)
	}
	if conversations[0].LastMessage.Content != "question about your project" {
		t.Errorf("wrong last message: %q", conversations[0].LastMessage.Content)
	}
	if conversations[0].Unread != 1 {
		t.Errorf("expected 1 unread from carol, got %d", conversations[0].Unread)
	}

	if conversations[1].Counterparty.ID != bob.ID {
		t.Errorf("expected bob's conversation second, got user %d", conversations[1].Counterparty.ID)
	}
	if conversations[1].LastMessage.Content != "hi alice" {
		t.Errorf("wrong last message: %q", conversations[1].LastMessage.Content)
	}
}

func TestGetConversationsAggregatesPerCounterparty(t *testing.T) {
	service, gormDB, _ := newMessageFixture(t)
	alice := createTestUser(t, gormDB, "Alice", "alice@test.dev")
	bob := createTestUser(t, gormDB, "Bob", "bob@test.dev")
	carol := createTestUser(t, gormDB, "Carol", "carol@test.dev")

	if _, apiErr := service.SendMessage(alice.ID, bob.ID, "one", ""); apiErr != nil {
		t.Fatalf("unexpected error: %v", apiErr)
	}
	if _, apiErr := service.SendMessage(bob.ID, alice.ID, "two", ""); apiErr != nil {
		t.Fatalf("unexpected error: %v", apiErr)
	}
	if _, apiErr := service.SendMessage(bob.ID, alice.ID, "three", ""); apiErr != nil {
		t.Fatalf("unexpected error: %v", apiErr)
	}
	if _, apiErr := service.SendMessage(carol.ID, alice.ID, "four", ""); apiErr != nil {
		t.Fatalf("unexpected error: %v", apiErr)
	}

	conversations, apiErr := service.GetConversations(alice.ID)
	if apiErr != nil {
		t.Fatalf("unexpected error: %v", apiErr)
	}
	if len(conversations) != 2 {
		t.Fatalf("expected 2 conversations, got %d", len(conversations))
	}

	if conversations[0].Counterparty.ID != carol.ID || conversations[0].LastMessage.Content != "four" {
		t.Errorf("expected carol's thread first with its newest message, got %+v", conversations[0])
	}
	if conversations[1].Counterparty.ID != bob.ID || conversations[1].LastMessage.Content != "three" {
		t.Errorf("expected bob's thread with its newest message, got %+v", conversations[1])
	}
	if conversations[1].Unread != 2 {
		t.Errorf("expected 2 unread from bob, got %d", conversations[1].Unread)
	}

	// reading the thread drains its unread count
	if _, apiErr := service.GetMessages(alice.ID, bob.ID); apiErr != nil {
		t.Fatalf("unexpected error: %v", apiErr)
	}
	conversations, apiErr = service.GetConversations(alice.ID)
	if apiErr != nil {
		t.Fatalf("unexpected error: %v", apiErr)
	}
	if conversations[1].Unread != 0 {
		t.Errorf("expected 0 unread from bob after reading, got %d", conversations[1].Unread)
	}
}

func TestGetConversationsEmpty(t *testing.T) {
	service, gormDB, _ := newMessageFixture(t)
	alice := createTestUser(t, gormDB, "Alice", "alice@test.dev")

	conversations, apiErr := service.GetConversations(alice.ID)
	if apiErr != nil {
		t.Fatalf("unexpected error: %v", apiErr)
	}
	if len(conversations) != 0 {
		t.Errorf("expected no conversations, got %d", len(conversations))
	}
}
