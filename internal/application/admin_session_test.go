package application_test

import (
	"context"
	"testing"

	"github.com/example/appointment-booking/internal/application"
	"github.com/example/appointment-booking/internal/persistence"
	"github.com/example/appointment-booking/internal/testfixtures"
)

func TestAdminSession_LoginLogout(t *testing.T) {
	ctx := context.Background()
	store := testfixtures.NewMemoryStore(t, nil)
	session := application.NewAdminSession(store, "", nil)

	ok, err := session.Login(ctx, "wrong")
	if err != nil || ok {
		t.Fatalf("expected rejected password, got ok=%v err=%v", ok, err)
	}
	if _, found, _ := store.Get(ctx, persistence.KeyAdminAuth); found {
		t.Fatalf("a rejected login must not persist anything")
	}

	ok, err = session.Login(ctx, application.DefaultAdminPassword)
	if err != nil || !ok {
		t.Fatalf("expected login to succeed, got ok=%v err=%v", ok, err)
	}
	raw, found, _ := store.Get(ctx, persistence.KeyAdminAuth)
	if !found || raw != `{"isAuthenticated":true}` {
		t.Fatalf("unexpected persisted session %q found=%v", raw, found)
	}

	restored := application.NewAdminSession(store, "", nil)
	if err := restored.Restore(ctx); err != nil {
		t.Fatalf("Restore returned error: %v", err)
	}
	if !restored.IsAdmin() {
		t.Fatalf("expected restored session to be signed in")
	}

	if err := restored.Logout(ctx); err != nil {
		t.Fatalf("Logout returned error: %v", err)
	}
	if restored.IsAdmin() {
		t.Fatalf("expected session to be signed out")
	}
	if _, found, _ := store.Get(ctx, persistence.KeyAdminAuth); found {
		t.Fatalf("expected logout to remove the persisted session")
	}
}

func TestAdminSession_Restore(t *testing.T) {
	ctx := context.Background()

	t.Run("absent record writes nothing", func(t *testing.T) {
		store := testfixtures.NewMemoryStore(t, nil)
		session := application.NewAdminSession(store, "", nil)
		if err := session.Restore(ctx); err != nil || session.IsAdmin() {
			t.Fatalf("expected signed out session, got admin=%v err=%v", session.IsAdmin(), err)
		}
		if keys, _ := store.List(ctx, ""); len(keys) != 0 {
			t.Fatalf("expected no keys, got %v", keys)
		}
	})

	t.Run("corrupt record stays signed out", func(t *testing.T) {
		store := testfixtures.NewMemoryStore(t, map[string]string{persistence.KeyAdminAuth: "{"})
		session := application.NewAdminSession(store, "", nil)
		if err := session.Restore(ctx); err == nil || session.IsAdmin() {
			t.Fatalf("expected decode error and signed out session, got admin=%v err=%v", session.IsAdmin(), err)
		}
	})

	t.Run("custom password", func(t *testing.T) {
		session := application.NewAdminSession(testfixtures.NewMemoryStore(t, nil), "s3cret", nil)
		if ok, _ := session.Login(ctx, application.DefaultAdminPassword); ok {
			t.Fatalf("the default password must not work once another is configured")
		}
		if ok, _ := session.Login(ctx, "s3cret"); !ok {
			t.Fatalf("expected the configured password to work")
		}
	})
}
