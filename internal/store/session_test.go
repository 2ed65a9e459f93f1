package store

import (
	"testing"

	"mealweek/internal/database"
	"mealweek/internal/model"
)

func setupSessionTestDB(t *testing.T) (*SessionStore, *UserStore, *HouseholdStore) {
	t.Helper()
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	return NewSessionStore(db), NewUserStore(db), NewHouseholdStore(db)
}

func createUserAndHousehold(t *testing.T, us *UserStore, hs *HouseholdStore) (*model.User, *model.Household) {
	t.Helper()
	u, err := us.Create("alex@example.com", "Alex", "not-a-real-hash")
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	h, err := hs.Create("Test Household")
	if err != nil {
		t.Fatalf("create household: %v", err)
	}
	if _, err := hs.AddMember(h.ID, u.ID, model.RoleOwner); err != nil {
		t.Fatalf("add member: %v", err)
	}
	return u, h
}

func TestSessionCreateAndLookup(t *testing.T) {
	ss, us, hs := setupSessionTestDB(t)
	u, h := createUserAndHousehold(t, us, hs)

	sess, err := ss.Create(u.ID, h.ID)
	if err != nil {
		t.Fatalf("create session: %v", err)
	}
	if len(sess.Token) != 64 {
		t.Errorf("token length = %d, want 64 hex chars", len(sess.Token))
	}

	got, err := ss.GetByToken(sess.Token)
	if err != nil {
		t.Fatalf("get by token: %v", err)
	}
	if got == nil || got.UserID != u.ID || got.HouseholdID != h.ID {
		t.Errorf("got %+v", got)
	}
}

func TestSessionUnknownToken(t *testing.T) {
	ss, _, _ := setupSessionTestDB(t)

	got, err := ss.GetByToken("nope")
	if err != nil {
		t.Fatalf("get by token: %v", err)
	}
	if got != nil {
		t.Errorf("got %+v, want nil", got)
	}
}

func TestSessionDeleteByUserID(t *testing.T) {
	ss, us, hs := setupSessionTestDB(t)
	u, h := createUserAndHousehold(t, us, hs)

	s1, _ := ss.Create(u.ID, h.ID)
	s2, _ := ss.Create(u.ID, h.ID)

	if err := ss.DeleteByUserID(u.ID); err != nil {
		t.Fatalf("delete by user: %v", err)
	}
	for _, token := range []string{s1.Token, s2.Token} {
		got, _ := ss.GetByToken(token)
		if got != nil {
			t.Errorf("session %q should be gone", token[:8])
		}
	}
}

func TestUserGetByEmail(t *testing.T) {
	_, us, _ := setupSessionTestDB(t)

	created, err := us.Create("alex@example.com", "Alex", "not-a-real-hash")
	if err != nil {
		t.Fatalf("create user: %v", err)
	}

	got, err := us.GetByEmail("alex@example.com")
	if err != nil {
		t.Fatalf("get by email: %v", err)
	}
	if got == nil || got.ID != created.ID {
		t.Errorf("got %+v, want id %d", got, created.ID)
	}

	missing, err := us.GetByEmail("nobody@example.com")
	if err != nil {
		t.Fatalf("get missing: %v", err)
	}
	if missing != nil {
		t.Errorf("got %+v, want nil", missing)
	}
}

func TestGetHouseholdForUser(t *testing.T) {
	_, us, hs := setupSessionTestDB(t)
	u, h := createUserAndHousehold(t, us, hs)

	got, err := hs.GetHouseholdForUser(u.ID)
	if err != nil {
		t.Fatalf("get household for user: %v", err)
	}
	if got == nil || got.ID != h.ID {
		t.Errorf("got %+v, want id %d", got, h.ID)
	}
}
