package services

import (
	"testing"

	"folio/internal/testutil"
)

func TestCreateUser(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	svc := NewUserService(db)

	user, err := svc.CreateUser("Alice@Example.com", "secret123")
	testutil.AssertNoError(t, err)

	if user.ID == "" {
		t.Error("expected user ID to be set")
	}
	if user.Email != "alice@example.com" {
		t.Errorf("expected email to be lowercased, got %q", user.Email)
	}
	if user.PasswordHash == "secret123" {
		t.Error("password must not be stored in plaintext")
	}
	if !svc.VerifyPassword(user, "secret123") {
		t.Error("expected password to verify against stored hash")
	}
	if svc.VerifyPassword(user, "wrong") {
		t.Error("expected wrong password to fail verification")
	}
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	svc := NewUserService(db)

	_, err := svc.CreateUser("bob@example.com", "secret123")
	testutil.AssertNoError(t, err)

	// Same email, different casing.
	_, err = svc.CreateUser("BOB@example.com", "other456")
	testutil.AssertAppError(t, err, "DUPLICATE_EMAIL")
}

func TestCreateUserMissingFields(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	svc := NewUserService(db)

	_, err := svc.CreateUser("", "secret123")
	testutil.AssertAppError(t, err, "INVALID_INPUT")

	_, err = svc.CreateUser("carol@example.com", "")
	testutil.AssertAppError(t, err, "INVALID_INPUT")
}

func TestGetUserByEmail(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	svc := NewUserService(db)
	created := testutil.CreateTestUser(t, db)

	user, err := svc.GetUserByEmail(created.Email)
	testutil.AssertNoError(t, err)
	if user.ID != created.ID {
		t.Errorf("expected user %s, got %s", created.ID, user.ID)
	}

	_, err = svc.GetUserByEmail("nobody@example.com")
	testutil.AssertAppError(t, err, "USER_NOT_FOUND")
}

func TestGetUserByID(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	svc := NewUserService(db)
	created := testutil.CreateTestUser(t, db)

	user, err := svc.GetUserByID(created.ID)
	testutil.AssertNoError(t, err)
	if user.Email != created.Email {
		t.Errorf("expected email %q, got %q", created.Email, user.Email)
	}

	_, err = svc.GetUserByID("018f0000-0000-7000-8000-000000000000")
	testutil.AssertAppError(t, err, "USER_NOT_FOUND")
}
