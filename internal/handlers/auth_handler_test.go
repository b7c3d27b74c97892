package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	apperrors "folio/internal/errors"
	"folio/internal/models"
	"folio/internal/services"
)

// mockUserService implements services.UserServicer for handler tests.
type mockUserService struct {
	createUserFunc     func(email, password string) (*models.User, error)
	getUserByEmailFunc func(email string) (*models.User, error)
	getUserByIDFunc    func(id string) (*models.User, error)
	verifyPasswordFunc func(user *models.User, password string) bool
}

var _ services.UserServicer = (*mockUserService)(nil)

func (m *mockUserService) CreateUser(email, password string) (*models.User, error) {
	return m.createUserFunc(email, password)
}

func (m *mockUserService) GetUserByEmail(email string) (*models.User, error) {
	return m.getUserByEmailFunc(email)
}

func (m *mockUserService) GetUserByID(id string) (*models.User, error) {
	return m.getUserByIDFunc(id)
}

func (m *mockUserService) VerifyPassword(user *models.User, password string) bool {
	return m.verifyPasswordFunc(user, password)
}

func testUser(id, email string) *models.User {
	u := &models.User{Email: email, PasswordHash: "x"}
	u.ID = id
	return u
}

func authRouter(svc services.UserServicer) *gin.Engine {
	h := NewAuthHandler(svc)
	router := gin.New()
	router.POST("/auth/register", h.Register)
	router.POST("/auth/login", h.Login)
	return router
}

func TestRegister(t *testing.T) {
	svc := &mockUserService{
		createUserFunc: func(email, password string) (*models.User, error) {
			return testUser("018f6d82-7a3e-7cc0-b1a5-2f6a4c9e1d2b", email), nil
		},
	}

	w := doRequest(authRouter(svc), http.MethodPost, "/auth/register", gin.H{
		"email":    "alice@example.com",
		"password": "longenough",
	})

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d (body: %s)", w.Code, w.Body.String())
	}

	body := parseJSON(t, w)
	if body["token"] == nil || body["token"] == "" {
		t.Error("expected a token in the response")
	}
	user, ok := body["user"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected user object, got %v", body["user"])
	}
	if user["email"] != "alice@example.com" {
		t.Errorf("expected email in response, got %v", user["email"])
	}
	if _, leaked := user["passwordHash"]; leaked {
		t.Error("password hash must not be serialized")
	}
}

func TestRegisterValidation(t *testing.T) {
	svc := &mockUserService{
		createUserFunc: func(email, password string) (*models.User, error) {
			t.Fatal("service must not be called on invalid input")
			return nil, nil
		},
	}
	router := authRouter(svc)

	tests := []struct {
		name string
		body gin.H
	}{
		{"missing email", gin.H{"password": "longenough"}},
		{"malformed email", gin.H{"email": "nope", "password": "longenough"}},
		{"short password", gin.H{"email": "a@b.com", "password": "short"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(router, http.MethodPost, "/auth/register", tt.body)
			assertErrorCode(t, w, http.StatusBadRequest, "INVALID_INPUT")
		})
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := &mockUserService{
		createUserFunc: func(email, password string) (*models.User, error) {
			return nil, apperrors.ErrDuplicateEmail
		},
	}

	w := doRequest(authRouter(svc), http.MethodPost, "/auth/register", gin.H{
		"email":    "alice@example.com",
		"password": "longenough",
	})
	assertErrorCode(t, w, http.StatusConflict, "DUPLICATE_EMAIL")
}

func TestLogin(t *testing.T) {
	user := testUser("018f6d82-7a3e-7cc0-b1a5-2f6a4c9e1d2b", "alice@example.com")
	svc := &mockUserService{
		getUserByEmailFunc: func(email string) (*models.User, error) { return user, nil },
		verifyPasswordFunc: func(u *models.User, password string) bool { return password == "correct-pw" },
	}
	router := authRouter(svc)

	w := doRequest(router, http.MethodPost, "/auth/login", gin.H{
		"email":    "alice@example.com",
		"password": "correct-pw",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (body: %s)", w.Code, w.Body.String())
	}
	if parseJSON(t, w)["token"] == nil {
		t.Error("expected a token in the response")
	}

	w = doRequest(router, http.MethodPost, "/auth/login", gin.H{
		"email":    "alice@example.com",
		"password": "wrong-pw",
	})
	assertErrorCode(t, w, http.StatusUnauthorized, "INVALID_CREDENTIALS")
}

func TestLoginUnknownEmailSameError(t *testing.T) {
	svc := &mockUserService{
		getUserByEmailFunc: func(email string) (*models.User, error) {
			return nil, apperrors.ErrUserNotFound
		},
	}

	// Unknown email must be indistinguishable from a wrong password.
	w := doRequest(authRouter(svc), http.MethodPost, "/auth/login", gin.H{
		"email":    "nobody@example.com",
		"password": "whatever",
	})
	assertErrorCode(t, w, http.StatusUnauthorized, "INVALID_CREDENTIALS")
}

func TestGetProfile(t *testing.T) {
	user := testUser("018f6d82-7a3e-7cc0-b1a5-2f6a4c9e1d2b", "alice@example.com")
	svc := &mockUserService{
		getUserByIDFunc: func(id string) (*models.User, error) {
			if id != user.ID {
				t.Errorf("expected lookup of %s, got %s", user.ID, id)
			}
			return user, nil
		},
	}

	h := NewAuthHandler(svc)
	router := gin.New()
	router.GET("/profile", injectUserID(user.ID), h.GetProfile)

	w := doRequest(router, http.MethodGet, "/profile", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}
