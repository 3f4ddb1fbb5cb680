package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"vesselos/internal/database"
	"vesselos/internal/domain"
)

func setupHandlerTestDB(t *testing.T) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_fk=1", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}

	if err := db.AutoMigrate(
		&domain.User{},
		&domain.Vessel{},
		&domain.MaintenanceRequest{},
		&domain.Message{},
	); err != nil {
		t.Fatalf("auto migrate: %v", err)
	}

	database.DB = db
	t.Cleanup(func() {
		database.DB = nil
	})
}

func postJSON(t *testing.T, handler http.HandlerFunc, target, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func TestRegisterFirstUserBecomesAdmin(t *testing.T) {
	setupHandlerTestDB(t)
	t.Setenv("JWT_SECRET", "handler-test-secret")

	rec := postJSON(t, registerUser, "/register",
		`{"email":"master@harbor.test","password":"longenough","full_name":"A. Master"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var response map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if response["token"] == "" {
		t.Fatal("expected a token in the response")
	}

	first, err := database.GetUserByEmail("master@harbor.test")
	if err != nil {
		t.Fatalf("load first user: %v", err)
	}
	if first.Role != "admin" {
		t.Fatalf("first user role = %q, want admin", first.Role)
	}

	rec = postJSON(t, registerUser, "/register",
		`{"email":"agent@harbor.test","password":"longenough"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	second, err := database.GetUserByEmail("agent@harbor.test")
	if err != nil {
		t.Fatalf("load second user: %v", err)
	}
	if second.Role != "user" {
		t.Fatalf("second user role = %q, want user", second.Role)
	}
}

func TestRegisterRejectsInvalidInput(t *testing.T) {
	setupHandlerTestDB(t)
	t.Setenv("JWT_SECRET", "handler-test-secret")

	cases := []struct {
		name string
		body string
	}{
		{"bad email", `{"email":"not-an-email","password":"longenough"}`},
		{"short password", `{"email":"master@harbor.test","password":"short"}`},
		{"bad phone", `{"email":"master@harbor.test","password":"longenough","phone":"call-me"}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := postJSON(t, registerUser, "/register", tc.body)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
			}
		})
	}
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	setupHandlerTestDB(t)
	t.Setenv("JWT_SECRET", "handler-test-secret")

	body := `{"email":"master@harbor.test","password":"longenough"}`
	if rec := postJSON(t, registerUser, "/register", body); rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if rec := postJSON(t, registerUser, "/register", body); rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
}

func TestLogin(t *testing.T) {
	setupHandlerTestDB(t)
	t.Setenv("JWT_SECRET", "handler-test-secret")

	if rec := postJSON(t, registerUser, "/register",
		`{"email":"master@harbor.test","password":"longenough"}`); rec.Code != http.StatusCreated {
		t.Fatalf("register failed with %d", rec.Code)
	}

	rec := postJSON(t, loginUser, "/login",
		`{"email":"master@harbor.test","password":"longenough"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var response map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if response["token"] == "" {
		t.Fatal("expected a token in the response")
	}
	if response["role"] != "admin" {
		t.Fatalf("role = %q, want admin", response["role"])
	}

	rec = postJSON(t, loginUser, "/login",
		`{"email":"master@harbor.test","password":"wrong-password"}`)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for wrong password, got %d", rec.Code)
	}
}
