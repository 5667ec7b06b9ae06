package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/gatherhub/eventhub-api/internal/config"
	"github.com/gatherhub/eventhub-api/internal/models"
	"github.com/gatherhub/eventhub-api/internal/store"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupAuth(t *testing.T) *AuthHandler {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	if err := db.AutoMigrate(&models.UserProfile{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	cfg := &config.Config{JWTSecret: "test-secret"}
	return NewAuthHandler(cfg, store.NewProfileStore(db))
}

func TestSignUp(t *testing.T) {
	handler := setupAuth(t)
	ctx := context.Background()

	profile, err := handler.SignUp(ctx, "Alice@Example.com", "hunter2hunter2", models.RoleParticipant, "", "", &ParticipantDetails{
		PhoneNumber: "123",
		Skills:      []string{"go"},
	})
	if err != nil {
		t.Fatalf("SignUp returned error: %v", err)
	}

	if profile.Email != "alice@example.com" {
		t.Errorf("expected normalized email, got %q", profile.Email)
	}
	if profile.DisplayName != "alice" {
		t.Errorf("expected display name from email local part, got %q", profile.DisplayName)
	}
	if profile.PasswordHash == "hunter2hunter2" || profile.PasswordHash == "" {
		t.Error("password must be stored hashed")
	}

	t.Run("duplicate email", func(t *testing.T) {
		_, err := handler.SignUp(ctx, "alice@example.com", "hunter2hunter2", models.RoleParticipant, "", "", nil)
		if !store.IsValidation(err) {
			t.Errorf("expected ValidationError, got %v", err)
		}
	})

	t.Run("short password", func(t *testing.T) {
		_, err := handler.SignUp(ctx, "bob@example.com", "short", models.RoleParticipant, "", "", nil)
		if !store.IsValidation(err) {
			t.Errorf("expected ValidationError, got %v", err)
		}
	})

	t.Run("unknown role", func(t *testing.T) {
		_, err := handler.SignUp(ctx, "bob@example.com", "hunter2hunter2", "superuser", "", "", nil)
		if !store.IsValidation(err) {
			t.Errorf("expected ValidationError, got %v", err)
		}
	})
}

func TestSignIn(t *testing.T) {
	handler := setupAuth(t)
	ctx := context.Background()

	if _, err := handler.SignUp(ctx, "org@example.com", "hunter2hunter2", models.RoleOrganization, "Acme", "Acme Corp", nil); err != nil {
		t.Fatalf("SignUp returned error: %v", err)
	}

	t.Run("success", func(t *testing.T) {
		profile, err := handler.SignIn(ctx, "org@example.com", "hunter2hunter2", models.RoleOrganization)
		if err != nil {
			t.Fatalf("SignIn returned error: %v", err)
		}
		if profile.OrganizationName != "Acme Corp" {
			t.Errorf("expected organization name, got %q", profile.OrganizationName)
		}
	})

	t.Run("role mismatch", func(t *testing.T) {
		_, err := handler.SignIn(ctx, "org@example.com", "hunter2hunter2", models.RoleParticipant)
		if !errors.Is(err, ErrRoleMismatch) {
			t.Fatalf("expected ErrRoleMismatch, got %v", err)
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := handler.SignIn(ctx, "org@example.com", "wrong-password", models.RoleOrganization)
		if !errors.Is(err, store.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := handler.SignIn(ctx, "ghost@example.com", "hunter2hunter2", models.RoleOrganization)
		if !errors.Is(err, store.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestTokenRoundTrip(t *testing.T) {
	handler := setupAuth(t)

	token, err := handler.GenerateToken("uid-1", models.RoleParticipant)
	if err != nil {
		t.Fatalf("GenerateToken returned error: %v", err)
	}

	identity, err := handler.Authorize(context.Background(), CookieName+"="+token)
	if err != nil {
		t.Fatalf("Authorize returned error: %v", err)
	}
	if identity.UID != "uid-1" || identity.Role != models.RoleParticipant {
		t.Errorf("unexpected identity %+v", identity)
	}

	t.Run("missing cookie", func(t *testing.T) {
		if _, err := handler.Authorize(context.Background(), ""); err == nil {
			t.Fatal("expected error without a session cookie")
		}
	})

	t.Run("tampered token", func(t *testing.T) {
		if _, err := handler.Authorize(context.Background(), CookieName+"="+token+"x"); err == nil {
			t.Fatal("expected error for tampered token")
		}
	})
}

func TestHandleMe(t *testing.T) {
	handler := setupAuth(t)
	ctx := context.Background()

	profile, err := handler.SignUp(ctx, "me@example.com", "hunter2hunter2", models.RoleParticipant, "Me", "", nil)
	if err != nil {
		t.Fatalf("SignUp returned error: %v", err)
	}

	token, _ := handler.GenerateToken(profile.UID, profile.Role)
	input := &MeRequest{}
	input.Cookie = CookieName + "=" + token

	resp, err := handler.HandleMe(ctx, input)
	if err != nil {
		t.Fatalf("HandleMe returned error: %v", err)
	}
	if resp.Body.Email != "me@example.com" {
		t.Errorf("expected profile email, got %q", resp.Body.Email)
	}
	t.Run("unauthenticated", func(t *testing.T) {
		if _, err := handler.HandleMe(ctx, &MeRequest{}); err == nil {
			t.Fatal("expected error for unauthenticated request")
		}
	})
}
