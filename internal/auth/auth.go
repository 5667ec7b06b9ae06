package auth

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gatherhub/eventhub-api/internal/config"
	"github.com/gatherhub/eventhub-api/internal/models"
	"github.com/gatherhub/eventhub-api/internal/store"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
)

// ErrRoleMismatch means the stored role does not match the role the user
// tried to sign in as. No session is issued when this happens.
var ErrRoleMismatch = errors.New("role mismatch")

const CookieName = "auth_token"

type AuthHandler struct {
	profiles *store.ProfileStore
	cfg      *config.Config
}

func NewAuthHandler(cfg *config.Config, profiles *store.ProfileStore) *AuthHandler {
	return &AuthHandler{profiles: profiles, cfg: cfg}
}

var validRoles = map[models.UserRole]bool{
	models.RoleAdmin:        true,
	models.RoleOrganization: true,
	models.RoleParticipant:  true,
}

// SignUp creates the credential and the profile document. The supplied
// role is permanent.
func (h *AuthHandler) SignUp(ctx context.Context, email, password string, role models.UserRole, displayName, organizationName string, extra *ParticipantDetails) (*models.UserProfile, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, &store.ValidationError{Field: "email", Reason: "a valid email is required"}
	}
	if len(password) < 8 {
		return nil, &store.ValidationError{Field: "password", Reason: "must be at least 8 characters"}
	}
	if !validRoles[role] {
		return nil, &store.ValidationError{Field: "role", Reason: fmt.Sprintf("unknown role %q", role)}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	if displayName == "" {
		displayName = strings.SplitN(email, "@", 2)[0]
	}

	profile := &models.UserProfile{
		UID:              uuid.NewString(),
		Email:            email,
		PasswordHash:     string(hash),
		Role:             role,
		DisplayName:      displayName,
		OrganizationName: organizationName,
		CreatedAt:        time.Now(),
	}
	if extra != nil {
		profile.PhoneNumber = extra.PhoneNumber
		profile.TeamName = extra.TeamName
		profile.Skills = datatypes.NewJSONSlice(extra.Skills)
	}

	if err := h.profiles.Create(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// ParticipantDetails carries the participant-only signup fields.
type ParticipantDetails struct {
	PhoneNumber string
	TeamName    string
	Skills      []string
}

// SignIn verifies the credential, then checks the stored role against the
// role the caller signed in through. A mismatch fails without a session.
func (h *AuthHandler) SignIn(ctx context.Context, email, password string, expectedRole models.UserRole) (*models.UserProfile, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	profile, err := h.profiles.GetByEmail(ctx, email)
	if errors.Is(err, store.ErrNotFound) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(profile.PasswordHash), []byte(password)); err != nil {
		return nil, store.ErrNotFound
	}

	if profile.Role != expectedRole {
		return nil, fmt.Errorf("%w: please use the %s login", ErrRoleMismatch, profile.Role)
	}
	return profile, nil
}

// AuthInput is embedded in protected request structs to pull the session
// cookie off the request.
type AuthInput struct {
	Cookie string `header:"Cookie" doc:"Session cookie"`
}

// Identity is the authenticated actor, passed explicitly into every
// store call that needs it.
type Identity struct {
	UID  string
	Role models.UserRole
}

// Authorize parses and verifies the session cookie and returns the actor
// identity, or a 401 error.
func (h *AuthHandler) Authorize(ctx context.Context, cookieHeader string) (*Identity, error) {
	req := http.Request{Header: http.Header{"Cookie": []string{cookieHeader}}}
	cookie, err := req.Cookie(CookieName)
	if err != nil {
		return nil, huma.Error401Unauthorized("No session token found")
	}

	identity, err := h.ParseToken(cookie.Value)
	if err != nil {
		log.Printf("Rejected session token: %v", err)
		return nil, huma.Error401Unauthorized("Invalid session token")
	}
	return identity, nil
}

// SessionCookie wraps a signed token into the auth cookie.
func (h *AuthHandler) SessionCookie(token string) http.Cookie {
	return http.Cookie{
		Name:     CookieName,
		Value:    token,
		Expires:  time.Now().Add(TokenDuration),
		HttpOnly: true,
		Path:     "/",
	}
}

// ExpiredCookie clears the auth cookie.
func (h *AuthHandler) ExpiredCookie() http.Cookie {
	return http.Cookie{
		Name:     CookieName,
		Value:    "",
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Path:     "/",
	}
}
