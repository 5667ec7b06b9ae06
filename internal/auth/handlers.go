package auth

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gatherhub/eventhub-api/internal/models"
	"github.com/gatherhub/eventhub-api/internal/store"
)

type SignUpRequest struct {
	Body struct {
		Email            string          `json:"email" doc:"Email address" required:"true"`
		Password         string          `json:"password" doc:"Password, at least 8 characters" required:"true"`
		Role             models.UserRole `json:"role" enum:"admin,organization,participant" doc:"Account role, permanent after signup" required:"true"`
		DisplayName      string          `json:"display_name,omitempty" doc:"Display name, defaults to the email local part"`
		OrganizationName string          `json:"organization_name,omitempty" doc:"Organization name (organization accounts)"`
		PhoneNumber      string          `json:"phone_number,omitempty" doc:"Phone number (participant accounts)"`
		TeamName         string          `json:"team_name,omitempty" doc:"Team name (participant accounts)"`
		Skills           []string        `json:"skills,omitempty" doc:"Skills (participant accounts)"`
	}
}

type SessionResponse struct {
	SetCookie http.Cookie `header:"Set-Cookie"`
	Body      struct {
		UID         string          `json:"uid"`
		Email       string          `json:"email"`
		Role        models.UserRole `json:"role"`
		DisplayName string          `json:"display_name"`
	}
}

func (h *AuthHandler) HandleSignUp(ctx context.Context, input *SignUpRequest) (*SessionResponse, error) {
	var extra *ParticipantDetails
	if input.Body.Role == models.RoleParticipant {
		extra = &ParticipantDetails{
			PhoneNumber: input.Body.PhoneNumber,
			TeamName:    input.Body.TeamName,
			Skills:      input.Body.Skills,
		}
	}

	profile, err := h.SignUp(ctx, input.Body.Email, input.Body.Password, input.Body.Role,
		input.Body.DisplayName, input.Body.OrganizationName, extra)
	if err != nil {
		if store.IsValidation(err) {
			return nil, huma.Error400BadRequest(err.Error())
		}
		return nil, huma.Error500InternalServerError("Failed to sign up: " + err.Error())
	}

	token, err := h.GenerateToken(profile.UID, profile.Role)
	if err != nil {
		return nil, huma.Error500InternalServerError("Failed to generate token: " + err.Error())
	}

	res := &SessionResponse{SetCookie: h.SessionCookie(token)}
	res.Body.UID = profile.UID
	res.Body.Email = profile.Email
	res.Body.Role = profile.Role
	res.Body.DisplayName = profile.DisplayName
	return res, nil
}

type SignInRequest struct {
	Body struct {
		Email    string          `json:"email" doc:"Email address" required:"true"`
		Password string          `json:"password" doc:"Password" required:"true"`
		Role     models.UserRole `json:"role" enum:"admin,organization,participant" doc:"Role of the login page used" required:"true"`
	}
}

func (h *AuthHandler) HandleSignIn(ctx context.Context, input *SignInRequest) (*SessionResponse, error) {
	profile, err := h.SignIn(ctx, input.Body.Email, input.Body.Password, input.Body.Role)
	if errors.Is(err, store.ErrNotFound) {
		return nil, huma.Error401Unauthorized("Invalid email or password")
	}
	if errors.Is(err, ErrRoleMismatch) {
		return nil, huma.Error403Forbidden("Access denied: " + err.Error())
	}
	if err != nil {
		return nil, huma.Error500InternalServerError("Failed to sign in: " + err.Error())
	}

	token, err := h.GenerateToken(profile.UID, profile.Role)
	if err != nil {
		return nil, huma.Error500InternalServerError("Failed to generate token: " + err.Error())
	}

	res := &SessionResponse{SetCookie: h.SessionCookie(token)}
	res.Body.UID = profile.UID
	res.Body.Email = profile.Email
	res.Body.Role = profile.Role
	res.Body.DisplayName = profile.DisplayName
	return res, nil
}

type LogoutRequest struct{}

type LogoutResponse struct {
	SetCookie http.Cookie `header:"Set-Cookie"`
	Body      struct {
		Message string `json:"message"`
	}
}

func (h *AuthHandler) HandleLogout(ctx context.Context, input *LogoutRequest) (*LogoutResponse, error) {
	res := &LogoutResponse{SetCookie: h.ExpiredCookie()}
	res.Body.Message = "Logged out"
	return res, nil
}

type MeRequest struct {
	AuthInput
}

type MeResponse struct {
	Body models.UserProfile
}

func (h *AuthHandler) HandleMe(ctx context.Context, input *MeRequest) (*MeResponse, error) {
	identity, err := h.Authorize(ctx, input.Cookie)
	if err != nil {
		return nil, err
	}

	profile, err := h.profiles.GetByUID(ctx, identity.UID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, huma.Error404NotFound("Profile not found")
	}
	if err != nil {
		return nil, huma.Error500InternalServerError("Failed to load profile: " + err.Error())
	}

	return &MeResponse{Body: *profile}, nil
}
