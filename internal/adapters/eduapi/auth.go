package eduapi

import (
	"context"

	domainauth "github.com/eduhub/eduhub-go/internal/domain/auth"
	apperrors "github.com/eduhub/eduhub-go/internal/errors"
	"github.com/eduhub/eduhub-go/internal/ports"
)

// Ensure compile-time conformance to ports.
var _ ports.AuthGateway = (*Client)(nil)

// dj-rest-auth endpoints. Trailing slashes matter to Django.
const (
	pathLogin                = "/auth/login/"
	pathRegister             = "/auth/register/"
	pathLogout               = "/auth/logout/"
	pathTokenRefresh         = "/auth/token/refresh/"
	pathUser                 = "/auth/user/"
	pathPasswordReset        = "/auth/password/reset/"
	pathPasswordResetConfirm = "/auth/password/reset/confirm/"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerRequest struct {
	Email     string          `json:"email"`
	Password1 string          `json:"password1"`
	Password2 string          `json:"password2"`
	FirstName string          `json:"first_name"`
	LastName  string          `json:"last_name"`
	Role      domainauth.Role `json:"role"`
}

// tokenPairResponse is the shape dj-rest-auth returns from login and
// register. The user object is optional on register.
type tokenPairResponse struct {
	Access  string                  `json:"access"`
	Refresh string                  `json:"refresh"`
	User    *domainauth.UserProfile `json:"user"`
}

type refreshRequest struct {
	Refresh string `json:"refresh"`
}

type refreshResponse struct {
	Access string `json:"access"`
}

// Login authenticates with email and password.
func (c *Client) Login(ctx context.Context, email, password string) (ports.LoginResult, error) {
	var resp tokenPairResponse
	err := c.post(ctx, pathLogin, loginRequest{Email: email, Password: password}, &resp,
		"Login failed. Please check your credentials.")
	if err != nil {
		return ports.LoginResult{}, err
	}
	return ports.LoginResult{
		AccessToken:  resp.Access,
		RefreshToken: resp.Refresh,
		User:         resp.User,
	}, nil
}

// Register creates an account. The display name is split at the first
// whitespace boundary and the password is sent twice, as the backend's
// registration serializer expects.
func (c *Client) Register(ctx context.Context, in ports.RegisterInput) (ports.RegisterResult, error) {
	first, last := domainauth.SplitName(in.Name)
	role := in.Role
	if role == "" {
		role = domainauth.RoleStudent
	}

	var resp tokenPairResponse
	err := c.post(ctx, pathRegister, registerRequest{
		Email:     in.Email,
		Password1: in.Password,
		Password2: in.ConfirmPassword,
		FirstName: first,
		LastName:  last,
		Role:      role,
	}, &resp, "Registration failed. Please try again.")
	if err != nil {
		return ports.RegisterResult{}, err
	}
	return ports.RegisterResult{
		AccessToken:  resp.Access,
		RefreshToken: resp.Refresh,
		User:         resp.User,
	}, nil
}

// Logout tells the server to blacklist the refresh token. It is best-effort:
// any failure is logged and swallowed so local sign-out always proceeds.
func (c *Client) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	err := c.post(ctx, pathLogout, refreshRequest{Refresh: refreshToken}, nil,
		"Logout failed.")
	if err != nil {
		c.logger.WarnContext(ctx, "server-side logout failed", "error", err)
	}
	return nil
}

// RefreshAccessToken exchanges the refresh token for a new access token. Any
// rejection by the token endpoint means the refresh token is no longer
// usable, so the caller must treat it as end of session.
func (c *Client) RefreshAccessToken(ctx context.Context, refreshToken string) (string, error) {
	var resp refreshResponse
	err := c.post(ctx, pathTokenRefresh, refreshRequest{Refresh: refreshToken}, &resp,
		"Your session has expired. Please sign in again.")
	if err != nil {
		if apperrors.IsNetwork(err) || apperrors.IsServer(err) {
			return "", err
		}
		return "", apperrors.Wrap(err, apperrors.ErrCodeRefreshInvalid,
			"Your session has expired. Please sign in again.")
	}
	return resp.Access, nil
}

// CurrentUser fetches the authenticated user's profile.
func (c *Client) CurrentUser(ctx context.Context) (domainauth.UserProfile, error) {
	var user domainauth.UserProfile
	err := c.get(ctx, pathUser, nil, &user, "Could not load your profile.")
	if err != nil {
		return domainauth.UserProfile{}, err
	}
	return user, nil
}

// UpdateProfile submits a partial profile update. Only non-nil patch fields
// are sent, so untouched fields keep their server-side values.
func (c *Client) UpdateProfile(ctx context.Context, patch ports.ProfilePatch) (domainauth.UserProfile, error) {
	fields := make(map[string]any)
	if patch.FirstName != nil {
		fields["first_name"] = *patch.FirstName
	}
	if patch.LastName != nil {
		fields["last_name"] = *patch.LastName
	}
	if patch.Bio != nil {
		fields["bio"] = *patch.Bio
	}
	if patch.Location != nil {
		fields["location"] = *patch.Location
	}
	if patch.Skills != nil {
		fields["skills"] = *patch.Skills
	}
	if patch.Interests != nil {
		fields["interests"] = *patch.Interests
	}

	var user domainauth.UserProfile
	err := c.patch(ctx, pathUser, fields, &user, "Could not update your profile.")
	if err != nil {
		return domainauth.UserProfile{}, err
	}
	return user, nil
}

// RequestPasswordReset asks the backend to email a reset link.
func (c *Client) RequestPasswordReset(ctx context.Context, email string) error {
	return c.post(ctx, pathPasswordReset, map[string]string{"email": email}, nil,
		"Could not request a password reset.")
}

// ConfirmPasswordReset completes a reset started from an emailed link.
func (c *Client) ConfirmPasswordReset(ctx context.Context, uid, token, newPassword string) error {
	body := map[string]string{
		"uid":           uid,
		"token":         token,
		"new_password1": newPassword,
		"new_password2": newPassword,
	}
	return c.post(ctx, pathPasswordResetConfirm, body, nil,
		"Could not reset your password.")
}
