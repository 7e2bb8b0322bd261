package aarogyam

import (
	"context"
)

// AuthService handles account creation and sign-in.
type AuthService struct {
	client *Client
}

// SignUpRequest is the request for creating an account.
type SignUpRequest struct {
	// Email is the account email (required).
	Email string `json:"email"`
	// Password is the account password (required).
	Password string `json:"password"`
	// Name is the display name (required).
	Name string `json:"name"`
}

// Credentials is the outcome of a successful sign-in: the issued token
// and the identity to attach to the session. The token is opaque; the
// client never validates it locally.
type Credentials struct {
	Token string
	User  User
}

// signInResponse is the wire format of the sign-in endpoints.
type signInResponse struct {
	Token   string `json:"token"`
	Name    string `json:"name"`
	Message string `json:"message"`
}

// SignUp creates a new patient account.
func (s *AuthService) SignUp(ctx context.Context, req SignUpRequest) (*StatusResult, error) {
	if err := requireFields("email", req.Email, "password", req.Password, "name", req.Name); err != nil {
		return nil, err
	}

	var resp StatusResult
	if err := s.client.post(ctx, "/signup", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// SignIn authenticates a patient account. A response without a token is
// an error; it never yields credentials, so a token-less response can
// never transition a session store to authenticated.
func (s *AuthService) SignIn(ctx context.Context, email, password string) (*Credentials, error) {
	return s.signIn(ctx, "/signin", email, password, RoleUser)
}

// SignInAdmin authenticates against the admin sign-in endpoint. The
// resulting identity carries the admin role.
func (s *AuthService) SignInAdmin(ctx context.Context, email, password string) (*Credentials, error) {
	return s.signIn(ctx, "/signin_admin", email, password, RoleAdmin)
}

func (s *AuthService) signIn(ctx context.Context, path, email, password string, role Role) (*Credentials, error) {
	if err := requireFields("email", email, "password", password); err != nil {
		return nil, err
	}

	body := map[string]string{"email": email, "password": password}
	var resp signInResponse
	if err := s.client.post(ctx, path, body, &resp); err != nil {
		return nil, err
	}
	if resp.Token == "" {
		return nil, ErrMissingToken
	}

	name := resp.Name
	if name == "" {
		name = "User"
	}

	return &Credentials{
		Token: resp.Token,
		User:  User{Email: email, Name: name, Role: role},
	}, nil
}
