package aarogyam

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
)

// PractitionersService handles practitioner registration and listing.
type PractitionersService struct {
	client *Client
}

// RegisterPractitionerRequest is the request for registering a practitioner.
type RegisterPractitionerRequest struct {
	// Name is the practitioner's display name (required).
	Name string `json:"name"`
	// Email is the practitioner's contact email (required).
	Email string `json:"email"`
	// Speciality is the practitioner's speciality (required).
	Speciality string `json:"speciality"`
}

// Register registers a new practitioner. Like hospital registration, the
// backend may answer with plain text; a text body on a 2xx becomes the
// result message.
func (s *PractitionersService) Register(ctx context.Context, req RegisterPractitionerRequest) (*StatusResult, error) {
	if err := requireFields("name", req.Name, "email", req.Email, "speciality", req.Speciality); err != nil {
		return nil, err
	}

	body, _, err := s.client.doRaw(ctx, http.MethodPost, "/register_practitioner", req)
	if err != nil {
		return nil, err
	}

	var resp StatusResult
	if json.Unmarshal(body, &resp) == nil && resp.Message != "" {
		return &resp, nil
	}
	return &StatusResult{Message: strings.TrimSpace(string(body))}, nil
}

// List returns all registered practitioners.
func (s *PractitionersService) List(ctx context.Context) ([]Practitioner, error) {
	var resp []Practitioner
	if err := s.client.get(ctx, "/all_practitioners", &resp); err != nil {
		return nil, err
	}
	return resp, nil
}
