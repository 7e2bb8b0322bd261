package aarogyam

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"strings"
)

// HospitalsService handles hospital registration and listing.
type HospitalsService struct {
	client *Client
}

// RegisterHospitalRequest is the request for registering a hospital.
// This endpoint takes multipart form data rather than JSON.
type RegisterHospitalRequest struct {
	// Name is the hospital name (required).
	Name string
	// Email is the hospital account email (required).
	Email string
	// Password is the hospital account password (required).
	Password string
}

// RegisterHospitalResult is the registration acknowledgement. The
// backend sometimes answers this endpoint with plain text; a text body
// on a 2xx lands in Message rather than failing the call.
type RegisterHospitalResult struct {
	Message string `json:"message"`
	Success bool   `json:"success"`
}

// Register registers a new hospital account.
func (s *HospitalsService) Register(ctx context.Context, req RegisterHospitalRequest) (*RegisterHospitalResult, error) {
	if err := requireFields("name", req.Name, "email", req.Email, "password", req.Password); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)
	for field, value := range map[string]string{
		"name":     req.Name,
		"email":    req.Email,
		"password": req.Password,
	} {
		if err := form.WriteField(field, value); err != nil {
			return nil, &Error{Code: CodeConnection, Message: "failed to build form: " + err.Error()}
		}
	}
	if err := form.Close(); err != nil {
		return nil, &Error{Code: CodeConnection, Message: "failed to build form: " + err.Error()}
	}

	body, _, err := s.client.postForm(ctx, "/register_hospital", form.FormDataContentType(), &buf)
	if err != nil {
		return nil, err
	}

	var result RegisterHospitalResult
	if json.Unmarshal(body, &result) == nil && result.Message != "" {
		result.Success = true
		return &result, nil
	}
	return &RegisterHospitalResult{
		Message: strings.TrimSpace(string(body)),
		Success: true,
	}, nil
}

// List returns all registered hospitals. Malformed bodies surface as a
// normalized *Error, never as a decode panic.
func (s *HospitalsService) List(ctx context.Context) ([]Hospital, error) {
	var resp []Hospital
	if err := s.client.get(ctx, "/get_hospitals", &resp); err != nil {
		return nil, err
	}
	return resp, nil
}
