package aarogyam

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
)

// RecordsService handles health records, keyed by patient email.
type RecordsService struct {
	client *Client
}

// Add stores a new health record for a patient. The record payload must
// be syntactically valid JSON; invalid payloads are rejected locally and
// no request is issued.
func (s *RecordsService) Add(ctx context.Context, email string, record json.RawMessage) (*StatusResult, error) {
	if err := requireFields("email", email); err != nil {
		return nil, err
	}
	if err := validateJSONPayload("record_data", record); err != nil {
		return nil, err
	}

	body := map[string]json.RawMessage{
		"email":       mustJSONString(email),
		"record_data": record,
	}
	var resp StatusResult
	if err := s.client.post(ctx, "/add_health_rec", body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Get returns all health records for a patient.
func (s *RecordsService) Get(ctx context.Context, email string) ([]HealthRecord, error) {
	if err := requireFields("email", email); err != nil {
		return nil, err
	}

	body, _, err := s.client.doRaw(ctx, http.MethodGet, "/get_health_rec/"+url.PathEscape(email), nil)
	if err != nil {
		return nil, err
	}

	var resp []HealthRecord
	if decErr := decodeBody(body, &resp); decErr != nil {
		// Single-record responses come back as a bare object.
		var single HealthRecord
		if !looksLikeHTML(body) && json.Unmarshal(body, &single) == nil && len(single.Raw) > 0 {
			return []HealthRecord{single}, nil
		}
		return nil, decErr
	}
	return resp, nil
}

// Update replaces the payload of an existing record.
func (s *RecordsService) Update(ctx context.Context, email, recordID string, record json.RawMessage) (*StatusResult, error) {
	if err := requireFields("email", email, "record_id", recordID); err != nil {
		return nil, err
	}
	if err := validateJSONPayload("record_data", record); err != nil {
		return nil, err
	}

	body := map[string]json.RawMessage{
		"email":       mustJSONString(email),
		"record_id":   mustJSONString(recordID),
		"record_data": record,
	}
	var resp StatusResult
	if err := s.client.post(ctx, "/update_health_rec", body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Delete removes a record.
func (s *RecordsService) Delete(ctx context.Context, email, recordID string) (*StatusResult, error) {
	if err := requireFields("email", email, "record_id", recordID); err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("email", email)
	params.Set("record_id", recordID)

	var resp StatusResult
	if err := s.client.delete(ctx, fmt.Sprintf("/delete_health_rec?%s", params.Encode()), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// validateJSONPayload rejects free-text payloads that are not valid JSON
// before any request is issued.
func validateJSONPayload(field string, payload json.RawMessage) error {
	if len(payload) == 0 {
		return NewValidationError(field, "is required")
	}
	if !json.Valid(payload) {
		return NewValidationError(field, "must be valid JSON")
	}
	return nil
}

// mustJSONString encodes a plain string value as a JSON fragment.
func mustJSONString(s string) json.RawMessage {
	b, _ := json.Marshal(s)
	return b
}
