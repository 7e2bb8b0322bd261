// Package aarogyam provides the Go client for the Aarogyam
// hospital-management API: authentication, appointments, health records,
// hospitals, practitioners and generic FHIR resources.
//
// The package also owns the client-side session state (token + signed-in
// user) persisted between runs, and the route gate that decides whether a
// surface may be shown for the current session.
package aarogyam

import (
	"bytes"
	"encoding/json"
)

// Role is the access level recorded for a signed-in user.
type Role string

const (
	// RoleUser is a regular patient account.
	RoleUser Role = "user"
	// RoleAdmin is a hospital administrator account.
	RoleAdmin Role = "admin"
)

// User is the identity attached to a session. The backend's sign-in
// response carries no role; the role records which sign-in endpoint
// succeeded.
type User struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  Role   `json:"role"`
}

// Appointment is a booked slot with a provider. The backend owns the
// record; the client holds a transient copy for display.
type Appointment struct {
	ID           string `json:"id"`
	ProviderID   string `json:"provider_id,omitempty"`
	ProviderName string `json:"provider_name,omitempty"`
	UserID       string `json:"user_id,omitempty"`
	UserName     string `json:"user_name,omitempty"`
	Date         string `json:"date"`
	Time         string `json:"time"`
}

// Hospital is a registered hospital account.
type Hospital struct {
	ID    string `json:"id,omitempty"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
}

// Practitioner is a care provider available for booking.
type Practitioner struct {
	ID         string `json:"id,omitempty"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Speciality string `json:"speciality"`
}

// HealthRecord is an arbitrary clinical payload keyed by patient email.
// The payload shape is owned by whoever wrote it; the client keeps the
// raw JSON and surfaces only the record id.
type HealthRecord struct {
	ID  string
	Raw json.RawMessage
}

// UnmarshalJSON keeps the full payload and lifts the id out of it.
func (r *HealthRecord) UnmarshalJSON(data []byte) error {
	var probe struct {
		ID       string `json:"id"`
		RecordID string `json:"record_id"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return err
	}
	r.ID = probe.ID
	if r.ID == "" {
		r.ID = probe.RecordID
	}
	r.Raw = append(r.Raw[:0], data...)
	return nil
}

// MarshalJSON writes the record back out as its original payload.
func (r HealthRecord) MarshalJSON() ([]byte, error) {
	if len(r.Raw) == 0 {
		return []byte("null"), nil
	}
	return r.Raw, nil
}

// Resource is a FHIR-style object. It is treated as an opaque JSON blob;
// only the resourceType discriminator and id are lifted out, for lookup
// paths and display grouping.
type Resource struct {
	ResourceType string
	ID           string
	Raw          json.RawMessage
}

// UnmarshalJSON keeps the raw payload and extracts the discriminators.
func (r *Resource) UnmarshalJSON(data []byte) error {
	var probe struct {
		ResourceType string `json:"resourceType"`
		ID           string `json:"id"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return err
	}
	r.ResourceType = probe.ResourceType
	r.ID = probe.ID
	r.Raw = append(r.Raw[:0], data...)
	return nil
}

// MarshalJSON writes the resource back out as its original payload.
func (r Resource) MarshalJSON() ([]byte, error) {
	if len(r.Raw) == 0 {
		return []byte("null"), nil
	}
	return r.Raw, nil
}

// GroupResourcesByType buckets resources on their resourceType
// discriminator, preserving input order within each bucket. Resources
// without a resourceType land under the empty key.
func GroupResourcesByType(resources []Resource) map[string][]Resource {
	groups := make(map[string][]Resource)
	for _, res := range resources {
		groups[res.ResourceType] = append(groups[res.ResourceType], res)
	}
	return groups
}

// StatusResult is the generic mutation acknowledgement returned by the
// backend for create/update/delete style operations.
type StatusResult struct {
	Message string `json:"message"`
}

// looksLikeHTML reports whether a response body is an HTML error page
// rather than the JSON the API contract promises.
func looksLikeHTML(body []byte) bool {
	trimmed := bytes.TrimSpace(body)
	return bytes.HasPrefix(trimmed, []byte("<!DOCTYPE")) ||
		bytes.HasPrefix(trimmed, []byte("<!doctype")) ||
		bytes.HasPrefix(trimmed, []byte("<html")) ||
		bytes.HasPrefix(trimmed, []byte("<HTML"))
}
