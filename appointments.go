package aarogyam

import (
	"context"
	"net/http"
)

// AppointmentsService handles booking, rescheduling and cancellation.
type AppointmentsService struct {
	client *Client
}

// BookRequest is the request for booking an appointment.
type BookRequest struct {
	// ProviderID is the practitioner to book with (required).
	ProviderID string `json:"provider_id"`
	// Date is the appointment date (required).
	Date string `json:"date"`
	// Time is the appointment time (required).
	Time string `json:"time"`
}

// Book books a new appointment. All fields are checked locally; an empty
// date or time never issues a request.
func (s *AppointmentsService) Book(ctx context.Context, req BookRequest) (*StatusResult, error) {
	if err := requireFields("provider_id", req.ProviderID, "date", req.Date, "time", req.Time); err != nil {
		return nil, err
	}

	var resp StatusResult
	if err := s.client.post(ctx, "/book", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Reschedule moves an existing appointment to a new date and time.
func (s *AppointmentsService) Reschedule(ctx context.Context, appointmentID, newDate, newTime string) (*StatusResult, error) {
	if err := requireFields("appointment_id", appointmentID, "new_date", newDate, "new_time", newTime); err != nil {
		return nil, err
	}

	body := map[string]string{
		"appointment_id": appointmentID,
		"new_date":       newDate,
		"new_time":       newTime,
	}
	var resp StatusResult
	if err := s.client.post(ctx, "/reschedule", body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Cancel cancels an appointment.
func (s *AppointmentsService) Cancel(ctx context.Context, appointmentID string) (*StatusResult, error) {
	if err := requireFields("appointment_id", appointmentID); err != nil {
		return nil, err
	}

	body := map[string]string{"appointment_id": appointmentID}
	var resp StatusResult
	if err := s.client.post(ctx, "/cancel_appointment", body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// List returns the signed-in user's appointments.
func (s *AppointmentsService) List(ctx context.Context) ([]Appointment, error) {
	var resp []Appointment
	if err := s.client.get(ctx, "/appointments", &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// All returns every appointment across users (admin surface). A
// malformed body - an HTML error page from a proxy, or JSON that is not
// an array - yields an empty, non-nil slice rather than an error, so the
// admin view degrades to "no appointments" instead of failing.
func (s *AppointmentsService) All(ctx context.Context) ([]Appointment, error) {
	body, _, err := s.client.doRaw(ctx, http.MethodGet, "/all_appointments", nil)
	if err != nil {
		return nil, err
	}

	var resp []Appointment
	if decodeBody(body, &resp) != nil || resp == nil {
		return []Appointment{}, nil
	}
	return resp, nil
}
