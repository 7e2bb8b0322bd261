package aarogyam

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync/atomic"
	"testing"
)

func TestRecordsService_Add(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/add_health_rec" {
			t.Errorf("expected POST /add_health_rec, got %s %s", r.Method, r.URL.Path)
		}

		var body struct {
			Email      string          `json:"email"`
			RecordData json.RawMessage `json:"record_data"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("failed to decode body: %v", err)
		}
		if body.Email != "a@b.com" {
			t.Errorf("expected email a@b.com, got %q", body.Email)
		}
		var payload map[string]interface{}
		if err := json.Unmarshal(body.RecordData, &payload); err != nil {
			t.Fatalf("record_data not valid JSON: %v", err)
		}
		if payload["bp"] != "120/80" {
			t.Errorf("unexpected payload: %v", payload)
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"message": "record added"})
	})

	res, err := client.Records.Add(context.Background(), "a@b.com", json.RawMessage(`{"bp":"120/80"}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Message != "record added" {
		t.Errorf("unexpected message %q", res.Message)
	}
}

func TestRecordsService_Add_InvalidJSON(t *testing.T) {
	var requests atomic.Int32
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
	})

	_, err := client.Records.Add(context.Background(), "a@b.com", json.RawMessage(`{"bp":`))
	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if vErr.Field != "record_data" {
		t.Errorf("expected field record_data, got %q", vErr.Field)
	}
	if requests.Load() != 0 {
		t.Error("expected no request for invalid JSON payload")
	}
}

func TestRecordsService_Get(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/get_health_rec/a@b.com" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `[{"record_id":"r-1","bp":"120/80"},{"record_id":"r-2","bp":"118/76"}]`)
	})

	records, err := client.Records.Get(context.Background(), "a@b.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if records[0].ID != "r-1" {
		t.Errorf("expected record id r-1, got %q", records[0].ID)
	}

	var payload map[string]interface{}
	if err := json.Unmarshal(records[0].Raw, &payload); err != nil {
		t.Fatalf("raw payload not preserved: %v", err)
	}
	if payload["bp"] != "120/80" {
		t.Errorf("unexpected payload: %v", payload)
	}
}

func TestRecordsService_Get_SingleObject(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"id":"r-1","bp":"120/80"}`)
	})

	records, err := client.Records.Get(context.Background(), "a@b.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 1 || records[0].ID != "r-1" {
		t.Errorf("unexpected records: %+v", records)
	}
}

func TestRecordsService_Get_HTMLBody(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "<!DOCTYPE html><html>oops</html>")
	})

	_, err := client.Records.Get(context.Background(), "a@b.com")
	apiErr, ok := AsAPIError(err)
	if !ok || !apiErr.IsInvalidResponse() {
		t.Fatalf("expected invalid-response error, got %v", err)
	}
}

func TestRecordsService_Update(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/update_health_rec" {
			t.Errorf("expected /update_health_rec, got %s", r.URL.Path)
		}
		var body struct {
			Email      string          `json:"email"`
			RecordID   string          `json:"record_id"`
			RecordData json.RawMessage `json:"record_data"`
		}
		json.NewDecoder(r.Body).Decode(&body)
		if body.Email != "a@b.com" || body.RecordID != "r-1" {
			t.Errorf("unexpected body: %+v", body)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"message": "record updated"})
	})

	res, err := client.Records.Update(context.Background(), "a@b.com", "r-1", json.RawMessage(`{"bp":"118/76"}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Message != "record updated" {
		t.Errorf("unexpected message %q", res.Message)
	}
}

func TestRecordsService_Delete(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete || r.URL.Path != "/delete_health_rec" {
			t.Errorf("expected DELETE /delete_health_rec, got %s %s", r.Method, r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("email") != "a@b.com" || q.Get("record_id") != "r-1" {
			t.Errorf("unexpected query: %v", q)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"message": "record deleted"})
	})

	res, err := client.Records.Delete(context.Background(), "a@b.com", "r-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Message != "record deleted" {
		t.Errorf("unexpected message %q", res.Message)
	}
}

func TestRecordsService_RequiredFields(t *testing.T) {
	var requests atomic.Int32
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
	})

	ctx := context.Background()
	var vErr *ValidationError

	if _, err := client.Records.Get(ctx, ""); !errors.As(err, &vErr) {
		t.Errorf("Get without email: expected ValidationError, got %v", err)
	}
	if _, err := client.Records.Update(ctx, "a@b.com", "", json.RawMessage(`{}`)); !errors.As(err, &vErr) {
		t.Errorf("Update without record id: expected ValidationError, got %v", err)
	}
	if _, err := client.Records.Delete(ctx, "", "r-1"); !errors.As(err, &vErr) {
		t.Errorf("Delete without email: expected ValidationError, got %v", err)
	}
	if requests.Load() != 0 {
		t.Error("expected no requests for local validation failures")
	}
}
