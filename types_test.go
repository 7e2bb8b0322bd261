package aarogyam

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthRecord_LiftsID(t *testing.T) {
	var rec HealthRecord
	require.NoError(t, json.Unmarshal([]byte(`{"id":"r-1","diagnosis":"flu"}`), &rec))
	assert.Equal(t, "r-1", rec.ID)

	var alt HealthRecord
	require.NoError(t, json.Unmarshal([]byte(`{"record_id":"r-2"}`), &alt))
	assert.Equal(t, "r-2", alt.ID)
}

func TestHealthRecord_RoundTrip(t *testing.T) {
	raw := `{"record_id":"r-2","vitals":{"bp":"120/80"},"notes":["stable"]}`

	var rec HealthRecord
	require.NoError(t, json.Unmarshal([]byte(raw), &rec))

	out, err := json.Marshal(rec)
	require.NoError(t, err)
	assert.JSONEq(t, raw, string(out))
}

func TestHealthRecord_MarshalEmpty(t *testing.T) {
	out, err := json.Marshal(HealthRecord{})
	require.NoError(t, err)
	assert.Equal(t, "null", string(out))
}

func TestResource_Discriminators(t *testing.T) {
	raw := `{"resourceType":"Observation","id":"o-1","status":"final"}`

	var res Resource
	require.NoError(t, json.Unmarshal([]byte(raw), &res))
	assert.Equal(t, "Observation", res.ResourceType)
	assert.Equal(t, "o-1", res.ID)

	out, err := json.Marshal(res)
	require.NoError(t, err)
	assert.JSONEq(t, raw, string(out))
}

func TestRoleValues(t *testing.T) {
	assert.Equal(t, Role("user"), RoleUser)
	assert.Equal(t, Role("admin"), RoleAdmin)
}
