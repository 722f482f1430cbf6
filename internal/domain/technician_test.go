package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResponseHoursUnmarshal(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		raw       string
		wantHours float64
		wantSet   bool
	}{
		{name: "number", raw: `1.5`, wantHours: 1.5, wantSet: true},
		{name: "integer", raw: `2`, wantHours: 2, wantSet: true},
		{name: "numeric string", raw: `"1.2"`, wantHours: 1.2, wantSet: true},
		{name: "padded numeric string", raw: `" 3.5 "`, wantHours: 3.5, wantSet: true},
		{name: "null", raw: `null`, wantSet: false},
		{name: "empty string", raw: `""`, wantSet: false},
		{name: "garbage string", raw: `"soon"`, wantSet: false},
		{name: "object", raw: `{"h":1}`, wantSet: false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var hours ResponseHours
			require.NoError(t, json.Unmarshal([]byte(tt.raw), &hours))
			value, ok := hours.Hours()
			assert.Equal(t, tt.wantSet, ok)
			if tt.wantSet {
				assert.Equal(t, tt.wantHours, value)
			}
		})
	}
}

func TestResponseHoursMarshal(t *testing.T) {
	t.Parallel()

	set, err := json.Marshal(NewResponseHours(1.5))
	require.NoError(t, err)
	assert.Equal(t, "1.5", string(set))

	unset, err := json.Marshal(ResponseHours{})
	require.NoError(t, err)
	assert.Equal(t, "null", string(unset))
}

func TestTechnicianRosterJSONShape(t *testing.T) {
	t.Parallel()

	raw := `{
		"id": "tech-001",
		"name": "Dana Reed",
		"email": "dana@example.com",
		"status": "available",
		"rating": 4.8,
		"activeTickets": 3,
		"completedTickets": 156,
		"specialties": ["hardware", "network"],
		"subSpecialties": ["printer"],
		"avgResponseTime": "1.5"
	}`

	var tech Technician
	require.NoError(t, json.Unmarshal([]byte(raw), &tech))
	assert.Equal(t, TechnicianAvailable, tech.Status)
	assert.Equal(t, CategoryID("hardware"), tech.PrimarySpecialty())
	assert.True(t, tech.HasSpecialty("network"))
	assert.False(t, tech.HasSpecialty("security"))
	assert.True(t, tech.HasSubSpecialty("printer"))
	hours, ok := tech.AvgResponseTime.Hours()
	require.True(t, ok)
	assert.Equal(t, 1.5, hours)
}

func TestParseTicketStatus(t *testing.T) {
	t.Parallel()

	for _, valid := range []string{"open", "in-progress", "resolved", "closed"} {
		status, err := ParseTicketStatus(valid)
		require.NoError(t, err)
		assert.Equal(t, TicketStatus(valid), status)
	}

	_, err := ParseTicketStatus("pending")
	assert.Error(t, err)
}

func TestParseTicketPriority(t *testing.T) {
	t.Parallel()

	for _, valid := range []string{"low", "medium", "high", "urgent"} {
		priority, err := ParseTicketPriority(valid)
		require.NoError(t, err)
		assert.Equal(t, TicketPriority(valid), priority)
	}

	_, err := ParseTicketPriority("critical")
	assert.Error(t, err)
}

func TestParseTechnicianStatus(t *testing.T) {
	t.Parallel()

	status, err := ParseTechnicianStatus("busy")
	require.NoError(t, err)
	assert.Equal(t, TechnicianBusy, status)

	_, err = ParseTechnicianStatus("away")
	assert.Error(t, err)
}
