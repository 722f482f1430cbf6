package domain

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// TechnicianStatus enumerates availability states.
type TechnicianStatus string

const (
	TechnicianAvailable TechnicianStatus = "available"
	TechnicianBusy      TechnicianStatus = "busy"
	TechnicianInactive  TechnicianStatus = "inactive"
)

// ParseTechnicianStatus validates a raw status value at the boundary.
func ParseTechnicianStatus(raw string) (TechnicianStatus, error) {
	switch TechnicianStatus(raw) {
	case TechnicianAvailable, TechnicianBusy, TechnicianInactive:
		return TechnicianStatus(raw), nil
	}
	return "", fmt.Errorf("unknown technician status %q", raw)
}

// ResponseHours is an average response time in hours. Persisted rosters carry
// it either as a JSON number or as a numeric string; values that fail to parse
// are treated as unset rather than rejected.
type ResponseHours struct {
	value float64
	valid bool
}

// NewResponseHours wraps a known-good measurement.
func NewResponseHours(hours float64) ResponseHours {
	return ResponseHours{value: hours, valid: true}
}

// Hours returns the measurement and whether one is set.
func (r ResponseHours) Hours() (float64, bool) {
	return r.value, r.valid
}

func (r *ResponseHours) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "null" || trimmed == `""` {
		*r = ResponseHours{}
		return nil
	}
	if strings.HasPrefix(trimmed, `"`) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			*r = ResponseHours{}
			return nil
		}
		parsed, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil || math.IsNaN(parsed) {
			*r = ResponseHours{}
			return nil
		}
		*r = ResponseHours{value: parsed, valid: true}
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		*r = ResponseHours{}
		return nil
	}
	*r = ResponseHours{value: f, valid: true}
	return nil
}

func (r ResponseHours) MarshalJSON() ([]byte, error) {
	if !r.valid {
		return []byte("null"), nil
	}
	return json.Marshal(r.value)
}

// Technician models a support staff member who can take tickets. Specialty
// order is significant: the first entry is the primary specialty. JSON tags
// match the dashboard's persisted roster shape.
type Technician struct {
	ID               string           `json:"id"`
	Name             string           `json:"name"`
	Email            string           `json:"email"`
	Status           TechnicianStatus `json:"status"`
	Rating           float64          `json:"rating"`
	ActiveTickets    int              `json:"activeTickets"`
	CompletedTickets int              `json:"completedTickets"`
	Specialties      []CategoryID     `json:"specialties"`
	SubSpecialties   []SubcategoryID  `json:"subSpecialties,omitempty"`
	AvgResponseTime  ResponseHours    `json:"avgResponseTime,omitempty"`
}

// HasSpecialty reports whether the technician covers the category.
func (t Technician) HasSpecialty(id CategoryID) bool {
	for _, s := range t.Specialties {
		if s == id {
			return true
		}
	}
	return false
}

// PrimarySpecialty returns the first-listed specialty, or empty.
func (t Technician) PrimarySpecialty() CategoryID {
	if len(t.Specialties) == 0 {
		return ""
	}
	return t.Specialties[0]
}

// HasSubSpecialty reports whether the technician covers the subcategory.
func (t Technician) HasSubSpecialty(id SubcategoryID) bool {
	for _, s := range t.SubSpecialties {
		if s == id {
			return true
		}
	}
	return false
}
