package service

import (
	"strings"
	"time"

	"github.com/mr1hm/go-drone-fleet/internal/apperr"
)

// Request payloads accepted by the mutation endpoints. Optional numbers
// are pointers so an omitted field stays NULL instead of becoming zero.

type DisasterInput struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Type      string `json:"type"`
	Location  string `json:"location"`
	StartTime string `json:"start_time"`
}

type DroneInput struct {
	ID          string   `json:"id"`
	Model       string   `json:"model"`
	Payload     *float64 `json:"payload"`
	FlyingHours *float64 `json:"flying_hours"`
	DisasterID  string   `json:"disaster_id"`
}

type OperatorInput struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Certification string `json:"certification"`
}

type MissionInput struct {
	ID               string   `json:"id"`
	BatteryRemaining *float64 `json:"battery_remaining"`
	DistanceCovered  *float64 `json:"distance_covered"`
	SuccessRate      *float64 `json:"success_rate"`
	PeopleAided      *int     `json:"people_aided"`
}

type AlertInput struct {
	ID         string `json:"id"`
	Resolution string `json:"resolution"`
	MissionID  string `json:"mission_id"`
	Type       string `json:"type"`
	Severity   string `json:"severity"`
	Time       string `json:"time"`
	DroneID    string `json:"drone_id"`
}

type AssignmentInput struct {
	OperatorID string `json:"operator_id"`
	DisasterID string `json:"disaster_id"`
}

type AppUserInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type field struct {
	name  string
	value *string
}

// requireFields trims every field in place and reports all blank ones at once.
func requireFields(fields ...field) error {
	var missing []string
	for _, f := range fields {
		*f.value = strings.TrimSpace(*f.value)
		if *f.value == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	if len(missing) == 1 {
		return apperr.Newf(apperr.InvalidArgument, "%s is required", missing[0])
	}
	return apperr.Newf(apperr.InvalidArgument, "%s are required", strings.Join(missing, ", "))
}

func optionalString(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

func checkRange(name string, v *float64, min, max float64) error {
	if v == nil {
		return nil
	}
	if *v < min || *v > max {
		return apperr.Newf(apperr.InvalidArgument, "%s must be between %g and %g", name, min, max)
	}
	return nil
}

func checkNonNegative(name string, v *float64) error {
	if v != nil && *v < 0 {
		return apperr.Newf(apperr.InvalidArgument, "%s must not be negative", name)
	}
	return nil
}

// Layouts accepted for timestamps, including the HTML datetime-local format.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// parseTimestamp reads s in UTC unless it carries its own offset.
func parseTimestamp(name, s string) (time.Time, error) {
	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, apperr.Newf(apperr.InvalidArgument, "%s must be a timestamp like 2006-01-02T15:04", name)
}
