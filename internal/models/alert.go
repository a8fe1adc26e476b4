package models

import (
	"strings"
	"time"
)

type AlertSeverity string

const (
	SeverityLow      AlertSeverity = "Low"
	SeverityMedium   AlertSeverity = "Medium"
	SeverityHigh     AlertSeverity = "High"
	SeverityCritical AlertSeverity = "Critical"
)

// MaintenanceSeverities flag a drone for maintenance.
var MaintenanceSeverities = []AlertSeverity{SeverityHigh, SeverityCritical}

var severityRank = map[AlertSeverity]int{
	SeverityLow:      1,
	SeverityMedium:   2,
	SeverityHigh:     3,
	SeverityCritical: 4,
}

// ParseSeverity accepts any casing and returns the canonical label.
func ParseSeverity(s string) (AlertSeverity, bool) {
	for sev := range severityRank {
		if strings.EqualFold(string(sev), strings.TrimSpace(s)) {
			return sev, true
		}
	}
	return "", false
}

// AtLeast reports whether s is as severe as other.
func (s AlertSeverity) AtLeast(other AlertSeverity) bool {
	return severityRank[s] >= severityRank[other]
}

type Alert struct {
	ID         string
	Resolution *string
	MissionID  string
	Type       *string
	Severity   AlertSeverity
	Time       time.Time
	DroneID    string
}
