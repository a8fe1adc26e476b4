package models

import "time"

type DisasterStatus string

const (
	StatusOngoing  DisasterStatus = "Ongoing"
	StatusResolved DisasterStatus = "Resolved"
)

type Disaster struct {
	ID        string
	Name      string
	Type      string // free-form category, e.g. "Flood"
	Location  string
	StartTime time.Time
	EndTime   *time.Time // nil while the disaster is ongoing
}

func (d *Disaster) Ongoing() bool {
	return d.EndTime == nil
}

func (d *Disaster) Status() DisasterStatus {
	if d.Ongoing() {
		return StatusOngoing
	}
	return StatusResolved
}

// Assignment deploys an operator to a disaster.
type Assignment struct {
	OperatorID string
	DisasterID string
}
