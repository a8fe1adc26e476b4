package models

type MissionReport struct {
	ID               string
	BatteryRemaining *float64
	DistanceCovered  *float64
	SuccessRate      *float64 // 0-100
	PeopleAided      int
}
