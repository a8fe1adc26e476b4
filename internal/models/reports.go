package models

import (
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// The dashboard renders report values as numbers, not strings.
	decimal.MarshalJSONWithoutQuotes = true
}

// Row types below carry the column labels the dashboard renders as table
// headers, so their JSON names are part of the wire contract.

type MissionPerformanceRow struct {
	DisasterType          string              `json:"Disaster_Type"`
	AverageSuccessRate    decimal.NullDecimal `json:"Average_Success_Rate"`
	TotalMissionsComplete int64               `json:"Total_Missions_Completed"`
}

type AvailableOperatorRow struct {
	OperatorID    string  `json:"O_ID"`
	Name          string  `json:"Name"`
	Certification *string `json:"Certification"`
}

type MaintenanceDroneRow struct {
	DroneID            string `json:"D_NO"`
	Model              string `json:"Model"`
	CriticalAlertCount int64  `json:"Critical_Alert_Count"`
}

type OngoingResourceRow struct {
	DisasterID       string              `json:"D_ID"`
	DisasterType     string              `json:"Disaster_Type"`
	ActiveDrones     int64               `json:"Active_Drones"`
	TotalPayloadUsed decimal.NullDecimal `json:"Total_Payload_Used"`
}

type PayloadTierRow struct {
	Tier        PayloadTier `json:"Payload_Tier"`
	TotalDrones int64       `json:"Total_Drones"`
}

type RecentDisasterRow struct {
	Name      string         `json:"Name"`
	Type      string         `json:"Type"`
	Location  string         `json:"Location"`
	StartTime time.Time      `json:"Start_Time"`
	Status    DisasterStatus `json:"Status"`
}

type PersonnelRow struct {
	Name          string  `json:"Name"`
	Certification *string `json:"Certification"`
}

type Overview struct {
	ActiveDisasters   int64               `json:"activeDisasters"`
	OngoingMissions   int64               `json:"ongoingMissions"`
	CompletedMissions int64               `json:"completedMissions"`
	TotalDrones       int64               `json:"totalDrones"`
	MaintenanceDrones int64               `json:"maintenanceDrones"`
	Disasters         []RecentDisasterRow `json:"disasters"`
	Personnel         []PersonnelRow      `json:"personnel"`
}

// Selection-list entries.

type DisasterOption struct {
	ID   string `json:"D_ID"`
	Name string `json:"Name"`
}

type DroneOption struct {
	ID    string `json:"D_NO"`
	Model string `json:"Model"`
}

type OperatorOption struct {
	ID   string `json:"O_ID"`
	Name string `json:"Name"`
}

type MissionOption struct {
	ID string `json:"MR_ID"`
}

type AppUserRow struct {
	Username string `json:"Username"`
	Role     Role   `json:"Role"`
}
