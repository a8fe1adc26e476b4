package repository

import (
	"context"
	"time"

	"github.com/mr1hm/go-drone-fleet/internal/models"
)

// ReportRepository derives the dashboard's analytical views. Every call
// re-queries the store.
type ReportRepository interface {
	MissionPerformanceByType(ctx context.Context) ([]models.MissionPerformanceRow, error)
	AvailableOperators(ctx context.Context) ([]models.AvailableOperatorRow, error)
	MaintenanceDrones(ctx context.Context) ([]models.MaintenanceDroneRow, error)
	OngoingResources(ctx context.Context) ([]models.OngoingResourceRow, error)
	PayloadTiers(ctx context.Context) ([]models.PayloadTierRow, error)

	CountOngoingDisasters(ctx context.Context) (int64, error)
	CountOngoingMissions(ctx context.Context) (int64, error)
	CountMissionReports(ctx context.Context) (int64, error)
	CountDrones(ctx context.Context) (int64, error)
	CountMaintenanceDrones(ctx context.Context) (int64, error)
	RecentDisasters(ctx context.Context, limit int) ([]models.RecentDisasterRow, error)
	Personnel(ctx context.Context) ([]models.PersonnelRow, error)
}

type EntityRepository interface {
	ListDisasters(ctx context.Context) ([]models.DisasterOption, error)
	ListDrones(ctx context.Context) ([]models.DroneOption, error)
	ListOperators(ctx context.Context) ([]models.OperatorOption, error)
	ListMissions(ctx context.Context) ([]models.MissionOption, error)
	ListAppUsers(ctx context.Context) ([]models.AppUserRow, error)
	GetDisaster(ctx context.Context, id string) (*models.Disaster, error)
	GetAppUser(ctx context.Context, username string) (*models.AppUser, error)
}

type MutationRepository interface {
	AddDisaster(ctx context.Context, d *models.Disaster) error
	AddDrone(ctx context.Context, d *models.Drone) error
	AddOperator(ctx context.Context, o *models.Operator) error
	AddMissionReport(ctx context.Context, m *models.MissionReport) error
	AddAlert(ctx context.Context, a *models.Alert) error
	AddAssignment(ctx context.Context, a *models.Assignment) error
	ResolveDisaster(ctx context.Context, id string, at time.Time) error
	DeleteDisaster(ctx context.Context, id string) error
	UpsertAppUser(ctx context.Context, u *models.AppUser) error
}

type Store interface {
	ReportRepository
	EntityRepository
	MutationRepository
	Ping(ctx context.Context) error
	Close() error
}
