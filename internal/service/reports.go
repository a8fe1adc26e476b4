package service

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/mr1hm/go-drone-fleet/internal/models"
	"github.com/mr1hm/go-drone-fleet/internal/repository"
)

const recentDisasterLimit = 5

type ReportStore interface {
	repository.ReportRepository
	repository.EntityRepository
}

// Reports serves the read side. Nothing is cached; each call re-derives
// its rows from the store.
type Reports struct {
	repo ReportStore
}

func NewReports(repo ReportStore) *Reports {
	return &Reports{repo: repo}
}

func (r *Reports) MissionPerformance(ctx context.Context) ([]models.MissionPerformanceRow, error) {
	rows, err := r.repo.MissionPerformanceByType(ctx)
	return rows, fromStore(err, "load mission performance")
}

func (r *Reports) AvailablePersonnel(ctx context.Context) ([]models.AvailableOperatorRow, error) {
	rows, err := r.repo.AvailableOperators(ctx)
	return rows, fromStore(err, "load available personnel")
}

func (r *Reports) MaintenanceDrones(ctx context.Context) ([]models.MaintenanceDroneRow, error) {
	rows, err := r.repo.MaintenanceDrones(ctx)
	return rows, fromStore(err, "load maintenance drones")
}

func (r *Reports) OngoingResources(ctx context.Context) ([]models.OngoingResourceRow, error) {
	rows, err := r.repo.OngoingResources(ctx)
	return rows, fromStore(err, "load ongoing resources")
}

func (r *Reports) PayloadTiers(ctx context.Context) ([]models.PayloadTierRow, error) {
	rows, err := r.repo.PayloadTiers(ctx)
	return rows, fromStore(err, "load payload tiers")
}

// Overview runs its sub-queries concurrently and fails as a whole if any
// of them fails.
func (r *Reports) Overview(ctx context.Context) (*models.Overview, error) {
	var ov models.Overview
	g, gctx := errgroup.WithContext(ctx)

	counts := []struct {
		dst *int64
		fn  func(context.Context) (int64, error)
	}{
		{&ov.ActiveDisasters, r.repo.CountOngoingDisasters},
		{&ov.OngoingMissions, r.repo.CountOngoingMissions},
		{&ov.CompletedMissions, r.repo.CountMissionReports},
		{&ov.TotalDrones, r.repo.CountDrones},
		{&ov.MaintenanceDrones, r.repo.CountMaintenanceDrones},
	}
	for _, c := range counts {
		c := c
		g.Go(func() error {
			n, err := c.fn(gctx)
			if err != nil {
				return err
			}
			*c.dst = n
			return nil
		})
	}

	g.Go(func() error {
		rows, err := r.repo.RecentDisasters(gctx, recentDisasterLimit)
		ov.Disasters = rows
		return err
	})
	g.Go(func() error {
		rows, err := r.repo.Personnel(gctx)
		ov.Personnel = rows
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, fromStore(err, "load overview")
	}
	return &ov, nil
}

func (r *Reports) ListDisasters(ctx context.Context) ([]models.DisasterOption, error) {
	rows, err := r.repo.ListDisasters(ctx)
	return rows, fromStore(err, "list disasters")
}

func (r *Reports) ListDrones(ctx context.Context) ([]models.DroneOption, error) {
	rows, err := r.repo.ListDrones(ctx)
	return rows, fromStore(err, "list drones")
}

func (r *Reports) ListOperators(ctx context.Context) ([]models.OperatorOption, error) {
	rows, err := r.repo.ListOperators(ctx)
	return rows, fromStore(err, "list operators")
}

func (r *Reports) ListMissions(ctx context.Context) ([]models.MissionOption, error) {
	rows, err := r.repo.ListMissions(ctx)
	return rows, fromStore(err, "list missions")
}

func (r *Reports) ListAppUsers(ctx context.Context) ([]models.AppUserRow, error) {
	rows, err := r.repo.ListAppUsers(ctx)
	return rows, fromStore(err, "load users")
}
