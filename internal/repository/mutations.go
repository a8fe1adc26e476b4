package repository

import (
	"context"
	"time"

	"github.com/mr1hm/go-drone-fleet/internal/models"
)

// Inserts rely on the engine's constraints: a duplicate key or a dangling
// reference comes back as ErrConflict.

func (s *SQLStore) AddDisaster(ctx context.Context, d *models.Disaster) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO DISASTER (D_ID, Name, Type, Location, Start_Time) VALUES (?, ?, ?, ?, ?)`,
		d.ID, d.Name, d.Type, d.Location, d.StartTime,
	)
	return s.wrap("insert disaster", err)
}

func (s *SQLStore) AddDrone(ctx context.Context, d *models.Drone) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO DRONE (D_NO, Model, Payload, Flying_Hours, D_ID) VALUES (?, ?, ?, ?, ?)`,
		d.ID, d.Model, d.Payload, d.FlyingHours, d.DisasterID,
	)
	return s.wrap("insert drone", err)
}

func (s *SQLStore) AddOperator(ctx context.Context, o *models.Operator) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO OPERATOR (O_ID, Name, Certification) VALUES (?, ?, ?)`,
		o.ID, o.Name, o.Certification,
	)
	return s.wrap("insert operator", err)
}

func (s *SQLStore) AddMissionReport(ctx context.Context, m *models.MissionReport) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO MISSION_REPORT (MR_ID, Battery_Remaining, Distance_Covered, Success_Rate, People_Aided)
		 VALUES (?, ?, ?, ?, ?)`,
		m.ID, m.BatteryRemaining, m.DistanceCovered, m.SuccessRate, m.PeopleAided,
	)
	return s.wrap("insert mission report", err)
}

func (s *SQLStore) AddAlert(ctx context.Context, a *models.Alert) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO ALERTS (A_ID, Resolution, MR_ID, Type, Severity, Time, D_NO) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		a.ID, a.Resolution, a.MissionID, a.Type, string(a.Severity), a.Time, a.DroneID,
	)
	return s.wrap("insert alert", err)
}

func (s *SQLStore) AddAssignment(ctx context.Context, a *models.Assignment) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO ASSIGNED_TO (O_ID, D_ID) VALUES (?, ?)`,
		a.OperatorID, a.DisasterID,
	)
	return s.wrap("insert assignment", err)
}

// ResolveDisaster stamps End_Time unconditionally, so resolving twice moves
// the end time to the later call.
func (s *SQLStore) ResolveDisaster(ctx context.Context, id string, at time.Time) error {
	return s.execAffecting(ctx, "resolve disaster",
		`UPDATE DISASTER SET End_Time = ? WHERE D_ID = ?`, at, id)
}

// DeleteDisaster never cascades; dependent drones or assignments make the
// engine reject the delete with ErrConflict.
func (s *SQLStore) DeleteDisaster(ctx context.Context, id string) error {
	return s.execAffecting(ctx, "delete disaster", `DELETE FROM DISASTER WHERE D_ID = ?`, id)
}

func (s *SQLStore) UpsertAppUser(ctx context.Context, u *models.AppUser) error {
	_, err := s.db.ExecContext(ctx, s.dialect.upsertAppUser, u.Username, u.Password, string(u.Role))
	return s.wrap("upsert app user", err)
}
