package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/mr1hm/go-drone-fleet/internal/apperr"
	"github.com/mr1hm/go-drone-fleet/internal/events"
	"github.com/mr1hm/go-drone-fleet/internal/models"
	"github.com/mr1hm/go-drone-fleet/internal/repository"
)

type Publisher interface {
	Publish(e events.Event)
}

// Mutations validates writes locally and leaves referential checks to the
// store. Each mutation is a single statement, so none is ever half applied.
type Mutations struct {
	repo          repository.MutationRepository
	publisher     Publisher
	hashPasswords bool
	now           func() time.Time
}

func NewMutations(repo repository.MutationRepository, publisher Publisher, hashPasswords bool) *Mutations {
	return &Mutations{
		repo:          repo,
		publisher:     publisher,
		hashPasswords: hashPasswords,
		now:           func() time.Time { return time.Now().UTC().Truncate(time.Second) },
	}
}

func (m *Mutations) publish(t events.Type, id string) {
	if m.publisher == nil {
		return
	}
	m.publisher.Publish(events.Event{Type: t, ID: id, At: m.now()})
}

func (m *Mutations) AddDisaster(ctx context.Context, in DisasterInput) error {
	if err := requireFields(
		field{"id", &in.ID},
		field{"name", &in.Name},
		field{"type", &in.Type},
		field{"location", &in.Location},
		field{"start_time", &in.StartTime},
	); err != nil {
		return err
	}
	start, err := parseTimestamp("start_time", in.StartTime)
	if err != nil {
		return err
	}

	d := &models.Disaster{ID: in.ID, Name: in.Name, Type: in.Type, Location: in.Location, StartTime: start}
	if err := m.repo.AddDisaster(ctx, d); err != nil {
		return fromStore(err, "add disaster")
	}

	slog.Info("added disaster", "id", d.ID, "type", d.Type)
	m.publish(events.DisasterAdded, d.ID)
	return nil
}

func (m *Mutations) AddDrone(ctx context.Context, in DroneInput) error {
	if err := requireFields(field{"id", &in.ID}, field{"model", &in.Model}); err != nil {
		return err
	}
	if err := errors.Join(
		checkNonNegative("payload", in.Payload),
		checkNonNegative("flying_hours", in.FlyingHours),
	); err != nil {
		return firstInvalid(err)
	}

	d := &models.Drone{
		ID:          in.ID,
		Model:       in.Model,
		Payload:     in.Payload,
		FlyingHours: in.FlyingHours,
		DisasterID:  optionalString(in.DisasterID),
	}
	if err := m.repo.AddDrone(ctx, d); err != nil {
		return fromStore(err, "add drone")
	}

	tier, _ := models.TierForPayload(d.Payload)
	slog.Info("added drone", "id", d.ID, "model", d.Model, "tier", tier)
	m.publish(events.DroneAdded, d.ID)
	return nil
}

func (m *Mutations) AddOperator(ctx context.Context, in OperatorInput) error {
	if err := requireFields(field{"id", &in.ID}, field{"name", &in.Name}); err != nil {
		return err
	}

	o := &models.Operator{ID: in.ID, Name: in.Name, Certification: optionalString(in.Certification)}
	if err := m.repo.AddOperator(ctx, o); err != nil {
		return fromStore(err, "add operator")
	}

	slog.Info("added operator", "id", o.ID)
	m.publish(events.OperatorAdded, o.ID)
	return nil
}

func (m *Mutations) AddMission(ctx context.Context, in MissionInput) error {
	if err := requireFields(field{"id", &in.ID}); err != nil {
		return err
	}
	if err := errors.Join(
		checkRange("battery_remaining", in.BatteryRemaining, 0, 100),
		checkNonNegative("distance_covered", in.DistanceCovered),
		checkRange("success_rate", in.SuccessRate, 0, 100),
	); err != nil {
		return firstInvalid(err)
	}

	mr := &models.MissionReport{
		ID:               in.ID,
		BatteryRemaining: in.BatteryRemaining,
		DistanceCovered:  in.DistanceCovered,
		SuccessRate:      in.SuccessRate,
	}
	if in.PeopleAided != nil {
		if *in.PeopleAided < 0 {
			return apperr.New(apperr.InvalidArgument, "people_aided must not be negative")
		}
		mr.PeopleAided = *in.PeopleAided
	}
	if err := m.repo.AddMissionReport(ctx, mr); err != nil {
		return fromStore(err, "add mission report")
	}

	slog.Info("added mission report", "id", mr.ID)
	m.publish(events.MissionAdded, mr.ID)
	return nil
}

func (m *Mutations) AddAlert(ctx context.Context, in AlertInput) error {
	if err := requireFields(
		field{"id", &in.ID},
		field{"mission_id", &in.MissionID},
		field{"severity", &in.Severity},
		field{"time", &in.Time},
		field{"drone_id", &in.DroneID},
	); err != nil {
		return err
	}
	severity, ok := models.ParseSeverity(in.Severity)
	if !ok {
		return apperr.Newf(apperr.InvalidArgument, "severity must be one of Low, Medium, High, Critical")
	}
	at, err := parseTimestamp("time", in.Time)
	if err != nil {
		return err
	}

	a := &models.Alert{
		ID:         in.ID,
		Resolution: optionalString(in.Resolution),
		MissionID:  in.MissionID,
		Type:       optionalString(in.Type),
		Severity:   severity,
		Time:       at,
		DroneID:    in.DroneID,
	}
	if err := m.repo.AddAlert(ctx, a); err != nil {
		return fromStore(err, "add alert")
	}

	slog.Info("added alert", "id", a.ID, "drone_id", a.DroneID, "severity", a.Severity)
	m.publish(events.AlertAdded, a.ID)
	return nil
}

func (m *Mutations) AssignOperator(ctx context.Context, in AssignmentInput) error {
	if err := requireFields(field{"operator_id", &in.OperatorID}, field{"disaster_id", &in.DisasterID}); err != nil {
		return err
	}

	a := &models.Assignment{OperatorID: in.OperatorID, DisasterID: in.DisasterID}
	if err := m.repo.AddAssignment(ctx, a); err != nil {
		return fromStore(err, "assign operator")
	}

	slog.Info("assigned operator", "operator_id", a.OperatorID, "disaster_id", a.DisasterID)
	m.publish(events.OperatorAssigned, a.OperatorID)
	return nil
}

// ResolveDisaster stamps the end time with the current time. Resolving an
// already resolved disaster moves its end time forward.
func (m *Mutations) ResolveDisaster(ctx context.Context, id string) error {
	if err := requireFields(field{"id", &id}); err != nil {
		return err
	}

	err := m.repo.ResolveDisaster(ctx, id, m.now())
	if errors.Is(err, repository.ErrNotFound) {
		return apperr.Wrap(apperr.NotFound, "Disaster ID not found", err)
	}
	if err != nil {
		return fromStore(err, "resolve disaster")
	}

	slog.Info("resolved disaster", "id", id)
	m.publish(events.DisasterResolved, id)
	return nil
}

// DeleteDisaster never removes dependents; the caller must delete drones,
// alerts and assignments first.
func (m *Mutations) DeleteDisaster(ctx context.Context, id string) error {
	if err := requireFields(field{"id", &id}); err != nil {
		return err
	}

	err := m.repo.DeleteDisaster(ctx, id)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return apperr.Wrap(apperr.NotFound, "No disaster found with that ID (or already deleted).", err)
	case errors.Is(err, repository.ErrConflict):
		return apperr.Wrap(apperr.Conflict, "Failed to delete disaster. It is still referenced by drones, alerts or assignments.", err)
	case err != nil:
		return fromStore(err, "delete disaster")
	}

	slog.Info("deleted disaster", "id", id)
	m.publish(events.DisasterDeleted, id)
	return nil
}

// UpsertAppUser creates the user or overwrites password and role of the
// existing one in a single conditional write.
func (m *Mutations) UpsertAppUser(ctx context.Context, in AppUserInput) error {
	if err := requireFields(field{"username", &in.Username}, field{"role", &in.Role}); err != nil {
		return err
	}
	role, ok := models.ParseRole(in.Role)
	if !ok {
		return apperr.Newf(apperr.InvalidArgument, "role must be %q or %q", models.RoleViewer, models.RoleEditor)
	}

	password, err := m.storedPassword(in.Password)
	if err != nil {
		return err
	}

	u := &models.AppUser{Username: in.Username, Password: password, Role: role}
	if err := m.repo.UpsertAppUser(ctx, u); err != nil {
		return fromStore(err, "save app user")
	}

	slog.Info("saved app user", "username", u.Username, "role", u.Role)
	m.publish(events.AppUserSaved, u.Username)
	return nil
}

func (m *Mutations) storedPassword(plain string) (*string, error) {
	if plain == "" {
		return nil, nil
	}
	if !m.hashPasswords {
		return &plain, nil
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return nil, apperr.Wrap(apperr.InvalidArgument, "password must be at most 72 bytes", err)
	}
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "failed to hash password", fmt.Errorf("bcrypt: %w", err))
	}
	s := string(hash)
	return &s, nil
}

// firstInvalid unwraps an errors.Join of validation failures to the first one.
func firstInvalid(err error) error {
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		if errs := joined.Unwrap(); len(errs) > 0 {
			return errs[0]
		}
	}
	return err
}
