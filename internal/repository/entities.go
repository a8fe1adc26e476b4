package repository

import (
	"context"
	"database/sql"

	"github.com/mr1hm/go-drone-fleet/internal/models"
)

func (s *SQLStore) ListDisasters(ctx context.Context) ([]models.DisasterOption, error) {
	return queryRows(ctx, s, "list disasters", `SELECT D_ID, Name FROM DISASTER ORDER BY Start_Time DESC, D_ID`,
		func(rows *sql.Rows) (models.DisasterOption, error) {
			var o models.DisasterOption
			return o, rows.Scan(&o.ID, &o.Name)
		})
}

func (s *SQLStore) ListDrones(ctx context.Context) ([]models.DroneOption, error) {
	return queryRows(ctx, s, "list drones", `SELECT D_NO, Model FROM DRONE ORDER BY D_NO`,
		func(rows *sql.Rows) (models.DroneOption, error) {
			var o models.DroneOption
			return o, rows.Scan(&o.ID, &o.Model)
		})
}

func (s *SQLStore) ListOperators(ctx context.Context) ([]models.OperatorOption, error) {
	return queryRows(ctx, s, "list operators", `SELECT O_ID, Name FROM OPERATOR ORDER BY Name, O_ID`,
		func(rows *sql.Rows) (models.OperatorOption, error) {
			var o models.OperatorOption
			return o, rows.Scan(&o.ID, &o.Name)
		})
}

func (s *SQLStore) ListMissions(ctx context.Context) ([]models.MissionOption, error) {
	return queryRows(ctx, s, "list missions", `SELECT MR_ID FROM MISSION_REPORT ORDER BY MR_ID DESC`,
		func(rows *sql.Rows) (models.MissionOption, error) {
			var o models.MissionOption
			return o, rows.Scan(&o.ID)
		})
}

func (s *SQLStore) ListAppUsers(ctx context.Context) ([]models.AppUserRow, error) {
	return queryRows(ctx, s, "list app users", `SELECT Username, Role FROM APP_USERS ORDER BY Username`,
		func(rows *sql.Rows) (models.AppUserRow, error) {
			var (
				u    models.AppUserRow
				role string
			)
			err := rows.Scan(&u.Username, &role)
			u.Role = models.Role(role)
			return u, err
		})
}

// GetDisaster returns ErrNotFound when no row matches.
func (s *SQLStore) GetDisaster(ctx context.Context, id string) (*models.Disaster, error) {
	var (
		d   models.Disaster
		end sql.NullTime
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT D_ID, Name, Type, Location, Start_Time, End_Time FROM DISASTER WHERE D_ID = ?`, id,
	).Scan(&d.ID, &d.Name, &d.Type, &d.Location, &d.StartTime, &end)
	if err != nil {
		return nil, s.wrap("get disaster", err)
	}
	d.EndTime = nullTime(end)
	return &d, nil
}

func (s *SQLStore) GetAppUser(ctx context.Context, username string) (*models.AppUser, error) {
	var (
		u        models.AppUser
		password sql.NullString
		role     string
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT Username, Password, Role FROM APP_USERS WHERE Username = ?`, username,
	).Scan(&u.Username, &password, &role)
	if err != nil {
		return nil, s.wrap("get app user", err)
	}
	u.Password = nullString(password)
	u.Role = models.Role(role)
	return &u, nil
}
