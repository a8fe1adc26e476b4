package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/jknair0/beforeeach"

	"github.com/mr1hm/go-drone-fleet/internal/config"
	"github.com/mr1hm/go-drone-fleet/internal/models"
)

var (
	mockDB *sql.DB
	mock   sqlmock.Sqlmock
	store  *SQLStore
)

func setUp() {
	mockDB, mock, _ = sqlmock.New(sqlmock.MonitorPingsOption(true))
	store = New(mockDB, MySQLDialect)
}

func tearDown() {
	mockDB.Close()
}

var it = beforeeach.Create(setUp, tearDown)

func checkExpectations(t *testing.T) {
	t.Helper()
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestMySQL_UpsertAppUser(t *testing.T) {
	it(func() {
		mock.ExpectExec("INSERT INTO APP_USERS (.+) ON DUPLICATE KEY UPDATE Password = VALUES\\(Password\\), Role = VALUES\\(Role\\)").
			WithArgs("kim", "secret", "editor").
			WillReturnResult(sqlmock.NewResult(0, 2))

		pw := "secret"
		err := store.UpsertAppUser(context.Background(), &models.AppUser{Username: "kim", Password: &pw, Role: models.RoleEditor})
		if err != nil {
			t.Fatalf("UpsertAppUser failed: %v", err)
		}
		checkExpectations(t)
	})
}

func TestMySQL_UpsertAppUserNilPassword(t *testing.T) {
	it(func() {
		mock.ExpectExec("INSERT INTO APP_USERS").
			WithArgs("lee", nil, "viewer").
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := store.UpsertAppUser(context.Background(), &models.AppUser{Username: "lee", Role: models.RoleViewer})
		if err != nil {
			t.Fatalf("UpsertAppUser failed: %v", err)
		}
		checkExpectations(t)
	})
}

func TestMySQL_DeleteDisasterErrors(t *testing.T) {
	testCases := []struct {
		name    string
		execErr error
		result  sql.Result
		want    error
	}{
		{
			name:    "referenced by drones",
			execErr: &mysql.MySQLError{Number: 1451, Message: "Cannot delete or update a parent row: a foreign key constraint fails"},
			want:    ErrConflict,
		},
		{
			name:    "legacy foreign key error",
			execErr: &mysql.MySQLError{Number: 1217, Message: "Cannot delete or update a parent row"},
			want:    ErrConflict,
		},
		{
			name:   "no such row",
			result: sqlmock.NewResult(0, 0),
			want:   ErrNotFound,
		},
		{
			name:    "connection lost",
			execErr: mysql.ErrInvalidConn,
			want:    ErrUnavailable,
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			it(func() {
				exp := mock.ExpectExec("DELETE FROM DISASTER WHERE D_ID = (.+)").WithArgs("D1")
				if testCase.execErr != nil {
					exp.WillReturnError(testCase.execErr)
				} else {
					exp.WillReturnResult(testCase.result)
				}

				err := store.DeleteDisaster(context.Background(), "D1")
				if !errors.Is(err, testCase.want) {
					t.Errorf("expected %v, got %v", testCase.want, err)
				}
				checkExpectations(t)
			})
		})
	}
}

func TestMySQL_DeleteDisasterSuccess(t *testing.T) {
	it(func() {
		mock.ExpectExec("DELETE FROM DISASTER").WithArgs("D2").WillReturnResult(sqlmock.NewResult(0, 1))

		if err := store.DeleteDisaster(context.Background(), "D2"); err != nil {
			t.Errorf("DeleteDisaster failed: %v", err)
		}
		checkExpectations(t)
	})
}

func TestMySQL_AddDroneForeignKeyViolation(t *testing.T) {
	it(func() {
		disaster := "D404"
		payload := 12.5
		mock.ExpectExec("INSERT INTO DRONE").
			WithArgs("DR1", "Matrice", payload, nil, disaster).
			WillReturnError(&mysql.MySQLError{Number: 1452, Message: "Cannot add or update a child row"})

		err := store.AddDrone(context.Background(), &models.Drone{ID: "DR1", Model: "Matrice", Payload: &payload, DisasterID: &disaster})
		if !errors.Is(err, ErrConflict) {
			t.Errorf("expected ErrConflict, got %v", err)
		}
		checkExpectations(t)
	})
}

func TestMySQL_ResolveDisaster(t *testing.T) {
	it(func() {
		at := time.Date(2025, 3, 2, 10, 0, 0, 0, time.UTC)
		mock.ExpectExec("UPDATE DISASTER SET End_Time = (.+) WHERE D_ID = (.+)").
			WithArgs(at, "D1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		if err := store.ResolveDisaster(context.Background(), "D1", at); err != nil {
			t.Errorf("ResolveDisaster failed: %v", err)
		}
		checkExpectations(t)
	})
}

func TestMySQL_MissionPerformanceParsesDecimals(t *testing.T) {
	it(func() {
		mock.ExpectQuery("SELECT (.+) FROM DISASTER D (.+) HAVING COUNT\\(MR.MR_ID\\) > 1").
			WillReturnRows(sqlmock.NewRows([]string{"Disaster_Type", "Average_Success_Rate", "Total_Missions_Completed"}).
				AddRow("Flood", []byte("77.50"), int64(2)).
				AddRow("Storm", nil, int64(3)))

		rows, err := store.MissionPerformanceByType(context.Background())
		if err != nil {
			t.Fatalf("MissionPerformanceByType failed: %v", err)
		}
		if len(rows) != 2 {
			t.Fatalf("expected 2 rows, got %d", len(rows))
		}
		if rows[0].AverageSuccessRate.Decimal.String() != "77.5" || rows[0].TotalMissionsComplete != 2 {
			t.Errorf("unexpected first row %+v", rows[0])
		}
		if rows[1].AverageSuccessRate.Valid {
			t.Errorf("expected NULL average to stay NULL, got %+v", rows[1])
		}
		checkExpectations(t)
	})
}

func TestMySQL_MaintenanceDronesUsesHighSeverities(t *testing.T) {
	it(func() {
		mock.ExpectQuery("SELECT A.D_NO, DR.Model, COUNT\\(A.A_ID\\)").
			WithArgs("High", "Critical").
			WillReturnRows(sqlmock.NewRows([]string{"D_NO", "Model", "Critical_Alert_Count"}).
				AddRow("DR1", "Mavic", int64(3)))

		rows, err := store.MaintenanceDrones(context.Background())
		if err != nil {
			t.Fatalf("MaintenanceDrones failed: %v", err)
		}
		if len(rows) != 1 || rows[0].DroneID != "DR1" || rows[0].CriticalAlertCount != 3 {
			t.Errorf("unexpected rows %+v", rows)
		}
		checkExpectations(t)
	})
}

func TestMySQL_QueryErrorIsNotPartial(t *testing.T) {
	it(func() {
		mock.ExpectQuery("SELECT O.O_ID").
			WillReturnRows(sqlmock.NewRows([]string{"O_ID", "Name", "Certification"}).
				AddRow("O1", "Ana", nil).
				RowError(0, errors.New("read failed")))

		rows, err := store.AvailableOperators(context.Background())
		if err == nil {
			t.Fatal("expected error")
		}
		if rows != nil {
			t.Errorf("expected no partial rows, got %+v", rows)
		}
	})
}

func TestMySQL_Migrate(t *testing.T) {
	it(func() {
		mock.ExpectExec("CREATE TABLE IF NOT EXISTS APP_USERS").WillReturnResult(sqlmock.NewResult(0, 0))

		if err := store.Migrate(context.Background(), false); err != nil {
			t.Errorf("Migrate failed: %v", err)
		}
		checkExpectations(t)
	})

	it(func() {
		for range mysqlSchema {
			mock.ExpectExec("CREATE TABLE IF NOT EXISTS").WillReturnResult(sqlmock.NewResult(0, 0))
		}

		if err := store.Migrate(context.Background(), true); err != nil {
			t.Errorf("Migrate failed: %v", err)
		}
		checkExpectations(t)
	})
}

func TestMySQL_PingUnavailable(t *testing.T) {
	it(func() {
		mock.ExpectPing().WillReturnError(errors.New("dial tcp 127.0.0.1:3306: connect: connection refused"))

		if err := store.Ping(context.Background()); !errors.Is(err, ErrUnavailable) {
			t.Errorf("expected ErrUnavailable, got %v", err)
		}
	})
}

func TestMySQLDriverConfig(t *testing.T) {
	mc := MySQLDriverConfig(config.MySQLConfig{
		Host: "db", Port: 3306, User: "editor_staff", Password: "secret", Database: "drone",
	})

	dsn := mc.FormatDSN()
	for _, want := range []string{"tcp(db:3306)/drone", "parseTime=true", "clientFoundRows=true"} {
		if !strings.Contains(dsn, want) {
			t.Errorf("expected DSN %q to contain %q", dsn, want)
		}
	}
}
