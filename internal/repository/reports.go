package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/mr1hm/go-drone-fleet/internal/models"
)

// payloadTierExpr mirrors models.TierForPayload in SQL.
var payloadTierExpr = fmt.Sprintf(
	"CASE WHEN Payload <= %s THEN '%s' WHEN Payload <= %s THEN '%s' ELSE '%s' END",
	strconv.FormatFloat(models.LightMaxPayload, 'f', -1, 64), models.TierLight,
	strconv.FormatFloat(models.MediumMaxPayload, 'f', -1, 64), models.TierMedium,
	models.TierHeavy,
)

const (
	missionPerformanceQuery = `
		SELECT
			D.Type AS Disaster_Type,
			ROUND(AVG(MR.Success_Rate), 2) AS Average_Success_Rate,
			COUNT(MR.MR_ID) AS Total_Missions_Completed
		FROM DISASTER D
		JOIN DRONE DR ON D.D_ID = DR.D_ID
		JOIN ALERTS A ON DR.D_NO = A.D_NO
		JOIN MISSION_REPORT MR ON A.MR_ID = MR.MR_ID
		GROUP BY D.Type
		HAVING COUNT(MR.MR_ID) > 1
		ORDER BY Average_Success_Rate DESC, Disaster_Type ASC`

	availableOperatorsQuery = `
		SELECT O.O_ID, O.Name, O.Certification
		FROM OPERATOR O
		WHERE NOT EXISTS (
			SELECT 1
			FROM ASSIGNED_TO A
			JOIN DISASTER D ON A.D_ID = D.D_ID
			WHERE A.O_ID = O.O_ID AND D.End_Time IS NULL
		)
		ORDER BY O.Name, O.O_ID`

	maintenanceDronesQuery = `
		SELECT A.D_NO, DR.Model, COUNT(A.A_ID) AS Critical_Alert_Count
		FROM ALERTS A
		JOIN DRONE DR ON A.D_NO = DR.D_NO
		WHERE A.Severity IN (?, ?)
		GROUP BY A.D_NO, DR.Model
		ORDER BY Critical_Alert_Count DESC, A.D_NO ASC`

	ongoingResourcesQuery = `
		SELECT
			D.D_ID,
			D.Type AS Disaster_Type,
			COUNT(DR.D_NO) AS Active_Drones,
			ROUND(SUM(DR.Payload), 2) AS Total_Payload_Used
		FROM DISASTER D
		JOIN DRONE DR ON D.D_ID = DR.D_ID
		WHERE D.End_Time IS NULL
		GROUP BY D.D_ID, D.Type
		ORDER BY D.D_ID`

	ongoingDisastersCountQuery = `SELECT COUNT(*) FROM DISASTER WHERE End_Time IS NULL`

	ongoingMissionsCountQuery = `
		SELECT COUNT(DISTINCT MR.MR_ID)
		FROM MISSION_REPORT MR
		JOIN ALERTS A ON MR.MR_ID = A.MR_ID
		JOIN DRONE DR ON A.D_NO = DR.D_NO
		JOIN DISASTER D ON DR.D_ID = D.D_ID
		WHERE D.End_Time IS NULL`

	missionReportsCountQuery = `SELECT COUNT(*) FROM MISSION_REPORT`

	dronesCountQuery = `SELECT COUNT(*) FROM DRONE`

	maintenanceDronesCountQuery = `
		SELECT COUNT(DISTINCT A.D_NO)
		FROM ALERTS A
		JOIN DRONE DR ON A.D_NO = DR.D_NO
		WHERE A.Severity IN (?, ?)`

	recentDisastersQuery = `
		SELECT
			Name,
			Type,
			Location,
			Start_Time,
			CASE WHEN End_Time IS NULL THEN 'Ongoing' ELSE 'Resolved' END AS Status
		FROM DISASTER
		ORDER BY Start_Time DESC, D_ID
		LIMIT ?`

	personnelQuery = `SELECT Name, Certification FROM OPERATOR ORDER BY Name, O_ID`
)

var payloadTiersQuery = `
		SELECT ` + payloadTierExpr + ` AS Payload_Tier, COUNT(*) AS Total_Drones
		FROM DRONE
		WHERE Payload IS NOT NULL
		GROUP BY Payload_Tier
		ORDER BY Payload_Tier`

func maintenanceArgs() []any {
	args := make([]any, len(models.MaintenanceSeverities))
	for i, sev := range models.MaintenanceSeverities {
		args[i] = string(sev)
	}
	return args
}

// roundedNull keeps two decimal places regardless of how the engine typed
// the aggregate.
func roundedNull(d decimal.NullDecimal) decimal.NullDecimal {
	if d.Valid {
		d.Decimal = d.Decimal.Round(2)
	}
	return d
}

func (s *SQLStore) MissionPerformanceByType(ctx context.Context) ([]models.MissionPerformanceRow, error) {
	return queryRows(ctx, s, "mission performance", missionPerformanceQuery, func(rows *sql.Rows) (models.MissionPerformanceRow, error) {
		var r models.MissionPerformanceRow
		err := rows.Scan(&r.DisasterType, &r.AverageSuccessRate, &r.TotalMissionsComplete)
		r.AverageSuccessRate = roundedNull(r.AverageSuccessRate)
		return r, err
	})
}

func (s *SQLStore) AvailableOperators(ctx context.Context) ([]models.AvailableOperatorRow, error) {
	return queryRows(ctx, s, "available operators", availableOperatorsQuery, func(rows *sql.Rows) (models.AvailableOperatorRow, error) {
		var (
			r    models.AvailableOperatorRow
			cert sql.NullString
		)
		err := rows.Scan(&r.OperatorID, &r.Name, &cert)
		r.Certification = nullString(cert)
		return r, err
	})
}

func (s *SQLStore) MaintenanceDrones(ctx context.Context) ([]models.MaintenanceDroneRow, error) {
	return queryRows(ctx, s, "maintenance drones", maintenanceDronesQuery, func(rows *sql.Rows) (models.MaintenanceDroneRow, error) {
		var r models.MaintenanceDroneRow
		err := rows.Scan(&r.DroneID, &r.Model, &r.CriticalAlertCount)
		return r, err
	}, maintenanceArgs()...)
}

func (s *SQLStore) OngoingResources(ctx context.Context) ([]models.OngoingResourceRow, error) {
	return queryRows(ctx, s, "ongoing resources", ongoingResourcesQuery, func(rows *sql.Rows) (models.OngoingResourceRow, error) {
		var r models.OngoingResourceRow
		err := rows.Scan(&r.DisasterID, &r.DisasterType, &r.ActiveDrones, &r.TotalPayloadUsed)
		r.TotalPayloadUsed = roundedNull(r.TotalPayloadUsed)
		return r, err
	})
}

func (s *SQLStore) PayloadTiers(ctx context.Context) ([]models.PayloadTierRow, error) {
	return queryRows(ctx, s, "payload tiers", payloadTiersQuery, func(rows *sql.Rows) (models.PayloadTierRow, error) {
		var (
			r    models.PayloadTierRow
			tier string
		)
		err := rows.Scan(&tier, &r.TotalDrones)
		r.Tier = models.PayloadTier(tier)
		return r, err
	})
}

func (s *SQLStore) CountOngoingDisasters(ctx context.Context) (int64, error) {
	return s.count(ctx, "count ongoing disasters", ongoingDisastersCountQuery)
}

func (s *SQLStore) CountOngoingMissions(ctx context.Context) (int64, error) {
	return s.count(ctx, "count ongoing missions", ongoingMissionsCountQuery)
}

func (s *SQLStore) CountMissionReports(ctx context.Context) (int64, error) {
	return s.count(ctx, "count mission reports", missionReportsCountQuery)
}

func (s *SQLStore) CountDrones(ctx context.Context) (int64, error) {
	return s.count(ctx, "count drones", dronesCountQuery)
}

func (s *SQLStore) CountMaintenanceDrones(ctx context.Context) (int64, error) {
	return s.count(ctx, "count maintenance drones", maintenanceDronesCountQuery, maintenanceArgs()...)
}

func (s *SQLStore) RecentDisasters(ctx context.Context, limit int) ([]models.RecentDisasterRow, error) {
	return queryRows(ctx, s, "recent disasters", recentDisastersQuery, func(rows *sql.Rows) (models.RecentDisasterRow, error) {
		var (
			r      models.RecentDisasterRow
			status string
		)
		err := rows.Scan(&r.Name, &r.Type, &r.Location, &r.StartTime, &status)
		r.Status = models.DisasterStatus(status)
		return r, err
	}, limit)
}

func (s *SQLStore) Personnel(ctx context.Context) ([]models.PersonnelRow, error) {
	return queryRows(ctx, s, "personnel", personnelQuery, func(rows *sql.Rows) (models.PersonnelRow, error) {
		var (
			r    models.PersonnelRow
			cert sql.NullString
		)
		err := rows.Scan(&r.Name, &cert)
		r.Certification = nullString(cert)
		return r, err
	})
}
