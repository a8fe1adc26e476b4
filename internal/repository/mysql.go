package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/go-sql-driver/mysql"

	"github.com/mr1hm/go-drone-fleet/internal/config"
)

// MySQL server error numbers treated as constraint violations.
const (
	mysqlErrDupEntry           = 1062
	mysqlErrNoReferencedRow    = 1216
	mysqlErrRowIsReferenced    = 1217
	mysqlErrRowIsReferenced2   = 1451
	mysqlErrNoReferencedRow2   = 1452
	mysqlErrTooManyConnections = 1040
)

var MySQLDialect = Dialect{
	name:        "mysql",
	schema:      mysqlSchema,
	appUsersDDL: mysqlAppUsersDDL,
	upsertAppUser: `
		INSERT INTO APP_USERS (Username, Password, Role)
		VALUES (?, ?, ?)
		ON DUPLICATE KEY UPDATE Password = VALUES(Password), Role = VALUES(Role)`,
	classify: classifyMySQL,
}

// MySQLDriverConfig builds the driver configuration. ClientFoundRows makes
// RowsAffected count matched rows, so re-resolving a disaster within the
// same second is not mistaken for a missing row.
func MySQLDriverConfig(c config.MySQLConfig) *mysql.Config {
	mc := mysql.NewConfig()
	mc.User = c.User
	mc.Passwd = c.Password
	mc.Net = "tcp"
	mc.Addr = net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
	mc.DBName = c.Database
	mc.ParseTime = true
	mc.Loc = time.UTC
	mc.ClientFoundRows = true
	return mc
}

// NewMySQLDB connects to the operations database. Only APP_USERS is created
// unless bootstrap is set.
func NewMySQLDB(cfg config.DatabaseConfig) (*SQLStore, error) {
	connector, err := mysql.NewConnector(MySQLDriverConfig(cfg.MySQL))
	if err != nil {
		return nil, fmt.Errorf("error configuring mysql: %w", err)
	}
	db := sql.OpenDB(connector)
	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxOpenConns)
	db.SetConnMaxLifetime(3 * time.Minute)

	s := New(db, MySQLDialect)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := s.Ping(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("error while pinging database: %w", err)
	}
	if err := s.Migrate(ctx, cfg.BootstrapSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("error while migrating database: %w", err)
	}

	return s, nil
}

func classifyMySQL(err error) error {
	var me *mysql.MySQLError
	if errors.As(err, &me) {
		switch me.Number {
		case mysqlErrDupEntry, mysqlErrNoReferencedRow, mysqlErrRowIsReferenced,
			mysqlErrRowIsReferenced2, mysqlErrNoReferencedRow2:
			return fmt.Errorf("%w: %w", ErrConflict, err)
		case mysqlErrTooManyConnections:
			return fmt.Errorf("%w: %w", ErrUnavailable, err)
		}
	}
	if errors.Is(err, mysql.ErrInvalidConn) {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	return classifyCommon(err)
}
