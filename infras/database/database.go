package database

//nolint:revive
import (
	"errors"
	"fmt"
	"net"
	"roombook/config"
	"roombook/shared/constant"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/rs/zerolog/log"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

const (
	postgresMaxIdleConnection = 10
	postgresMaxOpenConnection = 10

	// sqlite allows a single writer; one connection keeps transactions serialized
	sqliteMaxOpenConnection = 1
	sqliteBusyTimeoutMillis = 5000
)

func init() {
	sqlx.BindDriver(constant.DBDriverSQLite, sqlx.QUESTION)
}

type Connection struct {
	Read   *sqlx.DB
	Write  *sqlx.DB
	Driver string
}

func New(config *config.Config) *Connection {
	if config.DB.Driver == constant.DBDriverSQLite {
		conn, err := NewSQLite(config.DB.SQLite.Path)
		if err != nil {
			log.Fatal().Err(err).Str("path", config.DB.SQLite.Path).Msg("Failed to open sqlite database")
		}

		return conn
	}

	return &Connection{
		Read:   CreatePostgresReadConn(*config),
		Write:  CreatePostgresWriteConn(*config),
		Driver: constant.DBDriverPostgres,
	}
}

// NewSQLite opens a file backed database shared by reads and writes.
func NewSQLite(path string) (*Connection, error) {
	if path == "" {
		return nil, errors.New("sqlite path is required")
	}

	dsn := fmt.Sprintf("file:%s?_pragma=foreign_keys(1)&_pragma=busy_timeout(%d)&_txlock=immediate", path, sqliteBusyTimeoutMillis)

	db, err := sqlx.Connect(constant.DBDriverSQLite, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect sqlite: %w", err)
	}

	db.SetMaxOpenConns(sqliteMaxOpenConnection)

	log.Info().Str("path", path).Msg("Connected to sqlite database")

	return &Connection{Read: db, Write: db, Driver: constant.DBDriverSQLite}, nil
}

func (c *Connection) Close() error {
	var errs []error

	if c.Write != nil {
		errs = append(errs, c.Write.Close())
	}

	if c.Read != nil && c.Read != c.Write {
		errs = append(errs, c.Read.Close())
	}

	return errors.Join(errs...)
}

// IsUniqueViolation reports whether err is a unique or primary key violation from either driver.
func IsUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == constant.PqErrorCodeUniqueViolation
	}

	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		switch liteErr.Code() {
		case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
			return true
		case sqlite3.SQLITE_CONSTRAINT:
			return strings.Contains(liteErr.Error(), "UNIQUE constraint failed")
		}
	}

	return false
}

// getDBName returns the database name with prefix if configured
func getDBName(config config.Config, baseName string) string {
	if config.DB.Postgres.Prefix != "" {
		return config.DB.Postgres.Prefix + baseName
	}

	return baseName
}

// CreatePostgresWriteConn creates a database connection for write access.
func CreatePostgresWriteConn(config config.Config) *sqlx.DB {
	return CreatePostgresConnection(
		"write",
		config.DB.Postgres.Write.Username,
		config.DB.Postgres.Write.Password,
		config.DB.Postgres.Write.Host,
		config.DB.Postgres.Write.Port,
		getDBName(config, config.DB.Postgres.Write.Name),
		config.DB.Postgres.Write.SSLMode,
		config.DB.Postgres.MaxRetry,
		config.DB.Postgres.RetryWaitTime,
	)
}

// CreatePostgresReadConn creates a database connection for read access.
func CreatePostgresReadConn(config config.Config) *sqlx.DB {
	return CreatePostgresConnection(
		"read",
		config.DB.Postgres.Read.Username,
		config.DB.Postgres.Read.Password,
		config.DB.Postgres.Read.Host,
		config.DB.Postgres.Read.Port,
		getDBName(config, config.DB.Postgres.Read.Name),
		config.DB.Postgres.Read.SSLMode,
		config.DB.Postgres.MaxRetry,
		config.DB.Postgres.RetryWaitTime,
	)
}

// PostgresDSN builds the connection url shared by the app and the migrator.
func PostgresDSN(username, password, host, port, dbName, sslMode string) string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s/%s?sslmode=%s",
		username,
		password,
		net.JoinHostPort(host, port),
		dbName,
		sslMode,
	)
}

// CreatePostgresConnection creates a database connection.
func CreatePostgresConnection(name, username, password, host, port, dbName, sslMode string, maxRetry, waitTime int) *sqlx.DB {
	descriptor := PostgresDSN(username, password, host, port, dbName, sslMode)

	for retry := range max(maxRetry, 1) {
		sqlDB, err := sqlx.Connect(constant.DBDriverPostgres, descriptor)
		if err == nil {
			log.
				Info().
				Str("name", name).
				Str("host", host).
				Str("port", port).
				Str("dbName", dbName).
				Msg("Connected to database")
			sqlDB.SetMaxIdleConns(postgresMaxIdleConnection)
			sqlDB.SetMaxOpenConns(postgresMaxOpenConnection)

			return sqlDB
		}

		log.
			Error().
			Err(err).
			Str("name", name).
			Str("host", host).
			Str("port", port).
			Str("dbName", dbName).
			Int("attempt", retry+1).
			Msg("Failed connecting to database, retrying")

		time.Sleep(time.Duration(waitTime) * time.Second)
	}

	log.Fatal().Str("name", name).Str("host", host).Msg("Giving up connecting to database")

	return nil
}
