package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	mysqldriver "github.com/go-sql-driver/mysql"
	_ "github.com/mattn/go-sqlite3"
	db2 "github.com/navbryce/next-blog-be/db"
	"github.com/upper/db/v4"
	"github.com/upper/db/v4/adapter/mysql"
	"github.com/upper/db/v4/adapter/sqlite"
)

const (
	DriverMySQL  = "mysql"
	DriverSQLite = "sqlite3"
)

type Options struct {
	Driver       string
	DSN          string
	MaxOpenConns int
	MaxIdleConns int
}

type SQLStore struct {
	*PostDB
	sess  db.Session
	sqlDB *sql.DB
}

func GetDatabase(opts *Options) (db2.Database, error) {
	sqlDB, err := openSQLDB(opts)
	if err != nil {
		return nil, err
	}

	var sess db.Session
	switch opts.Driver {
	case DriverMySQL:
		sess, err = mysql.New(sqlDB)
	case DriverSQLite:
		sess, err = sqlite.New(sqlDB)
	}
	if err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("error creating %v session: %w", opts.Driver, err)
	}

	return &SQLStore{
		PostDB: getPostDB(sess),
		sess:   sess,
		sqlDB:  sqlDB,
	}, nil
}

// NormalizeDSN forces the driver settings the store relies on, like parseTime for mysql
func NormalizeDSN(driver, dsn string) (string, error) {
	switch driver {
	case DriverMySQL:
		cfg, err := mysqldriver.ParseDSN(dsn)
		if err != nil {
			return "", fmt.Errorf("invalid mysql dsn: %w", err)
		}
		cfg.ParseTime = true
		cfg.Loc = time.UTC
		return cfg.FormatDSN(), nil
	case DriverSQLite:
		return dsn, nil
	default:
		return "", fmt.Errorf("unsupported database driver %q", driver)
	}
}

func openSQLDB(opts *Options) (*sql.DB, error) {
	dsn, err := NormalizeDSN(opts.Driver, opts.DSN)
	if err != nil {
		return nil, err
	}
	sqlDB, err := sql.Open(opts.Driver, dsn)
	if err != nil {
		return nil, err
	}

	if opts.Driver == DriverSQLite {
		// one writer at a time
		sqlDB.SetMaxOpenConns(1)
		sqlDB.SetMaxIdleConns(1)
	} else {
		sqlDB.SetMaxOpenConns(opts.MaxOpenConns)
		sqlDB.SetMaxIdleConns(opts.MaxIdleConns)
	}
	sqlDB.SetConnMaxLifetime(time.Hour)
	return sqlDB, nil
}

func (s *SQLStore) Ping(ctx context.Context) error {
	return s.sqlDB.PingContext(ctx)
}

func (s *SQLStore) GetSQLDB() *sql.DB {
	return s.sqlDB
}

func (s *SQLStore) Close() error {
	return s.sess.Close()
}
