package config

import (
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/navbryce/next-blog-be/db/sqlstore"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

const DefaultSiteTitle = "c0mpos3r's Blog"

type Config struct {
	Host            string
	Port            int
	DBDriver        string
	DBDSN           string
	DBMaxOpenConns  int
	DBMaxIdleConns  int
	GinMode         string
	LogLevel        log.Level
	LogFormat       string
	SiteTitle       string
	CORSOrigins     []string
	SSL             bool
	ShutdownTimeout time.Duration
	Migrate         bool
}

func (c *Config) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

func (c *Config) StoreOptions() *sqlstore.Options {
	return &sqlstore.Options{
		Driver:       c.DBDriver,
		DSN:          c.DBDSN,
		MaxOpenConns: c.DBMaxOpenConns,
		MaxIdleConns: c.DBMaxIdleConns,
	}
}

// DatabaseFlags are shared by every command that touches the database
func DatabaseFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "db-driver",
			Usage:   "Database driver (mysql or sqlite3)",
			EnvVars: []string{"BLOG_DB_DRIVER"},
			Value:   sqlstore.DriverSQLite,
		},
		&cli.StringFlag{
			Name:    "db-dsn",
			Usage:   "Database DSN, e.g. user:pass@tcp(host:3306)/blog for mysql or a file path for sqlite3",
			EnvVars: []string{"BLOG_DB_DSN"},
			Value:   "blog.db",
		},
	}
}

func LogFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "log-level",
			Usage:   "Log level (trace, debug, info, warn, error)",
			EnvVars: []string{"BLOG_LOG_LEVEL"},
			Value:   "info",
		},
		&cli.StringFlag{
			Name:    "log-format",
			Usage:   "Log format (text or json)",
			EnvVars: []string{"BLOG_LOG_FORMAT"},
			Value:   "text",
		},
	}
}

func ServeFlags() []cli.Flag {
	flags := []cli.Flag{
		&cli.StringFlag{
			Name:    "host",
			Usage:   "Address to bind the HTTP server to",
			EnvVars: []string{"BLOG_HOST"},
			Value:   "0.0.0.0",
		},
		&cli.IntFlag{
			Name:    "port",
			Usage:   "Port to bind the HTTP server to",
			EnvVars: []string{"PORT", "BLOG_PORT"},
			Value:   8000,
		},
		&cli.IntFlag{
			Name:    "db-max-open-conns",
			Usage:   "Maximum open database connections (mysql only)",
			EnvVars: []string{"BLOG_DB_MAX_OPEN_CONNS"},
			Value:   50,
		},
		&cli.IntFlag{
			Name:    "db-max-idle-conns",
			Usage:   "Maximum idle database connections (mysql only)",
			EnvVars: []string{"BLOG_DB_MAX_IDLE_CONNS"},
			Value:   50,
		},
		&cli.StringFlag{
			Name:    "gin-mode",
			Usage:   "gin mode (debug, release, test)",
			EnvVars: []string{"GIN_MODE"},
			Value:   gin.ReleaseMode,
		},
		&cli.StringFlag{
			Name:    "site-title",
			Usage:   "Title shown on every page",
			EnvVars: []string{"BLOG_SITE_TITLE"},
			Value:   DefaultSiteTitle,
		},
		&cli.StringFlag{
			Name:    "cors-origins",
			Usage:   "Semicolon separated origins allowed by CORS. CORS is disabled when empty",
			EnvVars: []string{"BLOG_CORS_ORIGINS"},
		},
		&cli.BoolFlag{
			Name:    "ssl",
			Usage:   "Redirect to HTTPS and send HSTS headers",
			EnvVars: []string{"BLOG_SSL"},
		},
		&cli.DurationFlag{
			Name:    "shutdown-timeout",
			Usage:   "Time to wait for in-flight requests on shutdown",
			EnvVars: []string{"BLOG_SHUTDOWN_TIMEOUT"},
			Value:   10 * time.Second,
		},
		&cli.BoolFlag{
			Name:    "migrate",
			Usage:   "Run database migrations before serving",
			EnvVars: []string{"BLOG_MIGRATE"},
		},
	}
	flags = append(flags, DatabaseFlags()...)
	return append(flags, LogFlags()...)
}

// FromContext reads and validates every flag a command may define. Flags a command does not define keep their zero value.
func FromContext(ctx *cli.Context) (*Config, error) {
	level, err := log.ParseLevel(ctx.String("log-level"))
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Host:            ctx.String("host"),
		Port:            ctx.Int("port"),
		DBDriver:        ctx.String("db-driver"),
		DBDSN:           ctx.String("db-dsn"),
		DBMaxOpenConns:  ctx.Int("db-max-open-conns"),
		DBMaxIdleConns:  ctx.Int("db-max-idle-conns"),
		GinMode:         ctx.String("gin-mode"),
		LogLevel:        level,
		LogFormat:       ctx.String("log-format"),
		SiteTitle:       ctx.String("site-title"),
		CORSOrigins:     splitOrigins(ctx.String("cors-origins")),
		SSL:             ctx.Bool("ssl"),
		ShutdownTimeout: ctx.Duration("shutdown-timeout"),
		Migrate:         ctx.Bool("migrate"),
	}
	return cfg, cfg.Validate()
}

func (c *Config) Validate() error {
	switch c.DBDriver {
	case sqlstore.DriverMySQL, sqlstore.DriverSQLite:
	default:
		return fmt.Errorf("unsupported database driver %q", c.DBDriver)
	}
	if c.DBDSN == "" {
		return fmt.Errorf("a database dsn must be set")
	}
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}
	switch c.LogFormat {
	case "", "text", "json":
	default:
		return fmt.Errorf("unsupported log format %q", c.LogFormat)
	}
	return nil
}

// ConfigureLogging applies the log level and format to the global logger
func (c *Config) ConfigureLogging() {
	log.SetLevel(c.LogLevel)
	if c.LogFormat == "json" {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}
}

func splitOrigins(val string) []string {
	var origins []string
	for _, origin := range strings.Split(val, ";") {
		if origin = strings.TrimSpace(origin); origin != "" {
			origins = append(origins, origin)
		}
	}
	return origins
}
