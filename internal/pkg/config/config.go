package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// -----------------------------------------------------------------------------
// Environment variable configuration guidelines:
// - required: Values that differ between environments (port, DB connection, etc.), security settings
// - default: Values common across all environments (timezone, business hours, etc.)
// -----------------------------------------------------------------------------

type Config struct {
	Server    ServerConfig
	DB        DBConfig
	CORS      CORSConfig
	Log       LogConfig
	JWT       JWTConfig
	Club      ClubConfig
	Scheduler SchedulerConfig
}

type ServerConfig struct {
	Port string `envconfig:"PORT" required:"true"`
}

type DBConfig struct {
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER" required:"true"`
	Password string `envconfig:"DB_PASSWORD" required:"true"`
	DBName   string `envconfig:"DB_NAME" required:"true"`
	SSLMode  string `envconfig:"DB_SSL_MODE" default:"disable"`
}

type CORSConfig struct {
	AllowOrigins     []string      `envconfig:"CORS_ALLOW_ORIGINS" default:"http://localhost:3000,http://localhost:5173"`
	AllowMethods     []string      `envconfig:"CORS_ALLOW_METHODS" default:"GET,POST,PUT,PATCH,DELETE,OPTIONS"`
	AllowHeaders     []string      `envconfig:"CORS_ALLOW_HEADERS" default:"Origin,Content-Type,Accept,Authorization"`
	ExposeHeaders    []string      `envconfig:"CORS_EXPOSE_HEADERS" default:"Content-Length"`
	AllowCredentials bool          `envconfig:"CORS_ALLOW_CREDENTIALS" default:"true"`
	MaxAge           time.Duration `envconfig:"CORS_MAX_AGE" default:"12h"`
}

type LogConfig struct {
	Level      string `envconfig:"LOG_LEVEL" default:"info"`
	TimeFormat string `envconfig:"LOG_TIME_FORMAT" default:"2006-01-02 15:04:05.000"`
}

// JWT tokens are issued by the club's identity service; this module only
// verifies them for operator endpoints.
type JWTConfig struct {
	Secret string `envconfig:"JWT_SECRET" required:"true"`
}

// ClubConfig carries the typed business configuration that used to live in a
// string-keyed settings table: the club timezone and the weekly opening hours
// from which the per-slot schedule bitmap is compiled once at startup.
type ClubConfig struct {
	Timezone string `envconfig:"CLUB_TIMEZONE" default:"America/Argentina/Buenos_Aires"`

	// Default opening hours applied to every weekday. A close of "00:00"
	// means open through end of day.
	OpenTime  string `envconfig:"CLUB_OPEN_TIME" default:"09:00"`
	CloseTime string `envconfig:"CLUB_CLOSE_TIME" default:"23:00"`

	// Optional per-day overrides, "HH:MM-HH:MM" or "closed". Empty means the
	// default hours apply. Days follow time.Weekday numbering (0 = Sunday).
	Sunday    string `envconfig:"CLUB_HOURS_SUNDAY" default:""`
	Monday    string `envconfig:"CLUB_HOURS_MONDAY" default:""`
	Tuesday   string `envconfig:"CLUB_HOURS_TUESDAY" default:""`
	Wednesday string `envconfig:"CLUB_HOURS_WEDNESDAY" default:""`
	Thursday  string `envconfig:"CLUB_HOURS_THURSDAY" default:""`
	Friday    string `envconfig:"CLUB_HOURS_FRIDAY" default:""`
	Saturday  string `envconfig:"CLUB_HOURS_SATURDAY" default:""`
}

// DayOverrides returns the per-weekday override strings indexed by
// time.Weekday.
func (c ClubConfig) DayOverrides() [7]string {
	return [7]string{c.Sunday, c.Monday, c.Tuesday, c.Wednesday, c.Thursday, c.Friday, c.Saturday}
}

type SchedulerConfig struct {
	// Cron expression for the daily recurring-booking expansion job.
	ExpandCron string `envconfig:"SCHEDULER_EXPAND_CRON" default:"0 4 * * *"`
	// How many days ahead the expander materializes recurring bookings.
	ExpandHorizonDays int `envconfig:"SCHEDULER_EXPAND_HORIZON_DAYS" default:"7"`
	// How often abandoned pending payments/sales are swept out.
	PurgeInterval time.Duration `envconfig:"SCHEDULER_PURGE_INTERVAL" default:"10m"`
	// Disable the in-process scheduler (e.g. when a separate worker runs it).
	Disabled bool `envconfig:"SCHEDULER_DISABLED" default:"false"`
}

func (c *DBConfig) BuildDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode,
	)
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to process env config: %w", err)
	}
	return cfg, nil
}

func NewTestConfig() Config {
	return Config{
		Server: ServerConfig{
			Port: "8889", // Test port
		},
		DB: DBConfig{
			Host:     "localhost",
			Port:     "15433", // Test DB port
			User:     "test",
			Password: "test",
			DBName:   "test_db",
			SSLMode:  "disable",
		},
		Log: LogConfig{
			Level:      "error", // Error level only for tests
			TimeFormat: "2006-01-02 15:04:05.000",
		},
		JWT: JWTConfig{
			Secret: "test-secret",
		},
		Club: ClubConfig{
			Timezone:  "America/Argentina/Buenos_Aires",
			OpenTime:  "09:00",
			CloseTime: "23:00",
		},
		Scheduler: SchedulerConfig{
			ExpandCron:        "0 4 * * *",
			ExpandHorizonDays: 7,
			PurgeInterval:     10 * time.Minute,
			Disabled:          true,
		},
	}
}
