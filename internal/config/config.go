package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/m04kA/SMC-SchedulerService/internal/domain"
	"github.com/m04kA/SMC-SchedulerService/internal/service/calendar"
	"github.com/m04kA/SMC-SchedulerService/pkg/types"
)

// EnvPrefix префикс переменных окружения, например SCHEDULER_ADMIN_SECRET
const EnvPrefix = "SCHEDULER"

// Драйверы основного хранилища
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverMemory   = "memory"
)

var (
	// ErrLoad не удалось прочитать файл или окружение
	ErrLoad = errors.New("config: failed to load")

	// ErrInvalid конфигурация не прошла проверку
	ErrInvalid = errors.New("config: invalid")
)

// Config конфигурация сервиса
type Config struct {
	Server        ServerConfig        `toml:"server" envconfig:"SERVER"`
	Logs          LogsConfig          `toml:"logs" envconfig:"LOGS"`
	Metrics       MetricsConfig       `toml:"metrics" envconfig:"METRICS"`
	Storage       StorageConfig       `toml:"storage" envconfig:"STORAGE"`
	Database      DatabaseConfig      `toml:"database" envconfig:"DATABASE"`
	SQLite        SQLiteConfig        `toml:"sqlite" envconfig:"SQLITE"`
	Mirror        MirrorConfig        `toml:"mirror" envconfig:"MIRROR"`
	Admin         AdminConfig         `toml:"admin" envconfig:"ADMIN"`
	Policy        PolicyConfig        `toml:"policy" envconfig:"POLICY"`
	Notifications NotificationsConfig `toml:"notifications" envconfig:"NOTIFICATIONS"`
}

// ServerConfig параметры HTTP сервера (таймауты в секундах)
type ServerConfig struct {
	HTTPPort        int `toml:"http_port" split_words:"true"`
	ReadTimeout     int `toml:"read_timeout" split_words:"true"`
	WriteTimeout    int `toml:"write_timeout" split_words:"true"`
	IdleTimeout     int `toml:"idle_timeout" split_words:"true"`
	ShutdownTimeout int `toml:"shutdown_timeout" split_words:"true"`
}

// LogsConfig параметры логирования; пустой File - только stdout
type LogsConfig struct {
	File  string `toml:"file" split_words:"true"`
	Level string `toml:"level" split_words:"true"`
}

// MetricsConfig параметры Prometheus
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled" split_words:"true"`
	ServiceName string `toml:"service_name" split_words:"true"`
	Path        string `toml:"path" split_words:"true"`
}

// StorageConfig выбор основного хранилища и таймауты операций (в миллисекундах)
type StorageConfig struct {
	Driver             string `toml:"driver" split_words:"true"`
	OperationTimeoutMs int    `toml:"operation_timeout_ms" split_words:"true"`
	MirrorTimeoutMs    int    `toml:"mirror_timeout_ms" split_words:"true"`
}

// DatabaseConfig параметры PostgreSQL
type DatabaseConfig struct {
	Host            string `toml:"host" split_words:"true"`
	Port            int    `toml:"port" split_words:"true"`
	User            string `toml:"user" split_words:"true"`
	Password        string `toml:"password" split_words:"true"`
	DBName          string `toml:"dbname" split_words:"true"`
	SSLMode         string `toml:"sslmode" split_words:"true"`
	MaxOpenConns    int    `toml:"max_open_conns" split_words:"true"`
	MaxIdleConns    int    `toml:"max_idle_conns" split_words:"true"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime" split_words:"true"`
}

// SQLiteConfig путь к файлу базы
type SQLiteConfig struct {
	Path string `toml:"path" split_words:"true"`
}

// MirrorConfig вторичное хранилище в Redis
type MirrorConfig struct {
	Enabled  bool   `toml:"enabled" split_words:"true"`
	Addr     string `toml:"addr" split_words:"true"`
	Password string `toml:"password" split_words:"true"`
	DB       int    `toml:"db" split_words:"true"`
	Prefix   string `toml:"prefix" split_words:"true"`
}

// AdminConfig общий секрет администратора; пустой секрет закрывает админские операции
type AdminConfig struct {
	Secret string `toml:"secret" split_words:"true"`
}

// HolidayConfig дополнительный праздник, повторяющийся каждый год
type HolidayConfig struct {
	Name  string `toml:"name"`
	Month int    `toml:"month"`
	Day   int    `toml:"day"`
}

// PolicyConfig рабочий календарь
type PolicyConfig struct {
	OpenHour        int             `toml:"open_hour" split_words:"true"`
	CloseHour       int             `toml:"close_hour" split_words:"true"`
	LunchStart      string          `toml:"lunch_start" split_words:"true"`
	LunchEnd        string          `toml:"lunch_end" split_words:"true"`
	RejectPastDates bool            `toml:"reject_past_dates" split_words:"true"`
	Timezone        string          `toml:"timezone" split_words:"true"`
	Holidays        []HolidayConfig `toml:"holidays" ignored:"true"`
}

// PartyConfig участник встречи
type PartyConfig struct {
	Name  string `toml:"name" split_words:"true"`
	Email string `toml:"email" split_words:"true"`
}

// RecipientConfig внутренний получатель уведомлений
type RecipientConfig struct {
	Name     string `toml:"name"`
	Email    string `toml:"email"`
	Optional bool   `toml:"optional"`
}

// InviteConfig текст календарного приглашения
type InviteConfig struct {
	Summary  string `toml:"summary" split_words:"true"`
	Location string `toml:"location" split_words:"true"`
}

// EmailConfig параметры SMTP; без логина и пароля письма не отправляются
type EmailConfig struct {
	Host     string `toml:"host" split_words:"true"`
	Port     int    `toml:"port" split_words:"true"`
	Username string `toml:"username" split_words:"true"`
	Password string `toml:"password" split_words:"true"`
	SSL      bool   `toml:"ssl" split_words:"true"`
	FromName string `toml:"from_name" split_words:"true"`
	Subject  string `toml:"subject" split_words:"true"`
	SignOff  string `toml:"sign_off" split_words:"true"`
}

// GoogleCalendarConfig сервисный аккаунт Google; пустой - интеграция выключена
type GoogleCalendarConfig struct {
	ServiceAccountEmail string `toml:"service_account_email" split_words:"true"`
	PrivateKey          string `toml:"private_key" split_words:"true"`
	CalendarID          string `toml:"calendar_id" split_words:"true"`
	TimeZone            string `toml:"time_zone" split_words:"true"`
}

// AMQPConfig публикация событий booking.confirmed; пустой URL - выключено
type AMQPConfig struct {
	URL      string `toml:"url" split_words:"true"`
	Exchange string `toml:"exchange" split_words:"true"`
}

// WebhookConfig POST подтвержденного бронирования; пустой URL - выключено
type WebhookConfig struct {
	URL     string `toml:"url" split_words:"true"`
	Secret  string `toml:"secret" split_words:"true"`
	Timeout int    `toml:"timeout" split_words:"true"`
}

// NotificationsConfig фоновая доставка уведомлений
type NotificationsConfig struct {
	QueueSize       int                  `toml:"queue_size" split_words:"true"`
	Workers         int                  `toml:"workers" split_words:"true"`
	Rate            float64              `toml:"rate" split_words:"true"`
	Burst           int                  `toml:"burst" split_words:"true"`
	DeliveryTimeout int                  `toml:"delivery_timeout" split_words:"true"`
	Organizer       PartyConfig          `toml:"organizer" envconfig:"ORGANIZER"`
	Recipients      []RecipientConfig    `toml:"recipients" ignored:"true"`
	Invite          InviteConfig         `toml:"invite" envconfig:"INVITE"`
	Email           EmailConfig          `toml:"email" envconfig:"EMAIL"`
	GoogleCalendar  GoogleCalendarConfig `toml:"google_calendar" envconfig:"GOOGLE_CALENDAR"`
	AMQP            AMQPConfig           `toml:"amqp" envconfig:"AMQP"`
	Webhook         WebhookConfig        `toml:"webhook" envconfig:"WEBHOOK"`
}

// Default значения по умолчанию: хранилище в памяти, метрики и зеркало выключены
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     10,
			WriteTimeout:    10,
			IdleTimeout:     60,
			ShutdownTimeout: 15,
		},
		Logs: LogsConfig{Level: "info"},
		Metrics: MetricsConfig{
			ServiceName: "scheduler",
			Path:        "/metrics",
		},
		Storage: StorageConfig{
			Driver:             DriverMemory,
			OperationTimeoutMs: 3000,
			MirrorTimeoutMs:    2000,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			User:            "postgres",
			DBName:          "scheduler",
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		SQLite: SQLiteConfig{Path: "scheduler.db"},
		Mirror: MirrorConfig{
			Addr:   "localhost:6379",
			Prefix: "scheduler:",
		},
		Policy: PolicyConfig{
			OpenHour:   domain.DefaultOpenHour,
			CloseHour:  domain.DefaultCloseHour,
			LunchStart: domain.DefaultLunchStart,
			LunchEnd:   domain.DefaultLunchEnd,
			Timezone:   domain.DefaultTimezone,
		},
		Notifications: NotificationsConfig{
			QueueSize:       100,
			Workers:         2,
			Rate:            5,
			Burst:           5,
			DeliveryTimeout: 10,
			Invite: InviteConfig{
				Summary:  "Call Booking",
				Location: "Phone call",
			},
			Email: EmailConfig{
				Host:     "smtp.gmail.com",
				Port:     587,
				FromName: "Scheduler",
				Subject:  "Your call is booked",
				SignOff:  "Thank you",
			},
			GoogleCalendar: GoogleCalendarConfig{
				CalendarID: "primary",
				TimeZone:   domain.DefaultTimezone,
			},
			AMQP:    AMQPConfig{Exchange: "scheduler.events"},
			Webhook: WebhookConfig{Timeout: 5},
		},
	}
}

// Load собирает конфигурацию: значения по умолчанию, затем TOML-файл (если есть),
// затем .env и переменные окружения с префиксом SCHEDULER
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if _, err := toml.DecodeFile(path, cfg); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: decode %s: %v", ErrLoad, path, err)
		}
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: .env: %v", ErrLoad, err)
	}

	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("%w: environment: %v", ErrLoad, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate проверяет согласованность значений
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: server.http_port %d", ErrInvalid, c.Server.HTTPPort)
	}

	switch c.Storage.Driver {
	case DriverPostgres, DriverSQLite, DriverMemory:
	default:
		return fmt.Errorf("%w: storage.driver %q (want %s, %s or %s)",
			ErrInvalid, c.Storage.Driver, DriverPostgres, DriverSQLite, DriverMemory)
	}
	if c.Storage.OperationTimeoutMs <= 0 {
		return fmt.Errorf("%w: storage.operation_timeout_ms must be positive", ErrInvalid)
	}
	if c.Storage.Driver == DriverSQLite && c.SQLite.Path == "" {
		return fmt.Errorf("%w: sqlite.path is required for the sqlite driver", ErrInvalid)
	}
	if c.Mirror.Enabled && c.Mirror.Addr == "" {
		return fmt.Errorf("%w: mirror.addr is required when the mirror is enabled", ErrInvalid)
	}
	if c.Notifications.Rate < 0 {
		return fmt.Errorf("%w: notifications.rate must not be negative", ErrInvalid)
	}

	if _, err := c.Policy.CalendarConfig(); err != nil {
		return err
	}

	return nil
}

// DSN строка подключения к PostgreSQL
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// CalendarConfig конвертирует секцию policy в конфигурацию календаря
// Праздники из файла добавляются к фиксированным
func (p PolicyConfig) CalendarConfig() (calendar.Config, error) {
	loc, err := time.LoadLocation(p.Timezone)
	if err != nil {
		return calendar.Config{}, fmt.Errorf("%w: policy.timezone %q: %v", ErrInvalid, p.Timezone, err)
	}

	lunchStart, err := types.NewTimeStringFromString(p.LunchStart)
	if err != nil {
		return calendar.Config{}, fmt.Errorf("%w: policy.lunch_start: %v", ErrInvalid, err)
	}
	lunchEnd, err := types.NewTimeStringFromString(p.LunchEnd)
	if err != nil {
		return calendar.Config{}, fmt.Errorf("%w: policy.lunch_end: %v", ErrInvalid, err)
	}

	holidays := append([]domain.Holiday(nil), domain.DefaultHolidays...)
	for _, h := range p.Holidays {
		if h.Month < 1 || h.Month > 12 || h.Day < 1 || h.Day > 31 {
			return calendar.Config{}, fmt.Errorf("%w: policy.holidays %q: month/day %d/%d", ErrInvalid, h.Name, h.Month, h.Day)
		}
		holidays = append(holidays, domain.Holiday{Month: time.Month(h.Month), Day: h.Day, Name: h.Name})
	}

	return calendar.Config{
		OpenHour:        p.OpenHour,
		CloseHour:       p.CloseHour,
		LunchStart:      lunchStart,
		LunchEnd:        lunchEnd,
		Holidays:        holidays,
		RejectPastDates: p.RejectPastDates,
		Location:        loc,
	}, nil
}

// OperationTimeout таймаут одной операции основного хранилища
func (s StorageConfig) OperationTimeout() time.Duration {
	return time.Duration(s.OperationTimeoutMs) * time.Millisecond
}

// MirrorTimeout таймаут одной записи в зеркало
func (s StorageConfig) MirrorTimeout() time.Duration {
	return time.Duration(s.MirrorTimeoutMs) * time.Millisecond
}
