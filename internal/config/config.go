package config

import (
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config is the application configuration loaded from config.yml.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Booking   BookingConfig   `yaml:"booking"`
	Generator GeneratorConfig `yaml:"generator"`
}

type ServerConfig struct {
	Port int `yaml:"port" validate:"gte=0,lte=65535"`
}

type BookingConfig struct {
	// BoardingWindowMinutes is how long before departure a trip switches
	// from scheduled to boarding.
	BoardingWindowMinutes int `yaml:"boardingWindowMinutes" validate:"gte=0"`
	// RefundBufferHours is the minimum time before departure for a refund
	// to still be accepted.
	RefundBufferHours int `yaml:"refundBufferHours" validate:"gte=0"`
}

type GeneratorConfig struct {
	// HorizonDays is how far ahead the daily generation run expands
	// schedule templates.
	HorizonDays int `yaml:"horizonDays" validate:"gte=0,lte=365"`
	// Interval between automatic generation runs. Zero disables the
	// scheduler.
	Interval time.Duration `yaml:"interval"`
}

// Load reads, validates and defaults the configuration. A missing file is
// not an error; defaults apply.
func Load(paths ...string) (Config, error) {
	if len(paths) == 0 {
		paths = []string{"config.yml"}
	}

	var cfg Config
	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			continue
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, err
		}
		break
	}

	v := validator.New()
	if err := v.Struct(cfg); err != nil {
		return Config{}, err
	}

	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Booking.BoardingWindowMinutes == 0 {
		c.Booking.BoardingWindowMinutes = 30
	}
	if c.Booking.RefundBufferHours == 0 {
		c.Booking.RefundBufferHours = 2
	}
	if c.Generator.HorizonDays == 0 {
		c.Generator.HorizonDays = 30
	}
	if c.Generator.Interval == 0 {
		c.Generator.Interval = 24 * time.Hour
	}
}

// BoardingWindow returns the boarding window as a duration.
func (c Config) BoardingWindow() time.Duration {
	return time.Duration(c.Booking.BoardingWindowMinutes) * time.Minute
}

// RefundBuffer returns the refund buffer as a duration.
func (c Config) RefundBuffer() time.Duration {
	return time.Duration(c.Booking.RefundBufferHours) * time.Hour
}
