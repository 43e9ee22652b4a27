package main

import (
	"os"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

type Config struct {
	Radio struct {
		Bus     string        `yaml:"bus"`
		Addr    uint16        `yaml:"addr"`
		Reset   bool          `yaml:"reset"`
		Channel float64       `yaml:"channel"`
		Poll    time.Duration `yaml:"poll"`
	} `yaml:"radio"`
	Display struct {
		BigFont    string `yaml:"big_font"`
		MediumFont string `yaml:"medium_font"`
		RBDS       bool   `yaml:"rbds"`
	} `yaml:"display"`
	SQLite struct {
		Path string `yaml:"path"`
	} `yaml:"sqlite"`
	Redis struct {
		Addr   string `yaml:"addr"`
		DB     int    `yaml:"db"`
		Prefix string `yaml:"prefix"`
	} `yaml:"redis"`
	NATS struct {
		URL     string `yaml:"url"`
		Subject string `yaml:"subject"`
	} `yaml:"nats"`
	Log struct {
		Level string `yaml:"level"`
		File  string `yaml:"file"`
	} `yaml:"log"`
}

// DefaultConfig is a Si4703 breakout on a Raspberry Pi's first I2C bus.
func DefaultConfig() *Config {
	var c Config

	c.Radio.Bus = "I2C1"
	c.Radio.Addr = 0x10
	c.Radio.Reset = true
	c.Radio.Channel = 88.5
	// From AN230: the data will appear in intervals of ~88 ms and the RDSR
	// indicator will be available for at least 40 ms
	c.Radio.Poll = 40 * time.Millisecond

	c.Display.BigFont = "univers.flf"
	c.Display.MediumFont = "nancyj-improved.flf"
	c.Display.RBDS = true

	c.Redis.Prefix = "gofm"
	c.NATS.Subject = "gofm.rds"
	c.Log.Level = "info"

	return &c
}

// LoadConfig overlays the YAML file at path onto the defaults. An empty
// path returns the defaults.
func LoadConfig(path string) (*Config, error) {
	c := DefaultConfig()
	if path == "" {
		return c, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read config")
	}
	if err := yaml.UnmarshalStrict(data, c); err != nil {
		return nil, errors.Wrapf(err, "parse config %s", path)
	}
	if err := c.Validate(); err != nil {
		return nil, errors.Wrapf(err, "config %s", path)
	}
	return c, nil
}

func (c *Config) Validate() error {
	if c.Radio.Channel < minChannel || c.Radio.Channel > maxChannel {
		return errors.Wrapf(ErrInvalidFreq, "radio.channel %.1f", c.Radio.Channel)
	}
	if c.Radio.Poll <= 0 {
		return errors.Errorf("radio.poll must be positive, got %s", c.Radio.Poll)
	}
	return nil
}
