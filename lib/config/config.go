// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

// EnvVar names the environment variable holding the config file path.
const EnvVar = "NOVAADMIN_CONFIG"

// Environment represents the deployment environment.
type Environment string

const (
	Development Environment = "development"
	Staging     Environment = "staging"
	Production  Environment = "production"
)

// Config is the top-level configuration.
type Config struct {
	Environment Environment `yaml:"environment"`

	// Admin configures the admin API client.
	Admin AdminConfig `yaml:"admin"`

	// Manager configures periodic managers such as nova-inventory.
	Manager ManagerConfig `yaml:"manager"`

	Development *Overrides `yaml:"development,omitempty"`
	Staging     *Overrides `yaml:"staging,omitempty"`
	Production  *Overrides `yaml:"production,omitempty"`
}

// Overrides holds per-environment replacements. Empty values leave the
// base value in place.
type Overrides struct {
	Admin   *AdminConfig   `yaml:"admin,omitempty"`
	Manager *ManagerConfig `yaml:"manager,omitempty"`
}

// AdminConfig locates the control plane and the admin credentials.
type AdminConfig struct {
	// ControllerIP is the API host. Default: 127.0.0.1
	ControllerIP string `yaml:"controller_ip"`

	// Region is informational and shown by "novaadmin connection".
	// Default: nova
	Region string `yaml:"region"`

	// Port is the API port. Default: 8773
	Port int `yaml:"port"`

	// Secure selects https.
	Secure bool `yaml:"secure"`

	// AccessKey identifies the admin. Default: admin
	AccessKey string `yaml:"access_key"`

	// SecretKeyFile holds the admin secret key. Trailing newlines are
	// stripped. Required by commands that contact the control plane.
	SecretKeyFile string `yaml:"secret_key_file"`

	// APIVersion is sent as the Version parameter on admin calls.
	// Default: nova
	APIVersion string `yaml:"api_version"`

	// CloudAPIVersion is sent on per-user cloud connections.
	// Default: 2009-11-30
	CloudAPIVersion string `yaml:"cloud_api_version"`

	// Timeout bounds each HTTP request. Default: 30s
	Timeout time.Duration `yaml:"timeout"`
}

// ManagerConfig configures a periodic manager.
type ManagerConfig struct {
	// Host names this manager's host. Empty means os.Hostname().
	Host string `yaml:"host"`

	// DBDriver names a registered manager driver. Default: sqlite
	DBDriver string `yaml:"db_driver"`

	// Database is the driver data source. For sqlite, a file path.
	Database string `yaml:"database"`

	// Interval between periodic runs. Default: 60s
	Interval time.Duration `yaml:"interval"`

	// Schedule is a cron expression. When set it replaces Interval.
	Schedule string `yaml:"schedule"`

	// Retention bounds stored snapshot age. Default: 168h
	Retention time.Duration `yaml:"retention"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Environment: Development,
		Admin: AdminConfig{
			ControllerIP:    "127.0.0.1",
			Region:          "nova",
			Port:            8773,
			AccessKey:       "admin",
			APIVersion:      "nova",
			CloudAPIVersion: "2009-11-30",
			Timeout:         30 * time.Second,
		},
		Manager: ManagerConfig{
			DBDriver:  "sqlite",
			Interval:  60 * time.Second,
			Retention: 7 * 24 * time.Hour,
		},
	}
}

// Load loads the file named by NOVAADMIN_CONFIG. It fails when the
// variable is unset.
func Load() (*Config, error) {
	path := os.Getenv(EnvVar)
	if path == "" {
		return nil, fmt.Errorf("%s environment variable not set; "+
			"set it to the path of your novaadmin.yaml, or use --config", EnvVar)
	}
	return LoadFile(path)
}

// Resolve loads path if non-empty, else the file named by
// NOVAADMIN_CONFIG, else returns Default().
func Resolve(path string) (*Config, error) {
	if path != "" {
		return LoadFile(path)
	}
	if os.Getenv(EnvVar) != "" {
		return Load()
	}
	cfg := Default()
	cfg.expandVariables()
	return cfg, nil
}

// LoadFile loads configuration from path over Default().
func LoadFile(path string) (*Config, error) {
	cfg := Default()
	if err := cfg.loadFile(path); err != nil {
		return nil, fmt.Errorf("config: loading %s: %w", path, err)
	}
	cfg.applyEnvironmentOverrides()
	cfg.expandVariables()
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".jsonc":
		// JSON is a subset of YAML, so once comments and trailing
		// commas are stripped the YAML decoder reads it with the same
		// field tags.
		data = jsonc.ToJSON(data)
	}
	return yaml.Unmarshal(data, c)
}

func (c *Config) applyEnvironmentOverrides() {
	var overrides *Overrides
	switch c.Environment {
	case Development:
		overrides = c.Development
	case Staging:
		overrides = c.Staging
	case Production:
		overrides = c.Production
	}
	if overrides == nil {
		return
	}

	if admin := overrides.Admin; admin != nil {
		overrideString(&c.Admin.ControllerIP, admin.ControllerIP)
		overrideString(&c.Admin.Region, admin.Region)
		overrideString(&c.Admin.AccessKey, admin.AccessKey)
		overrideString(&c.Admin.SecretKeyFile, admin.SecretKeyFile)
		overrideString(&c.Admin.APIVersion, admin.APIVersion)
		overrideString(&c.Admin.CloudAPIVersion, admin.CloudAPIVersion)
		if admin.Port != 0 {
			c.Admin.Port = admin.Port
		}
		if admin.Timeout != 0 {
			c.Admin.Timeout = admin.Timeout
		}
		// Secure is a bool, so an override section can only turn it on.
		if admin.Secure {
			c.Admin.Secure = true
		}
	}

	if manager := overrides.Manager; manager != nil {
		overrideString(&c.Manager.Host, manager.Host)
		overrideString(&c.Manager.DBDriver, manager.DBDriver)
		overrideString(&c.Manager.Database, manager.Database)
		overrideString(&c.Manager.Schedule, manager.Schedule)
		if manager.Interval != 0 {
			c.Manager.Interval = manager.Interval
		}
		if manager.Retention != 0 {
			c.Manager.Retention = manager.Retention
		}
	}
}

func overrideString(target *string, value string) {
	if value != "" {
		*target = value
	}
}

func (c *Config) expandVariables() {
	c.Admin.SecretKeyFile = expandVars(c.Admin.SecretKeyFile)
	c.Manager.Database = expandVars(c.Manager.Database)
}

var varPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

// expandVars expands ${VAR} and ${VAR:-default} from the environment.
func expandVars(s string) string {
	return varPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := varPattern.FindStringSubmatch(match)
		if value := os.Getenv(parts[1]); value != "" {
			return value
		}
		return parts[2]
	})
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	var errs []error

	switch c.Environment {
	case Development, Staging, Production:
	default:
		errs = append(errs, fmt.Errorf("invalid environment: %q", c.Environment))
	}

	if c.Admin.ControllerIP == "" {
		errs = append(errs, errors.New("admin.controller_ip is required"))
	}
	if c.Admin.Port < 1 || c.Admin.Port > 65535 {
		errs = append(errs, fmt.Errorf("admin.port %d out of range", c.Admin.Port))
	}
	if c.Admin.AccessKey == "" {
		errs = append(errs, errors.New("admin.access_key is required"))
	}
	if c.Admin.Timeout < 0 {
		errs = append(errs, errors.New("admin.timeout must not be negative"))
	}

	if c.Manager.DBDriver == "" {
		errs = append(errs, errors.New("manager.db_driver is required"))
	}
	if c.Manager.Schedule == "" && c.Manager.Interval <= 0 {
		errs = append(errs, errors.New("manager.interval must be positive when manager.schedule is empty"))
	}
	if c.Manager.Retention < 0 {
		errs = append(errs, errors.New("manager.retention must not be negative"))
	}

	return errors.Join(errs...)
}
