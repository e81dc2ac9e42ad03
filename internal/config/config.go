// Package config is used to load the configuration file
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/hashicorp/go-version"
	"github.com/spf13/viper"
)

type restore struct {
	Concurrency  int    `mapstructure:"concurrency" json:"concurrency"`
	Strict       bool   `mapstructure:"strict" json:"strict"`
	KeepResource bool   `mapstructure:"keep-resource" json:"keep_resource"`
	Output       string `mapstructure:"output" json:"output"`
	Progress     bool   `mapstructure:"progress" json:"progress"`
}

type catalog struct {
	// Constraint limits the handler catalogs tried, e.g. ">= 1.1".
	Constraint string `mapstructure:"constraint" json:"constraint"`
}

type snapshot struct {
	// Runtime overrides the location of the VM runtime module.
	Runtime   string `mapstructure:"runtime" json:"runtime"`
	CacheSize int    `mapstructure:"cache-size" json:"cache_size"`
}

type database struct {
	Driver    string `mapstructure:"driver" json:"driver"`
	Path      string `mapstructure:"path" json:"path"`
	BatchSize int    `mapstructure:"batch-size" json:"batch_size"`
	Name      string `mapstructure:"name" json:"database"`
	Host      string `mapstructure:"host" json:"host"`
	Port      string `mapstructure:"port" json:"port"`
	User      string `mapstructure:"user" json:"user"`
	Password  string `mapstructure:"password" json:"password"`
}

// Config is the configuration struct
type Config struct {
	Restore  restore  `mapstructure:"restore" json:"restore"`
	Catalog  catalog  `mapstructure:"catalog" json:"catalog"`
	Snapshot snapshot `mapstructure:"snapshot" json:"snapshot"`
	Database database `mapstructure:"database" json:"database"`
}

// Dir returns the devirt configuration directory.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("config: failed to get user home directory: %v", err)
	}
	return filepath.Join(home, ".config", "devirt"), nil
}

func (c *Config) verify() error {
	if c.Restore.Concurrency <= 0 {
		c.Restore.Concurrency = runtime.NumCPU()
	}
	if c.Snapshot.CacheSize <= 0 {
		c.Snapshot.CacheSize = 16
	}
	if c.Catalog.Constraint != "" {
		if _, err := version.NewConstraint(c.Catalog.Constraint); err != nil {
			return fmt.Errorf("config: invalid catalog constraint %q: %v", c.Catalog.Constraint, err)
		}
	}

	switch c.Database.Driver {
	case "", "memory":
	case "sqlite":
		if c.Database.Path == "" {
			dir, err := Dir()
			if err != nil {
				return err
			}
			c.Database.Path = filepath.Join(dir, "devirt.db")
		}
	case "postgres":
		if c.Database.Host == "" {
			c.Database.Host = "localhost"
		}
		if c.Database.Port == "" {
			c.Database.Port = "5432"
		}
		if c.Database.User == "" || c.Database.Name == "" {
			return fmt.Errorf("config: postgres needs a user and a database name")
		}
	default:
		return fmt.Errorf("config: unknown database driver %q", c.Database.Driver)
	}

	return nil
}

// LoadConfig loads the configuration file
func LoadConfig() (*Config, error) {
	var c *Config

	if err := viper.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("config: failed to unmarshal: %v", err)
	}
	if c == nil {
		c = &Config{}
	}

	if err := c.verify(); err != nil {
		return nil, fmt.Errorf("config: failed to verify: %v", err)
	}

	return c, nil
}
