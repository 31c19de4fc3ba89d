// Package config loads the service configuration from defaults, an optional
// yaml file, an optional .env file and the process environment.
package config

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

type Config struct {
	HTTPServer struct {
		Port           int `koanf:"port"`
		MaxHeaderBytes int `koanf:"maxHeaderBytes"`
		Timeout        struct {
			Read       time.Duration `koanf:"read"`
			Write      time.Duration `koanf:"write"`
			Idle       time.Duration `koanf:"idle"`
			ReadHeader time.Duration `koanf:"readHeader"`
		} `koanf:"timeout"`
	} `koanf:"server"`

	Database struct {
		URL string `koanf:"url"`
	} `koanf:"database"`

	Static struct {
		Dir string `koanf:"dir"`
	} `koanf:"static"`

	Log struct {
		Level string `koanf:"level"`
	} `koanf:"log"`

	PProf struct {
		Enabled bool   `koanf:"enabled"`
		Addr    string `koanf:"addr"`
	} `koanf:"pprof"`

	Shutdown struct {
		Timeout time.Duration `koanf:"timeout"`
	} `koanf:"shutdown"`
}

func (c Config) String() string {
	return fmt.Sprintf("server.port=%d, server.timeout.read=%v, server.timeout.write=%v, server.timeout.idle=%v, server.timeout.readHeader=%v, database.url=%s, static.dir=%s, log.level=%s, pprof.enabled=%t, shutdown.timeout=%v.",
		c.HTTPServer.Port,
		c.HTTPServer.Timeout.Read,
		c.HTTPServer.Timeout.Write,
		c.HTTPServer.Timeout.Idle,
		c.HTTPServer.Timeout.ReadHeader,
		maskURL(c.Database.URL),
		c.Static.Dir,
		c.Log.Level,
		c.PProf.Enabled,
		c.Shutdown.Timeout)
}

func maskURL(url string) string {
	if url == "" {
		return "<not configured>"
	}
	// Mask credentials when the DSN carries them
	parts := strings.Split(url, "@")
	if len(parts) == 2 {
		return "****@" + parts[1]
	}
	return url
}

const (
	envPrefix      = "catalog_svc_"
	defaultEnvFile = ".env"
	configFile     = "config.yaml"
)

// defaults point the service at a local sqlite file and a local static dir,
// so it runs with no configuration at all.
var defaults = map[string]interface{}{
	"server.port":               8080,
	"server.maxHeaderBytes":     1 << 20,
	"server.timeout.read":       "5s",
	"server.timeout.write":      "10s",
	"server.timeout.idle":       "60s",
	"server.timeout.readHeader": "2s",
	"database.url":              "store.db",
	"static.dir":                "static",
	"log.level":                 "info",
	"pprof.enabled":             false,
	"pprof.addr":                ":6060",
	"shutdown.timeout":          "30s",
}

// Load reads the configuration from defaults, a file and environment variables
func Load() (*Config, error) {
	// Create a new Koanf instance
	var k = koanf.New(".")

	// 1. Load built-in defaults, the lowest priority
	if err := k.Load(confmap.Provider(defaults, "."), nil); err != nil {
		return nil, fmt.Errorf("error loading default config: %w", err)
	}

	// 2. Load configuration from yaml file
	if err := k.Load(file.Provider(configFile), yaml.Parser()); err != nil {
		if !os.IsNotExist(err) {
			log.Printf("WARN: error loading YAML config: %v", err)
		}
	}

	// 3. Load environment variables from .env file
	if envFileMap, err := godotenv.Read(defaultEnvFile); err == nil {
		envMap := make(map[string]interface{})
		for key, value := range envFileMap {
			envMap[keyTransformer(key)] = value
		}
		if err := k.Load(confmap.Provider(envMap, "."), nil); err != nil {
			log.Printf("WARN: error loading .env config: %v", err)
		}
	} else if !os.IsNotExist(err) {
		log.Printf("WARN: error reading .env file: %v", err)
	}

	// 4. Load environment variables from the system, the highest priority
	if err := k.Load(env.Provider(envPrefix, ".", keyTransformer), nil); err != nil {
		log.Printf("WARN: error loading env vars: %v", err)
	}

	var cfg Config
	// 5. Unmarshal the configuration into the Config struct
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	// 6. Validate the configuration
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// validateConfig checks if the configuration values are valid
func validateConfig(cfg Config) error {
	if cfg.HTTPServer.Port <= 0 || cfg.HTTPServer.Port > 65535 {
		return fmt.Errorf("invalid HTTP server port: %d", cfg.HTTPServer.Port)
	}
	if cfg.HTTPServer.Timeout.Read <= 0 {
		return fmt.Errorf("invalid HTTP server read timeout: %v", cfg.HTTPServer.Timeout.Read)
	}
	if cfg.HTTPServer.Timeout.Write <= 0 {
		return fmt.Errorf("invalid HTTP server write timeout: %v", cfg.HTTPServer.Timeout.Write)
	}
	if cfg.HTTPServer.Timeout.Idle <= 0 {
		return fmt.Errorf("invalid HTTP server idle timeout: %v", cfg.HTTPServer.Timeout.Idle)
	}
	if cfg.Database.URL == "" {
		return fmt.Errorf("database URL is not configured")
	}
	if cfg.Static.Dir == "" {
		return fmt.Errorf("static file directory is not configured")
	}
	return nil
}

// keyTransformer transforms environment variable keys to match the expected format
func keyTransformer(key string) string {
	key = strings.ToLower(key)
	key = strings.TrimPrefix(key, envPrefix)
	return strings.ReplaceAll(key, "_", ".")
}
