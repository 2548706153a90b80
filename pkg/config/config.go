// Package config loads Enclose settings from the environment. A .env file
// in the working directory is read first; variables already set win.
package config

import (
	"fmt"
	"os"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Environment variable names.
const (
	EnvLogLevel  = "ENCLOSE_LOG_LEVEL"
	EnvLogFormat = "ENCLOSE_LOG_FORMAT"
	EnvMeshCells = "ENCLOSE_MESH_CELLS"
	EnvAddr      = "ENCLOSE_ADDR"
	EnvTrace     = "ENCLOSE_TRACE"
	EnvWorkers   = "ENCLOSE_WORKERS"
	EnvTimeout   = "ENCLOSE_EVAL_TIMEOUT"
)

// Config holds process settings. Command-line flags override it.
type Config struct {
	LogLevel  string
	LogFormat string
	MeshCells int           // marching cubes resolution
	Addr      string        // serve listen address
	Trace     bool          // log every classification ray
	Workers   int           // ClassifyAll parallelism
	Timeout   time.Duration // per-evaluation limit
}

// Default returns the settings used when nothing is configured.
func Default() Config {
	return Config{
		LogLevel:  "info",
		LogFormat: "text",
		MeshCells: 200,
		Addr:      ":8080",
		Workers:   runtime.GOMAXPROCS(0),
		Timeout:   5 * time.Second,
	}
}

// Load reads .env (if present) and then the ENCLOSE_* variables.
func Load() (Config, error) {
	_ = godotenv.Load(".env")
	return FromEnv(os.LookupEnv)
}

// FromEnv builds a Config from lookup, starting from Default.
func FromEnv(lookup func(string) (string, bool)) (Config, error) {
	c := Default()

	if v, ok := lookup(EnvLogLevel); ok && v != "" {
		c.LogLevel = strings.ToLower(v)
	}
	if v, ok := lookup(EnvLogFormat); ok && v != "" {
		c.LogFormat = strings.ToLower(v)
	}
	if v, ok := lookup(EnvAddr); ok && v != "" {
		c.Addr = v
	}

	var err error
	if c.MeshCells, err = positiveInt(lookup, EnvMeshCells, c.MeshCells); err != nil {
		return Config{}, err
	}
	if c.Workers, err = positiveInt(lookup, EnvWorkers, c.Workers); err != nil {
		return Config{}, err
	}
	if v, ok := lookup(EnvTrace); ok && v != "" {
		if c.Trace, err = strconv.ParseBool(v); err != nil {
			return Config{}, fmt.Errorf("config: %s=%q: %w", EnvTrace, v, err)
		}
	}
	if v, ok := lookup(EnvTimeout); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("config: %s=%q: %w", EnvTimeout, v, err)
		}
		if d <= 0 {
			return Config{}, fmt.Errorf("config: %s=%s must be positive", EnvTimeout, d)
		}
		c.Timeout = d
	}
	return c, nil
}

func positiveInt(lookup func(string) (string, bool), name string, def int) (int, error) {
	v, ok := lookup(name)
	if !ok || v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("config: %s=%q: %w", name, v, err)
	}
	if n <= 0 {
		return 0, fmt.Errorf("config: %s=%d must be positive", name, n)
	}
	return n, nil
}
