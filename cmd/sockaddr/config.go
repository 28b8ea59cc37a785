// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bassosimone/sockaddr"
	kjson "github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
	"github.com/urfave/cli/v3"
	"gopkg.in/natefinch/lumberjack.v2"
)

// fileConfig is the content of the configuration file.
//
// Command line flags take precedence over the file.
type fileConfig struct {
	// DNSServer is the default DNS-over-UDP server for resolve.
	DNSServer string `koanf:"dns_server"`

	// LogFile is the rotating log file path.
	LogFile string `koanf:"log_file"`

	// LogMaxSizeMB is the log file size triggering a rotation.
	LogMaxSizeMB int `koanf:"log_max_size_mb"`

	// LogMaxBackups is the number of rotated log files to keep.
	LogMaxBackups int `koanf:"log_max_backups"`

	// Options is the default option set for the options command.
	Options string `koanf:"options"`

	// Timeout is the resolution timeout.
	Timeout time.Duration `koanf:"timeout"`

	// Verbose enables debug logs.
	Verbose bool `koanf:"verbose"`
}

// loadFileConfig reads a YAML or JSON configuration file. The format
// follows the file extension and an empty path yields the zero config.
func loadFileConfig(path string) (*fileConfig, error) {
	cfg := &fileConfig{}
	if path == "" {
		return cfg, nil
	}

	var parser koanf.Parser
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = kjson.Parser()
	default:
		return nil, newUsageError("unsupported config file format: %s", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read config file: %w", err)
	}
	k := koanf.New(".")
	if err := k.Load(rawbytes.Provider(data), parser); err != nil {
		return nil, fmt.Errorf("cannot parse config file %s: %w", path, err)
	}
	if err := k.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("cannot decode config file %s: %w", path, err)
	}
	return cfg, nil
}

// environment is the per-invocation state shared by the commands.
type environment struct {
	// config is the merged configuration.
	config *fileConfig

	// logger is the structured logger.
	logger sockaddr.SLogger

	// closer releases the log file, if any.
	closer io.Closer

	// stdout is where commands write their output.
	stdout io.Writer
}

// newEnvironment loads the configuration file, applies the global flags
// and creates the logger.
func newEnvironment(cmd *cli.Command) (*environment, error) {
	cfg, err := loadFileConfig(cmd.String("config"))
	if err != nil {
		return nil, err
	}
	if cmd.IsSet("log-file") {
		cfg.LogFile = cmd.String("log-file")
	}
	if cmd.IsSet("verbose") {
		cfg.Verbose = cmd.Bool("verbose")
	}
	if cmd.IsSet("timeout") || cfg.Timeout <= 0 {
		cfg.Timeout = cmd.Duration("timeout")
	}

	env := &environment{config: cfg, logger: sockaddr.DefaultSLogger(), stdout: cmd.Root().Writer}
	if env.stdout == nil {
		env.stdout = os.Stdout
	}

	var dest io.Writer
	switch {
	case cfg.LogFile != "":
		rotator := &lumberjack.Logger{
			Filename:   cfg.LogFile,
			MaxSize:    cfg.LogMaxSizeMB,
			MaxBackups: cfg.LogMaxBackups,
		}
		env.closer = rotator
		dest = rotator
	case cfg.Verbose:
		dest = cmd.Root().ErrWriter
	}
	if dest != nil {
		level := slog.LevelInfo
		if cfg.Verbose {
			level = slog.LevelDebug
		}
		env.logger = slog.New(slog.NewJSONHandler(dest, &slog.HandlerOptions{Level: level}))
	}
	return env, nil
}

// Close releases the resources held by the environment.
func (env *environment) Close() error {
	if env.closer == nil {
		return nil
	}
	return env.closer.Close()
}

// spanLogger returns the logger decorated with a new span ID.
func (env *environment) spanLogger() sockaddr.SLogger {
	if logger, ok := env.logger.(*slog.Logger); ok {
		return logger.With(slog.String("spanID", sockaddr.NewSpanID()))
	}
	return env.logger
}
