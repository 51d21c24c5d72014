package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
)

// fileConfig mirrors the optional TOML config file. Every field is
// optional; values given on the command line or in the environment win.
type fileConfig struct {
	Host       string `toml:"host"`
	Port       int    `toml:"port"`
	SerialPort string `toml:"serial_port"`
	Baud       int    `toml:"baud"`
	Verbose    bool   `toml:"verbose"`
}

// options is the fully merged CLI configuration, precedence flags > env >
// config file > built-in defaults.
type options struct {
	host       string
	port       int
	serialPort string
	baud       int
	verbose    bool
	yes        bool
}

func defaultOptions() *options {
	return &options{
		host: "localhost",
		port: 4999,
		baud: 115200,
	}
}

func defaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}

	return filepath.Join(dir, "seymourctl", "config.toml")
}

// applyFile layers the TOML file at path onto opts. A missing file is an
// error only when the path was given explicitly.
func applyFile(opts *options, path string, explicit bool) error {
	if path == "" {
		return nil
	}

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !explicit {
			return nil
		}

		return fmt.Errorf("load config %s: %w", path, err)
	}

	if meta.IsDefined("host") {
		opts.host = strings.TrimSpace(raw.Host)
	}

	if meta.IsDefined("port") {
		if raw.Port < 1 || raw.Port > 65535 {
			return fmt.Errorf("load config %s: port %d out of range", path, raw.Port)
		}
		opts.port = raw.Port
	}

	if meta.IsDefined("serial_port") {
		opts.serialPort = strings.TrimSpace(raw.SerialPort)
	}

	if meta.IsDefined("baud") {
		if raw.Baud <= 0 {
			return fmt.Errorf("load config %s: baud %d is not positive", path, raw.Baud)
		}
		opts.baud = raw.Baud
	}

	if meta.IsDefined("verbose") {
		opts.verbose = raw.Verbose
	}

	return nil
}

// applyEnv layers the SEYMOUR_* environment variables onto opts.
func applyEnv(opts *options) error {
	if v := os.Getenv("SEYMOUR_HOST"); v != "" {
		opts.host = v
	}

	if v := os.Getenv("SEYMOUR_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil || port < 1 || port > 65535 {
			return fmt.Errorf("SEYMOUR_PORT: invalid port %q", v)
		}
		opts.port = port
	}

	if v := os.Getenv("SEYMOUR_SERIAL_PORT"); v != "" {
		opts.serialPort = v
	}

	return nil
}
