package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"riak"
)

type serviceConfig struct {
	Address     string
	MetricsAddr string
	Client      riak.Config
}

func defaultServiceConfig() serviceConfig {
	return serviceConfig{
		Address: "127.0.0.1:8087",
		Client:  riak.DefaultConfig(),
	}
}

type fileConfig struct {
	Address          string `toml:"address"`
	MetricsAddr      string `toml:"metrics_addr"`
	DialTimeout      string `toml:"dial_timeout"`
	ReadTimeout      string `toml:"read_timeout"`
	WriteTimeout     string `toml:"write_timeout"`
	MaxMessageBytes  int64  `toml:"max_message_bytes"`
	RequestTimeoutMS int64  `toml:"request_timeout_ms"`
}

func loadServiceConfig(path string) (serviceConfig, error) {
	cfg := defaultServiceConfig()

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return serviceConfig{}, fmt.Errorf("load riakctl config: %w", err)
	}

	if meta.IsDefined("address") {
		addr := strings.TrimSpace(raw.Address)
		if addr != "" {
			cfg.Address = addr
		}
	}

	if meta.IsDefined("metrics_addr") {
		cfg.MetricsAddr = strings.TrimSpace(raw.MetricsAddr)
	}

	if meta.IsDefined("dial_timeout") {
		d, err := parseTimeout("dial_timeout", raw.DialTimeout)
		if err != nil {
			return serviceConfig{}, err
		}
		cfg.Client.DialTimeout = d
	}

	if meta.IsDefined("read_timeout") {
		d, err := parseTimeout("read_timeout", raw.ReadTimeout)
		if err != nil {
			return serviceConfig{}, err
		}
		cfg.Client.ReadTimeout = d
	}

	if meta.IsDefined("write_timeout") {
		d, err := parseTimeout("write_timeout", raw.WriteTimeout)
		if err != nil {
			return serviceConfig{}, err
		}
		cfg.Client.WriteTimeout = d
	}

	if meta.IsDefined("max_message_bytes") {
		if raw.MaxMessageBytes < 0 {
			return serviceConfig{}, fmt.Errorf("max_message_bytes must be >= 0")
		}
		cfg.Client.MaxMessageBytes = uint32(raw.MaxMessageBytes)
	}

	if meta.IsDefined("request_timeout_ms") {
		if raw.RequestTimeoutMS < 0 {
			return serviceConfig{}, fmt.Errorf("request_timeout_ms must be >= 0")
		}
		cfg.Client.RequestTimeoutMS = uint32(raw.RequestTimeoutMS)
	}

	return cfg, nil
}

func parseTimeout(name, raw string) (time.Duration, error) {
	d, err := time.ParseDuration(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", name, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("%s must be >= 0", name)
	}
	return d, nil
}
