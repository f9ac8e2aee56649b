// Package config resolves the cache connection configuration from layered
// sources: environment > explicitly supplied values > built-in defaults.
// Resolution is a pure function over an environment snapshot, so there is no
// process-wide mutable state and tests can supply arbitrary environments.
package config

import (
	"os"
	"strconv"
	"strings"
)

// Environment variable names recognized by Resolve.
const (
	EnvHost     = "cacheHost"
	EnvPort     = "cachePort"
	EnvPassword = "cachePassword"
	EnvCluster  = "cacheCluster"
)

// Config is the merged, immutable connection configuration.
// Host may hold a comma-separated address list, which signals cluster mode;
// every listed host pairs with the single configured Port.
type Config struct {
	Host     string
	Port     int
	Password string
	Cluster  bool
}

// Defaults returns the built-in fallback configuration.
func Defaults() Config {
	return Config{Host: "127.0.0.1", Port: 6379}
}

// Env looks up one environment variable from a snapshot.
// The second return reports presence, matching os.LookupEnv.
type Env func(key string) (string, bool)

// Resolve merges the three configuration layers. A value set in env wins over
// the same field in explicit, which wins over Defaults. Malformed env values
// (unparsable port or cluster flag) are ignored and the lower layers apply.
func Resolve(env Env, explicit Config) Config {
	def := Defaults()
	cfg := Config{
		Host:     coalesce(explicit.Host, def.Host),
		Port:     coalescePort(explicit.Port, def.Port),
		Password: explicit.Password,
		Cluster:  explicit.Cluster,
	}

	if env == nil {
		return cfg
	}
	if v, ok := env(EnvHost); ok && v != "" {
		cfg.Host = v
	}
	if v, ok := env(EnvPort); ok {
		if p, err := strconv.Atoi(v); err == nil && p > 0 {
			cfg.Port = p
		}
	}
	if v, ok := env(EnvPassword); ok {
		cfg.Password = v
	}
	if v, ok := env(EnvCluster); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Cluster = b
		}
	}
	return cfg
}

// ResolveFromOS resolves against the live process environment.
func ResolveFromOS(explicit Config) Config {
	return Resolve(os.LookupEnv, explicit)
}

// Clustered reports whether the configuration selects a cluster topology,
// either explicitly or via a multi-address host list.
func (c Config) Clustered() bool {
	return c.Cluster || strings.Contains(c.Host, ",")
}

// Addrs expands the host list into host:port addresses.
// Every host shares the single configured port.
func (c Config) Addrs() []string {
	port := strconv.Itoa(c.Port)
	hosts := strings.Split(c.Host, ",")
	out := make([]string, 0, len(hosts))
	for _, h := range hosts {
		h = strings.TrimSpace(h)
		if h == "" {
			continue
		}
		out = append(out, h+":"+port)
	}
	return out
}

func coalesce(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

func coalescePort(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}
