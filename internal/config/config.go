// Package config loads application configuration from environment
// variables. Each sub-config (redis, cache, rate limit) has its own
// loader; Load covers the core server settings.
package config

import (
	"log"
	"os"
	"strconv"
	"time"
)

// Config holds the core runtime settings.
//
//  Env          – application environment (dev/test/prod).
//  Port         – HTTP port to listen on.
//  StoreDriver  – "mysql" for the production store, "memory" for a
//                 volatile in-process store (development only).
//  DBUser..DBName – MySQL connection parameters, required when
//                 StoreDriver is "mysql".
//  JWTSecret    – secret used to sign access tokens.
//  AccessTTLMin – access token time-to-live in minutes.
//  BcryptCost   – bcrypt cost for password hashing.
type Config struct {
	Env          string
	Port         string
	StoreDriver  string
	DBUser       string
	DBPass       string
	DBHost       string
	DBPort       string
	DBName       string
	JWTSecret    string
	AccessTTLMin int
	BcryptCost   int
}

// Load reads the core configuration. JWT_SECRET is always required;
// database variables are required only when the MySQL store is active.
func Load() Config {
	cfg := Config{
		Env:          getenv("APP_ENV", "dev"),
		Port:         getenv("APP_PORT", "3000"),
		StoreDriver:  getenv("STORE_DRIVER", "mysql"),
		DBUser:       os.Getenv("DB_USER"),
		DBPass:       os.Getenv("DB_PASS"),
		DBHost:       getenv("DB_HOST", "127.0.0.1"),
		DBPort:       getenv("DB_PORT", "3306"),
		DBName:       os.Getenv("DB_NAME"),
		JWTSecret:    must("JWT_SECRET"),
		AccessTTLMin: envInt("ACCESS_TOKEN_TTL_MIN", 60),
		BcryptCost:   envInt("BCRYPT_COST", 10),
	}
	if cfg.StoreDriver == "mysql" {
		if cfg.DBUser == "" || cfg.DBName == "" {
			log.Fatal("DB_USER and DB_NAME are required when STORE_DRIVER=mysql")
		}
	}
	return cfg
}

// must retrieves a required environment variable or exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

// getenv returns the variable's value or a default when unset.
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	if n, err := strconv.Atoi(v); err == nil {
		return n
	}
	return def
}

func envBool(key string, def bool) bool {
	switch os.Getenv(key) {
	case "1", "true", "TRUE", "True", "yes", "on":
		return true
	case "0", "false", "FALSE", "False", "no", "off":
		return false
	}
	return def
}

func envDur(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	return def
}
