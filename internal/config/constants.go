package config

import "time"

// Database connection pool settings
const (
	DBMaxOpenConns    = 10
	DBMaxIdleConns    = 2
	DBConnMaxLifetime = 5 * time.Minute
)

// HTTP server timeouts. No write timeout: provider calls run to completion.
const (
	ServerReadTimeout     = 15 * time.Second
	ServerIdleTimeout     = 120 * time.Second
	ServerShutdownTimeout = 30 * time.Second
)

// Ping timeout for database and redis at startup
const PingTimeout = 5 * time.Second

// Background job intervals
const IssueRetentionJobInterval = time.Hour

// Page size used when walking the provider's account listing
const ProviderMaxPageSize = 100
