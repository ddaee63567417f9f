package config

import "time"

// Server defaults
const (
	DefaultPort        = "8080"
	ServerReadTimeout  = 10 * time.Second
	ServerWriteTimeout = 30 * time.Second
	ShutdownTimeout    = 30 * time.Second
)

// Loader timeouts. One snapshot load per render; a hung Mongo connection
// must not hang the render forever.
const (
	ConnectTimeout = 10 * time.Second
	LoadTimeout    = 30 * time.Second
)

// Collection names read in full on every render.
const (
	CollectionClients      = "clients"
	CollectionMemberships  = "memberships"
	CollectionTransactions = "transactions"
)

// Widget selector defaults (what the dashboard shows before the user touches
// a picker).
const (
	DefaultMonth      = time.October
	DefaultYear       = 2024
	DefaultWindowDays = 365
	TopSpenderCount   = 5
)

// Environment variables. The Mongo URI and database name have no defaults:
// missing values are a startup-time fatal, not a silent fallback.
const (
	EnvMongoURI = "CLIENTDASH_MONGO_URI"
	EnvMongoDB  = "CLIENTDASH_MONGO_DB"
	EnvPort     = "CLIENTDASH_PORT"
)
