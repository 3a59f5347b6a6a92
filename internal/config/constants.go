package config

const (
	// DefaultDatabasePath is the default path for the books database
	DefaultDatabasePath = "./books.db"

	// DefaultEnvFile is read on startup if present
	DefaultEnvFile = ".env"
)
