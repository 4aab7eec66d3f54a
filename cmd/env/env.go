package env

const (
	// Prefix is the env variable prefix for all commands
	Prefix = "ROUTES_"

	// DBURLSuffix is the env variable suffix for the DB connection URL
	DBURLSuffix = "DB_URL"

	// GeminiKeySuffix is the env variable suffix for the Gemini API key
	GeminiKeySuffix = "GEMINI_API_KEY"
)
