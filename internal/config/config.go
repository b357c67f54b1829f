package config

type Config interface {
	EnvConfig
	AuthConfig
	CorsConfig
}

type EnvConfig interface {
	GetPort() string
	GetAppName() string
	GetDatabasePath() string
	GetEnv() string
}

type CorsConfig interface {
	GetAllowedOrigins() AllowedOrigins
	GetAllowedMethods() string
	GetAllowedHeaders() string
}

type mainConfig struct {
	EnvVars
	Auth
	Cors
}

func New() Config {
	return mainConfig{}
}
