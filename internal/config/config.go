package config

type Config interface {
	EnvConfig
	StoreConfig
	PipelineConfig
	LookupConfig
}

type EnvConfig interface {
	GetPort() string
	GetAppName() string
	GetDataFolder() string
	GetEnv() string
}

type mainConfig struct {
	EnvVars
	Store
	Pipeline
	Lookup
}

func New() Config {
	return mainConfig{}
}
