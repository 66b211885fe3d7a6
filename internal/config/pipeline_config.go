package config

import "time"

// PipelineConfig tunes the collection pipeline's retry and timeout behaviour.
type PipelineConfig interface {
	GetStageTimeout() time.Duration
	GetRetryBackoff() time.Duration
}

type Pipeline struct{}

var _ PipelineConfig = Pipeline{}

func (Pipeline) GetStageTimeout() time.Duration {
	return GetDuration("STAGE_TIMEOUT", 10*time.Second)
}

func (Pipeline) GetRetryBackoff() time.Duration {
	return GetDuration("RETRY_BACKOFF", 2*time.Second)
}

func GetDuration(envVar string, defaultValue time.Duration) time.Duration {
	value := GetEnv(envVar, "")
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return d
}
