package config

import "strconv"

// LookupConfig configures the external lookup adapters.
type LookupConfig interface {
	GetRegistryBaseURL() string
	GetSimulatedFailureRate() float64
	GetSigningSecret() string
}

type Lookup struct{}

var _ LookupConfig = Lookup{}

func (Lookup) GetRegistryBaseURL() string {
	return GetEnv("REGISTRY_BASE_URL", "")
}

// GetSimulatedFailureRate returns the transient-failure rate used by the
// stand-in adapters. It has no effect on production adapters.
func (Lookup) GetSimulatedFailureRate() float64 {
	value := GetEnv("SIMULATED_FAILURE_RATE", "")
	if value == "" {
		return 0.05
	}
	rate, err := strconv.ParseFloat(value, 64)
	if err != nil || rate < 0 || rate > 1 {
		return 0.05
	}
	return rate
}

func (Lookup) GetSigningSecret() string {
	return GetEnv("SIGNING_SECRET", "dev-signing-secret")
}
