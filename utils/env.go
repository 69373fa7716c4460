package utils

import (
	"os"
	"strconv"
	"time"

	"go.viam.com/latticeplan/logging"
)

const (
	// NumThreadsEnvVar overrides the number of goroutines used to score lattice edges.
	NumThreadsEnvVar = "MP_NUM_THREADS"

	// PlanTimeoutEnvVar can be set to override the default planning timeout of the CLI.
	PlanTimeoutEnvVar = "MP_PLAN_TIMEOUT"

	// DefaultPlanTimeout is the planning timeout used when nothing else is configured.
	DefaultPlanTimeout = 5 * time.Minute
)

// GetenvInt returns the integer value of the environment variable `name`, or `defaultVal` when it is
// unset or unparsable.
func GetenvInt(name string, defaultVal int) int {
	s := os.Getenv(name)
	if s == "" {
		return defaultVal
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return defaultVal
	}
	return v
}

// GetPlanTimeout calculates the planning timeout
// (env variable value if set, DefaultPlanTimeout otherwise).
func GetPlanTimeout(logger logging.Logger) time.Duration {
	return timeoutHelper(DefaultPlanTimeout, PlanTimeoutEnvVar, logger)
}

func timeoutHelper(defaultTimeout time.Duration, timeoutEnvVar string, logger logging.Logger) time.Duration {
	if timeoutVal := os.Getenv(timeoutEnvVar); timeoutVal != "" {
		timeout, err := time.ParseDuration(timeoutVal)
		if err != nil {
			logger.Warnf("Failed to parse %s env var, falling back to default %v timeout",
				timeoutEnvVar, defaultTimeout)
			return defaultTimeout
		}
		return timeout
	}
	return defaultTimeout
}
