package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/hashicorp/go-multierror"
)

var (
	ErrNoListener         = errors.New("no listener defined, please specify at least one --listen-* flag")
	ErrNoMounts           = errors.New("no directory to serve, please specify at least one --mount flag")
	ErrInvalidMount       = errors.New("mount must be of the form prefix=dir")
	ErrMountNoPrefix      = errors.New("mount prefix must start with /")
	ErrMountNoDir         = errors.New("mount dir must not be empty")
	ErrMountDuplicate     = errors.New("mount prefix is used more than once")
	ErrInvalidStatusPath  = errors.New("status-path must start with /")
	ErrRateLimitBurstSize = errors.New("rate-limit-source-ip-burst must be greater than 0 when rate limiting is enabled")
	ErrMaxURILength       = errors.New("max-uri-length must not be negative")
	ErrMaxConns           = errors.New("max-conns must not be negative")
)

// Validate checks that config can be used to start the daemon
func Validate(config *Config) error {
	var result *multierror.Error

	result = multierror.Append(result,
		validateListeners(config),
		validateMounts(config),
		validateStatusPath(config),
		validateRateLimit(config),
		validateLimits(config),
	)

	return result.ErrorOrNil()
}

func validateListeners(config *Config) error {
	if len(config.Listeners.HTTP) == 0 &&
		len(config.Listeners.Proxy) == 0 &&
		len(config.Listeners.ProxyV2) == 0 {
		return ErrNoListener
	}

	return nil
}

func validateMounts(config *Config) error {
	if len(config.General.Mounts) == 0 {
		return ErrNoMounts
	}

	var result *multierror.Error
	seen := make(map[string]bool, len(config.General.Mounts))

	for _, mount := range config.General.Mounts {
		if !strings.HasPrefix(mount.Prefix, "/") {
			result = multierror.Append(result, fmt.Errorf("%w: %q", ErrMountNoPrefix, mount.Prefix))
		}
		if mount.Dir == "" {
			result = multierror.Append(result, fmt.Errorf("%w: %q", ErrMountNoDir, mount.Prefix))
		}
		if seen[mount.Prefix] {
			result = multierror.Append(result, fmt.Errorf("%w: %q", ErrMountDuplicate, mount.Prefix))
		}

		seen[mount.Prefix] = true
	}

	return result.ErrorOrNil()
}

func validateStatusPath(config *Config) error {
	if config.General.StatusPath != "" && !strings.HasPrefix(config.General.StatusPath, "/") {
		return ErrInvalidStatusPath
	}

	return nil
}

func validateRateLimit(config *Config) error {
	if config.RateLimit.SourceIPLimitPerSecond > 0 && config.RateLimit.SourceIPBurst <= 0 {
		return ErrRateLimitBurstSize
	}

	return nil
}

func validateLimits(config *Config) error {
	var result *multierror.Error

	if config.General.MaxURILength < 0 {
		result = multierror.Append(result, ErrMaxURILength)
	}
	if config.General.MaxConns < 0 {
		result = multierror.Append(result, ErrMaxConns)
	}

	return result.ErrorOrNil()
}
