package config

import (
	"fmt"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if len(c.Auth.JWTSecret) < 32 {
		return fmt.Errorf("auth.jwt_secret must be at least 32 characters (got %d)", len(c.Auth.JWTSecret))
	}

	if err := c.Assistant.validate(); err != nil {
		return fmt.Errorf("assistant: %w", err)
	}

	if c.Sweep.Interval <= 0 {
		return fmt.Errorf("sweep.interval must be > 0 (got %v)", c.Sweep.Interval)
	}

	return nil
}

func (a *AssistantConfig) validate() error {
	if a.MatchThreshold < 0 || a.MatchThreshold > 1 {
		return fmt.Errorf("match_threshold must be in [0,1] (got %v)", a.MatchThreshold)
	}
	if a.AutoSelectScore < a.MatchThreshold || a.AutoSelectScore > 1 {
		return fmt.Errorf("auto_select_score must be in [match_threshold,1] (got %v)", a.AutoSelectScore)
	}
	if a.MaxSuggestions <= 0 {
		return fmt.Errorf("max_suggestions must be > 0 (got %d)", a.MaxSuggestions)
	}
	if a.ConfirmationTTL <= 0 {
		return fmt.Errorf("confirmation_ttl must be > 0 (got %v)", a.ConfirmationTTL)
	}
	return nil
}
