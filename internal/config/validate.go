package config

import "fmt"

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if len(c.Auth.JWTSecret) < 32 {
		return fmt.Errorf("auth.jwt_secret must be at least 32 characters (got %d)", len(c.Auth.JWTSecret))
	}
	if c.Auth.SessionTTL <= 0 {
		return fmt.Errorf("auth.session_ttl must be positive (got %v)", c.Auth.SessionTTL)
	}

	if !c.Translator.UseStub && c.Translator.BaseURL == "" {
		return fmt.Errorf("translator.base_url is required unless translator.use_stub is set")
	}

	if c.Audio.Enabled {
		if !c.Audio.UseStub && c.Audio.SpeechBaseURL == "" {
			return fmt.Errorf("audio.speech_base_url is required unless audio.use_stub is set")
		}
		if c.Audio.SweepInterval <= 0 {
			return fmt.Errorf("audio.sweep_interval must be positive (got %v)", c.Audio.SweepInterval)
		}
		if c.Audio.StuckMaxAge <= 0 {
			return fmt.Errorf("audio.stuck_max_age must be positive (got %v)", c.Audio.StuckMaxAge)
		}
	}

	if c.Generator.KnownWordsLimit <= 0 {
		return fmt.Errorf("generator.known_words_limit must be positive (got %d)", c.Generator.KnownWordsLimit)
	}

	return nil
}
