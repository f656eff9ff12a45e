package geyser

import "fmt"

// ConfigError reports an invalid construction input (endpoint or credential).
// It is returned before any network activity happens.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("geyser config: invalid %s: %s", e.Field, e.Reason)
}

// validateXToken rejects tokens that cannot be carried as a gRPC metadata
// value. Metadata values must be printable ASCII (0x20-0x7E).
func validateXToken(token string) error {
	for i := 0; i < len(token); i++ {
		c := token[i]
		if c < 0x20 || c > 0x7e {
			return &ConfigError{
				Field:  "x-token",
				Reason: fmt.Sprintf("non-printable byte 0x%02x at position %d", c, i),
			}
		}
	}
	return nil
}
