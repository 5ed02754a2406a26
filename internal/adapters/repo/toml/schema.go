package toml

import "fmt"

const currentSchemaVersion = 1

type fileSchema struct {
	Version int          `toml:"version"`
	Seats   []seatSchema `toml:"seats"`
}

func (s *fileSchema) applyDefaults() {
	if s.Version == 0 {
		s.Version = currentSchemaVersion
	}
}

func (s fileSchema) validateVersion() error {
	if s.Version > currentSchemaVersion {
		return fmt.Errorf("unsupported catalogue schema version %d (current %d)", s.Version, currentSchemaVersion)
	}

	return nil
}

type seatSchema struct {
	ID         string `toml:"id"`
	Category   string `toml:"category"`
	Number     int    `toml:"number"`
	Adjustable bool   `toml:"adjustable"`
	// Enabled defaults to true when omitted from the file.
	Enabled   *bool `toml:"enabled,omitempty"`
	Classroom int   `toml:"classroom,omitempty"`
}
