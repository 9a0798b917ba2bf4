package store

import "github.com/spf13/viper"

// Config holds configuration for the Store.
type Config struct {
	// ConstraintTable is the name of the unique-constraint records table.
	// Default: "alms_unique_constraints"
	ConstraintTable string

	// SearchTable is the name of the caption search-term table maintained by
	// the stream indexer.
	// Default: "alms_caption_search"
	SearchTable string

	// NumSearchShards is the number of shards for search-term partition keys.
	// Higher values spread hot terms across partitions.
	// Default: 1 (no sharding)
	// Max: 256
	NumSearchShards int
}

// DefaultConfig returns sensible defaults for small deployments.
func DefaultConfig() Config {
	return Config{
		ConstraintTable: "alms_unique_constraints",
		SearchTable:     "alms_caption_search",
		NumSearchShards: 1,
	}
}

// LoadConfig reads configuration from the environment, falling back to the
// same defaults as DefaultConfig.
func LoadConfig() Config {
	v := viper.New()
	v.SetDefault("ALMS_CONSTRAINT_TABLE", "alms_unique_constraints")
	v.SetDefault("ALMS_SEARCH_TABLE", "alms_caption_search")
	v.SetDefault("ALMS_SEARCH_SHARDS", 1)
	v.AutomaticEnv()

	cfg := Config{
		ConstraintTable: v.GetString("ALMS_CONSTRAINT_TABLE"),
		SearchTable:     v.GetString("ALMS_SEARCH_TABLE"),
		NumSearchShards: v.GetInt("ALMS_SEARCH_SHARDS"),
	}
	cfg.validate()
	return cfg
}

// validate ensures config values are within acceptable bounds.
func (c *Config) validate() {
	if c.ConstraintTable == "" {
		c.ConstraintTable = "alms_unique_constraints"
	}
	if c.SearchTable == "" {
		c.SearchTable = "alms_caption_search"
	}
	if c.NumSearchShards < 1 {
		c.NumSearchShards = 1
	}
	if c.NumSearchShards > 256 {
		c.NumSearchShards = 256
	}
}
