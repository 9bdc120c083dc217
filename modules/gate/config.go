package gate

import (
	"fmt"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

// Config holds the instance configuration for a gate Service. Authority is
// explicit per instance: the owner account seeds the Root role and owns the
// whitelister slot; there is no ambient global state.
type Config struct {
	// Owner is the bootstrap account: initial Root member and whitelister
	// slot owner.
	Owner uuid.UUID `env:"GATE_OWNER,required"`

	// BlocklistName and WhitelistName label the two status lists in events
	// and errors.
	BlocklistName string `env:"GATE_BLOCKLIST_NAME" envDefault:"blocklist"`
	WhitelistName string `env:"GATE_WHITELIST_NAME" envDefault:"whitelist"`

	// JournalLimit caps how many journal entries Events returns by default.
	JournalLimit int `env:"GATE_JOURNAL_LIMIT" envDefault:"100"`
}

var defaultEnvLoaded sync.Once

// LoadConfig loads Config from environment variables, reading a .env file
// first if one exists.
func LoadConfig() (Config, error) {
	defaultEnvLoaded.Do(func() {
		// The .env file is optional.
		_ = godotenv.Load()
	})

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("gate: parse config: %w", err)
	}
	return cfg, nil
}
