package config

// Config is the resolved configuration. It is read-only once resolved.
type Config struct {
	Provider   Provider          `yaml:"provider,omitempty"`
	Registry   Registry          `yaml:"registry,omitempty"`
	SolanaPath string            `yaml:"solana_path,omitempty"`
	Clusters   map[string]string `yaml:"clusters,omitempty"`
}

// Provider holds the signer used for deployments.
type Provider struct {
	Wallet string `yaml:"wallet,omitempty"`
}

// Registry locates the build registry and the program within it.
type Registry struct {
	URL       string `yaml:"url,omitempty"`
	ProgramID string `yaml:"program_id,omitempty"`
}

// Overrides are flag values; empty fields leave the config untouched.
type Overrides struct {
	Wallet      string
	RegistryURL string
}

const (
	DefaultWallet     = "~/.config/solana/id.json"
	DefaultRegistry   = "https://anchor.projectserum.com/api/v0"
	DefaultProgramID  = "9xQeWvG816bUx9EPjHmaT23yvVM2ZWbrrpZb9PusVFin"
	DefaultSolanaPath = "solana"

	// FileName is looked up in the root directory when no --config is given.
	FileName = "serum-dev-tools.yaml"
)

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Provider:   Provider{Wallet: DefaultWallet},
		Registry:   Registry{URL: DefaultRegistry, ProgramID: DefaultProgramID},
		SolanaPath: DefaultSolanaPath,
	}
}
