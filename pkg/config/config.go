package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Database drivers supported by the transfer state store.
const (
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// Config represents the application configuration
type Config struct {
	Server      ServerConfig      `yaml:"server"`
	Database    DatabaseConfig    `yaml:"database"`
	Logging     LoggingConfig     `yaml:"logging"`
	Monitoring  MonitoringConfig  `yaml:"monitoring"`
	Attestation AttestationConfig `yaml:"attestation"`
	Bridge      BridgeConfig      `yaml:"bridge"`
	Signer      SignerConfig      `yaml:"signer"`
	Registry    RegistryConfig    `yaml:"registry"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Host            string        `yaml:"host" default:"0.0.0.0"`
	Port            int           `yaml:"port" default:"8080" validate:"min=1,max=65535"`
	ReadTimeout     time.Duration `yaml:"read_timeout" default:"15s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" default:"15s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" default:"30s"`
	RequestTimeout  time.Duration `yaml:"request_timeout" default:"60s"`
}

// DatabaseConfig contains database connection settings
type DatabaseConfig struct {
	Driver   string `yaml:"driver" default:"postgres" validate:"oneof=postgres memory"`
	Host     string `yaml:"host" default:"localhost" validate:"required_if=Driver postgres"`
	Port     int    `yaml:"port" default:"5432"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"database" default:"settle"`
	SSLMode  string `yaml:"ssl_mode" default:"disable"`
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	Level      string `yaml:"level" default:"info"`
	Format     string `yaml:"format" default:"json" validate:"oneof=json console"`
	OutputPath string `yaml:"output_path" default:"stdout"`
}

// MonitoringConfig contains monitoring and metrics settings
type MonitoringConfig struct {
	Enabled     bool `yaml:"enabled" default:"true"`
	MetricsPort int  `yaml:"metrics_port" default:"9090" validate:"min=0,max=65535"`
}

// AttestationConfig contains settings for the attestation service client.
// A zero MaxWait waits until the caller cancels.
type AttestationConfig struct {
	BaseURL           string        `yaml:"base_url" default:"https://iris-api-sandbox.circle.com" validate:"required,url"`
	PollInterval      time.Duration `yaml:"poll_interval" default:"5s" validate:"gt=0"`
	MaxWait           time.Duration `yaml:"max_wait" default:"0s" validate:"min=0"`
	RequestTimeout    time.Duration `yaml:"request_timeout" default:"10s" validate:"gt=0"`
	RequestsPerSecond float64       `yaml:"requests_per_second" default:"5" validate:"gt=0"`
	Burst             int           `yaml:"burst" default:"1" validate:"min=1"`
}

// BridgeConfig contains burn/mint orchestration settings
type BridgeConfig struct {
	MinGasBalance       string        `yaml:"min_gas_balance" default:"0.01" validate:"required,numeric"`
	MintMaxRetries      int           `yaml:"mint_max_retries" default:"3" validate:"min=0"`
	MintRetryBackoff    time.Duration `yaml:"mint_retry_backoff" default:"2s" validate:"min=0"`
	DefaultSpeed        string        `yaml:"default_speed" default:"fast" validate:"oneof=fast standard"`
	GasLimit            uint64        `yaml:"gas_limit" default:"0"`
	MaxGasPrice         string        `yaml:"max_gas_price" validate:"omitempty,numeric"`
	ReceiptPollInterval time.Duration `yaml:"receipt_poll_interval" default:"3s" validate:"gt=0"`
	ReceiptTimeout      time.Duration `yaml:"receipt_timeout" default:"2m" validate:"gt=0"`
	// ReconcileOnStart fails transfers left non-terminal by a previous run.
	// Disable when several orchestrators share one database.
	ReconcileOnStart    bool          `yaml:"reconcile_on_start" default:"true"`
}

// SignerConfig selects the key that signs on-chain transactions.
// Exactly one of PrivateKey, EncryptedPrivateKey or SeedEnv must be set.
type SignerConfig struct {
	PrivateKey          string `yaml:"private_key" validate:"omitempty,hexadecimal"`
	EncryptedPrivateKey string `yaml:"encrypted_private_key" validate:"omitempty,base64"`
	MasterKeyEnv        string `yaml:"master_key_env" default:"SETTLE_MASTER_KEY"`
	SeedEnv             string `yaml:"seed_env"`
	WalletRef           string `yaml:"wallet_ref" validate:"required_with=SeedEnv"`
}

// RegistryConfig contains the set of chains the orchestrator may operate on.
// Presets loads the built-in CCTP testnet chains before Chains is applied.
type RegistryConfig struct {
	Presets bool                   `yaml:"presets" default:"true"`
	Chains  map[string]ChainConfig `yaml:"chains" validate:"omitempty,dive"`
}

// ChainConfig overrides or adds a chain registry entry. Zero fields keep preset values.
type ChainConfig struct {
	Name                 string  `yaml:"name"`
	ChainID              uint64  `yaml:"chain_id"`
	DomainID             *uint32 `yaml:"domain_id"`
	TokenAddress         string  `yaml:"token_address" validate:"omitempty,eth_addr"`
	BurnMessengerAddress string  `yaml:"burn_messenger_address" validate:"omitempty,eth_addr"`
	MintReceiverAddress  string  `yaml:"mint_receiver_address" validate:"omitempty,eth_addr"`
	RPCURL               string  `yaml:"rpc_url" validate:"omitempty,url"`
	NativeSymbol         string  `yaml:"native_symbol"`
}

// Load loads configuration from a YAML file. ${VAR} references are expanded
// from the environment before parsing.
func Load(configPath string) (*Config, error) {
	raw, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(raw)
}

// Parse decodes, defaults and validates a YAML configuration document.
func Parse(raw []byte) (*Config, error) {
	var cfg Config
	if err := defaults.Set(&cfg); err != nil {
		return nil, fmt.Errorf("failed to set config defaults: %w", err)
	}

	if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(raw))), &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

func validate(cfg *Config) error {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.Struct(cfg); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s failed on %q", fe.Namespace(), fe.Tag()))
			}
			return errors.New(strings.Join(msgs, "; "))
		}
		return err
	}

	sources := 0
	for _, s := range []string{cfg.Signer.PrivateKey, cfg.Signer.EncryptedPrivateKey, cfg.Signer.SeedEnv} {
		if s != "" {
			sources++
		}
	}
	if sources != 1 {
		return fmt.Errorf("signer: exactly one of private_key, encrypted_private_key or seed_env is required")
	}

	if !cfg.Registry.Presets && len(cfg.Registry.Chains) == 0 {
		return fmt.Errorf("registry.chains is required when presets are disabled")
	}
	return nil
}
