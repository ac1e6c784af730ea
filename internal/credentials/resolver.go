package credentials

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	// GeminiKey is the credential name for the language model
	GeminiKey = "GEMINI_API_KEY"

	// OpenAIKey is the credential name for the optional OpenAI speech provider
	OpenAIKey = "OPENAI_API_KEY"

	// DefaultSecretsFile mirrors where hosted deployments mount their secrets
	DefaultSecretsFile = ".streamlit/secrets.toml"

	// DefaultDotEnvFile is the local development key file
	DefaultDotEnvFile = ".env"
)

// ErrMissingCredential is returned when no source yields a non-empty key
var ErrMissingCredential = errors.New("missing credential")

// Provider is a single credential source
type Provider interface {
	// Name returns a short description used in messages
	Name() string

	// Lookup returns the value for key and whether it was found non-empty
	Lookup(key string) (string, bool)
}

// Resolver tries providers in order; the first non-empty value wins
type Resolver struct {
	key       string
	providers []Provider
}

// NewResolver creates a resolver for key over the given providers
func NewResolver(key string, providers ...Provider) *Resolver {
	return &Resolver{
		key:       key,
		providers: providers,
	}
}

// NewDefaultResolver creates the standard lookup chain for key:
// secrets file, environment, .env file, config file
func NewDefaultResolver(key, secretsFile string) *Resolver {
	if secretsFile == "" {
		secretsFile = DefaultSecretsFile
	}
	return NewResolver(key,
		NewSecretsFileProvider(secretsFile),
		EnvProvider{},
		NewDotEnvProvider(DefaultDotEnvFile),
		NewConfigProvider(viper.GetViper(), configKeyFor(key)),
	)
}

// Key returns the credential name this resolver looks up
func (r *Resolver) Key() string {
	return r.key
}

// Resolve returns the first non-empty value for the resolver's key
func (r *Resolver) Resolve() (string, error) {
	for _, p := range r.providers {
		if value, ok := p.Lookup(r.key); ok {
			return value, nil
		}
	}

	names := make([]string, 0, len(r.providers))
	for _, p := range r.providers {
		names = append(names, p.Name())
	}
	return "", fmt.Errorf("%w: %s is not set (checked %s)", ErrMissingCredential, r.key, strings.Join(names, ", "))
}

// configKeyFor maps a credential name to its key in the voxlate config file
func configKeyFor(key string) string {
	switch key {
	case GeminiKey:
		return "gemini.api_key"
	case OpenAIKey:
		return "audio.openai_key"
	default:
		return strings.ToLower(key)
	}
}

// SecretsFileProvider reads keys from a TOML secrets file
type SecretsFileProvider struct {
	path string
}

// NewSecretsFileProvider creates a provider reading the TOML file at path
func NewSecretsFileProvider(path string) *SecretsFileProvider {
	return &SecretsFileProvider{path: path}
}

// Name returns the provider name
func (p *SecretsFileProvider) Name() string {
	return "secrets file " + p.path
}

// Lookup reads the secrets file on every call; a missing file is not an error
func (p *SecretsFileProvider) Lookup(key string) (string, bool) {
	if _, err := os.Stat(p.path); err != nil {
		return "", false
	}

	v := viper.New()
	v.SetConfigFile(p.path)
	if filepath.Ext(p.path) == "" {
		v.SetConfigType("toml")
	}
	if err := v.ReadInConfig(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to read secrets file %s: %v\n", p.path, err)
		return "", false
	}

	return nonEmpty(v.GetString(key))
}

// EnvProvider reads keys from the process environment
type EnvProvider struct{}

// Name returns the provider name
func (EnvProvider) Name() string {
	return "environment"
}

// Lookup returns the environment variable named key
func (EnvProvider) Lookup(key string) (string, bool) {
	return nonEmpty(os.Getenv(key))
}

// DotEnvProvider reads keys from a .env style file without touching the environment
type DotEnvProvider struct {
	path string
}

// NewDotEnvProvider creates a provider for the .env file at path
func NewDotEnvProvider(path string) *DotEnvProvider {
	return &DotEnvProvider{path: path}
}

// Name returns the provider name
func (p *DotEnvProvider) Name() string {
	return "dotenv file " + p.path
}

// Lookup loads the file at call time
func (p *DotEnvProvider) Lookup(key string) (string, bool) {
	values, err := godotenv.Read(p.path)
	if err != nil {
		return "", false
	}
	return nonEmpty(values[key])
}

// ConfigProvider reads a single key from a viper instance
type ConfigProvider struct {
	v         *viper.Viper
	configKey string
}

// NewConfigProvider creates a provider reading configKey from v
func NewConfigProvider(v *viper.Viper, configKey string) *ConfigProvider {
	return &ConfigProvider{v: v, configKey: configKey}
}

// Name returns the provider name
func (p *ConfigProvider) Name() string {
	return "config key " + p.configKey
}

// Lookup ignores the credential name and returns the configured key
func (p *ConfigProvider) Lookup(string) (string, bool) {
	if p.v == nil {
		return "", false
	}
	return nonEmpty(p.v.GetString(p.configKey))
}

func nonEmpty(value string) (string, bool) {
	value = strings.TrimSpace(value)
	return value, value != ""
}
