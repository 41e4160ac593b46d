package github

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// CredentialReader loads a locally stored token. storage.CredentialStore
// implements it.
type CredentialReader interface {
	LoadToken() (string, error)
}

// ghHost is one entry of gh CLI's hosts.yml.
type ghHost struct {
	OAuthToken string `yaml:"oauth_token"`
	User       string `yaml:"user"`
}

// ChainTokenProvider resolves a GitHub token from, in priority order:
// the GITHUB_TOKEN environment variable, the local credential store and
// the gh CLI configuration.
type ChainTokenProvider struct {
	Local CredentialReader
	// GHConfigDir overrides GH_CONFIG_DIR / ~/.config/gh.
	GHConfigDir string
	// Getenv defaults to os.Getenv.
	Getenv func(string) string
}

// NewChainTokenProvider creates a provider backed by the given local store.
func NewChainTokenProvider(local CredentialReader) *ChainTokenProvider {
	return &ChainTokenProvider{Local: local}
}

func (p *ChainTokenProvider) getenv(key string) string {
	if p.Getenv != nil {
		return p.Getenv(key)
	}
	return os.Getenv(key)
}

// GetToken returns the first token found.
func (p *ChainTokenProvider) GetToken() (string, error) {
	_, token, err := p.GetTokenWithSource()
	return token, err
}

// GetTokenWithSource returns both the token and a description of its source.
func (p *ChainTokenProvider) GetTokenWithSource() (string, string, error) {
	// 1. Environment variable (highest priority)
	if token := strings.TrimSpace(p.getenv("GITHUB_TOKEN")); token != "" {
		return "environment variable", token, nil
	}

	// 2. Local credential store
	if p.Local != nil {
		if token, err := p.Local.LoadToken(); err == nil && token != "" {
			return "local credential store", token, nil
		}
	}

	// 3. gh CLI configuration
	if token, err := p.ghToken(); err == nil && token != "" {
		return "gh CLI config", token, nil
	}

	return "", "", &AuthError{Reason: "credential missing", Err: ErrNoToken}
}

func (p *ChainTokenProvider) ghConfigDir() (string, error) {
	if p.GHConfigDir != "" {
		return p.GHConfigDir, nil
	}
	if dir := p.getenv("GH_CONFIG_DIR"); dir != "" {
		return dir, nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".config", "gh"), nil
}

// ghToken reads github.com's oauth_token from gh CLI's hosts.yml.
func (p *ChainTokenProvider) ghToken() (string, error) {
	dir, err := p.ghConfigDir()
	if err != nil {
		return "", err
	}

	data, err := os.ReadFile(filepath.Join(dir, "hosts.yml"))
	if err != nil {
		return "", err
	}

	var hosts map[string]ghHost
	if err := yaml.Unmarshal(data, &hosts); err != nil {
		return "", fmt.Errorf("failed to parse gh hosts.yml: %w", err)
	}

	host, ok := hosts["github.com"]
	if !ok || host.OAuthToken == "" {
		return "", errors.New("oauth_token not found in gh config")
	}
	return host.OAuthToken, nil
}

// StaticTokenProvider always returns the same token. An empty token is
// reported as a missing credential.
type StaticTokenProvider struct {
	Token  string
	Source string
}

func (p StaticTokenProvider) GetToken() (string, error) {
	_, token, err := p.GetTokenWithSource()
	return token, err
}

func (p StaticTokenProvider) GetTokenWithSource() (string, string, error) {
	if p.Token == "" {
		return "", "", &AuthError{Reason: "credential missing", Err: ErrNoToken}
	}
	source := p.Source
	if source == "" {
		source = "static"
	}
	return source, p.Token, nil
}
