package transcription

import (
	"fmt"
	"strings"

	"github.com/kbukum/scribe/errors"
)

// Provider selects the speech-to-text backend.
type Provider int

const (
	// ProviderOpenAI is the default provider.
	ProviderOpenAI Provider = iota
	ProviderMistral
)

// providerSpec is the per-provider data the HTTP adapter needs.
type providerSpec struct {
	name        string
	displayName string
	model       string
	endpoint    string
}

var providerSpecs = map[Provider]providerSpec{
	ProviderOpenAI:  openAISpec,
	ProviderMistral: mistralSpec,
}

// Providers returns every supported provider in declaration order.
func Providers() []Provider {
	return []Provider{ProviderOpenAI, ProviderMistral}
}

// ProviderNames returns the lowercase names accepted by ParseProvider.
func ProviderNames() []string {
	names := make([]string, 0, len(providerSpecs))
	for _, p := range Providers() {
		names = append(names, p.String())
	}
	return names
}

// ParseProvider parses a provider name case-insensitively.
// An empty name yields the default provider.
func ParseProvider(s string) (Provider, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if name == "" {
		return ProviderOpenAI, nil
	}
	for _, p := range Providers() {
		if p.String() == name {
			return p, nil
		}
	}
	return ProviderOpenAI, errors.InvalidInput("provider",
		fmt.Sprintf("unknown provider %q, use one of: %s", s, strings.Join(ProviderNames(), ", ")))
}

// String returns the lowercase provider name used in settings files.
func (p Provider) String() string {
	if spec, ok := providerSpecs[p]; ok {
		return spec.name
	}
	return fmt.Sprintf("provider(%d)", int(p))
}

// DisplayName returns the human-readable provider name.
func (p Provider) DisplayName() string {
	if spec, ok := providerSpecs[p]; ok {
		return spec.displayName
	}
	return p.String()
}

// Model returns the fixed model identifier sent with every upload.
func (p Provider) Model() string {
	return providerSpecs[p].model
}

// Endpoint returns the provider's transcription URL.
func (p Provider) Endpoint() string {
	return providerSpecs[p].endpoint
}

// Valid reports whether p is a known provider.
func (p Provider) Valid() bool {
	_, ok := providerSpecs[p]
	return ok
}

// MarshalText implements encoding.TextMarshaler.
func (p Provider) MarshalText() ([]byte, error) {
	if !p.Valid() {
		return nil, fmt.Errorf("invalid provider %d", int(p))
	}
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Provider) UnmarshalText(text []byte) error {
	parsed, err := ParseProvider(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}
