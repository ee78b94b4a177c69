// Package config defines the necessary types to configure the application.
// An example config file config.yaml is provided in the repository.
package config

import (
	"time"

	"github.com/openkcm/common-sdk/pkg/commoncfg"
)

// DefaultContractAddress is the report registry contract on the standalone network.
const DefaultContractAddress = "f84c5ddd658f7292adeeacd5c17d446329a228b9d53cfab0b16fd7533dcbb6db"

type Config struct {
	commoncfg.BaseConfig `mapstructure:",squash" yaml:",inline"`

	HTTP HTTPServer `yaml:"http"`

	ValKey     ValKey     `yaml:"valkey"`
	Wallet     Wallet     `yaml:"wallet"`
	Contract   Contract   `yaml:"contract"`
	Submission Submission `yaml:"submission"`
}

type HTTPServer struct {
	Address         string        `yaml:"address" default:":8080"`
	ShutdownTimeout time.Duration `yaml:"shutdownTimeout" default:"5s"`
}

// ValKey configures the provider announcement store. Discovery through Valkey is
// off unless Enabled is set.
type ValKey struct {
	Enabled   bool                `yaml:"enabled"`
	Host      commoncfg.SourceRef `yaml:"host"`
	User      commoncfg.SourceRef `yaml:"user"`
	Password  commoncfg.SourceRef `yaml:"password"`
	SecretRef commoncfg.SecretRef `yaml:"secretRef"`
	Prefix    string              `yaml:"prefix" default:"report-wallet"`
}

type Wallet struct {
	NetworkID         string        `yaml:"networkID" default:"undeployed"`
	PreferredProvider string        `yaml:"preferredProvider"`
	SettleDelay       time.Duration `yaml:"settleDelay" default:"1s"`
	VerifyInterval    time.Duration `yaml:"verifyInterval" default:"30s"`
	RequestTimeout    time.Duration `yaml:"requestTimeout" default:"5m"`

	// Providers are injected into the environment at startup.
	Providers []StaticProvider `yaml:"providers"`
}

type StaticProvider struct {
	Name       string `yaml:"name"`
	APIVersion string `yaml:"apiVersion"`
	Endpoint   string `yaml:"endpoint"`
	Icon       string `yaml:"icon"`
	RDNS       string `yaml:"rdns"`
}

type Contract struct {
	// Address falls back to DefaultContractAddress when no source is configured.
	Address commoncfg.SourceRef `yaml:"address"`
}

type Submission struct {
	PhaseTimeout time.Duration `yaml:"phaseTimeout" default:"2m"`
	NoticeTTL    time.Duration `yaml:"noticeTTL" default:"6s"`
	ProofDelay   time.Duration `yaml:"proofDelay" default:"2500ms"`
}
