// Package provider discovers the wallet providers available to this process.
package provider

import (
	"context"

	"github.com/openkcm/report-wallet/internal/wallet"
)

// Connector is the activation capability of a provider.
type Connector interface {
	Connect(ctx context.Context, networkID string) (wallet.Session, error)
}

// ConnectorFunc adapts a function to a Connector.
type ConnectorFunc func(ctx context.Context, networkID string) (wallet.Session, error)

func (f ConnectorFunc) Connect(ctx context.Context, networkID string) (wallet.Session, error) {
	return f(ctx, networkID)
}

// Descriptor describes one injected wallet provider.
type Descriptor struct {
	Name       string    `json:"name" yaml:"name"`
	APIVersion string    `json:"apiVersion" yaml:"apiVersion"`
	Icon       string    `json:"icon,omitempty" yaml:"icon,omitempty"`
	RDNS       string    `json:"rdns,omitempty" yaml:"rdns,omitempty"`
	Connector  Connector `json:"-" yaml:"-"`
}

// usable mirrors what a wallet must expose to be offered at all: a name and a way to connect.
func (d Descriptor) usable() bool {
	return d.Name != "" && d.Connector != nil
}
