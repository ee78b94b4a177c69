package walletmock

import (
	"context"
	"sync/atomic"

	"github.com/openkcm/report-wallet/internal/wallet"
)

// Connector is an activation capability that hands out a fixed session or error.
type Connector struct {
	session wallet.Session
	err     error

	calls       atomic.Int32
	lastNetwork atomic.Value
}

func NewConnector(session wallet.Session, err error) *Connector {
	return &Connector{session: session, err: err}
}

func (c *Connector) Connect(_ context.Context, networkID string) (wallet.Session, error) {
	c.calls.Add(1)
	c.lastNetwork.Store(networkID)
	if c.err != nil {
		return nil, c.err
	}
	return c.session, nil
}

func (c *Connector) Calls() int {
	return int(c.calls.Load())
}

func (c *Connector) LastNetworkID() string {
	v, _ := c.lastNetwork.Load().(string)
	return v
}
