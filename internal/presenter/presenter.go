// Package presenter turns wallet, submission and ledger state into what the user sees,
// and maps user actions onto them.
package presenter

import (
	"context"
	"errors"

	slogctx "github.com/veqryn/slog-context"

	"github.com/openkcm/report-wallet/internal/ledger"
	"github.com/openkcm/report-wallet/internal/provider"
	"github.com/openkcm/report-wallet/internal/serviceerr"
	"github.com/openkcm/report-wallet/internal/session"
	"github.com/openkcm/report-wallet/internal/submission"
	"github.com/openkcm/report-wallet/internal/wallet"
)

const (
	MsgLookingForWallet = "Looking for Midnight wallet..."
	MsgConnecting       = "Connecting to Midnight wallet..."
	MsgConnected        = "Wallet connected successfully! You can now submit reports."
	MsgDisconnected     = "Wallet disconnected"
	MsgNoWallet         = "No Midnight wallet found. Please install the Midnight Lace wallet extension."
	MsgRejected         = "Failed to connect to wallet. Connection was rejected."

	msgConnectFailedPrefix = "Failed to connect wallet: "
	defaultRejectDetail    = "User rejected connection"
)

type Discovery interface {
	Last() provider.Snapshot
}

type Sessions interface {
	Connect(ctx context.Context) (*session.ActiveSession, error)
	Disconnect(ctx context.Context)
	Current() (*session.ActiveSession, bool)
	State() session.State
	NetworkID() string
}

type Submitter interface {
	Submit(ctx context.Context) (submission.Result, error)
	IsSubmitting() bool
	Last() (submission.Attempt, bool)
}

type ReadModel interface {
	Refresh(ctx context.Context) (ledger.Reading, error)
	Tally() *ledger.Tally
}

type Presenter struct {
	discovery       Discovery
	sessions        Sessions
	submitter       Submitter
	reads           ReadModel
	notices         *Notices
	contractAddress string
}

func New(discovery Discovery, sessions Sessions, submitter Submitter, reads ReadModel, notices *Notices, contractAddress string) *Presenter {
	return &Presenter{
		discovery:       discovery,
		sessions:        sessions,
		submitter:       submitter,
		reads:           reads,
		notices:         notices,
		contractAddress: contractAddress,
	}
}

// TransitionListener posts the messages that belong to session transitions the
// presenter does not drive itself.
func TransitionListener(n *Notices) func(context.Context, session.Transition) {
	return func(_ context.Context, t session.Transition) {
		switch {
		case t.To == session.Connecting:
			n.Post(MsgConnecting)
		case t.To == session.Disconnected && errors.Is(t.Err, serviceerr.ErrSessionInvalidated):
			n.Post(MsgDisconnected)
		}
	}
}

// Connect connects the wallet and reads the current total once connected.
func (p *Presenter) Connect(ctx context.Context) (*session.ActiveSession, error) {
	if _, ok := p.sessions.Current(); !ok {
		p.notices.Post(MsgLookingForWallet)
	}

	active, err := p.sessions.Connect(ctx)
	if err != nil {
		p.notices.Post(connectFailureMessage(err))
		return nil, err
	}

	p.notices.Post(MsgConnected)
	if _, err := p.reads.Refresh(ctx); err != nil {
		slogctx.Warn(ctx, "Reading total reports after connect failed", "error", err)
	}

	return active, nil
}

func (p *Presenter) Disconnect(ctx context.Context) {
	p.sessions.Disconnect(ctx)
	p.notices.Post(MsgDisconnected)
}

// Submit starts an attempt. A request while one is running is rejected without a message.
func (p *Presenter) Submit(ctx context.Context) (submission.Result, error) {
	return p.submitter.Submit(ctx)
}

func (p *Presenter) Refresh(ctx context.Context) (ledger.Reading, error) {
	return p.reads.Refresh(ctx)
}

// View assembles the current view.
func (p *Presenter) View() View {
	snapshot := p.discovery.Last()
	state := p.sessions.State()
	submitting := p.submitter.IsSubmitting()
	reading := p.reads.Tally().Reading()

	v := View{
		PrimaryAction: primaryAction(snapshot.HasAny(), state, submitting),
		Wallet: WalletView{
			Available: snapshot.HasAny(),
			Providers: snapshot.Names(),
			State:     state,
		},
		Reports: ReportsView{
			Total:       reading.Value,
			Known:       reading.Known,
			RefreshedAt: reading.RefreshedAt,
		},
		ContractAddress: ShortenAddress(p.contractAddress),
		Network:         NetworkLabel(p.sessions.NetworkID()),
		Submitting:      submitting,
	}

	if active, ok := p.sessions.Current(); ok {
		v.Wallet.Connected = true
		v.Wallet.Provider = active.Provider
		v.Wallet.CanDisconnect = true
	}
	if !snapshot.HasAny() {
		v.Banner = NoWalletBanner
	}
	if notice, ok := p.notices.Current(); ok {
		v.Message = &notice
	}
	if last, ok := p.submitter.Last(); ok {
		v.LastSubmission = &last
	}

	return v
}

func connectFailureMessage(err error) string {
	switch serviceerr.Kind(err) {
	case serviceerr.ErrNoProviderFound:
		return MsgNoWallet
	case serviceerr.ErrActivationRejected:
		cause := serviceerr.Cause(err)
		if cause == nil {
			return MsgRejected
		}
		return msgConnectFailedPrefix + detail(cause, defaultRejectDetail)
	default:
		return msgConnectFailedPrefix + detail(serviceerr.Cause(err), err.Error())
	}
}

// detail is the part of a wallet failure the user is shown.
func detail(cause error, fallback string) string {
	if cause == nil {
		return fallback
	}
	var walletErr *wallet.Error
	if errors.As(cause, &walletErr) {
		if walletErr.Message == "" {
			return fallback
		}
		return walletErr.Message
	}
	return cause.Error()
}
