package walletmock

import (
	"context"
	"sync"

	"github.com/openkcm/report-wallet/internal/wallet"
)

type SessionOption func(*Session)

// Session is an in-memory wallet session. It records the calls it receives.
type Session struct {
	mu sync.Mutex

	config    wallet.Configuration
	connected bool
	state     wallet.LedgerState
	txHash    string

	prepareErr, signErr, submitErr, stateErr, statusErr, disconnectErr error

	// hooks run before the corresponding call returns; tests use them to block or to
	// mutate the world mid-call.
	beforeSign, beforeSubmit func(ctx context.Context) error

	Calls  []string
	Signed []wallet.CircuitCall
}

func WithNetworkID(networkID string) SessionOption {
	return func(s *Session) { s.config.NetworkID = networkID }
}
func WithLedgerState(state wallet.LedgerState) SessionOption {
	return func(s *Session) { s.state = state }
}
func WithTxHash(txHash string) SessionOption {
	return func(s *Session) { s.txHash = txHash }
}
func WithSignError(err error) SessionOption {
	return func(s *Session) { s.signErr = err }
}
func WithSubmitError(err error) SessionOption {
	return func(s *Session) { s.submitErr = err }
}
func WithStateError(err error) SessionOption {
	return func(s *Session) { s.stateErr = err }
}
func WithStatusError(err error) SessionOption {
	return func(s *Session) { s.statusErr = err }
}
func WithDisconnectError(err error) SessionOption {
	return func(s *Session) { s.disconnectErr = err }
}
func WithBeforeSign(fn func(ctx context.Context) error) SessionOption {
	return func(s *Session) { s.beforeSign = fn }
}
func WithBeforeSubmit(fn func(ctx context.Context) error) SessionOption {
	return func(s *Session) { s.beforeSubmit = fn }
}

var _ = wallet.Session(&Session{})

func NewSession(opts ...SessionOption) *Session {
	s := &Session{
		config:    wallet.Configuration{NetworkID: "undeployed"},
		connected: true,
		state:     wallet.LedgerState{},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

func (s *Session) record(call string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Calls = append(s.Calls, call)
}

// CallsSnapshot returns a copy of the recorded call names.
func (s *Session) CallsSnapshot() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.Calls...)
}

// SetConnected flips what ConnectionStatus reports.
func (s *Session) SetConnected(connected bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.connected = connected
}

func (s *Session) Configuration(_ context.Context) (wallet.Configuration, error) {
	s.record("Configuration")
	return s.config, nil
}

func (s *Session) ConnectionStatus(_ context.Context) (wallet.ConnectionStatus, error) {
	s.record("ConnectionStatus")
	if s.statusErr != nil {
		return wallet.ConnectionStatus{}, s.statusErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return wallet.ConnectionStatus{Connected: s.connected, NetworkID: s.config.NetworkID}, nil
}

func (s *Session) Disconnect(_ context.Context) error {
	s.record("Disconnect")
	if s.disconnectErr != nil {
		return s.disconnectErr
	}
	s.SetConnected(false)
	return nil
}

func (s *Session) SignCircuit(ctx context.Context, call wallet.CircuitCall) (wallet.SignedTransaction, error) {
	s.record("SignCircuit")
	s.mu.Lock()
	s.Signed = append(s.Signed, call)
	s.mu.Unlock()
	if s.beforeSign != nil {
		if err := s.beforeSign(ctx); err != nil {
			return wallet.SignedTransaction{}, err
		}
	}
	if s.signErr != nil {
		return wallet.SignedTransaction{}, s.signErr
	}
	return wallet.SignedTransaction{Payload: []byte(call.Circuit)}, nil
}

func (s *Session) SubmitTransaction(ctx context.Context, _ wallet.SignedTransaction) (wallet.Submission, error) {
	s.record("SubmitTransaction")
	if s.beforeSubmit != nil {
		if err := s.beforeSubmit(ctx); err != nil {
			return wallet.Submission{}, err
		}
	}
	if s.submitErr != nil {
		return wallet.Submission{}, s.submitErr
	}
	return wallet.Submission{TxHash: s.txHash}, nil
}

func (s *Session) ContractState(_ context.Context, _ string) (wallet.LedgerState, error) {
	s.record("ContractState")
	if s.stateErr != nil {
		return nil, s.stateErr
	}
	return s.state, nil
}

// ProvingSession is a Session that also prepares proofs itself.
type ProvingSession struct {
	*Session
}

func NewProvingSession(opts ...SessionOption) *ProvingSession {
	return &ProvingSession{Session: NewSession(opts...)}
}

func WithPrepareError(err error) SessionOption {
	return func(s *Session) { s.prepareErr = err }
}

func (s *ProvingSession) PrepareProof(_ context.Context, _ string) error {
	s.record("PrepareProof")
	return s.prepareErr
}
