package httpwallet

import (
	"context"
	"net/http"
	"net/url"

	"github.com/openkcm/report-wallet/internal/proof"
	"github.com/openkcm/report-wallet/internal/wallet"
)

// Session is an open session on a wallet daemon.
type Session struct {
	client *Client
	id     string
}

var (
	_ wallet.Session = (*Session)(nil)
	_ proof.Preparer = (*Session)(nil)
)

func (s *Session) Configuration(ctx context.Context) (wallet.Configuration, error) {
	var conf wallet.Configuration
	err := s.client.do(ctx, http.MethodGet, s.id, "/configuration", nil, &conf)
	return conf, err
}

func (s *Session) ConnectionStatus(ctx context.Context) (wallet.ConnectionStatus, error) {
	var status wallet.ConnectionStatus
	err := s.client.do(ctx, http.MethodGet, s.id, "/status", nil, &status)
	return status, err
}

func (s *Session) Disconnect(ctx context.Context) error {
	return s.client.do(ctx, http.MethodPost, s.id, "/disconnect", nil, nil)
}

func (s *Session) PrepareProof(ctx context.Context, contractAddress string) error {
	body := map[string]string{"contractAddress": contractAddress}
	return s.client.do(ctx, http.MethodPost, s.id, "/proofs/prepare", body, nil)
}

func (s *Session) SignCircuit(ctx context.Context, call wallet.CircuitCall) (wallet.SignedTransaction, error) {
	if call.Arguments == nil {
		call.Arguments = []any{}
	}
	var tx wallet.SignedTransaction
	err := s.client.do(ctx, http.MethodPost, s.id, "/circuits/call", call, &tx)
	return tx, err
}

func (s *Session) SubmitTransaction(ctx context.Context, tx wallet.SignedTransaction) (wallet.Submission, error) {
	var sub wallet.Submission
	err := s.client.do(ctx, http.MethodPost, s.id, "/transactions", tx, &sub)
	return sub, err
}

func (s *Session) ContractState(ctx context.Context, contractAddress string) (wallet.LedgerState, error) {
	state := wallet.LedgerState{}
	err := s.client.do(ctx, http.MethodGet, s.id, "/contracts/"+url.PathEscape(contractAddress)+"/state", nil, &state)
	return state, err
}
