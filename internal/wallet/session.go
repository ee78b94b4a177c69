// Package wallet defines the capability surface of a connected wallet.
// Everything behind it (key management, proving, ledger access) is opaque.
package wallet

import "context"

// Session is one authenticated connection to a wallet provider.
type Session interface {
	Configuration(ctx context.Context) (Configuration, error)
	ConnectionStatus(ctx context.Context) (ConnectionStatus, error)
	Disconnect(ctx context.Context) error

	// SignCircuit asks the wallet to build and sign a call of a contract circuit.
	// The wallet prompts the user; a decline is reported as an *Error with CodeUserRejected.
	SignCircuit(ctx context.Context, call CircuitCall) (SignedTransaction, error)
	// SubmitTransaction relays a signed transaction to the network.
	SubmitTransaction(ctx context.Context, tx SignedTransaction) (Submission, error)
	// ContractState returns the public ledger state of a contract.
	ContractState(ctx context.Context, contractAddress string) (LedgerState, error)
}

type Configuration struct {
	NetworkID        string `json:"networkId"`
	IndexerURI       string `json:"indexerUri,omitempty"`
	ProverServerURI  string `json:"proverServerUri,omitempty"`
	SubstrateNodeURI string `json:"substrateNodeUri,omitempty"`
}

type ConnectionStatus struct {
	Connected bool   `json:"connected"`
	NetworkID string `json:"networkId,omitempty"`
}

type CircuitCall struct {
	ContractAddress string `json:"contractAddress"`
	Circuit         string `json:"circuit"`
	Arguments       []any  `json:"arguments"`
}

// SignedTransaction is an opaque, wallet-produced transaction.
type SignedTransaction struct {
	Payload []byte `json:"transaction"`
}

// Submission is the relay result. TxHash is empty when the provider does not report one.
type Submission struct {
	TxHash string `json:"txHash,omitempty"`
}

// LedgerState is the decoded public state of a contract, keyed by ledger field name.
type LedgerState map[string]any
