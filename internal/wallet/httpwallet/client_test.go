package httpwallet_test

import (
	"encoding/json"
	"math/big"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openkcm/report-wallet/internal/proof"
	"github.com/openkcm/report-wallet/internal/provider"
	"github.com/openkcm/report-wallet/internal/serviceerr"
	"github.com/openkcm/report-wallet/internal/session"
	"github.com/openkcm/report-wallet/internal/wallet"
	"github.com/openkcm/report-wallet/internal/wallet/httpwallet"
)

const (
	testSessionID = "session-1"
	testContract  = "f84c5ddd658f7292adeeacd5c17d446329a228b9d53cfab0b16fd7533dcbb6db"
)

func StartWalletServer(t *testing.T, declineSign bool) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()

	requireSession := func(w http.ResponseWriter, r *http.Request) bool {
		if r.Header.Get("X-Wallet-Session") != testSessionID {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"code": 4100, "message": "unknown session"}`))
			return false
		}
		return true
	}

	mux.HandleFunc("POST /connect", func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			NetworkID string `json:"networkId"`
		}
		_ = json.NewDecoder(r.Body).Decode(&req)
		switch req.NetworkID {
		case "undeployed":
			_, _ = w.Write([]byte(`{"sessionId": "` + testSessionID + `"}`))
		case "empty":
			_, _ = w.Write([]byte(`{}`))
		default:
			w.WriteHeader(http.StatusForbidden)
			_, _ = w.Write([]byte(`{"code": 4001, "message": "User rejected the request"}`))
		}
	})
	mux.HandleFunc("GET /status", func(w http.ResponseWriter, r *http.Request) {
		if requireSession(w, r) {
			_, _ = w.Write([]byte(`{"connected": true, "networkId": "undeployed"}`))
		}
	})
	mux.HandleFunc("GET /configuration", func(w http.ResponseWriter, r *http.Request) {
		if requireSession(w, r) {
			_, _ = w.Write([]byte(`{"networkId": "undeployed", "indexerUri": "http://indexer"}`))
		}
	})
	mux.HandleFunc("POST /disconnect", func(w http.ResponseWriter, r *http.Request) {
		if requireSession(w, r) {
			w.WriteHeader(http.StatusNoContent)
		}
	})
	mux.HandleFunc("POST /proofs/prepare", func(w http.ResponseWriter, r *http.Request) {
		if requireSession(w, r) {
			w.WriteHeader(http.StatusNoContent)
		}
	})
	mux.HandleFunc("POST /circuits/call", func(w http.ResponseWriter, r *http.Request) {
		if !requireSession(w, r) {
			return
		}
		var call wallet.CircuitCall
		_ = json.NewDecoder(r.Body).Decode(&call)
		if declineSign {
			w.WriteHeader(http.StatusForbidden)
			_, _ = w.Write([]byte(`{"code": 4001, "message": "User rejected the request"}`))
			return
		}
		_ = json.NewEncoder(w).Encode(wallet.SignedTransaction{Payload: []byte(call.Circuit)})
	})
	mux.HandleFunc("POST /transactions", func(w http.ResponseWriter, r *http.Request) {
		if requireSession(w, r) {
			_, _ = w.Write([]byte(`{"txHash": "0xabc"}`))
		}
	})
	mux.HandleFunc("GET /contracts/{address}/state", func(w http.ResponseWriter, r *http.Request) {
		if !requireSession(w, r) {
			return
		}
		if r.PathValue("address") != testContract {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte(`{"totalReports": 123456789012345678901234567890}`))
	})

	return httptest.NewServer(mux)
}

func TestNewClient(t *testing.T) {
	_, err := httpwallet.NewClient("localhost:9000", nil)
	assert.Error(t, err)

	c, err := httpwallet.NewClient("http://localhost:9000", nil)
	require.NoError(t, err)
	d := c.Descriptor("lace", "1.0.0", "", "io.lace")
	assert.Equal(t, "lace", d.Name)
	assert.Same(t, c, d.Connector)
}

func TestClient_Connect(t *testing.T) {
	server := StartWalletServer(t, false)
	defer server.Close()

	c, err := httpwallet.NewClient(server.URL, server.Client())
	require.NoError(t, err)

	t.Run("opens a session", func(t *testing.T) {
		s, err := c.Connect(t.Context(), "undeployed")
		require.NoError(t, err)
		require.NotNil(t, s)
	})

	t.Run("user rejection keeps the wallet code", func(t *testing.T) {
		_, err := c.Connect(t.Context(), "mainnet")
		require.Error(t, err)
		assert.True(t, wallet.IsUserRejection(err))
	})

	t.Run("empty session opens nothing", func(t *testing.T) {
		s, err := c.Connect(t.Context(), "empty")
		require.NoError(t, err)
		assert.Nil(t, s)
	})
}

func TestClient_EmptySessionIsARejection(t *testing.T) {
	server := StartWalletServer(t, false)
	defer server.Close()

	c, err := httpwallet.NewClient(server.URL, server.Client())
	require.NoError(t, err)

	env := provider.NewEnvironment()
	env.Inject(c.Descriptor("lace", "1.0.0", "", ""))
	manager, err := session.NewManager(provider.NewRegistry(env), "empty")
	require.NoError(t, err)

	_, err = manager.Connect(t.Context())
	assert.ErrorIs(t, err, serviceerr.ErrActivationRejected)
	assert.Equal(t, session.Disconnected, manager.State())
}

func TestSession_ContractStateEscapesAddress(t *testing.T) {
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/connect" {
			_, _ = w.Write([]byte(`{"sessionId": "s-1"}`))
			return
		}
		gotPath = r.URL.EscapedPath()
		_, _ = w.Write([]byte(`{"totalReports": 1}`))
	}))
	defer server.Close()

	c, err := httpwallet.NewClient(server.URL, server.Client())
	require.NoError(t, err)
	s, err := c.Connect(t.Context(), "undeployed")
	require.NoError(t, err)

	_, err = s.ContractState(t.Context(), "a/b c")
	require.NoError(t, err)
	assert.Equal(t, "/contracts/a%2Fb%20c/state", gotPath)
}

func TestSession_RoundTrip(t *testing.T) {
	server := StartWalletServer(t, false)
	defer server.Close()

	c, err := httpwallet.NewClient(server.URL, server.Client())
	require.NoError(t, err)
	s, err := c.Connect(t.Context(), "undeployed")
	require.NoError(t, err)

	ctx := t.Context()

	status, err := s.ConnectionStatus(ctx)
	require.NoError(t, err)
	assert.True(t, status.Connected)

	conf, err := s.Configuration(ctx)
	require.NoError(t, err)
	assert.Equal(t, "http://indexer", conf.IndexerURI)

	preparer, ok := s.(proof.Preparer)
	require.True(t, ok)
	require.NoError(t, preparer.PrepareProof(ctx, testContract))

	tx, err := s.SignCircuit(ctx, wallet.CircuitCall{ContractAddress: testContract, Circuit: "increment"})
	require.NoError(t, err)
	assert.Equal(t, []byte("increment"), tx.Payload)

	sub, err := s.SubmitTransaction(ctx, tx)
	require.NoError(t, err)
	assert.Equal(t, "0xabc", sub.TxHash)

	state, err := s.ContractState(ctx, testContract)
	require.NoError(t, err)
	n, ok := state["totalReports"].(json.Number)
	require.True(t, ok, "large numbers are kept as json.Number")
	want, _ := new(big.Int).SetString("123456789012345678901234567890", 10)
	assert.Equal(t, want.String(), n.String())

	_, err = s.ContractState(ctx, "missing")
	assert.Error(t, err)

	require.NoError(t, s.Disconnect(ctx))
}

func TestSession_SignDeclined(t *testing.T) {
	server := StartWalletServer(t, true)
	defer server.Close()

	c, err := httpwallet.NewClient(server.URL, server.Client())
	require.NoError(t, err)
	s, err := c.Connect(t.Context(), "undeployed")
	require.NoError(t, err)

	_, err = s.SignCircuit(t.Context(), wallet.CircuitCall{ContractAddress: testContract, Circuit: "increment"})
	assert.True(t, wallet.IsUserRejection(err))
}
