// Package providervalkey lets wallet daemons announce themselves through Valkey.
package providervalkey

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"time"

	"github.com/valkey-io/valkey-go"

	slogctx "github.com/veqryn/slog-context"

	"github.com/openkcm/report-wallet/internal/provider"
	"github.com/openkcm/report-wallet/internal/wallet/httpwallet"
)

const objectTypeProvider = "provider"

var ErrInvalidAnnouncement = errors.New("invalid provider announcement")

// Announcement is what a wallet daemon publishes about itself.
type Announcement struct {
	Name       string `json:"name"`
	APIVersion string `json:"apiVersion"`
	Endpoint   string `json:"endpoint"`
	Icon       string `json:"icon,omitempty"`
	RDNS       string `json:"rdns,omitempty"`
}

type Source struct {
	store      *store
	httpClient *http.Client
}

var _ provider.Source = (*Source)(nil)

func NewSource(valkeyClient valkey.Client, prefix string, httpClient *http.Client) *Source {
	return &Source{
		store:      newStore(valkeyClient, prefix),
		httpClient: httpClient,
	}
}

// Announce publishes a. With a positive ttl the announcement disappears unless renewed.
func (s *Source) Announce(ctx context.Context, a Announcement, ttl time.Duration) error {
	if a.Name == "" || a.Endpoint == "" {
		return ErrInvalidAnnouncement
	}
	if err := s.store.Set(ctx, objectTypeProvider, a.Name, a, ttl); err != nil {
		return fmt.Errorf("storing provider announcement: %w", err)
	}
	return nil
}

func (s *Source) Withdraw(ctx context.Context, name string) error {
	return s.store.Destroy(ctx, objectTypeProvider, name)
}

// Providers lists announced wallets. SCAN order is arbitrary, so they are sorted by name.
func (s *Source) Providers(ctx context.Context) ([]provider.Descriptor, error) {
	announcements, err := scan[Announcement](ctx, s.store, objectTypeProvider)
	if err != nil {
		return nil, fmt.Errorf("listing provider announcements: %w", err)
	}

	sort.Slice(announcements, func(i, j int) bool { return announcements[i].Name < announcements[j].Name })

	descriptors := make([]provider.Descriptor, 0, len(announcements))
	for _, a := range announcements {
		client, err := httpwallet.NewClient(a.Endpoint, s.httpClient)
		if err != nil {
			slogctx.Warn(ctx, "Ignoring provider announcement", "name", a.Name, "error", err)
			continue
		}
		descriptors = append(descriptors, client.Descriptor(a.Name, a.APIVersion, a.Icon, a.RDNS))
	}

	return descriptors, nil
}
