package providervalkey

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/valkey-io/valkey-go"
)

var ErrNotFound = errors.New("not found")

type store struct {
	valkey valkey.Client
	prefix string
}

func newStore(valkeyClient valkey.Client, prefix string) *store {
	prefix = strings.TrimSuffix(prefix, ":")
	return &store{
		valkey: valkeyClient,
		prefix: prefix,
	}
}

// Set stores val. A non-positive ttl keeps the key until it is destroyed.
func (s *store) Set(ctx context.Context, objectType, id string, val any, ttl time.Duration) error {
	key := s.key(objectType, id)
	bytes, err := json.Marshal(val)
	if err != nil {
		return fmt.Errorf("encoding data: %w", err)
	}

	set := s.valkey.B().Set().Key(key).Value(valkey.BinaryString(bytes))
	if ttl > 0 {
		err = s.valkey.Do(ctx, set.PxMilliseconds(ttl.Milliseconds()).Build()).Error()
	} else {
		err = s.valkey.Do(ctx, set.Build()).Error()
	}
	if err != nil {
		return fmt.Errorf("executing set command: %w", err)
	}

	return nil
}

func (s *store) Destroy(ctx context.Context, objectType, id string) error {
	key := s.key(objectType, id)
	if err := s.valkey.Do(ctx, s.valkey.B().Del().Key(key).Build()).Error(); err != nil {
		return fmt.Errorf("executing del command: %w", err)
	}

	return nil
}

func (s *store) get(ctx context.Context, key string, decodeInto any) error {
	bytes, err := s.valkey.Do(ctx, s.valkey.B().Get().Key(key).Build()).AsBytes()
	if err != nil {
		valkeyErr, ok := valkey.IsValkeyErr(err)
		if ok && valkeyErr.IsNil() {
			return ErrNotFound
		}

		return fmt.Errorf("executing get command: %w", err)
	}

	if err := json.Unmarshal(bytes, decodeInto); err != nil {
		return fmt.Errorf("unmarshaling json: %w", err)
	}

	return nil
}

func (s *store) key(objectType string, objectID string) string {
	if s.prefix == "" {
		return fmt.Sprintf("%s:%s", objectType, objectID)
	}
	return fmt.Sprintf("%s:%s:%s", s.prefix, objectType, objectID)
}

// scan decodes every object of objectType. Keys that expire between SCAN and GET are skipped.
func scan[T any](ctx context.Context, s *store, objectType string) ([]T, error) {
	match := s.key(objectType, "*")
	var (
		cursor uint64
		out    []T
	)
	for {
		entry, err := s.valkey.Do(ctx, s.valkey.B().Scan().Cursor(cursor).Match(match).Count(100).Build()).AsScanEntry()
		if err != nil {
			return nil, fmt.Errorf("executing scan command: %w", err)
		}

		cursor = entry.Cursor
		out = slices.Grow(out, len(entry.Elements))
		for _, key := range entry.Elements {
			var decoded T
			if err := s.get(ctx, key, &decoded); err != nil {
				if errors.Is(err, ErrNotFound) {
					continue
				}
				return nil, fmt.Errorf("getting an element: %w", err)
			}

			out = append(out, decoded)
		}

		if cursor == 0 {
			return out, nil
		}
	}
}
