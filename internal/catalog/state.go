package catalog

import (
	"context"
	"encoding/json"
	"time"

	pkgerrors "github.com/sastaease/storefront-backend/pkg/errors"
	"github.com/sastaease/storefront-backend/pkg/redis"
)

type stateStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	ShopViewKey(visitorID string) string
}

// ViewStateStore persists each visitor's shop view state between requests so
// filter changes can reset pagination server-side.
type ViewStateStore struct {
	store stateStore
	ttl   time.Duration
}

func NewViewStateStore(store stateStore, ttl time.Duration) *ViewStateStore {
	return &ViewStateStore{store: store, ttl: ttl}
}

// Load returns the visitor's stored state, or the default state on a miss.
func (s *ViewStateStore) Load(ctx context.Context, visitorID string) (ViewState, error) {
	raw, err := s.store.Get(ctx, s.store.ShopViewKey(visitorID))
	if err != nil {
		if redis.IsNotFound(err) {
			return DefaultViewState(), nil
		}
		return DefaultViewState(), pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load shop view state")
	}

	var state ViewState
	if err := json.Unmarshal([]byte(raw), &state); err != nil {
		// Stale or corrupted state is recreated, not surfaced.
		return DefaultViewState(), nil
	}
	if state.Page < 1 {
		state.Page = 1
	}
	if state.Category == "" {
		state.Category = CategoryAll
	}
	if state.Sort == "" {
		state.Sort = SortNameAsc
	}
	return state, nil
}

// Save writes the visitor's state with the configured TTL.
func (s *ViewStateStore) Save(ctx context.Context, visitorID string, state ViewState) error {
	encoded, err := json.Marshal(state)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode shop view state")
	}
	if err := s.store.Set(ctx, s.store.ShopViewKey(visitorID), string(encoded), s.ttl); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save shop view state")
	}
	return nil
}
