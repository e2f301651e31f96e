package session

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sastaease/storefront-backend/pkg/auth"
	"github.com/sastaease/storefront-backend/pkg/backend"
	"github.com/sastaease/storefront-backend/pkg/config"
	pkgerrors "github.com/sastaease/storefront-backend/pkg/errors"
)

// Session is the storefront's read-only view of an external auth session.
type Session struct {
	UserID    uuid.UUID
	Email     string
	Token     string
	ExpiresAt time.Time
}

// Event names a session-state change.
type Event string

const (
	EventSignedOut Event = "signed_out"
)

// Change is delivered to subscribers when session state changes.
type Change struct {
	Event  Event
	UserID uuid.UUID
}

type authAPI interface {
	CurrentUser(ctx context.Context, token string) (*backend.AuthUser, error)
	SignOut(ctx context.Context, token string) error
}

// Reader resolves the current session from an access token and fans out
// session-change notifications to registered subscribers. It replaces the
// ambient one-listener-at-the-header model: every consumer holds an explicit
// subscription and must release it.
type Reader struct {
	cfg config.JWTConfig
	api authAPI

	mu   sync.Mutex
	subs map[uint64]chan Change
	next uint64
}

// NewReader builds a session reader over the external auth API.
func NewReader(cfg config.JWTConfig, api authAPI) *Reader {
	return &Reader{
		cfg:  cfg,
		api:  api,
		subs: make(map[uint64]chan Change),
	}
}

// Current resolves the session behind the token. An absent, malformed,
// expired, or revoked token yields a nil session with no error: signed-out is
// a state, not a failure. Only transport-level trouble with the auth service
// is an error.
func (r *Reader) Current(ctx context.Context, token string) (*Session, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, nil
	}

	claims, err := auth.ParseAccessToken(r.cfg, token)
	if err != nil {
		return nil, nil
	}

	user, err := r.api.CurrentUser(ctx, token)
	if err != nil {
		if backend.IsUnauthorized(err) {
			return nil, nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "resolve session")
	}

	sess := &Session{
		UserID: user.ID,
		Email:  user.Email,
		Token:  token,
	}
	if claims.ExpiresAt != nil {
		sess.ExpiresAt = claims.ExpiresAt.Time
	}
	return sess, nil
}

// SignOut revokes the session remotely, then notifies subscribers. The local
// notification only fires after remote success.
func (r *Reader) SignOut(ctx context.Context, sess *Session) error {
	if sess == nil {
		return nil
	}
	if err := r.api.SignOut(ctx, sess.Token); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "sign out")
	}
	r.publish(Change{Event: EventSignedOut, UserID: sess.UserID})
	return nil
}

// Subscribe registers a listener for session changes. The returned cancel
// function releases the subscription and closes the channel; callers must
// invoke it when done.
func (r *Reader) Subscribe() (<-chan Change, func()) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := r.next
	r.next++
	ch := make(chan Change, 4)
	r.subs[id] = ch

	cancel := func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		if sub, ok := r.subs[id]; ok {
			delete(r.subs, id)
			close(sub)
		}
	}
	return ch, cancel
}

// publish delivers without blocking; a subscriber that stopped draining loses
// events rather than stalling sign-out.
func (r *Reader) publish(change Change) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, ch := range r.subs {
		select {
		case ch <- change:
		default:
		}
	}
}
