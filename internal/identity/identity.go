package identity

import (
	"context"
	"sync"

	"github.com/memoflow/memoflow/internal/model"
)

// Provider resolves a raw credential (an ID token, an API key) to an identity.
// Implementations live under internal/identity/<provider>/ (google, static).
type Provider interface {
	Authenticate(ctx context.Context, credential string) (*model.Identity, error)
}

// Subscriber receives the current identity, nil when signed out.
type Subscriber func(*model.Identity)

// Broker owns the current identity and fans out changes to subscribers.
// Subscribe invokes the callback once immediately with the current identity
// and again on every change, mirroring the sign-in session contract.
type Broker struct {
	mu       sync.Mutex
	provider Provider
	current  *model.Identity
	subs     map[int]Subscriber
	nextSub  int
}

// NewBroker creates a broker with no identity signed in.
func NewBroker(p Provider) *Broker {
	return &Broker{provider: p, subs: make(map[int]Subscriber)}
}

// Current returns the signed-in identity, nil when signed out.
func (b *Broker) Current() *model.Identity {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.current
}

// Subscribe registers fn and invokes it immediately with the current
// identity. The returned func unsubscribes.
func (b *Broker) Subscribe(fn Subscriber) func() {
	b.mu.Lock()
	id := b.nextSub
	b.nextSub++
	b.subs[id] = fn
	current := b.current
	b.mu.Unlock()

	fn(current)
	return func() {
		b.mu.Lock()
		delete(b.subs, id)
		b.mu.Unlock()
	}
}

// SignIn authenticates the credential. On failure the identity is unchanged
// and an *model.AuthError is returned; no subscriber is notified.
func (b *Broker) SignIn(ctx context.Context, credential string) (*model.Identity, error) {
	ident, err := b.provider.Authenticate(ctx, credential)
	if err != nil {
		return nil, &model.AuthError{Op: "sign-in", Err: err}
	}
	b.setCurrent(ident)
	return ident, nil
}

// SignOut clears the identity and notifies subscribers.
func (b *Broker) SignOut(ctx context.Context) error {
	b.setCurrent(nil)
	return nil
}

func (b *Broker) setCurrent(ident *model.Identity) {
	b.mu.Lock()
	b.current = ident
	subs := make([]Subscriber, 0, len(b.subs))
	for _, fn := range b.subs {
		subs = append(subs, fn)
	}
	b.mu.Unlock()

	for _, fn := range subs {
		fn(ident)
	}
}
