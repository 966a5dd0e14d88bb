package cart

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/vantis/storefront-state/internal/model"
)

type MutationKind string

const (
	MutationUpdate MutationKind = "update"
	MutationRemove MutationKind = "remove"
)

// Mutation tags one optimistic edit that is awaiting server confirmation.
type Mutation struct {
	RequestID string       `json:"request_id"`
	ItemID    string       `json:"item_id"`
	Kind      MutationKind `json:"kind"`
	Quantity  int          `json:"quantity,omitempty"`
	IssuedAt  time.Time    `json:"issued_at"`

	seq uint64 // issue order within the session
}

// Session owns the current cart snapshot for one cart owner. It applies
// optimistic edits immediately and reconciles them when the caller reports
// the server's response. The latest server response always wins; a failed
// confirmation marks the session stale until the caller replaces the
// snapshot with a refetched one.
type Session struct {
	mu      sync.Mutex
	logger  *zap.Logger
	cart    model.Cart
	pending map[string]Mutation // keyed by request ID
	stale   bool
	seq     uint64
}

func NewSession(snapshot model.Cart, logger *zap.Logger) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Session{
		logger:  logger,
		cart:    RecalculateTotals(snapshot),
		pending: make(map[string]Mutation),
	}
}

// Snapshot returns a copy of the current optimistic cart.
func (s *Session) Snapshot() model.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	return clone(s.cart)
}

// Stale reports whether a failed mutation has invalidated the optimistic
// view. A stale session must be refreshed via Replace before further edits
// are trusted.
func (s *Session) Stale() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stale
}

// Pending returns the in-flight mutations, most recent last.
func (s *Session) Pending() []Mutation {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Mutation, 0, len(s.pending))
	for _, m := range s.pending {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].seq < out[j].seq })
	return out
}

// InFlight reports whether the given item has an unconfirmed mutation.
func (s *Session) InFlight(itemID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, m := range s.pending {
		if m.ItemID == itemID {
			return true
		}
	}
	return false
}

// UpdateQuantity applies an optimistic quantity change on top of the latest
// optimistic state and returns the new snapshot with its pending tag. The
// caller issues the network request after this returns.
func (s *Session) UpdateQuantity(itemID string, quantity int) (model.Cart, Mutation) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cart = OptimisticUpdateQuantity(s.cart, itemID, quantity)
	s.seq++
	m := Mutation{
		RequestID: uuid.New().String(),
		ItemID:    itemID,
		Kind:      MutationUpdate,
		Quantity:  quantity,
		IssuedAt:  time.Now(),
		seq:       s.seq,
	}
	s.pending[m.RequestID] = m
	s.logger.Debug("optimistic quantity update",
		zap.String("cart_id", s.cart.ID),
		zap.String("item_id", itemID),
		zap.Int("quantity", quantity),
		zap.String("request_id", m.RequestID))
	return clone(s.cart), m
}

// RemoveItem applies an optimistic removal and returns the new snapshot with
// its pending tag.
func (s *Session) RemoveItem(itemID string) (model.Cart, Mutation) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cart = OptimisticRemoveItem(s.cart, itemID)
	s.seq++
	m := Mutation{
		RequestID: uuid.New().String(),
		ItemID:    itemID,
		Kind:      MutationRemove,
		IssuedAt:  time.Now(),
		seq:       s.seq,
	}
	s.pending[m.RequestID] = m
	s.logger.Debug("optimistic item removal",
		zap.String("cart_id", s.cart.ID),
		zap.String("item_id", itemID),
		zap.String("request_id", m.RequestID))
	return clone(s.cart), m
}

// Confirm installs the server's authoritative snapshot for a settled request
// and clears its pending tag. An unknown request ID (already superseded) is
// logged but the server snapshot still wins.
func (s *Session) Confirm(requestID string, server model.Cart) model.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.pending[requestID]; !ok {
		s.logger.Debug("confirmation for unknown request, applying snapshot anyway",
			zap.String("request_id", requestID))
	}
	delete(s.pending, requestID)
	s.cart = RecalculateTotals(server)
	s.stale = false
	return clone(s.cart)
}

// Fail records that a mutating request failed. Optimistic edits are not
// individually reversible once further edits may have layered on top, so all
// pending tags are dropped and the session is marked stale; the caller must
// refetch and call Replace.
func (s *Session) Fail(requestID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, known := s.pending[requestID]
	s.pending = make(map[string]Mutation)
	s.stale = true
	if known {
		s.logger.Warn("cart mutation failed, optimistic view discarded",
			zap.String("cart_id", s.cart.ID),
			zap.String("item_id", m.ItemID),
			zap.String("request_id", requestID))
	} else {
		s.logger.Warn("unknown cart mutation failed, optimistic view discarded",
			zap.String("cart_id", s.cart.ID),
			zap.String("request_id", requestID))
	}
}

// Replace installs a refetched authoritative snapshot, clearing any pending
// tags and the stale flag.
func (s *Session) Replace(server model.Cart) model.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cart = RecalculateTotals(server)
	s.pending = make(map[string]Mutation)
	s.stale = false
	return clone(s.cart)
}
