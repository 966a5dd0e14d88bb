package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/vantis/storefront-state/internal/cart"
	"github.com/vantis/storefront-state/internal/catalog"
	"github.com/vantis/storefront-state/internal/checkout"
	"github.com/vantis/storefront-state/internal/model"
	"github.com/vantis/storefront-state/internal/option"
	"github.com/vantis/storefront-state/internal/pricing"
	"github.com/vantis/storefront-state/internal/selection"
)

// --- Request / Response DTOs ---

type DiscountPreviewRequest struct {
	BasePriceCents int64  `json:"base_price_cents"`
	Mode           string `json:"mode"`
	RawValue       string `json:"raw_value"`
}

type DiscountPreviewResponse struct {
	Draft   pricing.Draft   `json:"draft"`
	Preview pricing.Preview `json:"preview"`
}

type ProductsViewRequest struct {
	Products []model.Product `json:"products"`
	State    catalog.State   `json:"state"`
}

type ProductsViewResponse struct {
	Products []model.Product `json:"products"`
	State    catalog.State   `json:"state"`
}

type ValidateValuesRequest struct {
	Values []model.OptionValue `json:"values"`
}

type ValidateValuesResponse struct {
	Valid bool `json:"valid"`
}

type ToggleSelectionRequest struct {
	Selected []string `json:"selected"`
	ID       string   `json:"id"`
	Checked  bool     `json:"checked"`
	AllIDs   []string `json:"all_ids,omitempty"`
}

type ToggleSelectionResponse struct {
	Selected    []string `json:"selected"`
	AllSelected bool     `json:"all_selected"`
}

type UpdateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

type CartMutationResponse struct {
	Cart      model.Cart      `json:"cart"`
	RequestID string          `json:"request_id"`
	Pending   []cart.Mutation `json:"pending"`
}

type CartStateResponse struct {
	Cart    model.Cart      `json:"cart"`
	Pending []cart.Mutation `json:"pending"`
	Stale   bool            `json:"stale"`
}

type ConfirmRequest struct {
	RequestID string     `json:"request_id"`
	Cart      model.Cart `json:"cart"`
}

type FailRequest struct {
	RequestID string `json:"request_id"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// --- Handler struct & constructor ---

type StateHandler struct {
	sessions *cart.Store
	logger   *zap.Logger
}

func NewStateHandler(sessions *cart.Store, logger *zap.Logger) *StateHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StateHandler{sessions: sessions, logger: logger}
}

// --- Stateless transforms ---

// PreviewDiscount parses free-form discount input and returns the preview.
// Invalid drafts come back as valid=false, never as an HTTP error.
func (h *StateHandler) PreviewDiscount(w http.ResponseWriter, r *http.Request) {
	var req DiscountPreviewRequest
	if !decode(w, r, &req) {
		return
	}
	draft := pricing.ParseDraft(req.Mode, req.RawValue)
	writeJSON(w, http.StatusOK, DiscountPreviewResponse{
		Draft:   draft,
		Preview: pricing.PreviewDiscount(req.BasePriceCents, draft.Mode, draft.Value),
	})
}

// ApplyProductsView derives the filtered, sorted admin product view.
func (h *StateHandler) ApplyProductsView(w http.ResponseWriter, r *http.Request) {
	var req ProductsViewRequest
	if !decode(w, r, &req) {
		return
	}
	state := req.State.Normalize()
	writeJSON(w, http.StatusOK, ProductsViewResponse{
		Products: catalog.ApplyProductsState(req.Products, state),
		State:    state,
	})
}

// BuildOptionPayload normalizes custom-option form input into a mutation
// payload.
func (h *StateHandler) BuildOptionPayload(w http.ResponseWriter, r *http.Request) {
	var req option.FormInput
	if !decode(w, r, &req) {
		return
	}
	writeJSON(w, http.StatusOK, option.BuildPayload(req))
}

// ValidateOptionValues runs the select-values pre-submit gate.
func (h *StateHandler) ValidateOptionValues(w http.ResponseWriter, r *http.Request) {
	var req ValidateValuesRequest
	if !decode(w, r, &req) {
		return
	}
	writeJSON(w, http.StatusOK, ValidateValuesResponse{Valid: option.ValidateSelectValues(req.Values)})
}

// ToggleSelection toggles one product ID in the admin selection set.
func (h *StateHandler) ToggleSelection(w http.ResponseWriter, r *http.Request) {
	var req ToggleSelectionRequest
	if !decode(w, r, &req) {
		return
	}
	selected := selection.Toggle(req.Selected, req.ID, req.Checked)
	writeJSON(w, http.StatusOK, ToggleSelectionResponse{
		Selected:    selected,
		AllSelected: selection.AllSelected(req.AllIDs, selected),
	})
}

// ParseCheckout narrows a raw checkout response. This is the one loud
// failure in the engine: an incomplete payload gets 422, never a
// default-filled result.
func (h *StateHandler) ParseCheckout(w http.ResponseWriter, r *http.Request) {
	var raw map[string]any
	if !decode(w, r, &raw) {
		return
	}
	result, err := checkout.Parse(raw)
	if err != nil {
		h.logger.Warn("checkout response rejected", zap.Error(err))
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// --- Cart sessions ---

// ReplaceCart installs a server cart snapshot, creating the session on
// first sight. Latest snapshot wins; pending optimistic edits are dropped.
func (h *StateHandler) ReplaceCart(w http.ResponseWriter, r *http.Request) {
	cartID := chi.URLParam(r, "cartID")
	var snapshot model.Cart
	if !decode(w, r, &snapshot) {
		return
	}
	snapshot.ID = cartID
	sess := h.sessions.Replace(cartID, snapshot)
	writeJSON(w, http.StatusOK, CartStateResponse{
		Cart:    sess.Snapshot(),
		Pending: sess.Pending(),
		Stale:   sess.Stale(),
	})
}

// GetCart returns the current optimistic snapshot with its pending tags.
func (h *StateHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, CartStateResponse{
		Cart:    sess.Snapshot(),
		Pending: sess.Pending(),
		Stale:   sess.Stale(),
	})
}

// UpdateItemQuantity applies an optimistic quantity change and returns the
// new snapshot plus the request ID the caller should confirm or fail later.
func (h *StateHandler) UpdateItemQuantity(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	var req UpdateQuantityRequest
	if !decode(w, r, &req) {
		return
	}
	snapshot, m := sess.UpdateQuantity(chi.URLParam(r, "itemID"), req.Quantity)
	writeJSON(w, http.StatusOK, CartMutationResponse{
		Cart:      snapshot,
		RequestID: m.RequestID,
		Pending:   sess.Pending(),
	})
}

// RemoveItem applies an optimistic removal.
func (h *StateHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	snapshot, m := sess.RemoveItem(chi.URLParam(r, "itemID"))
	writeJSON(w, http.StatusOK, CartMutationResponse{
		Cart:      snapshot,
		RequestID: m.RequestID,
		Pending:   sess.Pending(),
	})
}

// ConfirmMutation reports that the server confirmed a mutation, carrying the
// authoritative snapshot.
func (h *StateHandler) ConfirmMutation(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	var req ConfirmRequest
	if !decode(w, r, &req) {
		return
	}
	snapshot := sess.Confirm(req.RequestID, req.Cart)
	writeJSON(w, http.StatusOK, CartStateResponse{
		Cart:    snapshot,
		Pending: sess.Pending(),
		Stale:   sess.Stale(),
	})
}

// FailMutation reports that a mutating request failed. The optimistic view
// is discarded and the session stays stale until the caller replaces the
// snapshot with a refetched one.
func (h *StateHandler) FailMutation(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	var req FailRequest
	if !decode(w, r, &req) {
		return
	}
	sess.Fail(req.RequestID)
	writeJSON(w, http.StatusOK, CartStateResponse{
		Cart:    sess.Snapshot(),
		Pending: sess.Pending(),
		Stale:   sess.Stale(),
	})
}

// DeleteCart drops the session, e.g. on sign-out.
func (h *StateHandler) DeleteCart(w http.ResponseWriter, r *http.Request) {
	h.sessions.Delete(chi.URLParam(r, "cartID"))
	w.WriteHeader(http.StatusNoContent)
}

func (h *StateHandler) session(w http.ResponseWriter, r *http.Request) (*cart.Session, bool) {
	cartID := chi.URLParam(r, "cartID")
	sess, ok := h.sessions.Get(cartID)
	if !ok {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "unknown cart " + cartID})
		return nil, false
	}
	return sess, true
}

// --- Helpers ---

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
