package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/EugenioPantua19/designxcel-shopstate/internal/domain"
	"github.com/EugenioPantua19/designxcel-shopstate/internal/store"
	"github.com/go-chi/chi/v5"
)

type WishlistHandler struct {
	registry *SessionRegistry
}

func NewWishlistHandler(registry *SessionRegistry) *WishlistHandler {
	return &WishlistHandler{registry: registry}
}

type WishlistRequestDTO struct {
	Product ProductDTO `json:"product"`
}

type WishlistResponseDTO struct {
	Items []domain.WishlistItem `json:"items"`
	Count int                   `json:"count"`
}

func (h *WishlistHandler) wishlist(r *http.Request) *store.Wishlist {
	sess := h.registry.Session(sessionIDFromContext(r.Context()))
	sess.Wishlist.SetIdentity(r.Context(), identityFromContext(r.Context()))
	return sess.Wishlist
}

func wishlistResponse(wl *store.Wishlist) WishlistResponseDTO {
	items := wl.Items()
	if items == nil {
		items = []domain.WishlistItem{}
	}
	return WishlistResponseDTO{Items: items, Count: wl.Count()}
}

func (h *WishlistHandler) GetWishlist(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, wishlistResponse(h.wishlist(r)))
}

func (h *WishlistHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req WishlistRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.Product.ID == "" {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product id must not be empty")
		return
	}

	wl := h.wishlist(r)
	wl.Add(r.Context(), req.Product.toDomain())

	respondJSON(w, http.StatusCreated, wishlistResponse(wl))
}

func (h *WishlistHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	var req WishlistRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.Product.ID == "" {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product id must not be empty")
		return
	}

	wl := h.wishlist(r)
	wl.Toggle(r.Context(), req.Product.toDomain())

	respondJSON(w, http.StatusOK, wishlistResponse(wl))
}

func (h *WishlistHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "product_id")
	if productID == "" {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id must not be empty")
		return
	}

	wl := h.wishlist(r)
	wl.Remove(r.Context(), productID)

	respondJSON(w, http.StatusOK, wishlistResponse(wl))
}

func (h *WishlistHandler) ClearWishlist(w http.ResponseWriter, r *http.Request) {
	wl := h.wishlist(r)
	wl.Clear(r.Context())

	respondJSON(w, http.StatusOK, wishlistResponse(wl))
}
