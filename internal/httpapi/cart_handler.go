package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/EugenioPantua19/designxcel-shopstate/internal/domain"
	"github.com/EugenioPantua19/designxcel-shopstate/internal/store"
	"github.com/go-chi/chi/v5"
)

type CartHandler struct {
	registry *SessionRegistry
}

func NewCartHandler(registry *SessionRegistry) *CartHandler {
	return &CartHandler{registry: registry}
}

type ProductDTO struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Price         float64  `json:"price"`
	DiscountPrice float64  `json:"discount_price"`
	OnSale        bool     `json:"on_sale"`
	VariationID   string   `json:"variation_id"`
	VariationName string   `json:"variation_name"`
	Images        []string `json:"images"`
	Rating        float64  `json:"rating"`
}

func (d ProductDTO) toDomain() domain.ProductRef {
	return domain.ProductRef{
		ID:            d.ID,
		Name:          d.Name,
		Price:         d.Price,
		DiscountPrice: d.DiscountPrice,
		OnSale:        d.OnSale,
		VariationID:   d.VariationID,
		VariationName: d.VariationName,
		Images:        d.Images,
		Rating:        d.Rating,
	}
}

type AddItemRequestDTO struct {
	Product       ProductDTO        `json:"product"`
	Quantity      int               `json:"quantity"`
	Customization map[string]string `json:"customization"`
}

type UpdateQuantityRequestDTO struct {
	Quantity int `json:"quantity"`
}

type CartResponseDTO struct {
	Items    []domain.LineItem `json:"items"`
	Count    int               `json:"count"`
	Subtotal float64           `json:"subtotal"`
}

func (h *CartHandler) cart(r *http.Request) *store.Cart {
	sess := h.registry.Session(sessionIDFromContext(r.Context()))
	sess.Cart.SetIdentity(r.Context(), identityFromContext(r.Context()))
	return sess.Cart
}

func cartResponse(cart *store.Cart) CartResponseDTO {
	items := cart.Items()
	if items == nil {
		items = []domain.LineItem{}
	}
	return CartResponseDTO{
		Items:    items,
		Count:    cart.Count(),
		Subtotal: cart.Subtotal(),
	}
}

func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, cartResponse(h.cart(r)))
}

func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req AddItemRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	if req.Product.ID == "" {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product id must not be empty")
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}
	if req.Quantity < 0 || req.Quantity > 99 {
		respondError(w, http.StatusBadRequest, "invalid_quantity", "quantity must be between 1 and 99")
		return
	}

	cart := h.cart(r)
	cart.AddItem(r.Context(), req.Product.toDomain(), req.Quantity, req.Customization)

	respondJSON(w, http.StatusCreated, cartResponse(cart))
}

func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	itemID := chi.URLParam(r, "item_id")
	if itemID == "" {
		respondError(w, http.StatusBadRequest, "invalid_item_id", "item_id must not be empty")
		return
	}

	var req UpdateQuantityRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.Quantity > 99 {
		respondError(w, http.StatusBadRequest, "invalid_quantity", "quantity must not exceed 99")
		return
	}

	// Zero or negative quantity removes the line item.
	cart := h.cart(r)
	cart.UpdateQuantity(r.Context(), itemID, req.Quantity)

	respondJSON(w, http.StatusOK, cartResponse(cart))
}

func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	itemID := chi.URLParam(r, "item_id")
	if itemID == "" {
		respondError(w, http.StatusBadRequest, "invalid_item_id", "item_id must not be empty")
		return
	}

	cart := h.cart(r)
	cart.RemoveItem(r.Context(), itemID)

	respondJSON(w, http.StatusOK, cartResponse(cart))
}

func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	cart := h.cart(r)
	cart.Clear(r.Context())

	respondJSON(w, http.StatusOK, cartResponse(cart))
}

func (h *CartHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	cart := h.cart(r)
	cart.Refresh(r.Context())

	respondJSON(w, http.StatusOK, cartResponse(cart))
}
