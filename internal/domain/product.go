package domain

// ProductRef is the product snapshot a store keeps for display and pricing.
// It is captured at add time and never refreshed from the catalog.
type ProductRef struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Price         float64  `json:"price"`
	DiscountPrice float64  `json:"discount_price,omitempty"`
	OnSale        bool     `json:"on_sale,omitempty"`
	VariationID   string   `json:"variation_id,omitempty"`
	VariationName string   `json:"variation_name,omitempty"`
	Images        []string `json:"images,omitempty"`
	Rating        float64  `json:"rating,omitempty"`
}

// EffectivePrice is the price charged for the product at add time: the
// discounted price when a discount is active, the base price otherwise.
func (p ProductRef) EffectivePrice() float64 {
	if p.OnSale && p.DiscountPrice > 0 {
		return p.DiscountPrice
	}
	return p.Price
}
