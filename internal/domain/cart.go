package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// LineItem is a single cart entry. Two adds of the same product, variation
// and customization collapse into one line item (same ID, summed quantity).
type LineItem struct {
	ID            string     `json:"id"`
	Product       ProductRef `json:"product"`
	Quantity      int        `json:"quantity"`
	UnitPrice     float64    `json:"unit_price"`
	VariationID   string     `json:"variation_id,omitempty"`
	VariationName string     `json:"variation_name,omitempty"`
	Customization string     `json:"customization"`
}

// Fingerprint returns the canonical serialization of customization options.
// json.Marshal writes map keys in sorted order, so two option sets with the
// same contents always produce the same fingerprint regardless of how the
// caller built the map. No options serializes to "{}".
func Fingerprint(options map[string]string) string {
	if len(options) == 0 {
		return "{}"
	}
	b, _ := json.Marshal(options)
	return string(b)
}

// LineKey derives the line item identity from the product id, variation id
// and customization fingerprint. The hex form keeps the id URL-safe.
func LineKey(productID, variationID, fingerprint string) string {
	sum := sha256.Sum256([]byte(productID + "\x00" + variationID + "\x00" + fingerprint))
	return hex.EncodeToString(sum[:8])
}
