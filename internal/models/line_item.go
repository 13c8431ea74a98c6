package models

// LineItem is one row of a quote or invoice, stored inside a JSON column.
type LineItem struct {
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
}
