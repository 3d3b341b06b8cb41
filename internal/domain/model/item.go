package model

// Item is a marketplace good. Price is nil when the item is not for sale;
// a nil price is treated as zero when an order amount is computed.
// Stock never goes below zero: the only mutation that decrements it is the
// atomic order placement in the store.
type Item struct {
	ID            string
	Title         string
	Description   string
	ImageURL      string
	DateISO       string
	Price         *float64
	Stock         int
	MarketEnabled bool
}
