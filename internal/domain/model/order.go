package model

import "time"

// Order records a purchase of Qty units of an item. An order row exists if
// and only if the matching stock decrement was applied; the two are written
// in one transaction and are never observable independently.
type Order struct {
	ID        string
	ItemID    string
	Qty       int
	CreatedAt time.Time
}
