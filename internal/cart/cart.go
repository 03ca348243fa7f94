package cart

// Item is one order line, identified by the (ProductID, Size, Color)
// triple. Display fields are snapshots captured when the line was added; a
// later price change on the product does not alter existing lines.
type Item struct {
	ProductID     string `json:"product_id"`
	Size          string `json:"size"`
	Color         string `json:"color"`
	Name          string `json:"name"`
	Price         int64  `json:"price"`
	OriginalPrice *int64 `json:"original_price,omitempty"`
	Image         string `json:"image,omitempty"`
	Quantity      int    `json:"quantity"`
}

// Cart holds the lines for one session. Totals are always derived from the
// lines, never stored.
type Cart struct {
	SessionID string `json:"session_id"`
	Items     []Item `json:"items"`
}

// Total is the sum of price times quantity over all lines.
func (c *Cart) Total() int64 {
	var total int64
	for _, it := range c.Items {
		total += it.Price * int64(it.Quantity)
	}
	return total
}

// ItemCount is the sum of quantities over all lines.
func (c *Cart) ItemCount() int {
	count := 0
	for _, it := range c.Items {
		count += it.Quantity
	}
	return count
}

// findIndex locates the line matching the identity triple, or -1.
func (c *Cart) findIndex(productID, size, color string) int {
	for i, it := range c.Items {
		if it.ProductID == productID && it.Size == size && it.Color == color {
			return i
		}
	}
	return -1
}

// clone returns a copy whose Items slice does not alias the original.
func (c *Cart) clone() *Cart {
	out := &Cart{SessionID: c.SessionID, Items: make([]Item, len(c.Items))}
	copy(out.Items, c.Items)
	return out
}
