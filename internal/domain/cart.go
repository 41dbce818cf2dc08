package domain

// CartLine is one distinct product in a cart. Quantity is always >= 1.
type CartLine struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// Cart keeps lines in the order products were first added.
type Cart struct {
	Lines []CartLine `json:"lines,omitempty"`
}

// Add increments the quantity of productID, appending a new line when absent.
func (c *Cart) Add(productID string, quantity int) {
	for i := range c.Lines {
		if c.Lines[i].ProductID == productID {
			c.Lines[i].Quantity += quantity
			return
		}
	}
	c.Lines = append(c.Lines, CartLine{ProductID: productID, Quantity: quantity})
}

// Remove deletes the line for productID. It reports whether a line was removed.
func (c *Cart) Remove(productID string) bool {
	for i := range c.Lines {
		if c.Lines[i].ProductID == productID {
			c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
			return true
		}
	}
	return false
}

// Quantity returns the quantity for productID, 0 when absent.
func (c Cart) Quantity(productID string) int {
	for _, l := range c.Lines {
		if l.ProductID == productID {
			return l.Quantity
		}
	}
	return 0
}

// ItemCount sums the quantities of all lines.
func (c Cart) ItemCount() int {
	n := 0
	for _, l := range c.Lines {
		n += l.Quantity
	}
	return n
}

func (c Cart) Empty() bool {
	return len(c.Lines) == 0
}

// Clone returns a cart that shares no memory with c.
func (c Cart) Clone() Cart {
	if c.Lines == nil {
		return Cart{}
	}
	lines := make([]CartLine, len(c.Lines))
	copy(lines, c.Lines)
	return Cart{Lines: lines}
}

// CartItem is a cart line resolved against the catalog.
type CartItem struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}

func (i CartItem) TotalCents() int64 {
	return i.Product.PriceCents * int64(i.Quantity)
}

// ItemsTotal sums the line totals of items.
func ItemsTotal(items []CartItem) int64 {
	var total int64
	for _, it := range items {
		total += it.TotalCents()
	}
	return total
}
