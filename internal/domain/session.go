package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

const (
	MinRating = 1
	MaxRating = 5

	// MaxQuantity caps one cart entry so price*quantity summed over the
	// catalog stays far from int64 overflow.
	MaxQuantity = 1_000_000_000
)

// SessionState is the mutable per-visitor record.
type SessionState struct {
	Cart    Cart    `json:"cart"`
	Ratings Ratings `json:"ratings"`
}

// NewSessionState returns the empty state a session starts with.
func NewSessionState() SessionState {
	return SessionState{
		Cart:    NewCart(),
		Ratings: Ratings{},
	}
}

// Clone returns a deep copy so callers can mutate without aliasing.
func (s SessionState) Clone() SessionState {
	return SessionState{
		Cart:    s.Cart.Clone(),
		Ratings: s.Ratings.Clone(),
	}
}

// CartItem is one (product id, quantity) pair of a Cart.
type CartItem struct {
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}

// Cart maps product ids to positive quantities and remembers insertion order.
// The zero value is an empty cart.
type Cart struct {
	order []int64
	qty   map[int64]int
}

func NewCart() Cart {
	return Cart{qty: make(map[int64]int)}
}

// NewCartFromItems builds a cart in item order. Non-positive quantities are dropped.
func NewCartFromItems(items []CartItem) Cart {
	c := NewCart()
	for _, it := range items {
		c.Set(it.ProductID, it.Quantity)
	}
	return c
}

func (c Cart) Quantity(productID int64) int {
	return c.qty[productID]
}

func (c Cart) Has(productID int64) bool {
	_, ok := c.qty[productID]
	return ok
}

func (c Cart) Len() int {
	return len(c.order)
}

// Set stores quantity for productID. An existing entry keeps its position.
// A non-positive quantity deletes the entry; quantities above MaxQuantity
// are stored as MaxQuantity.
func (c *Cart) Set(productID int64, quantity int) {
	if quantity <= 0 {
		c.Delete(productID)
		return
	}
	if quantity > MaxQuantity {
		quantity = MaxQuantity
	}
	if c.qty == nil {
		c.qty = make(map[int64]int)
	}
	if _, ok := c.qty[productID]; !ok {
		c.order = append(c.order, productID)
	}
	c.qty[productID] = quantity
}

// Delete removes productID and reports whether it was present.
func (c *Cart) Delete(productID int64) bool {
	if _, ok := c.qty[productID]; !ok {
		return false
	}
	delete(c.qty, productID)
	for i, id := range c.order {
		if id == productID {
			c.order = append(c.order[:i:i], c.order[i+1:]...)
			break
		}
	}
	return true
}

// Items returns the entries in insertion order.
func (c Cart) Items() []CartItem {
	items := make([]CartItem, 0, len(c.order))
	for _, id := range c.order {
		items = append(items, CartItem{ProductID: id, Quantity: c.qty[id]})
	}
	return items
}

func (c Cart) Clone() Cart {
	out := Cart{
		order: make([]int64, len(c.order)),
		qty:   make(map[int64]int, len(c.qty)),
	}
	copy(out.order, c.order)
	for k, v := range c.qty {
		out.qty[k] = v
	}
	return out
}

// MarshalJSON writes the cart as an object keyed by string-encoded product
// ids, in insertion order.
func (c Cart) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, id := range c.order {
		if i > 0 {
			buf.WriteByte(',')
		}
		fmt.Fprintf(&buf, "%q:%d", strconv.FormatInt(id, 10), c.qty[id])
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads the object form keeping key order. Entries with
// non-positive quantities are dropped.
func (c *Cart) UnmarshalJSON(data []byte) error {
	*c = NewCart()
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("decode cart: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("decode cart: expected object, got %v", tok)
	}

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("decode cart: %w", err)
		}
		key, _ := keyTok.(string)
		productID, err := strconv.ParseInt(key, 10, 64)
		if err != nil {
			return fmt.Errorf("decode cart: invalid product id %q", key)
		}
		var quantity int
		if err := dec.Decode(&quantity); err != nil {
			return fmt.Errorf("decode cart: quantity for %d: %w", productID, err)
		}
		c.Set(productID, quantity)
	}

	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("decode cart: %w", err)
	}
	return nil
}

// Ratings maps product ids to a 1..5 star rating. encoding/json writes the
// keys as decimal strings.
type Ratings map[int64]int

func (r Ratings) Clone() Ratings {
	out := make(Ratings, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// ValidRating reports whether rating is within the accepted star range.
func ValidRating(rating int) bool {
	return rating >= MinRating && rating <= MaxRating
}

// EncodeSessionState serialises state in the persisted session layout.
func EncodeSessionState(s SessionState) ([]byte, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("marshal session state failed: %w", err)
	}
	return data, nil
}

// DecodeSessionState parses the persisted session layout. Ratings outside
// 1..5 are dropped along with non-positive cart quantities.
func DecodeSessionState(data []byte) (SessionState, error) {
	var s SessionState
	if err := json.Unmarshal(data, &s); err != nil {
		return SessionState{}, fmt.Errorf("unmarshal session state failed: %w", err)
	}
	if s.Ratings == nil {
		s.Ratings = Ratings{}
	}
	for id, rating := range s.Ratings {
		if !ValidRating(rating) {
			delete(s.Ratings, id)
		}
	}
	return s, nil
}
