package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCart_SetKeepsInsertionOrder(t *testing.T) {
	c := NewCart()
	c.Set(3, 1)
	c.Set(1, 2)
	c.Set(2, 1)
	c.Set(3, 7) // existing entry keeps its slot

	assert.Equal(t, []CartItem{
		{ProductID: 3, Quantity: 7},
		{ProductID: 1, Quantity: 2},
		{ProductID: 2, Quantity: 1},
	}, c.Items())
}

func TestCart_SetNonPositiveDeletes(t *testing.T) {
	c := NewCart()
	c.Set(1, 2)
	c.Set(1, 0)
	c.Set(2, -4)

	assert.False(t, c.Has(1))
	assert.False(t, c.Has(2))
	assert.Equal(t, 0, c.Len())
}

func TestCart_DeleteThenReAddMovesToEnd(t *testing.T) {
	c := NewCartFromItems([]CartItem{{ProductID: 1, Quantity: 1}, {ProductID: 2, Quantity: 1}})

	assert.True(t, c.Delete(1))
	assert.False(t, c.Delete(1))
	c.Set(1, 4)

	assert.Equal(t, []CartItem{{ProductID: 2, Quantity: 1}, {ProductID: 1, Quantity: 4}}, c.Items())
}

func TestCart_ZeroValueIsUsable(t *testing.T) {
	var c Cart
	assert.Equal(t, 0, c.Quantity(5))
	c.Set(5, 1)
	assert.Equal(t, 1, c.Quantity(5))
}

func TestCart_CloneDoesNotAlias(t *testing.T) {
	c := NewCartFromItems([]CartItem{{ProductID: 1, Quantity: 1}})
	clone := c.Clone()
	clone.Set(1, 9)
	clone.Set(2, 1)

	assert.Equal(t, 1, c.Quantity(1))
	assert.False(t, c.Has(2))
}

func TestCart_JSONPreservesOrder(t *testing.T) {
	c := NewCartFromItems([]CartItem{
		{ProductID: 20, Quantity: 1},
		{ProductID: 3, Quantity: 2},
		{ProductID: 11, Quantity: 5},
	})

	data, err := json.Marshal(c)
	require.NoError(t, err)
	assert.JSONEq(t, `{"20":1,"3":2,"11":5}`, string(data))
	assert.Equal(t, `{"20":1,"3":2,"11":5}`, string(data))

	var decoded Cart
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, c.Items(), decoded.Items())
}

func TestCart_UnmarshalDropsNonPositive(t *testing.T) {
	var c Cart
	require.NoError(t, json.Unmarshal([]byte(`{"1":0,"2":3,"3":-1}`), &c))
	assert.Equal(t, []CartItem{{ProductID: 2, Quantity: 3}}, c.Items())
}

func TestCart_UnmarshalRejectsBadKeys(t *testing.T) {
	var c Cart
	err := json.Unmarshal([]byte(`{"abc":1}`), &c)
	assert.ErrorContains(t, err, "invalid product id")
}

func TestSessionState_RoundTrip(t *testing.T) {
	s := NewSessionState()
	s.Cart.Set(2, 3)
	s.Ratings[7] = 4

	data, err := EncodeSessionState(s)
	require.NoError(t, err)
	assert.JSONEq(t, `{"cart":{"2":3},"ratings":{"7":4}}`, string(data))

	decoded, err := DecodeSessionState(data)
	require.NoError(t, err)
	assert.Equal(t, 3, decoded.Cart.Quantity(2))
	assert.Equal(t, 4, decoded.Ratings[7])
}

func TestDecodeSessionState_NormalisesEmptyAndInvalid(t *testing.T) {
	decoded, err := DecodeSessionState([]byte(`{"cart":null,"ratings":{"1":9,"2":5}}`))
	require.NoError(t, err)

	assert.Equal(t, 0, decoded.Cart.Len())
	assert.Equal(t, Ratings{2: 5}, decoded.Ratings)

	empty, err := DecodeSessionState([]byte(`{}`))
	require.NoError(t, err)
	assert.NotNil(t, empty.Ratings)
}

func TestOutcome_Changed(t *testing.T) {
	assert.True(t, OutcomeApplied.Changed())
	assert.True(t, OutcomeAcceptedUnlisted.Changed())
	assert.True(t, OutcomeRemoved.Changed())
	assert.False(t, OutcomeNoOp.Changed())
	assert.False(t, OutcomeIgnoredOutOfRange.Changed())
}

func TestCart_SetCapsAtMaxQuantity(t *testing.T) {
	c := NewCart()
	c.Set(1, MaxQuantity+5)
	assert.Equal(t, MaxQuantity, c.Quantity(1))

	var decoded Cart
	require.NoError(t, decoded.UnmarshalJSON([]byte(`{"1":9000000000000000000}`)))
	assert.Equal(t, MaxQuantity, decoded.Quantity(1))
}
