package bot

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseAction(t *testing.T) {
	cases := map[string]Action{
		"view_products":           {Kind: ActionBrowseStart},
		"next_product_0":          {Kind: ActionBrowseNext, Index: 0},
		"prev_product_12":         {Kind: ActionBrowsePrev, Index: 12},
		"add_to_cart_p1":          {Kind: ActionAddToCart, ProductID: "p1"},
		"add_to_cart_p_with_us":   {Kind: ActionAddToCart, ProductID: "p_with_us"},
		"view_cart":               {Kind: ActionViewCart},
		"remove_from_cart_p2":     {Kind: ActionRemoveFromCart, ProductID: "p2"},
		"checkout":                {Kind: ActionCheckout},
		"confirm_order":           {Kind: ActionConfirmOrder},
		"cancel_order":            {Kind: ActionCancelOrder},
		"main_menu":               {Kind: ActionMainMenu},
		"":                        {Kind: ActionUnknown},
		"next_product_":           {Kind: ActionUnknown},
		"next_product_x":          {Kind: ActionUnknown},
		"prev_product_-1":         {Kind: ActionUnknown},
		"add_to_cart_":            {Kind: ActionUnknown},
		"remove_from_cart_":       {Kind: ActionUnknown},
		"checkout_now":            {Kind: ActionUnknown},
		"something_else_entirely": {Kind: ActionUnknown},
	}
	for token, want := range cases {
		assert.Equal(t, want, ParseAction(token), "token %q", token)
	}
}

func TestActionTokenRoundTrip(t *testing.T) {
	for _, a := range []Action{
		{Kind: ActionBrowseStart},
		{Kind: ActionBrowseNext, Index: 2},
		{Kind: ActionBrowsePrev, Index: 1},
		{Kind: ActionAddToCart, ProductID: "p3"},
		{Kind: ActionRemoveFromCart, ProductID: "p3"},
		{Kind: ActionViewCart},
		{Kind: ActionCheckout},
		{Kind: ActionConfirmOrder},
		{Kind: ActionCancelOrder},
		{Kind: ActionMainMenu},
	} {
		assert.Equal(t, a, ParseAction(a.Token()))
	}
	assert.Equal(t, "main_menu", Action{Kind: ActionUnknown}.Token())
	assert.Equal(t, "add_to_cart", ActionAddToCart.String())
}
