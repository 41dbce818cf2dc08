package bot

import (
	"strconv"
	"strings"
)

// ActionKind identifies what a button press asks for.
type ActionKind int

const (
	ActionUnknown ActionKind = iota
	ActionBrowseStart
	ActionBrowseNext
	ActionBrowsePrev
	ActionAddToCart
	ActionViewCart
	ActionRemoveFromCart
	ActionCheckout
	ActionConfirmOrder
	ActionCancelOrder
	ActionMainMenu
)

const (
	tokenViewProducts    = "view_products"
	tokenViewCart        = "view_cart"
	tokenCheckout        = "checkout"
	tokenConfirmOrder    = "confirm_order"
	tokenCancelOrder     = "cancel_order"
	tokenMainMenu        = "main_menu"
	prefixNextProduct    = "next_product_"
	prefixPrevProduct    = "prev_product_"
	prefixAddToCart      = "add_to_cart_"
	prefixRemoveFromCart = "remove_from_cart_"
)

var kindNames = map[ActionKind]string{
	ActionUnknown:        "unknown",
	ActionBrowseStart:    "view_products",
	ActionBrowseNext:     "next_product",
	ActionBrowsePrev:     "prev_product",
	ActionAddToCart:      "add_to_cart",
	ActionViewCart:       "view_cart",
	ActionRemoveFromCart: "remove_from_cart",
	ActionCheckout:       "checkout",
	ActionConfirmOrder:   "confirm_order",
	ActionCancelOrder:    "cancel_order",
	ActionMainMenu:       "main_menu",
}

func (k ActionKind) String() string {
	if n, ok := kindNames[k]; ok {
		return n
	}
	return "unknown"
}

// Action is a parsed button token. Index is set for browse next/prev,
// ProductID for cart add/remove.
type Action struct {
	Kind      ActionKind
	Index     int
	ProductID string
}

// ParseAction decodes a button token. Anything unrecognised yields
// ActionUnknown.
func ParseAction(token string) Action {
	switch token {
	case tokenViewProducts:
		return Action{Kind: ActionBrowseStart}
	case tokenViewCart:
		return Action{Kind: ActionViewCart}
	case tokenCheckout:
		return Action{Kind: ActionCheckout}
	case tokenConfirmOrder:
		return Action{Kind: ActionConfirmOrder}
	case tokenCancelOrder:
		return Action{Kind: ActionCancelOrder}
	case tokenMainMenu:
		return Action{Kind: ActionMainMenu}
	}

	if rest, ok := strings.CutPrefix(token, prefixNextProduct); ok {
		return indexAction(ActionBrowseNext, rest)
	}
	if rest, ok := strings.CutPrefix(token, prefixPrevProduct); ok {
		return indexAction(ActionBrowsePrev, rest)
	}
	if rest, ok := strings.CutPrefix(token, prefixAddToCart); ok && rest != "" {
		return Action{Kind: ActionAddToCart, ProductID: rest}
	}
	if rest, ok := strings.CutPrefix(token, prefixRemoveFromCart); ok && rest != "" {
		return Action{Kind: ActionRemoveFromCart, ProductID: rest}
	}
	return Action{Kind: ActionUnknown}
}

func indexAction(kind ActionKind, raw string) Action {
	i, err := strconv.Atoi(raw)
	if err != nil || i < 0 {
		return Action{Kind: ActionUnknown}
	}
	return Action{Kind: kind, Index: i}
}

// Token encodes the action back into its button token.
func (a Action) Token() string {
	switch a.Kind {
	case ActionBrowseStart:
		return tokenViewProducts
	case ActionBrowseNext:
		return prefixNextProduct + strconv.Itoa(a.Index)
	case ActionBrowsePrev:
		return prefixPrevProduct + strconv.Itoa(a.Index)
	case ActionAddToCart:
		return prefixAddToCart + a.ProductID
	case ActionViewCart:
		return tokenViewCart
	case ActionRemoveFromCart:
		return prefixRemoveFromCart + a.ProductID
	case ActionCheckout:
		return tokenCheckout
	case ActionConfirmOrder:
		return tokenConfirmOrder
	case ActionCancelOrder:
		return tokenCancelOrder
	default:
		return tokenMainMenu
	}
}
