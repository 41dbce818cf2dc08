package checkout

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"chatshop/internal/domain"
)

var phonePattern = regexp.MustCompile(`^\+?\d{10,15}$`)

const minAddressLength = 5

// The transitions below mutate a dialog in place and leave it untouched when
// they return an error, unless noted otherwise.

func begin(d *domain.Dialog, buyerID int64, items []domain.CartItem) error {
	if len(items) == 0 {
		return domain.ErrEmptyCart
	}
	frozen := make([]domain.CartItem, len(items))
	copy(frozen, items)
	*d = domain.Dialog{
		State: domain.StateAwaitingPhone,
		Draft: domain.DraftOrder{BuyerID: buyerID, Items: frozen},
	}
	return nil
}

func acceptPhone(d *domain.Dialog, text string) error {
	phone := strings.TrimSpace(text)
	if !phonePattern.MatchString(phone) {
		return domain.ErrInvalidPhone
	}
	d.Draft.Phone = phone
	d.State = domain.StateAwaitingAddress
	return nil
}

func acceptAddress(d *domain.Dialog, text string) error {
	address := strings.TrimSpace(text)
	if utf8.RuneCountInString(address) < minAddressLength {
		return domain.ErrInvalidAddress
	}
	d.Draft.Address = address
	d.State = domain.StateAwaitingConfirmation
	return nil
}

// commit hands out the finished draft. Outside AwaitingConfirmation the
// dialog is reset and ErrMalformedConfirmation returned.
func commit(d *domain.Dialog) (domain.DraftOrder, error) {
	if d.CurrentState() != domain.StateAwaitingConfirmation {
		reset(d)
		return domain.DraftOrder{}, domain.ErrMalformedConfirmation
	}
	draft := d.Draft
	reset(d)
	return draft, nil
}

func reset(d *domain.Dialog) {
	*d = domain.Dialog{State: domain.StateIdle}
}

// Summary renders the confirmation text for a draft order.
func Summary(draft domain.DraftOrder) string {
	var b strings.Builder
	b.WriteString("Please confirm your order details:\n\n")
	for _, it := range draft.Items {
		fmt.Fprintf(&b, "- %s (x%d) - %s\n", it.Product.Name, it.Quantity, domain.FormatPrice(it.TotalCents()))
	}
	fmt.Fprintf(&b, "\nTotal: %s", domain.FormatPrice(domain.ItemsTotal(draft.Items)))
	fmt.Fprintf(&b, "\nPhone Number: %s", orNA(draft.Phone))
	fmt.Fprintf(&b, "\nShipping Address: %s", orNA(draft.Address))
	return b.String()
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
