package checkout

import (
	"errors"
	"strings"
	"testing"

	"chatshop/internal/domain"
)

func TestAcceptPhoneValidation(t *testing.T) {
	cases := map[string]bool{
		"+12345678901":     true,
		"1234567890":       true,
		"123456789012345":  true,
		" +12345678901 ":   true,
		"abc":              false,
		"123456789":        false,
		"1234567890123456": false,
		"++12345678901":    false,
		"+1 234 567 8901":  false,
		"":                 false,
		"12345678901\nfoo": false,
	}
	for input, valid := range cases {
		d := domain.Dialog{State: domain.StateAwaitingPhone}
		err := acceptPhone(&d, input)
		if valid {
			if err != nil || d.State != domain.StateAwaitingAddress {
				t.Fatalf("%q: expected valid, got err=%v state=%s", input, err, d.State)
			}
			continue
		}
		if !errors.Is(err, domain.ErrInvalidPhone) {
			t.Fatalf("%q: expected ErrInvalidPhone, got %v", input, err)
		}
		if d.State != domain.StateAwaitingPhone || d.Draft.Phone != "" {
			t.Fatalf("%q: dialog changed on invalid phone: %+v", input, d)
		}
	}
}

func TestAcceptAddressValidation(t *testing.T) {
	d := domain.Dialog{State: domain.StateAwaitingAddress, Draft: domain.DraftOrder{Phone: "+12345678901"}}
	for _, input := range []string{"", "    ", "abcd", "  ab  "} {
		if err := acceptAddress(&d, input); !errors.Is(err, domain.ErrInvalidAddress) {
			t.Fatalf("%q: expected ErrInvalidAddress, got %v", input, err)
		}
		if d.State != domain.StateAwaitingAddress {
			t.Fatalf("%q: state changed to %s", input, d.State)
		}
	}
	if err := acceptAddress(&d, "  12345 "); err != nil {
		t.Fatalf("expected 5 character address to pass: %v", err)
	}
	if d.Draft.Address != "12345" || d.State != domain.StateAwaitingConfirmation {
		t.Fatalf("unexpected dialog %+v", d)
	}
}

func TestBeginRequiresItems(t *testing.T) {
	d := domain.Dialog{State: domain.StateIdle}
	if err := begin(&d, 1, nil); !errors.Is(err, domain.ErrEmptyCart) {
		t.Fatalf("expected ErrEmptyCart, got %v", err)
	}
	if d.State != domain.StateIdle {
		t.Fatalf("expected Idle, got %s", d.State)
	}
}

func TestBeginFreezesItems(t *testing.T) {
	items := []domain.CartItem{{Product: domain.Product{ID: "p1", PriceCents: 100}, Quantity: 1}}
	d := domain.Dialog{}
	if err := begin(&d, 9, items); err != nil {
		t.Fatalf("begin: %v", err)
	}
	items[0].Quantity = 50
	if d.Draft.Items[0].Quantity != 1 || d.Draft.BuyerID != 9 {
		t.Fatalf("draft shares memory with caller: %+v", d.Draft)
	}
}

func TestCommitOutsideConfirmationResets(t *testing.T) {
	d := domain.Dialog{State: domain.StateAwaitingAddress, Draft: domain.DraftOrder{Phone: "+12345678901"}}
	if _, err := commit(&d); !errors.Is(err, domain.ErrMalformedConfirmation) {
		t.Fatalf("expected ErrMalformedConfirmation, got %v", err)
	}
	if d.State != domain.StateIdle || !d.Draft.Empty() {
		t.Fatalf("expected reset dialog, got %+v", d)
	}
}

func TestSummary(t *testing.T) {
	draft := domain.DraftOrder{
		Items: []domain.CartItem{
			{Product: domain.Product{Name: "Dummy Product A", PriceCents: 1000}, Quantity: 2},
			{Product: domain.Product{Name: "Dummy Product C", PriceCents: 500}, Quantity: 1},
		},
		Phone:   "+12345678901",
		Address: "123 Main St",
	}
	want := "Please confirm your order details:\n\n" +
		"- Dummy Product A (x2) - $20.00\n" +
		"- Dummy Product C (x1) - $5.00\n" +
		"\nTotal: $25.00" +
		"\nPhone Number: +12345678901" +
		"\nShipping Address: 123 Main St"
	if got := Summary(draft); got != want {
		t.Fatalf("unexpected summary:\n%s\nwant:\n%s", got, want)
	}
	if !strings.Contains(Summary(domain.DraftOrder{}), "Phone Number: N/A") {
		t.Fatalf("expected N/A for missing phone")
	}
}
