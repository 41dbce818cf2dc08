package bot

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"chatshop/internal/domain"
	"chatshop/internal/logging"
	"chatshop/internal/service/browse"
	"chatshop/internal/service/checkout"
	"github.com/sirupsen/logrus"
)

type cartService interface {
	Add(ctx context.Context, userID int64, productID string, quantity int) (int, error)
	Remove(ctx context.Context, userID int64, productID string) (domain.Product, error)
	Snapshot(ctx context.Context, userID int64) ([]domain.CartItem, error)
}

type browseService interface {
	Start(ctx context.Context, userID int64) (browse.Page, error)
	Next(ctx context.Context, userID int64) (browse.Page, error)
	Prev(ctx context.Context, userID int64) (browse.Page, error)
}

type checkoutService interface {
	Begin(ctx context.Context, chatID, userID int64) error
	Input(ctx context.Context, chatID int64, text string) (checkout.Step, error)
	Confirm(ctx context.Context, chatID, userID int64) (domain.Order, error)
	CancelOrder(ctx context.Context, chatID int64) error
	Cancel(ctx context.Context, chatID int64) (domain.DialogState, error)
}

type productCatalog interface {
	Get(id string) (domain.Product, error)
}

type imageSource interface {
	Load(ref string) ([]byte, error)
}

type recorder interface {
	ObserveEvent(kind, action string, d time.Duration)
	ObserveError(kind string)
	ObserveOrder()
}

// Deps are the collaborators the orchestrator routes events to.
type Deps struct {
	Catalog  productCatalog
	Carts    cartService
	Browse   browseService
	Checkout checkoutService
	Images   imageSource
	Metrics  recorder
}

// Orchestrator turns inbound events into exactly one view each.
type Orchestrator struct {
	deps      Deps
	storeName string
	logger    logrus.FieldLogger
}

func New(deps Deps, storeName string, logger logrus.FieldLogger) *Orchestrator {
	if deps.Metrics == nil {
		deps.Metrics = nopRecorder{}
	}
	if strings.TrimSpace(storeName) == "" {
		storeName = "Dummy Store"
	}
	return &Orchestrator{deps: deps, storeName: storeName, logger: logging.OrDiscard(logger)}
}

// Handle routes ev and returns the view to render. Failures are turned into
// corrective views; Handle itself never fails.
func (o *Orchestrator) Handle(ctx context.Context, ev Event) View {
	start := time.Now()
	label := eventLabel(ev)
	log := o.logger.WithFields(logrus.Fields{
		"chat_id": ev.ChatID,
		"user_id": ev.UserID,
		"kind":    ev.Kind.String(),
		"action":  label,
	})

	var (
		view View
		err  error
	)
	switch ev.Kind {
	case EventCommand:
		view, err = o.handleCommand(ctx, ev)
	case EventButton:
		view, err = o.handleButton(ctx, ev, log)
	case EventText:
		view, err = o.handleText(ctx, ev)
	default:
		log.Warn("bot: dropping event of unknown kind")
	}
	if err != nil {
		view = o.errorView(ev, err, log)
	}

	o.deps.Metrics.ObserveEvent(ev.Kind.String(), label, time.Since(start))
	log.WithField("duration", time.Since(start)).Debug("bot: event handled")
	return view
}

func (o *Orchestrator) handleCommand(ctx context.Context, ev Event) (View, error) {
	switch ev.Payload {
	case "start":
		if _, err := o.deps.Checkout.Cancel(ctx, ev.ChatID); err != nil {
			return View{}, err
		}
		return View{
			Text:    fmt.Sprintf("Welcome to the %s! Please choose an option:", o.storeName),
			Buttons: mainMenuKeyboard(),
		}, nil
	case "cancel":
		if _, err := o.deps.Checkout.Cancel(ctx, ev.ChatID); err != nil {
			return View{}, err
		}
		return View{
			Text:    "Checkout process cancelled. Use /start to return to the main menu.",
			Buttons: backToMenuKeyboard(),
		}, nil
	default:
		return View{
			Text:    "Sorry, I don't know that command. Use /start to open the main menu.",
			Buttons: mainMenuKeyboard(),
		}, nil
	}
}

func (o *Orchestrator) handleButton(ctx context.Context, ev Event, log logrus.FieldLogger) (View, error) {
	action := ParseAction(ev.Payload)
	switch action.Kind {
	case ActionBrowseStart:
		page, err := o.deps.Browse.Start(ctx, ev.UserID)
		if err != nil {
			return View{}, err
		}
		return o.productView(page, log), nil
	case ActionBrowseNext, ActionBrowsePrev:
		move := o.deps.Browse.Next
		if action.Kind == ActionBrowsePrev {
			move = o.deps.Browse.Prev
		}
		page, err := move(ctx, ev.UserID)
		if err != nil {
			return View{}, err
		}
		return o.productView(page, log), nil
	case ActionAddToCart:
		p, count, err := o.addToCart(ctx, ev.UserID, action.ProductID)
		if err != nil {
			return View{}, err
		}
		return View{
			Text:    fmt.Sprintf("%s added to your cart!\n\nCurrent cart: %d items.", p, count),
			Buttons: afterCartChangeKeyboard(),
		}, nil
	case ActionViewCart:
		items, err := o.deps.Carts.Snapshot(ctx, ev.UserID)
		if err != nil {
			return View{}, err
		}
		return cartView(items), nil
	case ActionRemoveFromCart:
		p, err := o.deps.Carts.Remove(ctx, ev.UserID, action.ProductID)
		if err != nil {
			return View{}, err
		}
		return View{
			Text:    fmt.Sprintf("%s removed from your cart.", p.Name),
			Buttons: afterCartChangeKeyboard(),
		}, nil
	case ActionCheckout:
		if err := o.deps.Checkout.Begin(ctx, ev.ChatID, ev.UserID); err != nil {
			return View{}, err
		}
		return View{
			Text:    "Please provide your phone number for the order.",
			Buttons: checkoutStepKeyboard(),
		}, nil
	case ActionConfirmOrder:
		order, err := o.deps.Checkout.Confirm(ctx, ev.ChatID, ev.UserID)
		if err != nil {
			return View{}, err
		}
		o.deps.Metrics.ObserveOrder()
		return View{
			Text:          fmt.Sprintf("Thank you for your order! Your order has been placed successfully.\n\nOrder ID: %s", order.ID),
			Buttons:       backToMenuKeyboard(),
			EditMessageID: ev.MessageID,
		}, nil
	case ActionCancelOrder:
		if err := o.deps.Checkout.CancelOrder(ctx, ev.ChatID); err != nil {
			return View{}, err
		}
		return View{
			Text:          "Your order has been cancelled.",
			Buttons:       backToMenuKeyboard(),
			EditMessageID: ev.MessageID,
		}, nil
	case ActionMainMenu:
		return o.mainMenu(), nil
	default:
		log.WithField("token", ev.Payload).Warn("bot: unknown action token, showing main menu")
		return o.mainMenu(), nil
	}
}

func (o *Orchestrator) addToCart(ctx context.Context, userID int64, productID string) (string, int, error) {
	p, err := o.deps.Catalog.Get(productID)
	if err != nil {
		return "", 0, err
	}
	count, err := o.deps.Carts.Add(ctx, userID, productID, 1)
	if err != nil {
		return "", 0, err
	}
	return p.Name, count, nil
}

func (o *Orchestrator) handleText(ctx context.Context, ev Event) (View, error) {
	step, err := o.deps.Checkout.Input(ctx, ev.ChatID, ev.Payload)
	if err != nil {
		return View{}, err
	}
	if step.Ignored {
		return View{}, nil
	}
	switch step.State {
	case domain.StateAwaitingAddress:
		return View{Text: "Please provide your shipping address.", Buttons: checkoutStepKeyboard()}, nil
	case domain.StateAwaitingConfirmation:
		return View{Text: step.Summary, Buttons: confirmKeyboard()}, nil
	default:
		return View{}, fmt.Errorf("unexpected dialog state %q after input", step.State)
	}
}

func (o *Orchestrator) mainMenu() View {
	return View{
		Text:    "Welcome back to the Main Menu! Please choose an option:",
		Buttons: mainMenuKeyboard(),
	}
}

func (o *Orchestrator) productView(page browse.Page, log logrus.FieldLogger) View {
	p := page.Product
	buttons := [][]Button{
		row(
			Button{Text: "Previous", Action: Action{Kind: ActionBrowsePrev, Index: page.Index}},
			Button{Text: "Next", Action: Action{Kind: ActionBrowseNext, Index: page.Index}},
		),
		row(Button{Text: "Add " + p.Name, Action: Action{Kind: ActionAddToCart, ProductID: p.ID}}),
		row(btnMainMenu),
	}
	caption := fmt.Sprintf("%s - %s\n%s\n\nProduct %d/%d",
		p.Name, domain.FormatPrice(p.PriceCents), p.Description, page.Index+1, page.Total)

	var data []byte
	err := domain.ErrImageUnavailable
	if o.deps.Images != nil {
		data, err = o.deps.Images.Load(p.Image)
	}
	if err != nil {
		log.WithError(err).WithField("product_id", p.ID).Error("bot: product image unavailable")
		o.deps.Metrics.ObserveError(errorKind(domain.ErrImageUnavailable))
		return View{
			Text:    fmt.Sprintf("Error: Image for %s not found or could not be displayed.\n\n%s", p.Name, caption),
			Buttons: buttons,
		}
	}
	return View{Text: caption, Image: &Image{Ref: p.Image, Data: data}, Buttons: buttons}
}

func cartView(items []domain.CartItem) View {
	if len(items) == 0 {
		return View{Text: "Your cart is empty!", Buttons: shoppingKeyboard()}
	}
	var b strings.Builder
	b.WriteString("Your Cart:\n\n")
	buttons := make([][]Button, 0, len(items)+3)
	for _, it := range items {
		fmt.Fprintf(&b, "- %s (x%d) - %s\n", it.Product.Name, it.Quantity, domain.FormatPrice(it.TotalCents()))
		buttons = append(buttons, row(Button{
			Text:   "Remove " + it.Product.Name,
			Action: Action{Kind: ActionRemoveFromCart, ProductID: it.Product.ID},
		}))
	}
	fmt.Fprintf(&b, "\nTotal: %s", domain.FormatPrice(domain.ItemsTotal(items)))
	buttons = append(buttons, row(btnCheckout), row(btnContinueShopping), row(btnMainMenu))
	return View{Text: b.String(), Buttons: buttons}
}

// errorView maps a failure to a corrective message that always carries a way
// forward.
func (o *Orchestrator) errorView(ev Event, err error, log logrus.FieldLogger) View {
	kind := errorKind(err)
	o.deps.Metrics.ObserveError(kind)

	switch {
	case errors.Is(err, domain.ErrUnknownProduct):
		log.WithError(err).Warn("bot: unknown product")
		return View{Text: "Invalid product selected.", Buttons: shoppingKeyboard()}
	case errors.Is(err, domain.ErrNotInCart):
		return View{Text: "Item not found in cart.", Buttons: [][]Button{row(btnViewCart), row(btnMainMenu)}}
	case errors.Is(err, domain.ErrEmptyCart):
		return View{Text: "Your cart is empty! Cannot checkout.", Buttons: shoppingKeyboard()}
	case errors.Is(err, domain.ErrEmptyCatalog):
		return View{Text: "There are no products available right now.", Buttons: backToMenuKeyboard()}
	case errors.Is(err, domain.ErrInvalidPhone):
		return View{
			Text:    "Invalid phone number. Please provide a valid number (e.g., +1234567890).",
			Buttons: checkoutStepKeyboard(),
		}
	case errors.Is(err, domain.ErrInvalidAddress):
		return View{
			Text:    "Invalid shipping address. Please provide a valid address (at least 5 characters).",
			Buttons: checkoutStepKeyboard(),
		}
	case errors.Is(err, domain.ErrMalformedConfirmation):
		log.Warn("bot: confirmation without a pending order")
		v := View{
			Text:    "Something went wrong. Please start over by typing /start.",
			Buttons: backToMenuKeyboard(),
		}
		// Only the bot's own message under a pressed button can be edited.
		if ev.Kind == EventButton {
			v.EditMessageID = ev.MessageID
		}
		return v
	default:
		log.WithError(err).Error("bot: event failed")
		return View{Text: "Sorry, something went wrong. Please try again.", Buttons: mainMenuKeyboard()}
	}
}

func errorKind(err error) string {
	switch {
	case errors.Is(err, domain.ErrUnknownProduct):
		return "unknown_product"
	case errors.Is(err, domain.ErrNotInCart):
		return "not_in_cart"
	case errors.Is(err, domain.ErrEmptyCart):
		return "empty_cart"
	case errors.Is(err, domain.ErrEmptyCatalog):
		return "empty_catalog"
	case errors.Is(err, domain.ErrInvalidPhone):
		return "invalid_phone"
	case errors.Is(err, domain.ErrInvalidAddress):
		return "invalid_address"
	case errors.Is(err, domain.ErrMalformedConfirmation):
		return "malformed_confirmation"
	case errors.Is(err, domain.ErrImageUnavailable):
		return "image_unavailable"
	default:
		return "internal"
	}
}

func eventLabel(ev Event) string {
	switch ev.Kind {
	case EventCommand:
		if ev.Payload == "start" || ev.Payload == "cancel" {
			return ev.Payload
		}
		return "other"
	case EventButton:
		return ParseAction(ev.Payload).Kind.String()
	default:
		return "text"
	}
}

type nopRecorder struct{}

func (nopRecorder) ObserveEvent(string, string, time.Duration) {}
func (nopRecorder) ObserveError(string) {}
func (nopRecorder) ObserveOrder() {}
