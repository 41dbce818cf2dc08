package bot

// Button is one inline keyboard button.
type Button struct {
	Text   string
	Action Action
}

// Image is a picture to send. Data holds uploaded bytes; when empty the
// gateway sends Ref as a remote URL.
type Image struct {
	Ref  string
	Data []byte
}

// View is the single outbound message produced for an event. A zero View
// means nothing is sent.
type View struct {
	Text    string
	Image   *Image
	Buttons [][]Button
	// EditMessageID, when set, replaces the text of that message instead of
	// sending a new one.
	EditMessageID int
}

func (v View) Empty() bool {
	return v.Text == "" && v.Image == nil
}

func row(buttons ...Button) []Button {
	return buttons
}

func button(text string, kind ActionKind) Button {
	return Button{Text: text, Action: Action{Kind: kind}}
}

var (
	btnViewProducts     = button("View Products", ActionBrowseStart)
	btnContinueShopping = button("Continue Shopping", ActionBrowseStart)
	btnViewCart         = button("View Cart", ActionViewCart)
	btnCheckout         = button("Checkout", ActionCheckout)
	btnMainMenu         = button("Back to Main Menu", ActionMainMenu)
	btnConfirmOrder     = button("Confirm Order", ActionConfirmOrder)
	btnCancelOrder      = button("Cancel Order", ActionCancelOrder)
)

func mainMenuKeyboard() [][]Button {
	return [][]Button{row(btnViewProducts), row(btnViewCart), row(btnCheckout)}
}

func backToMenuKeyboard() [][]Button {
	return [][]Button{row(btnMainMenu)}
}

func shoppingKeyboard() [][]Button {
	return [][]Button{row(btnViewProducts), row(btnMainMenu)}
}

func afterCartChangeKeyboard() [][]Button {
	return [][]Button{row(btnViewCart), row(btnContinueShopping), row(btnMainMenu)}
}

func checkoutStepKeyboard() [][]Button {
	return [][]Button{row(btnCancelOrder)}
}

func confirmKeyboard() [][]Button {
	return [][]Button{row(btnConfirmOrder), row(btnCancelOrder)}
}
