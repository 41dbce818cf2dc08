package domain

// DialogState is the checkout conversation state of one chat.
type DialogState string

const (
	StateIdle                 DialogState = "idle"
	StateAwaitingPhone        DialogState = "awaiting_phone"
	StateAwaitingAddress      DialogState = "awaiting_address"
	StateAwaitingConfirmation DialogState = "awaiting_confirmation"
)

// DraftOrder is the data collected while checking out. Items are frozen when
// checkout begins; Phone is set from AwaitingAddress on and Address only in
// AwaitingConfirmation. BuyerID is the user whose cart was frozen.
type DraftOrder struct {
	BuyerID int64      `json:"buyerId,omitempty"`
	Items   []CartItem `json:"items,omitempty"`
	Phone   string     `json:"phone,omitempty"`
	Address string     `json:"address,omitempty"`
}

func (d DraftOrder) Empty() bool {
	return d.BuyerID == 0 && len(d.Items) == 0 && d.Phone == "" && d.Address == ""
}

// Dialog pairs the current state with its draft order.
type Dialog struct {
	State DialogState `json:"state"`
	Draft DraftOrder  `json:"draft"`
}

// Conversation holds the state owned by a chat.
type Conversation struct {
	ChatID int64  `json:"chatId"`
	Dialog Dialog `json:"dialog"`
}

// CurrentState treats the zero value as Idle.
func (d Dialog) CurrentState() DialogState {
	if d.State == "" {
		return StateIdle
	}
	return d.State
}
