package bot

// EventKind is the kind of inbound chat event.
type EventKind int

const (
	EventCommand EventKind = iota + 1
	EventButton
	EventText
)

func (k EventKind) String() string {
	switch k {
	case EventCommand:
		return "command"
	case EventButton:
		return "button"
	case EventText:
		return "text"
	default:
		return "unknown"
	}
}

// Event is one inbound message as delivered by the messaging gateway.
// ChatID keys the checkout dialog; UserID keys the cart and browse cursor.
type Event struct {
	Kind      EventKind
	ID        string
	ChatID    int64
	UserID    int64
	MessageID int
	// Payload is the command name without slash, the button token or the text.
	Payload string
}
