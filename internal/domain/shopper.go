package domain

// Shopper holds the state owned by the acting user: the live cart and the
// browse cursor. It is keyed by user id, never by chat id.
type Shopper struct {
	UserID int64 `json:"userId"`
	Cart   Cart  `json:"cart"`
	Cursor int   `json:"cursor"`
}
