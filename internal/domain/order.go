package domain

import "time"

// Order is a confirmed draft order.
type Order struct {
	ID          string     `json:"id"`
	ChatID      int64      `json:"chatId"`
	UserID      int64      `json:"userId"`
	Items       []CartItem `json:"items"`
	TotalCents  int64      `json:"totalCents"`
	Phone       string     `json:"phone"`
	Address     string     `json:"address"`
	ConfirmedAt time.Time  `json:"confirmedAt"`
}
