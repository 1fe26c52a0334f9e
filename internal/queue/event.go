// Package queue defines message payloads exchanged over the message broker.
package queue

// UserSignedUpEvent is published after a successful signup. The mailer
// consumer uses it to deliver the verification link; the token is the
// same one redeemed via GET /v1/auth/validate/:token.
type UserSignedUpEvent struct {
	UserID      uint64 `json:"user_id"`
	Email       string `json:"email"`
	Name        string `json:"name"`
	Surname     string `json:"surname"`
	VerifyToken string `json:"verify_token"`
	SignedUpAt  string `json:"signed_up_at"`
}

// TicketPurchasedEvent is published when a purchase commits. It carries
// enough for downstream consumers to log or run analytics without
// querying the primary database.
type TicketPurchasedEvent struct {
	EventID     uint64       `json:"event_id"`
	EventName   string       `json:"event_name"`
	Lines       []TicketLine `json:"lines"`
	TotalPrice  string       `json:"total_price"`
	PurchasedAt string       `json:"purchased_at"`
}

// TicketLine is one purchased tier within a TicketPurchasedEvent.
type TicketLine struct {
	Name     string `json:"name"`
	Quantity int64  `json:"quantity"`
}
