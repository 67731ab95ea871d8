package entity

// WebhookEventType is the closed set of Paddle lifecycle events we react to.
// ParseWebhookEventType maps anything else to WebhookEventUnknown so dispatch
// always has an explicit arm.
type WebhookEventType string

const (
	WebhookTransactionCompleted WebhookEventType = "transaction.completed"
	WebhookSubscriptionCreated  WebhookEventType = "subscription.created"
	WebhookSubscriptionUpdated  WebhookEventType = "subscription.updated"
	WebhookSubscriptionCanceled WebhookEventType = "subscription.canceled"
	WebhookEventUnknown         WebhookEventType = "unknown"
)

func ParseWebhookEventType(raw string) WebhookEventType {
	switch WebhookEventType(raw) {
	case WebhookTransactionCompleted, WebhookSubscriptionCreated,
		WebhookSubscriptionUpdated, WebhookSubscriptionCanceled:
		return WebhookEventType(raw)
	}
	return WebhookEventUnknown
}

// WebhookEvent mirrors the Paddle payload shape. It is consumed once per
// request and never persisted.
type WebhookEvent struct {
	EventType string           `json:"event_type"`
	Data      WebhookEventData `json:"data"`
}

type WebhookEventData struct {
	ID         string            `json:"id"`
	Status     string            `json:"status"`
	CustomerID string            `json:"customer_id"`
	Items      []WebhookItem     `json:"items"`
	CustomData WebhookCustomData `json:"custom_data"`
}

type WebhookItem struct {
	PriceID  string `json:"price_id"`
	Quantity int    `json:"quantity"`
}

type WebhookCustomData struct {
	UserID   string `json:"userId"`
	PlanType string `json:"planType"`
}
