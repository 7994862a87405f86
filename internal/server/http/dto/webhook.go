package dto

import "encoding/json"

// WebhookEvent is the envelope the payment gateway posts to the webhook
// endpoint. Data stays raw until the event type is known.
type WebhookEvent struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// ChargeEventData carries the payload of a charge.success event. Amount is
// in the gateway's minor currency unit.
type ChargeEventData struct {
	Reference string `json:"reference"`
	Amount    int64  `json:"amount"`
}

// TransferEventData carries the payload of transfer.success/transfer.failed.
type TransferEventData struct {
	TransferCode string `json:"transfer_code"`
	Status       string `json:"status"`
	FailReason   string `json:"fail_reason"`
}

// WebhookAck is the acknowledgment body returned to the gateway.
type WebhookAck struct {
	Status string `json:"status"`
}
