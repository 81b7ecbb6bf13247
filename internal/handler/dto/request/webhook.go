package request

// PaymentWebhookRequest mirrors the gateway's event envelope. Only the event
// type and the payment intent reference are consumed; everything else in the
// payload is ignored.
type PaymentWebhookRequest struct {
	Data struct {
		Attributes struct {
			Type string `json:"type"`
			Data struct {
				Attributes struct {
					PaymentIntentID string `json:"payment_intent_id"`
				} `json:"attributes"`
			} `json:"data"`
		} `json:"attributes"`
	} `json:"data"`
}

func (r PaymentWebhookRequest) EventType() string {
	return r.Data.Attributes.Type
}

func (r PaymentWebhookRequest) Reference() string {
	return r.Data.Attributes.Data.Attributes.PaymentIntentID
}
