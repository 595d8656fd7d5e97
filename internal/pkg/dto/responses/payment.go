package responses

type PaymentIntent struct {
	CaseID     string `json:"case_id"`
	Payable    bool   `json:"payable"`
	Stage      int    `json:"stage,omitempty"`
	Intent     string `json:"intent,omitempty"`
	Amount     string `json:"amount,omitempty"`
	Currency   string `json:"currency,omitempty"`
	PurposeTag string `json:"purpose_tag,omitempty"`
}

type WebhookAck struct {
	EventID   string `json:"event_id"`
	Processed bool   `json:"processed"`
	Reason    string `json:"reason,omitempty"`
}

type PaypalAccessToken struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

type PaypalAuthorizationAction struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

type PaypalVerifyWebhookSignature struct {
	VerificationStatus string `json:"verification_status"`
}
