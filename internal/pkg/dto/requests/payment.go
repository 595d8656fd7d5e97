package requests

type ReportPayment struct {
	Stage            int    `json:"stage" validate:"required,oneof=1 2 3"`
	Intent           string `json:"intent" validate:"required,oneof=AUTHORIZE CAPTURE"`
	GatewayReference string `json:"gateway_reference" validate:"required,max=255"`
	Amount           string `json:"amount" validate:"required,decimal_amount"`
	Currency         string `json:"currency" validate:"required,iso4217"`
	PurposeTag       string `json:"purpose_tag" validate:"required,purpose_tag"`
}
