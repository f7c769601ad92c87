package dto

type CreatePaymentIntentRequest struct {
	Amount int64  `json:"amount"`
	Email  string `json:"email"`
}

type CreatePaymentIntentResponse struct {
	ClientSecret string `json:"clientSecret"`
}
