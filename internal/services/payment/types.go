package payment

// Config holds the fixed merchant-side settings for issued payments.
type Config struct {
	BillPrefix       string
	StoreLabel       string
	DeeplinkCallback string
	AppIconURL       string
	AppName          string
}

// CreatePaymentRequest is a validated request to issue a new payment.
type CreatePaymentRequest struct {
	UserID   string
	Package  string
	Currency string
}

// CreatePaymentResult carries everything the client needs to present and
// poll a freshly issued payment.
type CreatePaymentResult struct {
	QRString   string  `json:"qr_string"`
	MD5Hash    string  `json:"md5_hash"`
	Deeplink   string  `json:"deeplink"`
	BillNumber string  `json:"bill_number"`
	Credits    int     `json:"credits"`
	Amount     float64 `json:"amount"`
	Currency   string  `json:"currency"`
}

// CheckPaymentResult reports the settlement status of a payment, plus the
// credit applied when this call performed the settlement.
type CheckPaymentResult struct {
	Status       string `json:"status"`
	CreditsAdded int    `json:"credits_added,omitempty"`
	Message      string `json:"message,omitempty"`
}
