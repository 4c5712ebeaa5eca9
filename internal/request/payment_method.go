package request

// paymentMethods is the fixed allow-list of accepted topup channels.
var paymentMethods = map[string]struct{}{
	"alfamart":         {},
	"indomart":         {},
	"lawson":           {},
	"dana":             {},
	"ovo":              {},
	"gopay":            {},
	"linkaja":          {},
	"jenius":           {},
	"fastpay":          {},
	"kudo":             {},
	"bri":              {},
	"mandiri":          {},
	"bca":              {},
	"bni":              {},
	"bukopin":          {},
	"e-banking":        {},
	"visa":             {},
	"mastercard":       {},
	"discover":         {},
	"american express": {},
	"paypal":           {},
}

// cardPaymentMethods are the card-backed channels. Card topups carry a
// gateway-minted virtual card number as their reference instead of the
// caller-supplied one.
var cardPaymentMethods = map[string]struct{}{
	"visa":             {},
	"mastercard":       {},
	"discover":         {},
	"american express": {},
}

func IsValidPaymentMethod(method string) bool {
	_, ok := paymentMethods[method]
	return ok
}

func IsCardPaymentMethod(method string) bool {
	_, ok := cardPaymentMethods[method]
	return ok
}
