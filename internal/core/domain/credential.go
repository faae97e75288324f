package domain

// Credentials is an environment-scoped provider credential set. The engine
// treats it as an opaque pass-through; nothing in the core interprets it.
type Credentials struct {
	Environment Environment `json:"environment"`
	APIKey      string      `json:"api_key"`
	APISecret   string      `json:"api_secret"`
	MerchantID  string      `json:"merchant_id"`
}
