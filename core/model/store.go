package model

// Store is a storefront scope.
type Store struct {
	ID      int64  `json:"id"`
	Code    string `json:"code"`
	BaseURL string `json:"base_url"`
}
