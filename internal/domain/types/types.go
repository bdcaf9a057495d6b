// Package types declares the request and response payloads of the zodiac
// admin backend. The shapes carry no validation; the backend owns that.
package types

// Page selects one page of a list. Current starts at 1.
type Page struct {
	Current int `json:"current"`
	Size    int `json:"size"`
}

// Paginated is the list envelope returned by paged endpoints.
type Paginated[T any] struct {
	Records []T `json:"records"`
	Current int `json:"current"`
	Size    int `json:"size"`
	Total   int `json:"total"`
}
