package entity

// Suggestion is one classification proposal returned by the completion service.
// Index addresses the row within the request that produced it, not the upload.
type Suggestion struct {
	Index        int
	CategoryID   string
	CategoryName string
	TagIDs       []string
	TagNames     []string
	Confidence   *float64
	Reason       string
}

// EnrichmentAdvice keeps the advisory part of an accepted suggestion on a row.
// It never gates whether the suggestion is applied.
type EnrichmentAdvice struct {
	Confidence *float64
	Reason     string
}
