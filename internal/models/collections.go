package models

// Collection names for each entity, resolved here at compile time instead of
// being derived from type names at runtime.
const (
	ProductCollection  = "product"
	FeedbackCollection = "feedback"
)
