package models

// Feedback is a player review with a star rating and an optional message.
// Feedback is write-once: it is created over the API and never updated.
type Feedback struct {
	Stars   int    `json:"stars" bson:"stars" validate:"required,min=1,max=5"`
	Message string `json:"message,omitempty" bson:"message,omitempty"`
	IGN     string `json:"ign,omitempty" bson:"ign,omitempty"`
}
