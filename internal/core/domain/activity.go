package domain

import "time"

// Activity records one mutation performed through the console.
type Activity struct {
	Username   string    `json:"username" bson:"username"`
	Role       Role      `json:"role" bson:"role"`
	Action     string    `json:"action" bson:"action"`
	Target     string    `json:"target" bson:"target"`
	Succeeded  bool      `json:"succeeded" bson:"succeeded"`
	Error      string    `json:"error,omitempty" bson:"error,omitempty"`
	OccurredAt time.Time `json:"occurred_at" bson:"occurred_at"`
}
