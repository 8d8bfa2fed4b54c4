package models

type Mood struct {
	ID        string    `bson:"_id,omitempty" json:"id"`
	UserID    string    `bson:"user_id" json:"user_id" schema:"required"`
	Mood      string    `bson:"mood" json:"mood" schema:"required"`
	Note      *string   `bson:"note" json:"note"`
	Timestamp *DateTime `bson:"timestamp" json:"timestamp"`
}

// MoodRequest is the body of POST /moods. The timestamp is always server-assigned.
type MoodRequest struct {
	UserID string  `json:"user_id" schema:"required"`
	Mood   string  `json:"mood" schema:"required"`
	Note   *string `json:"note"`
}
