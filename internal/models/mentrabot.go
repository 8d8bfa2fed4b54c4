package models

// MentraBotLog records one chatbot exchange. Response is computed by the server.
type MentraBotLog struct {
	ID        string    `bson:"_id,omitempty" json:"id"`
	UserID    *string   `bson:"user_id" json:"user_id"`
	Message   string    `bson:"message" json:"message" schema:"required"`
	Response  string    `bson:"response" json:"response"`
	Timestamp *DateTime `bson:"timestamp" json:"timestamp"`
}

type MentraBotRequest struct {
	UserID  *string `json:"user_id"`
	Message string  `json:"message" schema:"required"`
}
