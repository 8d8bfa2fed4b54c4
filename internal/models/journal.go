package models

type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNeutral  Sentiment = "neutral"
	SentimentNegative Sentiment = "negative"
)

// Journal represents a private journaling entry for a user. Sentiment is
// derived from Text on the server and never taken from the client.
type Journal struct {
	ID        string    `bson:"_id,omitempty" json:"id"`
	UserID    string    `bson:"user_id" json:"user_id" schema:"required"`
	Text      string    `bson:"text" json:"text" schema:"required"`
	MoodTag   *string   `bson:"mood_tag" json:"mood_tag"`
	Sentiment Sentiment `bson:"sentiment,omitempty" json:"sentiment,omitempty" validate:"omitempty,oneof=positive neutral negative"`
	CreatedAt *DateTime `bson:"created_at" json:"created_at"`
}

type JournalRequest struct {
	UserID  string  `json:"user_id" schema:"required"`
	Text    string  `json:"text" schema:"required"`
	MoodTag *string `json:"mood_tag"`
}
