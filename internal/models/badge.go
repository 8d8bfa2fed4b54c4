package models

type Badge struct {
	ID        string    `bson:"_id,omitempty" json:"id"`
	UserID    string    `bson:"user_id" json:"user_id" schema:"required"`
	BadgeName string    `bson:"badge_name" json:"badge_name" schema:"required"`
	EarnedAt  *DateTime `bson:"earned_at" json:"earned_at"`
}
