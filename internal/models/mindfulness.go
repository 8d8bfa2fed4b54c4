package models

type ActivityType string

const (
	ActivityBreathing  ActivityType = "breathing"
	ActivityMeditation ActivityType = "meditation"
	ActivitySleep      ActivityType = "sleep"
	ActivityRelaxation ActivityType = "relaxation"
	ActivityMini       ActivityType = "mini"
)

type MindfulnessSession struct {
	ID              string       `bson:"_id,omitempty" json:"id"`
	UserID          string       `bson:"user_id" json:"user_id" schema:"required"`
	ActivityType    ActivityType `bson:"activity_type" json:"activity_type" schema:"required" validate:"oneof=breathing meditation sleep relaxation mini"`
	DurationSeconds int          `bson:"duration_seconds" json:"duration_seconds" validate:"gte=0"`
	CompletedAt     *DateTime    `bson:"completed_at" json:"completed_at"`
}
