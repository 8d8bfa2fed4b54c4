package models

// User is the only mutable entity: xp and last_active are bumped in place when
// the user logs moods, journals, sessions or games.
type User struct {
	ID               string    `bson:"_id,omitempty" json:"id"`
	Name             string    `bson:"name" json:"name" schema:"required"`
	Email            string    `bson:"email" json:"email" schema:"required" validate:"email"`
	Vibe             *string   `bson:"vibe" json:"vibe"`
	Interests        []string  `bson:"interests" json:"interests"`
	Streak           int       `bson:"streak" json:"streak" validate:"gte=0"`
	XP               int       `bson:"xp" json:"xp" validate:"gte=0"`
	Companion        *string   `bson:"companion" json:"companion"`
	CompanionVisible bool      `bson:"companion_visible" json:"companion_visible"`
	LastActive       *DateTime `bson:"last_active" json:"last_active"`
}

// NewUser returns a User carrying the declared defaults.
func NewUser() *User {
	return &User{
		Interests:        []string{},
		CompanionVisible: true,
	}
}
