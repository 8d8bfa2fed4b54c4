package models

// PeerWallPost is an anonymous post on the shared wall; it never carries a user id.
type PeerWallPost struct {
	ID        string    `bson:"_id,omitempty" json:"id"`
	PostText  string    `bson:"post_text" json:"post_text" schema:"required"`
	MoodTag   *string   `bson:"mood_tag" json:"mood_tag"`
	Likes     int       `bson:"likes" json:"likes" validate:"gte=0"`
	Timestamp *DateTime `bson:"timestamp" json:"timestamp"`
}
