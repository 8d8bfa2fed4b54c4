package models

// Collection names. Each entity lives in its own collection named after the
// entity, lowercased.
const (
	CollectionUser               = "user"
	CollectionMood               = "mood"
	CollectionJournal            = "journal"
	CollectionMindfulnessSession = "mindfulnesssession"
	CollectionPeerWallPost       = "peerwallpost"
	CollectionBadge              = "badge"
	CollectionMentraBotLog       = "mentrabotlog"
	CollectionAppointment        = "appointment"
	CollectionGameRecord         = "gamerecord"
)

// UserCollections are the collections keyed by user_id that get an index on it.
var UserCollections = []string{
	CollectionMood,
	CollectionJournal,
	CollectionMindfulnessSession,
	CollectionBadge,
	CollectionAppointment,
	CollectionGameRecord,
}
