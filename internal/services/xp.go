package services

// XP awarded per created entity. Kinds not listed award nothing.
const (
	XPMood               = 10
	XPJournal            = 15
	XPMindfulnessSession = 10
	XPGame               = 5
)
