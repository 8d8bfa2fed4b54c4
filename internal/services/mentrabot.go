package services

import (
	"strings"
)

const (
	ReplyDefault = "I'm here for you. Let's take a slow breath together. You're not alone."
	ReplyStress  = "It sounds heavy. Try a 4-7-8 breath with me now. If it persists, I can show emergency help."
	ReplyLowMood = "I hear you. Be gentle with yourself today—one small step is enough. Want a short mindfulness break?"
	ReplySOS     = "Your safety matters. Please reach out to someone you trust. Tap SOS—help is available right now."
)

var stressWords = []string{"stressed", "overwhelmed", "anxious", "panic"}

var lowMoodWords = []string{"sad", "down", "tired", "low"}

var selfHarmWords = []string{"hurt", "harm", "sos", "suicide", "kill"}

// botRules are checked from highest precedence down; the first match wins.
var botRules = []struct {
	words []string
	reply string
}{
	{selfHarmWords, ReplySOS},
	{lowMoodWords, ReplyLowMood},
	{stressWords, ReplyStress},
}

// MentraBotReply picks the canned reply for message. Self-harm keywords always
// take precedence, then low-mood, then stress.
func MentraBotReply(message string) string {
	lower := strings.ToLower(message)
	for _, rule := range botRules {
		if containsAny(lower, rule.words) {
			return rule.reply
		}
	}
	return ReplyDefault
}
