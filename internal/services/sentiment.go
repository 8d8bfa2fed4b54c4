package services

import (
	"strings"

	"github.com/AnshRaj112/mentracare-backend/internal/models"
)

var positiveWords = []string{"great", "good", "grateful", "happy", "calm"}

var negativeWords = []string{"sad", "bad", "anxious", "angry", "stressed", "worried"}

// ClassifySentiment tags text by case-insensitive substring match. A negative
// word wins over a positive one; text with neither is neutral.
func ClassifySentiment(text string) models.Sentiment {
	lower := strings.ToLower(text)
	switch {
	case containsAny(lower, negativeWords):
		return models.SentimentNegative
	case containsAny(lower, positiveWords):
		return models.SentimentPositive
	default:
		return models.SentimentNeutral
	}
}

func containsAny(text string, words []string) bool {
	for _, w := range words {
		if strings.Contains(text, w) {
			return true
		}
	}
	return false
}
