package entity

import (
	"encoding/json"
	"strings"
)

// Sentiment is the backend-assigned tone of an article.
type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNegative Sentiment = "negative"
	SentimentNeutral  Sentiment = "neutral"
	SentimentUnknown  Sentiment = "unknown"
)

// ParseSentiment maps an upstream sentiment string onto the enum.
// Unrecognized or empty values collapse to SentimentUnknown so the rendering
// layer never has to null-check sentiment.
func ParseSentiment(s string) Sentiment {
	switch Sentiment(strings.ToLower(strings.TrimSpace(s))) {
	case SentimentPositive:
		return SentimentPositive
	case SentimentNegative:
		return SentimentNegative
	case SentimentNeutral:
		return SentimentNeutral
	default:
		return SentimentUnknown
	}
}

// UnmarshalJSON tolerates null and arbitrary upstream strings.
func (s *Sentiment) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*s = SentimentUnknown
		return nil
	}
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*s = ParseSentiment(raw)
	return nil
}

// String implements fmt.Stringer.
func (s Sentiment) String() string {
	if s == "" {
		return string(SentimentUnknown)
	}
	return string(s)
}
