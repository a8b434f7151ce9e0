package rag

import "strings"

var defaultBookingKeywords = []string{
	"book", "schedule", "appointment", "interview",
	"meeting", "reserve", "set up", "arrange",
}

// KeywordClassifier flags a query as a booking request when its lowercase
// text contains any of the keyword stems.
type KeywordClassifier struct {
	keywords []string
}

func NewKeywordClassifier(keywords ...string) *KeywordClassifier {
	if len(keywords) == 0 {
		keywords = defaultBookingKeywords
	}
	lower := make([]string, 0, len(keywords))
	for _, k := range keywords {
		if k = strings.ToLower(strings.TrimSpace(k)); k != "" {
			lower = append(lower, k)
		}
	}
	return &KeywordClassifier{keywords: lower}
}

func (c *KeywordClassifier) IsBookingIntent(query string) bool {
	q := strings.ToLower(query)
	for _, k := range c.keywords {
		if strings.Contains(q, k) {
			return true
		}
	}
	return false
}
