package rag

import "testing"

func TestKeywordClassifier(t *testing.T) {
	c := NewKeywordClassifier()

	tests := []struct {
		query string
		want  bool
	}{
		{"I'd like to BOOK an interview", true},
		{"Can we schedule a call?", true},
		{"need an appointment", true},
		{"let's set up a chat", true},
		{"could you arrange something", true},
		{"reserve a slot please", true},
		{"meeting tomorrow?", true},
		{"What is the refund policy?", false},
		{"", false},
		{"setup instructions", false},
	}

	for _, tt := range tests {
		if got := c.IsBookingIntent(tt.query); got != tt.want {
			t.Errorf("IsBookingIntent(%q) = %v, want %v", tt.query, got, tt.want)
		}
	}
}

func TestKeywordClassifier_CustomKeywords(t *testing.T) {
	c := NewKeywordClassifier(" Demo ", "")

	if !c.IsBookingIntent("can I get a demo") {
		t.Error("expected custom keyword to match")
	}
	if c.IsBookingIntent("book a meeting") {
		t.Error("default keywords must not apply when custom ones are given")
	}
}
