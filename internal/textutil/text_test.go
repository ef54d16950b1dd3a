package textutil

import "testing"

func TestSentences(t *testing.T) {
	sentences := Sentences("Primera oración. Segunda oración.  . Tercera")
	if len(sentences) != 3 {
		t.Fatalf("Expected 3 sentences, got %d: %v", len(sentences), sentences)
	}
	if sentences[0] != "Primera oración" {
		t.Errorf("Expected trimmed first sentence, got %q", sentences[0])
	}
	if sentences[2] != "Tercera" {
		t.Errorf("Expected trailing fragment to count as a sentence, got %q", sentences[2])
	}
}

func TestSentences_Empty(t *testing.T) {
	if got := Sentences("   "); got != nil {
		t.Errorf("Expected nil for whitespace input, got %v", got)
	}
}

func TestWordCount(t *testing.T) {
	if n := WordCount("El coche es muy rápido"); n != 5 {
		t.Errorf("Expected 5 words, got %d", n)
	}
	if n := WordCount(""); n != 0 {
		t.Errorf("Expected 0 words for empty string, got %d", n)
	}
}

func TestAvgSentenceWords(t *testing.T) {
	avg := AvgSentenceWords("Uno dos tres. Uno dos tres cuatro cinco.")
	if avg != 4.0 {
		t.Errorf("Expected average 4.0, got %f", avg)
	}

	if avg := AvgSentenceWords(""); avg != 0 {
		t.Errorf("Expected 0 for empty text, got %f", avg)
	}
}

func TestRunePrefix(t *testing.T) {
	// 5 runes, 6 bytes: byte slicing would split the ó
	s := "oración"
	if got := RunePrefix(s, 5); got != "oraci" {
		t.Errorf("Expected 'oraci', got %q", got)
	}
	if got := RunePrefix(s, 100); got != s {
		t.Errorf("Expected full string when n exceeds length, got %q", got)
	}
}

func TestLongestWordLen(t *testing.T) {
	// "extremadamente" has 14 runes
	if n := LongestWordLen("Es extremadamente rápido"); n != 14 {
		t.Errorf("Expected 14, got %d", n)
	}
}
