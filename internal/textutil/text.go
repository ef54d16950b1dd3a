// Package textutil provides the sentence and word helpers shared by all
// agents. Sentences are delimited by '.' only; that is deliberate and keeps
// every agent counting the same way.
package textutil

import "strings"

// Sentences splits text on '.' and returns the trimmed, non-empty parts
func Sentences(text string) []string {
	var sentences []string
	for _, part := range strings.Split(text, ".") {
		part = strings.TrimSpace(part)
		if part != "" {
			sentences = append(sentences, part)
		}
	}
	return sentences
}

// WordCount returns the number of whitespace-separated words in s
func WordCount(s string) int {
	return len(strings.Fields(s))
}

// AvgSentenceWords returns the average words per sentence, or 0 if the text
// has no sentences
func AvgSentenceWords(text string) float64 {
	sentences := Sentences(text)
	if len(sentences) == 0 {
		return 0
	}
	total := 0
	for _, s := range sentences {
		total += WordCount(s)
	}
	return float64(total) / float64(len(sentences))
}

// RunePrefix returns the first n runes of s. Spanish text is full of
// multi-byte runes, so byte slicing would split characters.
func RunePrefix(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

// LongestWordLen returns the length in runes of the longest word in text
func LongestWordLen(text string) int {
	longest := 0
	for _, word := range strings.Fields(text) {
		if n := len([]rune(word)); n > longest {
			longest = n
		}
	}
	return longest
}
