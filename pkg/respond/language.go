package respond

import (
	"strings"

	"github.com/lurebox/lurebox/pkg/convo"
)

// Language labels the register the persona should answer in.
type Language string

const (
	LangEnglish  Language = "english"
	LangHindi    Language = "hindi"
	LangHinglish Language = "hinglish"
)

// Romanized Hindi markers common in Indian scam chat. Two or more in a
// message tips it to hinglish.
var hinglishMarkers = []string{
	"aapka", "kya", "hai", "nahi", "karo", "bhejo", "jaldi", "paisa",
}

const hinglishMinMarkers = 2

// DetectLanguage classifies a single message. Any Devanagari rune wins
// outright.
func DetectLanguage(text string) Language {
	lowered := strings.ToLower(text)
	for _, r := range lowered {
		if r >= 0x0900 && r <= 0x097F {
			return LangHindi
		}
	}
	hits := 0
	for _, w := range hinglishMarkers {
		if strings.Contains(lowered, w) {
			hits++
		}
	}
	if hits >= hinglishMinMarkers {
		return LangHinglish
	}
	return LangEnglish
}

// DominantLanguage picks the register for the reply. An explicit locale
// hint naming hindi overrides observation; otherwise every counterparty
// turn plus the current message gets one vote and the majority wins,
// ties broken toward english.
func DominantLanguage(history []convo.Turn, current, localeHint string) Language {
	if strings.Contains(strings.ToLower(localeHint), "hindi") {
		return LangHindi
	}

	counts := map[Language]int{}
	for _, t := range history {
		if t.Speaker == convo.SpeakerScammer {
			counts[DetectLanguage(t.Text)]++
		}
	}
	counts[DetectLanguage(current)]++

	best := LangEnglish
	for _, lang := range []Language{LangEnglish, LangHindi, LangHinglish} {
		if counts[lang] > counts[best] {
			best = lang
		}
	}
	return best
}
