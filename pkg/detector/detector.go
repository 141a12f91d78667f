// Package detector guesses the dominant language of a corpus from a sample
// of its bytes. The result is informational; tokenization stays ASCII-only
// whatever the language.
package detector

import (
	"strings"
	"sync"

	"github.com/pemistahl/lingua-go"
)

// DefaultSampleSize is how much of the corpus is read for detection.
const DefaultSampleSize = 64 << 10

// minConfidence below which a guess is reported as unknown.
const minConfidence = 0.5

// languages are the candidates; restricting the set keeps model loading
// cheap and detection stable on word-salad corpora.
var languages = []lingua.Language{
	lingua.English,
	lingua.French,
	lingua.German,
	lingua.Spanish,
	lingua.Italian,
	lingua.Portuguese,
	lingua.Dutch,
}

var (
	detectorOnce sync.Once
	detector     lingua.LanguageDetector
)

func getDetector() lingua.LanguageDetector {
	detectorOnce.Do(func() {
		detector = lingua.NewLanguageDetectorBuilder().
			FromLanguages(languages...).
			Build()
	})
	return detector
}

// Language is a detection result.
type Language struct {
	Code       string  // ISO-639-1, lower case; empty when unknown
	Name       string  // e.g. "English"
	Confidence float64 // 0-1
}

// Known reports whether a language was detected.
func (l Language) Known() bool {
	return l.Code != ""
}

// Detect guesses the language of sample. Invalid UTF-8, such as a
// character cut off at the end of the sample window, is ignored.
func Detect(sample []byte) Language {
	text := strings.TrimSpace(strings.ToValidUTF8(string(sample), " "))
	if text == "" {
		return Language{}
	}

	d := getDetector()
	lang, ok := d.DetectLanguageOf(text)
	if !ok {
		return Language{}
	}

	confidence := d.ComputeLanguageConfidence(text, lang)
	if confidence < minConfidence {
		return Language{Confidence: confidence}
	}

	return Language{
		Code:       strings.ToLower(lang.IsoCode639_1().String()),
		Name:       lang.String(),
		Confidence: confidence,
	}
}
