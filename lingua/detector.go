// Package lingua implements draftpipe.LanguageDetector using lingua-go.
// It is used when the page markup carries no lang attribute or
// content-language meta tag.
package lingua

import (
	"strings"

	"github.com/pemistahl/lingua-go"
	"github.com/pkorzen/draftpipe"
)

// sampleLength caps the text fed to the detector. Accuracy plateaus well
// below this; the full 15k content would only cost time.
const sampleLength = 1000

// Ensure Detector implements draftpipe.LanguageDetector at compile time.
var _ draftpipe.LanguageDetector = (*Detector)(nil)

// Detector guesses the language of extracted text.
type Detector struct {
	detector lingua.LanguageDetector
}

// NewDetector creates a Detector over all supported languages. Building the
// models is relatively expensive; construct once and share across jobs.
func NewDetector() *Detector {
	return &Detector{
		detector: lingua.NewLanguageDetectorBuilder().
			FromAllLanguages().
			Build(),
	}
}

// DetectLanguage returns the ISO 639-1 code of the detected language, or an
// empty string when no confident guess exists.
func (d *Detector) DetectLanguage(text string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return ""
	}
	runes := []rune(text)
	if len(runes) > sampleLength {
		text = string(runes[:sampleLength])
	}

	lang, ok := d.detector.DetectLanguageOf(text)
	if !ok {
		return ""
	}
	return strings.ToLower(lang.IsoCode639_1().String())
}
