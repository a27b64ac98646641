package timeline

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"unicode"

	"podtrim/internal/types"
)

// DetectorConfig tunes candidate cut region detection. FillerWords
// holds normalized (lowercase, punctuation-stripped) word forms.
type DetectorConfig struct {
	MinPauseMs       int
	FillerWords      map[string]struct{}
	FillerPaddingSec float64
}

// DefaultFillerWords are the word forms cut by default. Multi-word
// fillers are out of reach of word-level matching and are not listed.
func DefaultFillerWords() map[string]struct{} {
	words := []string{"um", "uh", "umm", "uhh", "er", "erm", "ah", "hmm", "mhm"}
	out := make(map[string]struct{}, len(words))
	for _, w := range words {
		out[w] = struct{}{}
	}
	return out
}

// DetectRegions scans a transcript for candidate cut regions: silence
// gaps between consecutive segments at least MinPauseMs long, and
// filler words padded by FillerPaddingSec on both sides. Regions may
// overlap; merging and filtering happen downstream.
func DetectRegions(tr types.Transcript, cfg DetectorConfig) ([]Region, error) {
	if len(tr.Segments) == 0 {
		return nil, &InvalidTranscriptError{Reason: "empty segment list"}
	}

	var out []Region
	for i := 0; i+1 < len(tr.Segments); i++ {
		cur, next := tr.Segments[i], tr.Segments[i+1]
		gapMs := (next.Start - cur.End) * 1000
		if gapMs >= float64(cfg.MinPauseMs) && next.Start > cur.End {
			out = append(out, Region{
				Start:  cur.End,
				End:    next.Start,
				Reason: fmt.Sprintf("silence_%dms", int(math.Round(gapMs))),
			})
		}
	}

	if len(cfg.FillerWords) == 0 {
		return out, nil
	}
	for _, seg := range tr.Segments {
		for _, w := range seg.Words {
			norm := NormalizeWord(w.Word)
			if norm == "" {
				continue
			}
			if _, ok := cfg.FillerWords[norm]; !ok {
				continue
			}
			start := w.Start - cfg.FillerPaddingSec
			if start < 0 {
				start = 0
			}
			end := w.End + cfg.FillerPaddingSec
			if end <= start {
				continue
			}
			out = append(out, Region{
				Start:  start,
				End:    end,
				Reason: "filler_word_" + norm,
			})
		}
	}
	return out, nil
}

// NormalizeFillerWords builds the normalized filler set from raw
// configured words, dropping empties and duplicates.
func NormalizeFillerWords(words []string) map[string]struct{} {
	out := make(map[string]struct{}, len(words))
	for _, w := range words {
		if norm := NormalizeWord(w); norm != "" {
			out[norm] = struct{}{}
		}
	}
	return out
}

// FillerWordList returns the filler set sorted, so serialized
// parameters are identical regardless of where the set was built.
func FillerWordList(set map[string]struct{}) []string {
	if len(set) == 0 {
		return nil
	}
	out := make([]string, 0, len(set))
	for w := range set {
		out = append(out, w)
	}
	sort.Strings(out)
	return out
}

// NormalizeWord lowercases a word and strips everything that is not a
// letter, digit or apostrophe, so "Um," and "um" compare equal.
func NormalizeWord(w string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(w)) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '\'' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
