// Package subtitles reads and writes SRT caption cues and adapts them
// to and from the timeline engine's cue model. It is the caption-file
// boundary of the pipeline; all retiming math lives in the engine.
package subtitles

import (
	"fmt"
	"io"
	"strings"

	"podtrim/internal/timeline"
	"podtrim/internal/types"
)

// ParseSRT reads SRT content and returns cues ordered as they appear.
// Malformed blocks are skipped rather than failing the whole file,
// matching how most SRT producers are consumed in practice.
func ParseSRT(r io.Reader) ([]timeline.Cue, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read srt: %w", err)
	}
	content := strings.ReplaceAll(strings.TrimSpace(string(data)), "\r\n", "\n")
	if content == "" {
		return nil, nil
	}

	var cues []timeline.Cue
	for _, block := range strings.Split(content, "\n\n") {
		block = strings.TrimSpace(block)
		if block == "" {
			continue
		}
		lines := strings.Split(block, "\n")
		if len(lines) < 2 {
			continue
		}

		// First line is the index; timing may be on line 1 or 2.
		timingIdx := 0
		if !strings.Contains(lines[0], "-->") {
			timingIdx = 1
		}
		if timingIdx >= len(lines) || !strings.Contains(lines[timingIdx], "-->") {
			continue
		}
		parts := strings.Split(lines[timingIdx], "-->")
		if len(parts) != 2 {
			continue
		}
		start, err := parseTimestamp(parts[0])
		if err != nil {
			continue
		}
		end, err := parseTimestamp(parts[1])
		if err != nil {
			continue
		}

		text := strings.Join(lines[timingIdx+1:], "\n")
		cues = append(cues, timeline.Cue{Start: start, End: end, Text: text})
	}
	return cues, nil
}

// WriteSRT writes remapped cues as SRT, skipping dropped ones and
// renumbering the survivors from 1.
func WriteSRT(w io.Writer, cues []timeline.MappedCue) error {
	index := 0
	for _, c := range cues {
		if c.Dropped {
			continue
		}
		index++
		if _, err := fmt.Fprintf(w, "%d\n%s --> %s\n%s\n\n",
			index,
			formatTimestamp(c.FinalStart),
			formatTimestamp(c.FinalEnd),
			strings.TrimSpace(c.Text),
		); err != nil {
			return fmt.Errorf("write srt: %w", err)
		}
	}
	return nil
}

// CuesFromTranscript converts transcript segments into caption cues,
// one cue per segment with non-empty text.
func CuesFromTranscript(tr types.Transcript) []timeline.Cue {
	var cues []timeline.Cue
	for _, s := range tr.Segments {
		text := strings.TrimSpace(s.Text)
		if text == "" {
			continue
		}
		cues = append(cues, timeline.Cue{Start: s.Start, End: s.End, Text: text})
	}
	return cues
}

func parseTimestamp(s string) (float64, error) {
	s = strings.TrimSpace(s)
	// SRT uses a comma before milliseconds; tolerate a period too.
	s = strings.ReplaceAll(s, ",", ".")
	var h, m int
	var sec float64
	if _, err := fmt.Sscanf(s, "%d:%d:%f", &h, &m, &sec); err != nil {
		return 0, fmt.Errorf("parse srt timestamp %q: %w", s, err)
	}
	return float64(h)*3600 + float64(m)*60 + sec, nil
}

func formatTimestamp(sec float64) string {
	if sec < 0 {
		sec = 0
	}
	ms := int(sec*1000 + 0.5)
	h := ms / 3600000
	ms -= h * 3600000
	m := ms / 60000
	ms -= m * 60000
	s := ms / 1000
	ms -= s * 1000
	return fmt.Sprintf("%02d:%02d:%02d,%03d", h, m, s, ms)
}
