//go:build integration

package itest

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"podtrim/internal/plan"
	"podtrim/internal/timeline"
)

// Drives plan -> timeline -> remap over the checked-in fixture transcript.
// The transcript has a 2s pause between its two segments and a leading
// "Um," in the second one, so the default config produces exactly one
// merged cut and one crossfade join.
func TestE2E_PlanTimelineRemap(t *testing.T) {
	repoRoot := mustRepoRoot(t)
	testdata := filepath.Join(repoRoot, "internal", "itest", "testdata")
	tmp := t.TempDir()

	planPath := filepath.Join(tmp, "plan.json")
	res := runCLI(t, repoRoot, []string{
		"plan",
		filepath.Join(testdata, "podcast_short_transcript.json"),
		"--duration", "12",
		"-o", planPath,
	}, nil)
	if res.exitCode != 0 {
		t.Fatalf("plan failed with exit code %d:\n%s", res.exitCode, res.output)
	}

	f, err := os.Open(planPath)
	if err != nil {
		t.Fatalf("open plan: %v", err)
	}
	doc, err := plan.Decode(f)
	f.Close()
	if err != nil {
		t.Fatalf("decode plan: %v", err)
	}
	segs, err := doc.Segments()
	if err != nil {
		t.Fatalf("plan segments: %v", err)
	}
	if len(segs) != 3 {
		t.Fatalf("expected keep/cut/keep, got %d segments: %+v", len(segs), segs)
	}
	cut := segs[1]
	if cut.Type != timeline.SegmentCut {
		t.Fatalf("middle segment type = %s, want cut", cut.Type)
	}
	if !strings.Contains(cut.Reason, "silence_2000ms") {
		t.Errorf("cut reason = %q, want it to mention silence_2000ms", cut.Reason)
	}
	if !strings.Contains(cut.Reason, "filler_word_um") {
		t.Errorf("cut reason = %q, want it to mention filler_word_um", cut.Reason)
	}

	timelinePath := filepath.Join(tmp, "timeline.json")
	res = runCLI(t, repoRoot, []string{"timeline", planPath, "-o", timelinePath}, nil)
	if res.exitCode != 0 {
		t.Fatalf("timeline failed with exit code %d:\n%s", res.exitCode, res.output)
	}
	// keep 5.0s + keep 4.55s - 0.3s crossfade overlap
	if !strings.Contains(res.output, "expected duration 9.250s, 1 joins") {
		t.Errorf("timeline output = %q, want the expected duration summary", res.output)
	}

	reqBytes, err := os.ReadFile(timelinePath)
	if err != nil {
		t.Fatalf("read timeline request: %v", err)
	}
	req := string(reqBytes)
	for _, want := range []string{
		`"start": "7.450"`,
		`"end": "12.000"`,
		`"duration_ms": 300`,
		`"fps": 30`,
	} {
		if !strings.Contains(req, want) {
			t.Errorf("timeline request missing %s:\n%s", want, req)
		}
	}

	srtPath := filepath.Join(tmp, "out.srt")
	res = runCLI(t, repoRoot, []string{
		"remap", planPath, filepath.Join(testdata, "podcast_short.srt"), "-o", srtPath,
	}, nil)
	if res.exitCode != 0 {
		t.Fatalf("remap failed with exit code %d:\n%s", res.exitCode, res.output)
	}
	if !strings.Contains(res.output, "3 cues, 1 dropped") {
		t.Errorf("remap output = %q, want cue counts", res.output)
	}

	outBytes, err := os.ReadFile(srtPath)
	if err != nil {
		t.Fatalf("read retimed captions: %v", err)
	}
	out := string(outBytes)
	if strings.Contains(out, "dead air") {
		t.Errorf("cue inside the cut survived the remap:\n%s", out)
	}
	// The second surviving cue starts where the first keep ends minus the
	// crossfade overlap: 5.0 - 0.3 = 4.7s.
	if !strings.Contains(out, "00:00:04,700") {
		t.Errorf("retimed captions missing the folded cue start:\n%s", out)
	}
	if !strings.Contains(out, "00:00:09,250") {
		t.Errorf("retimed captions missing the clamped final end:\n%s", out)
	}
}
