package types

type Transcript struct {
	Segments []Segment `json:"segments"`
}

type Segment struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
	Words []Word  `json:"words,omitempty"`
}

type Word struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Word  string  `json:"word"`
}

type Manifest struct {
	RunID               string  `json:"run_id"`
	Input               string  `json:"input"`
	DurationSec         float64 `json:"duration_sec"`
	ExpectedDurationSec float64 `json:"expected_duration_sec"`
	RenderedDurationSec float64 `json:"rendered_duration_sec,omitempty"`
	KeepSegments        int     `json:"keep_segments"`
	CutSegments         int     `json:"cut_segments"`
	CuesTotal           int     `json:"cues_total"`
	CuesDropped         int     `json:"cues_dropped"`
	Plan                string  `json:"plan"`
	Timeline            string  `json:"timeline"`
	Captions            string  `json:"captions,omitempty"`
	Output              string  `json:"output,omitempty"`
}
