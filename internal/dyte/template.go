package dyte

// Request body of POST /v2/meetings. The recording and AI settings are the
// product's fixed default policy and are not exposed to callers.
type createMeetingRequest struct {
	Title             string          `json:"title"`
	PreferredRegion   string          `json:"preferred_region"`
	RecordOnStart     bool            `json:"record_on_start"`
	LiveStreamOnStart bool            `json:"live_stream_on_start"`
	RecordingConfig   recordingConfig `json:"recording_config"`
	AIConfig          aiConfig        `json:"ai_config"`
	PersistChat       bool            `json:"persist_chat"`
	SummarizeOnEnd    bool            `json:"summarize_on_end"`
}

type recordingConfig struct {
	MaxSeconds       int              `json:"max_seconds"`
	FileNamePrefix   string           `json:"file_name_prefix"`
	VideoConfig      videoConfig      `json:"video_config"`
	AudioConfig      audioConfig      `json:"audio_config"`
	DyteBucketConfig dyteBucketConfig `json:"dyte_bucket_config"`
}

type videoConfig struct {
	Codec      string    `json:"codec"`
	Width      int       `json:"width"`
	Height     int       `json:"height"`
	Watermark  watermark `json:"watermark"`
	ExportFile bool      `json:"export_file"`
}

type watermark struct {
	URL      string        `json:"url"`
	Size     watermarkSize `json:"size"`
	Position string        `json:"position"`
}

type watermarkSize struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

type audioConfig struct {
	Codec      string `json:"codec"`
	Channel    string `json:"channel"`
	ExportFile bool   `json:"export_file"`
}

type dyteBucketConfig struct {
	Enabled bool `json:"enabled"`
}

type aiConfig struct {
	Transcription transcription `json:"transcription"`
	Summarization summarization `json:"summarization"`
}

type transcription struct {
	Keywords        []string `json:"keywords"`
	Language        string   `json:"language"`
	ProfanityFilter bool     `json:"profanity_filter"`
}

type summarization struct {
	WordLimit   int    `json:"word_limit"`
	TextFormat  string `json:"text_format"`
	SummaryType string `json:"summary_type"`
}

func newCreateMeetingRequest(title string) createMeetingRequest {
	return createMeetingRequest{
		Title:             title,
		PreferredRegion:   "ap-south-1",
		RecordOnStart:     false,
		LiveStreamOnStart: false,
		RecordingConfig: recordingConfig{
			MaxSeconds:     60,
			FileNamePrefix: "meeting",
			VideoConfig: videoConfig{
				Codec:  "H264",
				Width:  1280,
				Height: 720,
				Watermark: watermark{
					URL:      "http://example.com",
					Size:     watermarkSize{Width: 1, Height: 1},
					Position: "left top",
				},
				ExportFile: true,
			},
			AudioConfig: audioConfig{
				Codec:      "AAC",
				Channel:    "stereo",
				ExportFile: true,
			},
			DyteBucketConfig: dyteBucketConfig{Enabled: true},
		},
		AIConfig: aiConfig{
			Transcription: transcription{
				Keywords:        []string{},
				Language:        "en-US",
				ProfanityFilter: false,
			},
			Summarization: summarization{
				WordLimit:   500,
				TextFormat:  "markdown",
				SummaryType: "general",
			},
		},
		PersistChat:    false,
		SummarizeOnEnd: false,
	}
}
