package pkg

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"yt-media-api/models"
)

func testStreams() []models.Stream {
	return []models.Stream{
		{Itag: 18, Subtype: "mp4", HasVideo: true, HasAudio: true, Resolution: "360p"},
		{Itag: 137, Subtype: "mp4", HasVideo: true, Resolution: "1080p"},
		{Itag: 248, Subtype: "webm", HasVideo: true, Resolution: "1080p"},
		{Itag: 136, Subtype: "mp4", HasVideo: true, Resolution: "720p"},
		{Itag: 298, Subtype: "mp4", HasVideo: true, Resolution: "720p", FPS: 60},
		{Itag: 140, Subtype: "mp4", HasAudio: true},
		{Itag: 251, Subtype: "webm", HasAudio: true},
	}
}

func TestFirst(t *testing.T) {
	streams := testStreams()

	tests := []struct {
		name     string
		filter   StreamFilter
		wantItag int
		wantOK   bool
	}{
		{"mp4 video 720p", StreamFilter{FileExtension: "mp4", OnlyVideo: true, Resolution: "720p"}, 136, true},
		{"mp4 audio", StreamFilter{FileExtension: "mp4", OnlyAudio: true}, 140, true},
		{"any audio", StreamFilter{OnlyAudio: true}, 140, true},
		{"webm audio", StreamFilter{FileExtension: "webm", OnlyAudio: true}, 251, true},
		{"progressive excluded from only video", StreamFilter{OnlyVideo: true, Resolution: "360p"}, 0, false},
		{"missing resolution", StreamFilter{FileExtension: "mp4", OnlyVideo: true, Resolution: "4320p"}, 0, false},
		{"no filter", StreamFilter{}, 18, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := First(streams, tt.filter)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantItag, got.Itag)
		})
	}
}

func TestFilterKeepsOrder(t *testing.T) {
	got := Filter(testStreams(), StreamFilter{FileExtension: "webm"})
	if assert.Len(t, got, 2) {
		assert.Equal(t, 248, got[0].Itag)
		assert.Equal(t, 251, got[1].Itag)
	}
	assert.Empty(t, Filter(testStreams(), StreamFilter{FileExtension: "3gp"}))
}

func TestHighest(t *testing.T) {
	got, ok := Highest(testStreams(), StreamFilter{FileExtension: "mp4", OnlyVideo: true})
	assert.True(t, ok)
	assert.Equal(t, 137, got.Itag)

	_, ok = Highest(nil, StreamFilter{OnlyVideo: true})
	assert.False(t, ok)
}

func TestResolutions(t *testing.T) {
	assert.Equal(t, []string{"1080p", "720p"}, Resolutions(testStreams()))
	assert.Equal(t, []string{}, Resolutions(nil))
}

func TestNormalizeResolution(t *testing.T) {
	tests := map[string]string{
		"1080p":       "1080p",
		"1080p60":     "1080p",
		"2160p60 HDR": "2160p",
		"":            "",
		"tiny":        "",
		"hd720p":      "",
	}
	for in, want := range tests {
		assert.Equal(t, want, NormalizeResolution(in), in)
	}
}

func TestResolutionHeight(t *testing.T) {
	assert.Equal(t, 720, ResolutionHeight("720p"))
	assert.Equal(t, 0, ResolutionHeight(""))
}

func TestMimeSubtype(t *testing.T) {
	assert.Equal(t, "mp4", MimeSubtype(`video/mp4; codecs="avc1.640028"`))
	assert.Equal(t, "webm", MimeSubtype("audio/webm"))
	assert.Equal(t, "", MimeSubtype(""))
}

func TestStreamIsAdaptive(t *testing.T) {
	streams := testStreams()
	assert.False(t, streams[0].IsAdaptive())
	assert.True(t, streams[1].IsAdaptive())
	assert.True(t, streams[5].IsAdaptive())
	assert.False(t, models.Stream{}.IsAdaptive())

	// El progresivo 18 no cuenta como solo video ni como solo audio
	for _, s := range Filter(streams, StreamFilter{OnlyVideo: true}) {
		assert.NotEqual(t, 18, s.Itag)
	}
	for _, s := range Filter(streams, StreamFilter{OnlyAudio: true}) {
		assert.NotEqual(t, 18, s.Itag)
	}
}
