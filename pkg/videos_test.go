package pkg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeURL(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"plain", "https://www.youtube.com/watch?v=dQw4w9WgXcQ", "https://www.youtube.com/watch?v=dQw4w9WgXcQ"},
		{"encoded", "https%3A%2F%2Fwww.youtube.com%2Fwatch%3Fv%3DdQw4w9WgXcQ", "https://www.youtube.com/watch?v=dQw4w9WgXcQ"},
		{"plus is kept", "a+b", "a+b"},
		{"invalid escape is kept", "https://youtu.be/%zz", "https://youtu.be/%zz"},
		{"trimmed", "  dQw4w9WgXcQ ", "dQw4w9WgXcQ"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeURL(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("empty", func(t *testing.T) {
		_, err := DecodeURL("   ")
		assert.ErrorIs(t, err, ErrInvalidURL)
	})
}

func TestIsUrl(t *testing.T) {
	assert.True(t, IsUrl("https://www.youtube.com/watch?v=dQw4w9WgXcQ"))
	assert.False(t, IsUrl("dQw4w9WgXcQ"))
	assert.False(t, IsUrl("/watch?v=dQw4w9WgXcQ"))
}

func TestGetYoutubeVideoID(t *testing.T) {
	tests := []struct{ in, want string }{
		{"https://www.youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"https://www.youtube.com/watch?list=abc&v=dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"https://youtu.be/dQw4w9WgXcQ?t=10", "dQw4w9WgXcQ"},
		{"https://www.youtube.com/embed/dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"https://www.youtube.com/shorts/dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"https://example.com/", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, GetYoutubeVideoID(tt.in), tt.in)
	}
}

func TestChannelURL(t *testing.T) {
	assert.Equal(t, "https://www.youtube.com/channel/UC123", ChannelURL("UC123"))
	assert.Equal(t, "", ChannelURL(""))
}

func TestSafeFilename(t *testing.T) {
	assert.Equal(t, "My_Video_Part_12.mp4", SafeFilename("My Video: Part 1/2", "mp4"))
	assert.Equal(t, "video.mp4", SafeFilename("", "mp4"))
	assert.Equal(t, "video.m4a", SafeFilename("...", "m4a"))
	assert.Equal(t, "tab.mp4", SafeFilename("t\tab", "mp4"))
}
