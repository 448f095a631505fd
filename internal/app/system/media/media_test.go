package media

import (
	"strings"
	"testing"
)

func TestAllowedImage(t *testing.T) {
	cases := []struct {
		contentType string
		want        bool
	}{
		{"image/jpeg", true},
		{"image/png", true},
		{"image/webp", true},
		{"video/mp4", false},
		{"image/svg+xml", false},
		{"application/octet-stream", false},
	}
	for _, tc := range cases {
		if got := AllowedImage(tc.contentType); got != tc.want {
			t.Errorf("AllowedImage(%q) = %v, want %v", tc.contentType, got, tc.want)
		}
	}
}

func TestAllowedVideo(t *testing.T) {
	cases := []struct {
		contentType string
		want        bool
	}{
		{"video/mp4", true},
		{"video/webm", true},
		{"image/jpeg", false},
		{"video/x-msvideo", false},
	}
	for _, tc := range cases {
		if got := AllowedVideo(tc.contentType); got != tc.want {
			t.Errorf("AllowedVideo(%q) = %v, want %v", tc.contentType, got, tc.want)
		}
	}
}

func TestObjectURL(t *testing.T) {
	s := &Store{bucket: "pindrop-media", region: "us-east-1"}
	got := s.objectURL("pins/abc.jpg")
	want := "https://pindrop-media.s3.us-east-1.amazonaws.com/pins/abc.jpg"
	if got != want {
		t.Errorf("objectURL = %q, want %q", got, want)
	}

	s.baseURL = "https://cdn.example.com"
	if got := s.objectURL("pins/abc.jpg"); got != "https://cdn.example.com/pins/abc.jpg" {
		t.Errorf("objectURL with base = %q", got)
	}

	if strings.Contains(s.objectURL("avatars/x.png"), "//avatars") {
		t.Error("objectURL produced a double slash")
	}
}
