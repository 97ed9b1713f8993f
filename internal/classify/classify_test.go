package classify_test

import (
	"testing"

	"mediastack/internal/classify"
	"mediastack/internal/config"
)

func TestExtension(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"movie.MKV", ".mkv"},
		{"/media/movies/Movie (2001)/movie-cd1.avi", ".avi"},
		{`C:\media\movie.part1.mp4`, ".mp4"},
		{"/media/some.dir/noext", ""},
		{"trailing.", ""},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := classify.Extension(tt.path); got != tt.want {
				t.Fatalf("Extension(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

func TestExtensionsClassifier(t *testing.T) {
	c := classify.NewExtensions([]string{"mkv", ".AVI"}, []string{".disc"})

	if !c.IsVideoFile("/x/Movie.mkv") || !c.IsVideoFile("movie.avi") {
		t.Fatal("expected video files to be recognized")
	}
	if c.IsVideoFile("movie.srt") {
		t.Fatal("expected subtitle not to be a video")
	}
	if !c.IsStubFile("Movie.DISC") {
		t.Fatal("expected stub to be recognized")
	}
	if c.IsStubFile("movie.mkv") {
		t.Fatal("expected video not to be a stub")
	}
}

func TestFromConfigUsesDefaults(t *testing.T) {
	c := classify.FromConfig(nil)
	if !c.IsVideoFile("a.mkv") || !c.IsStubFile("a.disc") {
		t.Fatal("expected default lists to apply")
	}

	cfg := config.Default()
	cfg.Naming.VideoFileExtensions = []string{".mp4"}
	c = classify.FromConfig(&cfg)
	if c.IsVideoFile("a.mkv") || !c.IsVideoFile("a.mp4") {
		t.Fatal("expected configured list to replace defaults")
	}
}
