package youtubeapi

import "testing"

func TestExtractVideoID(t *testing.T) {
	tests := []struct {
		name   string
		url    string
		wantID string
		wantOK bool
	}{
		{"watch url", "https://www.youtube.com/watch?v=ABCDEFGHIJK", "ABCDEFGHIJK", true},
		{"short url", "https://youtu.be/ABCDEFGHIJK", "ABCDEFGHIJK", true},
		{"live url", "https://www.youtube.com/live/ABCDEFGHIJK", "ABCDEFGHIJK", true},
		{"watch url with extra params", "https://www.youtube.com/watch?v=dQw4w9WgXcQ&t=42s", "dQw4w9WgXcQ", true},
		{"not a url", "not a url", "", false},
		{"empty", "", "", false},
		{"id too short", "https://www.youtube.com/watch?v=SHORT", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, ok := ExtractVideoID(tt.url)
			if ok != tt.wantOK || id != tt.wantID {
				t.Errorf("ExtractVideoID(%q) = (%q, %v), want (%q, %v)", tt.url, id, ok, tt.wantID, tt.wantOK)
			}
		})
	}
}
