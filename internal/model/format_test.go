package model

import "testing"

func TestFormatRecord_HasVideoHasAudio(t *testing.T) {
	tests := []struct {
		name      string
		record    FormatRecord
		wantVideo bool
		wantAudio bool
	}{
		{"video only", FormatRecord{VideoCodec: "avc1.640028", AudioCodec: "none"}, true, false},
		{"audio only", FormatRecord{VideoCodec: "none", AudioCodec: "mp4a.40.2"}, false, true},
		{"muxed", FormatRecord{VideoCodec: "avc1", AudioCodec: "mp4a"}, true, true},
		{"absent codecs", FormatRecord{}, false, false},
		{"uppercase none", FormatRecord{VideoCodec: "NONE", AudioCodec: " none "}, false, false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := test.record.HasVideo(); got != test.wantVideo {
				t.Errorf("HasVideo() = %v, expected %v", got, test.wantVideo)
			}
			if got := test.record.HasAudio(); got != test.wantAudio {
				t.Errorf("HasAudio() = %v, expected %v", got, test.wantAudio)
			}
		})
	}
}

func TestResolutionEntry_Label(t *testing.T) {
	entry := ResolutionEntry{Height: 1080, FormatID: "137"}
	if entry.Label() != "1080p" {
		t.Errorf("Label() = %s, expected 1080p", entry.Label())
	}
}

func TestVideoInfo_GetDisplayTitle(t *testing.T) {
	tests := []struct {
		title    string
		url      string
		expected string
	}{
		{"Video Title", "https://youtube.com/watch?v=123", "Video Title"},
		{"", "https://youtube.com/watch?v=123", "https://youtube.com/watch?v=123"},
		{"https://youtu.be/abc", "https://youtu.be/abc", "https://youtu.be/abc"},
	}

	for _, test := range tests {
		info := &VideoInfo{Title: test.title, URL: test.url}
		result := info.GetDisplayTitle()
		if result != test.expected {
			t.Errorf("GetDisplayTitle() with title='%s', url='%s' = '%s', expected '%s'",
				test.title, test.url, result, test.expected)
		}
	}
}
