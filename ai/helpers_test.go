package ai

import "testing"

func Test_ParseVerdict(t *testing.T) {
	tests := []struct {
		name string
		resp string
		want bool
	}{
		{name: "bare yes", resp: "yes", want: true},
		{name: "capitalized yes with tail", resp: "Yes, definitely", want: true},
		{name: "yes embedded in sentence", resp: "yes, but it depends", want: true},
		// substring rule quirk: "yes" inside another word still matches
		{name: "yes inside another word", resp: "eyesight", want: true},
		{name: "bare no", resp: "no", want: false},
		{name: "empty response", resp: "", want: false},
		{name: "hedged answer", resp: "maybe not", want: false},
		{name: "japanese refusal", resp: "いいえ", want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseVerdict(tt.resp); got != tt.want {
				t.Errorf("ParseVerdict(%q) = %v, want %v", tt.resp, got, tt.want)
			}
		})
	}
}

func Test_CleanResponse(t *testing.T) {
	tests := []struct {
		name string
		resp string
		want string
	}{
		{
			name: "strips chat markers",
			resp: "<|im_start|> こんにちは <|im_end|>",
			want: "こんにちは",
		},
		{
			name: "strips leading slash",
			resp: "/chat hello",
			want: "chat hello",
		},
		{
			name: "trims whitespace",
			resp: "  answer  ",
			want: "answer",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CleanResponse(tt.resp); got != tt.want {
				t.Errorf("CleanResponse() = %v, want %v", got, tt.want)
			}
		})
	}
}
