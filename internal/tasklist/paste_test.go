package tasklist

import (
	"strings"
	"testing"
)

func TestPaste(t *testing.T) {
	tests := []struct {
		name          string
		current       string
		start, end    int
		text          string
		max           int
		wantValue     string
		wantCursor    int
		wantTruncated bool
	}{
		{
			name:       "insert into empty",
			current:    "",
			text:       "hello",
			max:        10,
			wantValue:  "hello",
			wantCursor: 5,
		},
		{
			name:       "insert at cursor",
			current:    "buy milk",
			start:      4,
			end:        4,
			text:       "oat ",
			max:        20,
			wantValue:  "buy oat milk",
			wantCursor: 8,
		},
		{
			name:       "replace selection",
			current:    "buy milk",
			start:      4,
			end:        8,
			text:       "bread",
			max:        20,
			wantValue:  "buy bread",
			wantCursor: 9,
		},
		{
			name:       "reversed selection",
			current:    "buy milk",
			start:      8,
			end:        4,
			text:       "tea",
			max:        20,
			wantValue:  "buy tea",
			wantCursor: 7,
		},
		{
			name:          "pasted text over limit",
			current:       "",
			text:          "abcdefghij",
			max:           4,
			wantValue:     "abcd",
			wantCursor:    4,
			wantTruncated: true,
		},
		{
			name:       "combined value over limit",
			current:    "abcd",
			start:      2,
			end:        2,
			text:       "XY",
			max:        5,
			wantValue:  "abXYc",
			wantCursor: 4,
		},
		{
			name:       "selection out of range is clamped",
			current:    "abc",
			start:      10,
			end:        20,
			text:       "d",
			max:        10,
			wantValue:  "abcd",
			wantCursor: 4,
		},
		{
			name:       "counts runes not bytes",
			current:    "héllo",
			start:      5,
			end:        5,
			text:       "ö",
			max:        6,
			wantValue:  "héllo" + "ö",
			wantCursor: 6,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Paste(tt.current, tt.start, tt.end, tt.text, tt.max)
			if got.Value != tt.wantValue {
				t.Errorf("value = %q, want %q", got.Value, tt.wantValue)
			}
			if got.Cursor != tt.wantCursor {
				t.Errorf("cursor = %d, want %d", got.Cursor, tt.wantCursor)
			}
			if got.Truncated != tt.wantTruncated {
				t.Errorf("truncated = %v, want %v", got.Truncated, tt.wantTruncated)
			}
		})
	}
}

func TestPasteNeverExceedsLimit(t *testing.T) {
	current := strings.Repeat("a", TitleMaxLength)
	got := Paste(current, 100, 100, strings.Repeat("b", 50), TitleMaxLength)
	if n := len([]rune(got.Value)); n != TitleMaxLength {
		t.Errorf("len = %d, want %d", n, TitleMaxLength)
	}
	if got.Cursor != 150 {
		t.Errorf("cursor = %d, want 150", got.Cursor)
	}
	if got.Truncated {
		t.Error("pasted text fits on its own, should not be reported as truncated")
	}
}
