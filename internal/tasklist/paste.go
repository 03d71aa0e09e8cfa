package tasklist

// PasteResult is the field content after a bounded paste.
type PasteResult struct {
	Value string
	// Cursor is the rune offset right after the inserted text.
	Cursor int
	// Truncated is set when the pasted text alone exceeded the limit.
	Truncated bool
}

// Paste computes the value of a field limited to maxLen runes after pasting
// text over the selection [start, end) of current. The pasted text is cut to
// maxLen first, then the combined value is cut to maxLen.
func Paste(current string, start, end int, text string, maxLen int) PasteResult {
	cur := []rune(current)
	start = clamp(start, 0, len(cur))
	end = clamp(end, 0, len(cur))
	if end < start {
		start, end = end, start
	}

	inserted := []rune(text)
	truncated := len(inserted) > maxLen
	if truncated {
		inserted = inserted[:maxLen]
	}

	combined := make([]rune, 0, len(cur)-(end-start)+len(inserted))
	combined = append(combined, cur[:start]...)
	combined = append(combined, inserted...)
	combined = append(combined, cur[end:]...)
	if len(combined) > maxLen {
		combined = combined[:maxLen]
	}

	return PasteResult{
		Value:     string(combined),
		Cursor:    clamp(start+len(inserted), 0, len(combined)),
		Truncated: truncated,
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
