package textstats

import "fmt"

// ReadingTime renders how long words take to read at wpm words per
// minute. All divisions truncate.
func ReadingTime(words, wpm int) string {
	if words <= 0 {
		return "0 min"
	}
	if wpm <= 0 {
		wpm = DefaultOptions().WordsPerMinute
	}

	switch minutes := words / wpm; {
	case minutes < 1:
		return fmt.Sprintf("%d sec", words*60/wpm)
	case minutes < 60:
		return fmt.Sprintf("%d min", minutes)
	default:
		return fmt.Sprintf("%dh %dmin", minutes/60, minutes%60)
	}
}
