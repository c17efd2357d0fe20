package telegram

// truncationSuffix marks replies that were cut at the transport boundary.
const truncationSuffix = "…"

// TruncateReply bounds outbound reply text to max runes. The core never
// sees this limit; it applies only on the way out to Telegram.
func TruncateReply(text string, max int) string {
	if max <= 0 {
		return text
	}
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}
	if max == 1 {
		return truncationSuffix
	}
	return string(runes[:max-1]) + truncationSuffix
}
