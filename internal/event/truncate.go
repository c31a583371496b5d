package event

// Display budgets for notification bodies. Push payloads get the tighter
// cut; the stored in-app record keeps a little more context.
const (
	PushBodyLimit   = 60
	StoredBodyLimit = 90
)

// Truncate cuts s to at most max runes. The cut is rune-safe so multi-byte
// text (the admin UI is Japanese) is never split mid-character.
func Truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
