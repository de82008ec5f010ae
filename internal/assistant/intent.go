package assistant

import "strings"

type Intent string

const (
	IntentHelp        Intent = "help"
	IntentOpenProfile Intent = "openProfile"
	IntentViewOrders  Intent = "viewOrders"
	IntentSearch      Intent = "search"
	IntentViewCart    Intent = "viewCart"
	IntentAddToCart   Intent = "addToCart"
	IntentUnknown     Intent = "unknown"
)

type rule struct {
	keywords []string
	intent   Intent
}

// Rules are evaluated top to bottom, first match wins; the order encodes
// priority ("find my orders" is an orders command, not a search).
var rules = []rule{
	{[]string{"help", "what can you do"}, IntentHelp},
	{[]string{"profile", "account", "my details"}, IntentOpenProfile},
	{[]string{"order", "track"}, IntentViewOrders},
	{[]string{"search", "find", "look for", "show me"}, IntentSearch},
	{[]string{"cart", "basket"}, IntentViewCart},
}

// Words dropped when deriving a search term or product name from the
// remainder of a matched utterance.
var fillerWords = map[string]struct{}{
	"search": {}, "find": {}, "look": {}, "show": {},
	"add": {}, "put": {},
	"cart": {}, "basket": {},
	"for": {}, "to": {}, "in": {}, "me": {}, "my": {}, "the": {}, "a": {}, "an": {},
	"please": {}, "some": {},
}

// Classify normalizes the utterance and resolves it to an intent plus the
// leftover term (search text or product name). Stateless per utterance.
func Classify(command string) (Intent, string) {
	normalized := strings.ToLower(strings.TrimSpace(command))
	if normalized == "" {
		return IntentUnknown, ""
	}

	for _, r := range rules {
		if !matchesAny(normalized, r.keywords) {
			continue
		}

		intent := r.intent
		if intent == IntentViewCart && matchesAny(normalized, []string{"add", "put"}) {
			intent = IntentAddToCart
		}

		switch intent {
		case IntentSearch, IntentAddToCart:
			return intent, stripFiller(normalized)
		default:
			return intent, ""
		}
	}

	return IntentUnknown, ""
}

func matchesAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}

func stripFiller(s string) string {
	var kept []string
	for _, word := range strings.Fields(s) {
		if _, ok := fillerWords[word]; ok {
			continue
		}
		kept = append(kept, word)
	}
	return strings.Join(kept, " ")
}
