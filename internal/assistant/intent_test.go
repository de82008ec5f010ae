package assistant_test

import (
	"testing"

	"go-grocer-api/internal/assistant"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		command string
		intent  assistant.Intent
		term    string
	}{
		{"help", assistant.IntentHelp, ""},
		{"what can you do", assistant.IntentHelp, ""},
		{"open my profile", assistant.IntentOpenProfile, ""},
		{"go to my account", assistant.IntentOpenProfile, ""},
		{"show my orders", assistant.IntentViewOrders, ""},
		{"track my order", assistant.IntentViewOrders, ""},
		{"search for rice", assistant.IntentSearch, "rice"},
		{"find toor dal", assistant.IntentSearch, "toor dal"},
		{"show me sunflower oil", assistant.IntentSearch, "sunflower oil"},
		{"open my cart", assistant.IntentViewCart, ""},
		{"add rice to cart", assistant.IntentAddToCart, "rice"},
		{"put some atta in my basket", assistant.IntentAddToCart, "atta"},
		{"turn off the lights", assistant.IntentUnknown, ""},
		{"", assistant.IntentUnknown, ""},
	}

	for _, tc := range cases {
		t.Run(tc.command, func(t *testing.T) {
			intent, term := assistant.Classify(tc.command)
			assert.Equal(t, tc.intent, intent)
			assert.Equal(t, tc.term, term)
		})
	}
}

func TestClassify_Normalization(t *testing.T) {
	intent, term := assistant.Classify("  SEARCH FOR Basmati Rice  ")
	assert.Equal(t, assistant.IntentSearch, intent)
	assert.Equal(t, "basmati rice", term)
}

// "find my orders" must resolve to orders, not search: rule order is the
// priority encoding.
func TestClassify_OrderBeatsSearch(t *testing.T) {
	intent, _ := assistant.Classify("find my orders")
	assert.Equal(t, assistant.IntentViewOrders, intent)
}

func TestClassify_HelpBeatsEverything(t *testing.T) {
	intent, _ := assistant.Classify("help me search the cart")
	assert.Equal(t, assistant.IntentHelp, intent)
}

func TestClassify_EmptyRemainder(t *testing.T) {
	intent, term := assistant.Classify("find ")
	assert.Equal(t, assistant.IntentSearch, intent)
	assert.Empty(t, term)
}
