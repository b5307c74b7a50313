package intent

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsOffTopic(t *testing.T) {
	tests := []struct {
		name     string
		message  string
		expected bool
	}{
		{
			name:     "weather question",
			message:  "what is the weather like today",
			expected: true,
		},
		{
			name:     "politics mention",
			message:  "let's talk politics",
			expected: true,
		},
		{
			name:     "shoe question",
			message:  "do you have nike sneakers",
			expected: false,
		},
		{
			name:     "long message without domain keyword",
			message:  "tell me a story about dragons and knights",
			expected: true,
		},
		{
			name:     "short message tolerated",
			message:  "hello",
			expected: false,
		},
		{
			name:     "short gibberish tolerated",
			message:  "hm ok",
			expected: false,
		},
		{
			name:     "long message with domain keyword",
			message:  "I am wondering what would be a good price for a gift",
			expected: false,
		},
		{
			name:     "off-topic keyword wins over domain keyword",
			message:  "what's the weather, also do you sell nike shoes",
			expected: true,
		},
		{
			name:     "news mention wins despite cart talk",
			message:  "any news today? and show me my cart",
			expected: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsOffTopic(tt.message))
		})
	}
}

func TestDetectPolicyQuestion(t *testing.T) {
	tests := []struct {
		name     string
		message  string
		expected PolicyTopic
	}{
		{
			name:     "return question",
			message:  "how do I return these",
			expected: PolicyReturn,
		},
		{
			name:     "refund keyword",
			message:  "can I get a refund",
			expected: PolicyReturn,
		},
		{
			name:     "shipping question",
			message:  "how long does delivery take",
			expected: PolicyShipping,
		},
		{
			name:     "warranty question",
			message:  "my shoes arrived damaged",
			expected: PolicyWarranty,
		},
		{
			name:     "return wins over shipping",
			message:  "can I return an order after shipping",
			expected: PolicyReturn,
		},
		{
			name:     "shipping wins over warranty",
			message:  "shipping options for a replacement",
			expected: PolicyShipping,
		},
		{
			name:     "not a policy question",
			message:  "show me red sneakers",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DetectPolicyQuestion(tt.message))
		})
	}
}

func TestDetectActionRequestExplicitCommand(t *testing.T) {
	got := DetectActionRequest(`add to cart: "Air Max 90"`)

	require.NotNil(t, got)
	assert.Equal(t, TargetCart, got.Target)
	assert.Equal(t, VerbAdd, got.Verb)
	assert.Equal(t, "air max 90", got.ExplicitProduct)
}

func TestDetectActionRequestExplicitWishlist(t *testing.T) {
	got := DetectActionRequest(`add wishlist: 'Ultraboost 22'`)

	require.NotNil(t, got)
	assert.Equal(t, TargetWishlist, got.Target)
	assert.Equal(t, VerbAdd, got.Verb)
	assert.Equal(t, "ultraboost 22", got.ExplicitProduct)
}

func TestDetectActionRequestStructuredPhrases(t *testing.T) {
	tests := []struct {
		name    string
		message string
		target  ActionTarget
		verb    ActionVerb
	}{
		{
			name:    "add to cart",
			message: "add the air max 90 to my cart",
			target:  TargetCart,
			verb:    VerbAdd,
		},
		{
			name:    "put in cart",
			message: "put the ultraboost in my cart",
			target:  TargetCart,
			verb:    VerbAdd,
		},
		{
			name:    "buy phrasing",
			message: "buy the court vision low",
			target:  TargetCart,
			verb:    VerbAdd,
		},
		{
			name:    "add to wishlist",
			message: "add the air max 270 to my wishlist",
			target:  TargetWishlist,
			verb:    VerbAdd,
		},
		{
			name:    "save for later",
			message: "save the red-hawls classic for later",
			target:  TargetWishlist,
			verb:    VerbAdd,
		},
		{
			name:    "remove from cart",
			message: "remove the air max 90 from my cart",
			target:  TargetCart,
			verb:    VerbRemove,
		},
		{
			name:    "take out of wishlist",
			message: "take out the ultraboost from my wishlist",
			target:  TargetWishlist,
			verb:    VerbRemove,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DetectActionRequest(tt.message)
			require.NotNil(t, got)
			assert.Equal(t, tt.target, got.Target)
			assert.Equal(t, tt.verb, got.Verb)
			assert.Empty(t, got.ExplicitProduct)
		})
	}
}

func TestDetectActionRequestRemoveNotMistakenForAdd(t *testing.T) {
	got := DetectActionRequest("please remove the add to cart item")

	require.NotNil(t, got)
	assert.Equal(t, VerbRemove, got.Verb)
	assert.Equal(t, TargetCart, got.Target)
}

func TestDetectActionRequestNone(t *testing.T) {
	assert.Nil(t, DetectActionRequest("what running shoes do you recommend"))
	assert.Nil(t, DetectActionRequest("tell me about your shipping"))
}
