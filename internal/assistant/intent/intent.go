// Package intent classifies a single chat message: off-topic detection,
// store policy questions, and cart/wishlist action requests. Classification
// is state-free, every call sees only the message text.
package intent

import (
	"regexp"
	"strings"
)

var offTopicKeywords = []string{
	"weather", "forecast", "rain", "sunny", "temperature",
	"news", "politics", "sports", "movie", "music", "dating", "restaurant",
}

var domainKeywords = []string{
	"shoe", "sneaker", "boot", "sandal", "footwear", "size", "brand",
	"nike", "adidas", "order", "purchase", "delivery", "return", "price",
	"cost", "discount", "sale", "cart", "wishlist", "buy", "color",
	"stock", "available", "find", "shipping", "policy",
}

// Messages this short get the benefit of the doubt even without a domain
// keyword.
const shortMessageLength = 10

// IsOffTopic reports whether the message is outside the shopping domain.
// An explicit off-topic keyword decides immediately; otherwise a message
// longer than the short-message threshold must contain at least one domain
// keyword.
func IsOffTopic(message string) bool {
	msg := strings.ToLower(message)

	for _, keyword := range offTopicKeywords {
		if strings.Contains(msg, keyword) {
			return true
		}
	}

	if len(message) > shortMessageLength {
		for _, keyword := range domainKeywords {
			if strings.Contains(msg, keyword) {
				return false
			}
		}
		return true
	}

	return false
}

// PolicyTopic identifies which store policy a message asks about.
type PolicyTopic string

const (
	PolicyReturn   PolicyTopic = "return"
	PolicyShipping PolicyTopic = "shipping"
	PolicyWarranty PolicyTopic = "warranty"
)

var returnKeywords = []string{
	"return", "refund", "send back", "money back", "30 day",
	"exchange", "send it back", "return policy",
}

var shippingKeywords = []string{
	"shipping", "delivery", "ship", "arrive", "when will it come",
	"how long", "shipping time", "shipping cost", "delivery time",
}

var warrantyKeywords = []string{
	"warranty", "guarantee", "repair", "replace", "broken",
	"fix", "damaged", "defective",
}

// DetectPolicyQuestion returns the policy topic the message asks about, or
// "" if none. Return questions win over shipping, shipping over warranty,
// when a message touches several.
func DetectPolicyQuestion(message string) PolicyTopic {
	msg := strings.ToLower(strings.TrimSpace(message))

	if containsAny(msg, returnKeywords) {
		return PolicyReturn
	}
	if containsAny(msg, shippingKeywords) {
		return PolicyShipping
	}
	if containsAny(msg, warrantyKeywords) {
		return PolicyWarranty
	}
	return ""
}

func containsAny(msg string, keywords []string) bool {
	for _, keyword := range keywords {
		if strings.Contains(msg, keyword) {
			return true
		}
	}
	return false
}

// ActionTarget is the collection an action operates on.
type ActionTarget string

const (
	TargetCart     ActionTarget = "cart"
	TargetWishlist ActionTarget = "wishlist"
)

// ActionVerb is what the action does to the target.
type ActionVerb string

const (
	VerbAdd    ActionVerb = "add"
	VerbRemove ActionVerb = "remove"
)

// ActionRequest is a recognized cart or wishlist command. ExplicitProduct
// is set only when the message quoted a product name outright.
type ActionRequest struct {
	Target          ActionTarget
	Verb            ActionVerb
	RawMessage      string
	ExplicitProduct string
}

var (
	explicitCartPattern     = regexp.MustCompile(`add\s+(?:to\s+)?cart:\s*["'](.+?)["']`)
	explicitWishlistPattern = regexp.MustCompile(`add\s+(?:to\s+)?wishlist:\s*["'](.+?)["']`)

	cartAddPatterns = []*regexp.Regexp{
		regexp.MustCompile(`add\s+(?:the\s+)?[\w\s\-]+\s+to\s+(?:my\s+)?cart`),
		regexp.MustCompile(`put\s+(?:the\s+)?[\w\s\-]+\s+in\s+(?:my\s+)?cart`),
		regexp.MustCompile(`buy\s+(?:the\s+)?[\w\s\-]+`),
		regexp.MustCompile(`purchase\s+(?:the\s+)?[\w\s\-]+`),
	}

	wishlistAddPatterns = []*regexp.Regexp{
		regexp.MustCompile(`add\s+(?:the\s+)?[\w\s\-]+\s+to\s+(?:my\s+)?wishlist`),
		regexp.MustCompile(`save\s+(?:the\s+)?[\w\s\-]+\s+for\s+later`),
		regexp.MustCompile(`bookmark\s+(?:the\s+)?[\w\s\-]+`),
		regexp.MustCompile(`save\s+(?:the\s+)?[\w\s\-]+\s+to\s+(?:my\s+)?wishlist`),
	}
)

// DetectActionRequest recognizes cart and wishlist commands. Precedence:
// an explicit quoted command, structured add phrases, loose add keyword
// fallbacks (suppressed when the message also says remove/delete), and
// finally remove phrasing paired with a cart or wishlist mention.
func DetectActionRequest(message string) *ActionRequest {
	msg := strings.ToLower(message)

	if m := explicitCartPattern.FindStringSubmatch(msg); m != nil {
		return &ActionRequest{Target: TargetCart, Verb: VerbAdd, RawMessage: msg, ExplicitProduct: m[1]}
	}
	if m := explicitWishlistPattern.FindStringSubmatch(msg); m != nil {
		return &ActionRequest{Target: TargetWishlist, Verb: VerbAdd, RawMessage: msg, ExplicitProduct: m[1]}
	}

	for _, pattern := range cartAddPatterns {
		if pattern.MatchString(msg) {
			return &ActionRequest{Target: TargetCart, Verb: VerbAdd, RawMessage: msg}
		}
	}
	for _, pattern := range wishlistAddPatterns {
		if pattern.MatchString(msg) {
			return &ActionRequest{Target: TargetWishlist, Verb: VerbAdd, RawMessage: msg}
		}
	}

	hasRemoveWord := strings.Contains(msg, "remove") || strings.Contains(msg, "delete")

	if (strings.Contains(msg, "add to cart") || strings.Contains(msg, "put in cart")) && !hasRemoveWord {
		return &ActionRequest{Target: TargetCart, Verb: VerbAdd, RawMessage: msg}
	}
	if (strings.Contains(msg, "add to wishlist") || strings.Contains(msg, "save for later")) && !hasRemoveWord {
		return &ActionRequest{Target: TargetWishlist, Verb: VerbAdd, RawMessage: msg}
	}

	removal := hasRemoveWord || strings.Contains(msg, "take out")
	if removal && strings.Contains(msg, "wishlist") {
		return &ActionRequest{Target: TargetWishlist, Verb: VerbRemove, RawMessage: msg}
	}
	if removal && strings.Contains(msg, "cart") {
		return &ActionRequest{Target: TargetCart, Verb: VerbRemove, RawMessage: msg}
	}

	return nil
}
