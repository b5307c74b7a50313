package chat

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"shoestore-assistant/internal/assistant/contextbuild"
	"shoestore-assistant/internal/assistant/intent"
)

// buildPrompt packs the instruction rules, the assembled context document
// and the user's message into a single completion prompt.
func buildPrompt(message string, ctx contextbuild.Context, policyTopic intent.PolicyTopic, authenticated bool) string {
	var b strings.Builder

	b.WriteString(`You are a helpful shoe store assistant. Please follow these rules:
1. Only talk about shoes, shopping, and our store
2. If asked about weather, news, or other off-topic things, say: "` + OffTopicResponse + `"
3. Be knowledgeable about shoe brands, styles, materials, and sizing.
`)

	if policyTopic != "" {
		fmt.Fprintf(&b, `
4. The user is asking about our %s policy. Provide the correct information from the policies section of the context.
   - For return policy: Explain our %d-day return policy and conditions.
   - For shipping: Explain delivery times (%s for local city, %s outside the city, %s international) and costs.
   - For warranty: Explain our %s and options for extended coverage.
   Be friendly and thorough when explaining policies.
`,
			policyTopic,
			ctx.Policies.ReturnPolicy.Days,
			ctx.Policies.Shipping.LocalCity.Time,
			ctx.Policies.Shipping.OutsideCity.Time,
			ctx.Policies.Shipping.International.Time,
			ctx.Policies.Warranty.Standard,
		)
	}

	if authenticated {
		b.WriteString(`
5. You can provide info about the user's orders, cart, and wishlist.
6. You can help add items to cart/wishlist.
7. IMPORTANT: When asked about wishlisted items, check the userData.wishlist array. If this array exists and has items, list those items. Only say the wishlist is empty if userData.wishlist is empty or has length 0.
8. IMPORTANT: When asked about cart items, check the userData.cart array. If this array exists and has items, list those items. Only say the cart is empty if userData.cart is empty or has length 0.
`)
	} else {
		b.WriteString(`
5. Ask users to log in to access personal information.
6. Don't add items to cart/wishlist for non-logged users.
`)
	}

	b.WriteString(`9. If the user asked about shoes of a specific color, acknowledge the color in your response.
`)
	fmt.Fprintf(&b, "10. Today's date is %s. Use this when discussing return eligibility.\n", time.Now().UTC().Format("2006-01-02"))

	contextJSON, err := json.Marshal(ctx)
	if err != nil {
		contextJSON = []byte("{}")
	}

	fmt.Fprintf(&b, "\nAvailable Context: %s\n\nUSER QUERY: %s\n\nRemember to stay focused only on shoes and shopping!", contextJSON, message)

	return b.String()
}
