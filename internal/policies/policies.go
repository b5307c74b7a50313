// Package policies holds the store's static policy data embedded into
// assistant prompts and policy answers.
package policies

// ReturnPolicy describes the return window and its conditions.
type ReturnPolicy struct {
	Days       int      `json:"days"`
	Conditions []string `json:"conditions"`
	Exceptions []string `json:"exceptions"`
}

// ShippingTier is one delivery zone's time and cost.
type ShippingTier struct {
	Time string `json:"time"`
	Cost string `json:"cost"`
}

type ShippingPolicy struct {
	LocalCity     ShippingTier `json:"localCity"`
	OutsideCity   ShippingTier `json:"outsideCity"`
	International ShippingTier `json:"international"`
}

type WarrantyPolicy struct {
	Standard string `json:"standard"`
	Extended string `json:"extended"`
}

// StorePolicies is the full policy set.
type StorePolicies struct {
	ReturnPolicy ReturnPolicy   `json:"returnPolicy"`
	Shipping     ShippingPolicy `json:"shipping"`
	Warranty     WarrantyPolicy `json:"warranty"`
}

// Store returns the current store policies.
func Store() StorePolicies {
	return StorePolicies{
		ReturnPolicy: ReturnPolicy{
			Days: 30,
			Conditions: []string{
				"Item must be in original condition",
				"All tags and packaging must be intact",
				"Receipt or proof of purchase required",
			},
			Exceptions: []string{
				"Undergarments cannot be returned for hygiene reasons",
				"Sale items marked as 'final sale' cannot be returned",
			},
		},
		Shipping: ShippingPolicy{
			LocalCity:     ShippingTier{Time: "3 days", Cost: "Free for orders above $50"},
			OutsideCity:   ShippingTier{Time: "2 weeks", Cost: "$10 flat rate"},
			International: ShippingTier{Time: "1 month", Cost: "Calculated based on weight and destination"},
		},
		Warranty: WarrantyPolicy{
			Standard: "90 days manufacturer warranty",
			Extended: "1 year extended warranty available for purchase",
		},
	}
}
