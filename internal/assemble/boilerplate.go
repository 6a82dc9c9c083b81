package assemble

// baseSettingsSchema is used when no settings schema was generated.
func baseSettingsSchema() []any {
	return []any{
		map[string]any{
			"name":                    "theme_info",
			"theme_name":              "Themeforge",
			"theme_version":           "1.0.0",
			"theme_author":            "Themeforge",
			"theme_documentation_url": "https://shopify.dev/docs/storefronts/themes",
			"theme_support_url":       "https://shopify.dev/docs/storefronts/themes",
		},
	}
}

func baseSettingsData() map[string]any {
	return map[string]any{
		"current": map[string]any{},
		"presets": map[string]any{"Default": map[string]any{}},
	}
}

// baseLocale holds the strings generated sections and the preview renderer
// look up through the t filter.
func baseLocale() map[string]any {
	return map[string]any{
		"general": map[string]any{
			"search":          map[string]any{"title": "Search"},
			"newsletter":      map[string]any{"label": "Email", "subscribe": "Subscribe"},
			"pagination":      map[string]any{"previous": "Previous", "next": "Next"},
			"skip_to_content": "Skip to content",
		},
		"products": map[string]any{
			"product": map[string]any{
				"add_to_cart": "Add to cart",
				"sold_out":    "Sold out",
				"quantity":    "Quantity",
				"price":       "Price",
			},
		},
		"cart": map[string]any{
			"title":    "Your cart",
			"checkout": "Check out",
			"empty":    "Your cart is empty",
			"subtotal": "Subtotal",
		},
	}
}
