package preview

// Mock data is deterministic so previews are comparable between runs.
// Prices are in cents, as the money filter expects.

func productFixture() map[string]any {
	return map[string]any{
		"id":               7001,
		"title":            "Linen Overshirt",
		"handle":           "linen-overshirt",
		"url":              "/products/linen-overshirt",
		"vendor":           "Preview Goods",
		"type":             "Shirts",
		"description":      "<p>Relaxed overshirt in washed linen with horn buttons.</p>",
		"price":            8900,
		"compare_at_price": 11900,
		"available":        true,
		"featured_image":   "/preview/images/linen-overshirt-1.png",
		"images":           []any{"/preview/images/linen-overshirt-1.png", "/preview/images/linen-overshirt-2.png"},
		"media": []any{
			map[string]any{"id": 1, "media_type": "image", "src": "/preview/images/linen-overshirt-1.png", "alt": "Front"},
			map[string]any{"id": 2, "media_type": "image", "src": "/preview/images/linen-overshirt-2.png", "alt": "Back"},
		},
		"options": []any{"Size"},
		"variants": []any{
			map[string]any{"id": 1, "title": "S", "price": 8900, "available": true},
			map[string]any{"id": 2, "title": "M", "price": 8900, "available": true},
			map[string]any{"id": 3, "title": "L", "price": 8900, "available": false},
		},
		"selected_or_first_available_variant": map[string]any{"id": 1, "title": "S", "price": 8900, "available": true},
		"tags": []any{"linen", "summer"},
	}
}

func collectionProducts() []any {
	names := []string{"Linen Overshirt", "Canvas Tote", "Wool Beanie", "Leather Belt"}
	prices := []int{8900, 3400, 2900, 5500}
	out := make([]any, len(names))
	for i, name := range names {
		handle := handleize(name)
		out[i] = map[string]any{
			"id":             7001 + i,
			"title":          name,
			"handle":         handle,
			"url":            "/products/" + handle,
			"price":          prices[i],
			"available":      true,
			"featured_image": "/preview/images/" + handle + ".png",
		}
	}
	return out
}

func collectionFixture() map[string]any {
	products := collectionProducts()
	return map[string]any{
		"id":             501,
		"title":          "New Arrivals",
		"handle":         "new-arrivals",
		"url":            "/collections/new-arrivals",
		"description":    "<p>Fresh pieces for the season.</p>",
		"products":       products,
		"products_count": len(products),
		"image":          "/preview/images/new-arrivals.png",
	}
}

func cartFixture() map[string]any {
	return map[string]any{
		"item_count":  2,
		"total_price": 12300,
		"items": []any{
			map[string]any{"title": "Linen Overshirt - M", "quantity": 1, "price": 8900, "line_price": 8900, "url": "/products/linen-overshirt", "image": "/preview/images/linen-overshirt.png"},
			map[string]any{"title": "Canvas Tote", "quantity": 1, "price": 3400, "line_price": 3400, "url": "/products/canvas-tote", "image": "/preview/images/canvas-tote.png"},
		},
	}
}

func emptyCart() map[string]any {
	return map[string]any{"item_count": 0, "total_price": 0, "items": []any{}}
}

// globals are present on every page.
func globals() map[string]any {
	return map[string]any{
		"shop": map[string]any{
			"name":     "Preview Store",
			"currency": "USD",
			"url":      "https://preview.example",
		},
		"routes": map[string]any{
			"root_url":        "/",
			"cart_url":        "/cart",
			"cart_add_url":    "/cart/add",
			"search_url":      "/search",
			"collections_url": "/collections",
			"account_url":     "/account",
		},
		"linklists": map[string]any{
			"main-menu": map[string]any{"links": []any{
				map[string]any{"title": "Shop", "url": "/collections/all"},
				map[string]any{"title": "About", "url": "/pages/about"},
			}},
			"footer": map[string]any{"links": []any{
				map[string]any{"title": "Shipping", "url": "/pages/shipping"},
				map[string]any{"title": "Contact", "url": "/pages/contact"},
			}},
		},
		"collections": map[string]any{"all": collectionFixture()},
		"request":     map[string]any{"locale": map[string]any{"iso_code": "en"}},
		"cart":        emptyCart(),
	}
}

// fixtures maps page types to their page-specific objects.
var fixtures = map[string]func() map[string]any{
	"product": func() map[string]any {
		return map[string]any{"product": productFixture(), "template": "product"}
	},
	"home": func() map[string]any {
		return map[string]any{"template": "index"}
	},
	"collection": func() map[string]any {
		return map[string]any{"collection": collectionFixture(), "template": "collection"}
	},
	"cart": func() map[string]any {
		return map[string]any{"cart": cartFixture(), "template": "cart"}
	},
	"page": func() map[string]any {
		return map[string]any{
			"template": "page",
			"page":     map[string]any{"title": "About us", "handle": "about", "content": "<p>We make things slowly.</p>"},
		}
	},
}

// MockData returns the complete fixture for a page type.
func MockData(pageType string) (map[string]any, bool) {
	f, ok := fixtures[pageType]
	if !ok {
		return nil, false
	}
	data := globals()
	for k, v := range f() {
		data[k] = v
	}
	return data, true
}
