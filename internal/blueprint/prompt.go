package blueprint

const analysisPrompt = `You are a storefront information architect. Segment the rendered page below into semantic sections, in document order.

For every section return:
- "type": short kebab-case identifier (e.g. "hero", "featured-collection", "product-main", "testimonials", "newsletter")
- "purpose": one sentence on what the section does for the shopper
- "visualHierarchy": [{"elementId": "...", "importance": 1-10}] most prominent first
- "repeatingPatterns": [{"name": "...", "selector": "...", "count": n, "fields": ["..."]}]
- "inputs": [{"id": "snake_case", "kind": "text|image|url|product-reference|color|number", "purpose": "...", "default": ...}]
- "conditionalDisplay": [{"when": "condition", "show": "what appears"}]

Return a JSON array of these objects. Include the site header and footer when the page has them.`
