package tokens

const visionPrompt = `You are a design-system analyst. Study the screenshot of a storefront web page and extract its design tokens.

Return one JSON object with these keys (omit a key when you cannot see it, never invent values):
{
  "colors": {"primary": "#RRGGBB", "secondary": "#RRGGBB", "accent": "#RRGGBB", "background": "#RRGGBB", "text": "#RRGGBB", "muted": "#RRGGBB", "border": "#RRGGBB", "palette": ["#RRGGBB", "..."]},
  "typography": {"fontFamilies": ["body family", "heading family"], "headingSizes": {"h1": "48px", "h2": "36px", "h3": "24px"}, "bodySizes": {"base": "16px", "small": "14px"}, "weights": [400, 700]},
  "spacing": {"xs": "4px", "sm": "8px", "md": "16px", "lg": "32px", "xl": "64px"},
  "borderRadius": {"sm": "4px", "md": "8px", "lg": "16px"},
  "shadows": {"sm": "0 1px 2px rgba(0,0,0,0.05)", "md": "0 4px 6px rgba(0,0,0,0.1)"},
  "buttons": [{"name": "primary", "background": "#RRGGBB", "text": "#RRGGBB", "border": "#RRGGBB", "radius": "4px", "padding": "12px 24px"}]
}`

const stylesheetPrompt = `You are a design-system analyst. Read the CSS below, taken from a storefront web page, and extract the design tokens it declares (custom properties first, then the most frequently used literal values).

Use exactly the same JSON shape as this example and omit keys the stylesheet does not define:
{"colors": {"primary": "#RRGGBB", "background": "#RRGGBB", "text": "#RRGGBB", "palette": []}, "typography": {"fontFamilies": [], "headingSizes": {}, "bodySizes": {}, "weights": []}, "spacing": {}, "borderRadius": {}, "shadows": {}, "buttons": []}

CSS:
`
