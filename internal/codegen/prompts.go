package codegen

const primaryPrompt = `Write the main product section for the theme as sections/main-product.liquid.

It renders the current product: media gallery from product.media, title, price with the money filter, variant picker, quantity input and an add to cart form opened with {% form 'product', product %}.
Read merchant settings from section.settings. Style it with the CSS custom properties from assets/theme-tokens.css (var(--color-primary), var(--font-body), ...).
Do not include a {% schema %} block; it is added afterwards.`

const supportingPrompt = `Write the section %q for the theme as sections/%s.liquid.

Read merchant settings from section.settings using exactly these setting ids: %s.
Style it with the CSS custom properties from assets/theme-tokens.css.
Do not include a {%% schema %%} block; it is added afterwards.`

const layoutPrompt = `Write layout/theme.liquid, the root document of the theme.

It must output {{ content_for_header }} inside <head> and {{ content_for_layout }} inside <main>.
Load {{ 'theme-tokens.css' | asset_url | stylesheet_tag }} and {{ 'base.css' | asset_url | stylesheet_tag }}.
Render the header with {% section 'header' %} before <main> and the footer with {% section 'footer' %} after it.`

const headerPrompt = `Write sections/header.liquid: the site header with the shop name linking to routes.root_url, the main menu from linklists.main-menu.links and a cart link showing cart.item_count.
End it with a {% schema %} block naming the section "Header".`

const footerPrompt = `Write sections/footer.liquid: the site footer with the footer menu from linklists.footer.links, a newsletter signup form opened with {% form 'customer' %} and the copyright line using shop.name.
End it with a {% schema %} block naming the section "Footer".`

const stylesheetPrompt = `Write assets/base.css: the base stylesheet of the theme.

Use only the CSS custom properties from theme-tokens.css for colors, fonts, spacing and radii. Cover resets, typography, the page container, buttons, forms, grids and the header and footer.`

const pagePrompt = `Write templates/%s.json, the page composition for the %s page.

Available section types: %s.
Only use those types. Pick the sections that suit a %s page.`

// pagePurposes describes each secondary page type.
var pagePurposes = map[string]string{
	"index":      "home",
	"collection": "collection listing",
	"page":       "generic content",
	"cart":       "cart",
}

// SecondaryPages are the page types the pages generator writes, in order.
var SecondaryPages = []string{"index", "collection", "page", "cart"}
