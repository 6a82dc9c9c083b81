package capture

// sectionsScript lists section-like elements with their document-relative
// bounding boxes.
const sectionsScript = `() => {
	const out = [];
	const seen = new Set();

	function isValidCSSClass(cls) {
		if (!cls || cls.length === 0) return false;
		if (/^[0-9]/.test(cls)) return false;
		if (/^-[0-9]/.test(cls)) return false;
		if (/[.:#\[\]()>~+*\/\\]/.test(cls)) return false;
		return true;
	}

	function getSelector(el) {
		if (el.id && isValidCSSClass(el.id)) return '#' + el.id;
		if (el.className && typeof el.className === 'string') {
			const valid = el.className.trim().split(/\s+/).filter(isValidCSSClass).slice(0, 2);
			if (valid.length > 0) {
				const selector = el.tagName.toLowerCase() + '.' + valid.join('.');
				try {
					if (document.querySelectorAll(selector).length === 1) return selector;
				} catch (e) {}
			}
		}
		const parent = el.parentElement;
		if (parent && parent !== document.body) {
			const index = Array.from(parent.children).indexOf(el) + 1;
			return getSelector(parent) + ' > ' + el.tagName.toLowerCase() + ':nth-child(' + index + ')';
		}
		return el.tagName.toLowerCase();
	}

	const query = [
		'header', 'nav', 'main > section', 'main > div', 'section', 'footer', 'aside',
		'[data-section-type]', '[data-section-id]', '[role="banner"]', '[role="contentinfo"]',
		'[class*="hero"]', '[class*="banner"]', '[class*="product"]', '[class*="collection"]',
		'[class*="testimonial"]', '[class*="newsletter"]', '[class*="featured"]'
	].join(',');

	document.querySelectorAll(query).forEach(el => {
		const rect = el.getBoundingClientRect();
		if (rect.width < 200 || rect.height < 40) return;
		const selector = getSelector(el);
		if (seen.has(selector)) return;
		seen.add(selector);
		out.push({
			tag: el.tagName.toLowerCase(),
			id: el.id || undefined,
			classes: (typeof el.className === 'string' ? el.className.trim().split(/\s+/).filter(isValidCSSClass).slice(0, 6) : []),
			selector: selector,
			role: el.getAttribute('role') || undefined,
			text: (el.innerText || '').replace(/\s+/g, ' ').trim().slice(0, 160),
			box: { x: rect.left + window.scrollX, y: rect.top + window.scrollY, width: rect.width, height: rect.height }
		});
	});

	out.sort((a, b) => a.box.y - b.box.y);
	return out;
}`

// stylesheetScript concatenates readable CSS rules. Cross-origin sheets throw
// on cssRules access and are skipped.
const stylesheetScript = `() => {
	const limit = 200000;
	let css = '';
	for (const sheet of Array.from(document.styleSheets)) {
		let rules;
		try { rules = sheet.cssRules; } catch (e) { continue; }
		if (!rules) continue;
		for (const rule of Array.from(rules)) {
			css += rule.cssText + '\n';
			if (css.length > limit) return css.slice(0, limit);
		}
	}
	return css;
}`

const titleScript = `() => document.title`

// spaScript checks for common SPA framework markers.
const spaScript = `() => {
	if (window.__REACT_DEVTOOLS_GLOBAL_HOOK__ || document.querySelector('[data-reactroot]') || document.querySelector('#__next')) return true;
	if (window.__VUE__ || document.querySelector('[data-v-app]')) return true;
	if (window.ng || document.querySelector('[ng-version]') || document.querySelector('app-root')) return true;
	if (document.querySelector('[class*="svelte-"]')) return true;
	return false;
}`
