package export

// InstructionsFile is written next to the archive.
const InstructionsFile = "INSTALL.txt"

const instructions = `Installing your generated theme
===============================

1. In your store admin, open Online Store > Themes.
2. In the theme library, choose Add theme > Upload zip file.
3. Select the theme archive that came with this file and upload it.
4. When the upload finishes, choose Customize to review colors, typography
   and layout under Theme settings.
5. Replace placeholder copy and imagery in each section with your own
   content before publishing.
6. Choose Publish when you are ready to make the theme live.

The archive contains the layout, sections, templates, snippets, assets,
config and locales directories. Edit files under Online Store > Themes >
Edit code. Generated images are hosted separately; download and re-upload
them under Content > Files if you want to keep them with the store.
`

// Instructions returns the install guide shipped alongside every archive.
// It does not depend on the theme.
func Instructions() string {
	return instructions
}
