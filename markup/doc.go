// Package markup converts a small subset of HTML into document blocks.
//
// Recognised elements:
//
//	a[href]           link
//	b, strong         bold
//	i, em             italic
//	code, tt          code
//	br                line break
//	div, p            block boundary
//	h1 to h6          heading, bold
//	img[src]          image block
//	li                list item
//	pre               preformatted code
//
// Other elements contribute their text. script and style contents are
// dropped. Text is normalised to NFC.
package markup
