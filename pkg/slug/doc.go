// Package slug generates URL-safe slugs from arbitrary strings with Unicode normalization.
//
// This package converts text to web-friendly tokens by folding Latin diacritics
// to ASCII, collapsing every run of other characters into a single separator and
// trimming separators from both ends. Output is always ASCII.
//
// Basic usage:
//
//	import "github.com/dmitrymomot/uniq/pkg/slug"
//
//	s := slug.Make("Hello, World!")
//	// Output: "hello-world"
//
//	s = slug.Make("Café & Restaurant")
//	// Output: "cafe-restaurant"
//
// # Configuration Options
//
// MaxLength limits the slug length. A separator left at the end by the cut is removed:
//
//	slug.Make("Cut off cleanly", slug.MaxLength(8))
//	// Output: "cut-off"
//
// Separator sets the string used between words:
//
//	slug.Make("Product Name", slug.Separator("_"))
//	// Output: "product_name"
//
// Lowercase controls case conversion:
//
//	slug.Make("Product Name", slug.Lowercase(false))
//	// Output: "Product-Name"
//
// StripChars removes specific characters before processing, so they do not split words:
//
//	slug.Make("Don't stop", slug.StripChars("'"))
//	// Output: "dont-stop"
//
// CustomReplace applies string replacements before slugification:
//
//	slug.Make("Fish & Chips", slug.CustomReplace(map[string]string{"&": "and"}))
//	// Output: "fish-and-chips"
//
// StripTags removes HTML markup first, for titles that come from rich text:
//
//	slug.Make("<b>Fish</b> &amp; Chips", slug.StripTags())
//	// Output: "fish-chips"
//
// # Guarantees
//
// With the default options Make is deterministic and idempotent, and the result
// never exceeds MaxLength. Use the unique package to resolve collisions between slugs.
package slug
