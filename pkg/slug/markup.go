package slug

import (
	"html"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	stripPolicy     *bluemonday.Policy
	stripPolicyOnce sync.Once
)

// StripTags removes HTML markup before the slug is built. Text inside
// script and style elements is dropped, entities are decoded, and tag
// boundaries act as word breaks.
//
//	slug.Make("<h1>Go&nbsp;Tips</h1><p>Part 2</p>", slug.StripTags()) // "go-tips-part-2"
func StripTags() Option {
	return func(o *options) {
		o.stripTags = true
	}
}

func stripMarkup(s string) string {
	stripPolicyOnce.Do(func() {
		stripPolicy = bluemonday.StrictPolicy()
		stripPolicy.AddSpaceWhenStrippingTag(true)
	})
	return html.UnescapeString(stripPolicy.Sanitize(s))
}
