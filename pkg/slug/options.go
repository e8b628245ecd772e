package slug

// Option configures slug generation.
type Option func(*options)

type options struct {
	replace    map[string]string
	separator  string
	stripChars string
	maxLength  int
	lowercase  bool
	stripTags  bool
}

func defaultOptions() *options {
	return &options{
		separator: "-",
		lowercase: true,
	}
}

// MaxLength limits the slug to n characters.
// Default: 0 (unlimited)
func MaxLength(n int) Option {
	return func(o *options) {
		o.maxLength = max(n, 0)
	}
}

// Separator sets the string placed between words.
// Default: "-"
func Separator(s string) Option {
	return func(o *options) {
		o.separator = s
	}
}

// Lowercase controls whether the result is lowercased.
// Default: true
func Lowercase(v bool) Option {
	return func(o *options) {
		o.lowercase = v
	}
}

// StripChars removes every listed character before the slug is built.
func StripChars(chars string) Option {
	return func(o *options) {
		o.stripChars = chars
	}
}

// CustomReplace applies replacements before the slug is built.
// Longer keys are replaced first.
func CustomReplace(replacements map[string]string) Option {
	return func(o *options) {
		o.replace = replacements
	}
}
