// Package postprocess applies an ordered sequence of deterministic text
// transforms to rendered prompt output. Each stage is a total, idempotent
// function over strings; the pipeline never fails once rendering has
// succeeded. Stages are kept as separately named functions rather than one
// fused pass so each rule stays independently testable.
package postprocess

// Options configures the pipeline.
type Options struct {
	// MaxLength is the hard output cap in runes; <= 0 disables it.
	MaxLength int
	// MinLength triggers the guidance suffix when the result is shorter;
	// <= 0 disables it. There is no single default, call sites choose
	// their own.
	MinLength int
	// Korean enables the Korean text optimization stage.
	Korean bool
}

// DefaultOptions returns the production configuration.
func DefaultOptions() Options {
	return Options{
		MaxLength: DefaultMaxLength,
		MinLength: 0,
		Korean:    true,
	}
}

// Run applies the pipeline stages in their required order and reports
// whether the length stage truncated the text.
func Run(text string, opts Options) (string, bool) {
	text = StandardizeMarkdown(text)
	text = CleanWhitespace(text)
	if opts.Korean {
		text = OptimizeKorean(text)
	}
	text = NormalizeStructure(text)
	text, truncated := EnforceLength(text, opts.MaxLength, opts.MinLength)
	text = CleanupMetadata(text)
	return text, truncated
}
