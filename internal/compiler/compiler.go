// Package compiler is the single entry point for prompt compilation. It
// orchestrates data preprocessing, template rendering, the post-processing
// pipeline and final validation, and is the error boundary for all of
// them: Compile always returns a result object, never an error value and
// never a panic.
package compiler

import (
	"fmt"
	"log"
	"regexp"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/promptforge/prompt-forge/internal/models"
	"github.com/promptforge/prompt-forge/internal/postprocess"
	"github.com/promptforge/prompt-forge/internal/renderer"
)

// Generator identifies this compiler in injected template metadata.
const Generator = "prompt-forge/0.1.0"

// Options configures one compile call.
type Options struct {
	EnablePostProcessing bool
	Limits               models.LengthLimits
	OptimizeKorean       bool
	EnableValidation     bool
}

// DefaultOptions returns the production configuration. MinLength is left
// at zero on purpose; call sites set their own lower bound.
func DefaultOptions() Options {
	return Options{
		EnablePostProcessing: true,
		Limits:               models.LengthLimits{Max: postprocess.DefaultMaxLength},
		OptimizeKorean:       true,
		EnableValidation:     true,
	}
}

// Stats reports compile counters and cache effectiveness.
type Stats struct {
	Total      int64   `json:"total"`
	Successful int64   `json:"successful"`
	Failed     int64   `json:"failed"`
	CacheHits  int64   `json:"cacheHits"`
	CacheSize  int     `json:"cacheSize"`
	HitRate    float64 `json:"hitRate"`
}

// Compiler compiles templates against selection data. The parsed-template
// cache is shared across callers; per-entry reads and writes are atomic,
// so concurrent Compile calls need no external locking.
type Compiler struct {
	cache *templateCache

	mu         sync.Mutex
	total      int64
	successful int64
	failed     int64
	cacheHits  int64
}

// New creates a compiler with an empty template cache.
func New() *Compiler {
	return &Compiler{cache: newTemplateCache()}
}

var placeholderRe = regexp.MustCompile(`\[[A-Za-z0-9_.-]+\]`)

// Compile renders a template against data and applies post-processing and
// validation per opts. All failure modes are reported through the result;
// callers branch on result.Success.
func (c *Compiler) Compile(template string, data map[string]any, opts Options) (result models.CompileResult) {
	start := time.Now()
	context := preprocess(data)
	keys := dataKeys(data)

	defer func() {
		if r := recover(); r != nil {
			result = c.failure(fmt.Sprintf("internal compile error: %v", r), template, keys, start)
		}
	}()

	nodes, err := c.parseCached(template)
	if err != nil {
		return c.failure(err.Error(), template, keys, start)
	}

	content := renderer.Eval(nodes, context)
	originalLength := len([]rune(content))
	truncated := false
	if opts.EnablePostProcessing {
		content, truncated = postprocess.Run(content, postprocess.Options{
			MaxLength: opts.Limits.Max,
			MinLength: opts.Limits.Min,
			Korean:    opts.OptimizeKorean,
		})
	}

	var warnings []string
	if opts.EnableValidation {
		if strings.TrimSpace(content) == "" {
			return c.failure("compilation produced an empty result", template, keys, start)
		}
		warnings = validate(content, opts.Limits)
	}

	c.mu.Lock()
	c.total++
	c.successful++
	c.mu.Unlock()

	return models.CompileResult{
		Success:  true,
		Content:  content,
		Warnings: warnings,
		Metadata: models.CompileMetadata{
			OriginalLength:   originalLength,
			ResultLength:     len([]rune(content)),
			ProcessingTimeMs: time.Since(start).Milliseconds(),
			DataKeys:         keys,
			Truncated:        truncated,
		},
	}
}

// parseCached returns the parsed AST for a template, memoized by content
// hash.
func (c *Compiler) parseCached(template string) ([]renderer.Node, error) {
	key := HashTemplate(template)
	if nodes, ok := c.cache.get(key); ok {
		c.mu.Lock()
		c.cacheHits++
		c.mu.Unlock()
		return nodes, nil
	}
	nodes, err := renderer.Parse(template)
	if err != nil {
		return nil, err
	}
	c.cache.put(key, nodes)
	return nodes, nil
}

func (c *Compiler) failure(message string, template string, keys []string, start time.Time) models.CompileResult {
	c.mu.Lock()
	c.total++
	c.failed++
	c.mu.Unlock()

	return models.CompileResult{
		Success: false,
		Error:   message,
		Metadata: models.CompileMetadata{
			OriginalLength:   len([]rune(template)),
			ProcessingTimeMs: time.Since(start).Milliseconds(),
			DataKeys:         keys,
		},
	}
}

// validate produces non-fatal warnings: out-of-bound length and leftover
// placeholders signal incomplete authoring but still return content to the
// caller. Visible incompleteness beats silent data loss.
func validate(content string, limits models.LengthLimits) []string {
	var warnings []string
	length := len([]rune(content))

	if limits.Min > 0 && length < limits.Min {
		warnings = append(warnings, fmt.Sprintf("result length %d is below the configured minimum %d", length, limits.Min))
	}
	if limits.Max > 0 && length > limits.Max {
		warnings = append(warnings, fmt.Sprintf("result length %d exceeds the configured maximum %d", length, limits.Max))
	}
	if found := placeholderRe.FindAllString(content, 3); len(found) > 0 {
		warnings = append(warnings, fmt.Sprintf("unresolved placeholders remain: %s", strings.Join(found, ", ")))
	}

	for _, w := range warnings {
		log.Printf("compile warning: %s", w)
	}
	return warnings
}

// preprocess copies the caller's data, replaces nil and empty values with
// their bracketed placeholder form, and injects the _meta object. An
// explicitly-present-but-empty field is treated exactly like an absent
// one: it surfaces as [key] in the output.
func preprocess(data map[string]any) map[string]any {
	context := make(map[string]any, len(data)+1)
	for k, v := range data {
		if isEmptyValue(v) {
			context[k] = "[" + k + "]"
			continue
		}
		context[k] = v
	}
	context["_meta"] = map[string]any{
		"timestamp": time.Now().Format(time.RFC3339),
		"generator": Generator,
	}
	return context
}

func isEmptyValue(v any) bool {
	if v == nil {
		return true
	}
	s, ok := v.(string)
	return ok && strings.TrimSpace(s) == ""
}

func dataKeys(data map[string]any) []string {
	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Stats returns a snapshot of the compile counters.
func (c *Compiler) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	s := Stats{
		Total:      c.total,
		Successful: c.successful,
		Failed:     c.failed,
		CacheHits:  c.cacheHits,
		CacheSize:  c.cache.size(),
	}
	if c.total > 0 {
		s.HitRate = float64(c.cacheHits) / float64(c.total)
	}
	return s
}

// ClearCache drops every cached template.
func (c *Compiler) ClearCache() {
	c.cache.clear()
}

// InvalidateCache removes one cached template by its content hash.
func (c *Compiler) InvalidateCache(key string) {
	c.cache.invalidate(key)
}
