package models

// CompileResult is the immutable record produced by one compile call.
// Callers branch on Success; no error ever crosses the compiler boundary
// as a Go error value.
type CompileResult struct {
	Success  bool            `json:"success"`
	Content  string          `json:"content,omitempty"`
	Error    string          `json:"error,omitempty"`
	Warnings []string        `json:"warnings,omitempty"`
	Metadata CompileMetadata `json:"metadata"`
}

// CompileMetadata carries per-compile diagnostics.
type CompileMetadata struct {
	OriginalLength   int      `json:"originalLength"`
	ResultLength     int      `json:"resultLength"`
	ProcessingTimeMs int64    `json:"processingTimeMs"`
	DataKeys         []string `json:"dataKeys"`
	Truncated        bool     `json:"truncated"`
}
