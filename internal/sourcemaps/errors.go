package sourcemaps

import "fmt"

const (
	invalidSourceMapErrorTemplateConstant = "source map %s is not valid JSON"
	relocationErrorTemplateConstant       = "failed to relocate %s to %s: %v"
	rewriteErrorTemplateConstant          = "failed to rewrite source map %s: %v"
)

// InvalidSourceMapError reports a source map whose content cannot be parsed.
type InvalidSourceMapError struct {
	Path string
}

// Error describes the invalid map.
func (invalidError InvalidSourceMapError) Error() string {
	return fmt.Sprintf(invalidSourceMapErrorTemplateConstant, invalidError.Path)
}

// RelocationError reports a source file that could not be moved.
type RelocationError struct {
	SourcePath      string
	DestinationPath string
	Cause           error
}

// Error describes the failed move.
func (relocationError RelocationError) Error() string {
	return fmt.Sprintf(relocationErrorTemplateConstant, relocationError.SourcePath, relocationError.DestinationPath, relocationError.Cause)
}

// Unwrap exposes the underlying filesystem error.
func (relocationError RelocationError) Unwrap() error {
	return relocationError.Cause
}

// RewriteError reports a source map that could not be rewritten.
type RewriteError struct {
	Path  string
	Cause error
}

// Error describes the failed rewrite.
func (rewriteError RewriteError) Error() string {
	return fmt.Sprintf(rewriteErrorTemplateConstant, rewriteError.Path, rewriteError.Cause)
}

// Unwrap exposes the underlying cause.
func (rewriteError RewriteError) Unwrap() error {
	return rewriteError.Cause
}
