// Package disttags prunes npm distribution tags whose names match a pattern.
package disttags
