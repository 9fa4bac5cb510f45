// Package sourcemaps relocates compiled TypeScript sources into a dedicated
// directory and rewrites the neighbouring declaration and JavaScript source
// maps so their sources entries follow the moved file.
package sourcemaps
