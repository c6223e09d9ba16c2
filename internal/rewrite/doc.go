// Package rewrite corrects one known malformed link shape across a
// documentation tree.
//
// A Rewriter walks every file under a root directory, applies a Rule to the
// file content and writes the file back only when the content changed.
// Failures on individual files are collected in the Result; they never stop
// the walk.
package rewrite
