// Package registry talks to the program build registry. It resolves the
// newest build of a program and downloads the compiled artifact. Nothing is
// retried and nothing is written to disk here.
package registry
