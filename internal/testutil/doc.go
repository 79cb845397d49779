// Package testutil holds fixtures shared by package tests: a fake process
// runner and an in-process build registry.
package testutil
