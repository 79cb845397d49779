// Package proc runs external tools with the caller's stdio attached and
// reports their exit status. Output is streamed, never buffered.
package proc
