// Package workspace models the on-disk dev-tools directory. A Workspace owns
// exactly two files, the program identity keypair and the program artifact,
// and is created once by init.
package workspace
