// Package deploy coordinates workspace initialization and program
// deployment.
//
// Init fetches the newest program build and generates a program keypair,
// then writes both into a fresh workspace. It refuses to touch an existing
// workspace so a previously deployed program keypair is never replaced.
//
// Deploy requires a complete workspace, resolves the target cluster and
// hands the artifact to the external deploy tool. An optional shell hook
// runs after a successful deploy. Exit codes of the tool and the hook are
// carried back to the caller in an *ExitError.
package deploy
