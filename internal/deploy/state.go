package deploy

// State is the orchestrator's position in the init/deploy lifecycle.
type State string

const (
	StateUninitialized State = "uninitialized"
	StateInitialized   State = "initialized"
	StateDeploying     State = "deploying"
	StateDeployed      State = "deployed"
	StateFailed        State = "failed"
)

