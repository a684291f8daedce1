package model

// OperationType is what the run does to matched resources.
type OperationType string

const (
	OperationDelete OperationType = "delete"
	OperationStop   OperationType = "stop"
)

// Clouds lists the supported providers in CLI expansion order.
var Clouds = []string{"aws", "azure", "gcp"}

// Flags is the validated, typed form of the CLI input.
type Flags struct {
	Clouds    []string
	ProjectID string
	Resources []ResourceKind
	Operation OperationType
	DryRun    bool
	Spec      FilterSpec

	LogFile      string
	SlackWebhook string
}
