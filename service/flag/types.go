package flag

import "github.com/yugabyte/cloud-resource-cleanup/model"

type service struct{}

// RawFlags carries CLI input exactly as typed, before JSON decoding and
// validation. Map- and list-valued flags arrive as JSON strings, e.g.
// --filter_tags '{"test_task": ["test", "stress-test"]}'.
type RawFlags struct {
	Cloud          string
	ProjectID      string
	Resource       string
	OperationType  string
	DryRun         bool
	ResourceStates []string
	FilterTags     string
	ExceptionTags  string
	NoTags         string
	NameRegex      string
	ExceptionRegex string
	Age            string
	DetachAge      string
	LogFile        string
	SlackWebhook   string
}

type FlagService interface {
	Parse(raw RawFlags) (model.Flags, error)
}
