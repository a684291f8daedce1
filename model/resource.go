package model

import "time"

// ResourceKind identifies the normalized type of a cloud resource.
type ResourceKind string

const (
	KindVM      ResourceKind = "vm"
	KindDisk    ResourceKind = "disk"
	KindNIC     ResourceKind = "nic"
	KindIP      ResourceKind = "ip"
	KindKeypair ResourceKind = "keypair"
)

// ResourceKinds lists every kind the cleanup supports, in CLI expansion order.
var ResourceKinds = []ResourceKind{KindVM, KindDisk, KindNIC, KindIP, KindKeypair}

// ResourceRecord is an immutable snapshot of a cloud resource taken at
// listing time. A nil Tags map marks kinds with no provider-side tagging
// model (AWS keypairs, GCP reserved IPs, Azure NICs); those are matched by
// name patterns instead of tag rules.
type ResourceRecord struct {
	ID        string
	Kind      ResourceKind
	Name      string
	Tags      map[string]string
	CreatedAt time.Time
	State     string // normalized lowercase, VMs only
	Location  string // region, zone, or resource group, per provider
	Provider  string

	// Attachments are resources exclusively owned by this record (a VM's
	// disks and NICs). They ride along in the owner's delete operation and
	// are never acted on independently.
	Attachments []ResourceRecord
}

// Outcome is the terminal state of one resource within a run.
type Outcome string

const (
	OutcomeDeleted Outcome = "deleted"
	OutcomeStopped Outcome = "stopped"
	OutcomeSkipped Outcome = "skipped"
	OutcomeFailed  Outcome = "failed"
)

// OperationResult records what happened to a single resource.
type OperationResult struct {
	Resource ResourceRecord
	Outcome  Outcome
	Reason   string
}

// RunSummary aggregates outcomes across one or more runs.
type RunSummary struct {
	Deleted int
	Stopped int
	Skipped int
	Failed  int
}

// Add folds a batch of results into the summary.
func (s *RunSummary) Add(results []OperationResult) {
	for _, r := range results {
		switch r.Outcome {
		case OutcomeDeleted:
			s.Deleted++
		case OutcomeStopped:
			s.Stopped++
		case OutcomeSkipped:
			s.Skipped++
		case OutcomeFailed:
			s.Failed++
		}
	}
}

// Total returns the number of resources accounted for.
func (s RunSummary) Total() int {
	return s.Deleted + s.Stopped + s.Skipped + s.Failed
}

// RunReport bundles the results of one provider/kind/operation combination
// for the reporter and notifiers.
type RunReport struct {
	Provider  string
	Kind      ResourceKind
	Operation OperationType
	DryRun    bool
	Results   []OperationResult
}
