package response

// AccountInfo represents cloud account/project identity
type AccountInfo struct {
	Provider    string `json:"provider"`
	AccountID   string `json:"account_id"`
	AccountName string `json:"account_name"`
}

// Resource represents one inventoried cloud resource
type Resource struct {
	ID        string            `json:"id"`
	Kind      string            `json:"kind"`
	Name      string            `json:"name"`
	Tags      map[string]string `json:"tags,omitempty"`
	CreatedAt string            `json:"created_at,omitempty"`
	State     string            `json:"state,omitempty"`
	Location  string            `json:"location,omitempty"`
	Provider  string            `json:"provider"`

	// resources removed together with this one when it is deleted
	Attachments []Resource `json:"attachments,omitempty"`
}

// ResourceList bundles an inventory listing with its count
type ResourceList struct {
	Provider  string     `json:"provider"`
	Kind      string     `json:"kind"`
	Count     int        `json:"count"`
	Resources []Resource `json:"resources"`
}

// PreviewEntry is one resource a cleanup run would touch
type PreviewEntry struct {
	Resource Resource `json:"resource"`
	Outcome  string   `json:"outcome"`
	Reason   string   `json:"reason,omitempty"`
}

// Preview is the dry-run result of a cleanup pass
type Preview struct {
	Provider  string         `json:"provider"`
	Kind      string         `json:"kind"`
	Operation string         `json:"operation"`
	Matched   int            `json:"matched"`
	Entries   []PreviewEntry `json:"entries"`
}

// InventorySummary counts resources per provider and kind
type InventorySummary struct {
	Providers []ProviderInventory `json:"providers"`
}

// ProviderInventory is the per-provider slice of the inventory summary
type ProviderInventory struct {
	Provider string         `json:"provider"`
	Counts   map[string]int `json:"counts"`
	Error    string         `json:"error,omitempty"`
}
