package response

import (
	"time"

	"github.com/yugabyte/cloud-resource-cleanup/model"
)

// ConvertAccountInfo converts model.AccountInfo to response.AccountInfo
func ConvertAccountInfo(info *model.AccountInfo) *AccountInfo {
	if info == nil {
		return nil
	}
	return &AccountInfo{
		Provider:    info.Provider,
		AccountID:   info.AccountID,
		AccountName: info.AccountName,
	}
}

// ConvertRecord converts model.ResourceRecord to response.Resource
func ConvertRecord(record model.ResourceRecord) Resource {
	resource := Resource{
		ID:       record.ID,
		Kind:     string(record.Kind),
		Name:     record.Name,
		Tags:     record.Tags,
		State:    record.State,
		Location: record.Location,
		Provider: record.Provider,
	}
	if !record.CreatedAt.IsZero() {
		resource.CreatedAt = record.CreatedAt.Format(time.RFC3339)
	}
	for _, attachment := range record.Attachments {
		resource.Attachments = append(resource.Attachments, ConvertRecord(attachment))
	}
	return resource
}

// ConvertRecords converts a listing into a ResourceList
func ConvertRecords(provider string, kind model.ResourceKind, records []model.ResourceRecord) ResourceList {
	list := ResourceList{
		Provider:  provider,
		Kind:      string(kind),
		Count:     len(records),
		Resources: []Resource{},
	}
	for _, record := range records {
		list.Resources = append(list.Resources, ConvertRecord(record))
	}
	return list
}

// ConvertResults converts dry-run operation results into a Preview
func ConvertResults(provider string, kind model.ResourceKind, op model.OperationType, results []model.OperationResult) Preview {
	preview := Preview{
		Provider:  provider,
		Kind:      string(kind),
		Operation: string(op),
		Matched:   len(results),
		Entries:   []PreviewEntry{},
	}
	for _, result := range results {
		preview.Entries = append(preview.Entries, PreviewEntry{
			Resource: ConvertRecord(result.Resource),
			Outcome:  string(result.Outcome),
			Reason:   result.Reason,
		})
	}
	return preview
}
