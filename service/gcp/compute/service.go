package gcpcompute

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/yugabyte/cloud-resource-cleanup/model"
	gcpconfig "github.com/yugabyte/cloud-resource-cleanup/service/gcp/config"
	"google.golang.org/api/compute/v1"
	"google.golang.org/api/option"
)

func NewService(ctx context.Context, config gcpconfig.ConfigService) (*service, error) {
	credentials, err := config.GetCredentials(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve GCP credentials: %w", err)
	}

	computeClient, err := compute.NewService(ctx, option.WithCredentials(credentials))
	if err != nil {
		return nil, fmt.Errorf("failed to create Compute client: %w", err)
	}

	return &service{
		projectID:     config.GetProjectID(),
		computeClient: computeClient,
	}, nil
}

func (s *service) Provider() string {
	return "gcp"
}

func (s *service) Kinds() []model.ResourceKind {
	// GCP has no standalone NIC resource and no managed key pairs
	return []model.ResourceKind{model.KindVM, model.KindDisk, model.KindIP}
}

func (s *service) List(ctx context.Context, kind model.ResourceKind) ([]model.ResourceRecord, error) {
	switch kind {
	case model.KindVM:
		return s.listInstances(ctx)
	case model.KindDisk:
		return s.listUnattachedDisks(ctx)
	case model.KindIP:
		return s.listReservedAddresses(ctx)
	default:
		return nil, fmt.Errorf("resource kind %s is not listable on gcp", kind)
	}
}

func (s *service) Delete(ctx context.Context, record model.ResourceRecord) error {
	switch record.Kind {
	case model.KindVM:
		return s.deleteInstance(ctx, record)
	case model.KindDisk:
		_, err := s.computeClient.Disks.Delete(s.projectID, record.Location, record.ID).Context(ctx).Do()
		if err != nil {
			return fmt.Errorf("failed to delete disk %s: %w", record.ID, err)
		}
		return nil
	case model.KindIP:
		var err error
		if record.Location == "global" {
			_, err = s.computeClient.GlobalAddresses.Delete(s.projectID, record.ID).Context(ctx).Do()
		} else {
			_, err = s.computeClient.Addresses.Delete(s.projectID, record.Location, record.ID).Context(ctx).Do()
		}
		if err != nil {
			return fmt.Errorf("failed to release address %s: %w", record.ID, err)
		}
		return nil
	default:
		return fmt.Errorf("resource kind %s is not deletable on gcp", record.Kind)
	}
}

func (s *service) Stop(ctx context.Context, record model.ResourceRecord) error {
	if record.Kind != model.KindVM {
		return fmt.Errorf("resource kind %s is not stoppable", record.Kind)
	}
	_, err := s.computeClient.Instances.Stop(s.projectID, record.Location, record.ID).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to stop instance %s: %w", record.ID, err)
	}
	return nil
}

func (s *service) listInstances(ctx context.Context) ([]model.ResourceRecord, error) {
	zones, err := s.zones(ctx)
	if err != nil {
		return nil, err
	}

	var records []model.ResourceRecord
	for _, zone := range zones {
		err := s.computeClient.Instances.List(s.projectID, zone).Pages(ctx, func(page *compute.InstanceList) error {
			for _, instance := range page.Items {
				records = append(records, instanceRecord(instance, zone))
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("failed to list instances in %s: %w", zone, err)
		}
	}
	return records, nil
}

func instanceRecord(instance *compute.Instance, zone string) model.ResourceRecord {
	labels := instance.Labels
	if labels == nil {
		labels = map[string]string{}
	}
	record := model.ResourceRecord{
		ID:        instance.Name,
		Kind:      model.KindVM,
		Name:      instance.Name,
		Tags:      labels,
		CreatedAt: parseTimestamp(instance.CreationTimestamp),
		State:     normalizeInstanceStatus(instance.Status),
		Location:  zone,
		Provider:  "gcp",
	}

	for _, disk := range instance.Disks {
		record.Attachments = append(record.Attachments, model.ResourceRecord{
			ID:       lastPathSegment(disk.Source),
			Kind:     model.KindDisk,
			Name:     lastPathSegment(disk.Source),
			Location: zone,
			Provider: "gcp",
		})
	}
	return record
}

func normalizeInstanceStatus(status string) string {
	switch status {
	case "TERMINATED", "STOPPING", "SUSPENDED":
		return "stopped"
	default:
		return strings.ToLower(status)
	}
}

func (s *service) listUnattachedDisks(ctx context.Context) ([]model.ResourceRecord, error) {
	zones, err := s.zones(ctx)
	if err != nil {
		return nil, err
	}

	var records []model.ResourceRecord
	for _, zone := range zones {
		err := s.computeClient.Disks.List(s.projectID, zone).Pages(ctx, func(page *compute.DiskList) error {
			for _, disk := range page.Items {
				if len(disk.Users) > 0 || disk.Status != "READY" {
					continue
				}
				records = append(records, diskRecord(disk, zone))
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("failed to list disks in %s: %w", zone, err)
		}
	}
	return records, nil
}

func diskRecord(disk *compute.Disk, zone string) model.ResourceRecord {
	labels := disk.Labels
	if labels == nil {
		labels = map[string]string{}
	}
	// the detach time is the better staleness signal when present: a disk
	// created long ago may have been in use until yesterday
	created := parseTimestamp(disk.CreationTimestamp)
	if disk.LastDetachTimestamp != "" {
		created = parseTimestamp(disk.LastDetachTimestamp)
	}
	return model.ResourceRecord{
		ID:        disk.Name,
		Kind:      model.KindDisk,
		Name:      disk.Name,
		Tags:      labels,
		CreatedAt: created,
		Location:  zone,
		Provider:  "gcp",
	}
}

// listReservedAddresses returns static addresses not bound to any resource,
// regional and global both.
func (s *service) listReservedAddresses(ctx context.Context) ([]model.ResourceRecord, error) {
	var records []model.ResourceRecord

	err := s.computeClient.Addresses.AggregatedList(s.projectID).Pages(ctx, func(page *compute.AddressAggregatedList) error {
		for _, scoped := range page.Items {
			for _, address := range scoped.Addresses {
				if address.Status != "RESERVED" {
					continue
				}
				records = append(records, addressRecord(address))
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list addresses: %w", err)
	}

	err = s.computeClient.GlobalAddresses.List(s.projectID).Pages(ctx, func(page *compute.AddressList) error {
		for _, address := range page.Items {
			if address.Status != "RESERVED" {
				continue
			}
			record := addressRecord(address)
			record.Location = "global"
			records = append(records, record)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list global addresses: %w", err)
	}

	return records, nil
}

func addressRecord(address *compute.Address) model.ResourceRecord {
	return model.ResourceRecord{
		ID:   address.Name,
		Kind: model.KindIP,
		Name: address.Address,
		// addresses carry no labels worth matching; name patterns apply
		Tags:     nil,
		Location: lastPathSegment(address.Region),
		Provider: "gcp",
	}
}

// deleteInstance marks every attached disk auto-delete first so the instance
// delete takes the disks with it.
func (s *service) deleteInstance(ctx context.Context, record model.ResourceRecord) error {
	instance, err := s.computeClient.Instances.Get(s.projectID, record.Location, record.ID).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to get instance %s: %w", record.ID, err)
	}

	for _, disk := range instance.Disks {
		if disk.AutoDelete {
			continue
		}
		_, err := s.computeClient.Instances.SetDiskAutoDelete(s.projectID, record.Location, record.ID, true, disk.DeviceName).Context(ctx).Do()
		if err != nil {
			return fmt.Errorf("failed to mark disk %s for auto-delete: %w", disk.DeviceName, err)
		}
	}

	_, err = s.computeClient.Instances.Delete(s.projectID, record.Location, record.ID).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to delete instance %s: %w", record.ID, err)
	}
	return nil
}

func (s *service) zones(ctx context.Context) ([]string, error) {
	var zones []string
	err := s.computeClient.Zones.List(s.projectID).Pages(ctx, func(page *compute.ZoneList) error {
		for _, zone := range page.Items {
			zones = append(zones, zone.Name)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list zones: %w", err)
	}
	return zones, nil
}

func lastPathSegment(url string) string {
	if url == "" {
		return ""
	}
	parts := strings.Split(url, "/")
	return parts[len(parts)-1]
}

func parseTimestamp(value string) time.Time {
	if value == "" {
		return time.Time{}
	}
	ts, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}
	}
	return ts
}
