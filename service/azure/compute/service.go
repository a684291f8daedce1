package azurecompute

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/compute/armcompute/v5"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/network/armnetwork/v5"
	"github.com/yugabyte/cloud-resource-cleanup/model"
	azureconfig "github.com/yugabyte/cloud-resource-cleanup/service/azure/config"
)

func NewService(config azureconfig.ConfigService) (*service, error) {
	subscriptionID := config.GetSubscriptionID()
	credential := config.GetCredential()

	vmClient, err := armcompute.NewVirtualMachinesClient(subscriptionID, credential, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create VM client: %w", err)
	}

	disksClient, err := armcompute.NewDisksClient(subscriptionID, credential, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create disks client: %w", err)
	}

	nicClient, err := armnetwork.NewInterfacesClient(subscriptionID, credential, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create network interfaces client: %w", err)
	}

	publicIPClient, err := armnetwork.NewPublicIPAddressesClient(subscriptionID, credential, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create public IP client: %w", err)
	}

	return &service{
		subscriptionID: subscriptionID,
		resourceGroup:  config.GetResourceGroup(),
		vmClient:       vmClient,
		disksClient:    disksClient,
		nicClient:      nicClient,
		publicIPClient: publicIPClient,
	}, nil
}

func (s *service) Provider() string {
	return "azure"
}

func (s *service) Kinds() []model.ResourceKind {
	return []model.ResourceKind{model.KindVM, model.KindDisk, model.KindNIC, model.KindIP}
}

func (s *service) List(ctx context.Context, kind model.ResourceKind) ([]model.ResourceRecord, error) {
	switch kind {
	case model.KindVM:
		return s.listVMs(ctx)
	case model.KindDisk:
		return s.listUnattachedDisks(ctx)
	case model.KindNIC:
		return s.listStandaloneNICs(ctx)
	case model.KindIP:
		return s.listUnassociatedPublicIPs(ctx)
	default:
		return nil, fmt.Errorf("resource kind %s is not listable on azure", kind)
	}
}

func (s *service) Delete(ctx context.Context, record model.ResourceRecord) error {
	switch record.Kind {
	case model.KindVM:
		return s.deleteVM(ctx, record)
	case model.KindDisk:
		return s.deleteDisk(ctx, record.ID)
	case model.KindNIC:
		return s.deleteNIC(ctx, record.ID)
	case model.KindIP:
		poller, err := s.publicIPClient.BeginDelete(ctx, s.resourceGroup, record.ID, nil)
		if err != nil {
			return fmt.Errorf("failed to delete public IP %s: %w", record.ID, err)
		}
		_, err = poller.PollUntilDone(ctx, nil)
		return err
	default:
		return fmt.Errorf("resource kind %s is not deletable on azure", record.Kind)
	}
}

// Stop deallocates so compute charges stop accruing. A powered-off but
// allocated VM still bills for its hardware reservation.
func (s *service) Stop(ctx context.Context, record model.ResourceRecord) error {
	if record.Kind != model.KindVM {
		return fmt.Errorf("resource kind %s is not stoppable", record.Kind)
	}
	poller, err := s.vmClient.BeginDeallocate(ctx, s.resourceGroup, record.ID, nil)
	if err != nil {
		return fmt.Errorf("failed to deallocate VM %s: %w", record.ID, err)
	}
	_, err = poller.PollUntilDone(ctx, nil)
	return err
}

func (s *service) listVMs(ctx context.Context) ([]model.ResourceRecord, error) {
	var records []model.ResourceRecord

	pager := s.vmClient.NewListPager(s.resourceGroup, nil)
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list VMs: %w", err)
		}

		for _, vm := range page.Value {
			if vm.Name == nil {
				continue
			}
			record := model.ResourceRecord{
				ID:       *vm.Name,
				Kind:     model.KindVM,
				Name:     *vm.Name,
				Tags:     tagMap(vm.Tags),
				Location: s.resourceGroup,
				Provider: "azure",
			}
			if vm.Properties != nil && vm.Properties.TimeCreated != nil {
				record.CreatedAt = *vm.Properties.TimeCreated
			}

			state, err := s.powerState(ctx, *vm.Name)
			if err != nil {
				return nil, err
			}
			record.State = state
			record.Attachments = vmAttachments(vm, s.resourceGroup)

			records = append(records, record)
		}
	}
	return records, nil
}

// powerState maps the instance view status to the normalized VM states.
func (s *service) powerState(ctx context.Context, vmName string) (string, error) {
	instanceView, err := s.vmClient.InstanceView(ctx, s.resourceGroup, vmName, nil)
	if err != nil {
		return "", fmt.Errorf("failed to get instance view for %s: %w", vmName, err)
	}

	for _, status := range instanceView.Statuses {
		if status.Code == nil || !strings.HasPrefix(*status.Code, "PowerState/") {
			continue
		}
		return normalizePowerState(strings.TrimPrefix(*status.Code, "PowerState/")), nil
	}
	return "", nil
}

func normalizePowerState(code string) string {
	switch strings.ToLower(code) {
	case "deallocated", "deallocating", "stopped", "stopping":
		return "stopped"
	default:
		return strings.ToLower(code)
	}
}

func vmAttachments(vm *armcompute.VirtualMachine, resourceGroup string) []model.ResourceRecord {
	if vm.Properties == nil {
		return nil
	}

	var attachments []model.ResourceRecord
	if profile := vm.Properties.StorageProfile; profile != nil {
		if profile.OSDisk != nil && profile.OSDisk.Name != nil {
			attachments = append(attachments, diskAttachment(*profile.OSDisk.Name, resourceGroup))
		}
		for _, dataDisk := range profile.DataDisks {
			if dataDisk.Name != nil {
				attachments = append(attachments, diskAttachment(*dataDisk.Name, resourceGroup))
			}
		}
	}
	if profile := vm.Properties.NetworkProfile; profile != nil {
		for _, nic := range profile.NetworkInterfaces {
			if nic.ID == nil {
				continue
			}
			name := extractResourceName(*nic.ID)
			attachments = append(attachments, model.ResourceRecord{
				ID:       name,
				Kind:     model.KindNIC,
				Name:     name,
				Location: resourceGroup,
				Provider: "azure",
			})
		}
	}
	return attachments
}

func diskAttachment(name, resourceGroup string) model.ResourceRecord {
	return model.ResourceRecord{
		ID:       name,
		Kind:     model.KindDisk,
		Name:     name,
		Location: resourceGroup,
		Provider: "azure",
	}
}

func (s *service) listUnattachedDisks(ctx context.Context) ([]model.ResourceRecord, error) {
	var records []model.ResourceRecord

	pager := s.disksClient.NewListByResourceGroupPager(s.resourceGroup, nil)
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list disks: %w", err)
		}

		for _, disk := range page.Value {
			if disk.Name == nil || disk.Properties == nil {
				continue
			}
			if disk.Properties.DiskState == nil || *disk.Properties.DiskState != armcompute.DiskStateUnattached {
				continue
			}

			var created time.Time
			if disk.Properties.TimeCreated != nil {
				created = *disk.Properties.TimeCreated
			}
			records = append(records, model.ResourceRecord{
				ID:        *disk.Name,
				Kind:      model.KindDisk,
				Name:      *disk.Name,
				Tags:      tagMap(disk.Tags),
				CreatedAt: created,
				Location:  s.resourceGroup,
				Provider:  "azure",
			})
		}
	}
	return records, nil
}

// listStandaloneNICs returns interfaces with no owning VM. Failed VM creates
// leave these behind; they are matched by name patterns, not tags.
func (s *service) listStandaloneNICs(ctx context.Context) ([]model.ResourceRecord, error) {
	var records []model.ResourceRecord

	pager := s.nicClient.NewListPager(s.resourceGroup, nil)
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list network interfaces: %w", err)
		}

		for _, nic := range page.Value {
			if nic.Name == nil {
				continue
			}
			if nic.Properties != nil && nic.Properties.VirtualMachine != nil {
				continue
			}
			records = append(records, model.ResourceRecord{
				ID:       *nic.Name,
				Kind:     model.KindNIC,
				Name:     *nic.Name,
				Tags:     nil,
				Location: s.resourceGroup,
				Provider: "azure",
			})
		}
	}
	return records, nil
}

func (s *service) listUnassociatedPublicIPs(ctx context.Context) ([]model.ResourceRecord, error) {
	var records []model.ResourceRecord

	pager := s.publicIPClient.NewListPager(s.resourceGroup, nil)
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list public IPs: %w", err)
		}

		for _, ip := range page.Value {
			if ip.Name == nil {
				continue
			}
			// still associated with an IP configuration
			if ip.Properties != nil && ip.Properties.IPConfiguration != nil {
				continue
			}
			record := model.ResourceRecord{
				ID:       *ip.Name,
				Kind:     model.KindIP,
				Name:     *ip.Name,
				Tags:     tagMap(ip.Tags),
				Location: s.resourceGroup,
				Provider: "azure",
			}
			if ip.Properties != nil && ip.Properties.IPAddress != nil {
				record.Name = *ip.Properties.IPAddress
			}
			records = append(records, record)
		}
	}
	return records, nil
}

// deleteVM removes the VM first and its leftover NICs and disks after the
// delete completes, since Azure refuses to remove resources that are still
// attached.
func (s *service) deleteVM(ctx context.Context, record model.ResourceRecord) error {
	poller, err := s.vmClient.BeginDelete(ctx, s.resourceGroup, record.ID, nil)
	if err != nil {
		return fmt.Errorf("failed to delete VM %s: %w", record.ID, err)
	}
	if _, err := poller.PollUntilDone(ctx, nil); err != nil {
		return fmt.Errorf("failed to delete VM %s: %w", record.ID, err)
	}

	for _, attachment := range record.Attachments {
		switch attachment.Kind {
		case model.KindNIC:
			if err := s.deleteNIC(ctx, attachment.ID); err != nil {
				return err
			}
		case model.KindDisk:
			if err := s.deleteDisk(ctx, attachment.ID); err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *service) deleteDisk(ctx context.Context, name string) error {
	poller, err := s.disksClient.BeginDelete(ctx, s.resourceGroup, name, nil)
	if err != nil {
		return fmt.Errorf("failed to delete disk %s: %w", name, err)
	}
	_, err = poller.PollUntilDone(ctx, nil)
	return err
}

func (s *service) deleteNIC(ctx context.Context, name string) error {
	poller, err := s.nicClient.BeginDelete(ctx, s.resourceGroup, name, nil)
	if err != nil {
		return fmt.Errorf("failed to delete network interface %s: %w", name, err)
	}
	_, err = poller.PollUntilDone(ctx, nil)
	return err
}

func tagMap(tags map[string]*string) map[string]string {
	result := make(map[string]string, len(tags))
	for key, value := range tags {
		if value != nil {
			result[key] = *value
		}
	}
	return result
}

// extractResourceName returns the last segment of an Azure resource ID,
// e.g. ".../providers/Microsoft.Network/networkInterfaces/my-nic" -> "my-nic".
func extractResourceName(resourceID string) string {
	parts := strings.Split(resourceID, "/")
	if len(parts) > 0 {
		return parts[len(parts)-1]
	}
	return resourceID
}
