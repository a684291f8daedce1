package azurecompute

import (
	"testing"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/compute/armcompute/v5"
	"github.com/stretchr/testify/assert"
	"github.com/yugabyte/cloud-resource-cleanup/model"
)

func TestNormalizePowerState(t *testing.T) {
	assert.Equal(t, "running", normalizePowerState("running"))
	assert.Equal(t, "stopped", normalizePowerState("deallocated"))
	assert.Equal(t, "stopped", normalizePowerState("stopping"))
	assert.Equal(t, "starting", normalizePowerState("starting"))
}

func TestExtractResourceName(t *testing.T) {
	id := "/subscriptions/sub/resourceGroups/rg/providers/Microsoft.Network/networkInterfaces/my-nic"
	assert.Equal(t, "my-nic", extractResourceName(id))
	assert.Equal(t, "plain", extractResourceName("plain"))
}

func TestVMAttachments(t *testing.T) {
	vm := &armcompute.VirtualMachine{
		Properties: &armcompute.VirtualMachineProperties{
			StorageProfile: &armcompute.StorageProfile{
				OSDisk: &armcompute.OSDisk{Name: to.Ptr("vm1-os")},
				DataDisks: []*armcompute.DataDisk{
					{Name: to.Ptr("vm1-data0")},
				},
			},
			NetworkProfile: &armcompute.NetworkProfile{
				NetworkInterfaces: []*armcompute.NetworkInterfaceReference{
					{ID: to.Ptr("/subscriptions/s/resourceGroups/rg/providers/Microsoft.Network/networkInterfaces/vm1-nic")},
				},
			},
		},
	}

	attachments := vmAttachments(vm, "rg")
	assert.Len(t, attachments, 3)
	assert.Equal(t, model.KindDisk, attachments[0].Kind)
	assert.Equal(t, "vm1-os", attachments[0].ID)
	assert.Equal(t, "vm1-data0", attachments[1].ID)
	assert.Equal(t, model.KindNIC, attachments[2].Kind)
	assert.Equal(t, "vm1-nic", attachments[2].ID)
}

func TestTagMap(t *testing.T) {
	tags := tagMap(map[string]*string{
		"env":    to.Ptr("qa"),
		"absent": nil,
	})
	assert.Equal(t, map[string]string{"env": "qa"}, tags)
}
