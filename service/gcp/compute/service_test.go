package gcpcompute

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/yugabyte/cloud-resource-cleanup/model"
	"google.golang.org/api/compute/v1"
)

func TestInstanceRecord(t *testing.T) {
	instance := &compute.Instance{
		Name:              "perf-node-1",
		Status:            "RUNNING",
		CreationTimestamp: "2023-05-01T00:00:00Z",
		Labels:            map[string]string{"test_task": "stress-test"},
		Disks: []*compute.AttachedDisk{
			{Source: "https://www.googleapis.com/compute/v1/projects/p/zones/us-central1-a/disks/perf-node-1-boot"},
		},
	}

	record := instanceRecord(instance, "us-central1-a")

	assert.Equal(t, "perf-node-1", record.ID)
	assert.Equal(t, "running", record.State)
	assert.Equal(t, "stress-test", record.Tags["test_task"])
	assert.Equal(t, time.Date(2023, 5, 1, 0, 0, 0, 0, time.UTC), record.CreatedAt)
	assert.Equal(t, "us-central1-a", record.Location)
	assert.Len(t, record.Attachments, 1)
	assert.Equal(t, "perf-node-1-boot", record.Attachments[0].ID)
	assert.Equal(t, model.KindDisk, record.Attachments[0].Kind)
}

func TestNormalizeInstanceStatus(t *testing.T) {
	assert.Equal(t, "running", normalizeInstanceStatus("RUNNING"))
	assert.Equal(t, "stopped", normalizeInstanceStatus("TERMINATED"))
	assert.Equal(t, "stopped", normalizeInstanceStatus("SUSPENDED"))
	assert.Equal(t, "provisioning", normalizeInstanceStatus("PROVISIONING"))
}

func TestDiskRecordPrefersDetachTime(t *testing.T) {
	disk := &compute.Disk{
		Name:                "scratch",
		CreationTimestamp:   "2023-01-01T00:00:00Z",
		LastDetachTimestamp: "2023-05-20T00:00:00Z",
	}

	record := diskRecord(disk, "us-central1-a")
	assert.Equal(t, time.Date(2023, 5, 20, 0, 0, 0, 0, time.UTC), record.CreatedAt)

	disk.LastDetachTimestamp = ""
	record = diskRecord(disk, "us-central1-a")
	assert.Equal(t, time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC), record.CreatedAt)
}

func TestAddressRecordIsNameMatched(t *testing.T) {
	address := &compute.Address{
		Name:    "leftover-ip",
		Address: "34.1.2.3",
		Status:  "RESERVED",
		Region:  "https://www.googleapis.com/compute/v1/projects/p/regions/us-central1",
	}

	record := addressRecord(address)
	assert.Equal(t, "leftover-ip", record.ID)
	assert.Equal(t, "34.1.2.3", record.Name)
	assert.Nil(t, record.Tags)
	assert.Equal(t, "us-central1", record.Location)
}
