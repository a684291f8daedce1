package awsec2

import (
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2/types"
	"github.com/stretchr/testify/assert"
	"github.com/yugabyte/cloud-resource-cleanup/model"
)

func TestInstanceRecord(t *testing.T) {
	launched := time.Date(2023, 5, 1, 0, 0, 0, 0, time.UTC)
	instance := types.Instance{
		InstanceId: aws.String("i-0abc"),
		LaunchTime: aws.Time(launched),
		State:      &types.InstanceState{Name: types.InstanceStateNameRunning},
		Tags: []types.Tag{
			{Key: aws.String("Name"), Value: aws.String("perf-node-1")},
			{Key: aws.String("test_task"), Value: aws.String("stress-test")},
		},
		BlockDeviceMappings: []types.InstanceBlockDeviceMapping{
			{DeviceName: aws.String("/dev/sda1"), Ebs: &types.EbsInstanceBlockDevice{VolumeId: aws.String("vol-1")}},
		},
		NetworkInterfaces: []types.InstanceNetworkInterface{
			{NetworkInterfaceId: aws.String("eni-1")},
		},
	}

	record := instanceRecord(instance, "us-west-2")

	assert.Equal(t, "i-0abc", record.ID)
	assert.Equal(t, model.KindVM, record.Kind)
	assert.Equal(t, "perf-node-1", record.Name)
	assert.Equal(t, "stress-test", record.Tags["test_task"])
	assert.Equal(t, "running", record.State)
	assert.Equal(t, launched, record.CreatedAt)
	assert.Equal(t, "us-west-2", record.Location)

	assert.Len(t, record.Attachments, 2)
	assert.Equal(t, model.KindDisk, record.Attachments[0].Kind)
	assert.Equal(t, "vol-1", record.Attachments[0].ID)
	assert.Equal(t, model.KindNIC, record.Attachments[1].Kind)
	assert.Equal(t, "eni-1", record.Attachments[1].ID)
}

func TestKindsExcludeCascadeOnlyResources(t *testing.T) {
	svc := NewService(nil)
	kinds := svc.Kinds()
	assert.NotContains(t, kinds, model.KindDisk)
	assert.NotContains(t, kinds, model.KindNIC)
	assert.Contains(t, kinds, model.KindKeypair)
}
