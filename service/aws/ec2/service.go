package awsec2

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/ec2/types"
	"github.com/yugabyte/cloud-resource-cleanup/model"
	awsconfig "github.com/yugabyte/cloud-resource-cleanup/service/aws/config"
)

// defaultRegion only bootstraps the DescribeRegions call; every listing and
// mutation afterwards goes through a region-specific client.
const defaultRegion = "us-east-1"

func NewService(config awsconfig.ConfigService) *service {
	return &service{
		config:  config,
		clients: map[string]*ec2.Client{},
	}
}

func (s *service) Provider() string {
	return "aws"
}

func (s *service) Kinds() []model.ResourceKind {
	// disks and NICs are only removed through their owning VM
	return []model.ResourceKind{model.KindVM, model.KindIP, model.KindKeypair}
}

func (s *service) List(ctx context.Context, kind model.ResourceKind) ([]model.ResourceRecord, error) {
	regions, err := s.enabledRegions(ctx)
	if err != nil {
		return nil, err
	}

	var records []model.ResourceRecord
	for _, region := range regions {
		client, err := s.client(ctx, region)
		if err != nil {
			return nil, err
		}

		var regional []model.ResourceRecord
		switch kind {
		case model.KindVM:
			regional, err = s.listInstances(ctx, client, region)
		case model.KindIP:
			regional, err = s.listUnusedAddresses(ctx, client, region)
		case model.KindKeypair:
			regional, err = s.listKeyPairs(ctx, client, region)
		default:
			return nil, fmt.Errorf("resource kind %s is not listable on aws", kind)
		}
		if err != nil {
			return nil, fmt.Errorf("region %s: %w", region, err)
		}
		records = append(records, regional...)
	}
	return records, nil
}

func (s *service) Delete(ctx context.Context, record model.ResourceRecord) error {
	client, err := s.client(ctx, record.Location)
	if err != nil {
		return err
	}

	switch record.Kind {
	case model.KindVM:
		// termination releases the instance's volumes and interfaces with it
		_, err = client.TerminateInstances(ctx, &ec2.TerminateInstancesInput{
			InstanceIds: []string{record.ID},
		})
	case model.KindIP:
		_, err = client.ReleaseAddress(ctx, &ec2.ReleaseAddressInput{
			AllocationId: aws.String(record.ID),
		})
	case model.KindKeypair:
		_, err = client.DeleteKeyPair(ctx, &ec2.DeleteKeyPairInput{
			KeyPairId: aws.String(record.ID),
		})
	default:
		return fmt.Errorf("resource kind %s is not deletable on aws", record.Kind)
	}
	if err != nil {
		return fmt.Errorf("failed to delete %s %s: %w", record.Kind, record.ID, err)
	}
	return nil
}

func (s *service) Stop(ctx context.Context, record model.ResourceRecord) error {
	if record.Kind != model.KindVM {
		return fmt.Errorf("resource kind %s is not stoppable", record.Kind)
	}
	client, err := s.client(ctx, record.Location)
	if err != nil {
		return err
	}
	_, err = client.StopInstances(ctx, &ec2.StopInstancesInput{
		InstanceIds: []string{record.ID},
	})
	if err != nil {
		return fmt.Errorf("failed to stop instance %s: %w", record.ID, err)
	}
	return nil
}

func (s *service) enabledRegions(ctx context.Context) ([]string, error) {
	if s.regions != nil {
		return s.regions, nil
	}

	client, err := s.client(ctx, defaultRegion)
	if err != nil {
		return nil, err
	}
	output, err := client.DescribeRegions(ctx, &ec2.DescribeRegionsInput{})
	if err != nil {
		return nil, fmt.Errorf("failed to describe regions: %w", err)
	}

	for _, region := range output.Regions {
		s.regions = append(s.regions, aws.ToString(region.RegionName))
	}
	return s.regions, nil
}

func (s *service) client(ctx context.Context, region string) (*ec2.Client, error) {
	if client, ok := s.clients[region]; ok {
		return client, nil
	}
	cfg, err := s.config.GetAWSCfg(ctx, region)
	if err != nil {
		return nil, fmt.Errorf("failed to load aws config for %s: %w", region, err)
	}
	client := ec2.NewFromConfig(cfg)
	s.clients[region] = client
	return client, nil
}

func (s *service) listInstances(ctx context.Context, client *ec2.Client, region string) ([]model.ResourceRecord, error) {
	input := &ec2.DescribeInstancesInput{
		Filters: []types.Filter{
			{
				Name:   aws.String("instance-state-name"),
				Values: []string{"pending", "running", "stopping", "stopped"},
			},
		},
	}

	var records []model.ResourceRecord
	paginator := ec2.NewDescribeInstancesPaginator(client, input)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		for _, reservation := range page.Reservations {
			for _, instance := range reservation.Instances {
				records = append(records, instanceRecord(instance, region))
			}
		}
	}
	return records, nil
}

func instanceRecord(instance types.Instance, region string) model.ResourceRecord {
	tags := tagMap(instance.Tags)
	record := model.ResourceRecord{
		ID:        aws.ToString(instance.InstanceId),
		Kind:      model.KindVM,
		Name:      tags["Name"],
		Tags:      tags,
		CreatedAt: aws.ToTime(instance.LaunchTime),
		State:     strings.ToLower(string(instance.State.Name)),
		Location:  region,
		Provider:  "aws",
	}

	for _, mapping := range instance.BlockDeviceMappings {
		if mapping.Ebs == nil {
			continue
		}
		record.Attachments = append(record.Attachments, model.ResourceRecord{
			ID:       aws.ToString(mapping.Ebs.VolumeId),
			Kind:     model.KindDisk,
			Name:     aws.ToString(mapping.DeviceName),
			Location: region,
			Provider: "aws",
		})
	}
	for _, nic := range instance.NetworkInterfaces {
		record.Attachments = append(record.Attachments, model.ResourceRecord{
			ID:       aws.ToString(nic.NetworkInterfaceId),
			Kind:     model.KindNIC,
			Location: region,
			Provider: "aws",
		})
	}
	return record
}

func (s *service) listUnusedAddresses(ctx context.Context, client *ec2.Client, region string) ([]model.ResourceRecord, error) {
	output, err := client.DescribeAddresses(ctx, nil)
	if err != nil {
		return nil, err
	}

	var records []model.ResourceRecord
	for _, address := range output.Addresses {
		if address.AssociationId != nil {
			continue
		}
		records = append(records, model.ResourceRecord{
			ID:       aws.ToString(address.AllocationId),
			Kind:     model.KindIP,
			Name:     aws.ToString(address.PublicIp),
			Tags:     tagMap(address.Tags),
			Location: region,
			Provider: "aws",
		})
	}
	return records, nil
}

func (s *service) listKeyPairs(ctx context.Context, client *ec2.Client, region string) ([]model.ResourceRecord, error) {
	output, err := client.DescribeKeyPairs(ctx, &ec2.DescribeKeyPairsInput{})
	if err != nil {
		return nil, err
	}

	var records []model.ResourceRecord
	for _, keyPair := range output.KeyPairs {
		records = append(records, model.ResourceRecord{
			ID:        aws.ToString(keyPair.KeyPairId),
			Kind:      model.KindKeypair,
			Name:      aws.ToString(keyPair.KeyName),
			Tags:      nil, // key pairs are matched by name patterns
			CreatedAt: aws.ToTime(keyPair.CreateTime),
			Location:  region,
			Provider:  "aws",
		})
	}
	return records, nil
}

func tagMap(tags []types.Tag) map[string]string {
	result := make(map[string]string, len(tags))
	for _, tag := range tags {
		result[aws.ToString(tag.Key)] = aws.ToString(tag.Value)
	}
	return result
}
