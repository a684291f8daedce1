package awsec2

import (
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	awsconfig "github.com/yugabyte/cloud-resource-cleanup/service/aws/config"
)

type service struct {
	config awsconfig.ConfigService

	// one client per enabled region, created on first use
	clients map[string]*ec2.Client
	regions []string
}
