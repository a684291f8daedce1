package gcpidentity

import (
	"context"
	"fmt"

	"github.com/yugabyte/cloud-resource-cleanup/model"
	gcpconfig "github.com/yugabyte/cloud-resource-cleanup/service/gcp/config"
	"google.golang.org/api/cloudresourcemanager/v1"
	"google.golang.org/api/option"
)

func NewService(ctx context.Context, config gcpconfig.ConfigService) (*service, error) {
	credentials, err := config.GetCredentials(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve GCP credentials: %w", err)
	}

	client, err := cloudresourcemanager.NewService(ctx, option.WithCredentials(credentials))
	if err != nil {
		return nil, err
	}

	return &service{
		projectID: config.GetProjectID(),
		client:    client,
	}, nil
}

// GetAccountInfo implements service.IdentityService
func (s *service) GetAccountInfo(ctx context.Context) (*model.AccountInfo, error) {
	project, err := s.GetProjectInfo(ctx)
	if err != nil {
		return nil, err
	}

	return &model.AccountInfo{
		Provider:    "gcp",
		AccountID:   s.projectID,
		AccountName: project.Name,
	}, nil
}

// GetProjectInfo returns detailed GCP project information
func (s *service) GetProjectInfo(ctx context.Context) (*cloudresourcemanager.Project, error) {
	return s.client.Projects.Get(s.projectID).Context(ctx).Do()
}
