package gcpconfig

import (
	"context"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/cloudresourcemanager/v1"
	"google.golang.org/api/compute/v1"
)

func NewService(projectID string) *service {
	return &service{
		projectID: projectID,
	}
}

// GetCredentials resolves Application Default Credentials:
// GOOGLE_APPLICATION_CREDENTIALS, gcloud auth application-default login, or
// the attached service account on GCE. Cleanup mutates compute resources, so
// the full compute scope is requested.
func (s *service) GetCredentials(ctx context.Context) (*google.Credentials, error) {
	return google.FindDefaultCredentials(ctx,
		compute.ComputeScope,
		cloudresourcemanager.CloudPlatformReadOnlyScope,
	)
}

func (s *service) GetProjectID() string {
	return s.projectID
}
