package azureconfig

import (
	"fmt"
	"os"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
)

// Scheduled cleanup runs authenticate with a service principal supplied
// through these variables. Interactive runs fall back to the default chain
// (environment, managed identity, Azure CLI).
const (
	envTenantID       = "AZURE_CREDENTIALS_TENANT_ID"
	envClientID       = "AZURE_CREDENTIALS_CLIENT_ID"
	envClientSecret   = "AZURE_CREDENTIALS_CLIENT_SECRET"
	envSubscriptionID = "AZURE_CREDENTIALS_SUBSCRIPTION_ID"
	envResourceGroup  = "AZURE_RESOURCE_GROUP"
)

func NewService() (*service, error) {
	subscriptionID := os.Getenv(envSubscriptionID)
	if subscriptionID == "" {
		return nil, fmt.Errorf("%s is not set", envSubscriptionID)
	}
	resourceGroup := os.Getenv(envResourceGroup)
	if resourceGroup == "" {
		return nil, fmt.Errorf("%s is not set", envResourceGroup)
	}

	credential, err := newCredential()
	if err != nil {
		return nil, err
	}

	return &service{
		subscriptionID: subscriptionID,
		resourceGroup:  resourceGroup,
		credential:     credential,
	}, nil
}

func newCredential() (azcore.TokenCredential, error) {
	tenantID := os.Getenv(envTenantID)
	clientID := os.Getenv(envClientID)
	clientSecret := os.Getenv(envClientSecret)

	if tenantID != "" && clientID != "" && clientSecret != "" {
		credential, err := azidentity.NewClientSecretCredential(tenantID, clientID, clientSecret, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create Azure service principal credential: %w", err)
		}
		return credential, nil
	}

	credential, err := azidentity.NewDefaultAzureCredential(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create Azure credential: %w", err)
	}
	return credential, nil
}

func (s *service) GetCredential() azcore.TokenCredential {
	return s.credential
}

func (s *service) GetSubscriptionID() string {
	return s.subscriptionID
}

func (s *service) GetResourceGroup() string {
	return s.resourceGroup
}
