package azureconfig

import (
	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
)

type service struct {
	subscriptionID string
	resourceGroup  string
	credential     azcore.TokenCredential
}

type ConfigService interface {
	GetCredential() azcore.TokenCredential
	GetSubscriptionID() string
	GetResourceGroup() string
}
