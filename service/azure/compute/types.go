package azurecompute

import (
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/compute/armcompute/v5"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/network/armnetwork/v5"
)

type service struct {
	subscriptionID string
	resourceGroup  string

	vmClient       *armcompute.VirtualMachinesClient
	disksClient    *armcompute.DisksClient
	nicClient      *armnetwork.InterfacesClient
	publicIPClient *armnetwork.PublicIPAddressesClient
}
