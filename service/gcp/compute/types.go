package gcpcompute

import (
	"google.golang.org/api/compute/v1"
)

type service struct {
	projectID     string
	computeClient *compute.Service
}
