package main

import "os"

// Config holds environment-based configuration for all cloud providers
type Config struct {
	GCPProjectID        string
	AzureSubscriptionID string
}

// LoadConfig reads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		GCPProjectID:        os.Getenv("GCP_PROJECT_ID"),
		AzureSubscriptionID: os.Getenv("AZURE_CREDENTIALS_SUBSCRIPTION_ID"),
	}
}

// HasGCP returns true if a GCP project is configured
func (c *Config) HasGCP() bool {
	return c.GCPProjectID != ""
}

// HasAzure returns true if an Azure subscription is configured
func (c *Config) HasAzure() bool {
	return c.AzureSubscriptionID != ""
}
