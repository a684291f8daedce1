package gcpconfig

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfigCarriesProjectID(t *testing.T) {
	cfg := NewService("yb-perf-testing")
	assert.Equal(t, "yb-perf-testing", cfg.GetProjectID())
}
