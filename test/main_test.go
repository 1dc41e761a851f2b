package test

import (
	"os"
	"testing"

	"raymode7/internal/config"
)

var shippedConfig *config.Config

// TestMain loads the shipped configuration once for all integration tests
func TestMain(m *testing.M) {
	shippedConfig = config.MustLoadConfig("../config.yaml")
	os.Exit(m.Run())
}
