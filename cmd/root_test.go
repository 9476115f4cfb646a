// file: cmd/root_test.go
// version: 1.0.0
// guid: 84ae74e8-0e6a-4a99-86b3-55ac951d86d3

package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommandRegistration(t *testing.T) {
	names := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	assert.True(t, names["serve"])
	assert.True(t, names["check"])
}

func TestServeFlags(t *testing.T) {
	for _, flag := range []string{"port", "host", "read-timeout", "write-timeout"} {
		require.NotNil(t, serveCmd.Flags().Lookup(flag), flag)
	}
	require.NotNil(t, checkCmd.Flags().Lookup("requests"))
	require.NotNil(t, rootCmd.PersistentFlags().Lookup("config"))
	require.NotNil(t, rootCmd.PersistentFlags().Lookup("db"))
}
