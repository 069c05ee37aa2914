package main

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
)

// resetFlags restores the named flags to their defaults after the test so
// flag state never leaks between tests on the shared command vars.
func resetFlags(t *testing.T, cmd *cobra.Command, names ...string) {
	t.Helper()
	t.Cleanup(func() {
		for _, name := range names {
			f := cmd.Flags().Lookup(name)
			_ = f.Value.Set(f.DefValue)
			f.Changed = false
		}
	})
}

func TestForceOnlyOnDropAndRecreateCommands(t *testing.T) {
	// Copy commands and schedule set drop and recreate objects under --force.
	assert.NotNil(t, mailCopyCmd.Flags().Lookup("force"))
	assert.NotNil(t, regserverCopyCmd.Flags().Lookup("force"))
	assert.NotNil(t, resourcegovCopyCmd.Flags().Lookup("force"))
	assert.NotNil(t, scheduleSetCmd.Flags().Lookup("force"))

	// login set and compression set never read --force; it must not show
	// up in their help.
	assert.Nil(t, loginSetCmd.Flags().Lookup("force"))
	assert.Nil(t, compressionSetCmd.Flags().Lookup("force"))
}
