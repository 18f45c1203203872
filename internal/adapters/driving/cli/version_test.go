package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionCmd(t *testing.T) {
	oldVersion := version
	defer func() { version = oldVersion }()
	SetVersion("1.2.3")

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"version"})
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "indexgate version 1.2.3")
}

func TestSetVersion_IgnoresEmpty(t *testing.T) {
	oldVersion := version
	defer func() { version = oldVersion }()

	SetVersion("2.0.0")
	SetVersion("")

	assert.Equal(t, "2.0.0", version)
}
