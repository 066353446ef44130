package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenerCommand(t *testing.T) {
	tests := []struct {
		goos string
		want []string
	}{
		{goos: "darwin", want: []string{"open", "/tmp/report.html"}},
		{goos: "linux", want: []string{"xdg-open", "/tmp/report.html"}},
		{goos: "windows", want: []string{"cmd", "/c", "start", "", "/tmp/report.html"}},
	}
	for _, tt := range tests {
		cmd, err := openerCommand(tt.goos, "/tmp/report.html")
		require.NoError(t, err, tt.goos)
		assert.Equal(t, tt.want, cmd.Args, tt.goos)
	}

	_, err := openerCommand("plan9", "/tmp/report.html")
	assert.EqualError(t, err, "opening files is not supported on plan9")
}
