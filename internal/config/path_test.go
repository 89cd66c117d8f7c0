package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	t.Setenv("CASHFLOW_TEST_DIR", "/opt/cashflow")

	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "empty", in: "", want: ""},
		{name: "plain path", in: "/var/lib/cashflow.db", want: "/var/lib/cashflow.db"},
		{name: "tilde prefix", in: "~/data/cashflow.db", want: filepath.Join(home, "data/cashflow.db")},
		{name: "bare tilde", in: "~", want: home},
		{name: "env var", in: "$CASHFLOW_TEST_DIR/cashflow.db", want: "/opt/cashflow/cashflow.db"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExpandPath(tt.in))
		})
	}
}
