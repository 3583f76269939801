package commands_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/SscSPs/budget_reconciler/internal/apperrors"
	"github.com/SscSPs/budget_reconciler/internal/commands"
	"github.com/SscSPs/budget_reconciler/internal/middleware"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runReconcilectl(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := commands.NewRootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestToken_IssuesWorkspaceScopedToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "cli-test-secret")
	t.Setenv("JWT_ISSUER", "cli-test")

	out, err := runReconcilectl(t, "token", "--subject", "user-7", "-w", "ws-1", "-w", "ws-2")
	require.NoError(t, err)

	claims := &middleware.WorkspaceClaims{}
	_, err = jwt.ParseWithClaims(strings.TrimSpace(out), claims, func(*jwt.Token) (any, error) {
		return []byte("cli-test-secret"), nil
	}, jwt.WithIssuer("cli-test"))
	require.NoError(t, err)
	assert.Equal(t, "user-7", claims.Subject)
	assert.Equal(t, []string{"ws-1", "ws-2"}, claims.Workspaces)
}

func TestToken_RequiresSubject(t *testing.T) {
	_, err := runReconcilectl(t, "token", "-w", "ws-1")
	assert.Error(t, err)
}

// Argument errors surface before any database connection is attempted.
func TestReports_RejectInvalidArguments(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "grid reversed window", args: []string{"grid", "-w", "ws-1", "--from", "2026-05", "--to", "2026-01"}},
		{name: "grid unknown currency", args: []string{"grid", "-w", "ws-1", "--from", "2026-01", "--to", "2026-03", "--currency", "QQQ"}},
		{name: "fx malformed month", args: []string{"fx", "-w", "ws-1", "--month", "2026/02"}},
		{name: "balances malformed date", args: []string{"balances", "-w", "ws-1", "--as-of", "March"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runReconcilectl(t, tt.args...)
			assert.ErrorIs(t, err, apperrors.ErrValidation)
		})
	}
}

func TestReports_RequireWorkspace(t *testing.T) {
	_, err := runReconcilectl(t, "grid", "--from", "2026-01", "--to", "2026-03")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "workspace")
}
