package rbac

import (
	"testing"

	"go-bossboard/internal/rbac/infra"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestService(t *testing.T) Service {
	t.Helper()
	e, err := infra.NewEnforcer("")
	require.NoError(t, err)
	return NewService(e, zap.NewNop())
}

func TestService_Enforce(t *testing.T) {
	svc := newTestService(t)

	tests := []struct {
		role, resource, action string
		want                   bool
	}{
		{"viewer", "worker", "read", true},
		{"viewer", "worker", "create", false},
		{"viewer", "payroll", "execute", false},
		{"accountant", "worker", "delete", true},
		{"accountant", "dashboard", "read", true},
		{"accountant", "payroll", "execute", false},
		{"accountant", "company", "update", false},
		{"owner", "payroll", "execute", true},
		{"owner", "company", "update", true},
		{"owner", "spending", "update", true},
		{"stranger", "worker", "read", false},
		{"", "worker", "read", false},
	}

	for _, tc := range tests {
		t.Run(tc.role+"/"+tc.resource+"/"+tc.action, func(t *testing.T) {
			allowed, err := svc.Enforce(EnforceRequest{Role: tc.role, CompanyID: "c-1", Resource: tc.resource, Action: tc.action})
			assert.NoError(t, err)
			assert.Equal(t, tc.want, allowed)
		})
	}
}

func TestService_Permissions(t *testing.T) {
	svc := newTestService(t)

	perms, err := svc.Permissions("accountant")
	require.NoError(t, err)

	assert.Contains(t, perms, PermissionResponse{Resource: "worker", Action: "*"})
	assert.Contains(t, perms, PermissionResponse{Resource: "*", Action: "read"})
	assert.NotContains(t, perms, PermissionResponse{Resource: "payroll", Action: "*"})
}
