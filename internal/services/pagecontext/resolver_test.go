// File: internal/services/pagecontext/resolver_test.go
package pagecontext_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nexsuite/chatorb/internal/services/pagecontext"
)

func TestResolveKnownPaths(t *testing.T) {
	resolver := pagecontext.NewResolver()

	tests := []struct {
		path     string
		pageName string
	}{
		{"/", "Dashboard"},
		{"/crm", "CRM"},
		{"/hr", "HR"},
		{"/workflows", "Workflows"},
		{"/analytics", "Analytics"},
		{"/access", "Access Management"},
	}

	for _, tt := range tests {
		pc := resolver.Resolve(tt.path)
		assert.Equal(t, tt.pageName, pc.PageName, "path %s", tt.path)
		assert.NotEmpty(t, pc.Description)
		assert.NotEmpty(t, pc.Suggestions)
	}
}

func TestResolveUnknownPathsFallBackToDashboard(t *testing.T) {
	resolver := pagecontext.NewResolver()
	fallback := resolver.Resolve("/")

	for _, path := range []string{"", "/nope", "/crm/deals/42", "not even a path", "///"} {
		pc := resolver.Resolve(path)
		require.Equal(t, fallback.PageName, pc.PageName, "path %q", path)
		assert.NotEmpty(t, pc.Suggestions, "path %q", path)
	}
}
