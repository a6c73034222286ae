package manifest

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMergeDisjointSets(t *testing.T) {
	base := DepSet{"react": "^18.0.0"}
	adapter := DepSet{"viem": "^2.0.0"}

	merged, conflicts := Merge(base, adapter)
	assert.Empty(t, conflicts)
	assert.Equal(t, "^18.0.0", merged["react"])
	assert.Equal(t, "^2.0.0", merged["viem"])
	assert.Len(t, merged, 2)
}

func TestMergeAdapterWinsAndReports(t *testing.T) {
	base := DepSet{"viem": "^1.21.0"}
	adapter := DepSet{"viem": "^2.0.0"}

	merged, conflicts := Merge(base, adapter)
	assert.Equal(t, "^2.0.0", merged["viem"], "adapter declaration takes precedence")
	require.Len(t, conflicts, 1)
	assert.Equal(t, "viem", conflicts[0].Name)
	assert.True(t, conflicts[0].Disjoint, "^1.x and ^2.x cannot both be satisfied")
	assert.Contains(t, conflicts[0].String(), "adapter wins")
}

func TestMergeOverlappingRanges(t *testing.T) {
	base := DepSet{"react": "^18.0.0"}
	adapter := DepSet{"react": "^18.2.0"}

	merged, conflicts := Merge(base, adapter)
	assert.Equal(t, "^18.2.0", merged["react"])
	require.Len(t, conflicts, 1)
	assert.False(t, conflicts[0].Disjoint, "^18.0.0 and ^18.2.0 overlap at 18.2.x")
}

func TestMergeConflictOrderDeterministic(t *testing.T) {
	base := DepSet{"viem": "^1.0.0", "wagmi": "^1.0.0", "react": "^17.0.0", "vite": "^4.0.0"}
	adapter := DepSet{"wagmi": "^2.12.0", "viem": "^2.0.0", "vite": "^5.4.0", "react": "^18.0.0"}

	want := []string{"react", "viem", "vite", "wagmi"}
	for i := 0; i < 20; i++ {
		_, conflicts := Merge(base, adapter)
		require.Len(t, conflicts, 4)
		for j, c := range conflicts {
			assert.Equal(t, want[j], c.Name, "run %d", i)
		}
	}
}

func TestMergeIdenticalRangeIsNotAConflict(t *testing.T) {
	_, conflicts := Merge(DepSet{"react": "^18.0.0"}, DepSet{"react": "^18.0.0"})
	assert.Empty(t, conflicts)
}

func TestMergeUnparseableRange(t *testing.T) {
	merged, conflicts := Merge(
		DepSet{"leftpad": "workspace:*"},
		DepSet{"leftpad": "^1.0.0"},
	)
	assert.Equal(t, "^1.0.0", merged["leftpad"])
	require.Len(t, conflicts, 1)
	assert.False(t, conflicts[0].Disjoint, "unknown range syntax is reported but not flagged disjoint")
}

func TestRenderDeterministic(t *testing.T) {
	deps := DepSet{"viem": "^2.0.0", "react": "^18.0.0", "wagmi": "^2.12.0"}
	dev := DepSet{"vite": "^5.4.0", "typescript": "^5.5.0"}

	first, err := Render("DAI Transfer", deps, dev)
	require.NoError(t, err)
	second, err := Render("DAI Transfer", deps, dev)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	var parsed struct {
		Name         string            `json:"name"`
		Private      bool              `json:"private"`
		Dependencies map[string]string `json:"dependencies"`
	}
	require.NoError(t, json.Unmarshal(first, &parsed))
	assert.Equal(t, "dai-transfer", parsed.Name)
	assert.True(t, parsed.Private)
	assert.Equal(t, "^2.0.0", parsed.Dependencies["viem"])
	assert.Equal(t, "^18.0.0", parsed.Dependencies["react"])
}

func TestSanitizeName(t *testing.T) {
	tests := []struct{ in, want string }{
		{"DAI Transfer", "dai-transfer"},
		{"my.form_v2", "my.form_v2"},
		{"--weird--", "weird"},
		{"", "txforge-form"},
		{"///", "txforge-form"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, sanitizeName(tt.in), "input %q", tt.in)
	}
}
