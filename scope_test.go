package highlight

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestScopeFromName(t *testing.T) {
	require.Equal(t, ScopeFunction, ScopeFromName("function"))
	require.Equal(t, ScopeConstantBuiltin, ScopeFromName("constant.builtin"))
	require.Equal(t, ScopeUnknown, ScopeFromName("not-a-real-scope"))
}

func TestScopeJSONRoundTrip(t *testing.T) {
	data, err := json.Marshal(ScopeString)
	require.NoError(t, err)
	require.Equal(t, `"string"`, string(data))

	var s Scope
	require.NoError(t, json.Unmarshal(data, &s))
	require.Equal(t, ScopeString, s)
}

func TestScopeClassName(t *testing.T) {
	require.Equal(t, "pl-c", ScopeComment.ClassName())
	require.Equal(t, "pl-s", ScopeString.ClassName())
	require.Equal(t, "", ScopeUnknown.ClassName())
}
