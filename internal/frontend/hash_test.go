package frontend

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wattle-lang/wattle/internal/testutil"
)

func TestModuleID_StableAcrossFormatting(t *testing.T) {
	yamlDoc := `
node: block
statements:
  - node: literal
    kind: number
    value: "5"
    type: u64
`
	// Same document as JSON with keys in a different order.
	jsonDoc := `{"statements":[{"type":"u64","value":"5","kind":"number","node":"literal"}],"node":"block"}`

	fromYAML, err := Decode([]byte(yamlDoc))
	require.NoError(t, err)
	fromJSON, err := Decode([]byte(jsonDoc))
	require.NoError(t, err)

	idYAML, err := ModuleID(fromYAML)
	require.NoError(t, err)
	idJSON, err := ModuleID(fromJSON)
	require.NoError(t, err)

	assert.Equal(t, idYAML, idJSON)
}

func TestModuleID_DistinguishesContent(t *testing.T) {
	a, err := ModuleID(testutil.BlockOf(testutil.U64("5")))
	require.NoError(t, err)
	b, err := ModuleID(testutil.BlockOf(testutil.U64("6")))
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}

func TestModuleID_Format(t *testing.T) {
	id, err := ModuleID(testutil.BlockOf())
	require.NoError(t, err)
	assert.Regexp(t, "^[0-9a-f]{64}$", id)
}

func TestModuleID_DomainSeparated(t *testing.T) {
	// Hashing the same bytes under a different domain must not collide
	// with a module ID.
	root := testutil.BlockOf(testutil.U64("5"))
	canonical, err := MarshalCanonical(EncodeDocument(root))
	require.NoError(t, err)

	id, err := ModuleID(root)
	require.NoError(t, err)
	assert.NotEqual(t, id, hashWithDomain("other/domain/v1", canonical))
	assert.Equal(t, id, hashWithDomain(DomainModule, canonical))
}
