package patch

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type catBody struct {
	Name     Field[string]  `json:"name"`
	Weight   Field[float64] `json:"weight"`
	Filename Field[string]  `json:"filename"`
}

func TestField_DistinguishesMissingNullAndValue(t *testing.T) {
	var b catBody
	require.NoError(t, json.Unmarshal([]byte(`{"name":"Milo","filename":null}`), &b))

	name, ok := b.Name.Get()
	assert.True(t, ok)
	assert.Equal(t, "Milo", name)

	assert.False(t, b.Weight.Set)
	_, ok = b.Weight.Get()
	assert.False(t, ok)

	assert.True(t, b.Filename.Set)
	assert.True(t, b.Filename.Null)
	_, ok = b.Filename.Get()
	assert.False(t, ok)
}

func TestField_RejectsWrongType(t *testing.T) {
	var b catBody
	assert.Error(t, json.Unmarshal([]byte(`{"weight":"heavy"}`), &b))
}

func TestField_Constructors(t *testing.T) {
	v := Value(4.2)
	got, ok := v.Get()
	assert.True(t, ok)
	assert.Equal(t, 4.2, got)

	n := Null[string]()
	assert.True(t, n.Set)
	assert.True(t, n.Null)
}
