package schema

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptional(t *testing.T) {
	var absent Optional[int]
	assert.False(t, absent.Set)
	assert.False(t, absent.HasValue())
	assert.Nil(t, absent.Ptr())

	null := Null[int]()
	assert.True(t, null.Set)
	assert.False(t, null.HasValue())
	assert.Nil(t, null.Ptr())

	some := Some(1869)
	assert.True(t, some.HasValue())
	require.NotNil(t, some.Ptr())
	assert.Equal(t, 1869, *some.Ptr())
}

func TestOptional_PtrReturnsCopy(t *testing.T) {
	o := Some(1)
	p := o.Ptr()
	*p = 2
	assert.Equal(t, 1, o.Value)
}

func TestOptional_UnmarshalJSON(t *testing.T) {
	var o Optional[int]
	require.NoError(t, o.UnmarshalJSON([]byte("null")))
	assert.Equal(t, Null[int](), o)

	require.NoError(t, o.UnmarshalJSON([]byte("1869")))
	assert.Equal(t, Some(1869), o)

	assert.Error(t, o.UnmarshalJSON([]byte(`"x"`)))
}

func TestOptional_MarshalJSON(t *testing.T) {
	data, err := json.Marshal(struct {
		A Optional[string] `json:"a"`
		B Optional[string] `json:"b"`
	}{A: Some("x"), B: Null[string]()})
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":"x","b":null}`, string(data))
}
