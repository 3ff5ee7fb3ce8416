package validation

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRequired(t *testing.T) {
	e := Errors{}
	require.False(t, Required("name", "   ", "name required", e))
	require.True(t, Required("email", "a@b", "email required", e))
	require.Equal(t, []string{"name required"}, e["name"])
	require.NotContains(t, e, "email")
}

func TestUUID(t *testing.T) {
	e := Errors{}
	id, ok := UUID("customerId", "3958dc9e-712f-4377-85e9-fec4b6a6442a", "pick one", e)
	require.True(t, ok)
	require.Equal(t, "3958dc9e-712f-4377-85e9-fec4b6a6442a", id.String())

	_, ok = UUID("customerId", "not-a-uuid", "pick one", e)
	require.False(t, ok)
	_, ok = UUID("customerId", "", "pick one", e)
	require.False(t, ok)
	require.Equal(t, []string{"pick one", "pick one"}, e["customerId"])
}

func TestPositiveAmount(t *testing.T) {
	e := Errors{}

	d, ok := PositiveAmount("amount", "19.99", "too low", e)
	require.True(t, ok)
	require.Equal(t, "19.99", d.String())

	for _, raw := range []string{"0", "-3.50", "abc", ""} {
		_, ok := PositiveAmount("amount", raw, "too low", e)
		require.False(t, ok, "input %q should fail", raw)
	}
	require.Len(t, e["amount"], 4)
}

func TestOneOf(t *testing.T) {
	e := Errors{}
	allowed := []string{"pending", "paid"}
	require.True(t, OneOf("status", "paid", allowed, "bad status", e))
	require.False(t, OneOf("status", "draft", allowed, "bad status", e))
	require.False(t, OneOf("status", "Paid", allowed, "bad status", e))
	require.Equal(t, []string{"bad status", "bad status"}, e["status"])
}

func TestErrorsEmpty(t *testing.T) {
	e := Errors{}
	require.True(t, e.Empty())
	e.Add("x", "boom")
	require.False(t, e.Empty())
}
