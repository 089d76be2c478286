package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(i int) *int { return &i }

func TestValidateSiblingOrders(t *testing.T) {
	assert.NoError(t, ValidateSiblingOrders("weeks.order", nil))
	assert.NoError(t, ValidateSiblingOrders("weeks.order", []int{0, 1, 2}))

	// Sparse orderings are legal; only duplicates are not.
	assert.NoError(t, ValidateSiblingOrders("weeks.order", []int{3, 10, 7}))

	err := ValidateSiblingOrders("weeks.order", []int{0, 1, 1})
	require.Error(t, err)
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "weeks.order", vErr.Field)
}

func TestResolveSiblingOrdersAllOmitted(t *testing.T) {
	resolved, err := ResolveSiblingOrders("days.order", []*int{nil, nil, nil})
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2}, resolved)
}

func TestResolveSiblingOrdersMixed(t *testing.T) {
	// Supplied values are kept verbatim; omitted ones get the next free
	// integer, skipping over values already taken.
	resolved, err := ResolveSiblingOrders("days.order", []*int{intPtr(1), nil, intPtr(0), nil})
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 0, 3}, resolved)
}

func TestResolveSiblingOrdersRejectsDuplicates(t *testing.T) {
	_, err := ResolveSiblingOrders("steps.order", []*int{intPtr(4), intPtr(4)})
	require.Error(t, err)
	var vErr *ValidationError
	assert.ErrorAs(t, err, &vErr)
}

func TestResolveSiblingOrdersEmpty(t *testing.T) {
	resolved, err := ResolveSiblingOrders("weeks.order", nil)
	require.NoError(t, err)
	assert.Empty(t, resolved)
}
