package contact

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListQueryOrdersByInsertion(t *testing.T) {
	query, args, err := listQuery()
	require.NoError(t, err)
	assert.Contains(t, query, "ORDER BY seq ASC")
	assert.Empty(t, args)
}

func TestStatusQueries(t *testing.T) {
	query, args, err := updateStatusQuery("m-1", StatusClosed)
	require.NoError(t, err)
	assert.Contains(t, query, "UPDATE public.contact_messages SET status = $1 WHERE id = $2")
	assert.Contains(t, query, "RETURNING id, name, email")
	assert.Equal(t, []any{StatusClosed, "m-1"}, args)

	query, args, err = lockStatusQuery("m-1")
	require.NoError(t, err)
	assert.Equal(t, "SELECT status FROM public.contact_messages WHERE id = $1 FOR UPDATE", query)
	assert.Equal(t, []any{"m-1"}, args)
}
