package queries_test

import (
	"testing"
	"time"

	"printdesk/internal/core/application/usecases/queries"
	"printdesk/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGetOrdersSinceQuery(t *testing.T) {
	t.Run("nil since lists everything", func(t *testing.T) {
		q := queries.NewGetOrdersSinceQuery(nil)
		require.NoError(t, q.Validate())
		assert.Nil(t, q.Since())
	})

	t.Run("since is kept in UTC", func(t *testing.T) {
		loc := time.FixedZone("UTC+2", 2*60*60)
		at := time.Date(2025, 3, 1, 11, 0, 0, 0, loc)

		q := queries.NewGetOrdersSinceQuery(&at)

		require.NotNil(t, q.Since())
		assert.Equal(t, time.UTC, q.Since().Location())
		assert.True(t, at.Equal(*q.Since()))
	})

	t.Run("zero value is rejected", func(t *testing.T) {
		var q queries.GetOrdersSinceQuery
		require.ErrorIs(t, q.Validate(), queries.ErrGetOrdersSinceQueryIsNotConstructed)
	})
}

func TestNewGetOrderQuery(t *testing.T) {
	q, err := queries.NewGetOrderQuery("  order_1 ")
	require.NoError(t, err)
	assert.Equal(t, "order_1", q.OrderID())

	_, err = queries.NewGetOrderQuery(" ")
	require.ErrorIs(t, err, errs.ErrValueIsRequired)

	var zero queries.GetOrderQuery
	require.ErrorIs(t, zero.Validate(), queries.ErrGetOrderQueryIsNotConstructed)
}
