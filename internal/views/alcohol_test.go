package views_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/afgalvez/madrid-accidents/internal/domain"
	"github.com/afgalvez/madrid-accidents/internal/views"
)

func TestAlcoholByHour(t *testing.T) {
	tab := table(
		rec(func(r *domain.Record) { r.Alcohol = true; r.Weekday = "Viernes"; r.Hour = 23 }),
		rec(func(r *domain.Record) { r.Alcohol = true; r.Weekday = "Viernes"; r.Hour = 23 }),
		rec(func(r *domain.Record) { r.Alcohol = true; r.Weekday = "Sábado"; r.Hour = 3 }),
		rec(func(r *domain.Record) { r.Alcohol = false; r.Weekday = "Sábado"; r.Hour = 3 }),
		rec(func(r *domain.Record) { r.Alcohol = true; r.Weekday = "Martes"; r.Hour = 3 }),
		rec(func(r *domain.Record) { r.Alcohol = true; r.Weekday = "Sábado"; r.Hour = -1 }),
	)

	t.Run("counts per selected day and hour", func(t *testing.T) {
		result := views.AlcoholByHour(tab, []string{"Viernes", "Sábado"})
		require.False(t, result.Empty)
		require.Len(t, result.Series, 2)

		friday := result.Series[0]
		assert.Equal(t, "Viernes", friday.Day)
		assert.Equal(t, 2, friday.Counts[23])
		assert.Equal(t, 0, friday.Counts[0], "absent hours are implicit zeros")

		saturday := result.Series[1]
		assert.Equal(t, "Sábado", saturday.Day)
		assert.Equal(t, 1, saturday.Counts[3], "negative-test and hourless rows don't count")
	})

	t.Run("series order is chronological regardless of selection order", func(t *testing.T) {
		result := views.AlcoholByHour(tab, []string{"Sábado", "Viernes"})
		require.Len(t, result.Series, 2)
		assert.Equal(t, "Viernes", result.Series[0].Day)
		assert.Equal(t, "Sábado", result.Series[1].Day)
	})

	t.Run("selected day without matches keeps an all-zero series", func(t *testing.T) {
		result := views.AlcoholByHour(tab, []string{"Viernes", "Domingo"})
		require.Len(t, result.Series, 2)
		assert.Equal(t, "Domingo", result.Series[1].Day)
		assert.Equal(t, [24]int{}, result.Series[1].Counts)
	})

	t.Run("empty selection is explicitly empty, not all-zero series", func(t *testing.T) {
		result := views.AlcoholByHour(tab, nil)
		assert.True(t, result.Empty)
		assert.Empty(t, result.Series)
	})

	t.Run("non-weekend day names are ignored", func(t *testing.T) {
		// Tuesday has a positive-test row, but it is not selectable here.
		result := views.AlcoholByHour(tab, []string{"Martes"})
		assert.True(t, result.Empty)
	})

	t.Run("selection matching zero records is explicitly empty", func(t *testing.T) {
		sober := table(
			rec(func(r *domain.Record) { r.Alcohol = false; r.Weekday = "Viernes"; r.Hour = 23 }),
		)
		result := views.AlcoholByHour(sober, []string{"Viernes"})
		assert.True(t, result.Empty)
	})
}
