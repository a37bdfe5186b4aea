package showtime

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/farellandr/fyyur/internal/models"
)

var now = time.Date(2026, 5, 1, 20, 0, 0, 0, time.UTC)

func showAt(d time.Duration) models.Show {
	return models.Show{StartTime: now.Add(d)}
}

func TestPartition_SplitsAroundNow(t *testing.T) {
	shows := []models.Show{
		showAt(-48 * time.Hour),
		showAt(72 * time.Hour),
		showAt(-time.Hour),
		showAt(time.Hour),
	}

	past, upcoming := Partition(shows, now)

	require.Len(t, past, 2)
	require.Len(t, upcoming, 2)
	assert.Equal(t, now.Add(-time.Hour), past[0].StartTime, "most recent past show first")
	assert.Equal(t, now.Add(-48*time.Hour), past[1].StartTime)
	assert.Equal(t, now.Add(time.Hour), upcoming[0].StartTime, "soonest upcoming show first")
	assert.Equal(t, now.Add(72*time.Hour), upcoming[1].StartTime)
}

func TestPartition_BoundaryIsUpcoming(t *testing.T) {
	past, upcoming := Partition([]models.Show{showAt(0)}, now)

	assert.Empty(t, past)
	assert.Len(t, upcoming, 1)
}

func TestPartition_Empty(t *testing.T) {
	past, upcoming := Partition(nil, now)

	assert.NotNil(t, past)
	assert.NotNil(t, upcoming)
	assert.Empty(t, past)
	assert.Empty(t, upcoming)
}

func TestPartition_DoesNotReorderInput(t *testing.T) {
	shows := []models.Show{showAt(2 * time.Hour), showAt(time.Hour)}

	Partition(shows, now)

	assert.Equal(t, now.Add(2*time.Hour), shows[0].StartTime)
}

func TestCountUpcoming_MatchesPartition(t *testing.T) {
	shows := []models.Show{showAt(-time.Minute), showAt(0), showAt(time.Minute), showAt(time.Hour)}

	_, upcoming := Partition(shows, now)

	assert.Equal(t, 3, CountUpcoming(shows, now))
	assert.Equal(t, len(upcoming), CountUpcoming(shows, now))
}
