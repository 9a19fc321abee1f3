package lifecycle

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAcademicPeriod_FallDateBelongsToCurrentYear(t *testing.T) {
	now := time.Date(2023, 10, 5, 9, 0, 0, 0, time.UTC)

	p := AcademicPeriod(now, DefaultPeriodBounds(), false)

	assert.Equal(t, time.Date(2023, 9, 1, 0, 0, 0, 0, time.UTC), p.Start)
	assert.Equal(t, time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC), p.End)
}

func TestAcademicPeriod_SpringDateBelongsToPreviousFall(t *testing.T) {
	now := time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC)

	p := AcademicPeriod(now, DefaultPeriodBounds(), false)

	assert.Equal(t, time.Date(2023, 9, 1, 0, 0, 0, 0, time.UTC), p.Start)
	assert.Equal(t, time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC), p.End)
}

func TestAcademicPeriod_StartBoundaryIsInclusive(t *testing.T) {
	now := time.Date(2023, 9, 1, 0, 0, 0, 0, time.UTC)

	p := AcademicPeriod(now, DefaultPeriodBounds(), false)

	assert.Equal(t, 2023, p.Start.Year())
}

func TestAcademicPeriod_LateTermExtendsEnd(t *testing.T) {
	now := time.Date(2023, 11, 1, 0, 0, 0, 0, time.UTC)

	p := AcademicPeriod(now, DefaultPeriodBounds(), true)

	assert.Equal(t, time.Date(2024, 7, 15, 0, 0, 0, 0, time.UTC), p.End)
}

func TestAcademicPeriod_CustomBounds(t *testing.T) {
	bounds := PeriodBounds{
		StartMonth:   time.July,
		StartDay:     1,
		EndMonth:     time.June,
		EndDay:       30,
		LateEndMonth: time.July,
		LateEndDay:   15,
	}
	now := time.Date(2023, 6, 30, 0, 0, 0, 0, time.UTC)

	p := AcademicPeriod(now, bounds, false)

	assert.Equal(t, time.Date(2022, 7, 1, 0, 0, 0, 0, time.UTC), p.Start)
	assert.Equal(t, time.Date(2023, 6, 30, 0, 0, 0, 0, time.UTC), p.End)
}
