package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/demirhan/taportal/internal/app/models"
)

func TestList_StudentsSeeOnlyOpenByDefault(t *testing.T) {
	f := newFixture(t)
	f.addPosition(t, 1, 40, models.PositionOpen)
	f.addPosition(t, 1, 40, models.PositionClosed)
	svc := NewPositionService(f.positions, &memDepartmentStore{})

	positions, err := svc.List(context.Background(), nil, false)
	require.NoError(t, err)
	require.Len(t, positions, 1)
	assert.Equal(t, models.PositionOpen, positions[0].Status)
}

func TestList_AdminsSeeAllWithoutFilter(t *testing.T) {
	f := newFixture(t)
	f.addPosition(t, 1, 40, models.PositionOpen)
	f.addPosition(t, 1, 40, models.PositionClosed)
	svc := NewPositionService(f.positions, &memDepartmentStore{})

	positions, err := svc.List(context.Background(), nil, true)
	require.NoError(t, err)
	assert.Len(t, positions, 2)
}

func TestList_ExplicitFilterWins(t *testing.T) {
	f := newFixture(t)
	f.addPosition(t, 1, 40, models.PositionOpen)
	f.addPosition(t, 1, 40, models.PositionClosed)
	svc := NewPositionService(f.positions, &memDepartmentStore{})

	closed := models.PositionClosed
	positions, err := svc.List(context.Background(), &closed, false)
	require.NoError(t, err)
	require.Len(t, positions, 1)
	assert.Equal(t, models.PositionClosed, positions[0].Status)
}
