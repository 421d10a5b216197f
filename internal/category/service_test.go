package category_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/dsilveira/tally/internal/category"
)

func TestService_Suggest(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	groceries := uuid.New()

	repo := category.NewMockRepository(ctrl)
	repo.EXPECT().
		FindCategory(gomock.Any(), "CONTINENTE LISBOA").
		Return(groceries, true, nil)

	svc := category.NewService(repo)

	got, ok, err := svc.Suggest(context.Background(), "CONTINENTE LISBOA")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, groceries, got)
}

func TestService_Suggest_NoMatch(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := category.NewMockRepository(ctrl)
	repo.EXPECT().
		FindCategory(gomock.Any(), "UNKNOWN MERCHANT").
		Return(uuid.Nil, false, nil)

	svc := category.NewService(repo)

	_, ok, err := svc.Suggest(context.Background(), "UNKNOWN MERCHANT")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestService_Learn(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	groceries := uuid.New()

	repo := category.NewMockRepository(ctrl)
	repo.EXPECT().
		CreateMapping(gomock.Any(), "CONTINENTE", groceries).
		Return(nil)

	svc := category.NewService(repo)
	require.NoError(t, svc.Learn(context.Background(), "CONTINENTE", groceries))
}

func TestService_Learn_Validation(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc := category.NewService(category.NewMockRepository(ctrl))

	assert.Error(t, svc.Learn(context.Background(), "", uuid.New()))
	assert.Error(t, svc.Learn(context.Background(), "CONTINENTE", uuid.Nil))
}
