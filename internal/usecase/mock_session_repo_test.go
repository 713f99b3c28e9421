package usecase

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/rocketscienceinc/playground/internal/session"
)

type mockSessionRepo struct {
	mock.Mock
}

func newMockSessionRepo(t interface {
	mock.TestingT
	Cleanup(func())
}) *mockSessionRepo {
	m := &mockSessionRepo{}
	m.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (that *mockSessionRepo) CreateOrUpdate(ctx context.Context, state session.State) error {
	args := that.Called(ctx, state)
	return args.Error(0)
}

func (that *mockSessionRepo) GetByID(ctx context.Context, id string) (session.State, error) {
	args := that.Called(ctx, id)
	return args.Get(0).(session.State), args.Error(1) //nolint: forcetypeassert // set by the test
}

func (that *mockSessionRepo) DeleteByID(ctx context.Context, id string) error {
	args := that.Called(ctx, id)
	return args.Error(0)
}
