package storage

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"
)

type MockMediaStore struct {
	mock.Mock
}

func (m *MockMediaStore) Upload(ctx context.Context, folder string, filename string, r io.Reader, size int64) (string, error) {
	args := m.Called(ctx, folder, filename, r, size)
	return args.String(0), args.Error(1)
}

func (m *MockMediaStore) Remove(ctx context.Context, objectURL string) error {
	args := m.Called(ctx, objectURL)
	return args.Error(0)
}
