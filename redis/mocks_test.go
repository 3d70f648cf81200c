package redis

import (
	"context"
	"errors"
)

type storeMock struct {
	values map[string]string
	// filledWhileLocking is stored under the key once the lock is obtained,
	// as if another holder had filled it first.
	filledWhileLocking string
	gets               int
	sets               int
	locks              int
	releases           int
	failGet            bool
}

func newStoreMock() *storeMock {
	return &storeMock{values: make(map[string]string)}
}

func (mock *storeMock) Get(ctx context.Context, key string) (string, bool, error) {
	mock.gets++
	if mock.failGet {
		return "", false, errors.New("connection refused")
	}
	value, isOk := mock.values[key]
	return value, isOk, nil
}

func (mock *storeMock) Set(ctx context.Context, key string, value string) error {
	mock.sets++
	mock.values[key] = value
	return nil
}

func (mock *storeMock) Lock(ctx context.Context, key string) (ReleaseLock, error) {
	mock.locks++
	if len(mock.filledWhileLocking) > 0 {
		mock.values[key] = mock.filledWhileLocking
	}
	return func() error {
		mock.releases++
		return nil
	}, nil
}
