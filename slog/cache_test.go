package slog_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/fwojciec/docmap"
	"github.com/fwojciec/docmap/mock"
	dmslog "github.com/fwojciec/docmap/slog"
	"github.com/fwojciec/docmap/xxhash"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingCache(t *testing.T) {
	t.Parallel()

	t.Run("logs a hit with the key", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Cache{
			GetFn: func(_ context.Context, _ string) ([]docmap.ModuleRecord, error) {
				return []docmap.ModuleRecord{{Module: "API"}}, nil
			},
		}

		c := dmslog.NewLoggingCache(inner, logger)
		records, err := c.Get(context.Background(), "chunk")

		require.NoError(t, err)
		assert.Len(t, records, 1)
		output := buf.String()
		assert.Contains(t, output, "cache get")
		assert.Contains(t, output, "key="+xxhash.Key("chunk"))
		assert.Contains(t, output, "hit=true")
		assert.Contains(t, output, "records=1")
	})

	t.Run("logs a miss without an error", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Cache{
			GetFn: func(_ context.Context, _ string) ([]docmap.ModuleRecord, error) {
				return nil, docmap.Errorf(docmap.ENOTFOUND, "not cached")
			},
		}

		c := dmslog.NewLoggingCache(inner, logger)
		_, err := c.Get(context.Background(), "chunk")

		assert.Equal(t, docmap.ENOTFOUND, docmap.ErrorCode(err))
		output := buf.String()
		assert.Contains(t, output, "hit=false")
		assert.NotContains(t, output, "err=")
	})

	t.Run("logs read failures", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Cache{
			GetFn: func(_ context.Context, _ string) ([]docmap.ModuleRecord, error) {
				return nil, errors.New("disk gone")
			},
		}

		c := dmslog.NewLoggingCache(inner, logger)
		_, err := c.Get(context.Background(), "chunk")

		require.Error(t, err)
		assert.Contains(t, buf.String(), "err=\"disk gone\"")
	})

	t.Run("logs puts", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		var stored []docmap.ModuleRecord
		inner := &mock.Cache{
			PutFn: func(_ context.Context, _ string, records []docmap.ModuleRecord) error {
				stored = records
				return nil
			},
		}

		c := dmslog.NewLoggingCache(inner, logger)
		err := c.Put(context.Background(), "chunk", []docmap.ModuleRecord{{Module: "A"}, {Module: "B"}})

		require.NoError(t, err)
		assert.Len(t, stored, 2)
		output := buf.String()
		assert.Contains(t, output, "cache put")
		assert.Contains(t, output, "records=2")
	})
}
