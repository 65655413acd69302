package slog_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/fwojciec/docmap"
	"github.com/fwojciec/docmap/crawl"
	"github.com/fwojciec/docmap/mock"
	dmslog "github.com/fwojciec/docmap/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingFetcher_Fetch(t *testing.T) {
	t.Parallel()

	t.Run("logs one line per crawled page", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		pages := map[string]string{
			"https://example.com/docs":       `<a href="/docs/intro">Intro</a>`,
			"https://example.com/docs/intro": `<h1>Intro</h1>`,
		}
		inner := &mock.Fetcher{
			FetchFn: func(_ context.Context, pageURL string) (string, error) {
				return pages[pageURL], nil
			},
		}
		c := &crawl.Crawler{
			Fetcher: dmslog.NewLoggingFetcher(inner, logger),
			Links: &mock.LinkSelector{
				ExtractLinksFn: func(html, _ string) ([]string, error) {
					if strings.Contains(html, "/docs/intro") {
						return []string{"https://example.com/docs/intro"}, nil
					}
					return nil, nil
				},
			},
		}

		got, err := c.Crawl(context.Background(), "https://example.com/docs", 2, 10)

		require.NoError(t, err)
		assert.Len(t, got, 2)
		lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
		require.Len(t, lines, 2)
		assert.Contains(t, lines[0], "msg=fetch url=https://example.com/docs bytes=31")
		assert.Contains(t, lines[1], "url=https://example.com/docs/intro bytes=14")
		assert.NotContains(t, buf.String(), "err=")
	})

	t.Run("logs the error code of a failed fetch", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Fetcher{
			FetchFn: func(_ context.Context, pageURL string) (string, error) {
				return "", docmap.Errorf(docmap.EINVALID, "invalid URL %q", pageURL)
			},
		}

		_, err := dmslog.NewLoggingFetcher(inner, logger).Fetch(context.Background(), "::bad")

		require.Error(t, err)
		assert.Contains(t, buf.String(), "code=invalid")
		assert.Contains(t, buf.String(), "bytes=0")
	})

	t.Run("logs network failures as internal", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Fetcher{
			FetchFn: func(_ context.Context, _ string) (string, error) {
				return "", errors.New("connection refused")
			},
		}

		_, err := dmslog.NewLoggingFetcher(inner, logger).Fetch(context.Background(), "https://example.com/docs")

		require.Error(t, err)
		assert.Contains(t, buf.String(), "code=internal")
		assert.Contains(t, buf.String(), `err="connection refused"`)
	})
}

func TestLoggingFetcher_Close(t *testing.T) {
	t.Parallel()

	t.Run("closes the wrapped fetcher", func(t *testing.T) {
		t.Parallel()

		closed := false
		inner := &mock.Fetcher{
			CloseFn: func() error {
				closed = true
				return nil
			},
		}

		err := dmslog.NewLoggingFetcher(inner, slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))).Close()

		require.NoError(t, err)
		assert.True(t, closed)
	})
}
