package mock

import (
	"context"

	"github.com/fwojciec/docmap"
)

var _ docmap.Completer = (*Completer)(nil)

// Completer is a mock implementation of docmap.Completer.
type Completer struct {
	CompleteFn func(ctx context.Context, prompt string) (string, error)
}

func (c *Completer) Complete(ctx context.Context, prompt string) (string, error) {
	return c.CompleteFn(ctx, prompt)
}

var _ docmap.Inferrer = (*Inferrer)(nil)

// Inferrer is a mock implementation of docmap.Inferrer.
type Inferrer struct {
	InferFn func(ctx context.Context, text string) docmap.Inference
}

func (i *Inferrer) Infer(ctx context.Context, text string) docmap.Inference {
	return i.InferFn(ctx, text)
}

var _ docmap.Cache = (*Cache)(nil)

// Cache is a mock implementation of docmap.Cache.
type Cache struct {
	GetFn func(ctx context.Context, text string) ([]docmap.ModuleRecord, error)
	PutFn func(ctx context.Context, text string, records []docmap.ModuleRecord) error
}

func (c *Cache) Get(ctx context.Context, text string) ([]docmap.ModuleRecord, error) {
	return c.GetFn(ctx, text)
}

func (c *Cache) Put(ctx context.Context, text string, records []docmap.ModuleRecord) error {
	return c.PutFn(ctx, text, records)
}

var _ docmap.ModuleWriter = (*ModuleWriter)(nil)

// ModuleWriter is a mock implementation of docmap.ModuleWriter.
type ModuleWriter struct {
	WriteModulesFn func(ctx context.Context, siteURL string, modules []docmap.MergedModule) (string, error)
}

func (w *ModuleWriter) WriteModules(ctx context.Context, siteURL string, modules []docmap.MergedModule) (string, error) {
	return w.WriteModulesFn(ctx, siteURL, modules)
}
