package main

import (
	"context"
	"fmt"

	md2speech "github.com/alnah/go-md2speech"
)

// Converter is the interface the batch runner needs from a converter.
type Converter interface {
	ConvertFile(ctx context.Context, inputPath, outputPath string, format md2speech.Format) (*md2speech.FileResult, error)
}

// Compile-time interface implementation check.
var _ Converter = (*md2speech.Converter)(nil)

// Pool abstracts converter pool operations for testability.
type Pool interface {
	Acquire() Converter
	Release(Converter)
	Size() int
	Close()
}

// poolAdapter exposes *md2speech.ConverterPool through the Pool interface.
type poolAdapter struct {
	pool *md2speech.ConverterPool
}

// Compile-time check that poolAdapter implements Pool.
var _ Pool = (*poolAdapter)(nil)

// newConverterPool is the production PoolFactory.
func newConverterPool(size int, opts ...md2speech.Option) (Pool, error) {
	pool, err := md2speech.NewConverterPool(size, opts...)
	if err != nil {
		return nil, err
	}
	return &poolAdapter{pool: pool}, nil
}

// Acquire returns nil once the pool is closed.
func (a *poolAdapter) Acquire() Converter {
	conv := a.pool.Acquire()
	if conv == nil {
		return nil // avoid a non-nil interface holding a nil pointer
	}
	return conv
}

// Release panics when given a converter this pool did not hand out.
func (a *poolAdapter) Release(c Converter) {
	if c == nil {
		return
	}
	conv, ok := c.(*md2speech.Converter)
	if !ok {
		panic(fmt.Sprintf("poolAdapter.Release: unexpected type %T", c))
	}
	a.pool.Release(conv)
}

func (a *poolAdapter) Size() int { return a.pool.Size() }

func (a *poolAdapter) Close() { a.pool.Close() }

// resolvePoolSize determines the pool size.
// Priority: explicit flag > environment > GOMAXPROCS-based calculation.
func resolvePoolSize(flagWorkers, envWorkers int) int {
	if flagWorkers > 0 {
		return md2speech.ResolvePoolSize(flagWorkers)
	}
	if envWorkers > md2speech.MaxPoolSize {
		envWorkers = md2speech.MaxPoolSize
	}
	return md2speech.ResolvePoolSize(envWorkers)
}
