package main

import (
	"io"
	"os"

	md2speech "github.com/alnah/go-md2speech"
	"github.com/alnah/go-md2speech/internal/config"
)

// PoolFactory builds the converter pool once options are known.
type PoolFactory func(size int, opts ...md2speech.Option) (Pool, error)

// Environment holds injectable dependencies for testability.
// Includes I/O, base configuration, and pool construction.
type Environment struct {
	Stdout  io.Writer
	Stderr  io.Writer
	Config  *config.Config // Base settings when no config file is given
	NewPool PoolFactory
}

// DefaultEnv returns the production environment.
func DefaultEnv() *Environment {
	return &Environment{
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
		Config:  config.DefaultConfig(),
		NewPool: newConverterPool,
	}
}
