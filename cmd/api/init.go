package main

import (
	"context"

	"go-chi-calculator/internal/calculator"
	"go-chi-calculator/internal/observability"
)

// initMetrics installs the meter provider first; calculator instruments bind
// to whichever provider is global when they are created.
func initMetrics(ctx context.Context) (func(context.Context) error, error) {
	shutdown, err := observability.InitMetrics(ctx)
	if err != nil {
		return nil, err
	}

	if err := calculator.InitMetrics(); err != nil {
		return nil, err
	}

	return shutdown, nil
}
