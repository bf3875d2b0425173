//go:build wireinject
// +build wireinject

package cmd

import (
	"context"

	"github.com/black-desk/fsnotifier/pkg/fsnotifier/config"
	"github.com/google/wire"
	"go.uber.org/zap"
)

func injectedApp(
	context.Context, *config.Config, *zap.SugaredLogger,
) (
	*app, error,
) {
	panic(wire.Build(set))
}
