package main

import (
	"io"

	"github.com/YuminosukeSato/treeguess/config"
	"github.com/YuminosukeSato/treeguess/game"
	"github.com/YuminosukeSato/treeguess/pkg/log"
	"github.com/YuminosukeSato/treeguess/sklearn/tree"
)

// app is what every command needs: configuration, logging and the loaded tree.
type app struct {
	config   *config.Manager
	logger   *log.ZerologLogger
	tree     *tree.Tree
	resolver *game.Resolver
}

// setup loads the configuration and the tree. Logs go to logOut unless a log
// file is configured.
func setup(rc *rootCmdConfig, logOut io.Writer) (*app, error) {
	var opts []config.Option
	if rc.modelPath != "" {
		opts = append(opts, config.WithOverride("model.path", rc.modelPath))
	}
	if rc.logLevel != "" {
		opts = append(opts, config.WithOverride("log.level", rc.logLevel))
	}
	manager, err := config.Load(rc.configFile, opts...)
	if err != nil {
		return nil, err
	}
	cfg := manager.Config()

	logCfg := cfg.Log.Logger()
	logCfg.Output = logOut
	logger, err := log.New(logCfg)
	if err != nil {
		return nil, err
	}
	log.SetDefault(logger)

	t, err := tree.Load(cfg.Model.Path)
	if err != nil {
		logger.Error("tree rejected", err, log.ArtifactPathKey, cfg.Model.Path)
		_ = logger.Close()
		return nil, err
	}
	logger.Info("tree loaded",
		log.ArtifactPathKey, cfg.Model.Path,
		log.TreeNodesKey, t.NodeCount(),
		log.TreeClassesKey, t.NumClasses(),
		log.TreeFeaturesKey, t.NumFeatures(),
		log.TreeDepthKey, t.Depth(),
	)

	resolver, err := game.NewResolver(t, game.WithLogger(logger), game.WithCacheSize(cfg.Cache.Size))
	if err != nil {
		_ = logger.Close()
		return nil, err
	}
	return &app{config: manager, logger: logger, tree: t, resolver: resolver}, nil
}

func (a *app) Close() error {
	return a.logger.Close()
}
