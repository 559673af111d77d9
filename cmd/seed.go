package cmd

import (
	"context"
	"fmt"

	internalApp "github.com/haierkeys/noteful-service/internal/app"
	"github.com/haierkeys/noteful-service/internal/dao"
	"github.com/haierkeys/noteful-service/internal/seed"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type seedFlags struct {
	dir    string // Project root directory // 项目根目录
	config string // Specified configuration file path // 指定要使用的配置文件路径
	yes    bool   // Skip confirmation // 跳过确认
}

func init() {
	seedEnv := new(seedFlags)

	var seedCommand = &cobra.Command{
		Use:   "seed [-c config_file] [-d working_dir] [--yes]",
		Short: "Drop all tables and load the built-in sample data // 清空数据并写入示例数据",
		RunE: func(cmd *cobra.Command, args []string) error {
			runEnv := &runFlags{dir: seedEnv.dir, config: seedEnv.config}
			if !seedEnv.yes {
				return fmt.Errorf("seed drops every folder, tag and note, re-run with --yes to continue")
			}
			return runSeed(cmd.Context(), runEnv)
		},
	}

	rootCmd.AddCommand(seedCommand)
	fs := seedCommand.Flags()
	fs.StringVarP(&seedEnv.dir, "dir", "d", "", "run dir")
	fs.StringVarP(&seedEnv.config, "config", "c", "", "config file")
	fs.BoolVarP(&seedEnv.yes, "yes", "y", false, "confirm dropping existing data")
}

func runSeed(ctx context.Context, runEnv *runFlags) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := changeDir(runEnv.dir); err != nil {
		return err
	}
	if err := resolveConfig(runEnv); err != nil {
		return err
	}

	cfg, _, err := internalApp.LoadConfig(runEnv.config)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := initStorageWithConfig(cfg); err != nil {
		return err
	}

	lg := BootstrapLogger()
	db, err := dao.NewDBEngineWithConfig(cfg.Database.DaoConfig(cfg.Server.RunMode), lg)
	if err != nil {
		return fmt.Errorf("initDatabase: %w", err)
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}

	data, err := seed.Load()
	if err != nil {
		return err
	}
	res, err := seed.Run(ctx, db, data, lg)
	if err != nil {
		return err
	}

	lg.Info("seed completed",
		zap.String("database", cfg.Database.Type),
		zap.Int("folders", res.Folders),
		zap.Int("tags", res.Tags),
		zap.Int("notes", res.Notes))
	return nil
}
