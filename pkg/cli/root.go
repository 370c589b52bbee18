// Package cli wrappedctl 运维命令
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"DailyWrapped/pkg/app"
	"DailyWrapped/pkg/config"
)

var Version = "dev"

func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "wrappedctl",
		Short:         "Daily wrapped 运维工具",
		Long:          "手动触发每日 wrapped 生成、清理过期记录以及离线预览模板。",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	root.AddCommand(
		newGenerateCmd(),
		newGenerateAllCmd(),
		newCleanupCmd(),
		newRenderCmd(),
	)

	root.Version = Version
	root.SetVersionTemplate(fmt.Sprintf("wrappedctl %s\n", Version))

	return root
}

func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "错误:", err)
		os.Exit(1)
	}
}

// loadApp 加载配置并组装依赖
func loadApp() (*app.App, error) {
	cfg, err := config.Resolve()
	if err != nil {
		return nil, err
	}
	return app.New(cfg)
}
