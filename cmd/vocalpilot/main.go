package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vocalpilot/vocalpilot/internal/logger"
	"github.com/vocalpilot/vocalpilot/pkg/permissions"
)

// 版本信息 (可通过 ldflags 注入)
var (
	Version   = "1.0.0"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

var (
	flagConfigDir string
	flagLogLevel  string
	flagDebug     bool
)

var rootCmd = &cobra.Command{
	Use:   "vocalpilot",
	Short: "人声效果链控件自动操作工具",
	Long: `vocalpilot 通过模板匹配与文字识别在宿主程序界面上定位
效果器控件, 以模拟点击与键入完成数值设置与开关切换。`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger.Default().SetLevel(logger.ParseLevel(flagLogLevel))

		status := permissions.Check()
		if !status.AllGranted() {
			logger.Warn("系统权限不完整:\n%s", permissions.Instructions(status))
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfigDir, "config-dir", "", "配置目录 (默认 ~/.vocalpilot)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "日志级别 (debug/info/warn/error)")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "保存匹配可视化图片")

	rootCmd.AddCommand(setCmd)
	rootCmd.AddCommand(toggleCmd)
	rootCmd.AddCommand(detectCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(controlsCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	defer logger.Default().Close()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
