package main

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "显示版本信息",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("vocalpilot %s\n", Version)
		fmt.Printf("构建时间: %s\n", BuildTime)
		fmt.Printf("Git 提交: %s\n", GitCommit)
		fmt.Printf("运行环境: %s/%s %s\n", runtime.GOOS, runtime.GOARCH, runtime.Version())
	},
}
