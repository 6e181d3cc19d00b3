package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vocalpilot/vocalpilot/internal/logger"
)

var toggleCmd = &cobra.Command{
	Use:   "toggle <控件>",
	Short: "切换开关控件",
	Long:  `点击开关控件并重新检测实际状态。`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}
		defer app.Close()

		id := args[0]
		if err := app.driver.Toggle(id); err != nil {
			return err
		}

		on, err := app.driver.DetectToggleState(id)
		if err != nil {
			logger.Warn("切换后状态确认失败: %v", err)
			fmt.Printf("%s 已点击, 状态未确认\n", id)
			return nil
		}

		state := "关闭"
		if on {
			state = "开启"
		}
		fmt.Printf("%s 当前为%s\n", id, state)
		return nil
	},
}
