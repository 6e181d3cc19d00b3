package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vocalpilot/vocalpilot/pkg/control"
)

var detectCmd = &cobra.Command{
	Use:   "detect <控件>",
	Short: "读取控件当前状态",
	Long:  `只读检测控件当前状态: 数值控件读取显示值, 开关控件判断开/关。`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}
		defer app.Close()

		id := args[0]
		desc, err := app.registry.Get(id)
		if err != nil {
			return err
		}

		if desc.Kind == control.KindToggle {
			on, err := app.driver.DetectToggleState(id)
			if err != nil {
				return err
			}
			state := "关闭"
			if on {
				state = "开启"
			}
			fmt.Printf("%s 当前为%s\n", id, state)
			return nil
		}

		value, err := app.driver.DetectValue(id)
		if err != nil {
			return err
		}
		fmt.Printf("%s 当前显示值为 %s\n", id, desc.FormatValue(value))
		return nil
	},
}
