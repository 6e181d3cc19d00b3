package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/vocalpilot/vocalpilot/pkg/auto"
)

var (
	flagReset     bool
	flagThreshold float64
)

var setCmd = &cobra.Command{
	Use:   "set <控件> [数值]",
	Short: "设置数值控件",
	Long: `设置数值控件到指定数值。超出范围的输入会被收敛到边界。
使用 --reset 恢复控件默认值, 此时不需要数值参数。`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}
		defer app.Close()

		id := args[0]
		var opts []auto.Option
		if cmd.Flags().Changed("threshold") {
			opts = append(opts, auto.WithThreshold(flagThreshold))
		}

		if flagReset {
			applied, err := app.driver.Reset(id, opts...)
			if err != nil {
				return err
			}
			fmt.Printf("%s 已恢复默认值 %v\n", id, applied)
			return nil
		}

		if len(args) < 2 {
			return fmt.Errorf("缺少数值参数 (或使用 --reset)")
		}
		value, err := strconv.ParseFloat(args[1], 64)
		if err != nil {
			return fmt.Errorf("数值 %q 无法解析: %w", args[1], err)
		}

		applied, err := app.driver.SetValue(id, value, opts...)
		if err != nil {
			return err
		}
		if applied != value {
			fmt.Printf("%s 已设置为 %v (输入 %v 超出范围)\n", id, applied, value)
		} else {
			fmt.Printf("%s 已设置为 %v\n", id, applied)
		}
		return nil
	},
}

func init() {
	setCmd.Flags().BoolVar(&flagReset, "reset", false, "恢复控件默认值")
	setCmd.Flags().Float64Var(&flagThreshold, "threshold", 0, "单次覆盖模板匹配阈值")
}
