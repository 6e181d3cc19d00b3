package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vocalpilot/vocalpilot/pkg/control"
)

var controlsCmd = &cobra.Command{
	Use:   "controls",
	Short: "列出全部控件",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}
		defer app.Close()

		fmt.Printf("%-16s %-8s %-12s %s\n", "ID", "类型", "窗口", "范围")
		for _, d := range app.registry.All() {
			if d.Kind == control.KindToggle {
				fmt.Printf("%-16s %-8s %-12s -\n", d.ID, "开关", d.WindowTitle)
				continue
			}
			fmt.Printf("%-16s %-8s %-12s [%v, %v] 默认 %v\n",
				d.ID, "数值", d.WindowTitle, d.Range.Min, d.Range.Max, d.Range.Default)
		}
		return nil
	},
}
