package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vocalpilot/vocalpilot/internal/logger"
	"github.com/vocalpilot/vocalpilot/pkg/control"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "持续检测开关状态",
	Long: `启动后台自动检测, 周期性扫描全部开关控件的实际状态。
Ctrl+C 退出。`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}
		defer app.Close()

		app.driver.SetChangeCallback(func(id string, state control.State) {
			logger.Info("检测到外部变化: %s on=%v value=%v", id, state.On, state.Value)
		})

		if err := app.session.Start(); err != nil {
			return err
		}

		fmt.Println("自动检测运行中, Ctrl+C 退出")
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		logger.Info("收到退出信号")
		app.session.Stop()

		for id, st := range app.store.Snapshot() {
			fmt.Printf("%-16s on=%v value=%v\n", id, st.On, st.Value)
		}
		return nil
	},
}
