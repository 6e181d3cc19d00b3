package main

import (
	"fmt"
	"time"

	"github.com/vocalpilot/vocalpilot/internal/logger"
	"github.com/vocalpilot/vocalpilot/pkg/autodetect"
	"github.com/vocalpilot/vocalpilot/pkg/config"
	"github.com/vocalpilot/vocalpilot/pkg/control"
	"github.com/vocalpilot/vocalpilot/pkg/driver"
	"github.com/vocalpilot/vocalpilot/pkg/vision/cv"
	"github.com/vocalpilot/vocalpilot/pkg/vision/ocr"
)

// app 一次命令执行所需的全部组件
type app struct {
	cfg      *config.Config
	registry *control.Registry
	store    *control.Store
	locator  *driver.VisionLocator
	driver   *driver.Driver
	session  *autodetect.Session
}

// newApp 加载配置并装配各组件
func newApp() (*app, error) {
	var manager *config.Manager
	if flagConfigDir != "" {
		manager = config.NewManagerWithDir(flagConfigDir)
	} else {
		manager = config.NewManager()
	}

	cfg, err := manager.Load()
	if err != nil {
		logger.Warn("加载配置失败, 使用默认配置: %v", err)
	}
	if flagDebug {
		cfg.Debug.Enabled = true
	}

	descriptors := control.Defaults()
	for _, d := range descriptors {
		if o, ok := cfg.Controls[d.ID]; ok {
			o.Apply(&d.Range.Min, &d.Range.Max, &d.Range.Default, &d.Template)
		}
	}

	registry, err := control.NewRegistry(descriptors)
	if err != nil {
		return nil, fmt.Errorf("控件配置非法: %w", err)
	}
	store := control.NewStore(descriptors)

	locator, err := driver.NewVisionLocator(driver.VisionLocatorConfig{
		TemplatesDir: cfg.TemplatesDir,
		Params: cv.MultiScaleParams{
			Threshold:   cfg.Match.Threshold,
			ScaleMin:    cfg.Match.ScaleMin,
			ScaleMax:    cfg.Match.ScaleMax,
			ScaleStep:   cfg.Match.ScaleStep,
			MaxAttempts: cfg.Match.MaxAttempts,
			Boost:       cfg.Match.Boost,
		},
		OCR: ocr.Config{
			Engine:      ocr.EngineKind(cfg.OCR.Engine),
			Language:    cfg.OCR.Language,
			TessdataDir: cfg.OCR.TessdataPrefix,
			Whitelist:   cfg.OCR.Whitelist,
		},
		Debug:    cfg.Debug.Enabled,
		DebugDir: cfg.Debug.Dir,
	})
	if err != nil {
		return nil, err
	}

	drv := driver.New(driver.NewRobotDesktop(), locator, registry, store, cfg)
	session := autodetect.NewSession(drv.DetectToggles,
		time.Duration(cfg.Timing.PollIntervalMs)*time.Millisecond)
	drv.SetPauser(session)

	return &app{
		cfg:      cfg,
		registry: registry,
		store:    store,
		locator:  locator,
		driver:   drv,
		session:  session,
	}, nil
}

// Close 释放资源
func (a *app) Close() {
	a.session.Stop()
	if err := a.locator.Close(); err != nil {
		logger.Warn("释放定位器资源失败: %v", err)
	}
}
