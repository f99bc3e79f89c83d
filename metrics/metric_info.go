package metrics

import (
	"runtime"
	"strings"

	"github.com/safing/jitterpool/info"
)

func registerInfoMetric() error {
	meta := info.GetInfo()
	_, err := NewGauge(
		"info",
		map[string]string{
			"name":        checkUnknown(meta.Name),
			"version":     checkUnknown(meta.Version),
			"commit":      checkUnknown(meta.Commit),
			"build_time":  checkUnknown(meta.BuildTime),
			"go_os":       runtime.GOOS,
			"go_arch":     runtime.GOARCH,
			"go_version":  meta.GoVersion,
			"go_compiler": runtime.Compiler,
		},
		func() float64 {
			return 1
		},
		nil,
	)
	return err
}

func checkUnknown(s string) string {
	if strings.Contains(s, "unknown") {
		return "unknown"
	}
	return s
}
