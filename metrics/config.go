package metrics

import (
	"flag"

	"github.com/safing/jitterpool/config"
)

// Configuration Keys.
var (
	CfgOptionPushKey = "metrics/push"
	pushOption       config.StringOption

	pushFlag string
)

func init() {
	flag.StringVar(&pushFlag, "push-metrics", "", "set default URL to push prometheus metrics to")
}

func prepConfig() error {
	err := config.Register(&config.Option{
		Name:            "Push Prometheus Metrics",
		Key:             CfgOptionPushKey,
		Description:     "Push metrics to this URL in the prometheus format.",
		OptType:         config.OptTypeString,
		ExpertiseLevel:  config.ExpertiseLevelExpert,
		DefaultValue:    pushFlag,
		RequiresRestart: true,
		ValidationRegex: `^(https?://\S+)?$`,
	})
	if err != nil {
		return err
	}
	pushOption = config.Concurrent.GetAsString(CfgOptionPushKey, pushFlag)

	return nil
}
