package rng

import (
	"github.com/safing/jitterpool/config"
	"github.com/safing/jitterpool/jitter"
)

// Configuration Keys.
const (
	CfgOptionJitterCyclesMinKey         = "random/jitter_cycles_min"
	CfgOptionJitterCyclesSpreadKey      = "random/jitter_cycles_spread"
	CfgOptionAmbientCipherKey           = "random/ambient_cipher"
	CfgOptionAmbientReseedAfterBytesKey = "random/ambient_reseed_after_bytes"
	CfgOptionMemoryProbeTTLKey          = "random/memory_probe_ttl_ms"
	CfgOptionMinFeedEntropyKey          = "random/min_feed_entropy"
	CfgOptionTickFeederIntervalKey      = "random/tick_feeder_interval_ms"

	defaultMinFeedEntropy     = 256
	defaultTickFeederInterval = 10
)

// Option getters. They return the defaults until the options are registered.
var (
	jitterCyclesMin         config.IntOption    = staticInt(jitter.DefaultCyclesMin)
	jitterCyclesSpread      config.IntOption    = staticInt(jitter.DefaultCyclesSpread)
	ambientCipher           config.StringOption = func() string { return jitter.DefaultAmbientCipher }
	ambientReseedAfterBytes config.IntOption    = staticInt(jitter.DefaultAmbientReseedAfterBytes)
	memoryProbeTTL          config.IntOption    = staticInt(int64(jitter.DefaultMemoryProbeTTL.Milliseconds()))
	minFeedEntropy          config.IntOption    = staticInt(defaultMinFeedEntropy)
	tickFeederInterval      config.IntOption    = staticInt(defaultTickFeederInterval)
)

func staticInt(n int64) config.IntOption {
	return func() int64 { return n }
}

func registerConfig() error {
	err := config.Register(&config.Option{
		Name:            "Jitter Cycles Minimum",
		Key:             CfgOptionJitterCyclesMinKey,
		Description:     "Minimum iteration count of each busy work loop that is timed to gather jitter.",
		OptType:         config.OptTypeInt,
		ExpertiseLevel:  config.ExpertiseLevelDeveloper,
		DefaultValue:    jitter.DefaultCyclesMin,
		ValidationRegex: "^[1-9][0-9]{0,6}$",
		RequiresRestart: true,
	})
	if err != nil {
		return err
	}
	jitterCyclesMin = config.Concurrent.GetAsInt(CfgOptionJitterCyclesMinKey, jitter.DefaultCyclesMin)

	err = config.Register(&config.Option{
		Name:            "Jitter Cycles Spread",
		Key:             CfgOptionJitterCyclesSpreadKey,
		Description:     "Size of the random range added to the minimum iteration count.",
		OptType:         config.OptTypeInt,
		ExpertiseLevel:  config.ExpertiseLevelDeveloper,
		DefaultValue:    jitter.DefaultCyclesSpread,
		ValidationRegex: "^[1-9][0-9]{0,6}$",
		RequiresRestart: true,
	})
	if err != nil {
		return err
	}
	jitterCyclesSpread = config.Concurrent.GetAsInt(CfgOptionJitterCyclesSpreadKey, jitter.DefaultCyclesSpread)

	err = config.Register(&config.Option{
		Name:            "Ambient Cipher",
		Key:             CfgOptionAmbientCipherKey,
		Description:     "Cipher of the Fortuna generator that provides ambient randomness to the pool.",
		OptType:         config.OptTypeString,
		ExpertiseLevel:  config.ExpertiseLevelDeveloper,
		DefaultValue:    jitter.DefaultAmbientCipher,
		ValidationRegex: "^(aes|serpent)$",
		RequiresRestart: true,
	})
	if err != nil {
		return err
	}
	ambientCipher = config.Concurrent.GetAsString(CfgOptionAmbientCipherKey, jitter.DefaultAmbientCipher)

	err = config.Register(&config.Option{
		Name:            "Ambient Reseed after x bytes",
		Key:             CfgOptionAmbientReseedAfterBytesKey,
		Description:     "Number of bytes served by the ambient generator until it is reseeded from the OS.",
		OptType:         config.OptTypeInt,
		ExpertiseLevel:  config.ExpertiseLevelDeveloper,
		DefaultValue:    jitter.DefaultAmbientReseedAfterBytes, // one megabyte
		ValidationRegex: "^[1-9][0-9]{2,9}$",
		RequiresRestart: true,
	})
	if err != nil {
		return err
	}
	ambientReseedAfterBytes = config.Concurrent.GetAsInt(CfgOptionAmbientReseedAfterBytesKey, jitter.DefaultAmbientReseedAfterBytes)

	err = config.Register(&config.Option{
		Name:            "Memory Probe TTL",
		Key:             CfgOptionMemoryProbeTTLKey,
		Description:     "How long a host memory reading is reused, in milliseconds.",
		OptType:         config.OptTypeInt,
		ExpertiseLevel:  config.ExpertiseLevelDeveloper,
		DefaultValue:    jitter.DefaultMemoryProbeTTL.Milliseconds(),
		ValidationRegex: "^[0-9]{1,5}$",
		RequiresRestart: true,
	})
	if err != nil {
		return err
	}
	memoryProbeTTL = config.Concurrent.GetAsInt(CfgOptionMemoryProbeTTLKey, jitter.DefaultMemoryProbeTTL.Milliseconds())

	err = config.Register(&config.Option{
		Name:            "Minimum Feed Entropy",
		Key:             CfgOptionMinFeedEntropyKey,
		Description:     "The minimum amount of entropy before a entropy source is feed to the pool, in bits.",
		OptType:         config.OptTypeInt,
		ExpertiseLevel:  config.ExpertiseLevelDeveloper,
		DefaultValue:    defaultMinFeedEntropy,
		ValidationRegex: "^[0-9]{3,5}$",
	})
	if err != nil {
		return err
	}
	minFeedEntropy = config.Concurrent.GetAsInt(CfgOptionMinFeedEntropyKey, defaultMinFeedEntropy)

	err = config.Register(&config.Option{
		Name:            "Tick Feeder Interval",
		Key:             CfgOptionTickFeederIntervalKey,
		Description:     "Interval of the scheduling tick feeder, in milliseconds. Every tick contributes one bit.",
		OptType:         config.OptTypeInt,
		ExpertiseLevel:  config.ExpertiseLevelDeveloper,
		DefaultValue:    defaultTickFeederInterval,
		ValidationRegex: "^[1-9][0-9]{0,4}$",
	})
	if err != nil {
		return err
	}
	tickFeederInterval = config.Concurrent.GetAsInt(CfgOptionTickFeederIntervalKey, defaultTickFeederInterval)

	return nil
}
