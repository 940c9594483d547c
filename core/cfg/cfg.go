package cfg

import (
	"github.com/ftl/hamradio/cfg"

	"github.com/ftl/demod/core"
)

const (
	audioRate     cfg.Key = "demod.audioRate"
	fmDeviation   cfg.Key = "demod.fmDeviation"
	filterTaps    cfg.Key = "demod.filterTaps"
	deemphasisTau cfg.Key = "demod.deemphasisTau"
)

func Load() (core.Configuration, error) {
	configuration, err := cfg.LoadDefault()
	if err != nil {
		return core.Configuration{}, err
	}

	result := core.Configuration{
		AudioRate:     core.Frequency(configuration.Get(audioRate, 48000.0).(float64)),
		FMDeviation:   core.Frequency(configuration.Get(fmDeviation, 75000.0).(float64)),
		FilterTaps:    int(configuration.Get(filterTaps, 51.0).(float64)),
		DeemphasisTau: configuration.Get(deemphasisTau, 0.0).(float64),
	}

	return result, nil
}

func Static() core.Configuration {
	return core.Configuration{
		AudioRate:   48000,
		FMDeviation: 75000,
		FilterTaps:  51,
	}
}
