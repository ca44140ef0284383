package main

import (
	"github.com/google/wire"
	"github.com/spf13/viper"
	"github.com/thaongo/openbank-hub/core"
	"github.com/thaongo/openbank-hub/worker/courier"
)

var workerSet = wire.NewSet(
	provideCourierConfig,
	courier.New,
	provideDispatcher,
)

func provideCourierConfig(v *viper.Viper) courier.Config {
	v.SetDefault("courier.queue_size", 256)

	return courier.Config{
		QueueSize: v.GetInt("courier.queue_size"),
	}
}

func provideDispatcher(w *courier.Courier) core.Dispatcher {
	return w
}
