package main

import (
	"github.com/google/wire"
	"github.com/spf13/viper"
	"github.com/thaongo/openbank-hub/service/webhook"
)

var serviceSet = wire.NewSet(
	provideWebhookConfig,
	webhook.New,
)

func provideWebhookConfig(v *viper.Viper) webhook.Config {
	v.SetDefault("webhook.timeout", "10s")

	return webhook.Config{
		URL:     v.GetString("webhook.url"),
		Token:   v.GetString("webhook.token"),
		Timeout: v.GetDuration("webhook.timeout"),
	}
}
