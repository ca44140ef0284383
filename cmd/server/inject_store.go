package main

import (
	"github.com/google/wire"
	"github.com/spf13/viper"
	"github.com/thaongo/openbank-hub/core"
	"github.com/thaongo/openbank-hub/store/channel"
	"github.com/thaongo/openbank-hub/store/directory"
	"github.com/thaongo/openbank-hub/store/otp"
	"github.com/thaongo/openbank-hub/store/token"
)

var storeSet = wire.NewSet(
	provideDirectoryConfig,
	directory.New,
	provideAccountStore,
	provideCatalogStore,
	otp.New,
	token.New,
	channel.New,
)

func provideDirectoryConfig(v *viper.Viper) directory.Config {
	return directory.Config{
		Path: v.GetString("data.file"),
	}
}

func provideAccountStore(d *directory.Directory) core.AccountStore {
	return d
}

func provideCatalogStore(d *directory.Directory) core.CatalogStore {
	return d
}
