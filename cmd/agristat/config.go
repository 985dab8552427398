package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/ougirez/agristat/internal/pkg/constants"
)

const envPrefix = "AGRISTAT"

func setDefaults(v *viper.Viper) {
	v.SetDefault(constants.ViperServerAddrKey, ":8080")
	v.SetDefault(constants.ViperCORSOriginsKey, []string{"http://localhost:3000"})
	v.SetDefault(constants.ViperShutdownTimeoutKey, 10*time.Second)

	v.SetDefault(constants.ViperLogLevelKey, "info")
	v.SetDefault(constants.ViperLogFormatKey, "json")

	v.SetDefault(constants.ViperDatabaseDSNKey, "")
	v.SetDefault(constants.ViperSeedOnStartKey, true)
	v.SetDefault(constants.ViperSeedValueKey, 1)

	v.SetDefault(constants.ViperRegionsKey, constants.DefaultRegions)
	v.SetDefault(constants.ViperCommoditiesKey, constants.DefaultCommodities)

	v.SetDefault(constants.ViperYoYThresholdKey, 1.0)
	v.SetDefault(constants.ViperGrowthThresholdKey, 2.0)

	v.SetDefault(constants.ViperImportTimeoutKey, 30*time.Second)
}

// loadConfig reads config.yaml from the working directory or ./config when
// present. AGRISTAT_SERVER_ADDR style variables override file values.
func loadConfig() (*viper.Viper, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("viper.ReadInConfig: %w", err)
		}
	}

	return v, nil
}

// stringList reads a list key. Environment values are comma separated so
// that names with spaces such as "Kacang Tanah" survive.
func stringList(v *viper.Viper, key string) []string {
	raw, ok := v.Get(key).(string)
	if !ok {
		return v.GetStringSlice(key)
	}

	out := make([]string, 0)
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
