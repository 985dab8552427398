package constants

const (
	ViperServerAddrKey      = "server.addr"
	ViperCORSOriginsKey     = "server.cors_origins"
	ViperShutdownTimeoutKey = "server.shutdown_timeout"

	ViperLogLevelKey  = "log.level"
	ViperLogFormatKey = "log.format"

	ViperDatabaseDSNKey = "database.dsn"
	ViperSeedOnStartKey = "seed.on_start"
	ViperSeedValueKey   = "seed.value"

	ViperRegionsKey     = "catalog.regions"
	ViperCommoditiesKey = "catalog.commodities"

	ViperYoYThresholdKey    = "analytics.yoy_threshold"
	ViperGrowthThresholdKey = "analytics.growth_threshold"

	ViperImportTimeoutKey = "import.timeout"
)

const (
	MinYear     = 2013
	MaxDataYear = 2024
	MaxYear     = 2025
)
