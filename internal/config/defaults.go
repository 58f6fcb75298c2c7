package config

const (
	defaultConfigPath    = "~/.config/retool/config.toml"
	defaultProjectConfig = "retool.toml"
	defaultCloneListsDir = "~/.config/retool/clonelists"
	defaultHistoryPath   = "~/.local/share/retool/history.db"
	defaultLogFormat     = "console"
	defaultLogLevel      = "info"
	defaultWorkers       = 4
	maxWorkers           = 64
	englishCode          = "En"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			CloneListsDir: defaultCloneListsDir,
			HistoryPath:   defaultHistoryPath,
		},
		Regions: Regions{
			Synonyms: map[string]string{"UK": "United Kingdom"},
		},
		Processing: Processing{
			Workers:       defaultWorkers,
			RecordHistory: true,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
