package pipeline

import "retool/internal/config"

// OptionsFromConfig maps a finalized configuration onto processor options.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		Table:            cfg.RegionTable(),
		Order:            cfg.PriorityOrder(),
		Languages:        cfg.LanguageAllowList(),
		LanguagePriority: cfg.LanguagePriority(),
		NoApplications:   cfg.Options.NoApplications,
		NoDemos:          cfg.Options.NoDemos,
		NoPreproduction:  cfg.Options.NoPreproduction,
		NoUnlicensed:     cfg.Options.NoUnlicensed,
		NoPirate:         cfg.Options.NoPirate,
		NoBadDumps:       cfg.Options.NoBadDumps,
		NoCompilations:   cfg.Options.NoCompilations,
		Legacy:           cfg.Options.Legacy,
		PreferRevisions:  cfg.Selection.PreferRevisions,
		Workers:          cfg.Processing.Workers,
	}
}
