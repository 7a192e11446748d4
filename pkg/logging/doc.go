// Package logging builds the *slog.Logger shared by the mockdir server and CLI.
//
// Console output is text or JSON on stderr. When Config.File is set, JSON
// records are also appended to that file, which lumberjack rotates at
// DefaultFileMaxSizeMB.
//
//	log := logging.New(logging.Config{
//	    Level:  logging.ParseLevel(cfg.Log.Level),
//	    Format: logging.ParseFormat(cfg.Log.Format),
//	    File:   cfg.Log.File,
//	})
//	log.Info("mock stub created", "path", path)
//
// Packages take a logger through a With*Logger option and default to Nop.
package logging
