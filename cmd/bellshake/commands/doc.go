// Package commands implements the bellshake command line.
//
//	bellshake [--config FILE] [--watch] [--debug] [--script FILE] [--screenshots DIR]
//	bellshake schedule [--duration S] [--angle DEG] [--pivot F]
package commands
