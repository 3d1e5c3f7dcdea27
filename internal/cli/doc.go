// Package cli wires together the Cobra command tree for the reel binary.
//
// It defines the root command and all subcommands (trending, search,
// favourites, ratings, fav, rate, clear, cache, login, tui, version), reads
// configuration, opens the response cache, builds the sync service, and
// returns exit codes. Running reel with no subcommand on a terminal starts
// the interactive browser.
package cli
