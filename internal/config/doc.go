// Package config loads deckhand's TOML configuration.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/deckhand/config.toml (default)
//  3. If the config file doesn't exist, fall back to Default()
//  4. If the file exists but fields are missing, blank or non-positive, use defaults
//
// # TOML Format
//
//	locale = "en"               # en or pt-BR
//	start_route = "/login"      # /login, /apps, /apps/<id>, /apps/new, /deploys, /settings
//	log_file = "~/.local/state/deckhand/deckhand.log"  # "" disables logging
//	log_level = "info"
//	seed_file = ""              # blank uses the embedded dataset
//	now = ""                    # RFC3339 reference time; blank uses the wall clock
//	deploy_list_limit = 30
//	login_delay_ms = 800
//	toast_ms = 3000
//
//	[simulator]
//	building_after_ms = 1000
//	deploying_after_ms = 3000
//	live_after_ms = 5000
//	navigate_after_ms = 6500
//
// Durations are integer milliseconds. Simulator offsets are measured from the
// moment a deploy is invoked, not from the previous stage. Tilde expansion is
// applied to log_file and seed_file.
//
// # Error Handling
//
// Load returns errors for path expansion failures, read errors other than
// os.ErrNotExist, TOML parse errors and a malformed now value. Values are not
// cross-validated here; the composition root validates the simulator plan and
// start route against their owning packages.
package config
