// Package config reads the client's configuration from the environment.
//
// Settings come from three layers, lowest to highest precedence:
//   - defaults baked into the struct tags
//   - the process environment, optionally seeded from a .env file
//   - command-line flags applied by the binary after Load
//
// Recognized variables:
//   - OTHELLO_SERVER_URL        WebSocket endpoint (ws:// or wss://)
//   - OTHELLO_LOG_LEVEL         zerolog level name
//   - OTHELLO_LOG_JSON          raw JSON logs instead of the console writer
//   - OTHELLO_HANDSHAKE_TIMEOUT dial timeout, Go duration syntax
//
// Usage:
//
//	cfg, err := config.Load()
//	if err != nil {
//		log.Fatal().Err(err).Msg("bad configuration")
//	}
package config
