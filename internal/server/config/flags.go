package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/postkeeper/internal/flagx"
)

// parseFlags populates selected server Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., ":8080")
//	-d string   PostgreSQL DSN
//	-k string   path of the RSA signing key PEM file
//	-b int      RSA key size in bits
//	-t int      session lifespan, minutes (0 disables token expiry)
//	-m int      maximum concurrent sessions per nickname
//	-i bool     pin tokens to the origin IP they were first seen from
//
// Notes:
//   - The function first filters os.Args to only the flags it recognizes using
//     flagx.FilterArgs, avoiding collisions with other components.
//   - The lifespan flag is accepted as an integer in minutes and then converted
//     to a time.Duration value.
func parseFlags(config *Config) {
	// Filter args to include only the flags handled here.
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-k", "-b", "-t", "-m", "-i"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddr, "a", config.EndpointAddr, "address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.KeyFile, "k", config.KeyFile, "signing key PEM file")
	fs.IntVar(&config.KeySize, "b", config.KeySize, "RSA key size in bits")

	sessionLifespan := fs.Int("t", int(config.SessionLifespan.Minutes()), "session_lifespan (in minutes, 0 = no expiry)")

	fs.IntVar(&config.MaxSessions, "m", config.MaxSessions, "max concurrent sessions per nickname")
	fs.BoolVar(&config.ValidateSessionIP, "i", config.ValidateSessionIP, "validate session origin IP")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.SessionLifespan = time.Duration(*sessionLifespan) * time.Minute
}
