package config

import (
	"flag"
	"os"
	"time"

	"github.com/easylend/userservice/internal/flagx"
)

// parseFlags populates selected server Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., ":8080")
//	-d string   PostgreSQL DSN
//	-s string   JWT HMAC secret key
//	-t int      access token validity, minutes
//	-r int      refresh token validity, minutes
//	-k int      stored session-token validity, milliseconds
//	-f int      confirmation token validity, minutes
//	-u string   public base URL for confirmation links
//
// Notes:
//   - The function first filters os.Args to only the flags it recognizes
//     using flagx.FilterArgs, avoiding collisions with other components.
//   - The stored session-token validity is deployed in milliseconds; the
//     JWT validities are accepted in minutes and converted.
func parseFlags(config *Config) {
	// Filter args to include only the flags handled here.
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-s", "-t", "-r", "-k", "-f", "-u"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddr, "a", config.EndpointAddr, "address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")

	accessTokenValidityDuration := fs.Int("t", int(config.AccessTokenValidityDuration.Minutes()), "access_token_validity_duration (in minutes)")
	refreshTokenValidityDuration := fs.Int("r", int(config.RefreshTokenValidityDuration.Minutes()), "refresh_token_validity_duration (in minutes)")
	sessionTokenValidityDuration := fs.Int("k", int(config.SessionTokenValidityDuration.Milliseconds()), "session_token_validity_duration (in milliseconds)")
	confirmationTokenValidityDuration := fs.Int("f", int(config.ConfirmationTokenValidityDuration.Minutes()), "confirmation_token_validity_duration (in minutes)")

	fs.StringVar(&config.PublicBaseURL, "u", config.PublicBaseURL, "public base URL")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.AccessTokenValidityDuration = time.Duration(*accessTokenValidityDuration) * time.Minute
	config.RefreshTokenValidityDuration = time.Duration(*refreshTokenValidityDuration) * time.Minute
	config.SessionTokenValidityDuration = time.Duration(*sessionTokenValidityDuration) * time.Millisecond
	config.ConfirmationTokenValidityDuration = time.Duration(*confirmationTokenValidityDuration) * time.Minute
}
