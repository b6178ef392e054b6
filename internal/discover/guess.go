package discover

import (
	"context"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/hyperifyio/sitetext/internal/fetch"
)

// Guess appends each of v.Suffixes to home and returns the first candidate
// answering 200. home must end with "/" since nothing is normalized. ok is
// false when the homepage is unavailable or no candidate answers; failures of
// individual candidates are skipped.
func Guess(ctx context.Context, c *fetch.Client, home string, v Variant) (string, bool) {
	if !c.Available(ctx, home) {
		log.Debug().Str("url", home).Str("page", v.Name).Msg("domain unavailable")
		return "", false
	}
	for _, suffix := range v.Suffixes {
		if ctx.Err() != nil {
			return "", false
		}
		candidate := home + suffix
		resp, err := c.Get(ctx, candidate)
		if err != nil {
			log.Debug().Err(err).Str("url", candidate).Msg("candidate failed")
			continue
		}
		if resp.StatusCode == http.StatusOK {
			log.Debug().Str("url", candidate).Str("page", v.Name).Msg("guessed page")
			return candidate, true
		}
	}
	log.Info().Str("url", home).Str("page", v.Name).Msg("page not found by guessing")
	return "", false
}
