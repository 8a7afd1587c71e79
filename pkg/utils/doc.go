// Package utils collects small helpers shared across Pelatform services:
// slices, identifiers, dates, human-readable numbers and strings, URL and
// UTM handling, email address checks, Slack notifications and call timing.
//
// Identifiers come from crypto/rand (NanoID, CustomID, NumericID) or
// github.com/google/uuid (UUID, CUID). Text helpers use golang.org/x/text for
// casing and normalization and github.com/dustin/go-humanize for number
// grouping.
//
// SlackLog posts to the incoming webhook named by SLACK_WEBHOOKS_HOOK_<TYPE>.
// In development the message goes to Logger instead:
//
//	utils.SlackLog(ctx, utils.SlackMessage{
//	    Message: "payment webhook failed",
//	    Type:    utils.SlackErrors,
//	    Mention: true,
//	})
package utils
