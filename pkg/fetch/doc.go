// Package fetch issues the image GET requests.
//
// Every request carries the configured desktop browser User-Agent and is bound
// by a single client timeout. A response counts as a success only when its
// status is 2xx; everything else is returned as a typed error from
// mediaseed/pkg/errors so callers can log it and move on. There is no retry.
package fetch
