// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"context"
	"strings"

	"github.com/pkg/errors"
)

// Source names where a session identifier came from.
type Source string

const (
	SourceNone     Source = ""
	SourceFlag     Source = "flag"
	SourceEnv      Source = "env"
	SourceConfig   Source = "config"
	SourceDiscover Source = "page"
)

// Sources lists candidate identifiers in precedence order.
type Sources struct {
	Flag   string
	Env    string
	Config string

	// Discover is consulted only when the static values are all blank.
	Discover func(ctx context.Context) (string, error)
}

// Resolve returns the first non-blank identifier: flag, env, config, page.
func Resolve(ctx context.Context, src Sources) (string, Source, error) {
	for _, c := range []struct {
		val string
		src Source
	}{
		{src.Flag, SourceFlag},
		{src.Env, SourceEnv},
		{src.Config, SourceConfig},
	} {
		if v := strings.TrimSpace(c.val); v != "" {
			return v, c.src, nil
		}
	}

	if src.Discover == nil {
		return "", SourceNone, ErrNotFound
	}

	id, err := src.Discover(ctx)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return "", SourceNone, err
		}
		return "", SourceNone, errors.Wrap(ErrNotFound, err.Error())
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return "", SourceNone, ErrNotFound
	}
	return id, SourceDiscover, nil
}
