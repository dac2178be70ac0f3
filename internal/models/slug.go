package models

import (
	"context"
	"fmt"

	"github.com/gosimple/slug"
)

// Slugify derives a URL-safe slug from an entity name. Slugs are recomputed
// on every save, so renaming an entity changes its public URL.
func Slugify(name string) string {
	return slug.Make(name)
}

// SlugExistsFunc reports whether a slug is already taken, excluding the row
// being saved.
type SlugExistsFunc func(ctx context.Context, slug string, excludeID int64) (bool, error)

// UniqueSlug probes base, base-2, base-3, ... until a free slug is found, so
// collisions never reach the database's unique index.
func UniqueSlug(ctx context.Context, base string, excludeID int64, exists SlugExistsFunc) (string, error) {
	candidate := base
	for i := 2; ; i++ {
		taken, err := exists(ctx, candidate, excludeID)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, i)
	}
}
