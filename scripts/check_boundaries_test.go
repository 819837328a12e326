package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeGoFile(t *testing.T, root, rel, source string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(source), 0o600))
}

func TestCollectViolationsFlagsLayerBreaks(t *testing.T) {
	root := t.TempDir()
	writeGoFile(t, root, "pricing-catalog/pricing-package-service/domain/entities/ok.go", `package entities

import (
	"time"

	"golang.org/x/text/unicode/norm"
	"venuenouveau/contexts/pricing-catalog/pricing-package-service/domain/errors"
)
`)
	writeGoFile(t, root, "pricing-catalog/pricing-package-service/domain/services/bad.go", `package services

import (
	"github.com/google/uuid"
	"venuenouveau/internal/platform/db"
)
`)
	writeGoFile(t, root, "pricing-catalog/pricing-package-service/application/commands/bad.go", `package commands

import (
	"venuenouveau/contexts/content-publishing/page-service/ports"
	"venuenouveau/contexts/pricing-catalog/pricing-package-service/adapters/memory"
	"venuenouveau/contracts/gen/events/v1"
)
`)
	writeGoFile(t, root, "pricing-catalog/pricing-package-service/application/commands/bad_test.go", `package commands

import "venuenouveau/internal/platform/db"
`)

	violations, err := collectViolations(root)
	require.NoError(t, err)

	rules := map[string][]string{}
	for _, v := range violations {
		rules[v.Import] = append(rules[v.Import], v.Rule)
	}
	assert.NotContains(t, rules, "golang.org/x/text/unicode/norm")
	assert.NotContains(t, rules, "venuenouveau/contracts/gen/events/v1")
	assert.Equal(t, []string{"domain import is outside explicit allowlist"}, rules["github.com/google/uuid"])
	assert.Equal(t, []string{
		"domain must not import runtime infrastructure",
		"domain import is outside explicit allowlist",
	}, rules["venuenouveau/internal/platform/db"])
	assert.Contains(t, rules["venuenouveau/contexts/content-publishing/page-service/ports"], "cross-module imports are forbidden")
	assert.Contains(t, rules["venuenouveau/contexts/pricing-catalog/pricing-package-service/adapters/memory"], "application must not import adapters")
	assert.Len(t, violations, 7)
}

func TestRepositoryContextsRespectBoundaries(t *testing.T) {
	violations, err := collectViolations(filepath.Join("..", "contexts"))
	require.NoError(t, err)
	assert.Empty(t, violations)
}
