// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package analysis

import (
	"context"
	"strings"

	"getgsa/internal/compliance"
)

// RuleRetriever finds the rule most relevant to a query. A false result
// means the retriever abstains.
type RuleRetriever interface {
	Retrieve(ctx context.Context, query string) (compliance.Rule, bool, error)
}

// CatalogRetriever answers from an in-memory rule catalog. Queries are
// matched by rule category first, then by rule id, then by a
// case-insensitive title match.
type CatalogRetriever struct {
	Catalog compliance.Catalog
}

// NewCatalogRetriever creates a retriever over the default catalog
// minus the given rule ids.
func NewCatalogRetriever(without ...string) *CatalogRetriever {
	return &CatalogRetriever{Catalog: compliance.DefaultCatalog().Without(without...)}
}

// Retrieve implements RuleRetriever
func (r *CatalogRetriever) Retrieve(ctx context.Context, query string) (compliance.Rule, bool, error) {
	if err := ctx.Err(); err != nil {
		return compliance.Rule{}, false, err
	}

	q := strings.TrimSpace(query)
	if q == "" {
		return compliance.Rule{}, false, nil
	}
	if rule, ok := r.Catalog.ForCategory(strings.ToLower(q)); ok {
		return rule, true, nil
	}
	if rule, ok := r.Catalog.ByID(strings.ToUpper(q)); ok {
		return rule, true, nil
	}
	lower := strings.ToLower(q)
	for _, rule := range r.Catalog {
		if strings.Contains(lower, strings.ToLower(rule.Title)) {
			return rule, true, nil
		}
	}
	return compliance.Rule{}, false, nil
}
