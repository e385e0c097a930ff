// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package analysis

import (
	"context"
	"fmt"

	"getgsa/internal/compliance"
	"getgsa/internal/model"
)

// Analyzer produces a policy checklist for parsed vendor data
type Analyzer interface {
	Analyze(ctx context.Context, parsed model.ParsedData, issues []compliance.Issue) (*PolicyChecklist, error)
}

// RuleAnalyzer cites a retrieved rule for every issue. It never invents
// problems: the checklist holds exactly the given issues, in order.
type RuleAnalyzer struct {
	Retriever RuleRetriever
}

// NewRuleAnalyzer creates an analyzer; a nil retriever uses the full
// default catalog.
func NewRuleAnalyzer(retriever RuleRetriever) *RuleAnalyzer {
	if retriever == nil {
		retriever = NewCatalogRetriever()
	}
	return &RuleAnalyzer{Retriever: retriever}
}

// Analyze implements Analyzer. The query for an issue is its rule category,
// or its description when the category is empty. RequiredOK holds when no
// issue is blocking.
func (a *RuleAnalyzer) Analyze(ctx context.Context, parsed model.ParsedData, issues []compliance.Issue) (*PolicyChecklist, error) {
	out := &PolicyChecklist{
		RequiredOK: !compliance.HasBlocking(issues),
		Problems:   make([]Problem, 0, len(issues)),
		Citations:  []Citation{},
	}
	cited := make(map[string]struct{})

	for _, issue := range issues {
		query := issue.RuleCategory
		if query == "" {
			query = issue.Description
		}

		rule, ok, err := a.Retriever.Retrieve(ctx, query)
		if err != nil {
			return nil, fmt.Errorf("retrieving rule for %s: %w", issue.IssueID, err)
		}

		ruleID := UnknownRule
		if ok && rule.ID != "" {
			ruleID = rule.ID
		}
		out.Problems = append(out.Problems, Problem{
			Issue:    issue.IssueID,
			Evidence: issue.Evidence,
			RuleID:   ruleID,
		})

		if ruleID == UnknownRule {
			continue
		}
		if _, seen := cited[ruleID]; !seen {
			cited[ruleID] = struct{}{}
			out.Citations = append(out.Citations, Citation{RuleID: ruleID, Chunk: rule.Text})
		}
	}

	return out, nil
}
