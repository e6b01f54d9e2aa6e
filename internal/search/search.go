// Package search ranks indexed documentation items against keyword queries.
package search

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/rhaitools/rhaidocs/internal/cas"
	"github.com/rhaitools/rhaidocs/internal/db"
	md "github.com/rhaitools/rhaidocs/internal/markdown"
	"golang.org/x/sync/singleflight"
)

// Term weights. A hit on the item name outranks a signature hit, which
// outranks a hit somewhere in the doc body. An exact name match counts
// double.
const (
	nameWeight      = 10
	signatureWeight = 5
	docWeight       = 1
)

const maxCandidates = 500

type Searcher struct {
	db    *db.DB
	group singleflight.Group
}

func NewSearcher(database *db.DB) *Searcher {
	return &Searcher{db: database}
}

// Result is one ranked search hit.
type Result struct {
	URI       string `json:"uri"`
	Namespace string `json:"namespace"`
	Name      string `json:"name"`
	Kind      string `json:"kind"`
	Signature string `json:"signature"`
	Score     int    `json:"score"`
	Snippet   string `json:"snippet,omitempty"`
}

// ItemURI builds the resource URI an item is served under.
func ItemURI(namespace, name string) string {
	return fmt.Sprintf("rhaidoc://%s/%s", namespace, name)
}

// ParseURI splits a rhaidoc:// resource URI into namespace and item name.
// The namespace is everything between the scheme and the last path segment.
func ParseURI(uri string) (namespace, name string, err error) {
	trimmed, ok := strings.CutPrefix(uri, "rhaidoc://")
	if !ok {
		return "", "", fmt.Errorf("invalid resource URI %q: missing rhaidoc:// scheme", uri)
	}
	idx := strings.LastIndex(trimmed, "/")
	if idx <= 0 || idx == len(trimmed)-1 {
		return "", "", fmt.Errorf("invalid resource URI %q: expected rhaidoc://{namespace}/{item}", uri)
	}
	return trimmed[:idx], trimmed[idx+1:], nil
}

// Search ranks indexed items against the query terms. When namespaces is
// non-empty, only items from those module namespaces are considered.
func (s *Searcher) Search(query string, namespaces []string, limit int) ([]Result, error) {
	if limit <= 0 {
		limit = 10
	}
	terms := queryTerms(query)
	if len(terms) == 0 {
		return nil, nil
	}
	slog.Info("search", "query", query, "limit", limit, "namespaces", namespaces)

	// Singleflight: dedup concurrent identical queries
	key := fmt.Sprintf("%s|%s|%d", strings.Join(terms, " "), strings.Join(namespaces, ","), limit)
	v, err, _ := s.group.Do(key, func() (interface{}, error) {
		results, err := s.search(terms, namespaces, limit)
		return results, err
	})
	if err != nil {
		return nil, err
	}
	return v.([]Result), nil
}

func (s *Searcher) search(terms, namespaces []string, limit int) ([]Result, error) {
	fetchLimit := limit * 10
	if fetchLimit > maxCandidates {
		fetchLimit = maxCandidates
	}
	candidates, err := s.db.SearchItems(terms, fetchLimit)
	if err != nil {
		return nil, fmt.Errorf("fetching candidates: %w", err)
	}
	slog.Debug("candidate fetch done", "candidates", len(candidates))
	if len(candidates) == 0 {
		return nil, nil
	}

	itemIDs := make([]int, len(candidates))
	for i := range candidates {
		itemIDs[i] = candidates[i].ID
	}
	moduleMap, err := s.db.GetModulesForItems(itemIDs)
	if err != nil {
		return nil, fmt.Errorf("resolving modules: %w", err)
	}

	allowed := make(map[string]bool, len(namespaces))
	for _, ns := range namespaces {
		allowed[ns] = true
	}

	type scoredItem struct {
		item      *db.Item
		namespace string
		score     int
	}
	var matches []scoredItem
	for i := range candidates {
		item := &candidates[i]
		mod := moduleMap[item.ID]
		if mod == nil {
			continue
		}
		if len(allowed) > 0 && !allowed[mod.Namespace] {
			continue
		}
		score := scoreItem(item, terms)
		if score == 0 {
			continue
		}
		matches = append(matches, scoredItem{item: item, namespace: mod.Namespace, score: score})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].score != matches[j].score {
			return matches[i].score > matches[j].score
		}
		if matches[i].item.Name != matches[j].item.Name {
			return matches[i].item.Name < matches[j].item.Name
		}
		return matches[i].namespace < matches[j].namespace
	})
	if len(matches) > limit {
		matches = matches[:limit]
	}

	results := make([]Result, 0, len(matches))
	for _, m := range matches {
		results = append(results, Result{
			URI:       ItemURI(m.namespace, m.item.Name),
			Namespace: m.namespace,
			Name:      m.item.Name,
			Kind:      m.item.Kind,
			Signature: m.item.Signature,
			Score:     m.score,
			Snippet:   s.snippetForItem(m.item, m.namespace),
		})
	}
	return results, nil
}

// queryTerms splits a query into lowercase terms.
func queryTerms(query string) []string {
	return strings.Fields(strings.ToLower(query))
}

// scoreItem sums the term weights for one item. Matching is
// case-insensitive.
func scoreItem(item *db.Item, terms []string) int {
	name := strings.ToLower(item.Name)
	sig := strings.ToLower(item.Signature)
	doc := strings.ToLower(item.Doc)

	score := 0
	for _, term := range terms {
		switch {
		case name == term:
			score += 2 * nameWeight
		case strings.Contains(name, term):
			score += nameWeight
		}
		if strings.Contains(sig, term) {
			score += signatureWeight
		}
		if strings.Contains(doc, term) {
			score += docWeight
		}
	}
	return score
}

// ItemMarkdown returns an item's stored documentation with in-page anchor
// links rewritten to resource URIs.
func (s *Searcher) ItemMarkdown(item *db.Item, namespace string) (string, error) {
	docsText, err := cas.Read(item.ContentHash)
	if err != nil {
		return "", fmt.Errorf("reading item doc: %w", err)
	}
	return s.rewriteAnchors(docsText, namespace), nil
}

func (s *Searcher) snippetForItem(item *db.Item, namespace string) string {
	if item.ContentHash == "" {
		return ""
	}
	docsText, err := s.ItemMarkdown(item, namespace)
	if err != nil {
		return ""
	}
	return truncate(docsText, 200)
}

// rewriteAnchors replaces in-page anchor links with resource URIs so a
// snippet served on its own stays navigable.
func (s *Searcher) rewriteAnchors(text, namespace string) string {
	dests := md.AnchorDestinations(text)
	if len(dests) == 0 {
		return text
	}
	linkMap := make(map[string]string, len(dests))
	for _, dest := range dests {
		target, err := s.db.GetItemByHeading(namespace, strings.TrimPrefix(dest, "#"))
		if err != nil || target == nil {
			continue
		}
		linkMap[dest] = ItemURI(namespace, target.Name)
	}
	return md.RewriteLinks(text, linkMap)
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
