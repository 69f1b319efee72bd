package services

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/spcn/suite-draft/pkg/core/draft"
	"github.com/spcn/suite-draft/pkg/core/model"
)

// minIDPrefix is the shortest id prefix accepted as a dancer reference
const minIDPrefix = 4

// ResolveDancers turns user references into dancer ids. A reference is an exact id,
// a case-insensitive full name, or an id prefix of at least four characters.
// Duplicates collapse to the first occurrence. Every bad reference is reported.
func ResolveDancers(state *draft.State, refs []string) ([]string, error) {
	if state == nil {
		return nil, ErrNoDraft
	}

	ids := make([]string, 0, len(refs))
	var errs []error
	for _, ref := range refs {
		id, err := resolveDancer(state, ref)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if !slices.Contains(ids, id) {
			ids = append(ids, id)
		}
	}

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return ids, nil
}

func resolveDancer(state *draft.State, ref string) (string, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", fmt.Errorf("%w: empty reference", ErrUnknownDancer)
	}

	if d, ok := state.Dancer(ref); ok {
		return d.ID, nil
	}

	name := strings.Join(strings.Fields(ref), " ")
	if matches := matchDancers(state.Dancers, func(d model.Dancer) bool {
		return strings.EqualFold(strings.Join(strings.Fields(d.FullName), " "), name)
	}); len(matches) > 0 {
		return single(ref, matches)
	}

	if len(ref) >= minIDPrefix {
		if matches := matchDancers(state.Dancers, func(d model.Dancer) bool {
			return strings.HasPrefix(d.ID, ref)
		}); len(matches) > 0 {
			return single(ref, matches)
		}
	}

	return "", fmt.Errorf("%w: %q", ErrUnknownDancer, ref)
}

func matchDancers(dancers []model.Dancer, match func(model.Dancer) bool) []model.Dancer {
	var out []model.Dancer
	for _, d := range dancers {
		if match(d) {
			out = append(out, d)
		}
	}
	return out
}

func single(ref string, matches []model.Dancer) (string, error) {
	if len(matches) == 1 {
		return matches[0].ID, nil
	}
	ids := make([]string, len(matches))
	for i, d := range matches {
		ids[i] = d.ID
	}
	return "", fmt.Errorf("%w: %q matches %s", ErrAmbiguousDancer, ref, strings.Join(ids, ", "))
}

// ResolveSuite parses a suite name typed by the user
func ResolveSuite(input string) (model.Suite, error) {
	suite, ok := model.ParseSuite(input)
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownSuite, input)
	}
	return suite, nil
}
