// Package resolver turns an authored Config into a ResolvedConfig.
//
// Resolution checks that every source reference names a declared source and
// fills structural defaults: an empty dashboard object, an empty block filter
// list and an empty index list. Table schemas, unique constraints and
// notifications are kept only when authored. The pass is pure and safe for
// concurrent use; the result shares no memory with its input.
package resolver

import "indexConfig/internal/model"

// Resolve validates in and returns its canonical form. On error the
// returned config is the zero value.
func Resolve(in model.Config) (model.ResolvedConfig, error) {
	registry, err := indexSources(in.Sources)
	if err != nil {
		return model.ResolvedConfig{}, err
	}

	out := model.ResolvedConfig{
		PGURL:        in.PGURL,
		Dashboard:    in.Dashboard.OrElse(model.EmptyObject()).Clone(),
		Sources:      append([]model.Source{}, in.Sources...),
		Integrations: make([]model.ResolvedIntegration, 0, len(in.Integrations)),
	}
	if len(out.Dashboard) == 0 {
		out.Dashboard = model.EmptyObject()
	}

	for _, ig := range in.Integrations {
		resolved, err := resolveIntegration(ig, registry)
		if err != nil {
			return model.ResolvedConfig{}, err
		}
		out.Integrations = append(out.Integrations, resolved)
	}
	return out, nil
}

func indexSources(sources []model.Source) (map[string]struct{}, error) {
	registry := make(map[string]struct{}, len(sources))
	for _, src := range sources {
		if _, ok := registry[src.Name]; ok {
			return nil, &DuplicateSourceError{Name: src.Name}
		}
		registry[src.Name] = struct{}{}
	}
	return registry, nil
}

func resolveIntegration(ig model.Integration, registry map[string]struct{}) (model.ResolvedIntegration, error) {
	refs := make([]model.SourceRef, 0, len(ig.Sources))
	for _, ref := range ig.Sources {
		if _, ok := registry[ref.Name]; !ok {
			return model.ResolvedIntegration{}, &DanglingSourceReferenceError{
				Integration: ig.Name,
				Source:      ref.Name,
			}
		}
		refs = append(refs, model.SourceRef{Name: ref.Name, Start: ref.Start.Clone()})
	}

	out := model.ResolvedIntegration{
		Name:    ig.Name,
		Enabled: ig.Enabled,
		Sources: refs,
		Table:   resolveTable(ig.Table),
		Block:   cloneBlock(ig.Block.OrElse(nil)),
		Event:   ig.Event.Clone(),
	}
	if n, ok := ig.Notification.Get(); ok {
		out.Notification = model.Some(n.Clone())
	}
	return out, nil
}

func resolveTable(t model.Table) model.ResolvedTable {
	index := t.Index.OrElse(nil)
	out := model.ResolvedTable{
		Name:          t.Name,
		Schema:        t.Schema,
		Columns:       append([]model.Column{}, t.Columns...),
		Index:         cloneSpecs(index),
		DisableUnique: t.DisableUnique,
	}
	if unique, ok := t.Unique.Get(); ok {
		out.Unique = model.Some(cloneSpecs(unique))
	}
	return out
}

func cloneSpecs(in [][]string) [][]string {
	out := make([][]string, 0, len(in))
	for _, spec := range in {
		out = append(out, cloneStrings(spec))
	}
	return out
}

func cloneBlock(in []model.BlockFilter) []model.BlockFilter {
	out := make([]model.BlockFilter, 0, len(in))
	for _, b := range in {
		out = append(out, b.Clone())
	}
	return out
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	return append([]string{}, in...)
}
