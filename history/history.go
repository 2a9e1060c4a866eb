// Package history provides the implementation for tracking and persisting scenario replay outcomes.
package history

import (
	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/metafates/gache"
	"golang.org/x/exp/slices"

	"github.com/slideplay/slideplay/filesystem"
	"github.com/slideplay/slideplay/sim"
	"github.com/slideplay/slideplay/where"
)

// cacher provides an abstracted, disk-backed registry for replay records.
var cacher = gache.New[map[string]*SavedRun](
	&gache.Options{
		Path:       where.History(),
		FileSystem: &filesystem.GacheFs{},
	},
)

// Get returns the complete collection of replay records from the persistent
// store.
func Get() (map[string]*SavedRun, error) {
	cached, expired, err := cacher.Get()
	if err != nil {
		return nil, err
	}
	if expired || cached == nil {
		return make(map[string]*SavedRun), nil
	}
	return cached, nil
}

// Save persists the outcome of a scenario replay, replacing any earlier run
// of the same scenario file.
func Save(path string, result *sim.Result) error {
	saved, err := Get()
	if err != nil {
		return err
	}

	record := newSavedRun(path, result)
	saved[record.encode()] = record

	return cacher.Set(saved)
}

// Remove permanently deletes a replay record from the registry.
func Remove(run *SavedRun) error {
	saved, err := Get()
	if err != nil {
		return err
	}

	delete(saved, run.encode())
	return cacher.Set(saved)
}

// Clear drops every replay record.
func Clear() error {
	return cacher.Set(make(map[string]*SavedRun))
}

// Search returns the replay records whose scenario name fuzzily matches the
// query, most recent first. An empty query matches everything.
func Search(query string) ([]*SavedRun, error) {
	saved, err := Get()
	if err != nil {
		return nil, err
	}

	var runs []*SavedRun
	for _, run := range saved {
		if query == "" || fuzzy.MatchFold(query, run.Scenario) {
			runs = append(runs, run)
		}
	}

	slices.SortFunc(runs, func(a, b *SavedRun) int {
		return b.RanAt.Compare(a.RanAt)
	})

	return runs, nil
}
