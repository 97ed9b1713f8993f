package stack_test

import (
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"

	"mediastack/internal/config"
	"mediastack/internal/stack"
)

// corpus mixes stackable runs, sequels, false positives, folders and
// unclassified files.
func corpus() []stack.Entry {
	files := []string{
		"/m/Movie cd1.avi", "/m/Movie cd2.avi", "/m/Movie cd3.avi",
		"/m/Movie 2 cd1.avi",
		"/m/Film part1 extended.mkv", "/m/Film part2 theatrical.mkv",
		"/m/2001 odyssey cd1.mkv", "/m/2001 odyssey cd2.mkv",
		"/m/Show-a.mp4", "/m/Show-b.mp4", "/m/Show-c.mp4",
		"/m/readme.txt", "/m/Movie cd1.srt",
		"/m/Stub disc1.disc", "/m/Stub disc2.disc",
		"/m/Alone.mkv",
	}
	folders := []string{
		"/m/Series Disc 1", "/m/Series Disc 2",
		"/m/Movie cd1", "/m/Movie cd2",
		"/m/Extras",
	}
	entries := make([]stack.Entry, 0, len(files)+len(folders))
	for _, f := range files {
		entries = append(entries, stack.Entry{ID: f})
	}
	for _, d := range folders {
		entries = append(entries, stack.Entry{ID: d, IsFolder: true})
	}
	return entries
}

func TestResolvePartitionProperties(t *testing.T) {
	cfg := config.Default()
	r := stack.NewResolverFromConfig(&cfg, nil, nil)
	entries := corpus()
	res := r.Resolve(entries)

	folder := make(map[string]bool, len(entries))
	for _, e := range entries {
		folder[e.ID] = e.IsFolder
	}

	seen := map[string]int{}
	for _, s := range res.Stacks {
		if len(s.Files) < 2 {
			t.Fatalf("stack %q has %d members", s.Name, len(s.Files))
		}
		if !slices.IsSorted(s.Files) {
			t.Fatalf("stack %q members not in sorted order: %v", s.Name, s.Files)
		}
		for _, id := range s.Files {
			isFolder, ok := folder[id]
			if !ok {
				t.Fatalf("stack member %q is not an input id", id)
			}
			if isFolder != s.IsFolderStack {
				t.Fatalf("stack %q mixes folders and files (%q)", s.Name, id)
			}
			seen[id]++
		}
	}
	for id, n := range seen {
		if n > 1 {
			t.Fatalf("id %q appears in %d stacks", id, n)
		}
	}
	for _, id := range res.Unstacked {
		if _, ok := seen[id]; ok {
			t.Fatalf("id %q reported both stacked and unstacked", id)
		}
	}
	if !slices.IsSorted(res.Unstacked) {
		t.Fatalf("unstacked ids not sorted: %v", res.Unstacked)
	}
	for _, dropped := range []string{"/m/readme.txt", "/m/Movie cd1.srt"} {
		if slices.Contains(res.Unstacked, dropped) || seen[dropped] > 0 {
			t.Fatalf("unclassified file %q leaked into the result", dropped)
		}
	}
	// Every filtered candidate is accounted for exactly once.
	if got, want := len(seen)+len(res.Unstacked), len(entries)-2; got != want {
		t.Fatalf("accounted for %d candidates, want %d", got, want)
	}
}

func TestResolveExpectedGroupsInCorpus(t *testing.T) {
	cfg := config.Default()
	res := stack.NewResolverFromConfig(&cfg, nil, nil).Resolve(corpus())

	type group struct {
		Name   string
		Folder bool
		Files  []string
	}
	got := make([]group, 0, len(res.Stacks))
	for _, s := range res.Stacks {
		got = append(got, group{Name: s.Name, Folder: s.IsFolderStack, Files: s.Files})
	}
	want := []group{
		{Name: "2001 odyssey", Files: []string{"/m/2001 odyssey cd1.mkv", "/m/2001 odyssey cd2.mkv"}},
		{Name: "Movie", Folder: true, Files: []string{"/m/Movie cd1", "/m/Movie cd2"}},
		{Name: "Movie", Files: []string{"/m/Movie cd1.avi", "/m/Movie cd2.avi", "/m/Movie cd3.avi"}},
		{Name: "Series", Folder: true, Files: []string{"/m/Series Disc 1", "/m/Series Disc 2"}},
		{Name: "Show", Files: []string{"/m/Show-a.mp4", "/m/Show-b.mp4", "/m/Show-c.mp4"}},
		{Name: "Stub", Files: []string{"/m/Stub disc1.disc", "/m/Stub disc2.disc"}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("stacks mismatch (-want +got):\n%s", diff)
	}

	wantUnstacked := []string{
		"/m/Alone.mkv",
		"/m/Extras",
		"/m/Film part1 extended.mkv",
		"/m/Film part2 theatrical.mkv",
		"/m/Movie 2 cd1.avi",
	}
	if diff := cmp.Diff(wantUnstacked, res.Unstacked); diff != "" {
		t.Fatalf("unstacked mismatch (-want +got):\n%s", diff)
	}
}

func TestResolveIsDeterministic(t *testing.T) {
	cfg := config.Default()
	r := stack.NewResolverFromConfig(&cfg, nil, nil)

	entries := corpus()
	first := r.Resolve(entries)

	reversed := slices.Clone(entries)
	slices.Reverse(reversed)
	second := r.Resolve(reversed)

	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("resolution differs between runs (-first +second):\n%s", diff)
	}
}
