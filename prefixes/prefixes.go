// Package prefixes loads the community namespace dictionary: a cache of
// well-known (namespace, alias) pairs seeded into a nstrie.Trie before a
// run starts, so common namespaces never need inference.
package prefixes

import (
	"bufio"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"
	fileutil "github.com/projectdiscovery/utils/file"

	"github.com/andrefs/graphsumm/nstrie"
)

// SourceURL is the community prefix CSV, in the shape prefix.cc publishes:
// columns include at least alias, namespace and status.
const SourceURL = "https://prefix.cc/context.csv"

// Config is the optional, user-editable tuning file at
// $HOME/.config/graphsumm/config.yaml, following the teacher's config.go
// idiom of an on-disk YAML file merged over built-in defaults.
type Config struct {
	Blacklist []string `yaml:"blacklist"`
}

// defaultBlacklist excludes community aliases known to collide with
// generic, domain-meaningless namespaces that would otherwise dominate
// inference.
var defaultBlacklist = []string{"ns", "vs", "owl"}

// blacklist is populated by init at package load, merging
// defaultBlacklist with whatever the user's config.yaml adds.
var blacklist = toSet(defaultBlacklist)

func toSet(items []string) map[string]bool {
	m := make(map[string]bool, len(items))
	for _, it := range items {
		m[it] = true
	}
	return m
}

func configPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "graphsumm", "config.yaml"), nil
}

func init() {
	path, err := configPath()
	if err != nil || !fileutil.FileExists(path) {
		return
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return
	}
	for alias := range toSet(cfg.Blacklist) {
		blacklist[alias] = true
	}
}

func cachePath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "graphsumm", "community-prefixes.json"), nil
}

type entry struct {
	Alias     string `json:"alias"`
	Namespace string `json:"namespace"`
}

// Load returns the community namespace trie, using the local cache file if
// present, otherwise fetching and filtering the CSV and persisting the
// result for next time.
func Load() (*nstrie.Trie, error) {
	path, err := cachePath()
	if err != nil {
		return nil, err
	}

	if fileutil.FileExists(path) {
		data, err := os.ReadFile(path)
		if err == nil {
			if t, err := fromCache(data); err == nil {
				return t, nil
			}
		}
	}

	entries, err := fetch()
	if err != nil {
		return nil, fmt.Errorf("prefixes: no local cache and fetch failed: %w", err)
	}

	if err := save(path, entries); err != nil {
		return nil, err
	}
	return build(entries), nil
}

func fromCache(data []byte) (*nstrie.Trie, error) {
	var entries []entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, err
	}
	return build(entries), nil
}

func build(entries []entry) *nstrie.Trie {
	t := nstrie.New()
	nsEntries := make([]nstrie.Entry, 0, len(entries))
	for _, e := range entries {
		nsEntries = append(nsEntries, nstrie.Entry{Alias: e.Alias, Namespace: e.Namespace, Source: nstrie.SourceCommunity})
	}
	t.AddCommunity(nsEntries, false)
	return t
}

func save(path string, entries []entry) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// fetch downloads the community CSV, keeping only canonical entries and
// dropping the blacklist and any namespace containing two '#' characters.
func fetch() ([]entry, error) {
	resp, err := http.Get(SourceURL)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("prefixes: unexpected status %s", resp.Status)
	}
	return parseCSV(resp.Body)
}

func parseCSV(r io.Reader) ([]entry, error) {
	reader := csv.NewReader(bufio.NewReader(r))
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, err
	}
	col := map[string]int{}
	for i, h := range header {
		col[strings.ToLower(strings.TrimSpace(h))] = i
	}
	aliasCol, nsCol, statusCol := col["alias"], col["namespace"], col["status"]

	var out []entry
	for {
		rec, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if statusCol < len(rec) && rec[statusCol] != "canonical" {
			continue
		}
		alias := rec[aliasCol]
		ns := rec[nsCol]
		if blacklist[alias] {
			continue
		}
		if strings.Count(ns, "#") >= 2 {
			continue
		}
		out = append(out, entry{Alias: alias, Namespace: ns})
	}
	return out, nil
}
