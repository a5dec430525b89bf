// Command table-inventory summarizes a recorded table store: for each table
// family it lists the files, row counts and every column seen with its kinds.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/diamondstats/baseball-mcp/internal/store"
	"github.com/diamondstats/baseball-mcp/internal/table"
)

type Inventory struct {
	GeneratedAtUTC string   `json:"generated_at_utc"`
	RecordRoot     string   `json:"record_root"`
	Families       []Family `json:"families"`
}

type Family struct {
	Name         string   `json:"name"`
	FilesScanned int      `json:"files_scanned"`
	Rows         int      `json:"rows"`
	Columns      []Column `json:"columns"`
}

type Column struct {
	Name  string   `json:"name"`
	Kinds []string `json:"kinds"`
	// Files counts the tables carrying the column.
	Files int `json:"files"`
}

func main() {
	var (
		recordRoot = flag.String("record-root", "data/recorded", "root directory of recorded tables")
		outPath    = flag.String("out", "data/derived/table_inventory.json", "output path")
		maxFiles   = flag.Int("max-files", 0, "max files per family (0 = no limit)")
	)
	flag.Parse()

	inv, err := buildInventory(store.NewJSONStore(*recordRoot), *maxFiles, os.Stderr)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	inv.GeneratedAtUTC = time.Now().UTC().Format(time.RFC3339)
	inv.RecordRoot = *recordRoot

	if err := os.MkdirAll(filepath.Dir(*outPath), 0o755); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	payload, err := json.MarshalIndent(inv, "", "  ")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	payload = append(payload, '\n')
	if err := os.WriteFile(*outPath, payload, 0o644); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	fmt.Println("wrote", *outPath)
}

// Globs for each table family, relative to the store root.
var families = []string{
	"people/*.json",
	"batting/*.json",
	"pitching/*.json",
	"team_batting/*.json",
	"batting_range/*.json",
	"statcast/batter/*/*.json",
}

type columnSeen struct {
	kinds map[table.Kind]struct{}
	files int
	order int
}

func buildInventory(st *store.JSONStore, maxFiles int, warn io.Writer) (Inventory, error) {
	var inv Inventory
	for _, pattern := range families {
		keys, err := st.List(pattern)
		if err != nil {
			return inv, fmt.Errorf("list %s: %w", pattern, err)
		}
		if maxFiles > 0 && len(keys) > maxFiles {
			keys = keys[:maxFiles]
		}
		if len(keys) == 0 {
			fmt.Fprintf(warn, "no tables for %s\n", pattern)
			continue
		}

		fam := Family{Name: store.Kind(keys[0])}
		seen := map[string]*columnSeen{}
		for _, key := range keys {
			t, err := st.ReadTable(key)
			if err != nil {
				fmt.Fprintf(warn, "read error %s: %v\n", key, err)
				continue
			}
			fam.FilesScanned++
			fam.Rows += t.Len()
			for _, c := range t.Columns {
				cs, ok := seen[c.Name]
				if !ok {
					cs = &columnSeen{kinds: map[table.Kind]struct{}{}, order: len(seen)}
					seen[c.Name] = cs
				}
				cs.kinds[c.Kind] = struct{}{}
				cs.files++
			}
		}
		fam.Columns = inventoryColumns(seen)
		inv.Families = append(inv.Families, fam)
	}
	return inv, nil
}

// inventoryColumns lists columns in first-seen order with sorted kinds.
func inventoryColumns(seen map[string]*columnSeen) []Column {
	out := make([]Column, 0, len(seen))
	for name, cs := range seen {
		kinds := make([]string, 0, len(cs.kinds))
		for k := range cs.kinds {
			kinds = append(kinds, string(k))
		}
		sort.Strings(kinds)
		out = append(out, Column{Name: name, Kinds: kinds, Files: cs.files})
	}
	sort.Slice(out, func(i, j int) bool { return seen[out[i].Name].order < seen[out[j].Name].order })
	return out
}
