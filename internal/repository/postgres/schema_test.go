// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2025-2026 ozanparquet contributors
// https://github.com/skursatToklucu/ozanparquet

package postgres_test

import (
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"testing"
)

// These tests read the migration files and repository sources directly and
// need no database.

var (
	reCreateTable     = regexp.MustCompile(`(?i)CREATE\s+TABLE\s+(?:IF\s+NOT\s+EXISTS\s+)?(\w+)\s*\(`)
	reCreateIndexName = regexp.MustCompile(`(?i)CREATE\s+(?:UNIQUE\s+)?INDEX\s+(?:IF\s+NOT\s+EXISTS\s+)?(\w+)`)
	reDropTable       = regexp.MustCompile(`(?i)DROP\s+TABLE\s+(?:IF\s+EXISTS\s+)?(\w+)`)
	reDropIndex       = regexp.MustCompile(`(?i)DROP\s+INDEX\s+(?:IF\s+EXISTS\s+)?(\w+)`)
	reInsertInto      = regexp.MustCompile(`(?i)INSERT\s+INTO\s+(\w+)\s*\(([^)]+)\)`)
)

func readFile(t *testing.T, path string) string {
	t.Helper()
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return string(b)
}

func names(sql string, re *regexp.Regexp) []string {
	var out []string
	for _, m := range re.FindAllStringSubmatch(sql, -1) {
		out = append(out, strings.ToLower(m[1]))
	}
	return out
}

func TestMigrationRollbackPairs(t *testing.T) {
	ups, err := filepath.Glob(filepath.Join("migrations", "*.up.sql"))
	if err != nil || len(ups) == 0 {
		t.Fatalf("no up migrations found (err=%v)", err)
	}
	sort.Strings(ups)

	for _, up := range ups {
		version := strings.TrimSuffix(filepath.Base(up), ".up.sql")
		t.Run(version, func(t *testing.T) {
			down := filepath.Join("migrations", version+".down.sql")
			if _, err := os.Stat(down); err != nil {
				t.Fatalf("missing %s", filepath.Base(down))
			}
			upSQL, downSQL := readFile(t, up), readFile(t, down)

			dropped := make(map[string]bool)
			for _, n := range names(downSQL, reDropTable) {
				dropped["table:"+n] = true
			}
			for _, n := range names(downSQL, reDropIndex) {
				dropped["index:"+n] = true
			}
			for _, n := range names(upSQL, reCreateTable) {
				if !dropped["table:"+n] {
					t.Errorf("up creates table %q but down does not drop it", n)
				}
			}
			for _, n := range names(upSQL, reCreateIndexName) {
				if !dropped["index:"+n] {
					t.Errorf("up creates index %q but down does not drop it", n)
				}
			}
		})
	}
}

// parseSchema maps table name to its column set from CREATE TABLE blocks.
func parseSchema(t *testing.T) map[string]map[string]bool {
	t.Helper()
	ups, _ := filepath.Glob(filepath.Join("migrations", "*.up.sql"))
	schema := make(map[string]map[string]bool)

	skip := map[string]bool{"primary": true, "foreign": true, "unique": true, "check": true, "constraint": true}
	for _, f := range ups {
		sql := readFile(t, f)
		for _, loc := range reCreateTable.FindAllStringSubmatchIndex(sql, -1) {
			table := strings.ToLower(sql[loc[2]:loc[3]])
			body := sql[loc[1]:]
			depth, end := 1, -1
			for i := 0; i < len(body) && end < 0; i++ {
				switch body[i] {
				case '(':
					depth++
				case ')':
					depth--
					if depth == 0 {
						end = i
					}
				}
			}
			if end < 0 {
				continue
			}
			cols := make(map[string]bool)
			for _, line := range strings.Split(body[:end], "\n") {
				fields := strings.Fields(strings.TrimSpace(line))
				if len(fields) < 2 || skip[strings.ToLower(fields[0])] {
					continue
				}
				cols[strings.ToLower(fields[0])] = true
			}
			schema[table] = cols
		}
	}
	return schema
}

func TestRepositoryInsertsMatchSchema(t *testing.T) {
	schema := parseSchema(t)
	for _, table := range []string{
		"admin_users", "categories", "products", "blog_posts", "gallery_items",
		"testimonials", "faq_items", "quote_requests", "contact_submissions", "site_settings",
	} {
		if _, ok := schema[table]; !ok {
			t.Errorf("table %q not found in migrations", table)
		}
	}

	files, _ := filepath.Glob("*_repo.go")
	if len(files) == 0 {
		t.Fatal("no repository files found")
	}
	for _, f := range files {
		src := readFile(t, f)
		for _, m := range reInsertInto.FindAllStringSubmatch(src, -1) {
			table := strings.ToLower(m[1])
			cols, ok := schema[table]
			if !ok {
				t.Errorf("%s inserts into unknown table %q", f, table)
				continue
			}
			for _, c := range strings.Split(m[2], ",") {
				c = strings.ToLower(strings.TrimSpace(c))
				if c != "" && !cols[c] {
					t.Errorf("%s: column %q is not in %s", f, c, table)
				}
			}
		}
	}
}
