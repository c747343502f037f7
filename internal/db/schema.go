package db

import (
	"context"
	"database/sql"
	"sort"
	"strings"

	"github.com/Masterminds/squirrel"
)

// ZooTables lists every table the data layer reads or writes
var ZooTables = []string{
	"animals1", "animals2", "habitats1", "habitats2",
	"workers", "veterinarians", "zookeepers",
	"shops", "items", "storage_units", "raw_food_orders", "located_at",
	"computers1", "computers2",
	"cohabitates_with", "maintains_health_of", "feeds", "made_from",
}

// CheckSchema returns the zoo tables missing from the connected database,
// sorted by name. An empty result means every operation has its tables.
func (s *Store) CheckSchema(ctx context.Context) ([]string, error) {
	names, err := list(ctx, s, "check_schema", func(d Dialect) squirrel.Sqlizer {
		return d.tableNames(d.builder())
	}, func(rows *sql.Rows) (string, error) {
		var name string
		err := rows.Scan(&name)
		return strings.ToLower(name), err
	})
	if err != nil {
		return nil, err
	}

	present := make(map[string]bool, len(names))
	for _, n := range names {
		present[n] = true
	}

	missing := make([]string, 0)
	for _, t := range ZooTables {
		if !present[t] {
			missing = append(missing, t)
		}
	}
	sort.Strings(missing)
	return missing, nil
}
