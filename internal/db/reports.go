package db

import (
	"context"
	"database/sql"

	"github.com/Masterminds/squirrel"

	"github.com/tordrt/zoodb/internal/zoo"
)

// FreeStorageThreshold is the total weight below which a storage unit has free space
const FreeStorageThreshold = 50

// SuperKeepers returns zookeepers who feed every animal in the zoo. The
// query is a double negation: no animal exists that the keeper does not feed.
func (s *Store) SuperKeepers(ctx context.Context) ([]zoo.Zookeeper, error) {
	return list(ctx, s, "report_super_keepers", func(d Dialect) squirrel.Sqlizer {
		return d.builder().
			Select(workerColumnList...).
			From("zookeepers z").
			Join("workers w ON z.w_id = w.w_id").
			Where(`NOT EXISTS (
				SELECT 1 FROM animals1 a
				WHERE NOT EXISTS (
					SELECT 1 FROM feeds f
					WHERE f.w_id = z.w_id AND f.a_id = a.a_id
				)
			)`).
			OrderBy(d.orderByID("w.w_id")...)
	}, scanZookeeper)
}

// CheapVeterinarians returns vets paid at or below the average pay of their
// own specialization, ordered by specialization then pay rate
func (s *Store) CheapVeterinarians(ctx context.Context) ([]zoo.Veterinarian, error) {
	return list(ctx, s, "report_cheap_vets", func(d Dialect) squirrel.Sqlizer {
		return d.builder().
			Select(append(workerColumnList, "v.specialization")...).
			From("veterinarians v").
			Join("workers w ON v.w_id = w.w_id").
			Where(`w.pay_rate <= (
				SELECT AVG(w2.pay_rate)
				FROM workers w2
				JOIN veterinarians v2 ON w2.w_id = v2.w_id
				WHERE v2.specialization = v.specialization
			)`).
			OrderBy("v.specialization", "w.pay_rate", d.castInt("w.w_id"))
	}, scanVeterinarian)
}

func storageWeightQuery(d Dialect) squirrel.SelectBuilder {
	return d.builder().
		Select("s.p_id", "s.name", "COALESCE(SUM(o.weight), 0) AS total_weight").
		From("storage_units s").
		LeftJoin("located_at l ON s.p_id = l.p_id").
		LeftJoin("raw_food_orders o ON l.o_id = o.o_id").
		GroupBy("s.p_id", "s.name").
		OrderBy(d.orderByID("s.p_id")...)
}

func scanStorageWeight(rows *sql.Rows) (zoo.StorageWeight, error) {
	var sw zoo.StorageWeight
	var name sql.NullString
	err := rows.Scan(&sw.StorageID, &name, &sw.TotalWeight)
	sw.Name = name.String
	return sw, err
}

// StorageTotals returns the weight of raw food held by every storage unit.
// Units without orders report zero.
func (s *Store) StorageTotals(ctx context.Context) ([]zoo.StorageWeight, error) {
	return list(ctx, s, "report_storage_totals", func(d Dialect) squirrel.Sqlizer {
		return storageWeightQuery(d)
	}, scanStorageWeight)
}

// FreeStorage returns storage units holding strictly less than FreeStorageThreshold
func (s *Store) FreeStorage(ctx context.Context) ([]zoo.StorageWeight, error) {
	return list(ctx, s, "report_free_storage", func(d Dialect) squirrel.Sqlizer {
		return storageWeightQuery(d).
			Having("COALESCE(SUM(o.weight), 0) < ?", FreeStorageThreshold)
	}, scanStorageWeight)
}

// ReportID identifies one of the fixed analytical reports
type ReportID string

const (
	ReportSuperKeepers  ReportID = "super-keepers"
	ReportCheapVets     ReportID = "cheap-vets"
	ReportFreeStorage   ReportID = "free-storage"
	ReportStorageTotals ReportID = "storage-totals"
)

// ReportInfo describes a report for selection lists
type ReportInfo struct {
	ID    ReportID
	Title string
}

type reportEntry struct {
	ReportInfo
	run func(s *Store, ctx context.Context) (zoo.Table, error)
}

func tableOf[R zoo.Record](name string, fetch func(s *Store, ctx context.Context) ([]R, error)) func(s *Store, ctx context.Context) (zoo.Table, error) {
	return func(s *Store, ctx context.Context) (zoo.Table, error) {
		records, err := fetch(s, ctx)
		if err != nil {
			return zoo.Table{}, err
		}
		return zoo.NewTable(name, records), nil
	}
}

var reportCatalog = []reportEntry{
	{ReportInfo{ReportSuperKeepers, "Super zookeepers (feed all animals)"},
		tableOf("super_keepers", (*Store).SuperKeepers)},
	{ReportInfo{ReportCheapVets, "Cheapest veterinarians (per specialization)"},
		tableOf("cheap_vets", (*Store).CheapVeterinarians)},
	{ReportInfo{ReportFreeStorage, "Storage units with free space (< 50kg total)"},
		tableOf("free_storage", (*Store).FreeStorage)},
	{ReportInfo{ReportStorageTotals, "Total weight stored per storage unit"},
		tableOf("storage_totals", (*Store).StorageTotals)},
}

var reportsByID = func() map[ReportID]reportEntry {
	m := make(map[ReportID]reportEntry, len(reportCatalog))
	for _, r := range reportCatalog {
		m[r.ID] = r
	}
	return m
}()

// Reports lists the available reports in display order
func Reports() []ReportInfo {
	infos := make([]ReportInfo, len(reportCatalog))
	for i, r := range reportCatalog {
		infos[i] = r.ReportInfo
	}
	return infos
}

// RunReport runs the report identified by id
func (s *Store) RunReport(ctx context.Context, id ReportID) (zoo.Table, error) {
	entry, ok := reportsByID[id]
	if !ok {
		return zoo.Table{}, validationErrorf("unknown report %q", id)
	}
	return entry.run(s, ctx)
}
