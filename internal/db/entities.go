package db

import (
	"context"
	"sort"

	"github.com/tordrt/zoodb/internal/zoo"
)

// EntityKind names a listable entity or relationship table
type EntityKind string

const (
	EntityAnimals           EntityKind = "animals"
	EntityHabitats          EntityKind = "habitats"
	EntityWorkers           EntityKind = "workers"
	EntityVeterinarians     EntityKind = "veterinarians"
	EntityZookeepers        EntityKind = "zookeepers"
	EntityShops             EntityKind = "shops"
	EntityItems             EntityKind = "items"
	EntityStorageUnits      EntityKind = "storage_units"
	EntityRawFoodOrders     EntityKind = "raw_food_orders"
	EntityComputers         EntityKind = "computers"
	EntityCohabitations     EntityKind = "cohabitates_with"
	EntityMaintainsHealthOf EntityKind = "maintains_health_of"
	EntityFeeds             EntityKind = "feeds"
	EntityMadeFrom          EntityKind = "made_from"
	EntityLocatedAt         EntityKind = "located_at"
)

type tableLister func(s *Store, ctx context.Context) (zoo.Table, error)

var entityListers = map[EntityKind]tableLister{
	EntityAnimals:           tableOf(string(EntityAnimals), (*Store).ListAnimals),
	EntityHabitats:          tableOf(string(EntityHabitats), (*Store).ListHabitats),
	EntityWorkers:           tableOf(string(EntityWorkers), (*Store).ListWorkers),
	EntityVeterinarians:     tableOf(string(EntityVeterinarians), (*Store).ListVeterinarians),
	EntityZookeepers:        tableOf(string(EntityZookeepers), (*Store).ListZookeepers),
	EntityShops:             tableOf(string(EntityShops), (*Store).ListShops),
	EntityItems:             tableOf(string(EntityItems), (*Store).ListItems),
	EntityStorageUnits:      tableOf(string(EntityStorageUnits), (*Store).ListStorageUnits),
	EntityRawFoodOrders:     tableOf(string(EntityRawFoodOrders), (*Store).ListRawFoodOrders),
	EntityComputers:         tableOf(string(EntityComputers), (*Store).ListComputers),
	EntityCohabitations:     tableOf(string(EntityCohabitations), (*Store).ListCohabitations),
	EntityMaintainsHealthOf: tableOf(string(EntityMaintainsHealthOf), (*Store).ListMaintainsHealthOf),
	EntityFeeds:             tableOf(string(EntityFeeds), (*Store).ListFeeds),
	EntityMadeFrom:          tableOf(string(EntityMadeFrom), (*Store).ListMadeFrom),
	EntityLocatedAt:         tableOf(string(EntityLocatedAt), (*Store).ListLocatedAt),
}

// EntityKinds returns every listable kind, sorted by name
func EntityKinds() []EntityKind {
	kinds := make([]EntityKind, 0, len(entityListers))
	for k := range entityListers {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}

// ListTable lists kind as a generic table
func (s *Store) ListTable(ctx context.Context, kind EntityKind) (zoo.Table, error) {
	lister, ok := entityListers[kind]
	if !ok {
		return zoo.Table{}, validationErrorf("unknown entity %q", kind)
	}
	return lister(s, ctx)
}

// ListAll lists every entity and relationship table
func (s *Store) ListAll(ctx context.Context) ([]zoo.Table, error) {
	kinds := EntityKinds()
	tables := make([]zoo.Table, 0, len(kinds))
	for _, kind := range kinds {
		t, err := s.ListTable(ctx, kind)
		if err != nil {
			return nil, err
		}
		tables = append(tables, t)
	}
	return tables, nil
}
