package db

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tordrt/zoodb/internal/zoo"
)

func TestListAnimals(t *testing.T) {
	store := newTestStore(t)

	animals, err := store.ListAnimals(context.Background())
	require.NoError(t, err)

	// numeric order, animal 11 has an unknown species
	assert.Equal(t, []string{"1", "2", "9", "10"}, ids(animals, func(a zoo.Animal) string { return a.ID }))
	assert.Equal(t, zoo.Animal{ID: "1", HabitatID: "1", Name: "Leo", Species: "Panthera leo", Genus: "Panthera"}, animals[0])
}

func TestListHabitats(t *testing.T) {
	store := newTestStore(t)

	habitats, err := store.ListHabitats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "2", "10"}, ids(habitats, func(h zoo.Habitat) string { return h.ID }))
	assert.Equal(t, zoo.Habitat{ID: "2", Name: "Bamboo Grove", Biome: "forest", Area: 800, Temperature: 18, Humidity: 70}, habitats[1])
}

func TestListWorkers(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	workers, err := store.ListWorkers(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "2", "3", "4", "5", "10", "12"}, ids(workers, func(w zoo.Worker) string { return w.ID }))

	// missing contact details read as empty strings
	gina := workers[len(workers)-1]
	assert.Equal(t, zoo.Worker{ID: "12", Name: "Gina", PayRate: 35}, gina)

	vets, err := store.ListVeterinarians(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"3", "4", "5", "10", "12"}, ids(vets, func(v zoo.Veterinarian) string { return v.ID }))
	assert.Equal(t, "Surgery", vets[0].Specialization)
	assert.Equal(t, "carol@zoo.test", vets[0].Email)

	keepers, err := store.ListZookeepers(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "2"}, ids(keepers, func(z zoo.Zookeeper) string { return z.ID }))
}

func TestListShopsAndItems(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	shops, err := store.ListShops(ctx)
	require.NoError(t, err)
	assert.Equal(t, []zoo.Shop{
		{ID: "1", Name: "Gift Hut", Type: "gifts"},
		{ID: "2", Name: "Snack Bar", Type: "food"},
	}, shops)

	items, err := store.ListItems(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "2", "10"}, ids(items, func(i zoo.Item) string { return i.ID }))
	assert.Equal(t, zoo.Item{ID: "1", ShopID: "1", Name: "Plush Lion", Stock: 12, Price: 19.99}, items[0])
}

func TestListStorage(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	units, err := store.ListStorageUnits(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "2", "3", "10"}, ids(units, func(u zoo.StorageUnit) string { return u.ID }))
	assert.Equal(t, -18, units[0].Temperature)

	orders, err := store.ListRawFoodOrders(ctx)
	require.NoError(t, err)
	require.Len(t, orders, 5)
	assert.Equal(t, "beef", orders[0].Contents)
	assert.True(t, orders[0].DateReceived.Valid)
	assert.Equal(t, "2024-01-05", orders[0].DateReceived.Time.Format("2006-01-02"))
	assert.False(t, orders[3].DateReceived.Valid)
	assert.False(t, orders[3].ExpiryDate.Valid)

	located, err := store.ListLocatedAt(ctx)
	require.NoError(t, err)
	assert.Equal(t, []zoo.LocatedAt{
		{StorageID: "1", OrderID: "1"},
		{StorageID: "1", OrderID: "2"},
		{StorageID: "2", OrderID: "3"},
		{StorageID: "3", OrderID: "4"},
	}, located)
}

func TestListComputers(t *testing.T) {
	store := newTestStore(t)

	computers, err := store.ListComputers(context.Background())
	require.NoError(t, err)

	// computer 3 references an unknown model
	assert.Equal(t, []string{"1", "2", "10"}, ids(computers, func(c zoo.Computer) string { return c.ID }))
	assert.Equal(t, zoo.Computer{ID: "10", WorkerID: "4", Model: "Latitude 5420", Manufacturer: "Dell", Type: "laptop"}, computers[2])
}

func TestSearchComputersByManufacturer(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	tests := []struct {
		name      string
		substring string
		want      []string
	}{
		{"lower case", "dell", []string{"2", "10"}},
		{"upper case", "DELL", []string{"2", "10"}},
		{"partial", "nov", []string{"1"}},
		{"surrounding blanks", "  len  ", []string{"1"}},
		{"no match", "apple", []string{}},
		{"empty", "", []string{}},
		{"whitespace only", "   ", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			computers, err := store.SearchComputersByManufacturer(ctx, tt.substring)
			require.NoError(t, err)
			require.NotNil(t, computers)
			assert.Equal(t, tt.want, ids(computers, func(c zoo.Computer) string { return c.ID }))
		})
	}
}

func TestListRelationships(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	cohab, err := store.ListCohabitations(ctx)
	require.NoError(t, err)
	assert.Equal(t, []zoo.Cohabitation{
		{AnimalID1: "1", AnimalID2: "9"},
		{AnimalID1: "2", AnimalID2: "10"},
		{AnimalID1: "9", AnimalID2: "1"},
		{AnimalID1: "10", AnimalID2: "2"},
	}, cohab)

	health, err := store.ListMaintainsHealthOf(ctx)
	require.NoError(t, err)
	assert.Equal(t, []zoo.MaintainsHealthOf{
		{WorkerID: "3", AnimalID: "1"},
		{WorkerID: "4", AnimalID: "2"},
		{WorkerID: "4", AnimalID: "10"},
	}, health)

	feeds, err := store.ListFeeds(ctx)
	require.NoError(t, err)
	assert.Len(t, feeds, 6)
	assert.Equal(t, zoo.Feeds{WorkerID: "1", AnimalID: "1"}, feeds[0])
	assert.Equal(t, zoo.Feeds{WorkerID: "2", AnimalID: "1"}, feeds[5])

	madeFrom, err := store.ListMadeFrom(ctx)
	require.NoError(t, err)
	assert.Equal(t, []zoo.MadeFrom{
		{AnimalID: "1", Name: "fish mix", OrderID: "2"},
		{AnimalID: "1", Name: "steak", OrderID: "1"},
		{AnimalID: "2", Name: "bamboo bowl", OrderID: "3"},
	}, madeFrom)
}

func TestReadsAreRepeatable(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	first, err := store.ListAll(ctx)
	require.NoError(t, err)
	second, err := store.ListAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestEmptyTablesReadAsEmptySlices(t *testing.T) {
	store := newTestStore(t)
	execSQL(t, store.Client(), "DELETE FROM shops")

	shops, err := store.ListShops(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, shops)
	assert.Empty(t, shops)
}
