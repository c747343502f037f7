package db

import (
	"context"
	"database/sql"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/guregu/null/v5"

	"github.com/tordrt/zoodb/internal/zoo"
)

var workerColumnList = []string{"w.w_id", "w.name", "w.pay_rate", "w.address", "w.email", "w.phone"}

// scanWorker reads the six worker columns, in workerColumnList order, followed by extra
func scanWorker(rows *sql.Rows, extra ...any) (zoo.Worker, error) {
	var w zoo.Worker
	var payRate null.Float
	var address, email, phone null.String

	dest := append([]any{&w.ID, &w.Name, &payRate, &address, &email, &phone}, extra...)
	if err := rows.Scan(dest...); err != nil {
		return w, err
	}

	w.PayRate = payRate.ValueOrZero()
	w.Address = address.ValueOrZero()
	w.Email = email.ValueOrZero()
	w.Phone = phone.ValueOrZero()
	return w, nil
}

// ListAnimals returns every animal whose species resolves to a genus.
// Animals with an unknown species are dropped by the inner join.
func (s *Store) ListAnimals(ctx context.Context) ([]zoo.Animal, error) {
	return list(ctx, s, "list_animals", func(d Dialect) squirrel.Sqlizer {
		return d.builder().
			Select("a1.a_id", "a1.p_id", "a1.name", "a1.species", "a2.genus").
			From("animals1 a1").
			Join("animals2 a2 ON a1.species = a2.species").
			OrderBy(d.orderByID("a1.a_id")...)
	}, func(rows *sql.Rows) (zoo.Animal, error) {
		var a zoo.Animal
		var habitatID, name null.String
		err := rows.Scan(&a.ID, &habitatID, &name, &a.Species, &a.Genus)
		a.HabitatID = habitatID.ValueOrZero()
		a.Name = name.ValueOrZero()
		return a, err
	})
}

// ListHabitats returns every habitat joined with the climate of its biome
func (s *Store) ListHabitats(ctx context.Context) ([]zoo.Habitat, error) {
	return list(ctx, s, "list_habitats", func(d Dialect) squirrel.Sqlizer {
		return d.builder().
			Select("h1.p_id", "h1.name", "h1.biome", "h1.area", "h2.temperature", "h2.humidity").
			From("habitats1 h1").
			Join("habitats2 h2 ON h1.biome = h2.biome").
			OrderBy(d.orderByID("h1.p_id")...)
	}, func(rows *sql.Rows) (zoo.Habitat, error) {
		var h zoo.Habitat
		var name null.String
		var area, temperature, humidity null.Int
		err := rows.Scan(&h.ID, &name, &h.Biome, &area, &temperature, &humidity)
		h.Name = name.ValueOrZero()
		h.Area = int(area.ValueOrZero())
		h.Temperature = int(temperature.ValueOrZero())
		h.Humidity = int(humidity.ValueOrZero())
		return h, err
	})
}

// ListWorkers returns every staff member
func (s *Store) ListWorkers(ctx context.Context) ([]zoo.Worker, error) {
	return list(ctx, s, "list_workers", func(d Dialect) squirrel.Sqlizer {
		return d.builder().
			Select(workerColumnList...).
			From("workers w").
			OrderBy(d.orderByID("w.w_id")...)
	}, func(rows *sql.Rows) (zoo.Worker, error) {
		return scanWorker(rows)
	})
}

// ListVeterinarians returns workers that have a veterinarians row
func (s *Store) ListVeterinarians(ctx context.Context) ([]zoo.Veterinarian, error) {
	return list(ctx, s, "list_veterinarians", func(d Dialect) squirrel.Sqlizer {
		return d.builder().
			Select(append(workerColumnList, "v.specialization")...).
			From("workers w").
			Join("veterinarians v ON w.w_id = v.w_id").
			OrderBy(d.orderByID("w.w_id")...)
	}, scanVeterinarian)
}

func scanVeterinarian(rows *sql.Rows) (zoo.Veterinarian, error) {
	var specialization null.String
	w, err := scanWorker(rows, &specialization)
	return zoo.Veterinarian{Worker: w, Specialization: specialization.ValueOrZero()}, err
}

// ListZookeepers returns workers that have a zookeepers row
func (s *Store) ListZookeepers(ctx context.Context) ([]zoo.Zookeeper, error) {
	return list(ctx, s, "list_zookeepers", func(d Dialect) squirrel.Sqlizer {
		return d.builder().
			Select(workerColumnList...).
			From("zookeepers z").
			Join("workers w ON z.w_id = w.w_id").
			OrderBy(d.orderByID("w.w_id")...)
	}, scanZookeeper)
}

func scanZookeeper(rows *sql.Rows) (zoo.Zookeeper, error) {
	w, err := scanWorker(rows)
	return zoo.Zookeeper{Worker: w}, err
}

// ListShops returns every shop
func (s *Store) ListShops(ctx context.Context) ([]zoo.Shop, error) {
	return list(ctx, s, "list_shops", func(d Dialect) squirrel.Sqlizer {
		return d.builder().
			Select("p_id", "name", "type").
			From("shops").
			OrderBy(d.orderByID("p_id")...)
	}, func(rows *sql.Rows) (zoo.Shop, error) {
		var shop zoo.Shop
		var name, shopType null.String
		err := rows.Scan(&shop.ID, &name, &shopType)
		shop.Name = name.ValueOrZero()
		shop.Type = shopType.ValueOrZero()
		return shop, err
	})
}

// ListItems returns every shop item
func (s *Store) ListItems(ctx context.Context) ([]zoo.Item, error) {
	return list(ctx, s, "list_items", func(d Dialect) squirrel.Sqlizer {
		return d.builder().
			Select("i_id", "p_id", "name", "stock", "price").
			From("items").
			OrderBy(d.orderByID("i_id")...)
	}, func(rows *sql.Rows) (zoo.Item, error) {
		var item zoo.Item
		var shopID, name null.String
		var stock null.Int
		var price null.Float
		err := rows.Scan(&item.ID, &shopID, &name, &stock, &price)
		item.ShopID = shopID.ValueOrZero()
		item.Name = name.ValueOrZero()
		item.Stock = int(stock.ValueOrZero())
		item.Price = price.ValueOrZero()
		return item, err
	})
}

// ListStorageUnits returns every storage unit
func (s *Store) ListStorageUnits(ctx context.Context) ([]zoo.StorageUnit, error) {
	return list(ctx, s, "list_storage_units", func(d Dialect) squirrel.Sqlizer {
		return d.builder().
			Select("p_id", "name", "temperature").
			From("storage_units").
			OrderBy(d.orderByID("p_id")...)
	}, func(rows *sql.Rows) (zoo.StorageUnit, error) {
		var unit zoo.StorageUnit
		var name null.String
		var temperature null.Int
		err := rows.Scan(&unit.ID, &name, &temperature)
		unit.Name = name.ValueOrZero()
		unit.Temperature = int(temperature.ValueOrZero())
		return unit, err
	})
}

// ListRawFoodOrders returns every raw food order
func (s *Store) ListRawFoodOrders(ctx context.Context) ([]zoo.RawFoodOrder, error) {
	return list(ctx, s, "list_raw_food_orders", func(d Dialect) squirrel.Sqlizer {
		return d.builder().
			Select("o_id", "contents", "weight", "date_received", "expiry_date").
			From("raw_food_orders").
			OrderBy(d.orderByID("o_id")...)
	}, func(rows *sql.Rows) (zoo.RawFoodOrder, error) {
		var order zoo.RawFoodOrder
		var contents null.String
		var weight null.Int
		err := rows.Scan(&order.ID, &contents, &weight, &order.DateReceived, &order.ExpiryDate)
		order.Contents = contents.ValueOrZero()
		order.Weight = int(weight.ValueOrZero())
		return order, err
	})
}

func computerQuery(d Dialect) squirrel.SelectBuilder {
	return d.builder().
		Select("c1.c_id", "c1.w_id", "c1.model", "c2.manufacturer", "c2.type").
		From("computers1 c1").
		Join("computers2 c2 ON c1.model = c2.model").
		OrderBy(d.orderByID("c1.c_id")...)
}

func scanComputer(rows *sql.Rows) (zoo.Computer, error) {
	var c zoo.Computer
	var workerID, manufacturer, computerType null.String
	err := rows.Scan(&c.ID, &workerID, &c.Model, &manufacturer, &computerType)
	c.WorkerID = workerID.ValueOrZero()
	c.Manufacturer = manufacturer.ValueOrZero()
	c.Type = computerType.ValueOrZero()
	return c, err
}

// ListComputers returns every computer joined with its model details
func (s *Store) ListComputers(ctx context.Context) ([]zoo.Computer, error) {
	return list(ctx, s, "list_computers", func(d Dialect) squirrel.Sqlizer {
		return computerQuery(d)
	}, scanComputer)
}

// SearchComputersByManufacturer returns computers whose manufacturer contains
// substring, ignoring case. A blank substring matches nothing and runs no query.
func (s *Store) SearchComputersByManufacturer(ctx context.Context, substring string) ([]zoo.Computer, error) {
	substring = strings.TrimSpace(substring)
	var result []zoo.Computer
	err := s.client.with("search_computers", func(conn *sql.Conn, d Dialect) error {
		if substring == "" {
			result = []zoo.Computer{}
			return nil
		}
		query := computerQuery(d).Where(d.containsFold("c2.manufacturer"), "%"+substring+"%")
		var err error
		result, err = collect(ctx, conn, query, scanComputer)
		return dbError(err, "failed to search computers by manufacturer %q", substring)
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// ListCohabitations returns every pair of cohabiting animals
func (s *Store) ListCohabitations(ctx context.Context) ([]zoo.Cohabitation, error) {
	return list(ctx, s, "list_cohabitations", func(d Dialect) squirrel.Sqlizer {
		return d.builder().
			Select("a_id1", "a_id2").
			From("cohabitates_with").
			OrderBy(d.orderByID("a_id1", "a_id2")...)
	}, func(rows *sql.Rows) (zoo.Cohabitation, error) {
		var c zoo.Cohabitation
		err := rows.Scan(&c.AnimalID1, &c.AnimalID2)
		return c, err
	})
}

// ListMaintainsHealthOf returns every veterinarian to animal assignment
func (s *Store) ListMaintainsHealthOf(ctx context.Context) ([]zoo.MaintainsHealthOf, error) {
	return list(ctx, s, "list_maintains_health_of", func(d Dialect) squirrel.Sqlizer {
		return d.builder().
			Select("w_id", "a_id").
			From("maintains_health_of").
			OrderBy(d.orderByID("w_id", "a_id")...)
	}, func(rows *sql.Rows) (zoo.MaintainsHealthOf, error) {
		var m zoo.MaintainsHealthOf
		err := rows.Scan(&m.WorkerID, &m.AnimalID)
		return m, err
	})
}

// ListFeeds returns every zookeeper to animal feeding assignment
func (s *Store) ListFeeds(ctx context.Context) ([]zoo.Feeds, error) {
	return list(ctx, s, "list_feeds", func(d Dialect) squirrel.Sqlizer {
		return d.builder().
			Select("w_id", "a_id").
			From("feeds").
			OrderBy(d.orderByID("w_id", "a_id")...)
	}, func(rows *sql.Rows) (zoo.Feeds, error) {
		var f zoo.Feeds
		err := rows.Scan(&f.WorkerID, &f.AnimalID)
		return f, err
	})
}

// ListMadeFrom returns every prepared food record
func (s *Store) ListMadeFrom(ctx context.Context) ([]zoo.MadeFrom, error) {
	return list(ctx, s, "list_made_from", func(d Dialect) squirrel.Sqlizer {
		return d.builder().
			Select("a_id", "name", "o_id").
			From("made_from").
			OrderBy(d.castInt("a_id"), "name", d.castInt("o_id"))
	}, func(rows *sql.Rows) (zoo.MadeFrom, error) {
		var m zoo.MadeFrom
		err := rows.Scan(&m.AnimalID, &m.Name, &m.OrderID)
		return m, err
	})
}

// ListLocatedAt returns where each raw food order is stored
func (s *Store) ListLocatedAt(ctx context.Context) ([]zoo.LocatedAt, error) {
	return list(ctx, s, "list_located_at", func(d Dialect) squirrel.Sqlizer {
		return d.builder().
			Select("p_id", "o_id").
			From("located_at").
			OrderBy(d.orderByID("p_id", "o_id")...)
	}, func(rows *sql.Rows) (zoo.LocatedAt, error) {
		var l zoo.LocatedAt
		err := rows.Scan(&l.StorageID, &l.OrderID)
		return l, err
	})
}
