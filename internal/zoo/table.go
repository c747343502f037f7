package zoo

import "strconv"

// Record is implemented by every row type that can be shown as a table
type Record interface {
	Columns() []string
	Values() []string
}

// Table is a rendered view of a list of records
type Table struct {
	Name    string
	Columns []string
	Rows    [][]string
}

// NewTable builds a Table from records. The header comes from the zero value
// of R so empty results still carry their columns.
func NewTable[R Record](name string, records []R) Table {
	var zero R
	t := Table{
		Name:    name,
		Columns: zero.Columns(),
		Rows:    make([][]string, 0, len(records)),
	}
	for _, r := range records {
		t.Rows = append(t.Rows, r.Values())
	}
	return t
}

func (Animal) Columns() []string {
	return []string{"a_id", "p_id", "name", "species", "genus"}
}

func (a Animal) Values() []string {
	return []string{a.ID, a.HabitatID, a.Name, a.Species, a.Genus}
}

func (Habitat) Columns() []string {
	return []string{"p_id", "name", "biome", "area", "temperature", "humidity"}
}

func (h Habitat) Values() []string {
	return []string{h.ID, h.Name, h.Biome, strconv.Itoa(h.Area), strconv.Itoa(h.Temperature), strconv.Itoa(h.Humidity)}
}

func (Worker) Columns() []string {
	return []string{"w_id", "name", "pay_rate", "address", "email", "phone"}
}

func (w Worker) Values() []string {
	return []string{w.ID, w.Name, formatFloat(w.PayRate), w.Address, w.Email, w.Phone}
}

func (Veterinarian) Columns() []string {
	return append(Worker{}.Columns(), "specialization")
}

func (v Veterinarian) Values() []string {
	return append(v.Worker.Values(), v.Specialization)
}

func (Shop) Columns() []string {
	return []string{"p_id", "name", "type"}
}

func (s Shop) Values() []string {
	return []string{s.ID, s.Name, s.Type}
}

func (Item) Columns() []string {
	return []string{"i_id", "p_id", "name", "stock", "price"}
}

func (i Item) Values() []string {
	return []string{i.ID, i.ShopID, i.Name, strconv.Itoa(i.Stock), formatFloat(i.Price)}
}

func (StorageUnit) Columns() []string {
	return []string{"p_id", "name", "temperature"}
}

func (s StorageUnit) Values() []string {
	return []string{s.ID, s.Name, strconv.Itoa(s.Temperature)}
}

func (RawFoodOrder) Columns() []string {
	return []string{"o_id", "contents", "weight", "date_received", "expiry_date"}
}

func (o RawFoodOrder) Values() []string {
	return []string{o.ID, o.Contents, strconv.Itoa(o.Weight), formatDate(o.DateReceived), formatDate(o.ExpiryDate)}
}

func (Computer) Columns() []string {
	return []string{"c_id", "w_id", "model", "manufacturer", "type"}
}

func (c Computer) Values() []string {
	return []string{c.ID, c.WorkerID, c.Model, c.Manufacturer, c.Type}
}

func (Cohabitation) Columns() []string {
	return []string{"a_id1", "a_id2"}
}

func (c Cohabitation) Values() []string {
	return []string{c.AnimalID1, c.AnimalID2}
}

func (MaintainsHealthOf) Columns() []string {
	return []string{"w_id", "a_id"}
}

func (m MaintainsHealthOf) Values() []string {
	return []string{m.WorkerID, m.AnimalID}
}

func (Feeds) Columns() []string {
	return []string{"w_id", "a_id"}
}

func (f Feeds) Values() []string {
	return []string{f.WorkerID, f.AnimalID}
}

func (MadeFrom) Columns() []string {
	return []string{"a_id", "name", "o_id"}
}

func (m MadeFrom) Values() []string {
	return []string{m.AnimalID, m.Name, m.OrderID}
}

func (LocatedAt) Columns() []string {
	return []string{"p_id", "o_id"}
}

func (l LocatedAt) Values() []string {
	return []string{l.StorageID, l.OrderID}
}

func (StorageWeight) Columns() []string {
	return []string{"p_id", "name", "total_weight"}
}

func (s StorageWeight) Values() []string {
	return []string{s.StorageID, s.Name, strconv.FormatInt(s.TotalWeight, 10)}
}
