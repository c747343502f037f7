// Package zoo holds the records read from and written to the zoo schema.
package zoo

import (
	"strconv"

	"github.com/guregu/null/v5"
)

// Animal is an animals1 row joined with its genus from animals2
type Animal struct {
	ID        string
	HabitatID string
	Name      string
	Species   string
	Genus     string
}

// Habitat is a habitats1 row joined with the climate of its biome
type Habitat struct {
	ID          string
	Name        string
	Biome       string
	Area        int
	Temperature int
	Humidity    int
}

// Worker is the base identity of every staff member
type Worker struct {
	ID      string
	Name    string
	PayRate float64
	Address string
	Email   string
	Phone   string
}

// Veterinarian extends Worker with a specialization
type Veterinarian struct {
	Worker
	Specialization string
}

// Zookeeper is a Worker with a zookeepers marker row
type Zookeeper struct {
	Worker
}

// Shop represents a gift or food shop
type Shop struct {
	ID   string
	Name string
	Type string
}

// Item is stock held by a shop
type Item struct {
	ID     string
	ShopID string
	Name   string
	Stock  int
	Price  float64
}

// StorageUnit holds raw food orders
type StorageUnit struct {
	ID          string
	Name        string
	Temperature int
}

// RawFoodOrder is a delivery of raw food. Dates may be missing.
type RawFoodOrder struct {
	ID           string
	Contents     string
	Weight       int
	DateReceived null.Time
	ExpiryDate   null.Time
}

// Computer is a computers1 row joined with its model details
type Computer struct {
	ID           string
	WorkerID     string
	Model        string
	Manufacturer string
	Type         string
}

// Cohabitation pairs two animals sharing a habitat
type Cohabitation struct {
	AnimalID1 string
	AnimalID2 string
}

// MaintainsHealthOf links a veterinarian to an animal in their care
type MaintainsHealthOf struct {
	WorkerID string
	AnimalID string
}

// Feeds links a zookeeper to an animal they feed
type Feeds struct {
	WorkerID string
	AnimalID string
}

// MadeFrom records a prepared food for an animal made from a raw order
type MadeFrom struct {
	AnimalID string
	Name     string
	OrderID  string
}

// LocatedAt places a raw food order in a storage unit
type LocatedAt struct {
	StorageID string
	OrderID   string
}

// StorageWeight is the total weight of raw food held by a storage unit
type StorageWeight struct {
	StorageID   string
	Name        string
	TotalWeight int64
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', 2, 64)
}

func formatDate(t null.Time) string {
	if !t.Valid {
		return ""
	}
	return t.Time.Format("2006-01-02")
}
