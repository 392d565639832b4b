package dataframe

import (
	"math"
	"time"

	"github.com/brianvoe/gofakeit/v7"
)

// saleEpoch is the date of the first synthetic sale, one sale per day after it.
var saleEpoch = time.Date(2023, time.January, 1, 0, 0, 0, 0, time.UTC)

var (
	carMakes = []string{"Toyota", "Honda", "Ford", "BMW", "Tesla"}

	carModels = map[string][]string{
		"Toyota": {"Corolla", "Camry", "RAV4"},
		"Honda":  {"Civic", "Accord", "CR-V"},
		"Ford":   {"F-150", "Focus", "Escape"},
		"BMW":    {"3 Series", "5 Series", "X5"},
		"Tesla":  {"Model 3", "Model S", "Model Y"},
	}

	carColors = []string{"Black", "Blue", "Grey", "Red", "Silver", "White"}

	salespeople = []string{"Alice Nguyen", "Bob Carter", "Chen Wei", "Dana Flores", "Evan Brooks"}
)

// CarSalesColumns returns the fixed schema of the synthetic car sales dataset
func CarSalesColumns() []Column {
	return []Column{
		{Name: "Date", Kind: DateKind},
		{Name: "Make", Kind: StringKind},
		{Name: "Model", Kind: StringKind},
		{Name: "Color", Kind: StringKind},
		{Name: "Year", Kind: IntKind},
		{Name: "Price", Kind: FloatKind},
		{Name: "Mileage", Kind: IntKind},
		{Name: "EngineSize", Kind: FloatKind},
		{Name: "FuelEfficiency", Kind: FloatKind},
		{Name: "Salesperson", Kind: StringKind},
	}
}

// GenerateCarSales produces a Frame of n synthetic car sale records.
// Categorical fields are drawn from fixed enumerations, numeric fields from
// fixed ranges with fixed rounding, dates form a contiguous daily sequence
// from the epoch. The same seed produces an identical frame.
func GenerateCarSales(n int, seed uint64) *Frame {
	faker := gofakeit.New(seed)
	records := make([]Record, 0, n)
	for i := range n {
		carMake := faker.RandomString(carMakes)
		records = append(records, Record{
			saleEpoch.AddDate(0, 0, i),
			carMake,
			faker.RandomString(carModels[carMake]),
			faker.RandomString(carColors),
			faker.Number(2015, 2023),
			round(faker.Float64Range(5000, 80000), 2),
			faker.Number(10000, 150000),
			round(faker.Float64Range(1.0, 5.0), 1),
			round(faker.Float64Range(20, 60), 1),
			faker.RandomString(salespeople),
		})
	}
	// generated records always conform to the schema and arrive date-ordered
	frame, _ := New(CarSalesColumns(), records)
	return frame
}

func round(v float64, digits int) float64 {
	p := math.Pow10(digits)
	return math.Round(v*p) / p
}
