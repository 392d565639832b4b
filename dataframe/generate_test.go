package dataframe

import (
	"math"
	"reflect"
	"testing"
	"time"
)

func TestGenerateDeterminism(t *testing.T) {
	a := GenerateCarSales(200, 42)
	b := GenerateCarSales(200, 42)
	if a.NumRows() != b.NumRows() {
		t.Fatalf("row count mismatch: %d vs %d", a.NumRows(), b.NumRows())
	}
	for i := range a.NumRows() {
		if !reflect.DeepEqual(a.Record(i), b.Record(i)) {
			t.Fatalf("record %d differs between generations: %v vs %v", i, a.Record(i), b.Record(i))
		}
	}
	c := GenerateCarSales(200, 43)
	same := true
	for i := range a.NumRows() {
		if !reflect.DeepEqual(a.Record(i), c.Record(i)) {
			same = false
			break
		}
	}
	if same {
		t.Error("different seeds produced identical frames")
	}
}

func TestGenerateRowCount(t *testing.T) {
	for _, n := range []int{0, 1, 50, 1000} {
		frame := GenerateCarSales(n, 1)
		if frame.NumRows() != n {
			t.Errorf("expect %d rows, got %d", n, frame.NumRows())
		}
	}
}

func TestGenerateSchemaInvariant(t *testing.T) {
	frame := GenerateCarSales(100, 7)
	columns := frame.Columns()
	for i := range frame.NumRows() {
		rec := frame.Record(i)
		if len(rec) != len(columns) {
			t.Fatalf("record %d has %d values, expect %d", i, len(rec), len(columns))
		}
		for idx, col := range columns {
			if rec[idx] == nil {
				t.Fatalf("record %d column %q is nil", i, col.Name)
			}
			if err := checkValue(col.Kind, rec[idx]); err != nil {
				t.Fatalf("record %d column %q: %v", i, col.Name, err)
			}
		}
	}
}

func TestGenerateDateOrdering(t *testing.T) {
	frame := GenerateCarSales(365, 9)
	dateIdx, _ := frame.ColumnIndex("Date")
	prev := frame.Record(0)[dateIdx].(time.Time)
	for i := 1; i < frame.NumRows(); i++ {
		cur := frame.Record(i)[dateIdx].(time.Time)
		if cur.Before(prev) {
			t.Fatalf("record %d date %s before previous %s", i, cur, prev)
		}
		if !cur.Equal(prev.AddDate(0, 0, 1)) {
			t.Fatalf("record %d date %s is not one day after %s", i, cur, prev)
		}
		prev = cur
	}
}

func TestGenerateValueRanges(t *testing.T) {
	frame := GenerateCarSales(300, 11)
	priceIdx, _ := frame.ColumnIndex("Price")
	engineIdx, _ := frame.ColumnIndex("EngineSize")
	yearIdx, _ := frame.ColumnIndex("Year")
	for i := range frame.NumRows() {
		rec := frame.Record(i)
		price := rec[priceIdx].(float64)
		if price < 5000 || price > 80000 {
			t.Fatalf("record %d price %f out of range", i, price)
		}
		if rounded := math.Round(price*100) / 100; rounded != price {
			t.Fatalf("record %d price %f not rounded to 2 decimals", i, price)
		}
		engine := rec[engineIdx].(float64)
		if rounded := math.Round(engine*10) / 10; rounded != engine {
			t.Fatalf("record %d engine size %f not rounded to 1 decimal", i, engine)
		}
		year := rec[yearIdx].(int)
		if year < 2015 || year > 2023 {
			t.Fatalf("record %d year %d out of range", i, year)
		}
	}
}
