package schema

import "testing"

func TestStringifyString(t *testing.T) {
	s := NewString("count()")
	if got := Stringify(s); got != "count()" {
		t.Errorf("expect raw string, got: %s", got)
	}
}

func TestStringifyStruct(t *testing.T) {
	in := NewInput("how many cars were sold?")
	got := Stringify(in)
	expect := `{"chat_message":"how many cars were sold?"}`
	if got != expect {
		t.Errorf("expect:%s, got:%s", expect, got)
	}
}

func TestToBytes(t *testing.T) {
	s := NewString("mean('Price')")
	if got := string(ToBytes(s)); got != "mean('Price')" {
		t.Errorf("expect raw bytes, got: %s", got)
	}
}
