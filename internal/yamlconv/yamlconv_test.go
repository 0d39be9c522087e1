package yamlconv

import "testing"

func TestFromJSONKeepsOrderAndTypes(t *testing.T) {
	got, err := FromJSON([]byte(`{"name":"string","cars":[{"car_price":1,"car_name":"true"}],"meta":{}}`))
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	want := `name: string
cars:
  - car_price: 1
    car_name: "true"
meta: {}
`
	if string(got) != want {
		t.Fatalf("unexpected yaml:\n%s\nwant:\n%s", got, want)
	}
}

func TestToJSONKeepsOrderAndNumberSpelling(t *testing.T) {
	root, err := Decode([]byte("zeta: 1.0\nalpha:\n  - 2\n  - yes\nday: 2024-01-01\nnothing: ~\n"))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	got, err := ToJSON(root)
	if err != nil {
		t.Fatalf("to json: %v", err)
	}
	want := `{
  "zeta": 1.0,
  "alpha": [
    2,
    "yes"
  ],
  "day": "2024-01-01",
  "nothing": null
}
`
	if string(got) != want {
		t.Fatalf("unexpected json:\n%s\nwant:\n%s", got, want)
	}
}

func TestSetReplacesOrAppends(t *testing.T) {
	root, err := Decode([]byte("a: 1\nb: 2\n"))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	value, err := NodeFromJSON([]byte(`"x"`))
	if err != nil {
		t.Fatalf("decode value: %v", err)
	}
	mapping := Lookup(root)
	Set(mapping, "a", value)
	Set(mapping, "c", value)

	got, err := Encode(root)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if want := "a: x\nb: 2\nc: x\n"; string(got) != want {
		t.Fatalf("unexpected yaml:\n%s\nwant:\n%s", got, want)
	}
	if Get(mapping, "missing") != nil || Lookup(root, "a", "deeper") != nil {
		t.Fatalf("expected missing keys to yield nil")
	}
}
