package header

import "testing"

func TestParseBasicHeader(t *testing.T) {
	data := []byte("id,name,score\n1,alice,9.1\n")
	res, err := Parse(data, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.HasHeader {
		t.Fatalf("expected HasHeader true")
	}
	want := []string{"id", "name", "score"}
	if len(res.Names) != len(want) {
		t.Fatalf("got %v, want %v", res.Names, want)
	}
	for i := range want {
		if res.Names[i] != want[i] {
			t.Errorf("name[%d] = %q, want %q", i, res.Names[i], want[i])
		}
	}
}

func TestParseNoHeaderFallsBackToSynthetic(t *testing.T) {
	data := []byte("1,2,3\n4,5,6\n")
	res, err := Parse(data, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.HasHeader {
		t.Fatalf("expected HasHeader false")
	}
	want := []string{"col0", "col1", "col2"}
	for i := range want {
		if res.Names[i] != want[i] {
			t.Errorf("name[%d] = %q, want %q", i, res.Names[i], want[i])
		}
	}
}

func TestParseDuplicateNamesFallBackToSynthetic(t *testing.T) {
	data := []byte("a,a,b\n1,2,3\n")
	res, err := Parse(data, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.HasHeader {
		t.Fatalf("expected HasHeader false for duplicate column names")
	}
	if res.Names[0] != "col0" {
		t.Errorf("expected synthetic names, got %v", res.Names)
	}
}

func TestParseQuotedHeaderName(t *testing.T) {
	data := []byte(`"full name",age` + "\n" + "alice,30\n")
	res, err := Parse(data, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Names[0] != "full name" {
		t.Errorf("got %q, want %q", res.Names[0], "full name")
	}
}
