package raw

import "testing"

func TestGetDefaultsAndPrefix(t *testing.T) {
	t.Setenv("RAWTEST_NAME", "  value  ")
	t.Setenv("RAWTEST_EMPTY", "   ")

	c := New().Prefix("RAWTEST_")
	if got := c.Get("NAME", "def"); got != "value" {
		t.Fatalf("Get = %q", got)
	}
	if got := c.Get("EMPTY", "def"); got != "def" {
		t.Fatalf("Get on blank = %q, want default", got)
	}
	if got := c.Get("MISSING", "def"); got != "def" {
		t.Fatalf("Get on missing = %q, want default", got)
	}
}

func TestGetInt(t *testing.T) {
	t.Setenv("RAWTEST_N", "42")
	t.Setenv("RAWTEST_BAD", "forty-two")

	c := New().Prefix("RAWTEST_")
	if got := c.GetInt("N", 1); got != 42 {
		t.Fatalf("GetInt = %d", got)
	}
	if got := c.GetInt("BAD", 7); got != 7 {
		t.Fatalf("GetInt on invalid = %d, want default", got)
	}
	if got := c.GetInt("MISSING", 7); got != 7 {
		t.Fatalf("GetInt on missing = %d, want default", got)
	}
}

func TestGetBool(t *testing.T) {
	t.Setenv("RAWTEST_T", "true")
	t.Setenv("RAWTEST_BAD", "yeah")

	c := New().Prefix("RAWTEST_")
	if !c.GetBool("T", false) {
		t.Fatal("GetBool(true) = false")
	}
	if c.GetBool("BAD", false) {
		t.Fatal("GetBool on invalid should use default")
	}
	if !c.GetBool("MISSING", true) {
		t.Fatal("GetBool on missing should use default")
	}
}

func TestNestedPrefix(t *testing.T) {
	t.Setenv("A_B_KEY", "v")
	c := New().Prefix("A_").Prefix("B_")
	if got := c.Get("KEY", ""); got != "v" {
		t.Fatalf("nested prefix Get = %q", got)
	}
}
