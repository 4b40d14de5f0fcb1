package config

import (
	"testing"
	"time"

	"openscout/internal/platform/testkit"
)

func TestMustString(t *testing.T) {
	t.Setenv("CFGTEST_PRESENT", " value ")

	c := New().Prefix("CFGTEST_")
	if got := c.MustString("PRESENT"); got != "value" {
		t.Fatalf("MustString = %q", got)
	}
	testkit.MustPanic(t, func() { c.MustString("MISSING") })
}

func TestMustInt(t *testing.T) {
	t.Setenv("CFGTEST_N", "9")
	t.Setenv("CFGTEST_BAD", "nope")

	c := New().Prefix("CFGTEST_")
	if got := c.MustInt("N"); got != 9 {
		t.Fatalf("MustInt = %d", got)
	}
	testkit.MustPanic(t, func() { c.MustInt("BAD") })
	testkit.MustPanic(t, func() { c.MustInt("MISSING") })
}

func TestMustDurationAndURL(t *testing.T) {
	t.Setenv("CFGTEST_D", "250ms")
	t.Setenv("CFGTEST_BADD", "soon")
	t.Setenv("CFGTEST_U", "https://example.com/v1")
	t.Setenv("CFGTEST_BADU", "/relative/only")

	c := New().Prefix("CFGTEST_")
	if got := c.MustDuration("D"); got != 250*time.Millisecond {
		t.Fatalf("MustDuration = %v", got)
	}
	testkit.MustPanic(t, func() { c.MustDuration("BADD") })

	if got := c.MustURL("U"); got.Host != "example.com" {
		t.Fatalf("MustURL = %v", got)
	}
	testkit.MustPanic(t, func() { c.MustURL("BADU") })
}

func TestRequire(t *testing.T) {
	t.Setenv("CFGTEST_A", "1")
	t.Setenv("CFGTEST_B", "2")

	c := New().Prefix("CFGTEST_")
	testkit.MustNotPanic(t, func() { c.Require("A", "B") })
	testkit.MustPanic(t, func() { c.Require("A", "MISSING") })
}

func TestMayDefaults(t *testing.T) {
	t.Setenv("CFGTEST_S", "str")
	t.Setenv("CFGTEST_I", "3")
	t.Setenv("CFGTEST_BADI", "x")
	t.Setenv("CFGTEST_B", "true")
	t.Setenv("CFGTEST_D", "2s")
	t.Setenv("CFGTEST_F", "0.75")
	t.Setenv("CFGTEST_BADF", "most")

	c := New().Prefix("CFGTEST_")

	if got := c.MayString("S", "def"); got != "str" {
		t.Fatalf("MayString = %q", got)
	}
	if got := c.MayString("MISSING", "def"); got != "def" {
		t.Fatalf("MayString default = %q", got)
	}
	if got := c.MayInt("I", 1); got != 3 {
		t.Fatalf("MayInt = %d", got)
	}
	if got := c.MayInt("BADI", 5); got != 5 {
		t.Fatalf("MayInt invalid = %d, want default", got)
	}
	if !c.MayBool("B", false) {
		t.Fatal("MayBool = false")
	}
	if !c.MayBool("MISSING", true) {
		t.Fatal("MayBool missing should default")
	}
	if got := c.MayDuration("D", time.Second); got != 2*time.Second {
		t.Fatalf("MayDuration = %v", got)
	}
	if got := c.MayDuration("MISSING", time.Second); got != time.Second {
		t.Fatalf("MayDuration default = %v", got)
	}
	if got := c.MayFloat("F", 0.1); got != 0.75 {
		t.Fatalf("MayFloat = %v", got)
	}
	if got := c.MayFloat("BADF", 0.1); got != 0.1 {
		t.Fatalf("MayFloat invalid = %v, want default", got)
	}
}
