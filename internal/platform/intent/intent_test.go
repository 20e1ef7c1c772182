package intent

import "testing"

func TestIntent_BuildersKeepValues(t *testing.T) {
	base := New(ActionView).PutExtra("a", "1")
	derived := base.PutExtra("b", "2").WithCategory(CategoryDefault).WithCategory(CategoryDefault).WithFlag(FlagNewTask)

	if _, ok := base.Extra("b"); ok {
		t.Fatalf("PutExtra mutated the source intent")
	}
	if len(base.Categories) != 0 {
		t.Fatalf("WithCategory mutated the source intent")
	}
	if len(derived.Categories) != 1 || len(derived.Flags) != 1 {
		t.Fatalf("derived = %+v", derived)
	}
	if v, ok := derived.Extra("a"); !ok || v != "1" {
		t.Fatalf("extra a = %q %v", v, ok)
	}
}

func TestIntent_Scheme(t *testing.T) {
	cases := map[string]string{
		"bunkerchain://verify?x=1": "bunkerchain",
		"BunkerChain://verify":     "bunkerchain",
		"":                         "",
		"no-scheme":                "",
		":broken":                  "",
	}
	for data, want := range cases {
		if got := (Intent{Data: data}).Scheme(); got != want {
			t.Fatalf("Scheme(%q) = %q, want %q", data, got, want)
		}
	}
}

func TestIntent_Target(t *testing.T) {
	if got := New("A").WithComponent("p", "p.C").Target(); got != "p/p.C" {
		t.Fatalf("target = %q", got)
	}
	in := New("A")
	in.Package = "p"
	if got := in.Target(); got != "p A" {
		t.Fatalf("target = %q", got)
	}
	if got := New("A").Target(); got != "A" {
		t.Fatalf("target = %q", got)
	}
}

func TestKind_Route(t *testing.T) {
	if KindReceiver.Route() != "broadcast" || KindService.Route() != "service" || KindActivity.Route() != "activity" {
		t.Fatalf("unexpected routes")
	}
	if Kind("widget").Valid() {
		t.Fatalf("widget should not be valid")
	}
}
