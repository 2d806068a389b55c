package main

import (
	"image"
	"testing"
)

func TestParseRegion(t *testing.T) {
	rect, err := parseRegion("10,20,300,200")
	if err != nil {
		t.Fatalf("parseRegion() error = %v", err)
	}
	if rect != image.Rect(10, 20, 310, 220) {
		t.Fatalf("rect = %v", rect)
	}
	for _, bad := range []string{"", "1,2,3", "a,b,c,d", "0,0,0,10", "0,0,10,-5"} {
		if _, err := parseRegion(bad); err == nil {
			t.Errorf("parseRegion(%q) accepted", bad)
		}
	}
}

func TestParsePoint(t *testing.T) {
	p, err := parsePoint(" 40 , 60 ")
	if err != nil {
		t.Fatalf("parsePoint() error = %v", err)
	}
	if p != image.Pt(40, 60) {
		t.Fatalf("point = %v", p)
	}
	if _, err := parsePoint("40"); err == nil {
		t.Fatalf("single coordinate accepted")
	}
}

func TestParseColor(t *testing.T) {
	c, err := parseColor("#ff8000")
	if err != nil {
		t.Fatalf("parseColor() error = %v", err)
	}
	if c.R != 255 || c.G != 128 || c.B != 0 || c.A != 255 {
		t.Fatalf("color = %+v", c)
	}
	if zero, err := parseColor(""); err != nil || zero.A != 0 {
		t.Fatalf("empty color should yield zero value, got %+v, %v", zero, err)
	}
	for _, bad := range []string{"red", "fff", "zzzzzz"} {
		if _, err := parseColor(bad); err == nil {
			t.Errorf("parseColor(%q) accepted", bad)
		}
	}
}

func TestNumberedName(t *testing.T) {
	cases := []struct {
		in   string
		n    int
		want string
	}{
		{"shot.png", 2, "shot-2.png"},
		{"dir.d/shot.png", 0, "dir.d/shot-0.png"},
		{"noext", 1, "noext-1"},
	}
	for _, tc := range cases {
		if got := numberedName(tc.in, tc.n); got != tc.want {
			t.Errorf("numberedName(%q, %d) = %q, want %q", tc.in, tc.n, got, tc.want)
		}
	}
}

func TestSplitHotkey(t *testing.T) {
	got := splitHotkey("Ctrl + Shift + S")
	want := []string{"ctrl", "shift", "s"}
	if len(got) != len(want) {
		t.Fatalf("got %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}
