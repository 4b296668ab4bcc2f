package report

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/verte-zerg/dtspeed/internal/model"
	"github.com/verte-zerg/dtspeed/internal/pace"
	"github.com/verte-zerg/dtspeed/internal/view"
)

func midPeriod() view.State {
	return view.Recompute(model.Settings{Goal: "3:45", DayOfPeriod: "8", CurrentAvg: "4:10"}, true)
}

func TestRenderText(t *testing.T) {
	var buf bytes.Buffer
	if err := Render(&buf, midPeriod(), FormatText); err != nil {
		t.Fatalf("render: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		"8 (week 2, day 1)",
		"7/28 days done, 21 days left (25%)",
		"Required Avg From Today  3:37",
		"ok (positive)",
		"Trending ahead",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestRenderTextDayOne(t *testing.T) {
	var buf bytes.Buffer
	if err := Render(&buf, view.Recompute(model.DefaultSettings(""), true), ""); err != nil {
		t.Fatalf("render: %v", err)
	}
	out := buf.String()
	if !strings.HasPrefix(out, "Day 1: Hit Your Goal\n") {
		t.Fatalf("expected day 1 title first:\n%s", out)
	}
	if strings.Contains(out, "Current avg") {
		t.Fatalf("day 1 should not show a current average:\n%s", out)
	}
}

func TestRenderJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := Render(&buf, midPeriod(), FormatJSON); err != nil {
		t.Fatalf("render: %v", err)
	}
	var got Summary
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Status != "ok" || got.Required != "3:37" || got.CurrentAvg != "4:10" {
		t.Fatalf("unexpected summary: %+v", got)
	}
	if got.RequiredSeconds == nil || *got.RequiredSeconds < 216.66 || *got.RequiredSeconds > 216.67 {
		t.Fatalf("unexpected required seconds: %v", got.RequiredSeconds)
	}
}

func TestRenderYAML(t *testing.T) {
	var buf bytes.Buffer
	if err := Render(&buf, midPeriod(), FormatYAML); err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(buf.String(), "days_left: 21") {
		t.Fatalf("expected snake_case keys:\n%s", buf.String())
	}
	var got map[string]any
	if err := yaml.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got["tier"] != "positive" {
		t.Fatalf("unexpected tier: %v", got["tier"])
	}
}

func TestRenderUnknownFormat(t *testing.T) {
	if err := Render(&bytes.Buffer{}, midPeriod(), "xml"); err == nil {
		t.Fatalf("expected error for unknown format")
	}
}

func TestCheckExplainsMissingResult(t *testing.T) {
	cases := []struct {
		in   model.Settings
		want error
	}{
		{model.Settings{Goal: "3:45", DayOfPeriod: "8"}, ErrIncomplete},
		{model.Settings{Goal: "3:99", DayOfPeriod: "8", CurrentAvg: "4:10"}, pace.ErrInvalidTime},
		{model.Settings{Goal: "3:45", DayOfPeriod: "40", CurrentAvg: "4:10"}, pace.ErrDayOutOfRange},
		{model.Settings{Goal: "3:45", DayOfPeriod: "8", CurrentAvg: "x"}, pace.ErrInvalidTime},
	}
	for _, tc := range cases {
		err := Check(view.Recompute(tc.in, true))
		if !errors.Is(err, tc.want) {
			t.Fatalf("inputs %+v: expected %v, got %v", tc.in, tc.want, err)
		}
	}
	if err := Check(view.Recompute(model.Settings{DayOfPeriod: "1"}, true)); err == nil || !strings.Contains(err.Error(), "goal is required") {
		t.Fatalf("expected missing goal error, got %v", err)
	}
}
