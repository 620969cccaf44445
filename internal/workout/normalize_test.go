package workout

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/claude/plansync/internal/models"
)

func raw(t *testing.T, objs ...string) []json.RawMessage {
	t.Helper()
	out := make([]json.RawMessage, len(objs))
	for i, o := range objs {
		out[i] = json.RawMessage(o)
	}
	return out
}

// TestParseDurationAliases verifies that singular and plural unit spellings
// map to the same canonical duration.
func TestParseDurationAliases(t *testing.T) {
	cases := []struct {
		unit string
		kind DurationKind
		cu   Unit
	}{
		{"second", DurationTime, UnitSeconds},
		{"seconds", DurationTime, UnitSeconds},
		{"minute", DurationTime, UnitMinutes},
		{"Minutes", DurationTime, UnitMinutes},
		{"hour", DurationTime, UnitHours},
		{"hours", DurationTime, UnitHours},
		{"meter", DurationDistance, UnitMeters},
		{"kilometers", DurationDistance, UnitKilometers},
		{"yard", DurationDistance, UnitYards},
		{"miles", DurationDistance, UnitMiles},
	}
	for _, c := range cases {
		d, ok := ParseDuration(c.unit, 5)
		if !ok {
			t.Errorf("ParseDuration(%q) not ok", c.unit)
			continue
		}
		if d.Kind != c.kind || d.Unit != c.cu || d.Value != 5 {
			t.Errorf("ParseDuration(%q) = %+v, want kind=%s unit=%s value=5", c.unit, d, c.kind, c.cu)
		}
	}
}

// TestParseDurationLapButton verifies that lapButton yields a press-lap
// duration regardless of the value.
func TestParseDurationLapButton(t *testing.T) {
	d, ok := ParseDuration("lapButton", 0)
	if !ok {
		t.Fatal("lapButton should parse")
	}
	if d.Kind != DurationPressLap {
		t.Errorf("kind = %s, want %s", d.Kind, DurationPressLap)
	}
}

// TestParseDurationInvalid verifies that unknown units and non-positive or
// non-finite values report false.
func TestParseDurationInvalid(t *testing.T) {
	cases := []struct {
		unit  string
		value float64
	}{
		{"furlongs", 5},
		{"", 5},
		{"seconds", 0},
		{"seconds", -10},
		{"minutes", math.NaN()},
		{"meters", math.Inf(1)},
	}
	for _, c := range cases {
		if _, ok := ParseDuration(c.unit, c.value); ok {
			t.Errorf("ParseDuration(%q, %v) should not parse", c.unit, c.value)
		}
	}
}

// TestClassifyIntensity verifies the reduction of raw intensity classes to
// the canonical enumeration, with everything unknown counting as active.
func TestClassifyIntensity(t *testing.T) {
	cases := map[string]IntensityClass{
		"warmUp":   IntensityWarmup,
		"coolDown": IntensityCooldown,
		"rest":     IntensityRest,
		"recovery": IntensityRest,
		"active":   IntensityActive,
		"tempo":    IntensityActive,
		"":         IntensityActive,
	}
	for in, want := range cases {
		if got := ClassifyIntensity(in); got != want {
			t.Errorf("ClassifyIntensity(%q) = %s, want %s", in, got, want)
		}
	}
}

// TestPrimaryTargetRange verifies range extraction and the FTP metric
// mapping.
func TestPrimaryTargetRange(t *testing.T) {
	tg, ok := PrimaryTarget(raw(t, `{"minValue":120,"maxValue":150}`), "percentOfFtp")
	if !ok {
		t.Fatal("expected target")
	}
	if tg.Kind != TargetPowerPercentFTP {
		t.Errorf("kind = %s, want %s", tg.Kind, TargetPowerPercentFTP)
	}
	if tg.Min != 120 || tg.Max != 150 {
		t.Errorf("range = %v-%v, want 120-150", tg.Min, tg.Max)
	}
}

// TestPrimaryTargetScalarFallbacks verifies min <- value and max <- min
// fallbacks.
func TestPrimaryTargetScalarFallbacks(t *testing.T) {
	tg, ok := PrimaryTarget(raw(t, `{"value":80}`), "percentOfFtp")
	if !ok {
		t.Fatal("expected target")
	}
	if tg.Min != 80 || tg.Max != 80 {
		t.Errorf("range = %v-%v, want 80-80", tg.Min, tg.Max)
	}
}

// TestPrimaryTargetSkipsNonObjects verifies that the first object-shaped
// entry wins even after non-object entries.
func TestPrimaryTargetSkipsNonObjects(t *testing.T) {
	tg, ok := PrimaryTarget(raw(t, `null`, `42`, `{"minValue":50,"maxValue":60}`), "percentOfFtp")
	if !ok {
		t.Fatal("expected target")
	}
	if tg.Min != 50 || tg.Max != 60 {
		t.Errorf("range = %v-%v, want 50-60", tg.Min, tg.Max)
	}
}

// TestPrimaryTargetAbsent verifies that an object with no usable numbers
// produces no target.
func TestPrimaryTargetAbsent(t *testing.T) {
	if _, ok := PrimaryTarget(raw(t, `{"note":"easy"}`), "percentOfFtp"); ok {
		t.Error("target without numbers should be absent")
	}
	if _, ok := PrimaryTarget(nil, "percentOfFtp"); ok {
		t.Error("empty targets should be absent")
	}
}

// TestPrimaryTargetInvertedRange verifies that an inverted range suppresses
// the target instead of failing.
func TestPrimaryTargetInvertedRange(t *testing.T) {
	if _, ok := PrimaryTarget(raw(t, `{"minValue":150,"maxValue":120}`), "percentOfFtp"); ok {
		t.Error("inverted range should be suppressed")
	}
}

// TestPrimaryTargetMetricKinds verifies kind selection from the workout's
// declared intensity metric.
func TestPrimaryTargetMetricKinds(t *testing.T) {
	cases := map[string]TargetKind{
		"percentOfFtp":                TargetPowerPercentFTP,
		"percentOfThresholdPace":      TargetPacePercentThreshold,
		"percentOfThresholdHr":        TargetHRPercentLTHR,
		"percentOfThresholdHeartRate": TargetHRPercentLTHR,
	}
	for metric, want := range cases {
		tg, ok := PrimaryTarget(raw(t, `{"minValue":80,"maxValue":90}`), metric)
		if !ok {
			t.Fatalf("metric %q: expected target", metric)
		}
		if tg.Kind != want {
			t.Errorf("metric %q: kind = %s, want %s", metric, tg.Kind, want)
		}
	}
}

// TestPrimaryTargetUnknownMetrics verifies the free-text fallbacks: percent
// metrics keep a "%" suffix, other metrics render unsuffixed.
func TestPrimaryTargetUnknownMetrics(t *testing.T) {
	tg, ok := PrimaryTarget(raw(t, `{"minValue":80,"maxValue":90}`), "percentOfMaxSomething")
	if !ok {
		t.Fatal("expected target")
	}
	if tg.Kind != TargetFreeText || tg.Text != "80-90%" {
		t.Errorf("got kind=%s text=%q, want free text %q", tg.Kind, tg.Text, "80-90%")
	}

	tg, ok = PrimaryTarget(raw(t, `{"value":4}`), "rpe")
	if !ok {
		t.Fatal("expected target")
	}
	if tg.Kind != TargetFreeText || tg.Text != "4" {
		t.Errorf("got kind=%s text=%q, want free text %q", tg.Kind, tg.Text, "4")
	}
}

// TestCadenceTargetNestedObject verifies the first sniffing rule: a nested
// cadence object on the step.
func TestCadenceTargetNestedObject(t *testing.T) {
	step := &models.StructureNode{
		CadenceTarget: json.RawMessage(`{"minRpm":85.4,"maxRpm":94.6}`),
	}
	tg, ok := CadenceTarget(step)
	if !ok {
		t.Fatal("expected cadence target")
	}
	if tg.Kind != TargetCadenceRPM {
		t.Errorf("kind = %s, want %s", tg.Kind, TargetCadenceRPM)
	}
	if tg.Min != 85 || tg.Max != 95 {
		t.Errorf("range = %v-%v, want 85-95 (rounded)", tg.Min, tg.Max)
	}
}

// TestCadenceTargetFlatAliases verifies the flat alias fallbacks in order.
func TestCadenceTargetFlatAliases(t *testing.T) {
	v := 90.0
	for _, step := range []*models.StructureNode{
		{CadenceRPM: &v},
		{CadenceTargetRPM: &v},
		{TargetCadenceRPM: &v},
	} {
		tg, ok := CadenceTarget(step)
		if !ok {
			t.Fatalf("expected cadence target for %+v", step)
		}
		if tg.Min != 90 || tg.Max != 90 {
			t.Errorf("range = %v-%v, want 90-90", tg.Min, tg.Max)
		}
	}
}

// TestCadenceTargetSecondarySniffing verifies the last rule: secondary
// targets are matched on descriptive text or rpm-style keys.
func TestCadenceTargetSecondarySniffing(t *testing.T) {
	byText := &models.StructureNode{
		SecondaryTargets: raw(t, `{"type":"Cadence","minValue":80,"maxValue":90}`),
	}
	tg, ok := CadenceTarget(byText)
	if !ok || tg.Min != 80 || tg.Max != 90 {
		t.Errorf("text match: got ok=%v %v-%v, want 80-90", ok, tg.Min, tg.Max)
	}

	byKeys := &models.StructureNode{
		SecondaryTargets: raw(t, `{"minRpm":92,"maxRpm":88}`),
	}
	tg, ok = CadenceTarget(byKeys)
	if !ok {
		t.Fatal("key match: expected cadence target")
	}
	if tg.Min != 88 || tg.Max != 92 {
		t.Errorf("key match: range = %v-%v, want ordered 88-92", tg.Min, tg.Max)
	}
}

// TestCadenceTargetPrecedence verifies that the nested object wins over flat
// aliases and secondary entries.
func TestCadenceTargetPrecedence(t *testing.T) {
	v := 70.0
	step := &models.StructureNode{
		CadenceTarget:    json.RawMessage(`{"rpm":95}`),
		CadenceRPM:       &v,
		SecondaryTargets: raw(t, `{"type":"cadence","value":60}`),
	}
	tg, ok := CadenceTarget(step)
	if !ok {
		t.Fatal("expected cadence target")
	}
	if tg.Min != 95 {
		t.Errorf("min = %v, want 95 (nested object wins)", tg.Min)
	}
}

// TestCadenceTargetAbsent verifies that unrelated secondary targets are
// ignored.
func TestCadenceTargetAbsent(t *testing.T) {
	step := &models.StructureNode{
		SecondaryTargets: raw(t, `{"type":"power","minValue":200,"maxValue":250}`),
	}
	if _, ok := CadenceTarget(step); ok {
		t.Error("power secondary target should not match cadence")
	}
}
