package defaults

import (
	"bytes"
	"math"
	"strings"
	"testing"
)

func TestBuiltinDistributions(t *testing.T) {
	ds := Builtin()

	hardSum := 0.0
	for _, h := range ds.HardCosts {
		hardSum += h.Pct
	}
	if math.Abs(hardSum-1) > 1e-9 {
		t.Errorf("hard cost distribution: expected shares to sum to 1, got %v", hardSum)
	}

	if len(ds.SoftCosts) != 8 {
		t.Fatalf("expected 8 soft cost lines, got %d", len(ds.SoftCosts))
	}
	if len(ds.Municipalities) != 6 {
		t.Errorf("expected 6 municipalities, got %d", len(ds.Municipalities))
	}
	if err := ds.Validate(); err != nil {
		t.Errorf("builtin dataset should validate: %v", err)
	}
}

func TestBuiltinReturnsCopy(t *testing.T) {
	first := Builtin()
	first.HardCosts[0].Pct = 0.5
	first.UnitSizes["fourplex"] = 1

	second := Builtin()
	if second.HardCosts[0].Pct != 0.12 {
		t.Errorf("expected a fresh hard cost table, got pct %v", second.HardCosts[0].Pct)
	}
	if second.UnitSizes["fourplex"] != 1100 {
		t.Errorf("expected a fresh unit size table, got %v", second.UnitSizes["fourplex"])
	}
}

func TestUnitSize(t *testing.T) {
	ds := Builtin()
	tests := []struct {
		buildType string
		expected  float64
	}{
		{"fourplex", 1100},
		{"sixplex", 950},
		{"townhouse", 1300},
		{"castle", 1100},
		{"", 1100},
	}

	for _, tt := range tests {
		if got := ds.UnitSize(tt.buildType); got != tt.expected {
			t.Errorf("UnitSize(%q): expected %v, got %v", tt.buildType, tt.expected, got)
		}
	}
}

func TestMunicipalityFallback(t *testing.T) {
	ds := Builtin()

	m, key := ds.Municipality("saanich")
	if key != "saanich" || m.Label != "Saanich" {
		t.Errorf("expected saanich, got %s (%s)", key, m.Label)
	}

	m, key = ds.Municipality("atlantis")
	if key != "victoria" || m.Label != "Victoria" {
		t.Errorf("expected fallback to victoria, got %s (%s)", key, m.Label)
	}
}

func TestFormulas(t *testing.T) {
	ds := Builtin()

	bp, ok := ds.Formula(FormulaBuildingPermit)
	if !ok {
		t.Fatal("expected buildingPermit formula")
	}
	if got := bp(1210000); math.Abs(got-12100) > 1e-9 {
		t.Errorf("buildingPermit(1,210,000): expected 12100, got %v", got)
	}

	dp, ok := ds.Formula(FormulaDevPermit)
	if !ok {
		t.Fatal("expected devPermit formula")
	}
	if got := dp(1210000); math.Abs(got-1124.09) > 1e-6 {
		t.Errorf("devPermit(1,210,000): expected 1124.09, got %v", got)
	}

	if _, ok := ds.Formula("parkingVariance"); ok {
		t.Error("expected unknown formula lookup to fail")
	}
}

func TestSoftCostWeightPrecedence(t *testing.T) {
	tests := []struct {
		name     string
		def      SoftCostWeight
		expected Weight
	}{
		{"Percentage", SoftCostWeight{Pct: f(6)}, PctWeight(6)},
		{"Fixed only", SoftCostWeight{Fixed: f(10000)}, FixedWeight(10000)},
		{"Fixed with pct uses pct", SoftCostWeight{Pct: f(2), Fixed: f(10000)}, PctWeight(2)},
		{"Formula wins", SoftCostWeight{Pct: f(2), Formula: FormulaDevPermit}, FormulaWeight(FormulaDevPermit)},
		{"Nothing set", SoftCostWeight{}, FixedWeight(0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.def.Weight(); got != tt.expected {
				t.Errorf("expected %+v, got %+v", tt.expected, got)
			}
		})
	}
}

func TestLoadFromReaderOverrides(t *testing.T) {
	data := `
financing:
  interestRate: 6.25
hardCosts:
  - key: shell
    label: Shell
    pct: 0.6
  - key: fitout
    label: Fit-out
    pct: 0.4
unitSizes:
  laneway: 700
municipalities:
  oakbay:
    label: Oak Bay
    dcc:
      - key: parks
        label: DCC - Parks
        perUnit: 4100
    other:
      - key: rezoning
        label: Rezoning Fee
        fixed: 2500
`
	ds, err := LoadFromReader(strings.NewReader(data))
	if err != nil {
		t.Fatalf("LoadFromReader failed: %v", err)
	}

	if ds.Financing.InterestRate != 6.25 {
		t.Errorf("expected interest rate 6.25, got %v", ds.Financing.InterestRate)
	}
	if ds.Financing.EquityPct != 25 {
		t.Errorf("expected untouched equity pct 25, got %v", ds.Financing.EquityPct)
	}
	if len(ds.HardCosts) != 2 || ds.HardCosts[0].Key != "shell" {
		t.Errorf("expected hard cost list to be replaced, got %+v", ds.HardCosts)
	}
	if len(ds.SoftCosts) != 8 {
		t.Errorf("expected builtin soft costs to be kept, got %d", len(ds.SoftCosts))
	}
	if ds.UnitSize("laneway") != 700 || ds.UnitSize("fourplex") != 1100 {
		t.Errorf("expected unit sizes to merge, got %+v", ds.UnitSizes)
	}
	oakBay, key := ds.Municipality("oakbay")
	if key != "oakbay" {
		t.Fatalf("expected oakbay municipality, got %s", key)
	}
	if len(oakBay.DCC) != 1 || oakBay.DCC[0].PerUnit == nil || *oakBay.DCC[0].PerUnit != 4100 {
		t.Errorf("unexpected oakbay dcc: %+v", oakBay.DCC)
	}
	if _, ok := ds.Municipalities["victoria"]; !ok {
		t.Error("expected builtin municipalities to be kept")
	}
}

func TestLoadFromReaderRejectsUnknownFormula(t *testing.T) {
	data := `
softCosts:
  - key: arborist
    label: Arborist Report
    formula: treeCount
`
	if _, err := LoadFromReader(strings.NewReader(data)); err == nil {
		t.Error("expected unknown formula to be rejected")
	}
}

func TestValidateDefaultMunicipality(t *testing.T) {
	ds := Builtin()
	ds.DefaultMunicipality = "nowhere"
	if err := ds.Validate(); err == nil {
		t.Error("expected missing default municipality to fail validation")
	}
}

func TestLoadFromReaderRejectsLongConstructionPeriod(t *testing.T) {
	data := `
financing:
  constructionPeriod: 5000000000
`
	if _, err := LoadFromReader(strings.NewReader(data)); err == nil {
		t.Error("expected an over-long construction period to be rejected")
	}
}

func TestExportYAMLRoundTrip(t *testing.T) {
	out, err := Builtin().ExportYAML()
	if err != nil {
		t.Fatalf("ExportYAML failed: %v", err)
	}
	if !bytes.Contains(out, []byte("buildingPermitRate: 0.01")) {
		t.Errorf("expected permit rate in export, got:\n%s", out)
	}

	ds, err := LoadFromReader(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("re-loading export failed: %v", err)
	}
	if len(ds.HardCosts) != 7 || ds.Permits.DevPermitRate != 0.000929 {
		t.Errorf("unexpected dataset after round trip: %d hard costs, dev permit rate %v",
			len(ds.HardCosts), ds.Permits.DevPermitRate)
	}
}
