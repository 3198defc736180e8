package deal

import (
	"errors"
	"testing"

	"github.com/iwvelando/proforma/pkg/constants"
	"github.com/iwvelando/proforma/pkg/defaults"
)

func TestNewDefaults(t *testing.T) {
	ds := defaults.Builtin()
	d := New(ds, Options{})

	if d.ProjectInfo.Units != 4 || d.ProjectInfo.BuildType != "fourplex" {
		t.Errorf("expected 4-unit fourplex, got %d-unit %s", d.ProjectInfo.Units, d.ProjectInfo.BuildType)
	}
	if d.ProjectInfo.TotalSF != 4400 {
		t.Errorf("expected total area 4400, got %v", d.ProjectInfo.TotalSF)
	}
	if d.HardCosts.InputMethod != MethodPerUnit {
		t.Errorf("expected hard costs driven per unit, got %s", d.HardCosts.InputMethod)
	}
	if d.HardCosts.CostPerUnit != 302500 {
		t.Errorf("expected hard cost per unit 302500, got %v", d.HardCosts.CostPerUnit)
	}
	if d.SoftCosts.InputMethod != MethodRate || d.SoftCosts.BaseTotal != 0 {
		t.Errorf("expected unseeded soft costs driven by rate, got %s / %v",
			d.SoftCosts.InputMethod, d.SoftCosts.BaseTotal)
	}
	if legal := d.SoftCosts.Item("legal"); legal == nil || legal.Amount != 10000 {
		t.Errorf("expected legal line to start at its fixed amount, got %+v", legal)
	}
	if d.MunicipalFees.Municipality != "victoria" || len(d.MunicipalFees.Items) != 9 {
		t.Errorf("expected 9 victoria fees, got %s with %d", d.MunicipalFees.Municipality, len(d.MunicipalFees.Items))
	}
	if d.Financing.LTV != 0.75 {
		t.Errorf("expected ltv 0.75, got %v", d.Financing.LTV)
	}
}

func TestNewUnknownNamesFallBack(t *testing.T) {
	ds := defaults.Builtin()
	d := New(ds, Options{Units: 6, BuildType: "treehouse", Municipality: "gotham"})

	if d.ProjectInfo.UnitSize != ds.DefaultUnitSize {
		t.Errorf("expected default unit size, got %v", d.ProjectInfo.UnitSize)
	}
	if d.ProjectInfo.Municipality != "victoria" {
		t.Errorf("expected fallback municipality victoria, got %s", d.ProjectInfo.Municipality)
	}
}

func TestFeeItemBasis(t *testing.T) {
	items, key := FeeItems(defaults.Builtin(), "victoria")
	if key != "victoria" {
		t.Fatalf("expected victoria, got %s", key)
	}

	tests := []struct {
		key      string
		category FeeCategory
		basis    FeeBasis
		rate     float64
	}{
		{"transit", CategoryDCC, BasisPerUnit, 3732},
		{"waterConnection", CategoryOther, BasisPerUnit, 6000},
		{"rezoning", CategoryOther, BasisFixed, 2000},
	}

	for _, tt := range tests {
		var found *FeeItem
		for i := range items {
			if items[i].Key == tt.key {
				found = &items[i]
			}
		}
		if found == nil {
			t.Errorf("fee %s: not found", tt.key)
			continue
		}
		if found.Category != tt.category || found.Basis != tt.basis || found.Rate != tt.rate {
			t.Errorf("fee %s: expected %s/%s/%v, got %s/%s/%v", tt.key,
				tt.category, tt.basis, tt.rate, found.Category, found.Basis, found.Rate)
		}
	}
}

func TestApplyTripleEntryClearsOverrides(t *testing.T) {
	ds := defaults.Builtin()

	tests := []struct {
		name     string
		edit     Edit
		method   InputMethod
		section  func(d *Deal) *CostSection
		itemEdit Field
	}{
		{"Hard per SF", Edit{Field: FieldHardCostPerSF, Value: 300}, MethodRate, func(d *Deal) *CostSection { return &d.HardCosts }, FieldHardItem},
		{"Hard per unit", Edit{Field: FieldHardCostPerUnit, Value: 330000}, MethodPerUnit, func(d *Deal) *CostSection { return &d.HardCosts }, FieldHardItem},
		{"Hard total", Edit{Field: FieldHardTotal, Value: 1300000}, MethodTotal, func(d *Deal) *CostSection { return &d.HardCosts }, FieldHardItem},
		{"Soft pct", Edit{Field: FieldSoftPctOfHard, Value: 18}, MethodRate, func(d *Deal) *CostSection { return &d.SoftCosts }, FieldSoftItem},
		{"Soft per unit", Edit{Field: FieldSoftCostPerUnit, Value: 55000}, MethodPerUnit, func(d *Deal) *CostSection { return &d.SoftCosts }, FieldSoftItem},
		{"Soft total", Edit{Field: FieldSoftTotal, Value: 220000}, MethodTotal, func(d *Deal) *CostSection { return &d.SoftCosts }, FieldSoftItem},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := New(ds, Options{})
			s := tt.section(d)
			if err := d.Apply(ds, Edit{Field: tt.itemEdit, Key: s.Items[1].Key, Value: 1234}); err != nil {
				t.Fatalf("item edit failed: %v", err)
			}
			if !s.AnyModified() {
				t.Fatal("expected item edit to mark the section modified")
			}

			if err := d.Apply(ds, tt.edit); err != nil {
				t.Fatalf("Apply failed: %v", err)
			}
			if s.AnyModified() {
				t.Error("expected triple-entry edit to clear overrides")
			}
			if s.InputMethod != tt.method {
				t.Errorf("expected method %s, got %s", tt.method, s.InputMethod)
			}
		})
	}
}

func TestApplyMethodKeepsOverrides(t *testing.T) {
	ds := defaults.Builtin()
	d := New(ds, Options{})
	if err := d.Apply(ds, Edit{Field: FieldHardItem, Key: "framing", Value: 350000}); err != nil {
		t.Fatalf("item edit failed: %v", err)
	}
	if err := d.Apply(ds, Edit{Field: FieldHardMethod, Text: "perSF"}); err != nil {
		t.Fatalf("method edit failed: %v", err)
	}
	if d.HardCosts.InputMethod != MethodRate {
		t.Errorf("expected perSF to select the rate method, got %s", d.HardCosts.InputMethod)
	}
	if !d.HardCosts.AnyModified() {
		t.Error("expected method selection to keep overrides")
	}
	if err := d.Apply(ds, Edit{Field: FieldSoftMethod, Text: "monthly"}); err == nil {
		t.Error("expected unknown method to fail")
	}
}

func TestApplyProjectShape(t *testing.T) {
	ds := defaults.Builtin()
	d := New(ds, Options{})

	if err := d.Apply(ds, Edit{Field: FieldUnits, Value: 6}); err != nil {
		t.Fatal(err)
	}
	if d.ProjectInfo.TotalSF != 6600 {
		t.Errorf("units edit: expected area 6600, got %v", d.ProjectInfo.TotalSF)
	}

	if err := d.Apply(ds, Edit{Field: FieldUnitSize, Value: 1000}); err != nil {
		t.Fatal(err)
	}
	if d.ProjectInfo.TotalSF != 6000 {
		t.Errorf("unit size edit: expected area 6000, got %v", d.ProjectInfo.TotalSF)
	}

	if err := d.Apply(ds, Edit{Field: FieldBuildType, Text: "sixplex"}); err != nil {
		t.Fatal(err)
	}
	if d.ProjectInfo.UnitSize != 950 || d.ProjectInfo.TotalSF != 5700 {
		t.Errorf("build type edit: expected 950 SF units totalling 5700, got %v / %v",
			d.ProjectInfo.UnitSize, d.ProjectInfo.TotalSF)
	}

	if err := d.Apply(ds, Edit{Field: FieldMunicipality, Text: "saanich"}); err != nil {
		t.Fatal(err)
	}
	if d.MunicipalFees.Item("transit").Rate != 3200 {
		t.Errorf("municipality edit: expected saanich transit rate, got %v", d.MunicipalFees.Item("transit").Rate)
	}
}

func TestApplyMunicipalFee(t *testing.T) {
	ds := defaults.Builtin()
	d := New(ds, Options{})

	if err := d.Apply(ds, Edit{Field: FieldMunicipalFee, Key: "parks", Value: 16000}); err != nil {
		t.Fatal(err)
	}
	if got := d.MunicipalFees.Item("parks").Rate; got != 4000 {
		t.Errorf("per-unit fee: expected rate 4000, got %v", got)
	}

	if err := d.Apply(ds, Edit{Field: FieldMunicipalFee, Key: "rezoning", Value: 3500}); err != nil {
		t.Fatal(err)
	}
	if got := d.MunicipalFees.Item("rezoning").Rate; got != 3500 {
		t.Errorf("flat fee: expected 3500, got %v", got)
	}

	if err := d.Apply(ds, Edit{Field: FieldMunicipalFee, Key: "moat", Value: 1}); err == nil {
		t.Error("expected unknown fee to fail")
	}
}

func TestApplyRejects(t *testing.T) {
	ds := defaults.Builtin()
	d := New(ds, Options{})

	err := d.Apply(ds, Edit{Field: "helipad", Value: 1})
	if !errors.Is(err, ErrUnknownField) {
		t.Errorf("expected ErrUnknownField, got %v", err)
	}
	if err := d.Apply(ds, Edit{Field: ActionReset, Key: SectionHard}); err == nil {
		t.Error("expected session action to be refused")
	}
	if err := d.Apply(ds, Edit{Field: FieldHardItem, Key: "pool", Value: 1}); err == nil {
		t.Error("expected unknown line item to fail")
	}
}

func TestApplyConstructionPeriodLimit(t *testing.T) {
	ds := defaults.Builtin()
	d := New(ds, Options{})
	before := d.Financing.ConstructionPeriod

	err := d.Apply(ds, Edit{Field: FieldConstructionPeriod, Value: 5e9})
	if !errors.Is(err, ErrConstructionPeriod) {
		t.Errorf("expected ErrConstructionPeriod, got %v", err)
	}
	if d.Financing.ConstructionPeriod != before {
		t.Errorf("expected period to stay %d, got %d", before, d.Financing.ConstructionPeriod)
	}

	if err := d.Apply(ds, Edit{Field: FieldConstructionPeriod, Value: constants.MaxConstructionPeriod}); err != nil {
		t.Fatalf("expected the longest period to be accepted, got %v", err)
	}
	if d.Financing.ConstructionPeriod != constants.MaxConstructionPeriod {
		t.Errorf("expected period %d, got %d", constants.MaxConstructionPeriod, d.Financing.ConstructionPeriod)
	}
}

func TestUpgradeCapsConstructionPeriod(t *testing.T) {
	ds := defaults.Builtin()
	d := New(ds, Options{})
	d.Financing.ConstructionPeriod = 100000

	Upgrade(ds, d)
	if d.Financing.ConstructionPeriod != constants.MaxConstructionPeriod {
		t.Errorf("expected period capped at %d, got %d", constants.MaxConstructionPeriod, d.Financing.ConstructionPeriod)
	}
}

func TestClone(t *testing.T) {
	ds := defaults.Builtin()
	d := New(ds, Options{})
	c := d.Clone()

	c.HardCosts.Items[0].Amount = 99
	c.MunicipalFees.Items[0].Rate = 99
	if d.HardCosts.Items[0].Amount == 99 || d.MunicipalFees.Items[0].Rate == 99 {
		t.Error("expected clone to own its line items")
	}
}

func TestUpgrade(t *testing.T) {
	ds := defaults.Builtin()
	old := &Deal{
		ProjectInfo: ProjectInfo{Units: 4, Municipality: "langford"},
		HardCosts: CostSection{
			InputMethod: "perSF",
			Rate:        275,
			Items:       []LineItem{{Key: "framing", Amount: 300000, Modified: true}},
		},
		SoftCosts: CostSection{InputMethod: "pctOfHard"},
	}

	notes := Upgrade(ds, old)
	if len(notes) == 0 {
		t.Fatal("expected repairs to be reported")
	}
	if old.ProjectInfo.BuildType != "fourplex" || old.ProjectInfo.TotalSF != 4400 {
		t.Errorf("unexpected project info: %+v", old.ProjectInfo)
	}
	if old.HardCosts.InputMethod != MethodRate || old.SoftCosts.InputMethod != MethodRate {
		t.Errorf("expected legacy methods to map to rate, got %s / %s",
			old.HardCosts.InputMethod, old.SoftCosts.InputMethod)
	}
	framing := old.HardCosts.Item("framing")
	if framing.Weight != defaults.PctWeight(0.25) || framing.Label == "" || !framing.Modified {
		t.Errorf("expected framing weight restored and override kept, got %+v", framing)
	}
	if len(old.SoftCosts.Items) != 8 {
		t.Errorf("expected soft items restored, got %d", len(old.SoftCosts.Items))
	}
	if old.MunicipalFees.Municipality != "langford" || len(old.MunicipalFees.Items) != 9 {
		t.Errorf("expected langford schedule restored, got %s with %d fees",
			old.MunicipalFees.Municipality, len(old.MunicipalFees.Items))
	}

	if again := Upgrade(ds, old); len(again) != 0 {
		t.Errorf("expected upgraded deal to need no repairs, got %v", again)
	}
}
