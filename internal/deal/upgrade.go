package deal

import (
	"github.com/iwvelando/proforma/pkg/constants"
	"github.com/iwvelando/proforma/pkg/defaults"
)

// Upgrade fills in what older snapshots lack so the deal can re-enter the
// pipeline. It returns a note per repair for logging.
//
// A missing soft cost base total is left at zero on purpose: the next
// calculation seeds it from the natural weighted total.
func Upgrade(ds *defaults.Dataset, d *Deal) []string {
	var notes []string
	note := func(s string) { notes = append(notes, s) }

	p := &d.ProjectInfo
	if p.BuildType == "" {
		p.BuildType = ds.DefaultBuildType
		note("set default build type")
	}
	if p.UnitSize == 0 {
		p.UnitSize = ds.UnitSize(p.BuildType)
		note("set unit size from build type")
	}
	if p.TotalSF == 0 && p.Units > 0 {
		p.RecalcArea()
		note("recalculated total area")
	}

	if d.HardCosts.InputMethod == "" {
		d.HardCosts.InputMethod = MethodPerUnit
		note("set hard cost input method")
	} else if m, ok := ParseInputMethod(string(d.HardCosts.InputMethod)); ok && m != d.HardCosts.InputMethod {
		d.HardCosts.InputMethod = m
		note("renamed hard cost input method")
	}
	if d.SoftCosts.InputMethod == "" {
		d.SoftCosts.InputMethod = MethodRate
		note("set soft cost input method")
	} else if m, ok := ParseInputMethod(string(d.SoftCosts.InputMethod)); ok && m != d.SoftCosts.InputMethod {
		d.SoftCosts.InputMethod = m
		note("renamed soft cost input method")
	}

	if len(d.HardCosts.Items) == 0 {
		d.HardCosts.Items = HardItems(ds)
		note("restored hard cost line items")
	} else if fillWeights(d.HardCosts.Items, HardItems(ds)) {
		note("restored hard cost weights")
	}
	if len(d.SoftCosts.Items) == 0 {
		d.SoftCosts.Items = SoftItems(ds)
		note("restored soft cost line items")
	} else if fillWeights(d.SoftCosts.Items, SoftItems(ds)) {
		note("restored soft cost weights")
	}

	if d.MunicipalFees.Municipality == "" {
		d.MunicipalFees.Municipality = p.Municipality
	}
	if len(d.MunicipalFees.Items) == 0 {
		d.ApplyMunicipality(ds, d.MunicipalFees.Municipality)
		note("restored municipal fee schedule")
	} else if p.Municipality == "" {
		p.Municipality = d.MunicipalFees.Municipality
	}

	if d.Financing.ConstructionPeriod > constants.MaxConstructionPeriod {
		d.Financing.ConstructionPeriod = constants.MaxConstructionPeriod
		note("capped construction period")
	}

	return notes
}

// fillWeights copies the default weight onto items that have none.
func fillWeights(items, defs []LineItem) bool {
	byKey := make(map[string]LineItem, len(defs))
	for _, item := range defs {
		byKey[item.Key] = item
	}
	changed := false
	for i := range items {
		if items[i].Weight.Kind != "" {
			continue
		}
		def, ok := byKey[items[i].Key]
		if !ok {
			continue
		}
		items[i].Weight = def.Weight
		if items[i].Label == "" {
			items[i].Label = def.Label
		}
		changed = true
	}
	return changed
}
