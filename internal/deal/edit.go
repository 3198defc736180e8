package deal

import (
	"errors"
	"fmt"
	"math"

	"github.com/iwvelando/proforma/pkg/constants"
	"github.com/iwvelando/proforma/pkg/defaults"
	"github.com/iwvelando/proforma/pkg/mathutil"
)

// Field names an editable deal field or a session action.
type Field string

// Deal fields.
const (
	FieldName         Field = "name"
	FieldUnits        Field = "units"
	FieldUnitSize     Field = "unitSize"
	FieldBuildType    Field = "buildType"
	FieldMunicipality Field = "municipality"

	FieldLandPrice       Field = "landPrice"
	FieldLegalDD         Field = "legalDD"
	FieldClosingCostsPct Field = "closingCostsPct"

	FieldHardMethod      Field = "hardMethod"
	FieldHardCostPerSF   Field = "hardCostPerSF"
	FieldHardCostPerUnit Field = "hardCostPerUnit"
	FieldHardTotal       Field = "hardTotal"
	FieldHardItem        Field = "hardItem"

	FieldSoftMethod      Field = "softMethod"
	FieldSoftPctOfHard   Field = "softPctOfHard"
	FieldSoftCostPerUnit Field = "softCostPerUnit"
	FieldSoftTotal       Field = "softTotal"
	FieldSoftItem        Field = "softItem"

	FieldContingencyPct Field = "contingencyPct"
	FieldMunicipalFee   Field = "municipalFee"

	FieldEquityPct          Field = "equityPct"
	FieldInterestRate       Field = "interestRate"
	FieldConstructionPeriod Field = "constructionPeriod"
	FieldCommitmentFeePct   Field = "commitmentFeePct"
	FieldLenderLegal        Field = "lenderLegal"
	FieldStartMonth         Field = "startMonth"

	FieldSalePrice            Field = "salePrice"
	FieldRealtorCommissionPct Field = "realtorCommissionPct"
	FieldLegalPerSale         Field = "legalPerSale"
	FieldMarketingCosts       Field = "marketingCosts"
)

// Session actions. These replace or reset whole sections and are carried
// out by the engine rather than by Apply.
const (
	// ActionReset resets the section named by Key: hard, soft or municipal.
	ActionReset Field = "reset"
	// ActionNew starts a fresh deal with the default shape.
	ActionNew Field = "new"
	// ActionMunicipalDefaults starts a fresh deal of the same size and build
	// type in the municipality named by Text (or the dataset default), and
	// carries over a positive land price and sale price.
	ActionMunicipalDefaults Field = "municipalDefaults"
)

// Sections accepted by ActionReset.
const (
	SectionHard      = "hard"
	SectionSoft      = "soft"
	SectionMunicipal = "municipal"
)

// ErrUnknownField is returned for edits naming a field the deal does not have.
var ErrUnknownField = errors.New("unknown field")

// ErrConstructionPeriod is returned for a construction period longer than
// constants.MaxConstructionPeriod.
var ErrConstructionPeriod = errors.New("construction period too long")

// Edit is a single change coming from a form or a scenario file. Value
// carries numeric edits; Text carries names, methods and months. Key selects
// the line item or fee for item edits.
type Edit struct {
	Field Field   `json:"field" yaml:"field"`
	Key   string  `json:"key,omitempty" yaml:"key,omitempty"`
	Value float64 `json:"value,omitempty" yaml:"value,omitempty"`
	Text  string  `json:"text,omitempty" yaml:"text,omitempty"`
}

// IsAction reports whether the edit is a session action.
func (e Edit) IsAction() bool {
	switch e.Field {
	case ActionReset, ActionNew, ActionMunicipalDefaults:
		return true
	}
	return false
}

// Apply writes an edit into the deal. Derived values are left stale; the
// caller must recalculate before reading any totals.
//
// Driving a triple-entry field clears the section's line item overrides.
// Selecting an input method on its own does not.
func (d *Deal) Apply(ds *defaults.Dataset, e Edit) error {
	v := mathutil.Finite(e.Value)

	switch e.Field {
	case FieldName:
		d.ProjectInfo.Name = e.Text
	case FieldUnits:
		d.ProjectInfo.Units = int(math.Round(v))
		d.ProjectInfo.RecalcArea()
	case FieldUnitSize:
		d.ProjectInfo.UnitSize = v
		d.ProjectInfo.RecalcArea()
	case FieldBuildType:
		d.SetBuildType(ds, e.Text)
	case FieldMunicipality:
		d.ApplyMunicipality(ds, e.Text)

	case FieldLandPrice:
		d.Land.PurchasePrice = v
	case FieldLegalDD:
		d.Land.LegalDD = v
	case FieldClosingCostsPct:
		d.Land.ClosingCostsPct = v

	case FieldHardMethod:
		return setMethod(&d.HardCosts, e.Text)
	case FieldHardCostPerSF:
		drive(&d.HardCosts, MethodRate, v)
	case FieldHardCostPerUnit:
		drive(&d.HardCosts, MethodPerUnit, v)
	case FieldHardTotal:
		drive(&d.HardCosts, MethodTotal, v)
	case FieldHardItem:
		return override(&d.HardCosts, e.Key, v)

	case FieldSoftMethod:
		return setMethod(&d.SoftCosts, e.Text)
	case FieldSoftPctOfHard:
		drive(&d.SoftCosts, MethodRate, v)
	case FieldSoftCostPerUnit:
		drive(&d.SoftCosts, MethodPerUnit, v)
	case FieldSoftTotal:
		drive(&d.SoftCosts, MethodTotal, v)
	case FieldSoftItem:
		return override(&d.SoftCosts, e.Key, v)

	case FieldContingencyPct:
		d.Contingency.Pct = v
	case FieldMunicipalFee:
		return d.editFee(e.Key, v)

	case FieldEquityPct:
		d.Financing.EquityPct = v
	case FieldInterestRate:
		d.Financing.InterestRate = v
	case FieldConstructionPeriod:
		months := math.Round(v)
		if months > constants.MaxConstructionPeriod {
			return fmt.Errorf("%.0f months exceeds %d: %w", months, constants.MaxConstructionPeriod, ErrConstructionPeriod)
		}
		d.Financing.ConstructionPeriod = int(months)
	case FieldCommitmentFeePct:
		d.Financing.CommitmentFeePct = v
	case FieldLenderLegal:
		d.Financing.LenderLegal = v
	case FieldStartMonth:
		d.Financing.StartMonth = e.Text

	case FieldSalePrice:
		d.Revenue.PricePerUnit = v
	case FieldRealtorCommissionPct:
		d.Revenue.RealtorCommissionPct = v
	case FieldLegalPerSale:
		d.Revenue.LegalPerSale = v
	case FieldMarketingCosts:
		d.Revenue.MarketingCosts = v

	default:
		if e.IsAction() {
			return fmt.Errorf("%s is a session action and cannot be applied to a deal", e.Field)
		}
		return fmt.Errorf("%w %q", ErrUnknownField, e.Field)
	}
	return nil
}

func setMethod(s *CostSection, text string) error {
	method, ok := ParseInputMethod(text)
	if !ok {
		return fmt.Errorf("unknown input method %q", text)
	}
	s.InputMethod = method
	return nil
}

// drive sets one triple-entry field, makes it authoritative and drops the
// section's line item overrides.
func drive(s *CostSection, method InputMethod, value float64) {
	switch method {
	case MethodRate:
		s.Rate = value
	case MethodPerUnit:
		s.CostPerUnit = value
	case MethodTotal:
		s.Total = value
	}
	s.InputMethod = method
	s.ClearModified()
}

func override(s *CostSection, key string, value float64) error {
	item := s.Item(key)
	if item == nil {
		return fmt.Errorf("no line item %q", key)
	}
	item.Amount = value
	item.Modified = true
	return nil
}

// editFee sets a fee from an amount. Per-unit fees store the amount spread
// over the current unit count; flat fees store the amount itself.
func (d *Deal) editFee(key string, value float64) error {
	fee := d.MunicipalFees.Item(key)
	if fee == nil {
		return fmt.Errorf("no municipal fee %q", key)
	}
	fee.Amount = value
	switch fee.Basis {
	case BasisPerUnit:
		if d.ProjectInfo.Units > 0 {
			fee.Rate = value / float64(d.ProjectInfo.Units)
		}
	default:
		fee.Rate = value
	}
	return nil
}
