package defaults

// Builtin returns a fresh copy of the Greater Victoria dataset: 2025 cost
// guide construction rates and municipal development cost charge schedules.
func Builtin() *Dataset {
	return &Dataset{
		DefaultBuildType:    "fourplex",
		DefaultMunicipality: "victoria",
		DefaultUnits:        4,
		DefaultUnitSize:     1100,
		UnitSizes: map[string]float64{
			"fourplex":  1100,
			"sixplex":   950,
			"townhouse": 1300,
			"duplex":    1400,
			"eightplex": 900,
		},
		CostPerSF: CostBenchmarks{
			Conservative: 250,
			Baseline:     275,
			MidRange:     320,
			High:         365,
		},
		HardCosts: []HardCostWeight{
			{Key: "foundation", Label: "Foundation & Concrete", Pct: 0.12},
			{Key: "framing", Label: "Framing & Structure", Pct: 0.25},
			{Key: "exteriorEnvelope", Label: "Exterior Envelope", Pct: 0.18},
			{Key: "interiorFinishes", Label: "Interior Finishes", Pct: 0.20},
			{Key: "mechanical", Label: "Mechanical (HVAC/Plumbing)", Pct: 0.12},
			{Key: "electrical", Label: "Electrical", Pct: 0.08},
			{Key: "siteWorks", Label: "Site Works & Landscaping", Pct: 0.05},
		},
		SoftCosts: []SoftCostWeight{
			{Key: "architecture", Label: "Architecture / Engineering", Pct: f(6.0)},
			{Key: "devConsultant", Label: "Development Consultant", Pct: f(7.1)},
			{Key: "legal", Label: "Legal Fees", Fixed: f(10000)},
			{Key: "insurance", Label: "Insurance (Construction)", Pct: f(1.1)},
			{Key: "propertyTax", Label: "Property Tax (During Const.)", Pct: f(0.6)},
			{Key: "devPermit", Label: "Development Permit", Formula: FormulaDevPermit},
			{Key: "buildingPermit", Label: "Building Permit", Formula: FormulaBuildingPermit},
			{Key: "marketing", Label: "Marketing / Renderings", Pct: f(1.1)},
		},
		BaseSoftCostPct: 15,
		Land: LandDefaults{
			LegalDD:         15000,
			ClosingCostsPct: 1.5,
		},
		ContingencyPct: 10,
		Municipalities: map[string]Municipality{
			"victoria": {
				Label:     "Victoria",
				SourceURL: "https://www.victoria.ca/city-government/bylaw-services/development-cost-charges-bylaw",
				FeesURL:   "https://www.victoria.ca/building-business/permits-development-construction/rezoning-development/summary-fees",
				DCC: []Fee{
					{Key: "transit", Label: "DCC - Transit", PerUnit: f(3732), SourceURL: "https://www.victoria.ca/media/file/development-cost-charges-bylaw-24-053"},
					{Key: "water", Label: "DCC - Water", PerUnit: f(910), SourceURL: "https://www.victoria.ca/media/file/development-cost-charges-bylaw-24-053"},
					{Key: "drainage", Label: "DCC - Drainage", PerUnit: f(781), SourceURL: "https://www.victoria.ca/media/file/development-cost-charges-bylaw-24-053"},
					{Key: "sewer", Label: "DCC - Sewer", PerUnit: f(1357), SourceURL: "https://www.victoria.ca/media/file/development-cost-charges-bylaw-24-053"},
					{Key: "parks", Label: "DCC - Parks", PerUnit: f(3694), SourceURL: "https://www.victoria.ca/media/file/development-cost-charges-bylaw-24-053"},
				},
				Other: []Fee{
					{Key: "waterConnection", Label: "Water Connection", PerUnit: f(6000), SourceURL: "https://www.victoria.ca/home-property/utilities/utility-rates-billing"},
					{Key: "sewerConnection", Label: "Sewer Connection", PerUnit: f(0), SourceURL: "https://www.victoria.ca/home-property/utilities/utility-rates-billing"},
					{Key: "rezoning", Label: "Rezoning Fee", Fixed: f(2000), SourceURL: "https://www.victoria.ca/building-business/permits-development-construction/rezoning-development/summary-fees"},
					{Key: "subdivision", Label: "Subdivision Fee", PerUnit: f(385), SourceURL: "https://www.victoria.ca/building-business/permits-development-construction/rezoning-development/subdivision-land"},
				},
			},
			"saanich": {
				Label:     "Saanich",
				SourceURL: "https://www.saanich.ca/EN/main/local-government/development-applications/development-cost-charges.html",
				FeesURL:   "https://www.saanich.ca/EN/main/local-government/departments/engineering-department/service-connection-fees-additional-charges.html",
				DCC: []Fee{
					{Key: "transit", Label: "DCC - Transit", PerUnit: f(3200), SourceURL: "https://www.saanich.ca/EN/main/local-government/development-applications/development-cost-charges.html"},
					{Key: "water", Label: "DCC - Water", PerUnit: f(850), SourceURL: "https://www.saanich.ca/EN/main/local-government/development-applications/development-cost-charges.html"},
					{Key: "drainage", Label: "DCC - Drainage", PerUnit: f(650), SourceURL: "https://www.saanich.ca/EN/main/local-government/development-applications/development-cost-charges.html"},
					{Key: "sewer", Label: "DCC - Sewer", PerUnit: f(1200), SourceURL: "https://www.saanich.ca/EN/main/local-government/development-applications/development-cost-charges.html"},
					{Key: "parks", Label: "DCC - Parks", PerUnit: f(3100), SourceURL: "https://www.saanich.ca/EN/main/local-government/development-applications/development-cost-charges.html"},
				},
				Other: []Fee{
					{Key: "waterConnection", Label: "Water Connection", PerUnit: f(5500), SourceURL: "https://www.saanich.ca/EN/main/local-government/departments/engineering-department/service-connection-fees-additional-charges.html"},
					{Key: "sewerConnection", Label: "Sewer Connection", PerUnit: f(0), SourceURL: "https://www.saanich.ca/EN/main/local-government/departments/engineering-department/service-connection-fees-additional-charges.html"},
					{Key: "rezoning", Label: "Rezoning Fee", Fixed: f(2000), SourceURL: "https://www.saanich.ca/EN/main/local-government/zoning/rezoning-process.html"},
					{Key: "subdivision", Label: "Subdivision Fee", PerUnit: f(350), SourceURL: "https://www.saanich.ca/EN/main/local-government/development-applications/subdivisions/costs.html"},
				},
			},
			"langford": {
				Label:     "Langford",
				SourceURL: "https://webapps.langford.ca/lodccc/LODCCCalc.html",
				FeesURL:   "https://langford.ca/wp-content/uploads/2023/04/Fees-Combined-for-Website-20240423.pdf",
				DCC: []Fee{
					{Key: "transit", Label: "DCC - Transit", PerUnit: f(2800), SourceURL: "https://webapps.langford.ca/lodccc/LODCCCalc.html"},
					{Key: "water", Label: "DCC - Water", PerUnit: f(750), SourceURL: "https://webapps.langford.ca/lodccc/LODCCCalc.html"},
					{Key: "drainage", Label: "DCC - Drainage", PerUnit: f(600), SourceURL: "https://webapps.langford.ca/lodccc/LODCCCalc.html"},
					{Key: "sewer", Label: "DCC - Sewer", PerUnit: f(1100), SourceURL: "https://webapps.langford.ca/lodccc/LODCCCalc.html"},
					{Key: "parks", Label: "DCC - Parks", PerUnit: f(2800), SourceURL: "https://webapps.langford.ca/lodccc/LODCCCalc.html"},
				},
				Other: []Fee{
					{Key: "waterConnection", Label: "Water Connection", PerUnit: f(5000), SourceURL: "https://langford.ca/residents/resident-resources/water-sewer-2/"},
					{Key: "sewerConnection", Label: "Sewer Connection", PerUnit: f(0), SourceURL: "https://langford.ca/residents/resident-resources/water-sewer-2/"},
					{Key: "rezoning", Label: "Rezoning Fee", Fixed: f(1800), SourceURL: "https://langford.ca/wp-content/uploads/2023/04/Fees-Combined-for-Website-20240423.pdf"},
					{Key: "subdivision", Label: "Subdivision Fee", PerUnit: f(300), SourceURL: "https://langford.ca/builders/subdividing/"},
				},
			},
			"colwood": {
				Label:         "Colwood",
				SourceURL:     "https://www.colwood.ca/city-services/development-services/development-cost-charges-dccs",
				FeesURL:       "https://www.colwood.ca/city-hall/bylaws/1814/development-fees-and-charges",
				CalculatorURL: "https://www.colwood.ca/city-services/development-services/development-cost-charges-estimator",
				DCC: []Fee{
					{Key: "transit", Label: "DCC - Transit", PerUnit: f(2600), SourceURL: "https://www.colwood.ca/sites/default/files/2025-01/DEVELOPMENT%20COST%20CHARGES%20(January%202025).pdf"},
					{Key: "water", Label: "DCC - Water", PerUnit: f(700), SourceURL: "https://www.colwood.ca/sites/default/files/2025-01/DEVELOPMENT%20COST%20CHARGES%20(January%202025).pdf"},
					{Key: "drainage", Label: "DCC - Drainage", PerUnit: f(550), SourceURL: "https://www.colwood.ca/sites/default/files/2025-01/DEVELOPMENT%20COST%20CHARGES%20(January%202025).pdf"},
					{Key: "sewer", Label: "DCC - Sewer", PerUnit: f(1000), SourceURL: "https://www.colwood.ca/sites/default/files/2025-01/DEVELOPMENT%20COST%20CHARGES%20(January%202025).pdf"},
					{Key: "parks", Label: "DCC - Parks", PerUnit: f(2600), SourceURL: "https://www.colwood.ca/sites/default/files/2025-01/DEVELOPMENT%20COST%20CHARGES%20(January%202025).pdf"},
				},
				Other: []Fee{
					{Key: "waterConnection", Label: "Water Connection", PerUnit: f(4800), SourceURL: "https://www.colwood.ca/city-services/building-permits-inspections/new-construction"},
					{Key: "sewerConnection", Label: "Sewer Connection", PerUnit: f(0), SourceURL: "https://www.colwood.ca/city-services/finance/property-tax/sewer-user-fee"},
					{Key: "rezoning", Label: "Rezoning Fee", Fixed: f(1500), SourceURL: "https://www.colwood.ca/city-hall/bylaws/1814/development-fees-and-charges"},
					{Key: "subdivision", Label: "Subdivision Fee", PerUnit: f(280), SourceURL: "https://www.colwood.ca/city-services/development-services/development-and-land-use-application-forms/subdivision-process"},
				},
			},
			"esquimalt": {
				Label:     "Esquimalt",
				SourceURL: "https://www.esquimalt.ca/government-bylaws/bylaws-enforcement/bylaws/development-application-procedures-and-fees-bylaw-1",
				FeesURL:   "https://www.esquimalt.ca/media/file/bylaw-2791-development-application-procedures-and-fees-consolidated-march-4-20241pdf",
				DCC: []Fee{
					{Key: "transit", Label: "DCC - Transit", PerUnit: f(3500), SourceURL: "https://www.esquimalt.ca/media/file/bylaw-2791-development-application-procedures-and-fees-consolidated-march-4-20241pdf"},
					{Key: "water", Label: "DCC - Water", PerUnit: f(900), SourceURL: "https://www.esquimalt.ca/media/file/bylaw-2791-development-application-procedures-and-fees-consolidated-march-4-20241pdf"},
					{Key: "drainage", Label: "DCC - Drainage", PerUnit: f(750), SourceURL: "https://www.esquimalt.ca/media/file/bylaw-2791-development-application-procedures-and-fees-consolidated-march-4-20241pdf"},
					{Key: "sewer", Label: "DCC - Sewer", PerUnit: f(1300), SourceURL: "https://www.esquimalt.ca/media/file/bylaw-2791-development-application-procedures-and-fees-consolidated-march-4-20241pdf"},
					{Key: "parks", Label: "DCC - Parks", PerUnit: f(3400), SourceURL: "https://www.esquimalt.ca/media/file/bylaw-2791-development-application-procedures-and-fees-consolidated-march-4-20241pdf"},
				},
				Other: []Fee{
					{Key: "waterConnection", Label: "Water Connection", PerUnit: f(5800), SourceURL: "https://www.esquimalt.ca/government-bylaws/bylaws-enforcement/bylaws/subdivision-and-development-servicing-bylaw-schedules"},
					{Key: "sewerConnection", Label: "Sewer Connection", PerUnit: f(0), SourceURL: "https://www.esquimalt.ca/government-bylaws/bylaws-enforcement/bylaws/subdivision-and-development-servicing-bylaw-schedules"},
					{Key: "rezoning", Label: "Rezoning Fee", Fixed: f(2000), SourceURL: "https://www.esquimalt.ca/business-development/building-zoning/rezoning"},
					{Key: "subdivision", Label: "Subdivision Fee", PerUnit: f(360), SourceURL: "https://www.esquimalt.ca/government-bylaws/bylaws-enforcement/bylaws/subdivision-and-development-servicing-bylaw-schedules"},
				},
			},
			"custom": {
				Label: "Custom (Manual Entry)",
				DCC: []Fee{
					{Key: "transit", Label: "DCC - Transit", PerUnit: f(0)},
					{Key: "water", Label: "DCC - Water", PerUnit: f(0)},
					{Key: "drainage", Label: "DCC - Drainage", PerUnit: f(0)},
					{Key: "sewer", Label: "DCC - Sewer", PerUnit: f(0)},
					{Key: "parks", Label: "DCC - Parks", PerUnit: f(0)},
				},
				Other: []Fee{
					{Key: "waterConnection", Label: "Water Connection", PerUnit: f(0)},
					{Key: "sewerConnection", Label: "Sewer Connection", PerUnit: f(0)},
					{Key: "rezoning", Label: "Rezoning Fee", Fixed: f(0)},
					{Key: "subdivision", Label: "Subdivision Fee", PerUnit: f(0)},
				},
			},
		},
		Financing: FinancingDefaults{
			EquityPct:          25,
			InterestRate:       7.5,
			ConstructionPeriod: 14,
			CommitmentFeePct:   1.0,
			LenderLegal:        5000,
		},
		Revenue: RevenueDefaults{
			RealtorCommissionPct: 3.5,
			LegalPerSale:         2500,
			MarketingCosts:       0,
		},
		Permits: PermitRates{
			BuildingPermitRate: 0.01,
			DevPermitRate:      0.000929,
		},
	}
}

func f(v float64) *float64 {
	return &v
}
