package screen

// Column names of the company lists.
const (
	ColSymbol     = "Symbol"
	ColCompany    = "Company"
	ColCurrentDiv = "Current Div"
	ColDivYield   = "Div Yield"
	ColCFShare    = "CF/Share"
	ColPrice      = "Price"
	ColAnnualized = "Annualized"
	ColDGR1Y      = "DGR 1Y"
	ColDGR3Y      = "DGR 3Y"
	ColDGR5Y      = "DGR 5Y"
	ColDGR10Y     = "DGR 10Y"
)
