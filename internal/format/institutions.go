package format

// Institution is one selectable option in the transfer acceptance form:
// a bank, a province or territory, or a credit union.
type Institution struct {
	ID   string
	Name string
}

var banks = []Institution{
	{ID: "atb", Name: "ATB Financial"},
	{ID: "bmo", Name: "BMO"},
	{ID: "cibc", Name: "CIBC"},
	{ID: "coast", Name: "Coast Capital"},
	{ID: "laurentian", Name: "Laurentian Bank"},
	{ID: "meridian", Name: "Meridian"},
	{ID: "motus", Name: "Motus Bank"},
	{ID: "national", Name: "National Bank"},
	{ID: "peoples", Name: "Peoples Bank"},
	{ID: "rbc", Name: "RBC"},
	{ID: "scotiabank", Name: "Scotiabank"},
	{ID: "simplii", Name: "Simplii Financial"},
	{ID: "tangerine", Name: "Tangerine"},
	{ID: "td", Name: "TD Bank"},
}

var provinces = []Institution{
	{ID: "ab", Name: "Alberta (AB)"},
	{ID: "bc", Name: "British Columbia (BC)"},
	{ID: "mb", Name: "Manitoba (MB)"},
	{ID: "nb", Name: "New Brunswick (NB)"},
	{ID: "nl", Name: "Newfoundland and Labrador (NL)"},
	{ID: "ns", Name: "Nova Scotia (NS)"},
	{ID: "nt", Name: "Northwest Territories (NT)"},
	{ID: "nu", Name: "Nunavut (NU)"},
	{ID: "on", Name: "Ontario (ON)"},
	{ID: "pe", Name: "Prince Edward Island (PE)"},
	{ID: "qc", Name: "Quebec (QC)"},
	{ID: "sk", Name: "Saskatchewan (SK)"},
	{ID: "yt", Name: "Yukon (YT)"},
}

var creditUnions = []Institution{
	{ID: "meridian", Name: "Meridian Credit Union"},
	{ID: "vancity", Name: "Vancity"},
	{ID: "servus", Name: "Servus Credit Union"},
	{ID: "coast", Name: "Coast Capital Savings"},
	{ID: "firstOntario", Name: "FirstOntario Credit Union"},
	{ID: "conexus", Name: "Conexus Credit Union"},
	{ID: "steinbach", Name: "Steinbach Credit Union"},
	{ID: "affinity", Name: "Affinity Credit Union"},
	{ID: "alterna", Name: "Alterna Savings"},
	{ID: "wealthsimple", Name: "Wealthsimple Cash"},
}

// Banks lists the financial institutions a recipient can settle into.
func Banks() []Institution { return banks }

// Provinces lists the provinces and territories for the acceptance form.
func Provinces() []Institution { return provinces }

// CreditUnions lists the credit unions for the acceptance form.
func CreditUnions() []Institution { return creditUnions }

// KnownBank reports whether id is one of the selectable banks.
func KnownBank(id string) bool { return knownInstitution(banks, id) }

// KnownProvince reports whether id is one of the selectable provinces.
func KnownProvince(id string) bool { return knownInstitution(provinces, id) }

// KnownCreditUnion reports whether id is one of the selectable credit
// unions.
func KnownCreditUnion(id string) bool { return knownInstitution(creditUnions, id) }

func knownInstitution(list []Institution, id string) bool {
	for _, inst := range list {
		if inst.ID == id {
			return true
		}
	}
	return false
}
