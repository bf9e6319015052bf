package constants

type Category string

const (
	CategoryWebDevelopment Category = "Web Development"
	CategoryDesign         Category = "Design"
	CategoryTutoring       Category = "Tutoring"
)

var Categories = []Category{CategoryWebDevelopment, CategoryDesign, CategoryTutoring}

func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

type Currency string

const (
	CurrencyUSD Currency = "USD"
	CurrencyAUD Currency = "AUD"
	CurrencySGD Currency = "SGD"
	CurrencyINR Currency = "INR"
)

var Currencies = []Currency{CurrencyUSD, CurrencyAUD, CurrencySGD, CurrencyINR}

func (c Currency) Valid() bool {
	for _, known := range Currencies {
		if c == known {
			return true
		}
	}
	return false
}

type WorkType string

const (
	WorkOnline WorkType = "Online"
	WorkOnsite WorkType = "Onsite"
)

var WorkTypes = []WorkType{WorkOnline, WorkOnsite}

func (w WorkType) Valid() bool {
	return w == WorkOnline || w == WorkOnsite
}
