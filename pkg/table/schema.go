package table

// Column names of the observation table.
const (
	ColSpend      = "marketing_spend"
	ColAcquired   = "customers_acquired"
	ColCampaign   = "campaign_type"
	ColSpendLevel = "spend_level"
)

// Kind is the value type of a column.
type Kind string

const (
	Numeric     Kind = "numeric"
	Categorical Kind = "category"
)

// Schema describes the structure of a table.
type Schema struct {
	FeatureNames []string
	Types        []Kind
}

// Index returns the position of the named column, or -1.
func (s Schema) Index(name string) int {
	for i, n := range s.FeatureNames {
		if n == name {
			return i
		}
	}
	return -1
}

// KindOf returns the kind of the named column and whether it exists.
func (s Schema) KindOf(name string) (Kind, bool) {
	i := s.Index(name)
	if i < 0 {
		return "", false
	}
	return s.Types[i], true
}
