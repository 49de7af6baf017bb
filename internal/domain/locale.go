package domain

// LocaleText holds parallel translations of one text field for the
// site's three languages.
type LocaleText struct {
	En string `json:"en" form:"en"`
	Fr string `json:"fr" form:"fr"`
	Sq string `json:"sq" form:"sq"`
}
