package domain

var Tables = []interface{}{
	// System
	&SysOpr{},
	// Storefront
	&Product{},
	&Contact{},
	&SiteImage{},
	&TeamMember{},
}
