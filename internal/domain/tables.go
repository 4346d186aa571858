package domain

var Tables = []interface{}{
	// Identity
	&Account{},
	&AccessToken{},
	// Catalog
	&Denomination{},
	&ProductType{},
	&Product{},
}
