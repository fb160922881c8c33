package repository

// RemisionListFilter holds remision list query options.
type RemisionListFilter struct {
	Page     int
	PageSize int
	Estado   string
	Search   string
}
