package models

type Operator struct {
	ID            string
	Name          string
	Certification *string
}
