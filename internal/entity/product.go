package entity

type Product struct {
	Category string `json:"category"`
	Name     string `json:"name"`
	Price    string `json:"price"`
	Stocked  bool   `json:"stocked"`
}
