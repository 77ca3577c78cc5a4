package view

type StatusCount struct {
	Status      string
	StatusClass string
	Count       int
}

type DashboardPage struct {
	Base
	TotalProducts   int
	TotalCategories int
	TotalOrders     int
	TotalRevenue    string
	ByStatus        []StatusCount
	Recent          []OrderRow
}
