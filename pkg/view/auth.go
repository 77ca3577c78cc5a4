package view

type LoginPage struct {
	Base
	Email    string
	ReturnTo string
	Errors   map[string]string
}
