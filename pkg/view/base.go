package view

// Admin is the signed in administrator shown in the layout header.
type Admin struct {
	Name  string
	Email string
}

// Base carries what the shared layout needs on every page.
type Base struct {
	Title  string
	Active string // nav highlight: dashboard|products|categories|orders|hero|faq|about
	Admin  *Admin
	Flash  *Flash
	CSRF   string
}
