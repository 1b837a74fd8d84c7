package domain

type Patient struct {
	ID    int64
	Name  string
	Age   int
	Email string
}

type Doctor struct {
	ID        int64
	Name      string
	Specialty string
}
