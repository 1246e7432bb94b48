package models

type Gender string

const (
	Male   Gender = "male"
	Female Gender = "female"
)

// Identity - сгенерированный покупатель. Живет одну итерацию.
type Identity struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Gender    Gender `json:"gender"`
}

func (i Identity) FullName() string {
	return i.FirstName + " " + i.LastName
}
