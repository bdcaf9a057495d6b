package types

// Home types split the zodiacs into domestic and wild animals.
const (
	HomeTypeDomestic = 1
	HomeTypeWild     = 2
)

// ZodiacList is one row of the zodiac list.
type ZodiacList struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	HomeType int    `json:"homeType"`
	Sort     int    `json:"sort"`
	Nums     []int  `json:"nums"`
}

// AddZodiacParams creates a zodiac.
type AddZodiacParams struct {
	Name     string `json:"name"`
	HomeType int    `json:"homeType,omitempty"`
	Sort     int    `json:"sort,omitempty"`
}

// UpdateZodiacParams rewrites an existing zodiac.
type UpdateZodiacParams struct {
	ID int64 `json:"id"`
	AddZodiacParams
}

// HomeType is an option of the home-type select.
type HomeType struct {
	Value int    `json:"value"`
	Label string `json:"label"`
}
