package types

// AddNumberParams assigns a number to a zodiac.
type AddNumberParams struct {
	Num      int    `json:"num"`
	ZodiacID int64  `json:"zodiacId"`
	Color    string `json:"color,omitempty"`
}

// UpdateNumberParams rewrites an existing number.
type UpdateNumberParams struct {
	ID int64 `json:"id"`
	AddNumberParams
}

// NumberDetail is a number joined with its zodiac.
type NumberDetail struct {
	ID         int64  `json:"id"`
	Num        int    `json:"num"`
	ZodiacID   int64  `json:"zodiacId"`
	ZodiacName string `json:"zodiacName"`
	Color      string `json:"color"`
}
