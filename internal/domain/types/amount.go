package types

// AmountKind tells how an amount record was entered.
type AmountKind string

const (
	AmountByNum    AmountKind = "num"
	AmountByZodiac AmountKind = "zodiac"
	AmountCustom   AmountKind = "custom"
)

// AmountListParams filters the amount record list.
type AmountListParams struct {
	Page
	Num      int        `json:"num,omitempty"`
	ZodiacID int64      `json:"zodiacId,omitempty"`
	Kind     AmountKind `json:"kind,omitempty"`
}

// AmountRecord is one stake entry.
type AmountRecord struct {
	ID        int64          `json:"id"`
	Kind      AmountKind     `json:"kind"`
	Nums      []int          `json:"nums"`
	ZodiacIDs []int64        `json:"zodiacIds,omitempty"`
	Items     []CustomAmount `json:"items,omitempty"`
	Amount    float64        `json:"amount"`
	Total     float64        `json:"total"`
	CreatedAt string         `json:"createdAt"`
}

// AmountListResponse is a page of amount records.
type AmountListResponse = Paginated[AmountRecord]

// AddAmountByNumParams stakes the same amount on every listed number.
type AddAmountByNumParams struct {
	Nums   []int   `json:"nums"`
	Amount float64 `json:"amount"`
}

// AddAmountByZodiacParams stakes the same amount on every number of the listed zodiacs.
type AddAmountByZodiacParams struct {
	ZodiacIDs []int64 `json:"zodiacIds"`
	Amount    float64 `json:"amount"`
}

// CustomAmount is one number with its own amount.
type CustomAmount struct {
	Num    int     `json:"num"`
	Amount float64 `json:"amount"`
}

// AddAmountCustomParams stakes a per-number amount.
type AddAmountCustomParams struct {
	Items []CustomAmount `json:"items"`
}
