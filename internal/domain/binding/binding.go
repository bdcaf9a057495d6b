// Package binding holds the endpoint binding table of the zodiac admin API:
// one immutable Binding per server operation and the Invocation value built
// for each call.
package binding

import (
	"net/http"
	"net/url"

	"github.com/gorilla/schema"
)

// Mode is how a binding passes its input.
type Mode int

const (
	// ModeNone sends neither query parameters nor a body.
	ModeNone Mode = iota
	// ModeQuery encodes the input as query parameters.
	ModeQuery
	// ModeBody sends the input as the JSON request body.
	ModeBody
)

func (m Mode) String() string {
	switch m {
	case ModeNone:
		return "none"
	case ModeQuery:
		return "query"
	case ModeBody:
		return "body"
	default:
		return "unknown"
	}
}

// Binding ties an operation name to a fixed method, path and parameter mode.
// Path carries no deployment prefix; the transport adds it.
type Binding struct {
	Name   string
	Method string
	Path   string
	Mode   Mode
}

// IDQuery is the query shape of every operation addressed by id.
type IDQuery struct {
	ID int64 `schema:"id"`
}

// Invocation is a single resolved call. Exactly one of Params or Data is set,
// or neither for ModeNone bindings.
type Invocation struct {
	Binding Binding
	Params  url.Values
	Data    any
}

var queryEncoder = schema.NewEncoder()

// Body builds an invocation carrying data as the request body, untouched.
func (b Binding) Body(data any) Invocation {
	return Invocation{Binding: b, Data: data}
}

// Query builds an invocation whose query string is encoded from v, a struct
// with `schema` tags.
func (b Binding) Query(v any) (Invocation, error) {
	params := url.Values{}
	if err := queryEncoder.Encode(v, params); err != nil {
		return Invocation{}, err
	}
	return Invocation{Binding: b, Params: params}, nil
}

// ByID builds the invocation for an id-addressed operation.
func (b Binding) ByID(id int64) (Invocation, error) {
	return b.Query(IDQuery{ID: id})
}

// Bare builds an invocation with no input.
func (b Binding) Bare() Invocation {
	return Invocation{Binding: b}
}

// Amount records.
var (
	AmountList = Binding{
		Name: "amount.list", Method: http.MethodPost, Path: "/sideline/zodiac/record/list", Mode: ModeBody,
	}
	AmountAddByNum = Binding{
		Name: "amount.add-by-num", Method: http.MethodPost, Path: "/sideline/zodiac/record/add-by-num", Mode: ModeBody,
	}
	AmountAddByZodiac = Binding{
		Name: "amount.add-by-zodiac", Method: http.MethodPost, Path: "/sideline/zodiac/record/add-by-zodiac", Mode: ModeBody,
	}
	AmountAddCustom = Binding{
		Name: "amount.add-by-custom", Method: http.MethodPost, Path: "/sideline/zodiac/record/add-by-custom", Mode: ModeBody,
	}
	AmountDelete = Binding{
		Name: "amount.delete", Method: http.MethodGet, Path: "/sideline/zodiac/record/delete", Mode: ModeQuery,
	}
)

// Numbers.
var (
	NumberAdd = Binding{
		Name: "number.add", Method: http.MethodPost, Path: "/sideline/zodiac/num/add", Mode: ModeBody,
	}
	NumberDelete = Binding{
		Name: "number.delete", Method: http.MethodGet, Path: "/sideline/zodiac/num/delete", Mode: ModeQuery,
	}
	NumberUpdate = Binding{
		Name: "number.update", Method: http.MethodPost, Path: "/sideline/zodiac/num/update", Mode: ModeBody,
	}
	NumberDetail = Binding{
		Name: "number.detail", Method: http.MethodGet, Path: "/sideline/zodiac/num/detail", Mode: ModeQuery,
	}
)

// Zodiac records.
var (
	ZodiacList = Binding{
		Name: "zodiac.list", Method: http.MethodGet, Path: "/sideline/zodiac/zh/list", Mode: ModeNone,
	}
	ZodiacAdd = Binding{
		Name: "zodiac.add", Method: http.MethodPost, Path: "/sideline/zodiac/zh/add", Mode: ModeBody,
	}
	ZodiacUpdate = Binding{
		Name: "zodiac.update", Method: http.MethodPost, Path: "/sideline/zodiac/zh/update", Mode: ModeBody,
	}
	ZodiacDelete = Binding{
		Name: "zodiac.delete", Method: http.MethodGet, Path: "/sideline/zodiac/zh/delete", Mode: ModeQuery,
	}
	ZodiacHomeType = Binding{
		Name: "zodiac.home-type", Method: http.MethodGet, Path: "/sideline/zodiac/zh/home-type", Mode: ModeNone,
	}
)

// Table returns every binding in table order. The slice is a fresh copy.
func Table() []Binding {
	return []Binding{
		AmountList, AmountAddByNum, AmountAddByZodiac, AmountAddCustom, AmountDelete,
		NumberAdd, NumberDelete, NumberUpdate, NumberDetail,
		ZodiacList, ZodiacAdd, ZodiacUpdate, ZodiacDelete, ZodiacHomeType,
	}
}

// Lookup finds a binding by name.
func Lookup(name string) (Binding, bool) {
	for _, b := range Table() {
		if b.Name == name {
			return b, true
		}
	}
	return Binding{}, false
}
