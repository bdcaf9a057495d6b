package fakeserver

import "github.com/okian/sideline/internal/domain/types"

// Number range of the draw.
const (
	minNum = 1
	maxNum = 49
)

var seedZodiacs = []types.AddZodiacParams{
	{Name: "Rat", HomeType: types.HomeTypeWild},
	{Name: "Ox", HomeType: types.HomeTypeDomestic},
	{Name: "Tiger", HomeType: types.HomeTypeWild},
	{Name: "Rabbit", HomeType: types.HomeTypeWild},
	{Name: "Dragon", HomeType: types.HomeTypeWild},
	{Name: "Snake", HomeType: types.HomeTypeWild},
	{Name: "Horse", HomeType: types.HomeTypeDomestic},
	{Name: "Goat", HomeType: types.HomeTypeDomestic},
	{Name: "Monkey", HomeType: types.HomeTypeWild},
	{Name: "Rooster", HomeType: types.HomeTypeDomestic},
	{Name: "Dog", HomeType: types.HomeTypeDomestic},
	{Name: "Pig", HomeType: types.HomeTypeDomestic},
}

var homeTypes = []types.HomeType{
	{Value: types.HomeTypeDomestic, Label: "domestic"},
	{Value: types.HomeTypeWild, Label: "wild"},
}

// Ball colours of the draw; anything not red or blue is green.
var (
	redNums  = []int{1, 2, 7, 8, 12, 13, 18, 19, 23, 24, 29, 30, 34, 35, 40, 45, 46}
	blueNums = []int{3, 4, 9, 10, 14, 15, 20, 25, 26, 31, 36, 37, 41, 42, 47, 48}
)

func colorOf(num int) string {
	for _, n := range redNums {
		if n == num {
			return "red"
		}
	}
	for _, n := range blueNums {
		if n == num {
			return "blue"
		}
	}
	return "green"
}
