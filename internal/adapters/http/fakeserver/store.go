package fakeserver

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/okian/sideline/internal/domain/types"
)

const defaultPageSize = 10

type zodiacRow struct {
	id       int64
	name     string
	homeType int
	sort     int
}

type numberRow struct {
	id       int64
	num      int
	zodiacID int64
	color    string
}

// Store is the in-memory state behind the development backend.
type Store struct {
	mu sync.RWMutex

	zodiacs map[int64]zodiacRow
	numbers map[int64]numberRow
	amounts map[int64]types.AmountRecord

	nextZodiac int64
	nextNumber int64
	nextAmount int64

	now func() time.Time
}

// NewStore returns a store seeded with the twelve zodiacs and the numbers
// 1..49, number n belonging to zodiac ((n-1) mod 12) + 1.
func NewStore() *Store {
	s := &Store{
		zodiacs: make(map[int64]zodiacRow),
		numbers: make(map[int64]numberRow),
		amounts: make(map[int64]types.AmountRecord),
		now:     time.Now,
	}
	for i, z := range seedZodiacs {
		s.nextZodiac++
		s.zodiacs[s.nextZodiac] = zodiacRow{id: s.nextZodiac, name: z.Name, homeType: z.HomeType, sort: i + 1}
	}
	for n := minNum; n <= maxNum; n++ {
		s.nextNumber++
		zid := int64((n-1)%len(seedZodiacs)) + 1
		s.numbers[s.nextNumber] = numberRow{id: s.nextNumber, num: n, zodiacID: zid, color: colorOf(n)}
	}
	return s
}

// ListAmounts returns one page of amount records, newest first.
func (s *Store) ListAmounts(p types.AmountListParams) types.AmountListResponse {
	s.mu.RLock()
	defer s.mu.RUnlock()

	current, size := p.Current, p.Size
	if current < 1 {
		current = 1
	}
	if size < 1 {
		size = defaultPageSize
	}

	matched := make([]types.AmountRecord, 0, len(s.amounts))
	for _, r := range s.amounts {
		if p.Kind != "" && r.Kind != p.Kind {
			continue
		}
		if p.Num != 0 && !containsInt(r.Nums, p.Num) {
			continue
		}
		if p.ZodiacID != 0 && !s.touchesZodiacLocked(r, p.ZodiacID) {
			continue
		}
		matched = append(matched, r)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID > matched[j].ID })

	page := types.AmountListResponse{Records: []types.AmountRecord{}, Current: current, Size: size, Total: len(matched)}
	start := (current - 1) * size
	if start < len(matched) {
		end := start + size
		if end > len(matched) {
			end = len(matched)
		}
		page.Records = matched[start:end]
	}
	return page
}

// AddAmountByNum stakes amount on each listed number.
func (s *Store) AddAmountByNum(p types.AddAmountByNumParams) (int64, error) {
	if len(p.Nums) == 0 {
		return 0, fmt.Errorf("%w: nums is empty", ErrInvalid)
	}
	if p.Amount <= 0 {
		return 0, fmt.Errorf("%w: amount must be positive", ErrInvalid)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, n := range p.Nums {
		if _, ok := s.numberByNumLocked(n); !ok {
			return 0, fmt.Errorf("%w: number %d", ErrNotFound, n)
		}
	}
	return s.insertAmountLocked(types.AmountRecord{
		Kind:   types.AmountByNum,
		Nums:   append([]int(nil), p.Nums...),
		Amount: p.Amount,
		Total:  p.Amount * float64(len(p.Nums)),
	}), nil
}

// AddAmountByZodiac stakes amount on every number of the listed zodiacs.
func (s *Store) AddAmountByZodiac(p types.AddAmountByZodiacParams) (int64, error) {
	if len(p.ZodiacIDs) == 0 {
		return 0, fmt.Errorf("%w: zodiacIds is empty", ErrInvalid)
	}
	if p.Amount <= 0 {
		return 0, fmt.Errorf("%w: amount must be positive", ErrInvalid)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var nums []int
	for _, zid := range p.ZodiacIDs {
		if _, ok := s.zodiacs[zid]; !ok {
			return 0, fmt.Errorf("%w: zodiac %d", ErrNotFound, zid)
		}
		nums = append(nums, s.numsOfLocked(zid)...)
	}
	sort.Ints(nums)
	return s.insertAmountLocked(types.AmountRecord{
		Kind:      types.AmountByZodiac,
		Nums:      nums,
		ZodiacIDs: append([]int64(nil), p.ZodiacIDs...),
		Amount:    p.Amount,
		Total:     p.Amount * float64(len(nums)),
	}), nil
}

// AddAmountCustom stakes a separate amount on each number.
func (s *Store) AddAmountCustom(p types.AddAmountCustomParams) (int64, error) {
	if len(p.Items) == 0 {
		return 0, fmt.Errorf("%w: items is empty", ErrInvalid)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	nums := make([]int, 0, len(p.Items))
	var total float64
	for _, it := range p.Items {
		if it.Amount <= 0 {
			return 0, fmt.Errorf("%w: amount for %d must be positive", ErrInvalid, it.Num)
		}
		if _, ok := s.numberByNumLocked(it.Num); !ok {
			return 0, fmt.Errorf("%w: number %d", ErrNotFound, it.Num)
		}
		nums = append(nums, it.Num)
		total += it.Amount
	}
	return s.insertAmountLocked(types.AmountRecord{
		Kind:  types.AmountCustom,
		Nums:  nums,
		Items: append([]types.CustomAmount(nil), p.Items...),
		Total: total,
	}), nil
}

// DeleteAmount removes a record and reports whether it existed.
func (s *Store) DeleteAmount(id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.amounts[id]; !ok {
		return false
	}
	delete(s.amounts, id)
	return true
}

// AddNumber assigns a new number to a zodiac.
func (s *Store) AddNumber(p types.AddNumberParams) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkNumberLocked(0, p); err != nil {
		return 0, err
	}
	s.nextNumber++
	color := p.Color
	if color == "" {
		color = colorOf(p.Num)
	}
	s.numbers[s.nextNumber] = numberRow{id: s.nextNumber, num: p.Num, zodiacID: p.ZodiacID, color: color}
	return s.nextNumber, nil
}

// DeleteNumber removes a number and reports whether it existed.
func (s *Store) DeleteNumber(id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.numbers[id]; !ok {
		return false
	}
	delete(s.numbers, id)
	return true
}

// UpdateNumber rewrites a number. Unknown ids report false.
func (s *Store) UpdateNumber(p types.UpdateNumberParams) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	row, ok := s.numbers[p.ID]
	if !ok {
		return false, nil
	}
	if err := s.checkNumberLocked(p.ID, p.AddNumberParams); err != nil {
		return false, err
	}
	row.num, row.zodiacID = p.Num, p.ZodiacID
	if p.Color != "" {
		row.color = p.Color
	}
	s.numbers[p.ID] = row
	return true, nil
}

// NumberDetail returns a number joined with its zodiac name.
func (s *Store) NumberDetail(id int64) (types.NumberDetail, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row, ok := s.numbers[id]
	if !ok {
		return types.NumberDetail{}, fmt.Errorf("%w: number id %d", ErrNotFound, id)
	}
	return types.NumberDetail{
		ID:         row.id,
		Num:        row.num,
		ZodiacID:   row.zodiacID,
		ZodiacName: s.zodiacs[row.zodiacID].name,
		Color:      row.color,
	}, nil
}

// ListZodiacs returns every zodiac ordered by sort then id.
func (s *Store) ListZodiacs() []types.ZodiacList {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]types.ZodiacList, 0, len(s.zodiacs))
	for _, z := range s.zodiacs {
		out = append(out, types.ZodiacList{
			ID:       z.id,
			Name:     z.name,
			HomeType: z.homeType,
			Sort:     z.sort,
			Nums:     s.numsOfLocked(z.id),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Sort != out[j].Sort {
			return out[i].Sort < out[j].Sort
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// AddZodiac creates a zodiac. Names are unique, case-insensitively.
func (s *Store) AddZodiac(p types.AddZodiacParams) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkZodiacLocked(0, p); err != nil {
		return 0, err
	}
	s.nextZodiac++
	s.zodiacs[s.nextZodiac] = zodiacRow{id: s.nextZodiac, name: strings.TrimSpace(p.Name), homeType: p.HomeType, sort: p.Sort}
	return s.nextZodiac, nil
}

// UpdateZodiac rewrites a zodiac and returns its id.
func (s *Store) UpdateZodiac(p types.UpdateZodiacParams) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.zodiacs[p.ID]; !ok {
		return 0, fmt.Errorf("%w: zodiac %d", ErrNotFound, p.ID)
	}
	if err := s.checkZodiacLocked(p.ID, p.AddZodiacParams); err != nil {
		return 0, err
	}
	s.zodiacs[p.ID] = zodiacRow{id: p.ID, name: strings.TrimSpace(p.Name), homeType: p.HomeType, sort: p.Sort}
	return p.ID, nil
}

// DeleteZodiac removes a zodiac that owns no numbers.
func (s *Store) DeleteZodiac(id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.zodiacs[id]; !ok {
		return false, nil
	}
	if nums := s.numsOfLocked(id); len(nums) > 0 {
		return false, fmt.Errorf("%w: zodiac %d still owns %d numbers", ErrConflict, id, len(nums))
	}
	delete(s.zodiacs, id)
	return true, nil
}

// HomeTypes returns the home-type options.
func (s *Store) HomeTypes() []types.HomeType {
	return append([]types.HomeType(nil), homeTypes...)
}

func (s *Store) insertAmountLocked(r types.AmountRecord) int64 {
	s.nextAmount++
	r.ID = s.nextAmount
	r.CreatedAt = s.now().UTC().Format(time.RFC3339)
	s.amounts[r.ID] = r
	return r.ID
}

func (s *Store) checkNumberLocked(self int64, p types.AddNumberParams) error {
	if p.Num < minNum || p.Num > maxNum {
		return fmt.Errorf("%w: num %d out of range %d..%d", ErrInvalid, p.Num, minNum, maxNum)
	}
	if _, ok := s.zodiacs[p.ZodiacID]; !ok {
		return fmt.Errorf("%w: zodiac %d", ErrNotFound, p.ZodiacID)
	}
	if row, ok := s.numberByNumLocked(p.Num); ok && row.id != self {
		return fmt.Errorf("%w: number %d already assigned", ErrConflict, p.Num)
	}
	return nil
}

func (s *Store) checkZodiacLocked(self int64, p types.AddZodiacParams) error {
	name := strings.TrimSpace(p.Name)
	if name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalid)
	}
	if p.HomeType != 0 && p.HomeType != types.HomeTypeDomestic && p.HomeType != types.HomeTypeWild {
		return fmt.Errorf("%w: unknown home type %d", ErrInvalid, p.HomeType)
	}
	for _, z := range s.zodiacs {
		if z.id != self && strings.EqualFold(z.name, name) {
			return fmt.Errorf("%w: zodiac %q exists", ErrConflict, name)
		}
	}
	return nil
}

func (s *Store) numberByNumLocked(num int) (numberRow, bool) {
	for _, row := range s.numbers {
		if row.num == num {
			return row, true
		}
	}
	return numberRow{}, false
}

func (s *Store) numsOfLocked(zodiacID int64) []int {
	nums := []int{}
	for _, row := range s.numbers {
		if row.zodiacID == zodiacID {
			nums = append(nums, row.num)
		}
	}
	sort.Ints(nums)
	return nums
}

func (s *Store) touchesZodiacLocked(r types.AmountRecord, zodiacID int64) bool {
	for _, zid := range r.ZodiacIDs {
		if zid == zodiacID {
			return true
		}
	}
	for _, n := range r.Nums {
		if row, ok := s.numberByNumLocked(n); ok && row.zodiacID == zodiacID {
			return true
		}
	}
	return false
}

func containsInt(xs []int, x int) bool {
	for _, v := range xs {
		if v == x {
			return true
		}
	}
	return false
}
