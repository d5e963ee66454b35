package puppies

import (
	"context"
	"errors"
	"math"
	"strconv"
	"testing"
	"time"
)

// -------------------------
// Test repo (in-memory)
// -------------------------

type testRepo struct {
	all []Puppy
	err error
}

func (r *testRepo) PageAfter(ctx context.Context, cursor string, limit int) (Page, error) {
	if r.err != nil {
		return Page{}, r.err
	}
	return Paginate(r.all, cursor, limit), nil
}

func (r *testRepo) GetByID(ctx context.Context, id string) (Puppy, error) {
	for _, p := range r.all {
		if p.ID == id {
			return p, nil
		}
	}
	return Puppy{}, ErrNotFound
}

func makePuppies(n int) []Puppy {
	out := make([]Puppy, 0, n)
	for i := 1; i <= n; i++ {
		out = append(out, Puppy{
			ID:          "pup-" + strconv.Itoa(i),
			Name:        "Pup " + strconv.Itoa(i),
			Description: "desc",
		})
	}
	return out
}

func newTestService(all []Puppy, opts Options) *Service {
	return NewService(&testRepo{all: all}, opts)
}

func ids(ps []Puppy) []string {
	out := make([]string, 0, len(ps))
	for _, p := range ps {
		out = append(out, p.ID)
	}
	return out
}

// -------------------------
// Tests
// -------------------------

func TestFetchPage_ThirtyRecords_ThreePages(t *testing.T) {
	svc := newTestService(makePuppies(30), Options{})
	ctx := context.Background()

	p1, err := svc.FetchPage(ctx, PageRequest{})
	if err != nil {
		t.Fatalf("page 1: %v", err)
	}
	if len(p1.Data) != 12 || p1.Data[0].ID != "pup-1" || p1.Data[11].ID != "pup-12" {
		t.Fatalf("page 1: unexpected ids %v", ids(p1.Data))
	}
	if p1.NextCursor != "pup-12" {
		t.Fatalf("page 1: expected nextCursor pup-12, got %q", p1.NextCursor)
	}

	p2, err := svc.FetchPage(ctx, PageRequest{Cursor: p1.NextCursor})
	if err != nil {
		t.Fatalf("page 2: %v", err)
	}
	if len(p2.Data) != 12 || p2.Data[0].ID != "pup-13" || p2.NextCursor != "pup-24" {
		t.Fatalf("page 2: unexpected ids %v next=%q", ids(p2.Data), p2.NextCursor)
	}

	p3, err := svc.FetchPage(ctx, PageRequest{Cursor: p2.NextCursor})
	if err != nil {
		t.Fatalf("page 3: %v", err)
	}
	if len(p3.Data) != 6 || p3.Data[0].ID != "pup-25" || p3.Data[5].ID != "pup-30" {
		t.Fatalf("page 3: unexpected ids %v", ids(p3.Data))
	}
	if p3.HasMore() {
		t.Fatalf("page 3: expected no nextCursor, got %q", p3.NextCursor)
	}
}

func TestPaginate_CursorStartsAfterRecord(t *testing.T) {
	all := makePuppies(20)
	for k := 0; k < len(all); k++ {
		page := Paginate(all, all[k].ID, 5)
		if k+1 == len(all) {
			if len(page.Data) != 0 {
				t.Fatalf("cursor at last record: expected empty page, got %v", ids(page.Data))
			}
			continue
		}
		if page.Data[0].ID != all[k+1].ID {
			t.Fatalf("cursor %s: expected first %s, got %s", all[k].ID, all[k+1].ID, page.Data[0].ID)
		}
	}
}

func TestPaginate_UnknownCursorRestarts(t *testing.T) {
	all := makePuppies(5)
	for _, c := range []string{"", "nope", "pup-999"} {
		page := Paginate(all, c, 2)
		if page.Data[0].ID != "pup-1" {
			t.Fatalf("cursor %q: expected restart at pup-1, got %s", c, page.Data[0].ID)
		}
	}
}

func TestPaginate_NextCursorIffRemaining(t *testing.T) {
	for n := 0; n <= 15; n++ {
		all := makePuppies(n)
		for start := 0; start <= n; start++ {
			cursor := ""
			if start > 0 {
				cursor = all[start-1].ID
			}
			for limit := 1; limit <= 6; limit++ {
				page := Paginate(all, cursor, limit)
				want := start+limit < n
				if page.HasMore() != want {
					t.Fatalf("n=%d start=%d limit=%d: expected hasMore=%v, got %v", n, start, limit, want, page.HasMore())
				}
				if want && page.NextCursor != page.Data[len(page.Data)-1].ID {
					t.Fatalf("n=%d start=%d limit=%d: nextCursor %q is not last id", n, start, limit, page.NextCursor)
				}
			}
		}
	}
}

func TestPaginate_ExhaustionCoversDatasetOnce(t *testing.T) {
	all := makePuppies(31)
	seen := map[string]bool{}
	var got []string

	cursor := ""
	for i := 0; i < 100; i++ {
		page := Paginate(all, cursor, 4)
		for _, p := range page.Data {
			if seen[p.ID] {
				t.Fatalf("duplicate id %s", p.ID)
			}
			seen[p.ID] = true
			got = append(got, p.ID)
		}
		if !page.HasMore() {
			break
		}
		cursor = page.NextCursor
	}

	want := ids(all)
	if len(got) != len(want) {
		t.Fatalf("expected %d records, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("position %d: expected %s, got %s", i, want[i], got[i])
		}
	}
}

func TestFetchPage_Idempotent(t *testing.T) {
	svc := newTestService(makePuppies(30), Options{})
	ctx := context.Background()

	a, _ := svc.FetchPage(ctx, PageRequest{Cursor: "pup-3", Limit: 7})
	b, _ := svc.FetchPage(ctx, PageRequest{Cursor: "pup-3", Limit: 7})

	if a.NextCursor != b.NextCursor || len(a.Data) != len(b.Data) {
		t.Fatalf("expected identical pages, got %v/%q and %v/%q", ids(a.Data), a.NextCursor, ids(b.Data), b.NextCursor)
	}
	for i := range a.Data {
		if a.Data[i].ID != b.Data[i].ID {
			t.Fatalf("expected identical pages at %d", i)
		}
	}
}

func TestFetchPage_EmptyDataset(t *testing.T) {
	svc := newTestService(nil, Options{})

	page, err := svc.FetchPage(context.Background(), PageRequest{Cursor: "pup-1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if page.Data == nil || len(page.Data) != 0 || page.HasMore() {
		t.Fatalf("expected empty non-nil page without cursor, got %#v", page)
	}
}

func TestFetchPage_SimulateEmpty(t *testing.T) {
	svc := newTestService(makePuppies(30), Options{SimulateEmpty: true})

	page, err := svc.FetchPage(context.Background(), PageRequest{})
	if err != nil || len(page.Data) != 0 || page.HasMore() {
		t.Fatalf("expected empty page, got %#v err=%v", page, err)
	}
}

func TestFetchPage_SimulateError(t *testing.T) {
	sw := NewSwitch(true)
	svc := newTestService(makePuppies(30), Options{SimulateError: sw})

	_, err := svc.FetchPage(context.Background(), PageRequest{})
	if !errors.Is(err, ErrRetrievalFailed) {
		t.Fatalf("expected ErrRetrievalFailed, got %v", err)
	}
	if err.Error() != RetrievalMessage {
		t.Fatalf("expected message %q, got %q", RetrievalMessage, err.Error())
	}

	sw.Set(false)
	page, err := svc.FetchPage(context.Background(), PageRequest{})
	if err != nil || len(page.Data) != 12 {
		t.Fatalf("expected first page after clearing switch, got %d err=%v", len(page.Data), err)
	}
}

func TestFetchPage_SwitchesAreIsolated(t *testing.T) {
	a := newTestService(makePuppies(3), Options{SimulateError: NewSwitch(true)})
	b := newTestService(makePuppies(3), Options{SimulateError: NewSwitch(false)})

	if _, err := a.FetchPage(context.Background(), PageRequest{}); err == nil {
		t.Fatalf("expected error from service a")
	}
	if _, err := b.FetchPage(context.Background(), PageRequest{}); err != nil {
		t.Fatalf("expected service b unaffected, got %v", err)
	}
}

func TestFetchPage_RepoFailureIsRetrievalError(t *testing.T) {
	svc := NewService(&testRepo{err: errors.New("db down")}, Options{})

	_, err := svc.FetchPage(context.Background(), PageRequest{})
	if !errors.Is(err, ErrRetrievalFailed) {
		t.Fatalf("expected ErrRetrievalFailed, got %v", err)
	}
}

func TestFetchPage_DelayAppliesAndHonoursContext(t *testing.T) {
	svc := newTestService(makePuppies(3), Options{Delay: time.Hour, SimulateError: NewSwitch(true)})

	var slept time.Duration
	svc.sleep = func(ctx context.Context, d time.Duration) error {
		slept = d
		return nil
	}
	if _, err := svc.FetchPage(context.Background(), PageRequest{}); !errors.Is(err, ErrRetrievalFailed) {
		t.Fatalf("expected retrieval error after delay, got %v", err)
	}
	if slept != time.Hour {
		t.Fatalf("expected delay to apply on failure too, got %v", slept)
	}

	svc.sleep = sleepCtx
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := svc.FetchPage(ctx, PageRequest{}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestFindByID(t *testing.T) {
	svc := newTestService(makePuppies(3), Options{SimulateError: NewSwitch(true)})

	p, found, err := svc.FindByID(context.Background(), "pup-2")
	if err != nil || !found || p.Name != "Pup 2" {
		t.Fatalf("expected pup-2, got %#v found=%v err=%v", p, found, err)
	}

	_, found, err = svc.FindByID(context.Background(), "pup-404")
	if err != nil || found {
		t.Fatalf("expected not found without error, got found=%v err=%v", found, err)
	}
}

func TestAgeMonthsAndMeta(t *testing.T) {
	f := func(v float64) *float64 { return &v }

	cases := []struct {
		name     string
		p        Puppy
		months   int
		ok       bool
		wantMeta string
	}{
		{"absent", Puppy{Location: "Austin, TX"}, 0, false, "Austin, TX"},
		{"half year", Puppy{Age: f(0.5), Location: "Austin, TX"}, 6, true, "6 months • Austin, TX"},
		{"rounds", Puppy{Age: f(0.33)}, 4, true, "4 months"},
		{"one month", Puppy{Age: f(1.0 / 12)}, 1, true, "1 month"},
		{"zero omitted", Puppy{Age: f(0.01)}, 0, true, ""},
		{"nan", Puppy{Age: f(math.NaN())}, 0, false, ""},
		{"inf", Puppy{Age: f(math.Inf(1)), Location: "Reno"}, 0, false, "Reno"},
	}

	for _, tc := range cases {
		m, ok := tc.p.AgeMonths()
		if m != tc.months || ok != tc.ok {
			t.Fatalf("%s: expected (%d,%v), got (%d,%v)", tc.name, tc.months, tc.ok, m, ok)
		}
		if got := tc.p.Meta(); got != tc.wantMeta {
			t.Fatalf("%s: expected meta %q, got %q", tc.name, tc.wantMeta, got)
		}
	}
}

func TestInitial(t *testing.T) {
	if got := (Puppy{Name: "biscuit"}).Initial(); got != "B" {
		t.Fatalf("expected B, got %q", got)
	}
	if got := (Puppy{Name: "  "}).Initial(); got != "?" {
		t.Fatalf("expected ?, got %q", got)
	}
}

func TestSameDataset(t *testing.T) {
	f := func(v float64) *float64 { return &v }
	base := []Puppy{{ID: "a", Name: "A", Age: f(0.5)}, {ID: "b", Name: "B"}}

	if !SameDataset(base, []Puppy{{ID: "a", Name: "A", Age: f(0.5)}, {ID: "b", Name: "B"}}) {
		t.Fatalf("expected equal datasets")
	}
	if !SameDataset(nil, []Puppy{}) {
		t.Fatalf("expected nil and empty to be equal")
	}

	cases := map[string][]Puppy{
		"reordered":    {base[1], base[0]},
		"shorter":      {base[0]},
		"age changed":  {{ID: "a", Name: "A", Age: f(0.6)}, base[1]},
		"age dropped":  {{ID: "a", Name: "A"}, base[1]},
		"name changed": {base[0], {ID: "b", Name: "Bee"}},
	}
	for name, other := range cases {
		if SameDataset(base, other) {
			t.Fatalf("%s: expected datasets to differ", name)
		}
	}
}
